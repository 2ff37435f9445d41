package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the node table and its indexes if they don't exist.
//
// folder_path uses the "C" collation so that range scans over
// [path || '.', path || '/') compare bytes, which is what makes the prefix
// queries select exactly the strict descendants.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	createNodes := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY,
			site_id TEXT NOT NULL,
			folder_path TEXT COLLATE "C" NOT NULL DEFAULT '',
			file_name TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('folder', 'page', 'asset')),
			title TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (site_id, folder_path, file_name)
		)
	`, tables.Nodes)
	if _, err := pool.Exec(ctx, createNodes); err != nil {
		return fmt.Errorf("create %s: %w", tables.Nodes, err)
	}

	// The unique constraint already serves (site_id, folder_path) range scans.
	indexes := []string{
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%stree_nodes_site_type ON %s (site_id, type)`, tables.Prefix, tables.Nodes),
	}
	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}

// DropSchema drops the node table.
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+tables.Nodes+" CASCADE"); err != nil {
		return fmt.Errorf("drop %s: %w", tables.Nodes, err)
	}
	return nil
}

// ClearSite removes every node of a site.
func ClearSite(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, siteID string) (int64, error) {
	tag, err := pool.Exec(ctx, "DELETE FROM "+tables.Nodes+" WHERE site_id = $1", siteID)
	if err != nil {
		return 0, fmt.Errorf("clear site %s: %w", siteID, err)
	}
	return tag.RowsAffected(), nil
}
