package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wikitree/internal/domain/models/tree"
	treerepo "wikitree/internal/domain/repositories/tree"
	"wikitree/internal/repository/treesql"
	"wikitree/internal/treepath"
)

// PostgresNodeRepository implements the NodeRepository interface
type PostgresNodeRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	stmts  *treesql.Statements
	tm     *TransactionManager
	logger *slog.Logger
}

// NewNodeRepository creates a new node repository
func NewNodeRepository(config *RepositoryConfig) treerepo.NodeRepository {
	return &PostgresNodeRepository{
		pool:   config.Pool,
		tables: config.Tables,
		stmts:  treesql.New(treesql.Postgres, config.Tables.Nodes),
		tm:     NewTransactionManager(config.Pool, config.Logger),
		logger: config.Logger,
	}
}

// scanNode reads the treesql.Columns of one row, followed by extra columns.
func scanNode(row pgx.Row, extra ...any) (*tree.Node, error) {
	var (
		node                 tree.Node
		folderPath, nodeType string
	)
	dest := append([]any{
		&node.ID,
		&node.SiteID,
		&folderPath,
		&node.FileName,
		&nodeType,
		&node.Title,
		&node.CreatedAt,
		&node.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	var err error
	if node.Type, err = tree.ParseNodeType(nodeType); err != nil {
		return nil, err
	}
	node.FolderPath = treepath.Parse(folderPath)
	node.CreatedAt = node.CreatedAt.UTC()
	node.UpdatedAt = node.UpdatedAt.UTC()
	return &node, nil
}

func (r *PostgresNodeRepository) getOne(ctx context.Context, query string, args []any) (*tree.Node, error) {
	node, err := scanNode(GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...))
	if IsPgNoRowsError(err) {
		return nil, nil
	}
	return node, err
}

// GetByID retrieves a node by ID
func (r *PostgresNodeRepository) GetByID(ctx context.Context, id string) (*tree.Node, error) {
	// ids are UUID columns; anything else cannot match
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	query, args := r.stmts.SelectByID(id)
	node, err := r.getOne(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("get node %s: %w", id, err)
	}
	return node, nil
}

// GetByParentAndName retrieves the node named fileName directly under folderPath
func (r *PostgresNodeRepository) GetByParentAndName(ctx context.Context, siteID string, folderPath treepath.Path, fileName string) (*tree.Node, error) {
	return r.FindSibling(ctx, siteID, folderPath, fileName, "")
}

// FindSibling is GetByParentAndName ignoring excludeID
func (r *PostgresNodeRepository) FindSibling(ctx context.Context, siteID string, folderPath treepath.Path, fileName, excludeID string) (*tree.Node, error) {
	query, args := r.stmts.SelectByParentAndName(siteID, folderPath, fileName, excludeID)
	node, err := r.getOne(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("find %q in %q: %w", fileName, folderPath.String(), err)
	}
	return node, nil
}

// Insert creates a node
func (r *PostgresNodeRepository) Insert(ctx context.Context, node *tree.Node) error {
	if node.ID == "" {
		node.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if node.CreatedAt.IsZero() {
		node.CreatedAt = now
	}
	if node.UpdatedAt.IsZero() {
		node.UpdatedAt = node.CreatedAt
	}

	query, args := r.stmts.Insert(node, node.CreatedAt, node.UpdatedAt)
	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert node %q: %w", node.FullPath().External(), mapError(err))
	}
	return nil
}

// UpdateTitleAndName changes a node's own name and title
func (r *PostgresNodeRepository) UpdateTitleAndName(ctx context.Context, id, fileName, title string) error {
	query, args := r.stmts.UpdateTitleAndName(id, fileName, title, time.Now().UTC())
	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update node %s: %w", id, mapError(err))
	}
	return nil
}

// RewritePathPrefix moves rows stored at or below oldPrefix under newPrefix
func (r *PostgresNodeRepository) RewritePathPrefix(ctx context.Context, siteID string, oldPrefix, newPrefix treepath.Path) (int64, error) {
	if oldPrefix.IsRoot() {
		return 0, errors.New("rewrite path prefix: old prefix is the root")
	}

	var total int64
	err := r.tm.ExecTx(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, r.pool)

		query, args := r.stmts.RewriteExact(siteID, oldPrefix, newPrefix)
		exact, err := exec.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("rewrite children of %q: %w", oldPrefix.String(), mapError(err))
		}

		query, args = r.stmts.RewriteDescendants(siteID, oldPrefix, newPrefix)
		deeper, err := exec.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("rewrite descendants of %q: %w", oldPrefix.String(), mapError(err))
		}

		total = exact.RowsAffected() + deeper.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.Debug("path prefix rewritten",
		"site_id", siteID,
		"old_prefix", oldPrefix.String(),
		"new_prefix", newPrefix.String(),
		"rows", total,
	)
	return total, nil
}

// DeleteByID deletes a single node
func (r *PostgresNodeRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	query, args := r.stmts.DeleteByID(id)
	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete node %s: %w", id, err)
	}
	return nil
}

// DeleteByPathPrefix deletes the subtree rooted at prefix
func (r *PostgresNodeRepository) DeleteByPathPrefix(ctx context.Context, siteID string, prefix treepath.Path) ([]tree.RemovedNode, error) {
	if prefix.IsRoot() {
		return nil, errors.New("delete by path prefix: prefix is the root")
	}

	query, args := r.stmts.DeleteSubtree(siteID, prefix)
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("delete subtree %q: %w", prefix.String(), err)
	}

	removed, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (tree.RemovedNode, error) {
		var id, nodeType string
		err := row.Scan(&id, &nodeType)
		return tree.RemovedNode{ID: id, Type: tree.NodeType(nodeType)}, err
	})
	if err != nil {
		return nil, fmt.Errorf("delete subtree %q: %w", prefix.String(), err)
	}
	return removed, nil
}

// Query lists nodes matching the filter
func (r *PostgresNodeRepository) Query(ctx context.Context, filter *treerepo.NodeFilter) ([]tree.Node, error) {
	query, args, err := r.stmts.Query(filter)
	if err != nil {
		return nil, err
	}

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tree: %w", err)
	}

	nodes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (tree.Node, error) {
		var depth int
		node, err := scanNode(row, &depth)
		if err != nil {
			return tree.Node{}, err
		}
		node.Depth = depth
		return *node, nil
	})
	if err != nil {
		return nil, fmt.Errorf("query tree: %w", err)
	}
	return nodes, nil
}

// CountChildren counts the immediate children of each parent
func (r *PostgresNodeRepository) CountChildren(ctx context.Context, siteID string, parents []treepath.Path) (map[string]int, error) {
	counts := make(map[string]int, len(parents))
	if len(parents) == 0 {
		return counts, nil
	}

	query, args := r.stmts.CountChildren(siteID, parents)
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count children: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var path string
		var count int
		if err := rows.Scan(&path, &count); err != nil {
			return nil, fmt.Errorf("scan child count: %w", err)
		}
		counts[path] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate child counts: %w", err)
	}
	return counts, nil
}
