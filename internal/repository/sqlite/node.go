package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"wikitree/internal/domain/models/tree"
	treerepo "wikitree/internal/domain/repositories/tree"
	"wikitree/internal/repository/treesql"
	"wikitree/internal/treepath"
)

// timeLayout is fixed-width so stored timestamps sort chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// NodeRepository implements treerepo.NodeRepository
type NodeRepository struct {
	db     *sql.DB
	stmts  *treesql.Statements
	tm     *TransactionManager
	logger *slog.Logger
}

// NewNodeRepository creates a new node repository
func NewNodeRepository(config *RepositoryConfig) treerepo.NodeRepository {
	return &NodeRepository{
		db:     config.DB,
		stmts:  treesql.New(treesql.SQLite, NodesTable),
		tm:     NewTransactionManager(config.DB, config.Logger),
		logger: config.Logger,
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanNode reads the treesql.Columns of one row, followed by extra columns.
func scanNode(row rowScanner, extra ...any) (*tree.Node, error) {
	var (
		node                 tree.Node
		folderPath, nodeType string
		createdAt, updatedAt string
	)
	dest := append([]any{&node.ID, &node.SiteID, &folderPath, &node.FileName, &nodeType, &node.Title, &createdAt, &updatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	var err error
	if node.Type, err = tree.ParseNodeType(nodeType); err != nil {
		return nil, err
	}
	if node.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if node.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	node.FolderPath = treepath.Parse(folderPath)
	return &node, nil
}

func (r *NodeRepository) getOne(ctx context.Context, query string, args []any) (*tree.Node, error) {
	node, err := scanNode(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return node, err
}

// GetByID retrieves a node by ID
func (r *NodeRepository) GetByID(ctx context.Context, id string) (*tree.Node, error) {
	query, args := r.stmts.SelectByID(id)
	node, err := r.getOne(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("get node %s: %w", id, err)
	}
	return node, nil
}

// GetByParentAndName retrieves the node named fileName directly under folderPath
func (r *NodeRepository) GetByParentAndName(ctx context.Context, siteID string, folderPath treepath.Path, fileName string) (*tree.Node, error) {
	return r.FindSibling(ctx, siteID, folderPath, fileName, "")
}

// FindSibling is GetByParentAndName ignoring excludeID
func (r *NodeRepository) FindSibling(ctx context.Context, siteID string, folderPath treepath.Path, fileName, excludeID string) (*tree.Node, error) {
	query, args := r.stmts.SelectByParentAndName(siteID, folderPath, fileName, excludeID)
	node, err := r.getOne(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("find %q in %q: %w", fileName, folderPath.String(), err)
	}
	return node, nil
}

// Insert creates a node
func (r *NodeRepository) Insert(ctx context.Context, node *tree.Node) error {
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

	query, args := r.stmts.Insert(node, formatTime(node.CreatedAt), formatTime(node.UpdatedAt))
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert node %q: %w", node.FullPath().External(), mapError(err))
	}
	return nil
}

// UpdateTitleAndName changes a node's own name and title
func (r *NodeRepository) UpdateTitleAndName(ctx context.Context, id, fileName, title string) error {
	query, args := r.stmts.UpdateTitleAndName(id, fileName, title, formatTime(time.Now()))
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update node %s: %w", id, mapError(err))
	}
	return nil
}

// RewritePathPrefix moves rows stored at or below oldPrefix under newPrefix
func (r *NodeRepository) RewritePathPrefix(ctx context.Context, siteID string, oldPrefix, newPrefix treepath.Path) (int64, error) {
	if oldPrefix.IsRoot() {
		return 0, errors.New("rewrite path prefix: old prefix is the root")
	}

	var total int64
	err := r.tm.ExecTx(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, r.db)

		query, args := r.stmts.RewriteExact(siteID, oldPrefix, newPrefix)
		result, err := exec.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("rewrite children of %q: %w", oldPrefix.String(), mapError(err))
		}
		exact, _ := result.RowsAffected()

		query, args = r.stmts.RewriteDescendants(siteID, oldPrefix, newPrefix)
		result, err = exec.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("rewrite descendants of %q: %w", oldPrefix.String(), mapError(err))
		}
		deeper, _ := result.RowsAffected()

		total = exact + deeper
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
func (r *NodeRepository) DeleteByID(ctx context.Context, id string) error {
	query, args := r.stmts.DeleteByID(id)
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete node %s: %w", id, err)
	}
	return nil
}

// DeleteByPathPrefix deletes the subtree rooted at prefix
func (r *NodeRepository) DeleteByPathPrefix(ctx context.Context, siteID string, prefix treepath.Path) ([]tree.RemovedNode, error) {
	if prefix.IsRoot() {
		return nil, errors.New("delete by path prefix: prefix is the root")
	}

	query, args := r.stmts.DeleteSubtree(siteID, prefix)
	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("delete subtree %q: %w", prefix.String(), err)
	}
	defer rows.Close()

	var removed []tree.RemovedNode
	for rows.Next() {
		var id, nodeType string
		if err := rows.Scan(&id, &nodeType); err != nil {
			return nil, fmt.Errorf("scan removed node: %w", err)
		}
		removed = append(removed, tree.RemovedNode{ID: id, Type: tree.NodeType(nodeType)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate removed nodes: %w", err)
	}
	return removed, nil
}

// Query lists nodes matching the filter
func (r *NodeRepository) Query(ctx context.Context, filter *treerepo.NodeFilter) ([]tree.Node, error) {
	query, args, err := r.stmts.Query(filter)
	if err != nil {
		return nil, err
	}

	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tree: %w", err)
	}
	defer rows.Close()

	nodes := make([]tree.Node, 0)
	for rows.Next() {
		var depth int
		node, err := scanNode(rows, &depth)
		if err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		node.Depth = depth
		nodes = append(nodes, *node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	return nodes, nil
}

// CountChildren counts the immediate children of each parent
func (r *NodeRepository) CountChildren(ctx context.Context, siteID string, parents []treepath.Path) (map[string]int, error) {
	counts := make(map[string]int, len(parents))
	if len(parents) == 0 {
		return counts, nil
	}

	query, args := r.stmts.CountChildren(siteID, parents)
	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
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
