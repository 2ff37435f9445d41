package tree

import (
	"context"

	"wikitree/internal/domain/models/tree"
	"wikitree/internal/treepath"
)

// NodeFilter selects a bounded-depth slice of the tree below a parent path.
type NodeFilter struct {
	SiteID string
	Parent treepath.Path

	// MaxExtraLabels is how many labels a node's folder path may have beyond Parent.
	// 0 selects immediate children only.
	MaxExtraLabels int

	// IncludeAncestors also selects the row of every folder along Parent.
	IncludeAncestors bool

	Types      []tree.NodeType // empty = all types
	OrderBy    tree.OrderField
	Descending bool
	Limit      int
	Offset     int
}

// NodeRepository defines data access operations for tree nodes.
// Lookups return nil, nil when nothing matches.
type NodeRepository interface {
	// GetByID retrieves a node by ID
	GetByID(ctx context.Context, id string) (*tree.Node, error)

	// GetByParentAndName retrieves the node named fileName directly under folderPath
	GetByParentAndName(ctx context.Context, siteID string, folderPath treepath.Path, fileName string) (*tree.Node, error)

	// FindSibling is GetByParentAndName ignoring the node with excludeID
	FindSibling(ctx context.Context, siteID string, folderPath treepath.Path, fileName, excludeID string) (*tree.Node, error)

	// Insert creates a node, assigning ID and timestamps when empty
	Insert(ctx context.Context, node *tree.Node) error

	// UpdateTitleAndName changes a node's own name and title
	UpdateTitleAndName(ctx context.Context, id, fileName, title string) error

	// RewritePathPrefix moves every row whose folder path equals or lies below
	// oldPrefix under newPrefix. Returns the number of rows rewritten.
	RewritePathPrefix(ctx context.Context, siteID string, oldPrefix, newPrefix treepath.Path) (int64, error)

	// DeleteByID deletes a single node
	DeleteByID(ctx context.Context, id string) error

	// DeleteByPathPrefix deletes the node whose full path is prefix and every
	// row stored at or below it, returning what was removed
	DeleteByPathPrefix(ctx context.Context, siteID string, prefix treepath.Path) ([]tree.RemovedNode, error)

	// Query lists nodes matching the filter with Depth populated
	Query(ctx context.Context, filter *NodeFilter) ([]tree.Node, error)

	// CountChildren counts the immediate children of each parent, keyed by internal path
	CountChildren(ctx context.Context, siteID string, parents []treepath.Path) (map[string]int, error)
}
