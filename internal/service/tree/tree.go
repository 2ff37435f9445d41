package tree

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"wikitree/internal/domain"
	"wikitree/internal/domain/models/tree"
	treerepo "wikitree/internal/domain/repositories/tree"
	treesvc "wikitree/internal/domain/services/tree"
	"wikitree/internal/treepath"
)

// treeService implements the TreeService interface
type treeService struct {
	nodes  treerepo.NodeRepository
	logger *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(nodes treerepo.NodeRepository, logger *slog.Logger) treesvc.TreeService {
	return &treeService{
		nodes:  nodes,
		logger: logger,
	}
}

// Tree lists a bounded-depth page of items below the query's parent
func (s *treeService) Tree(ctx context.Context, query *tree.Query) (items []tree.Item, err error) {
	start := time.Now()
	ctx, span := startSpan(ctx, "tree.TreeService.Tree", trace.WithAttributes(
		attribute.String("site_id", query.SiteID),
		attribute.Int("depth", query.Depth),
	))
	defer func() {
		observeQuery(start, err)
		endSpan(span, err)
	}()

	q := *query
	q.ApplyDefaults()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	parent, err := s.resolveParent(ctx, &q)
	if err != nil {
		return nil, err
	}

	filter := &treerepo.NodeFilter{
		SiteID:           q.SiteID,
		Parent:           parent,
		MaxExtraLabels:   q.MaxExtraLabels(),
		IncludeAncestors: q.IncludeAncestors,
		Types:            q.Types,
		OrderBy:          q.OrderBy,
		Descending:       q.OrderByDirection == tree.OrderDesc,
		Limit:            q.LimitValue(),
		Offset:           q.Offset,
	}
	nodes, err := s.nodes.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query tree: %w", err)
	}

	items, err = s.toItems(ctx, q.SiteID, nodes)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("items", len(items)))
	s.logger.Debug("tree queried",
		"site_id", q.SiteID,
		"parent", parent.External(),
		"depth", q.Depth,
		"items", len(items),
	)
	return items, nil
}

// FolderByID returns a single folder as an item
func (s *treeService) FolderByID(ctx context.Context, id string) (item *tree.Item, err error) {
	ctx, span := startSpan(ctx, "tree.TreeService.FolderByID", trace.WithAttributes(attribute.String("folder_id", id)))
	defer func() { endSpan(span, err) }()

	node, err := s.nodes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get folder: %w", err)
	}
	if node == nil || !node.IsFolder() {
		return nil, domain.NewNotFoundError(domain.CodeFolderNotFound, fmt.Sprintf("folder %s not found", id))
	}

	items, err := s.toItems(ctx, node.SiteID, []tree.Node{*node})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// resolveParent returns the internal path whose descendants the query lists.
// ParentID takes precedence over ParentPath; neither means the root.
func (s *treeService) resolveParent(ctx context.Context, q *tree.Query) (treepath.Path, error) {
	if q.ParentID != "" {
		parent, err := s.nodes.GetByID(ctx, q.ParentID)
		if err != nil {
			return nil, fmt.Errorf("get parent: %w", err)
		}
		if parent == nil || parent.SiteID != q.SiteID {
			return nil, domain.NewNotFoundError(domain.CodeParentNotFound, fmt.Sprintf("parent %s not found", q.ParentID))
		}
		return parent.FullPath(), nil
	}

	if q.ParentPath != "" {
		return parseParentPath(q.ParentPath)
	}

	return nil, nil
}

// toItems shapes nodes and fills in children counts of folders with one query.
func (s *treeService) toItems(ctx context.Context, siteID string, nodes []tree.Node) ([]tree.Item, error) {
	items := make([]tree.Item, len(nodes))
	var folders []treepath.Path
	for i := range nodes {
		items[i] = tree.NewItem(&nodes[i])
		if nodes[i].IsFolder() {
			folders = append(folders, nodes[i].FullPath())
		}
	}
	if len(folders) == 0 {
		return items, nil
	}

	counts, err := s.nodes.CountChildren(ctx, siteID, folders)
	if err != nil {
		return nil, fmt.Errorf("count children: %w", err)
	}
	for i := range nodes {
		if nodes[i].IsFolder() {
			count := counts[nodes[i].FullPath().String()]
			items[i].ChildrenCount = &count
		}
	}
	return items, nil
}
