package tree

import (
	"context"
	"log/slog"

	treesvc "wikitree/internal/domain/services/tree"
)

// LogCleaner is the default ContentCleaner: it only records which page and
// asset ids were released. Deployments with a content store replace it.
type LogCleaner struct {
	logger *slog.Logger
}

// NewLogCleaner creates a cleaner that logs removed ids
func NewLogCleaner(logger *slog.Logger) treesvc.ContentCleaner {
	return &LogCleaner{logger: logger}
}

// PagesRemoved logs the removed page ids
func (c *LogCleaner) PagesRemoved(ctx context.Context, siteID string, pageIDs []string) error {
	c.logger.InfoContext(ctx, "pages removed", "site_id", siteID, "count", len(pageIDs), "ids", pageIDs)
	return nil
}

// AssetsRemoved logs the removed asset ids
func (c *LogCleaner) AssetsRemoved(ctx context.Context, siteID string, assetIDs []string) error {
	c.logger.InfoContext(ctx, "assets removed", "site_id", siteID, "count", len(assetIDs), "ids", assetIDs)
	return nil
}
