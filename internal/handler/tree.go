package handler

import (
	"log/slog"
	"net/http"

	treesvc "wikitree/internal/domain/services/tree"
	"wikitree/internal/httputil"
)

// TreeHandler handles HTTP requests for tree queries
type TreeHandler struct {
	treeService treesvc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService treesvc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetTree lists items below a parent
// GET /api/sites/{siteId}/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	query, err := parseTreeQuery(r.PathValue("siteId"), r.URL.Query())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	items, err := h.treeService.Tree(r.Context(), query)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// GetFolder returns a single folder
// GET /api/folders/{id}
func (h *TreeHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	item, err := h.treeService.FolderByID(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}
