package handler

import (
	"log/slog"
	"net/http"

	treesvc "wikitree/internal/domain/services/tree"
	"wikitree/internal/httputil"
)

// FolderHandler handles folder mutation requests
type FolderHandler struct {
	folderService treesvc.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService treesvc.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// CreateFolder creates a new folder
// POST /api/sites/{siteId}/folders
// Returns 201 if created, 409 with the failed result if the path is taken
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req treesvc.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.SiteID = r.PathValue("siteId")

	result, err := h.folderService.CreateFolder(r.Context(), &req)
	respondOperation(w, h.logger, http.StatusCreated, result, err)
}

// RenameFolder changes a folder's name and title
// PATCH /api/folders/{id}
func (h *FolderHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	var req treesvc.RenameFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.FolderID = r.PathValue("id")

	result, err := h.folderService.RenameFolder(r.Context(), &req)
	respondOperation(w, h.logger, http.StatusOK, result, err)
}

// DeleteFolder deletes a folder and its subtree
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	req := treesvc.DeleteFolderRequest{FolderID: r.PathValue("id")}

	result, err := h.folderService.DeleteFolder(r.Context(), &req)
	respondOperation(w, h.logger, http.StatusOK, result, err)
}
