package handler

import "net/http"

// Handlers groups the API handlers registered on the router
type Handlers struct {
	Tree   *TreeHandler
	Folder *FolderHandler
	Health *HealthHandler
}

// Register adds the API routes to mux (Go 1.22+ method and wildcard patterns)
func (h *Handlers) Register(mux *http.ServeMux) {
	if h.Health != nil {
		mux.HandleFunc("GET /health", h.Health.HealthCheck)
	}

	// Tree queries
	mux.HandleFunc("GET /api/sites/{siteId}/tree", h.Tree.GetTree)
	mux.HandleFunc("GET /api/folders/{id}", h.Tree.GetFolder)

	// Folder mutations
	mux.HandleFunc("POST /api/sites/{siteId}/folders", h.Folder.CreateFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", h.Folder.RenameFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", h.Folder.DeleteFolder)
}
