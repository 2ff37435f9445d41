package tree

import (
	"context"

	"wikitree/internal/domain/models/tree"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_services.go -package=mocks wikitree/internal/domain/services/tree TreeService,FolderService,ContentCleaner

// TreeService answers read queries over the tree
type TreeService interface {
	// Tree lists a bounded-depth page of items below a parent
	Tree(ctx context.Context, query *tree.Query) ([]tree.Item, error)

	// FolderByID returns a single folder as an item
	FolderByID(ctx context.Context, id string) (*tree.Item, error)
}

// FolderService creates, renames and deletes folders. Every method returns a
// result describing the outcome; on failure the error is returned as well.
type FolderService interface {
	// CreateFolder creates a folder under an optional parent
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*tree.OperationResult, error)

	// RenameFolder changes a folder's name and title, moving its whole subtree
	RenameFolder(ctx context.Context, req *RenameFolderRequest) (*tree.OperationResult, error)

	// DeleteFolder removes a folder and everything below it
	DeleteFolder(ctx context.Context, req *DeleteFolderRequest) (*tree.OperationResult, error)
}

// ContentCleaner releases the content of pages and assets removed with a folder.
// It is called after the removal has committed.
type ContentCleaner interface {
	PagesRemoved(ctx context.Context, siteID string, pageIDs []string) error
	AssetsRemoved(ctx context.Context, siteID string, assetIDs []string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	SiteID   string `json:"-"`
	ParentID string `json:"parentId,omitempty"` // empty = root
	PathName string `json:"pathName"`
	Title    string `json:"title"`
}

// RenameFolderRequest represents a folder rename request
type RenameFolderRequest struct {
	FolderID string `json:"-"`
	PathName string `json:"pathName"`
	Title    string `json:"title"`
}

// DeleteFolderRequest represents a folder deletion request
type DeleteFolderRequest struct {
	FolderID string `json:"-"`
}
