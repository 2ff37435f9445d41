package tree

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"go.uber.org/mock/gomock"

	"wikitree/internal/domain"
	"wikitree/internal/domain/models/tree"
	"wikitree/internal/domain/repositories"
	treerepo "wikitree/internal/domain/repositories/tree"
	treesvc "wikitree/internal/domain/services/tree"
	"wikitree/internal/domain/services/tree/mocks"
	"wikitree/internal/treepath"
)

func TestCreateFolder(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	docsID := env.mustCreateFolder(t, "docs")
	pageID := env.mustInsert(t, "docs/readme", tree.NodeTypePage)

	tests := []struct {
		name     string
		req      treesvc.CreateFolderRequest
		wantCode string
		wantErr  error
	}{
		{
			name:     "duplicate at root",
			req:      treesvc.CreateFolderRequest{SiteID: testSite, PathName: "docs", Title: "Docs"},
			wantCode: domain.CodeFolderAlreadyExists,
			wantErr:  domain.ErrConflict,
		},
		{
			name:     "duplicate of a page",
			req:      treesvc.CreateFolderRequest{SiteID: testSite, ParentID: docsID, PathName: "readme", Title: "Readme"},
			wantCode: domain.CodeFolderAlreadyExists,
			wantErr:  domain.ErrConflict,
		},
		{
			name:     "uppercase name",
			req:      treesvc.CreateFolderRequest{SiteID: testSite, PathName: "Docs", Title: "Docs"},
			wantCode: domain.CodeInvalidPathName,
			wantErr:  domain.ErrValidation,
		},
		{
			name:     "name with underscore",
			req:      treesvc.CreateFolderRequest{SiteID: testSite, PathName: "my_docs", Title: "Docs"},
			wantCode: domain.CodeInvalidPathName,
			wantErr:  domain.ErrValidation,
		},
		{
			name:     "empty title",
			req:      treesvc.CreateFolderRequest{SiteID: testSite, PathName: "guide", Title: ""},
			wantCode: domain.CodeInvalidTitle,
			wantErr:  domain.ErrValidation,
		},
		{
			name:     "title with markup",
			req:      treesvc.CreateFolderRequest{SiteID: testSite, PathName: "guide", Title: "<b>Guide</b>"},
			wantCode: domain.CodeInvalidTitle,
			wantErr:  domain.ErrValidation,
		},
		{
			name:     "unknown parent",
			req:      treesvc.CreateFolderRequest{SiteID: testSite, ParentID: "missing", PathName: "guide", Title: "Guide"},
			wantCode: domain.CodeParentNotFound,
			wantErr:  domain.ErrNotFound,
		},
		{
			name:     "parent in another site",
			req:      treesvc.CreateFolderRequest{SiteID: "site-2", ParentID: docsID, PathName: "guide", Title: "Guide"},
			wantCode: domain.CodeParentNotFound,
			wantErr:  domain.ErrNotFound,
		},
		{
			name:     "parent is a page",
			req:      treesvc.CreateFolderRequest{SiteID: testSite, ParentID: pageID, PathName: "guide", Title: "Guide"},
			wantCode: domain.CodeParentNotFolder,
			wantErr:  domain.ErrValidation,
		},
		{
			name:     "missing site",
			req:      treesvc.CreateFolderRequest{PathName: "guide", Title: "Guide"},
			wantCode: domain.CodeInvalidSite,
			wantErr:  domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := env.folders.CreateFolder(ctx, &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateFolder() error = %v, want %v", err, tt.wantErr)
			}
			if result == nil || result.Succeeded {
				t.Fatalf("CreateFolder() result = %+v, want failure", result)
			}
			if result.ErrorCode != tt.wantCode {
				t.Errorf("ErrorCode = %q, want %q", result.ErrorCode, tt.wantCode)
			}
			if result.Message == "" {
				t.Error("failed result has no message")
			}
		})
	}

	t.Run("nested folder", func(t *testing.T) {
		result, err := env.folders.CreateFolder(ctx, &treesvc.CreateFolderRequest{
			SiteID:   testSite,
			ParentID: docsID,
			PathName: "getting-started",
			Title:    "Getting Started",
		})
		if err != nil || !result.Succeeded {
			t.Fatalf("CreateFolder() = %+v, %v", result, err)
		}
		if result.Message != "Folder created successfully" {
			t.Errorf("Message = %q", result.Message)
		}

		node := env.mustFind(t, "docs/getting-started")
		if node.FolderPath.String() != "docs" || node.Type != tree.NodeTypeFolder {
			t.Errorf("stored %q type %s", node.FolderPath.String(), node.Type)
		}
	})
}

// blindRepo hides existing siblings from the pre-check, as a concurrent
// writer would.
type blindRepo struct {
	treerepo.NodeRepository
}

func (blindRepo) GetByParentAndName(context.Context, string, treepath.Path, string) (*tree.Node, error) {
	return nil, nil
}

func (blindRepo) FindSibling(context.Context, string, treepath.Path, string, string) (*tree.Node, error) {
	return nil, nil
}

func TestCreateFolder_StorageConflict(t *testing.T) {
	env := newTestEnv(t, nil)
	env.mustCreateFolder(t, "docs")

	folders := env.withNodes(blindRepo{env.nodes})
	result, err := folders.CreateFolder(context.Background(), &treesvc.CreateFolderRequest{
		SiteID:   testSite,
		PathName: "docs",
		Title:    "Docs",
	})

	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("CreateFolder() error = %v, want ConflictError", err)
	}
	if result.ErrorCode != domain.CodeFolderAlreadyExists {
		t.Errorf("ErrorCode = %q, want %q", result.ErrorCode, domain.CodeFolderAlreadyExists)
	}
}

func TestCreateFolder_Concurrent(t *testing.T) {
	env := newTestEnv(t, nil)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := env.folders.CreateFolder(context.Background(), &treesvc.CreateFolderRequest{
				SiteID:   testSite,
				PathName: "docs",
				Title:    "Docs",
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil && result.Succeeded:
				succeeded++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			default:
				t.Errorf("CreateFolder() = %+v, %v", result, err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || conflicts != workers-1 {
		t.Errorf("succeeded = %d conflicts = %d, want 1 and %d", succeeded, conflicts, workers-1)
	}
}

func TestCreateFolder_IgnoresCallerCancellation(t *testing.T) {
	env := newTestEnv(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := env.folders.CreateFolder(ctx, &treesvc.CreateFolderRequest{
		SiteID:   testSite,
		PathName: "docs",
		Title:    "Docs",
	})
	if err != nil || !result.Succeeded {
		t.Fatalf("CreateFolder() = %+v, %v", result, err)
	}
	env.mustFind(t, "docs")
}

func TestRenameFolder(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	docsID := env.mustCreateFolder(t, "docs")
	guideID := env.mustCreateFolder(t, "docs/guide")
	env.mustCreateFolder(t, "docs/guide/deep")
	introID := env.mustInsert(t, "docs/guide/intro", tree.NodeTypePage)
	logoID := env.mustInsert(t, "docs/guide/deep/logo", tree.NodeTypeAsset)
	// Shares a string prefix with docs but lives outside its subtree
	otherID := env.mustCreateFolder(t, "docs-archive")
	env.mustInsert(t, "docs-archive/old", tree.NodeTypePage)

	result, err := env.folders.RenameFolder(ctx, &treesvc.RenameFolderRequest{
		FolderID: docsID,
		PathName: "help",
		Title:    "Help",
	})
	if err != nil || !result.Succeeded {
		t.Fatalf("RenameFolder() = %+v, %v", result, err)
	}
	if result.Message != "Folder renamed successfully" {
		t.Errorf("Message = %q", result.Message)
	}

	wantPaths := map[string]string{
		docsID:  "help",
		guideID: "help/guide",
		introID: "help/guide/intro",
		logoID:  "help/guide/deep/logo",
		otherID: "docs-archive",
	}
	for id, want := range wantPaths {
		node, err := env.nodes.GetByID(ctx, id)
		if err != nil || node == nil {
			t.Fatalf("GetByID(%s) = %v, %v", id, node, err)
		}
		if got := node.FullPath().External(); got != want {
			t.Errorf("path of %s = %q, want %q", id, got, want)
		}
	}
	if docs := env.mustFind(t, "help"); docs.Title != "Help" {
		t.Errorf("Title = %q, want Help", docs.Title)
	}
	env.mustFind(t, "docs-archive/old")
	if env.find(t, "docs/guide") != nil {
		t.Error("docs/guide still exists after rename")
	}
}

func TestRenameFolder_TitleOnly(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	id := env.mustCreateFolder(t, "docs")
	env.mustCreateFolder(t, "docs/guide")

	result, err := env.folders.RenameFolder(ctx, &treesvc.RenameFolderRequest{FolderID: id, PathName: "docs", Title: "Documentation"})
	if err != nil || !result.Succeeded {
		t.Fatalf("RenameFolder() = %+v, %v", result, err)
	}
	if got := env.mustFind(t, "docs").Title; got != "Documentation" {
		t.Errorf("Title = %q, want Documentation", got)
	}
	env.mustFind(t, "docs/guide")
}

func TestRenameFolder_Errors(t *testing.T) {
	env := newTestEnv(t, nil)

	docsID := env.mustCreateFolder(t, "docs")
	env.mustCreateFolder(t, "help")
	pageID := env.mustInsert(t, "readme", tree.NodeTypePage)

	tests := []struct {
		name     string
		req      treesvc.RenameFolderRequest
		wantCode string
	}{
		{name: "sibling exists", req: treesvc.RenameFolderRequest{FolderID: docsID, PathName: "help", Title: "Help"}, wantCode: domain.CodeFolderAlreadyExists},
		{name: "unknown folder", req: treesvc.RenameFolderRequest{FolderID: "missing", PathName: "x", Title: "X"}, wantCode: domain.CodeFolderNotFound},
		{name: "page is not a folder", req: treesvc.RenameFolderRequest{FolderID: pageID, PathName: "x", Title: "X"}, wantCode: domain.CodeFolderNotFound},
		{name: "invalid name", req: treesvc.RenameFolderRequest{FolderID: docsID, PathName: "a/b", Title: "X"}, wantCode: domain.CodeInvalidPathName},
		{name: "invalid title", req: treesvc.RenameFolderRequest{FolderID: docsID, PathName: "x", Title: `say "hi"`}, wantCode: domain.CodeInvalidTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := env.folders.RenameFolder(context.Background(), &tt.req)
			if err == nil {
				t.Fatal("RenameFolder() error = nil")
			}
			if result.Succeeded || result.ErrorCode != tt.wantCode {
				t.Errorf("result = %+v, want code %s", result, tt.wantCode)
			}
		})
	}

	env.mustFind(t, "docs")
}

// failingUpdateRepo fails the final step of a rename.
type failingUpdateRepo struct {
	treerepo.NodeRepository
}

func (failingUpdateRepo) UpdateTitleAndName(context.Context, string, string, string) error {
	return errors.New("disk full")
}

// contendedUpdateRepo fails a rename the way a serialization abort would.
type contendedUpdateRepo struct {
	treerepo.NodeRepository
}

func (contendedUpdateRepo) UpdateTitleAndName(context.Context, string, string, string) error {
	return fmt.Errorf("update node: %w", repositories.ErrSerializationFailure)
}

func TestRenameFolder_ConcurrentUpdate(t *testing.T) {
	env := newTestEnv(t, nil)
	docsID := env.mustCreateFolder(t, "docs")

	folders := env.withNodes(contendedUpdateRepo{env.nodes})
	result, err := folders.RenameFolder(context.Background(), &treesvc.RenameFolderRequest{
		FolderID: docsID,
		PathName: "help",
		Title:    "Help",
	})

	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("RenameFolder() error = %v, want ConflictError", err)
	}
	if result.Succeeded || result.ErrorCode != domain.CodeConcurrentUpdate {
		t.Errorf("result = %+v, want %s", result, domain.CodeConcurrentUpdate)
	}
	env.mustFind(t, "docs")
}

func TestRenameFolder_RollsBack(t *testing.T) {
	env := newTestEnv(t, nil)

	docsID := env.mustCreateFolder(t, "docs")
	env.mustCreateFolder(t, "docs/guide")
	env.mustInsert(t, "docs/guide/intro", tree.NodeTypePage)

	folders := env.withNodes(failingUpdateRepo{env.nodes})
	result, err := folders.RenameFolder(context.Background(), &treesvc.RenameFolderRequest{
		FolderID: docsID,
		PathName: "help",
		Title:    "Help",
	})
	if err == nil {
		t.Fatal("RenameFolder() error = nil")
	}
	if result.ErrorCode != domain.CodeInternal || result.Message != "An unexpected error occurred" {
		t.Errorf("result = %+v", result)
	}

	// The descendant rewrite ran before the failure and must be undone
	env.mustFind(t, "docs/guide")
	env.mustFind(t, "docs/guide/intro")
	if env.find(t, "help/guide") != nil {
		t.Error("help/guide visible after rollback")
	}
}

func TestDeleteFolder(t *testing.T) {
	ctrl := gomock.NewController(t)
	cleaner := mocks.NewMockContentCleaner(ctrl)
	env := newTestEnv(t, cleaner)
	ctx := context.Background()

	aID := env.mustCreateFolder(t, "a")
	bID := env.mustCreateFolder(t, "a/b")
	cID := env.mustCreateFolder(t, "a/b/c")
	pageID := env.mustInsert(t, "a/b/c/page", tree.NodeTypePage)
	assetID := env.mustInsert(t, "a/logo", tree.NodeTypeAsset)
	keepID := env.mustCreateFolder(t, "ab")

	cleaner.EXPECT().PagesRemoved(gomock.Any(), testSite, []string{pageID}).Return(nil)
	cleaner.EXPECT().AssetsRemoved(gomock.Any(), testSite, []string{assetID}).Return(nil)

	result, err := env.folders.DeleteFolder(ctx, &treesvc.DeleteFolderRequest{FolderID: aID})
	if err != nil || !result.Succeeded {
		t.Fatalf("DeleteFolder() = %+v, %v", result, err)
	}
	if result.Removed == nil || *result.Removed != (tree.RemovedSet{Folders: 3, Pages: 1, Assets: 1}) {
		t.Errorf("Removed = %+v, want 3 folders, 1 page, 1 asset", result.Removed)
	}

	for _, id := range []string{aID, bID, cID, pageID, assetID} {
		if node, _ := env.nodes.GetByID(ctx, id); node != nil {
			t.Errorf("%s still exists at %s", id, node.FullPath().External())
		}
	}
	if node, _ := env.nodes.GetByID(ctx, keepID); node == nil {
		t.Error("sibling folder ab was removed")
	}
}

func TestDeleteFolder_RemovedSetPartitions(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	want := []string{
		env.mustCreateFolder(t, "a"),
		env.mustCreateFolder(t, "a/b"),
		env.mustCreateFolder(t, "a/b/c"),
	}
	sort.Strings(want)

	folder := env.mustFind(t, "a")
	removed, err := env.nodes.DeleteByPathPrefix(ctx, testSite, folder.FullPath())
	if err != nil {
		t.Fatalf("DeleteByPathPrefix() error = %v", err)
	}
	folders, pages, assets := tree.PartitionRemoved(removed)
	sort.Strings(folders)
	if len(pages) != 0 || len(assets) != 0 || len(folders) != len(want) {
		t.Fatalf("partition = %v %v %v, want folders %v", folders, pages, assets, want)
	}
	for i := range want {
		if folders[i] != want[i] {
			t.Errorf("folders[%d] = %s, want %s", i, folders[i], want[i])
		}
	}
}

func TestDeleteFolder_CleanupFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	cleaner := mocks.NewMockContentCleaner(ctrl)
	env := newTestEnv(t, cleaner)

	id := env.mustCreateFolder(t, "a")
	env.mustInsert(t, "a/page", tree.NodeTypePage)

	cleaner.EXPECT().PagesRemoved(gomock.Any(), testSite, gomock.Len(1)).Return(errors.New("renderer offline"))

	result, err := env.folders.DeleteFolder(context.Background(), &treesvc.DeleteFolderRequest{FolderID: id})
	if err != nil || !result.Succeeded {
		t.Fatalf("DeleteFolder() = %+v, %v", result, err)
	}
	if env.find(t, "a") != nil {
		t.Error("folder survived delete")
	}
}

func TestDeleteFolder_NotFound(t *testing.T) {
	env := newTestEnv(t, nil)
	pageID := env.mustInsert(t, "page", tree.NodeTypePage)

	for _, id := range []string{"missing", pageID} {
		result, err := env.folders.DeleteFolder(context.Background(), &treesvc.DeleteFolderRequest{FolderID: id})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("DeleteFolder(%s) error = %v, want ErrNotFound", id, err)
		}
		if result.ErrorCode != domain.CodeFolderNotFound {
			t.Errorf("ErrorCode = %q, want %q", result.ErrorCode, domain.CodeFolderNotFound)
		}
	}
	env.mustFind(t, "page")
}
