package sqlite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"testing"

	"wikitree/internal/domain/models/tree"
	"wikitree/internal/domain/repositories"
	treerepo "wikitree/internal/domain/repositories/tree"
	"wikitree/internal/treepath"
)

const testSite = "site-1"

func newTestRepo(t *testing.T) treerepo.NodeRepository {
	t.Helper()

	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	return NewNodeRepository(&RepositoryConfig{
		DB:     db,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// insert creates a node at the external path and returns it.
func insert(t *testing.T, repo treerepo.NodeRepository, path string, nodeType tree.NodeType) *tree.Node {
	t.Helper()

	full := treepath.FromExternal(path)
	node := &tree.Node{
		SiteID:     testSite,
		FolderPath: full.Parent(),
		FileName:   full.Last(),
		Type:       nodeType,
		Title:      full.Last(),
	}
	if err := repo.Insert(context.Background(), node); err != nil {
		t.Fatalf("Insert(%s) error = %v", path, err)
	}
	return node
}

func fullPaths(nodes []tree.Node) []string {
	paths := make([]string, len(nodes))
	for i := range nodes {
		paths[i] = nodes[i].FullPath().External()
	}
	return paths
}

func TestNodeRepository_InsertAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := insert(t, repo, "docs/getting-started", tree.NodeTypeFolder)
	if created.ID == "" {
		t.Fatal("Insert() did not assign an id")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByID() = nil")
	}
	if got.FolderPath.String() != "docs" || got.FileName != "getting-started" {
		t.Errorf("got folder_path %q file_name %q", got.FolderPath.String(), got.FileName)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created.CreatedAt)
	}

	byName, err := repo.GetByParentAndName(ctx, testSite, treepath.Path{"docs"}, "getting-started")
	if err != nil || byName == nil || byName.ID != created.ID {
		t.Errorf("GetByParentAndName() = %v, %v", byName, err)
	}

	missing, err := repo.GetByID(ctx, "does-not-exist")
	if err != nil || missing != nil {
		t.Errorf("GetByID(missing) = %v, %v, want nil, nil", missing, err)
	}

	sibling, err := repo.FindSibling(ctx, testSite, treepath.Path{"docs"}, "getting-started", created.ID)
	if err != nil || sibling != nil {
		t.Errorf("FindSibling(excluding self) = %v, %v, want nil, nil", sibling, err)
	}
}

func TestNodeRepository_InsertDuplicate(t *testing.T) {
	repo := newTestRepo(t)

	insert(t, repo, "docs", tree.NodeTypeFolder)
	err := repo.Insert(context.Background(), &tree.Node{
		SiteID:   testSite,
		FileName: "docs",
		Type:     tree.NodeTypePage,
		Title:    "Docs",
	})
	if !errors.Is(err, repositories.ErrUniqueViolation) {
		t.Fatalf("Insert(duplicate) error = %v, want ErrUniqueViolation", err)
	}

	// Same name in another site is fine
	if err := repo.Insert(context.Background(), &tree.Node{
		SiteID:   "site-2",
		FileName: "docs",
		Type:     tree.NodeTypeFolder,
		Title:    "Docs",
	}); err != nil {
		t.Fatalf("Insert(other site) error = %v", err)
	}
}

func TestNodeRepository_RewritePathPrefix(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	insert(t, repo, "docs", tree.NodeTypeFolder)
	insert(t, repo, "docs/guide", tree.NodeTypeFolder)
	insert(t, repo, "docs/guide/intro", tree.NodeTypePage)
	insert(t, repo, "docs/guide/deep", tree.NodeTypeFolder)
	insert(t, repo, "docs/guide/deep/logo", tree.NodeTypeAsset)
	// Shares a string prefix with docs.guide but is not below it
	insert(t, repo, "docs/guide-extra", tree.NodeTypeFolder)
	insert(t, repo, "docs/guide-extra/page", tree.NodeTypePage)

	n, err := repo.RewritePathPrefix(ctx, testSite, treepath.Path{"docs", "guide"}, treepath.Path{"help", "guide"})
	if err != nil {
		t.Fatalf("RewritePathPrefix() error = %v", err)
	}
	if n != 3 {
		t.Errorf("RewritePathPrefix() rewrote %d rows, want 3", n)
	}

	nodes, err := repo.Query(ctx, &treerepo.NodeFilter{
		SiteID:         testSite,
		MaxExtraLabels: 10,
		OrderBy:        tree.OrderByFileName,
		Limit:          100,
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	got := fullPaths(nodes)
	sort.Strings(got)
	want := []string{
		"docs",
		"docs/guide", // the folder row itself is renamed by the caller
		"docs/guide-extra",
		"docs/guide-extra/page",
		"help/guide/deep",
		"help/guide/deep/logo",
		"help/guide/intro",
	}
	if len(got) != len(want) {
		t.Fatalf("paths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNodeRepository_DeleteByPathPrefix(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := insert(t, repo, "a", tree.NodeTypeFolder)
	ab := insert(t, repo, "a/b", tree.NodeTypeFolder)
	abc := insert(t, repo, "a/b/c", tree.NodeTypePage)
	asset := insert(t, repo, "a/logo", tree.NodeTypeAsset)
	keep := insert(t, repo, "ab", tree.NodeTypeFolder)

	removed, err := repo.DeleteByPathPrefix(ctx, testSite, treepath.Path{"a"})
	if err != nil {
		t.Fatalf("DeleteByPathPrefix() error = %v", err)
	}

	folders, pages, assets := tree.PartitionRemoved(removed)
	sort.Strings(folders)
	wantFolders := []string{a.ID, ab.ID}
	sort.Strings(wantFolders)
	if len(folders) != 2 || folders[0] != wantFolders[0] || folders[1] != wantFolders[1] {
		t.Errorf("removed folders = %v, want %v", folders, wantFolders)
	}
	if len(pages) != 1 || pages[0] != abc.ID {
		t.Errorf("removed pages = %v, want [%s]", pages, abc.ID)
	}
	if len(assets) != 1 || assets[0] != asset.ID {
		t.Errorf("removed assets = %v, want [%s]", assets, asset.ID)
	}

	still, err := repo.GetByID(ctx, keep.ID)
	if err != nil || still == nil {
		t.Errorf("sibling with shared prefix was removed: %v, %v", still, err)
	}

	// Deleting an already-removed id is a no-op
	if err := repo.DeleteByID(ctx, a.ID); err != nil {
		t.Errorf("DeleteByID(removed) error = %v", err)
	}
}

func TestNodeRepository_Query(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	insert(t, repo, "a", tree.NodeTypeFolder)
	insert(t, repo, "a/b", tree.NodeTypeFolder)
	insert(t, repo, "a/b/c", tree.NodeTypeFolder)
	insert(t, repo, "a/b/c/d", tree.NodeTypePage)
	insert(t, repo, "a/b/page", tree.NodeTypePage)
	insert(t, repo, "z", tree.NodeTypePage)

	tests := []struct {
		name   string
		filter treerepo.NodeFilter
		want   []string
	}{
		{
			name:   "root children",
			filter: treerepo.NodeFilter{},
			want:   []string{"a", "z"},
		},
		{
			name:   "immediate children of a",
			filter: treerepo.NodeFilter{Parent: treepath.Path{"a"}},
			want:   []string{"a/b"},
		},
		{
			name:   "two levels below a",
			filter: treerepo.NodeFilter{Parent: treepath.Path{"a"}, MaxExtraLabels: 1},
			want:   []string{"a/b", "a/b/c", "a/b/page"},
		},
		{
			name:   "pages only",
			filter: treerepo.NodeFilter{Parent: treepath.Path{"a"}, MaxExtraLabels: 5, Types: []tree.NodeType{tree.NodeTypePage}},
			want:   []string{"a/b/page", "a/b/c/d"},
		},
		{
			name:   "with ancestors",
			filter: treerepo.NodeFilter{Parent: treepath.Path{"a", "b"}, IncludeAncestors: true},
			want:   []string{"a", "a/b", "a/b/c", "a/b/page"},
		},
		{
			name:   "descending with offset",
			filter: treerepo.NodeFilter{Parent: treepath.Path{"a", "b"}, Descending: true, Offset: 1},
			want:   []string{"a/b/c"},
		},
		{
			name:   "limit",
			filter: treerepo.NodeFilter{Parent: treepath.Path{"a"}, MaxExtraLabels: 5, Limit: 2},
			want:   []string{"a/b", "a/b/c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.filter
			filter.SiteID = testSite
			filter.OrderBy = tree.OrderByTitle
			if filter.Limit == 0 {
				filter.Limit = 100
			}

			nodes, err := repo.Query(ctx, &filter)
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			got := fullPaths(nodes)
			if len(got) != len(tt.want) {
				t.Fatalf("Query() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Query()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
			for _, n := range nodes {
				if n.Depth != n.FolderPath.Len()+1 {
					t.Errorf("%s depth = %d, want %d", n.FullPath().External(), n.Depth, n.FolderPath.Len()+1)
				}
			}
		})
	}
}

func TestNodeRepository_CountChildren(t *testing.T) {
	repo := newTestRepo(t)

	insert(t, repo, "a", tree.NodeTypeFolder)
	insert(t, repo, "a/x", tree.NodeTypePage)
	insert(t, repo, "a/y", tree.NodeTypePage)
	insert(t, repo, "a/y-folder", tree.NodeTypeFolder)
	insert(t, repo, "a/y-folder/z", tree.NodeTypePage)
	insert(t, repo, "b", tree.NodeTypeFolder)

	counts, err := repo.CountChildren(context.Background(), testSite, []treepath.Path{{"a"}, {"b"}, {"a", "y_folder"}})
	if err != nil {
		t.Fatalf("CountChildren() error = %v", err)
	}
	if counts["a"] != 3 {
		t.Errorf("counts[a] = %d, want 3", counts["a"])
	}
	if counts["a.y_folder"] != 1 {
		t.Errorf("counts[a.y_folder] = %d, want 1", counts["a.y_folder"])
	}
	if _, ok := counts["b"]; ok {
		t.Errorf("counts[b] present for an empty folder")
	}
}
