package tree

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"wikitree/internal/domain/models/tree"
	treerepo "wikitree/internal/domain/repositories/tree"
	treesvc "wikitree/internal/domain/services/tree"
	"wikitree/internal/repository/sqlite"
	"wikitree/internal/treepath"
)

const testSite = "site-1"

type testEnv struct {
	nodes   treerepo.NodeRepository
	tx      *sqlite.TransactionManager
	trees   treesvc.TreeService
	folders treesvc.FolderService
	logger  *slog.Logger
}

// newTestEnv wires the services over a fresh SQLite database. A nil cleaner
// uses LogCleaner.
func newTestEnv(t *testing.T, cleaner treesvc.ContentCleaner) *testEnv {
	t.Helper()

	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "tree.db"))
	if err != nil {
		t.Fatalf("sqlite.Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cleaner == nil {
		cleaner = NewLogCleaner(logger)
	}

	nodes := sqlite.NewNodeRepository(&sqlite.RepositoryConfig{DB: db, Logger: logger})
	tx := sqlite.NewTransactionManager(db, logger)
	return &testEnv{
		nodes:   nodes,
		tx:      tx,
		trees:   NewTreeService(nodes, logger),
		folders: NewFolderService(nodes, tx, cleaner, logger),
		logger:  logger,
	}
}

// withNodes rebuilds the folder service over a different repository.
func (e *testEnv) withNodes(nodes treerepo.NodeRepository) treesvc.FolderService {
	return NewFolderService(nodes, e.tx, NewLogCleaner(e.logger), e.logger)
}

// mustCreateFolder creates a folder at the external path, creating nothing
// else, and returns its id. The parent must already exist.
func (e *testEnv) mustCreateFolder(t *testing.T, path string) string {
	t.Helper()

	full := treepath.FromExternal(path)
	parentID := ""
	if !full.Parent().IsRoot() {
		parentID = e.mustFind(t, full.Parent().External()).ID
	}

	result, err := e.folders.CreateFolder(context.Background(), &treesvc.CreateFolderRequest{
		SiteID:   testSite,
		ParentID: parentID,
		PathName: full.Last(),
		Title:    "Title of " + full.Last(),
	})
	if err != nil || !result.Succeeded {
		t.Fatalf("CreateFolder(%s) = %+v, %v", path, result, err)
	}
	return e.mustFind(t, path).ID
}

// mustInsert stores a page or asset directly.
func (e *testEnv) mustInsert(t *testing.T, path string, nodeType tree.NodeType) string {
	t.Helper()

	full := treepath.FromExternal(path)
	node := &tree.Node{
		SiteID:     testSite,
		FolderPath: full.Parent(),
		FileName:   full.Last(),
		Type:       nodeType,
		Title:      "Title of " + full.Last(),
	}
	if err := e.nodes.Insert(context.Background(), node); err != nil {
		t.Fatalf("Insert(%s) error = %v", path, err)
	}
	return node.ID
}

func (e *testEnv) find(t *testing.T, path string) *tree.Node {
	t.Helper()

	full := treepath.FromExternal(path)
	node, err := e.nodes.GetByParentAndName(context.Background(), testSite, full.Parent(), full.Last())
	if err != nil {
		t.Fatalf("GetByParentAndName(%s) error = %v", path, err)
	}
	return node
}

func (e *testEnv) mustFind(t *testing.T, path string) *tree.Node {
	t.Helper()

	node := e.find(t, path)
	if node == nil {
		t.Fatalf("%s does not exist", path)
	}
	return node
}

func itemPaths(items []tree.Item) []string {
	paths := make([]string, len(items))
	for i, item := range items {
		paths[i] = item.Path
	}
	return paths
}

func intPtr(n int) *int {
	return &n
}
