// Package seed loads tree fixtures from YAML and writes them through the
// folder service, so seeded folders obey the same rules as API-created ones.
package seed

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"wikitree/internal/domain"
	"wikitree/internal/domain/models/tree"
	treerepo "wikitree/internal/domain/repositories/tree"
	treesvc "wikitree/internal/domain/services/tree"
	"wikitree/internal/treepath"
)

//go:embed fixtures/default.yaml
var fixtureFiles embed.FS

// Fixture is the YAML document describing one or more sites.
type Fixture struct {
	Sites []SiteFixture `yaml:"sites"`
}

// SiteFixture lists the nodes of one site. Parents must come before children.
type SiteFixture struct {
	ID    string        `yaml:"id"`
	Nodes []NodeFixture `yaml:"nodes"`
}

// NodeFixture is a single folder, page or asset at an external path.
type NodeFixture struct {
	Path  string        `yaml:"path"`
	Type  tree.NodeType `yaml:"type"`
	Title string        `yaml:"title"`
}

// Stats counts what a seed run did.
type Stats struct {
	Created int
	Skipped int // already present
}

// LoadFixture decodes and checks a fixture. Unknown keys are rejected.
func LoadFixture(r io.Reader) (*Fixture, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var fixture Fixture
	if err := decoder.Decode(&fixture); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	for _, site := range fixture.Sites {
		if site.ID == "" {
			return nil, errors.New("fixture site without id")
		}
		for _, node := range site.Nodes {
			if treepath.FromExternal(node.Path).IsRoot() {
				return nil, fmt.Errorf("site %s: node without path", site.ID)
			}
			if !node.Type.Valid() {
				return nil, fmt.Errorf("site %s: %s has unknown type %q", site.ID, node.Path, node.Type)
			}
		}
	}

	return &fixture, nil
}

// DefaultFixture returns the built-in sample site.
func DefaultFixture() (*Fixture, error) {
	data, err := fixtureFiles.ReadFile("fixtures/default.yaml")
	if err != nil {
		return nil, err
	}
	return LoadFixture(bytes.NewReader(data))
}

// Seeder writes fixtures into the store.
type Seeder struct {
	folders treesvc.FolderService
	nodes   treerepo.NodeRepository
	logger  *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(folders treesvc.FolderService, nodes treerepo.NodeRepository, logger *slog.Logger) *Seeder {
	return &Seeder{
		folders: folders,
		nodes:   nodes,
		logger:  logger,
	}
}

// Seed creates every node of the fixture. Nodes that already exist are skipped,
// so running the same fixture twice is harmless.
func (s *Seeder) Seed(ctx context.Context, fixture *Fixture) (Stats, error) {
	var stats Stats
	for _, site := range fixture.Sites {
		for _, node := range site.Nodes {
			created, err := s.seedNode(ctx, site.ID, node)
			if err != nil {
				return stats, fmt.Errorf("site %s: %s: %w", site.ID, node.Path, err)
			}
			if created {
				stats.Created++
			} else {
				stats.Skipped++
			}
		}
		s.logger.Info("site seeded", "site_id", site.ID, "nodes", len(site.Nodes))
	}
	return stats, nil
}

func (s *Seeder) seedNode(ctx context.Context, siteID string, node NodeFixture) (bool, error) {
	full := treepath.FromExternal(node.Path)
	parent := full.Parent()

	existing, err := s.nodes.GetByParentAndName(ctx, siteID, parent, full.Last())
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	if node.Type == tree.NodeTypeFolder {
		return true, s.seedFolder(ctx, siteID, parent, full.Last(), node.Title)
	}

	// Pages and assets are written directly; their content lives elsewhere
	if err := treepath.ValidateName(full.Last()); err != nil {
		return false, domain.NewValidationError(domain.CodeInvalidPathName, err.Error())
	}
	if err := treepath.ValidateTitle(node.Title); err != nil {
		return false, domain.NewValidationError(domain.CodeInvalidTitle, err.Error())
	}
	if err := s.requireFolder(ctx, siteID, parent); err != nil {
		return false, err
	}
	return true, s.nodes.Insert(ctx, &tree.Node{
		SiteID:     siteID,
		FolderPath: parent,
		FileName:   full.Last(),
		Type:       node.Type,
		Title:      node.Title,
	})
}

func (s *Seeder) seedFolder(ctx context.Context, siteID string, parent treepath.Path, name, title string) error {
	req := &treesvc.CreateFolderRequest{
		SiteID:   siteID,
		PathName: name,
		Title:    title,
	}
	if !parent.IsRoot() {
		folder, err := s.nodes.GetByParentAndName(ctx, siteID, parent.Parent(), parent.Last())
		if err != nil {
			return err
		}
		if folder == nil {
			return domain.NewNotFoundError(domain.CodeParentNotFound, fmt.Sprintf("parent %s not found", parent.External()))
		}
		req.ParentID = folder.ID
	}

	_, err := s.folders.CreateFolder(ctx, req)
	return err
}

func (s *Seeder) requireFolder(ctx context.Context, siteID string, path treepath.Path) error {
	if path.IsRoot() {
		return nil
	}
	folder, err := s.nodes.GetByParentAndName(ctx, siteID, path.Parent(), path.Last())
	if err != nil {
		return err
	}
	if folder == nil || !folder.IsFolder() {
		return domain.NewNotFoundError(domain.CodeParentNotFound, fmt.Sprintf("folder %s not found", path.External()))
	}
	return nil
}
