package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"wikitree/internal/config"
	"wikitree/internal/repository/store"
	"wikitree/internal/seed"
	treeservice "wikitree/internal/service/tree"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop and recreate the node table before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed nodes")
	clearData := flag.Bool("clear-data", false, "Remove every node of the fixture's sites (keep schema)")
	fixturePath := flag.String("file", "", "YAML fixture to load (default: built-in demo site)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: Cannot run destructive operations (-drop-tables or -clear-data) in production environment")
	}

	logger := config.NewLogger(cfg, nil)
	ctx := context.Background()

	// Opening the store creates the schema when missing
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	if *dropTables {
		logger.Info("dropping node table", "store", cfg.StoreDriver, "table_prefix", cfg.TablePrefix)
		if err := st.ResetSchema(ctx); err != nil {
			log.Fatalf("Failed to reset schema: %v", err)
		}
	}

	if *schemaOnly {
		logger.Info("schema setup complete (schema-only mode)")
		return
	}

	fixture, err := loadFixture(*fixturePath)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	if *clearData {
		for _, site := range fixture.Sites {
			n, err := st.ClearSite(ctx, site.ID)
			if err != nil {
				log.Fatalf("Failed to clear site %s: %v", site.ID, err)
			}
			logger.Info("site cleared", "site_id", site.ID, "removed", n)
		}
		return
	}

	folderService := treeservice.NewFolderService(st.Nodes, st.Tx, treeservice.NewLogCleaner(logger), logger)
	stats, err := seed.NewSeeder(folderService, st.Nodes, logger).Seed(ctx, fixture)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	logger.Info("seeding complete", "created", stats.Created, "skipped", stats.Skipped)
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.DefaultFixture()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return seed.LoadFixture(f)
}
