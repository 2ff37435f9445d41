package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"wikitree/internal/auth"
	"wikitree/internal/config"
	"wikitree/internal/handler"
	"wikitree/internal/middleware"
	"wikitree/internal/repository/store"
	treeservice "wikitree/internal/service/tree"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Environment == "prod" && !cfg.AuthEnabled() {
		log.Fatalf("Refusing to start: %v", config.ErrAuthRequired)
	}

	// Stays a nil interface unless LOG_DIR is set
	var logFile io.Writer
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer f.Close()
		logFile = f
	}

	logger := config.NewLogger(cfg, logFile)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store", cfg.StoreDriver,
		"table_prefix", cfg.TablePrefix,
		"auth", cfg.AuthEnabled(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	// Services
	treeService := treeservice.NewTreeService(st.Nodes, logger)
	folderService := treeservice.NewFolderService(st.Nodes, st.Tx, treeservice.NewLogCleaner(logger), logger)

	handlers := &handler.Handlers{
		Tree:   handler.NewTreeHandler(treeService, logger),
		Folder: handler.NewFolderHandler(folderService, logger),
		Health: handler.NewHealthHandler(st, logger),
	}

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handlers.Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Build middleware chain, innermost first
	// Order: CORS → RequestID → RealIP → Logger → Recovery → Auth → Routes
	var h http.Handler = mux
	if cfg.AuthEnabled() {
		verifier, err := auth.NewVerifier(cfg.AuthJWKSURL, cfg.AuthJWTSecret, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer verifier.Close()
		h = middleware.AuthMiddleware(verifier, logger)(h)
	} else {
		logger.Warn("authentication disabled: AUTH_JWKS_URL and AUTH_JWT_SECRET are empty")
	}
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)
	h = chimw.RealIP(h)
	h = chimw.RequestID(h)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
