package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/mentorhub/data-importer/internal/backup"
	"github.com/mentorhub/data-importer/internal/config"
	"github.com/mentorhub/data-importer/internal/importer"
	"github.com/mentorhub/data-importer/internal/logging"
	"github.com/mentorhub/data-importer/internal/pipeline"
	"github.com/mentorhub/data-importer/internal/sheets"
	"github.com/mentorhub/data-importer/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_max_conns", cfg.Database.MaxConns,
		"financial_import", cfg.Import.FinancialImport,
		"backup_dir", cfg.Import.BackupDir,
	)

	// Parse and configure connection pool
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	// Connect to database
	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.Database.URL); err == nil {
		dbName := strings.TrimPrefix(u.Path, "/")
		slog.Info("connected to database", "name", dbName)
	} else {
		slog.Info("connected to database")
	}

	// Google Sheets source
	sheetsClient, err := sheets.New(ctx, slog.Default(), cfg.Sheets.CredentialsPath, cfg.Sheets.SpreadsheetID, sheets.Ranges{
		Students:         cfg.Sheets.StudentsRange,
		Mentors:          cfg.Sheets.MentorsRange,
		Projects:         cfg.Sheets.ProjectsRange,
		Reviews:          cfg.Sheets.ReviewsRange,
		SponsoredReviews: cfg.Sheets.SponsoredReviewsRange,
	}, cfg.Sheets.FetchTimeout)
	if err != nil {
		slog.Error("failed to create sheets client", "error", err)
		os.Exit(1)
	}

	// Wire the import service
	service := importer.NewService(
		slog.Default(),
		sheetsClient,
		pipeline.NewProcessor(cfg.Import.FinancialImport),
		importer.New(slog.Default(), pool),
		backup.NewWriter(slog.Default(), cfg.Import.BackupDir),
		importer.NewMemoryRunStore(),
		cfg.Import.RunTimeout,
	)

	server := web.NewServer(service, cfg.Server.RequestTimeout)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(cfg.Server); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
