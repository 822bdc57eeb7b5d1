package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rmoran/housing-data/internal/config"
	"github.com/rmoran/housing-data/internal/database"
	"github.com/rmoran/housing-data/internal/ingest"
	"github.com/rmoran/housing-data/internal/transform"
	"github.com/rmoran/housing-data/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/ingest.local.yaml", "path to config file")
	upsertObservations := flag.Bool("upsert-observations", false,
		"load observations through the upsert pipeline instead of COPY (required when the table has the (region_id, date) constraint)")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting ingestor",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"database", cfg.Database.Name,
		"chunk_size", cfg.Ingest.ChunkSize,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if err := run(ctx, cfg, *upsertObservations, logger); err != nil {
		logger.Error("ingestion failed", "error", err)
		os.Exit(1)
	}
}

// run executes one linear batch ingestion: read and transform the wide
// input, connect, load dimensions, load facts, disconnect.
func run(ctx context.Context, cfg *config.Config, upsert bool, logger *slog.Logger) error {
	start := time.Now()
	report := ingest.NewReport()

	columns, rows, err := readWideCSV(cfg.Ingest.MetroCSV)
	if err != nil {
		return fmt.Errorf("read metro csv: %w", err)
	}
	logger.Info("metro input read", "path", cfg.Ingest.MetroCSV, "rows", len(rows))

	res := transform.New(logger).WideToLong(columns, rows)
	report.SkippedCells = res.Stats.SkippedCells
	report.SkippedRows = res.Stats.SkippedRows

	logger.Info("transform complete",
		"regions", len(res.Regions),
		"observations", len(res.Observations),
		"skipped_cells", res.Stats.SkippedCells,
		"skipped_rows", res.Stats.SkippedRows,
	)

	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
		"mode", cfg.Database.Mode,
	)

	mgr := database.NewManager(cfg.Database, logger)
	if err := mgr.Connect(ctx); err != nil {
		return err
	}
	// Disconnect must run on every exit path, including failures below.
	defer func() {
		if err := mgr.Disconnect(context.Background()); err != nil {
			logger.Warn("disconnect failed", "error", err)
		}
	}()

	exec := database.NewExecutor(mgr, logger)

	// The schema is provisioned outside this tool; fail fast if it isn't.
	for _, table := range []string{"regions", "metro_observations"} {
		ok, err := exec.TableExists(ctx, table, "")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("required table %q does not exist", table)
		}
	}

	pipe := ingest.New(ingest.Config{ChunkSize: cfg.Ingest.ChunkSize}, exec, logger)

	n, err := pipe.LoadRegions(ctx, res.Regions)
	report.Regions = n
	if err != nil {
		return err
	}
	logger.Info("regions loaded", "rows", n)

	if upsert {
		n, err := pipe.LoadObservations(ctx, res.Observations)
		report.Observations = n
		if err != nil {
			return err
		}
	} else {
		n, err := pipe.CopyObservations(ctx, res.Observations)
		report.Observations = int(n)
		if err != nil {
			return err
		}
	}
	logger.Info("observations loaded", "rows", report.Observations, "upsert", upsert)

	if cfg.Ingest.ListingsTSV != "" {
		ok, err := exec.TableExists(ctx, "property_listings", "")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("required table %q does not exist", "property_listings")
		}

		listings, skipped, err := readListingsTSV(cfg.Ingest.ListingsTSV, logger)
		if err != nil {
			return fmt.Errorf("read listings tsv: %w", err)
		}
		report.SkippedRows += skipped

		n, err := pipe.LoadListings(ctx, listings)
		report.Listings = n
		if err != nil {
			return err
		}
		logger.Info("listings loaded", "rows", n, "skipped_rows", skipped)
	}

	report.Duration = time.Since(start)
	logger.Info("ingestion complete",
		"run_id", report.RunID,
		"regions", report.Regions,
		"observations", report.Observations,
		"listings", report.Listings,
		"skipped_cells", report.SkippedCells,
		"skipped_rows", report.SkippedRows,
		"duration", report.Duration,
	)
	return nil
}
