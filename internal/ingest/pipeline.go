package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/rmoran/housing-data/internal/model"
)

// Store is the persistence surface the pipeline needs. *database.Executor
// satisfies it.
type Store interface {
	ExecMany(ctx context.Context, sql string, argSets [][]any) error
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
}

// Config holds pipeline settings.
type Config struct {
	// ChunkSize is the number of rows flushed per transaction.
	ChunkSize int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{ChunkSize: 10000}
}

// Pipeline loads typed rows in bounded chunks with per-entity conflict
// policies. Chunks flush strictly in input order, one at a time.
type Pipeline struct {
	cfg    Config
	db     Store
	logger *slog.Logger
}

// New creates a Pipeline.
func New(cfg Config, db Store, logger *slog.Logger) *Pipeline {
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, db: db, logger: logger}
}

// LoadRegions deduplicates regions by RegionID (last-seen attributes win)
// and loads them with the insert-ignore policy. Returns rows committed.
func (p *Pipeline) LoadRegions(ctx context.Context, regions []model.Region) (int, error) {
	deduped := dedupeRegions(regions)
	if n := len(regions) - len(deduped); n > 0 {
		p.logger.Debug("collapsed duplicate regions", "duplicates", n, "unique", len(deduped))
	}

	argSets := make([][]any, len(deduped))
	for i, r := range deduped {
		argSets[i] = []any{r.RegionID, r.RegionName, r.StateName}
	}
	return p.flushChunks(ctx, "regions", regionInsertSQL, argSets)
}

// LoadObservations loads metro observations with the overwrite policy:
// an existing (region_id, date) row gets its avg_cost replaced by the
// incoming value. Returns rows committed.
func (p *Pipeline) LoadObservations(ctx context.Context, obs []model.MetroObservation) (int, error) {
	argSets := make([][]any, len(obs))
	for i, o := range obs {
		argSets[i] = observationArgs(o)
	}
	return p.flushChunks(ctx, "observations", metroUpsertSQL, argSets)
}

// CopyObservations streams observations through the COPY protocol in one
// transaction. Use only against a table without the (region_id, date)
// uniqueness constraint; COPY has no conflict handling.
func (p *Pipeline) CopyObservations(ctx context.Context, obs []model.MetroObservation) (int64, error) {
	rows := make([][]any, len(obs))
	for i, o := range obs {
		rows[i] = observationArgs(o)
	}
	return p.db.CopyFrom(ctx, metroTable, metroCopyColumns, rows)
}

// LoadListings loads property listings with the insert-ignore policy:
// a listing whose natural key already exists is discarded, never
// overwritten. Returns rows committed.
func (p *Pipeline) LoadListings(ctx context.Context, listings []model.PropertyListing) (int, error) {
	argSets := make([][]any, len(listings))
	for i, l := range listings {
		argSets[i] = []any{
			l.Address, l.City, l.State, l.Zip,
			l.Sqft, l.Beds, l.Baths, l.BuiltYear,
			l.PropertyType, l.Status, l.Price, l.Agent, l.Broker,
			l.Lat, l.Lon, l.Parcel, l.LastChange,
		}
	}
	return p.flushChunks(ctx, "listings", listingInsertSQL, argSets)
}

// flushChunks flushes argSets in ChunkSize slices, each as one
// transaction. Later chunks flush strictly after earlier chunks commit.
// On failure it returns the rows committed so far inside a
// PartialLoadError; committed chunks are not rolled back.
func (p *Pipeline) flushChunks(ctx context.Context, entity, sql string, argSets [][]any) (int, error) {
	committed := 0
	for start := 0; start < len(argSets); start += p.cfg.ChunkSize {
		end := start + p.cfg.ChunkSize
		if end > len(argSets) {
			end = len(argSets)
		}

		flushStart := time.Now()
		if err := p.db.ExecMany(ctx, sql, argSets[start:end]); err != nil {
			return committed, &PartialLoadError{Entity: entity, Committed: committed, Err: err}
		}
		committed = end

		p.logger.Debug("chunk flushed",
			"entity", entity,
			"rows", end-start,
			"committed", committed,
			"duration", time.Since(flushStart),
		)
	}
	return committed, nil
}

// dedupeRegions collapses regions by RegionID, keeping first-seen order
// and last-seen attributes. Required because ON CONFLICT semantics are
// per statement, not across a batch that conflicts with itself.
func dedupeRegions(regions []model.Region) []model.Region {
	out := make([]model.Region, 0, len(regions))
	index := make(map[int]int, len(regions))
	for _, r := range regions {
		if i, ok := index[r.RegionID]; ok {
			out[i] = r
			continue
		}
		index[r.RegionID] = len(out)
		out = append(out, r)
	}
	return out
}

func observationArgs(o model.MetroObservation) []any {
	return []any{o.RegionID, o.SizeRank, o.Date, o.AvgCost}
}
