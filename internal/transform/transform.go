package transform

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rmoran/housing-data/internal/model"
)

// periodLayout is the calendar-date format of period column names.
const periodLayout = "2006-01-02"

// dimensionColumns are the wide-format columns that describe the region
// itself rather than a time period.
var dimensionColumns = map[string]struct{}{
	"RegionID":   {},
	"RegionName": {},
	"RegionType": {},
	"StateName":  {},
	"SizeRank":   {},
}

// Stats counts what a transform emitted and what it skipped.
type Stats struct {
	FactRows       int // observations emitted
	DimensionRows  int // regions emitted (before dedup)
	SkippedCells   int // blank or unparseable measure cells
	SkippedRows    int // rows with an unusable region key
	IgnoredColumns int // columns that are neither dimensions nor dates
}

// Result is the output of one wide-to-long transform.
type Result struct {
	Regions      []model.Region
	Observations []model.MetroObservation
	Stats        Stats
}

// Transformer converts wide metro rows into region and observation rows.
type Transformer struct {
	logger *slog.Logger
}

// New creates a Transformer.
func New(logger *slog.Logger) *Transformer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transformer{logger: logger}
}

type periodColumn struct {
	name string
	date time.Time
}

// WideToLong reshapes wide rows (one row per region, one column per month)
// into long-format observations plus one region row per input row.
// Column order determines observation order within a row; row order is
// preserved overall.
func (t *Transformer) WideToLong(columns []string, rows []map[string]string) Result {
	var res Result

	periods := make([]periodColumn, 0, len(columns))
	for _, col := range columns {
		if _, ok := dimensionColumns[col]; ok {
			continue
		}
		date, err := time.Parse(periodLayout, col)
		if err != nil {
			t.logger.Warn("ignoring non-period column", "column", col)
			res.Stats.IgnoredColumns++
			continue
		}
		periods = append(periods, periodColumn{name: col, date: date})
	}

	for _, row := range rows {
		regionID, err := strconv.Atoi(strings.TrimSpace(row["RegionID"]))
		if err != nil {
			t.logger.Warn("skipping row with bad RegionID", "value", row["RegionID"])
			res.Stats.SkippedRows++
			continue
		}
		sizeRank, err := strconv.Atoi(strings.TrimSpace(row["SizeRank"]))
		if err != nil {
			t.logger.Warn("skipping row with bad SizeRank",
				"region_id", regionID,
				"value", row["SizeRank"],
			)
			res.Stats.SkippedRows++
			continue
		}

		res.Regions = append(res.Regions, model.Region{
			RegionID:   regionID,
			RegionName: row["RegionName"],
			StateName:  row["StateName"],
		})

		for _, p := range periods {
			raw := strings.TrimSpace(row[p.name])
			if raw == "" {
				res.Stats.SkippedCells++
				continue
			}
			cost, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				t.logger.Warn("skipping unparseable cell",
					"region_id", regionID,
					"column", p.name,
					"value", raw,
				)
				res.Stats.SkippedCells++
				continue
			}
			res.Observations = append(res.Observations, model.MetroObservation{
				RegionID: regionID,
				SizeRank: sizeRank,
				Date:     p.date,
				AvgCost:  &cost,
			})
		}
	}

	res.Stats.FactRows = len(res.Observations)
	res.Stats.DimensionRows = len(res.Regions)
	return res
}
