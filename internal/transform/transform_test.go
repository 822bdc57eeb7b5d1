package transform

import (
	"fmt"
	"testing"
	"time"
)

var metroColumns = []string{
	"RegionID", "RegionName", "RegionType", "StateName", "SizeRank",
	"2020-01-31", "2020-02-29",
}

func metroRow(id, name, state, rank, jan, feb string) map[string]string {
	return map[string]string{
		"RegionID":   id,
		"RegionName": name,
		"RegionType": "msa",
		"StateName":  state,
		"SizeRank":   rank,
		"2020-01-31": jan,
		"2020-02-29": feb,
	}
}

func TestWideToLong(t *testing.T) {
	tr := New(nil)

	rows := []map[string]string{
		metroRow("1", "X", "CA", "5", "100", ""),
		metroRow("1", "X2", "CA", "5", "110", "120"),
	}

	res := tr.WideToLong(metroColumns, rows)

	// One region row per input row; dedup happens downstream.
	if len(res.Regions) != 2 {
		t.Fatalf("regions = %d, want 2", len(res.Regions))
	}
	if res.Regions[1].RegionName != "X2" {
		t.Errorf("second region name = %q, want %q", res.Regions[1].RegionName, "X2")
	}

	// Blank February cell in the first row is skipped, not emitted as null.
	if len(res.Observations) != 3 {
		t.Fatalf("observations = %d, want 3", len(res.Observations))
	}
	if res.Stats.SkippedCells != 1 {
		t.Errorf("skipped cells = %d, want 1", res.Stats.SkippedCells)
	}

	jan := time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)
	first := res.Observations[0]
	if first.RegionID != 1 || !first.Date.Equal(jan) || first.AvgCost == nil || *first.AvgCost != 100 {
		t.Errorf("first observation = %+v, want region 1 @ %s = 100", first, jan)
	}

	// Input order is preserved: row 1 cells before row 2 cells.
	second := res.Observations[1]
	if second.AvgCost == nil || *second.AvgCost != 110 {
		t.Errorf("second observation cost = %v, want 110", second.AvgCost)
	}
}

// Emitted fact rows must equal R*D - M for R rows, D period columns, and
// M blank cells.
func TestWideToLongCellCount(t *testing.T) {
	tr := New(nil)

	const r, d = 7, 2
	blanks := 0
	rows := make([]map[string]string, 0, r)
	for i := 0; i < r; i++ {
		jan := fmt.Sprintf("%d", 100+i)
		feb := fmt.Sprintf("%d", 200+i)
		if i%3 == 0 {
			feb = ""
			blanks++
		}
		rows = append(rows, metroRow(fmt.Sprintf("%d", i), "R", "CA", "1", jan, feb))
	}

	res := tr.WideToLong(metroColumns, rows)

	want := r*d - blanks
	if len(res.Observations) != want {
		t.Errorf("observations = %d, want %d (R*D - M)", len(res.Observations), want)
	}
	if res.Stats.FactRows != want {
		t.Errorf("Stats.FactRows = %d, want %d", res.Stats.FactRows, want)
	}
	if res.Stats.SkippedCells != blanks {
		t.Errorf("Stats.SkippedCells = %d, want %d", res.Stats.SkippedCells, blanks)
	}
}

func TestWideToLongBadCells(t *testing.T) {
	tr := New(nil)

	rows := []map[string]string{
		metroRow("1", "X", "CA", "5", "not-a-number", "120"),
	}

	res := tr.WideToLong(metroColumns, rows)

	if len(res.Observations) != 1 {
		t.Fatalf("observations = %d, want 1", len(res.Observations))
	}
	if res.Stats.SkippedCells != 1 {
		t.Errorf("skipped cells = %d, want 1", res.Stats.SkippedCells)
	}
}

func TestWideToLongBadRegionKey(t *testing.T) {
	tr := New(nil)

	rows := []map[string]string{
		metroRow("", "X", "CA", "5", "100", "120"),
		metroRow("2", "Y", "WA", "abc", "100", "120"),
		metroRow("3", "Z", "OR", "9", "100", "120"),
	}

	res := tr.WideToLong(metroColumns, rows)

	if res.Stats.SkippedRows != 2 {
		t.Errorf("skipped rows = %d, want 2", res.Stats.SkippedRows)
	}
	if len(res.Regions) != 1 {
		t.Fatalf("regions = %d, want 1", len(res.Regions))
	}
	if res.Regions[0].RegionID != 3 {
		t.Errorf("surviving region = %d, want 3", res.Regions[0].RegionID)
	}
	if len(res.Observations) != 2 {
		t.Errorf("observations = %d, want 2", len(res.Observations))
	}
}

func TestWideToLongIgnoresNonPeriodColumns(t *testing.T) {
	tr := New(nil)

	columns := append(append([]string{}, metroColumns...), "Notes")
	row := metroRow("1", "X", "CA", "5", "100", "120")
	row["Notes"] = "should never become an observation"

	res := tr.WideToLong(columns, []map[string]string{row})

	if res.Stats.IgnoredColumns != 1 {
		t.Errorf("ignored columns = %d, want 1", res.Stats.IgnoredColumns)
	}
	if len(res.Observations) != 2 {
		t.Errorf("observations = %d, want 2", len(res.Observations))
	}
}

func TestWideToLongEmptyInput(t *testing.T) {
	tr := New(nil)

	res := tr.WideToLong(metroColumns, nil)

	if len(res.Regions) != 0 || len(res.Observations) != 0 {
		t.Errorf("expected empty result, got %d regions, %d observations",
			len(res.Regions), len(res.Observations))
	}
}
