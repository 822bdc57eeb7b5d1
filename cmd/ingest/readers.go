package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rmoran/housing-data/internal/model"
	"github.com/rmoran/housing-data/internal/transform"
)

// readWideCSV reads a wide-format CSV (header row + one row per region)
// into the column order and per-row maps the transform consumes.
func readWideCSV(path string) ([]string, []map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	var rows []map[string]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read record %d: %w", len(rows)+2, err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// readListingsTSV parses property listings from a tab-separated file.
// Records that fail to parse are skipped and counted, not fatal.
func readListingsTSV(path string, logger *slog.Logger) ([]model.PropertyListing, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	var listings []model.PropertyListing
	skipped := 0
	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, skipped, fmt.Errorf("read record at line %d: %w", line, err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}

		l, err := transform.ListingFromRecord(row)
		if err != nil {
			logger.Warn("skipping listing record", "line", line, "error", err)
			skipped++
			continue
		}
		listings = append(listings, l)
	}
	return listings, skipped, nil
}
