package transform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rmoran/housing-data/internal/model"
)

// ListingFromRecord builds a typed PropertyListing from one parsed TSV
// record keyed by source header name. The natural key fields (address,
// city, state, zip) are required; numeric fields are nullable (blank
// becomes nil) but must parse when present. An invalid last_change date
// becomes nil rather than an error, matching the source data's habit of
// carrying junk in that column.
func ListingFromRecord(rec map[string]string) (model.PropertyListing, error) {
	var l model.PropertyListing

	for _, key := range []string{"address", "city", "state", "zip"} {
		if strings.TrimSpace(rec[key]) == "" {
			return l, fmt.Errorf("listing record missing %s", key)
		}
	}

	sqft, err := optInt(rec["sqft"])
	if err != nil {
		return l, fmt.Errorf("listing sqft: %w", err)
	}
	beds, err := optInt(rec["beds"])
	if err != nil {
		return l, fmt.Errorf("listing beds: %w", err)
	}
	baths, err := optInt(rec["baths"])
	if err != nil {
		return l, fmt.Errorf("listing baths: %w", err)
	}
	built, err := optInt(rec["built"])
	if err != nil {
		return l, fmt.Errorf("listing built: %w", err)
	}
	price, err := optFloat(rec["price"])
	if err != nil {
		return l, fmt.Errorf("listing price: %w", err)
	}
	lat, err := optFloat(rec["lat"])
	if err != nil {
		return l, fmt.Errorf("listing lat: %w", err)
	}
	lon, err := optFloat(rec["lon"])
	if err != nil {
		return l, fmt.Errorf("listing lon: %w", err)
	}

	var lastChange *time.Time
	if raw := strings.TrimSpace(rec["last_change"]); raw != "" {
		if d, err := time.Parse(periodLayout, raw); err == nil {
			lastChange = &d
		}
	}

	return model.PropertyListing{
		Address:      rec["address"],
		City:         rec["city"],
		State:        rec["state"],
		Zip:          rec["zip"],
		Sqft:         sqft,
		Beds:         beds,
		Baths:        baths,
		BuiltYear:    built,
		PropertyType: rec["type"],
		Status:       rec["status"],
		Price:        price,
		Agent:        rec["agent"],
		Broker:       rec["broker"],
		Lat:          lat,
		Lon:          lon,
		Parcel:       rec["parcel"],
		LastChange:   lastChange,
	}, nil
}

func optInt(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
