package transform

import (
	"testing"
	"time"
)

func listingRecord() map[string]string {
	return map[string]string{
		"address":     "12 Oak St",
		"city":        "Sacramento",
		"state":       "CA",
		"zip":         "95814",
		"sqft":        "1400",
		"beds":        "3",
		"baths":       "2",
		"built":       "1978",
		"type":        "single_family",
		"status":      "for_sale",
		"price":       "425000.50",
		"agent":       "J. Doe",
		"broker":      "Acme Realty",
		"lat":         "38.5816",
		"lon":         "-121.4944",
		"parcel":      "004-0123-001",
		"last_change": "2024-03-15",
	}
}

func TestListingFromRecord(t *testing.T) {
	l, err := ListingFromRecord(listingRecord())
	if err != nil {
		t.Fatalf("ListingFromRecord failed: %v", err)
	}

	if l.Address != "12 Oak St" || l.City != "Sacramento" || l.State != "CA" || l.Zip != "95814" {
		t.Errorf("natural key = (%q, %q, %q, %q)", l.Address, l.City, l.State, l.Zip)
	}
	if l.Sqft == nil || *l.Sqft != 1400 {
		t.Errorf("Sqft = %v, want 1400", l.Sqft)
	}
	if l.Price == nil || *l.Price != 425000.50 {
		t.Errorf("Price = %v, want 425000.50", l.Price)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if l.LastChange == nil || !l.LastChange.Equal(want) {
		t.Errorf("LastChange = %v, want %s", l.LastChange, want)
	}
}

func TestListingFromRecordBlankOptionals(t *testing.T) {
	rec := listingRecord()
	rec["sqft"] = ""
	rec["price"] = ""
	rec["lat"] = ""
	rec["lon"] = ""
	rec["last_change"] = ""

	l, err := ListingFromRecord(rec)
	if err != nil {
		t.Fatalf("ListingFromRecord failed: %v", err)
	}

	if l.Sqft != nil || l.Price != nil || l.Lat != nil || l.Lon != nil || l.LastChange != nil {
		t.Error("blank optional fields must map to nil")
	}
}

func TestListingFromRecordInvalidDateBecomesNil(t *testing.T) {
	rec := listingRecord()
	rec["last_change"] = "03/15/2024"

	l, err := ListingFromRecord(rec)
	if err != nil {
		t.Fatalf("ListingFromRecord failed: %v", err)
	}
	if l.LastChange != nil {
		t.Errorf("LastChange = %v, want nil for unparseable date", l.LastChange)
	}
}

func TestListingFromRecordMissingKey(t *testing.T) {
	for _, key := range []string{"address", "city", "state", "zip"} {
		t.Run(key, func(t *testing.T) {
			rec := listingRecord()
			rec[key] = "  "
			if _, err := ListingFromRecord(rec); err == nil {
				t.Errorf("expected error for missing %s", key)
			}
		})
	}
}

func TestListingFromRecordInvalidNumber(t *testing.T) {
	rec := listingRecord()
	rec["beds"] = "three"

	if _, err := ListingFromRecord(rec); err == nil {
		t.Error("expected error for unparseable beds")
	}
}
