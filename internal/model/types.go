package model

import "time"

// -----------------------------------------------------------------------------
// Dimension Types
// -----------------------------------------------------------------------------

// Region represents a metro region dimension row.
// Exactly one row per RegionID is ever persisted; when the same id is
// observed more than once in an input batch, the last-seen attributes win.
type Region struct {
	RegionID   int    // Primary key (source region identifier)
	RegionName string // Display name (e.g., "San Francisco, CA")
	StateName  string // State the region belongs to
}

// -----------------------------------------------------------------------------
// Fact Types
// -----------------------------------------------------------------------------

// MetroObservation represents one monthly home-value observation for a region.
// Unique per (RegionID, Date); a re-ingested observation overwrites AvgCost.
type MetroObservation struct {
	RegionID int       // Foreign key to Region
	SizeRank int       // Region size rank at observation time
	Date     time.Time // Observation period (calendar day)
	AvgCost  *float64  // Average home value; nil = not reported
}

// PropertyListing represents a single property listing.
// Natural key (Address, City, State, Zip); duplicates are discarded on
// ingest, never overwritten.
type PropertyListing struct {
	Address      string
	City         string
	State        string
	Zip          string
	Sqft         *int
	Beds         *int
	Baths        *int
	BuiltYear    *int
	PropertyType string
	Status       string
	Price        *float64
	Agent        string
	Broker       string
	Lat          *float64
	Lon          *float64
	Parcel       string
	LastChange   *time.Time // Date of last listing change; nil if unknown
}
