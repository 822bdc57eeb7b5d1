// Package model defines shared data types used across the housing data
// pipeline.
//
// All types mirror the pre-existing database schema:
//   - regions(region_id PK, region_name, state_name)
//   - metro_observations(region_id, size_rank, date, avg_cost, UNIQUE(region_id, date))
//   - property_listings(address, city, state, zip, ..., UNIQUE(address, city, state, zip))
//
// Conventions:
//   - Nullable columns: pointer fields (nil maps to SQL NULL)
//   - Dates: time.Time truncated to the calendar day
package model
