package ingest

// Conflict-aware insert statements. ON CONFLICT semantics are defined per
// statement, so region input is deduplicated in memory before these run.
const (
	regionInsertSQL = `
		INSERT INTO regions (region_id, region_name, state_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (region_id) DO NOTHING`

	metroUpsertSQL = `
		INSERT INTO metro_observations (region_id, size_rank, date, avg_cost)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (region_id, date) DO UPDATE SET avg_cost = EXCLUDED.avg_cost`

	listingInsertSQL = `
		INSERT INTO property_listings (
			address, city, state, zip, sqft, beds, baths, built_year,
			property_type, status, price, agent, broker, lat, lon, parcel, last_change
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (address, city, state, zip) DO NOTHING`
)

// metroTable and metroCopyColumns drive the COPY path; column order must
// match the argument order produced by observationArgs.
const metroTable = "metro_observations"

var metroCopyColumns = []string{"region_id", "size_rank", "date", "avg_cost"}
