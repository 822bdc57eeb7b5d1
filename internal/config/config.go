package config

// Config is the root configuration for an ingestion run.
type Config struct {
	Instance InstanceConfig `yaml:"instance"`
	Database DBConfig       `yaml:"database"`
	Ingest   IngestConfig   `yaml:"ingest"`
}

// InstanceConfig identifies this ingestor.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// DBConfig holds the PostgreSQL connection settings.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`

	// Mode selects between a bounded connection pool ("pool") and a
	// single connection ("single").
	Mode     string `yaml:"mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// IngestConfig holds batch loading settings.
type IngestConfig struct {
	// ChunkSize is the number of rows flushed per upsert transaction.
	ChunkSize int `yaml:"chunk_size"`

	// MetroCSV is the path to the wide-format metro home-value CSV.
	MetroCSV string `yaml:"metro_csv"`

	// ListingsTSV is the path to the property listings TSV. Empty skips
	// the listings load.
	ListingsTSV string `yaml:"listings_tsv"`
}

// Database connection modes.
const (
	ModePool   = "pool"
	ModeSingle = "single"
)
