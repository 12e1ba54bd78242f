// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - Errors are wrapped with this package's sentinel kinds.
package config

// Data sources accepted in DataSource.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataSource selects where match and auction tables come from: csv or postgres.
	DataSource string `koanf:"data_source"`

	// PostgresDSN is the connection string used when DataSource is postgres.
	PostgresDSN string `koanf:"postgres_dsn"`

	// MatchesPath and AuctionPath locate the CSV tables.
	MatchesPath string `koanf:"matches_path"`
	AuctionPath string `koanf:"auction_path"`

	// ModelPath locates the frozen classifier artifact.
	ModelPath string `koanf:"model_path"`

	// FeatureColumnsPath locates the ordered feature column list.
	FeatureColumnsPath string `koanf:"feature_columns_path"`

	// MinSeason is the earliest year offered for prediction.
	MinSeason int `koanf:"min_season"`

	// PlayoffMatches is the number of trailing matches excluded from the league stage.
	PlayoffMatches int `koanf:"playoff_matches"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		DataSource:         SourceCSV,
		MatchesPath:        "data/matches_data.csv",
		AuctionPath:        "data/auction_data.csv",
		ModelPath:          "data/model.json",
		FeatureColumnsPath: "data/model_feature_columns.json",
		MinSeason:          2013,
		PlayoffMatches:     4,
	}
}
