package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/iplpredict/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.MatchesPath, convey.ShouldEqual, "data/matches_data.csv")
				convey.So(cfg.ModelPath, convey.ShouldEqual, "data/model.json")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("IPLP_ADDR", ":8080")
			_ = os.Setenv("IPLP_MATCHES_PATH", "/srv/matches.csv")
			_ = os.Setenv("IPLP_MIN_SEASON", "2016")
			_ = os.Setenv("IPLP_PLAYOFF_MATCHES", "3")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MatchesPath, convey.ShouldEqual, "/srv/matches.csv")
				convey.So(cfg.MinSeason, convey.ShouldEqual, 2016)
				convey.So(cfg.PlayoffMatches, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# dashboard settings
addr: ":9090"
log_format: json
model_path: /models/xgb.json
min_season: 2014
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("IPLP_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge the file over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.ModelPath, convey.ShouldEqual, "/models/xgb.json")
				convey.So(cfg.MinSeason, convey.ShouldEqual, 2014)
				convey.So(cfg.AuctionPath, convey.ShouldEqual, "data/auction_data.csv")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\nmin_season: 2014\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("IPLP_CONFIG", tmpFile)
			_ = os.Setenv("IPLP_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MinSeason, convey.ShouldEqual, 2014)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("IPLP_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("IPLP_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("IPLP_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(err.Error(), convey.ShouldStartWith, "iplpredict: invalid predictor config")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When selecting postgres without a DSN", func() {
			_ = os.Setenv("IPLP_DATA_SOURCE", "postgres")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "postgres_dsn")
		})

		convey.Convey("When selecting postgres with a DSN", func() {
			_ = os.Setenv("IPLP_DATA_SOURCE", "postgres")
			_ = os.Setenv("IPLP_POSTGRES_DSN", "postgres://ipl@localhost/ipl?sslmode=disable")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.PostgresDSN, convey.ShouldStartWith, "postgres://")
		})

		convey.Convey("When the data source is unknown", func() {
			_ = os.Setenv("IPLP_DATA_SOURCE", "parquet")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a numeric variable is not a number", func() {
			_ = os.Setenv("IPLP_MIN_SEASON", "soon")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When playoff matches is negative", func() {
			_ = os.Setenv("IPLP_PLAYOFF_MATCHES", "-1")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"IPLP_CONFIG",
		"IPLP_ADDR",
		"IPLP_MATCHES_PATH",
		"IPLP_MIN_SEASON",
		"IPLP_PLAYOFF_MATCHES",
		"IPLP_DATA_SOURCE",
		"IPLP_POSTGRES_DSN",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "iplpredict-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
