package config_test

import (
	"testing"

	"github.com/okian/iplpredict/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DataSource, convey.ShouldEqual, config.SourceCSV)
			convey.So(cfg.MinSeason, convey.ShouldEqual, 2013)
			convey.So(cfg.PlayoffMatches, convey.ShouldEqual, 4)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
