package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repository "github.com/okian/iplpredict/internal/adapters/repository"
	service "github.com/okian/iplpredict/internal/app"
	"github.com/okian/iplpredict/internal/domain/features"
	"github.com/okian/iplpredict/internal/domain/model"
	"github.com/okian/iplpredict/internal/domain/scoring"
	"github.com/okian/iplpredict/internal/domain/snapshot"
	"github.com/okian/iplpredict/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// pointsClassifier scores a row by its first column divided by 20 and counts
// how often it is consulted.
type pointsClassifier struct {
	calls int
	names []string
	fixed *float64
}

func (c *pointsClassifier) PredictProba(_ context.Context, rows [][]float64) ([]float64, error) {
	c.calls++
	out := make([]float64, len(rows))
	for i, r := range rows {
		if c.fixed != nil {
			out[i] = *c.fixed
			continue
		}
		out[i] = min(r[0]/20, 1)
	}
	return out, nil
}

func (c *pointsClassifier) FeatureNames() []string { return c.names }

func match(year, seq int, t1, t2, winner string) model.Match {
	return model.Match{
		Year:        year,
		Team1:       t1,
		Team2:       t2,
		WinningTeam: winner,
		Date:        time.Date(year, time.April, seq, 20, 0, 0, 0, time.UTC),
		Seq:         seq,
	}
}

// fixtureMatches is a 10-match 2014 season (6 league + 4 playoff) plus an
// older 2012 season.
func fixtureMatches() []model.Match {
	return []model.Match{
		match(2012, 1, "A", "B", "B"),
		match(2012, 2, "C", "D", "C"),
		match(2014, 1, "A", "B", "A"),
		match(2014, 2, "C", "D", "C"),
		match(2014, 3, "A", "C", "A"),
		match(2014, 4, "B", "D", "D"),
		match(2014, 5, "A", "D", "A"),
		match(2014, 6, "B", "C", "B"),
		match(2014, 7, "A", "B", "B"),
		match(2014, 8, "C", "D", "D"),
		match(2014, 9, "A", "D", "A"),
		match(2014, 10, "B", "C", "C"),
	}
}

func fixtureAuctions() []model.AuctionRecord {
	return []model.AuctionRecord{
		{Year: 2014, Team: "A", Player: "p1", Price: 90_000_000},
		{Year: 2014, Team: "A", Player: "p2", Price: 50_000_000},
		{Year: 2014, Team: "B", Player: "p3", Price: 20_000_000},
		{Year: 2012, Team: "A", Player: "p4", Price: 99_000_000},
	}
}

func newStore(ctx context.Context) repository.Store {
	store, err := repository.NewInMemoryStore(ctx,
		repository.WithMatches(fixtureMatches()),
		repository.WithAuctions(fixtureAuctions()),
	)
	So(err, ShouldBeNil)
	return store
}

func newEngine(c scoring.Classifier, columns []string) *scoring.Engine {
	schema, err := features.NewSchema(columns)
	So(err, ShouldBeNil)
	engine, err := scoring.NewEngine(scoring.WithClassifier(c), scoring.WithSchema(schema))
	So(err, ShouldBeNil)
	return engine
}

func newStartedService(ctx context.Context, c scoring.Classifier, columns []string) *service.Service {
	svc := service.New(
		service.WithStore(newStore(ctx)),
		service.WithEngine(newEngine(c, columns)),
	)
	So(svc.Start(ctx), ShouldBeNil)
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["minSeason"], ShouldEqual, service.DefaultMinSeason)
			So(stats["playoffMatches"], ShouldEqual, snapshot.DefaultPlayoffMatches)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithMinSeason(2010),
			service.WithPlayoffMatches(3),
			service.WithPlayoffMatches(-1),
		)

		Convey("Then valid options are applied and invalid ones ignored", func() {
			stats := svc.GetStats()
			So(stats["minSeason"], ShouldEqual, 2010)
			So(stats["playoffMatches"], ShouldEqual, 3)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a service without dependencies", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then it should refuse to start", func() {
				So(errors.Is(err, service.ErrMissingDeps), ShouldBeTrue)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})

		Convey("When predicting before start", func() {
			_, err := svc.Predict(ctx, 2014, 3)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})

	Convey("Given a fully wired service", t, func() {
		ctx := context.Background()
		svc := newStartedService(ctx, &pointsClassifier{}, features.Columns())
		defer svc.Stop()

		Convey("Then stats report the loaded data", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["matches"], ShouldEqual, 12)
			So(stats["auctions"], ShouldEqual, 4)
			So(stats["seasons"], ShouldEqual, 2)
			So(stats["features"], ShouldResemble, features.Columns())
		})

		Convey("Then starting twice is a no-op", func() {
			So(svc.Start(ctx), ShouldBeNil)
		})

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
				_, err := svc.Seasons(ctx)
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}

func TestService_Seasons(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newStartedService(ctx, &pointsClassifier{}, features.Columns())
		defer svc.Stop()

		Convey("When listing seasons", func() {
			seasons, err := svc.Seasons(ctx)

			Convey("Then only seasons from the minimum year are offered", func() {
				So(err, ShouldBeNil)
				So(len(seasons), ShouldEqual, 1)
				So(seasons[0].Year, ShouldEqual, 2014)
				So(seasons[0].TotalMatches, ShouldEqual, 10)
			})

			Convey("And snapshot points follow the league length", func() {
				points := seasons[0].Snapshots
				So(len(points), ShouldEqual, 3)
				So(points[0].MatchNumber, ShouldEqual, 3)
				So(points[1].MatchNumber, ShouldEqual, 4)
				So(points[2].MatchNumber, ShouldEqual, 6)
				So(points[2].Label, ShouldEqual, "End of League (After Match 6)")
			})
		})
	})

	Convey("Given a service with an earlier minimum season", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithStore(newStore(ctx)),
			service.WithEngine(newEngine(&pointsClassifier{}, features.Columns())),
			service.WithMinSeason(2000),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("Then seasons are listed newest first", func() {
			seasons, err := svc.Seasons(ctx)
			So(err, ShouldBeNil)
			So(len(seasons), ShouldEqual, 2)
			So(seasons[0].Year, ShouldEqual, 2014)
			So(seasons[1].Year, ShouldEqual, 2012)
		})
	})
}

func TestService_Predict(t *testing.T) {
	Convey("Given a started service with a counting classifier", t, func() {
		ctx := context.Background()
		clf := &pointsClassifier{}
		svc := newStartedService(ctx, clf, features.Columns())
		defer svc.Stop()

		Convey("When predicting at the halfway point", func() {
			res, err := svc.Predict(ctx, 2014, 3)

			Convey("Then every season team is ranked by probability", func() {
				So(err, ShouldBeNil)
				So(clf.calls, ShouldEqual, 1)
				So(res.RequestID, ShouldNotBeEmpty)
				So(res.Year, ShouldEqual, 2014)
				So(res.MatchNumber, ShouldEqual, 3)
				So(res.Played, ShouldEqual, 3)
				So(len(res.Teams), ShouldEqual, 4)

				order := make([]string, len(res.Teams))
				for i, r := range res.Teams {
					order[i] = r.Team
					So(r.Rank, ShouldEqual, i+1)
				}
				So(order, ShouldResemble, []string{"A", "C", "B", "D"})
				So(res.Teams[0].WinProbability, ShouldEqual, "20.00%")
				So(res.Teams[1].WinProbability, ShouldEqual, "10.00%")
			})

			Convey("And the top pick is the first ranked team", func() {
				So(res.TopPick, ShouldResemble, res.Teams[0])
			})

			Convey("And the feature rows use the full season auctions", func() {
				So(len(res.Features), ShouldEqual, 4)
				So(res.Features[0].Team, ShouldEqual, "A")
				So(res.Features[0].PointsMidSeason, ShouldEqual, 4)
				So(res.Features[0].WinPctMidSeason, ShouldEqual, 1)
				So(res.Features[0].SquadCostCrores, ShouldEqual, 14.0)
				So(res.Features[0].StarPlayerIndex, ShouldEqual, 1)
			})
		})

		Convey("When the cutoff exceeds the season", func() {
			res, err := svc.Predict(ctx, 2014, 500)
			So(err, ShouldBeNil)
			So(res.Played, ShouldEqual, 10)
			So(res.MatchNumber, ShouldEqual, 500)
			So(res.TotalMatches, ShouldEqual, 10)
		})

		Convey("When no match has been played", func() {
			_, err := svc.Predict(ctx, 2014, 0)

			Convey("Then not enough data is reported without consulting the model", func() {
				So(errors.Is(err, snapshot.ErrNotEnoughData), ShouldBeTrue)
				So(clf.calls, ShouldEqual, 0)
				So(svc.GetStats()["notEnoughData"], ShouldEqual, int64(1))
			})
		})

		Convey("When the cutoff is negative", func() {
			_, err := svc.Predict(ctx, 2014, -1)
			So(errors.Is(err, snapshot.ErrInvalidCutoff), ShouldBeTrue)
		})

		Convey("When the season is unknown", func() {
			_, err := svc.Predict(ctx, 2030, 3)
			So(errors.Is(err, snapshot.ErrUnknownSeason), ShouldBeTrue)
		})

		Convey("When the season predates the minimum", func() {
			_, err := svc.Predict(ctx, 2012, 1)
			So(errors.Is(err, snapshot.ErrUnknownSeason), ShouldBeTrue)
			So(clf.calls, ShouldEqual, 0)
		})

		Convey("When predicting by snapshot key", func() {
			res, err := svc.PredictSnapshot(ctx, 2014, snapshot.KeyEndOfLeague)
			So(err, ShouldBeNil)
			So(res.MatchNumber, ShouldEqual, 6)
			So(res.Played, ShouldEqual, 6)
		})

		Convey("When the snapshot key is unknown", func() {
			_, err := svc.PredictSnapshot(ctx, 2014, "playoffs")
			So(errors.Is(err, snapshot.ErrUnknownPoint), ShouldBeTrue)
		})

		Convey("When several predictions are served", func() {
			_, _ = svc.Predict(ctx, 2014, 3)
			_, _ = svc.Predict(ctx, 2014, 4)
			So(svc.GetStats()["predictions"], ShouldEqual, int64(2))
		})
	})

	Convey("Given a schema naming a column the builder does not produce", t, func() {
		ctx := context.Background()
		clf := &pointsClassifier{}
		svc := newStartedService(ctx, clf, []string{features.ColumnPoints, "net_run_rate"})
		defer svc.Stop()

		Convey("Then the request aborts with a schema mismatch", func() {
			_, err := svc.Predict(ctx, 2014, 3)
			So(errors.Is(err, features.ErrSchemaMismatch), ShouldBeTrue)
			So(clf.calls, ShouldEqual, 0)
		})
	})

	Convey("Given a classifier that returns out-of-range probabilities", t, func() {
		ctx := context.Background()
		bad := 1.5
		svc := newStartedService(ctx, &pointsClassifier{fixed: &bad}, features.Columns())
		defer svc.Stop()

		Convey("Then the request fails with a model output error", func() {
			_, err := svc.Predict(ctx, 2014, 3)
			So(errors.Is(err, scoring.ErrModelOutput), ShouldBeTrue)
		})
	})
}
