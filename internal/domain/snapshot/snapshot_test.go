package snapshot_test

import (
	"errors"
	"testing"

	"github.com/okian/iplpredict/internal/domain/model"
	"github.com/okian/iplpredict/internal/domain/snapshot"
	. "github.com/smartystreets/goconvey/convey"
)

func fixture() []model.Match {
	return []model.Match{
		{Year: 2019, Team1: "A", Team2: "B", WinningTeam: "A", Seq: 0},
		{Year: 2020, Team1: "X", Team2: "Y", WinningTeam: "Y", Seq: 0},
		{Year: 2019, Team1: "C", Team2: "A", WinningTeam: "C", Seq: 1},
		{Year: 2019, Team1: "B", Team2: "D", WinningTeam: "D", Seq: 2},
		{Year: 2020, Team1: "Y", Team2: "Z", WinningTeam: "Z", Seq: 1},
		{Year: 2019, Team1: "A", Team2: "D", WinningTeam: "A", Seq: 3},
	}
}

func TestSelect(t *testing.T) {
	Convey("Given matches spanning two seasons", t, func() {
		matches := fixture()

		Convey("When selecting a prefix of 2019", func() {
			snap, err := snapshot.Select(2019, 2, matches)

			Convey("Then the first matches of that season are played", func() {
				So(err, ShouldBeNil)
				So(snap.Year(), ShouldEqual, 2019)
				So(snap.Len(), ShouldEqual, 2)
				So(snap.SeasonLen(), ShouldEqual, 4)
				played := snap.Played()
				So(played[0].Seq, ShouldEqual, 0)
				So(played[1].Team1, ShouldEqual, "C")
			})

			Convey("And the roster covers the whole season", func() {
				So(snap.Teams(), ShouldResemble, []string{"A", "C", "B", "D"})
			})
		})

		Convey("When the cutoff exceeds the season length", func() {
			for _, cutoff := range []int{4, 5, 100} {
				snap, err := snapshot.Select(2019, cutoff, matches)
				So(err, ShouldBeNil)
				So(snap.Len(), ShouldEqual, snap.SeasonLen())
				So(snap.Played(), ShouldResemble, snapshot.SeasonMatches(2019, matches))
				So(snap.Cutoff(), ShouldEqual, cutoff)
			}
		})

		Convey("When the cutoff is zero", func() {
			_, err := snapshot.Select(2019, 0, matches)

			Convey("Then not enough data is signalled", func() {
				So(errors.Is(err, snapshot.ErrNotEnoughData), ShouldBeTrue)
			})
		})

		Convey("When the cutoff is negative", func() {
			_, err := snapshot.Select(2019, -1, matches)
			So(errors.Is(err, snapshot.ErrInvalidCutoff), ShouldBeTrue)
		})

		Convey("When the year is absent", func() {
			_, err := snapshot.Select(2008, 3, matches)
			So(errors.Is(err, snapshot.ErrUnknownSeason), ShouldBeTrue)
		})

		Convey("When the caller mutates a returned slice", func() {
			snap, err := snapshot.Select(2019, 4, matches)
			So(err, ShouldBeNil)
			played := snap.Played()
			played[0].WinningTeam = "B"
			teams := snap.Teams()
			teams[0] = "Q"

			Convey("Then the snapshot is unchanged", func() {
				So(snap.Played()[0].WinningTeam, ShouldEqual, "A")
				So(snap.Teams()[0], ShouldEqual, "A")
				So(matches[0].WinningTeam, ShouldEqual, "A")
			})
		})
	})
}

func TestSeasonMatches_OrdersBySeq(t *testing.T) {
	Convey("Given season rows out of order", t, func() {
		matches := []model.Match{
			{Year: 2021, Team1: "B", Seq: 1},
			{Year: 2021, Team1: "A", Seq: 0},
		}
		season := snapshot.SeasonMatches(2021, matches)

		So(season[0].Team1, ShouldEqual, "A")
		So(matches[0].Team1, ShouldEqual, "B")
	})
}

func TestPoints(t *testing.T) {
	Convey("Given a 74 match season", t, func() {
		points := snapshot.Points(74, snapshot.DefaultPlayoffMatches)

		Convey("Then the snapshot points follow the league length", func() {
			So(points, ShouldHaveLength, 3)
			So(points[0].MatchNumber, ShouldEqual, 35)
			So(points[1].MatchNumber, ShouldEqual, 52)
			So(points[2].MatchNumber, ShouldEqual, 70)
			So(points[0].Label, ShouldEqual, "Halfway (After Match 35)")
			So(points[1].Label, ShouldEqual, "75% Mark (After Match 52)")
			So(points[2].Label, ShouldEqual, "End of League (After Match 70)")
		})
	})

	Convey("Given a 60 match season", t, func() {
		p, ok := snapshot.PointFor(snapshot.KeyThreeQuarter, 60, 4)
		So(ok, ShouldBeTrue)
		So(p.MatchNumber, ShouldEqual, 42)
	})

	Convey("Given a season shorter than the playoffs", t, func() {
		points := snapshot.Points(3, 4)
		for _, p := range points {
			So(p.MatchNumber, ShouldEqual, 0)
		}
		_, ok := snapshot.PointFor("quarter", 3, 4)
		So(ok, ShouldBeFalse)
	})
}
