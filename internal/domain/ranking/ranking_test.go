package ranking_test

import (
	"testing"

	"github.com/okian/iplpredict/internal/domain/model"
	"github.com/okian/iplpredict/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFormat(t *testing.T) {
	Convey("Given unsorted predictions with ties", t, func() {
		preds := []model.Prediction{
			{Team: "Delhi", Probability: 0.12},
			{Team: "Mumbai", Probability: 0.6734},
			{Team: "Punjab", Probability: 0.3},
			{Team: "Kolkata", Probability: 0.3},
			{Team: "Rajasthan", Probability: 0.3},
		}

		ranked := ranking.Format(preds)

		Convey("Then rows are sorted by probability descending", func() {
			for i := 1; i < len(ranked); i++ {
				So(ranked[i-1].Probability, ShouldBeGreaterThanOrEqualTo, ranked[i].Probability)
			}
			So(ranked[0].Team, ShouldEqual, "Mumbai")
			So(ranked[0].Rank, ShouldEqual, 1)
			So(ranked[4].Rank, ShouldEqual, 5)
		})

		Convey("And ties keep their input order", func() {
			So(ranked[1].Team, ShouldEqual, "Punjab")
			So(ranked[2].Team, ShouldEqual, "Kolkata")
			So(ranked[3].Team, ShouldEqual, "Rajasthan")
		})

		Convey("And probabilities render as percentages", func() {
			So(ranked[0].WinProbability, ShouldEqual, "67.34%")
			So(ranked[4].WinProbability, ShouldEqual, "12.00%")
		})

		Convey("And the input slice is untouched", func() {
			So(preds[0].Team, ShouldEqual, "Delhi")
		})

		Convey("And the top pick is the first row", func() {
			pick, ok := ranking.TopPick(ranked)
			So(ok, ShouldBeTrue)
			So(ranking.Headline(pick), ShouldEqual, "Mumbai (67.34%)")
		})
	})

	Convey("Given no predictions", t, func() {
		ranked := ranking.Format(nil)
		So(ranked, ShouldBeEmpty)
		_, ok := ranking.TopPick(ranked)
		So(ok, ShouldBeFalse)
	})
}

func TestPercent(t *testing.T) {
	Convey("Given boundary probabilities", t, func() {
		So(ranking.Percent(0), ShouldEqual, "0.00%")
		So(ranking.Percent(1), ShouldEqual, "100.00%")
		So(ranking.Percent(0.66666), ShouldEqual, "66.67%")
	})
}
