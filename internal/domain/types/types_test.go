package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/iplpredict/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResult_JSONShape(t *testing.T) {
	Convey("Given a prediction result", t, func() {
		top := types.RankedTeam{Rank: 1, Team: "Chennai Super Kings", Probability: 0.6734, WinProbability: "67.34%"}
		res := types.Result{
			RequestID:   "req-1",
			Year:        2018,
			MatchNumber: 28,
			Played:      28,
			Teams:       []types.RankedTeam{top},
			TopPick:     top,
		}

		Convey("When encoding to JSON", func() {
			raw, err := json.Marshal(res)
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(raw, &decoded), ShouldBeNil)

			Convey("Then it should use snake_case keys", func() {
				So(decoded, ShouldContainKey, "request_id")
				So(decoded, ShouldContainKey, "match_number")
				So(decoded, ShouldContainKey, "top_pick")
				pick := decoded["top_pick"].(map[string]any)
				So(pick["win_probability"], ShouldEqual, "67.34%")
			})
		})
	})
}
