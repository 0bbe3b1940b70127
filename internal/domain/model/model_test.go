package model_test

import (
	"testing"
	"time"

	model "github.com/fpmodel/fpm/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestContextRef(t *testing.T) {
	convey.Convey("Given context references", t, func() {
		convey.Convey("When building a match reference", func() {
			ref := model.MatchRef(3)

			convey.Convey("Then it should carry the match variant", func() {
				convey.So(ref.Kind, convey.ShouldEqual, model.ContextMatch)
				convey.So(ref.MatchID, convey.ShouldEqual, 3)
				convey.So(ref.Tournament, convey.ShouldEqual, "")
				convey.So(ref.IsZero(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When building a tournament reference", func() {
			ref := model.TournamentRef("Copa 2026")

			convey.Convey("Then it should carry the tournament variant", func() {
				convey.So(ref.Kind, convey.ShouldEqual, model.ContextTournament)
				convey.So(ref.Tournament, convey.ShouldEqual, "Copa 2026")
				convey.So(ref.IsZero(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When comparing references structurally", func() {
			convey.Convey("Then equal variants compare equal", func() {
				convey.So(model.MatchRef(7), convey.ShouldEqual, model.MatchRef(7))
				convey.So(model.TournamentRef("Cup"), convey.ShouldEqual, model.TournamentRef("Cup"))
			})

			convey.Convey("And different variants never collide", func() {
				convey.So(model.MatchRef(1), convey.ShouldNotEqual, model.TournamentRef("1"))
			})
		})

		convey.Convey("When the reference is the zero value", func() {
			var ref model.ContextRef

			convey.Convey("Then it means no link", func() {
				convey.So(ref.IsZero(), convey.ShouldBeTrue)
			})
		})
	})
}

func TestStatsKey(t *testing.T) {
	convey.Convey("Given stats records", t, func() {
		rec := model.StatsRecord{
			Player:    "Dele Santos",
			Context:   model.MatchRef(12),
			Goals:     2,
			Assists:   1,
			Timestamp: time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC),
		}

		convey.Convey("When deriving the key", func() {
			key := rec.Key()

			convey.Convey("Then it should be usable as a map key", func() {
				table := map[model.StatsKey]model.StatsRecord{key: rec}
				got, ok := table[model.StatsKey{Player: "Dele Santos", Context: model.MatchRef(12)}]
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got.Goals, convey.ShouldEqual, 2)
			})

			convey.Convey("And a name containing delimiters cannot alias another key", func() {
				other := model.StatsKey{Player: "Dele", Context: model.TournamentRef("Santos_12")}
				convey.So(other, convey.ShouldNotEqual, key)
			})
		})
	})
}
