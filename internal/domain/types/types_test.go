package types_test

import (
	"testing"

	model "github.com/fpmodel/fpm/internal/domain/model"
	types "github.com/fpmodel/fpm/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMatchReport(t *testing.T) {
	Convey("Given a MatchReport", t, func() {
		Convey("When creating a populated report", func() {
			report := types.MatchReport{
				Scores: []types.ActionScore{
					{Action: model.Action{Phase: model.PhaseFinalThird, Mistake: model.MistakeNone}, CAV: 8.5},
				},
				Aggregate:  model.MatchAggregate{AQC: 8.5, HIS: 1.0, Actions: 1},
				ECEstimate: 1.0,
			}

			Convey("Then it should carry the scored values", func() {
				So(report.Scores, ShouldHaveLength, 1)
				So(report.Scores[0].CAV, ShouldEqual, 8.5)
				So(report.Aggregate.Actions, ShouldEqual, 1)
				So(report.ECEstimate, ShouldEqual, 1.0)
			})
		})

		Convey("When creating a zero report", func() {
			var report types.MatchReport

			Convey("Then it should have default values", func() {
				So(report.Scores, ShouldBeNil)
				So(report.Aggregate.Actions, ShouldEqual, 0)
			})
		})
	})
}

func TestSeasonSummary(t *testing.T) {
	Convey("Given a SeasonSummary", t, func() {
		summary := types.SeasonSummary{
			Player:        "Iker Mora",
			AvgMPR:        70,
			Repeatability: 66.7,
			Peak5:         70,
			RoleTransfer:  70,
			CSR:           69.3,
			Matches:       3,
		}

		Convey("Then it should carry the season components", func() {
			So(summary.Player, ShouldEqual, "Iker Mora")
			So(summary.Matches, ShouldEqual, 3)
			So(summary.CSR, ShouldAlmostEqual, 69.3, 1e-12)
		})
	})
}
