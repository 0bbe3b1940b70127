package service_test

import (
	"context"
	"testing"
	"time"

	service "github.com/fpmodel/fpm/internal/app"
	"github.com/fpmodel/fpm/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service over a fresh data directory", t, func() {
		dir := t.TempDir()
		svc := service.New(
			service.WithDataDir(dir),
			service.WithSeedRoster(false),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		So(svc.Start(ctx), ShouldBeNil)

		Convey("When running the whole pipeline for one match", func() {
			// Register the session entities.
			player, err := svc.AddPlayer(ctx, "R. Silva", "CM")
			So(err, ShouldBeNil)
			So(player.Name, ShouldEqual, "R. Silva")

			match, err := svc.AddMatch(ctx, model.Match{
				Date:     time.Now(),
				Opponent: "Team A",
				Venue:    model.VenueHome,
				Result:   "W 2-1",
				Player:   "R. Silva",
			})
			So(err, ShouldBeNil)
			So(match.ID, ShouldEqual, 1)

			tour, err := svc.AddTournament(ctx, "Summer Cup")
			So(err, ShouldBeNil)
			So(tour.ID, ShouldNotBeEmpty)

			// Record the match outcome for the player.
			_, err = svc.UpsertStats(ctx, model.StatsRecord{
				Player:  "R. Silva",
				Context: model.MatchRef(match.ID),
				Goals:   1,
				Assists: 2,
			})
			So(err, ShouldBeNil)

			// Score the action log.
			report, err := svc.ScoreActions(ctx, []model.Action{
				{Phase: model.PhaseBuildUp, DQ: 9, EQ: 8, CD: 7, TA: 8, LOP: 6, Mistake: model.MistakeNone},
				{Phase: model.PhaseFinalThird, DQ: 8, EQ: 9, CD: 8, TA: 7, LOP: 7, Mistake: model.MistakeNone},
				{Phase: model.PhaseSetPiece, DQ: 6, EQ: 4, CD: 5, TA: 6, LOP: 5, Mistake: model.MistakeExecution},
			})
			So(err, ShouldBeNil)
			So(report.Scores, ShouldHaveLength, 3)
			So(report.Aggregate.Actions, ShouldEqual, 3)

			// Resolve the outcome modifier from the saved stats.
			key := model.StatsKey{Player: "R. Silva", Context: model.MatchRef(match.ID)}
			om, found := svc.OutcomeModifier(ctx, key)
			So(found, ShouldBeTrue)
			So(om, ShouldAlmostEqual, 1.2, 1e-9) // 1 + 0.1*1 + 0.05*2

			// Compute and save the rating.
			inputs := model.RatingInputs{
				AQC: report.Aggregate.AQC,
				HIS: report.Aggregate.HIS * 100,
				EC:  80,
				TII: 75,
				IBI: 60,
			}
			mod := model.Modifiers{SCI: 1.04, OM: om, PI: 1.0}
			mpr := svc.ComputeMPR(ctx, inputs, mod)
			So(mpr, ShouldBeGreaterThan, 0)

			saved, err := svc.SaveRating(ctx, model.MPRRecord{
				Player:  "R. Silva",
				Role:    "CM / 8",
				Context: model.MatchRef(match.ID),
				Inputs:  inputs,
				OM:      om,
				MPR:     mpr,
			})
			So(err, ShouldBeNil)
			So(saved.ID, ShouldNotBeEmpty)
			So(saved.Timestamp.IsZero(), ShouldBeFalse)

			// Season view over the single record.
			sum, err := svc.SeasonSummary(ctx, "R. Silva", 70)
			So(err, ShouldBeNil)
			So(sum.Matches, ShouldEqual, 1)
			So(sum.AvgMPR, ShouldAlmostEqual, mpr, 1e-9)
			So(sum.Peak5, ShouldAlmostEqual, mpr, 1e-9)

			svc.Stop()

			Convey("Then a restarted service should reload the same session", func() {
				reborn := service.New(
					service.WithDataDir(dir),
					service.WithSeedRoster(false),
				)
				defer reborn.Stop()

				So(reborn.Start(ctx), ShouldBeNil)

				players := reborn.Players(ctx)
				So(players, ShouldHaveLength, 1)
				So(players[0].Name, ShouldEqual, "R. Silva")

				matches := reborn.Matches(ctx)
				So(matches, ShouldHaveLength, 1)
				So(matches[0].ID, ShouldEqual, match.ID)
				So(matches[0].Result, ShouldEqual, "W 2-1")

				tours := reborn.Tournaments(ctx)
				So(tours, ShouldHaveLength, 1)
				So(tours[0].Name, ShouldEqual, "Summer Cup")

				rec, ok := reborn.StatsFor(ctx, key)
				So(ok, ShouldBeTrue)
				So(rec.Goals, ShouldEqual, 1)
				So(rec.Assists, ShouldEqual, 2)

				history := reborn.HistoryFor(ctx, "R. Silva")
				So(history, ShouldHaveLength, 1)
				So(history[0].ID, ShouldEqual, saved.ID)
				So(history[0].MPR, ShouldAlmostEqual, mpr, 1e-9)

				// The outcome modifier still resolves after a restart.
				om2, found2 := reborn.OutcomeModifier(ctx, key)
				So(found2, ShouldBeTrue)
				So(om2, ShouldAlmostEqual, om, 1e-9)
			})
		})
	})
}

func TestServiceIntegration_HistoryManagement(t *testing.T) {
	Convey("Given a service with several saved ratings", t, func() {
		svc := service.New(service.WithDataDir(t.TempDir()), service.WithSeedRoster(false))
		defer svc.Stop()

		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)

		for _, rec := range []model.MPRRecord{
			{Player: "A", Role: "Winger", MPR: 55},
			{Player: "B", Role: "CM / 8", MPR: 72},
			{Player: "A", Role: "Winger", MPR: 81},
		} {
			_, err := svc.SaveRating(ctx, rec)
			So(err, ShouldBeNil)
		}

		Convey("When filtering the history by player", func() {
			got := svc.HistoryFor(ctx, "A")

			Convey("Then only that player's records should come back, in order", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].MPR, ShouldEqual, 55.0)
				So(got[1].MPR, ShouldEqual, 81.0)
			})
		})

		Convey("When deleting a history entry by index", func() {
			err := svc.DeleteRatingAt(ctx, 1)

			Convey("Then the remaining records should close the gap", func() {
				So(err, ShouldBeNil)

				all := svc.History(ctx)
				So(all, ShouldHaveLength, 2)
				So(all[0].Player, ShouldEqual, "A")
				So(all[1].Player, ShouldEqual, "A")
			})
		})

		Convey("When deleting with an out-of-range index", func() {
			err := svc.DeleteRatingAt(ctx, 99)

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
