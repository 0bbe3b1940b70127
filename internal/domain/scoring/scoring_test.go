package scoring_test

import (
	"errors"
	"testing"

	model "github.com/fpmodel/fpm/internal/domain/model"
	scoring "github.com/fpmodel/fpm/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func action(dq, eq, cd, ta, lop float64, m model.MistakeType) model.Action {
	return model.Action{Phase: model.PhaseBuildUp, DQ: dq, EQ: eq, CD: cd, TA: ta, LOP: lop, Mistake: m}
}

func TestScore(t *testing.T) {
	Convey("Given the action scorer", t, func() {
		Convey("When scoring a perfect action without a mistake", func() {
			cav := scoring.Score(action(10, 10, 10, 10, 10, model.MistakeNone))

			Convey("Then the value should be exactly 10.0", func() {
				So(cav, ShouldEqual, 10.0)
			})
		})

		Convey("When scoring a minimal action with a decision mistake", func() {
			cav := scoring.Score(action(1, 1, 1, 1, 1, model.MistakeDecision))

			Convey("Then the raw value is below the cap and kept as-is", func() {
				So(cav, ShouldEqual, 1.0)
			})
		})

		Convey("When the raw value stays under the cap", func() {
			// raw = (2*6 + 2*6 + 1.5*6 + 1.5*6 + 6) / 8 = 6.0
			cav := scoring.Score(action(6, 6, 6, 6, 6, model.MistakeNone))

			Convey("Then CAV equals the raw value exactly", func() {
				So(cav, ShouldEqual, 6.0)
			})
		})

		Convey("When scoring perfect sub-scores under each mistake type", func() {
			perfect := func(m model.MistakeType) float64 {
				return scoring.Score(action(10, 10, 10, 10, 10, m))
			}

			Convey("Then a decision mistake caps at 4.0", func() {
				So(perfect(model.MistakeDecision), ShouldEqual, 4.0)
			})

			Convey("Then an execution mistake caps at 8.3", func() {
				So(perfect(model.MistakeExecution), ShouldEqual, 8.3)
			})

			Convey("Then a forced error caps at 7.0", func() {
				So(perfect(model.MistakeForced), ShouldEqual, 7.0)
			})

			Convey("Then no mistake caps at 10.0", func() {
				So(perfect(model.MistakeNone), ShouldEqual, 10.0)
			})
		})

		Convey("When scoring is repeated on identical input", func() {
			a := action(7.5, 8, 6.5, 9, 5, model.MistakeExecution)

			Convey("Then the result is bit-identical", func() {
				So(scoring.Score(a), ShouldEqual, scoring.Score(a))
			})
		})
	})
}

func TestScoreAll(t *testing.T) {
	Convey("Given an action log", t, func() {
		log := []model.Action{
			action(10, 10, 10, 10, 10, model.MistakeNone),
			action(10, 10, 10, 10, 10, model.MistakeDecision),
		}

		Convey("When scoring the whole log", func() {
			cavs := scoring.ScoreAll(log)

			Convey("Then values should keep log order", func() {
				So(cavs, ShouldResemble, []float64{10.0, 4.0})
			})
		})
	})
}

func TestAggregate(t *testing.T) {
	Convey("Given match aggregation", t, func() {
		Convey("When aggregating the values 4, 8 and 9", func() {
			agg, err := scoring.Aggregate([]float64{4, 8, 9})

			Convey("Then AQC is the mean and HIS the high-impact share", func() {
				So(err, ShouldBeNil)
				So(agg.AQC, ShouldEqual, 7.0)
				So(agg.HIS, ShouldAlmostEqual, 2.0/3.0, 1e-12)
				So(agg.Actions, ShouldEqual, 3)
			})
		})

		Convey("When a value sits exactly on the high-impact threshold", func() {
			agg, err := scoring.Aggregate([]float64{7.0})

			Convey("Then it counts as high-impact", func() {
				So(err, ShouldBeNil)
				So(agg.HIS, ShouldEqual, 1.0)
			})
		})

		Convey("When the action log is empty", func() {
			_, err := scoring.Aggregate(nil)

			Convey("Then the aggregate is undefined", func() {
				So(errors.Is(err, scoring.ErrNoActions), ShouldBeTrue)
			})
		})
	})
}

func TestEstimateConsistency(t *testing.T) {
	Convey("Given the consistency estimate", t, func() {
		Convey("When all values are identical", func() {
			Convey("Then the estimate is 1.0", func() {
				So(scoring.EstimateConsistency([]float64{6, 6, 6}), ShouldEqual, 1.0)
			})
		})

		Convey("When values spread very wide", func() {
			est := scoring.EstimateConsistency([]float64{1, 10, 1, 10, 1, 10})

			Convey("Then the estimate clamps into [0,1]", func() {
				So(est, ShouldBeGreaterThanOrEqualTo, 0.0)
				So(est, ShouldBeLessThanOrEqualTo, 1.0)
			})
		})

		Convey("When fewer than two values exist", func() {
			Convey("Then the estimate defaults to 1.0", func() {
				So(scoring.EstimateConsistency(nil), ShouldEqual, 1.0)
				So(scoring.EstimateConsistency([]float64{3.2}), ShouldEqual, 1.0)
			})
		})
	})
}
