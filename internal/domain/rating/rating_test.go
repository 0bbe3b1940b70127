package rating_test

import (
	"errors"
	"testing"

	model "github.com/fpmodel/fpm/internal/domain/model"
	rating "github.com/fpmodel/fpm/internal/domain/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func fullInputs() model.RatingInputs {
	return model.RatingInputs{AQC: 10, HIS: 100, EC: 100, TII: 100, IBI: 100}
}

func TestRoleWeights(t *testing.T) {
	Convey("Given the built-in role table", t, func() {
		Convey("When inspecting every role", func() {
			for _, role := range rating.Roles() {
				w, err := rating.WeightsFor(role)

				Convey("Then "+string(role)+" should have weights summing to 1.0", func() {
					So(err, ShouldBeNil)
					So(w.Sum(), ShouldAlmostEqual, 1.0, 1e-9)
				})
			}
		})

		Convey("When asking for an unknown role", func() {
			_, err := rating.WeightsFor("Sweeper")

			Convey("Then it should fail with ErrUnknownRole", func() {
				So(errors.Is(err, rating.ErrUnknownRole), ShouldBeTrue)
			})
		})
	})
}

func TestMPR(t *testing.T) {
	Convey("Given the role-neutral rating", t, func() {
		Convey("When all inputs are maximal with neutral modifiers", func() {
			got := rating.MPR(fullInputs(), model.NeutralModifiers())

			Convey("Then the rating is the coefficient sum, 99.0", func() {
				So(got, ShouldEqual, 99.0)
			})
		})

		Convey("When SCI raises the consistency contribution", func() {
			mod := model.NeutralModifiers()
			mod.SCI = 1.08
			got := rating.MPR(fullInputs(), mod)

			Convey("Then only the EC term scales", func() {
				So(got, ShouldAlmostEqual, 99.0+10.0*0.08, 1e-9)
			})
		})

		Convey("When OM and PI are both at their ceiling", func() {
			got := rating.MPR(fullInputs(), model.Modifiers{SCI: 1.0, OM: 1.5, PI: 1.5})

			Convey("Then the rating exceeds 100 by design", func() {
				So(got, ShouldAlmostEqual, 99.0*2.25, 1e-9)
			})
		})

		Convey("When recomputing from identical inputs", func() {
			in, mod := fullInputs(), model.NeutralModifiers()

			Convey("Then results are bit-identical", func() {
				So(rating.MPR(in, mod), ShouldEqual, rating.MPR(in, mod))
			})
		})
	})
}

func TestWeightedMPR(t *testing.T) {
	Convey("Given the role-specific rating", t, func() {
		Convey("When a striker has maximal inputs and neutral modifiers", func() {
			got, err := rating.WeightedMPR(fullInputs(), model.NeutralModifiers(), rating.RoleStriker)

			Convey("Then the weighted sum is exactly 100", func() {
				So(err, ShouldBeNil)
				So(got, ShouldAlmostEqual, 100.0, 1e-9)
			})
		})

		Convey("When OM and PI are at their ceiling", func() {
			got, err := rating.WeightedMPR(fullInputs(), model.Modifiers{SCI: 1.0, OM: 1.5, PI: 1.5}, rating.RoleStriker)

			Convey("Then the rating reaches the uncapped headroom", func() {
				So(err, ShouldBeNil)
				So(got, ShouldAlmostEqual, 225.0, 1e-9)
			})
		})

		Convey("When the role is unknown", func() {
			_, err := rating.WeightedMPR(fullInputs(), model.NeutralModifiers(), "Libero")

			Convey("Then it should fail with ErrUnknownRole", func() {
				So(errors.Is(err, rating.ErrUnknownRole), ShouldBeTrue)
			})
		})

		Convey("When comparing the two variants on the same inputs", func() {
			in := model.RatingInputs{AQC: 7.0, HIS: 66.7, EC: 80, TII: 55, IBI: 40}
			mod := model.Modifiers{SCI: 1.04, OM: 1.1, PI: 0.9}

			neutral := rating.MPR(in, mod)
			weighted, err := rating.WeightedMPR(in, mod, rating.RoleDefensiveMid)

			Convey("Then both use the same EC·SCI combination and differ only by weighting", func() {
				So(err, ShouldBeNil)
				// Hand-computed expectations.
				base := 60*0.7 + 15*0.667 + 10*(0.8*1.04) + 8*0.55 + 6*0.4
				So(neutral, ShouldAlmostEqual, base*1.1*0.9, 1e-9)

				wsum := 0.35*70 + 0.10*66.7 + 0.35*(80*1.04) + 0.20*55 + 0.0*40
				So(weighted, ShouldAlmostEqual, wsum*1.1*0.9, 1e-9)
			})
		})
	})
}
