package outcome_test

import (
	"testing"

	model "github.com/fpmodel/fpm/internal/domain/model"
	outcome "github.com/fpmodel/fpm/internal/domain/outcome"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Given a stats table", t, func() {
		key := model.StatsKey{Player: "Ana Duarte", Context: model.MatchRef(4)}
		table := outcome.Table{
			key: {Player: "Ana Duarte", Context: model.MatchRef(4), Goals: 2, Assists: 1},
			{Player: "Ana Duarte", Context: model.TournamentRef("League Cup")}: {
				Player: "Ana Duarte", Context: model.TournamentRef("League Cup"), Goals: 9, Assists: 4,
			},
		}

		Convey("When the key has a record", func() {
			om, found := outcome.Resolve(key, table)

			Convey("Then OM reflects goals and assists", func() {
				So(found, ShouldBeTrue)
				So(om, ShouldAlmostEqual, 1.0+0.1*2+0.05*1, 1e-12)
			})
		})

		Convey("When goals and assists would push OM past the ceiling", func() {
			om, found := outcome.Resolve(model.StatsKey{Player: "Ana Duarte", Context: model.TournamentRef("League Cup")}, table)

			Convey("Then OM caps at 1.5", func() {
				So(found, ShouldBeTrue)
				So(om, ShouldEqual, 1.5)
			})
		})

		Convey("When no record exists for the key", func() {
			om, found := outcome.Resolve(model.StatsKey{Player: "Unknown", Context: model.MatchRef(1)}, table)

			Convey("Then the neutral modifier is returned and absence signalled", func() {
				So(found, ShouldBeFalse)
				So(om, ShouldEqual, 1.0)
			})
		})

		Convey("When the record has zero goals and assists", func() {
			zeroKey := model.StatsKey{Player: "Ana Duarte", Context: model.MatchRef(5)}
			table[zeroKey] = model.StatsRecord{Player: "Ana Duarte", Context: model.MatchRef(5)}

			om, found := outcome.Resolve(zeroKey, table)

			Convey("Then OM is exactly the 1.0 floor", func() {
				So(found, ShouldBeTrue)
				So(om, ShouldEqual, 1.0)
			})
		})
	})
}
