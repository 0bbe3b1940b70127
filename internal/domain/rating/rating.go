package rating

import "github.com/fpmodel/fpm/internal/domain/model"

// Fixed coefficients of the role-neutral rating. They intentionally sum
// to 99, not 100; do not normalize them.
const (
	coefAQC = 60.0
	coefHIS = 15.0
	coefEC  = 10.0
	coefTII = 8.0
	coefIBI = 6.0
)

// MPR computes the role-neutral match performance rating.
//
// AQC is rescaled from its 1-10 scale and the remaining inputs from their
// 0-100 scale; EC is multiplied by SCI before weighting. The result is
// deliberately not clamped: with OM and PI above 1.0 it may exceed 100.
func MPR(in model.RatingInputs, mod model.Modifiers) float64 {
	base := coefAQC*(in.AQC/10) +
		coefHIS*(in.HIS/100) +
		coefEC*((in.EC/100)*mod.SCI) +
		coefTII*(in.TII/100) +
		coefIBI*(in.IBI/100)
	return base * mod.OM * mod.PI
}

// WeightedMPR computes the role-specific rating variant. AQC is rescaled
// to the 0-100 scale of the other inputs before the role weights apply;
// EC is combined with SCI as a product, consistent with MPR. The output
// carries the same uncapped headroom as MPR.
func WeightedMPR(in model.RatingInputs, mod model.Modifiers, role Role) (float64, error) {
	w, err := WeightsFor(role)
	if err != nil {
		return 0, err
	}

	aqcN := in.AQC * 10
	sum := w.AQC*aqcN +
		w.HIS*in.HIS +
		w.EC*(in.EC*mod.SCI) +
		w.TII*in.TII +
		w.IBI*in.IBI
	return sum * mod.OM * mod.PI, nil
}
