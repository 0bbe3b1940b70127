// Package season reduces a player's saved rating history into the
// contextual season rating (CSR).
package season

import (
	"sort"

	"github.com/fpmodel/fpm/internal/domain/model"
)

// CSR component weights and the repeatability floor.
const (
	weightAverage       = 0.45
	weightRepeatability = 0.20
	weightPeak          = 0.20
	weightTransfer      = 0.15

	// repeatabilityFloor is the MPR a match must reach to count as
	// repeated top-level output.
	repeatabilityFloor = 70.0

	// peakWindow is how many best matches feed the peak average.
	peakWindow = 5
)

// Summary is the derived season view over a rating history.
type Summary struct {
	AvgMPR        float64 `json:"avg_mpr"`
	Repeatability float64 `json:"repeatability"` // 0-100
	Peak5         float64 `json:"peak5"`
	RoleTransfer  float64 `json:"role_transfer"` // externally supplied, 0-100
	CSR           float64 `json:"csr"`
	Matches       int     `json:"matches"`
}

// Evaluate computes the season summary from the full rating history plus
// the externally supplied role transferability score.
//
// Peak5 averages the five best ratings, or all of them when fewer than
// five exist. An empty history has no defined season rating; callers
// must branch on ErrNoHistory.
func Evaluate(history []model.MPRRecord, roleTransfer float64) (Summary, error) {
	if len(history) == 0 {
		return Summary{}, ErrNoHistory
	}

	values := make([]float64, len(history))
	var sum float64
	var repeated int
	for i, rec := range history {
		values[i] = rec.MPR
		sum += rec.MPR
		if rec.MPR >= repeatabilityFloor {
			repeated++
		}
	}

	n := float64(len(values))
	avg := sum / n
	repeatability := 100 * float64(repeated) / n

	sort.Sort(sort.Reverse(sort.Float64Slice(values)))
	window := peakWindow
	if len(values) < window {
		window = len(values)
	}
	var peakSum float64
	for _, v := range values[:window] {
		peakSum += v
	}
	peak := peakSum / float64(window)

	csr := weightAverage*avg +
		weightRepeatability*repeatability +
		weightPeak*peak +
		weightTransfer*roleTransfer

	return Summary{
		AvgMPR:        avg,
		Repeatability: repeatability,
		Peak5:         peak,
		RoleTransfer:  roleTransfer,
		CSR:           csr,
		Matches:       len(history),
	}, nil
}
