// Package scoring converts logged actions into capped action values (CAV)
// and reduces a match's values into summary aggregates.
package scoring

import (
	"math"

	"github.com/fpmodel/fpm/internal/domain/model"
)

// Sub-score weights of the raw action value. They sum to the divisor, so
// the raw value stays on the 1-10 scale of its inputs. Decision and
// execution quality are double-weighted relative to difficulty, tactical
// context and pressure.
const (
	weightDQ  = 2.0
	weightEQ  = 2.0
	weightCD  = 1.5
	weightTA  = 1.5
	weightLOP = 1.0
	divisor   = 8.0
)

// HighImpactThreshold is the CAV floor for an action to count as
// high-impact in the HIS aggregate.
const HighImpactThreshold = 7.0

// mistakeCaps holds the maximum value an action may keep per mistake
// classification. An incorrect decision is capped hardest: good outcomes
// from bad decisions are not rewarded. A correct decision with failed
// execution keeps most of its value, a forced error sits in between.
var mistakeCaps = map[model.MistakeType]float64{
	model.MistakeNone:      10.0,
	model.MistakeDecision:  4.0,
	model.MistakeExecution: 8.3,
	model.MistakeForced:    7.0,
}

// Cap returns the value ceiling for a mistake classification. Unknown
// classifications fall back to the uncapped ceiling.
func Cap(m model.MistakeType) float64 {
	if c, ok := mistakeCaps[m]; ok {
		return c
	}
	return mistakeCaps[model.MistakeNone]
}

// Score computes the capped action value for one action. Sub-scores are
// expected in [1,10]; out-of-range inputs are a caller contract violation
// and are not defended against here.
func Score(a model.Action) float64 {
	raw := (weightDQ*a.DQ + weightEQ*a.EQ + weightCD*a.CD + weightTA*a.TA + weightLOP*a.LOP) / divisor
	return math.Min(raw, Cap(a.Mistake))
}

// ScoreAll scores a whole action log in order.
func ScoreAll(actions []model.Action) []float64 {
	cavs := make([]float64, len(actions))
	for i, a := range actions {
		cavs[i] = Score(a)
	}
	return cavs
}

// Aggregate reduces a match's capped action values into AQC and HIS.
// An empty input has no defined aggregate; callers must branch on
// ErrNoActions instead of receiving a silent zero rating.
func Aggregate(cavs []float64) (model.MatchAggregate, error) {
	if len(cavs) == 0 {
		return model.MatchAggregate{}, ErrNoActions
	}

	var sum float64
	var high int
	for _, v := range cavs {
		sum += v
		if v >= HighImpactThreshold {
			high++
		}
	}

	n := float64(len(cavs))
	return model.MatchAggregate{
		AQC:     sum / n,
		HIS:     float64(high) / n,
		Actions: len(cavs),
	}, nil
}

// EstimateConsistency computes clamp(1 - stddev/5, 0, 1) over the values.
// It is a visual proxy only: the authoritative EC fed into ratings is a
// separately supplied input. Fewer than two values estimate as perfectly
// consistent.
func EstimateConsistency(cavs []float64) float64 {
	if len(cavs) < 2 {
		return 1.0
	}

	var sum float64
	for _, v := range cavs {
		sum += v
	}
	mean := sum / float64(len(cavs))

	var sq float64
	for _, v := range cavs {
		d := v - mean
		sq += d * d
	}
	// Sample standard deviation, matching the reference implementation.
	stddev := math.Sqrt(sq / float64(len(cavs)-1))

	est := 1.0 - stddev/5.0
	return math.Max(0.0, math.Min(1.0, est))
}
