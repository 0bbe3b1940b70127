package model

import "time"

// RatingInputs carries the five sub-scores a rating is computed from.
// AQC arrives on a 1-10 scale; HIS, EC, TII and IBI arrive on a 0-100
// scale. The rating formulas rescale internally as needed.
type RatingInputs struct {
	AQC float64 `json:"aqc"` // average quality of choices, 1-10
	HIS float64 `json:"his"` // high-impact share, 0-100
	EC  float64 `json:"ec"`  // execution/consistency, 0-100
	TII float64 `json:"tii"` // tactical influence index, 0-100
	IBI float64 `json:"ibi"` // individual brilliance index, 0-100
}

// Modifiers are the multiplicative adjustments applied to a rating.
type Modifiers struct {
	SCI float64 `json:"sci"` // stability modifier, 1.0-1.08
	OM  float64 `json:"om"`  // outcome multiplier, 0.5-1.5
	PI  float64 `json:"pi"`  // presence index, 0.5-1.5
}

// NeutralModifiers returns modifiers that leave the rating unchanged.
func NeutralModifiers() Modifiers {
	return Modifiers{SCI: 1.0, OM: 1.0, PI: 1.0}
}

// MPRRecord is one persisted rating event. Records are append-only and
// deletable by index; they are never mutated in place.
type MPRRecord struct {
	ID        string       `json:"id"`
	Player    string       `json:"player"`
	Role      string       `json:"role"`
	Context   ContextRef   `json:"context"` // zero value means unlinked
	Inputs    RatingInputs `json:"inputs"`
	OM        float64      `json:"om"`
	MPR       float64      `json:"mpr"`
	Timestamp time.Time    `json:"timestamp"`
}
