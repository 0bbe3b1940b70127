// Package model contains domain models passed between layers.
package model

// Phase identifies the game phase or transition an action belongs to.
type Phase string

// Game phases.
const (
	PhaseBuildUp             Phase = "Build-up"
	PhaseFinalThird          Phase = "Final Third"
	PhaseAttackingTransition Phase = "Attacking Transition"
	PhaseDefensiveTransition Phase = "Defensive Transition"
	PhaseSetPiece            Phase = "Set Piece"
)

// MistakeType classifies the mistake, if any, attached to an action.
// The classification determines the cap applied to the action value.
type MistakeType string

// Mistake classifications.
const (
	MistakeNone      MistakeType = "None"
	MistakeDecision  MistakeType = "Type A (Decision)"
	MistakeExecution MistakeType = "Type B (Execution)"
	MistakeForced    MistakeType = "Type C (Forced)"
)

// Action is one logged decision point in a match. The five sub-scores are
// on a 1-10 scale; range validation happens at the entry layer, not here.
// Actions are immutable once scored and owned by the match they describe.
type Action struct {
	Phase   Phase       `json:"phase"`
	DQ      float64     `json:"dq"`  // decision quality
	EQ      float64     `json:"eq"`  // execution quality
	CD      float64     `json:"cd"`  // contextual difficulty
	TA      float64     `json:"ta"`  // tactical appropriateness
	LOP     float64     `json:"lop"` // level of pressure
	Mistake MistakeType `json:"mistake_type"`
}

// MatchAggregate summarizes the capped action values of one match.
type MatchAggregate struct {
	// AQC is the mean capped action value, on the 1-10 scale.
	AQC float64 `json:"aqc"`
	// HIS is the fraction of actions with a capped value >= 7.0, in [0,1].
	HIS float64 `json:"his"`
	// Actions is the number of actions the aggregate covers.
	Actions int `json:"actions"`
}
