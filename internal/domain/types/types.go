// Package types contains common types used across the application
package types

import "github.com/fpmodel/fpm/internal/domain/model"

// ActionScore pairs one logged action with its capped action value.
type ActionScore struct {
	Action model.Action `json:"action"`
	CAV    float64      `json:"cav"`
}

// MatchReport is the read shape returned when an action log is scored.
// ECEstimate is the non-authoritative per-match consistency proxy; the EC
// used for ratings stays an externally supplied input.
type MatchReport struct {
	Scores     []ActionScore        `json:"scores"`
	Aggregate  model.MatchAggregate `json:"aggregate"`
	ECEstimate float64              `json:"ec_estimate"`
}

// SeasonSummary is the read shape returned by season queries.
type SeasonSummary struct {
	Player        string  `json:"player"`
	AvgMPR        float64 `json:"avg_mpr"`
	Repeatability float64 `json:"repeatability"`
	Peak5         float64 `json:"peak5"`
	RoleTransfer  float64 `json:"role_transfer"`
	CSR           float64 `json:"csr"`
	Matches       int     `json:"matches"`
}
