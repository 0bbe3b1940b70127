// Package rating combines match aggregates, modifiers and role weights
// into the two match performance rating variants.
package rating

import (
	"fmt"
	"math"
)

// Role is one of the closed set of built-in role presets.
type Role string

// Built-in roles.
const (
	RoleStriker      Role = "CF / Striker"
	RoleWinger       Role = "Winger"
	RoleAttackingMid Role = "AM / 10"
	RoleCentralMid   Role = "CM / 8"
	RoleDefensiveMid Role = "DM / 6"
)

// Weights holds the five per-role weights applied by the weighted rating.
// A valid vector is non-negative and sums to exactly 1.0.
type Weights struct {
	AQC float64 `json:"w_aqc"`
	HIS float64 `json:"w_his"`
	EC  float64 `json:"w_ec"`
	TII float64 `json:"w_tii"`
	IBI float64 `json:"w_ibi"`
}

// weightSumTolerance bounds the accepted drift of a weight vector sum
// from 1.0.
const weightSumTolerance = 1e-9

// Sum returns the total of the five weights.
func (w Weights) Sum() float64 {
	return w.AQC + w.HIS + w.EC + w.TII + w.IBI
}

func (w Weights) validate() error {
	for _, v := range []float64{w.AQC, w.HIS, w.EC, w.TII, w.IBI} {
		if v < 0 {
			return fmt.Errorf("%w: negative weight %v", ErrInvalidWeights, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1.0", ErrInvalidWeights, w.Sum())
	}
	return nil
}

// mustWeights validates a weight vector at table construction time.
// The table is a process-wide constant; a malformed entry is a
// programming error, not a runtime condition.
func mustWeights(w Weights) Weights {
	if err := w.validate(); err != nil {
		panic(err)
	}
	return w
}

// roleWeights is the fixed preset table. Entries are validated once at
// package initialization.
var roleWeights = map[Role]Weights{
	RoleStriker:      mustWeights(Weights{AQC: 0.15, HIS: 0.35, EC: 0.10, TII: 0.10, IBI: 0.30}),
	RoleWinger:       mustWeights(Weights{AQC: 0.20, HIS: 0.30, EC: 0.15, TII: 0.10, IBI: 0.25}),
	RoleAttackingMid: mustWeights(Weights{AQC: 0.25, HIS: 0.25, EC: 0.15, TII: 0.15, IBI: 0.20}),
	RoleCentralMid:   mustWeights(Weights{AQC: 0.30, HIS: 0.15, EC: 0.30, TII: 0.20, IBI: 0.05}),
	RoleDefensiveMid: mustWeights(Weights{AQC: 0.35, HIS: 0.10, EC: 0.35, TII: 0.20, IBI: 0.00}),
}

// Roles returns the built-in roles in a stable order.
func Roles() []Role {
	return []Role{RoleStriker, RoleWinger, RoleAttackingMid, RoleCentralMid, RoleDefensiveMid}
}

// WeightsFor returns the weight vector for a role.
func WeightsFor(role Role) (Weights, error) {
	w, ok := roleWeights[role]
	if !ok {
		return Weights{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return w, nil
}
