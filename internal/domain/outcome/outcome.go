// Package outcome derives the multiplicative outcome modifier (OM) from
// recorded goal and assist statistics.
package outcome

import (
	"math"

	"github.com/fpmodel/fpm/internal/domain/model"
)

// Modifier derivation constants.
const (
	baseModifier   = 1.0
	perGoalBonus   = 0.1
	perAssistBonus = 0.05
	maxModifier    = 1.5
)

// Lookup resolves a stats record for a key. The session store satisfies
// this; tests may supply a plain map-backed implementation.
type Lookup interface {
	Stats(key model.StatsKey) (model.StatsRecord, bool)
}

// Table adapts a plain map to the Lookup interface.
type Table map[model.StatsKey]model.StatsRecord

// Stats implements Lookup.
func (t Table) Stats(key model.StatsKey) (model.StatsRecord, bool) {
	rec, ok := t[key]
	return rec, ok
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(key model.StatsKey) (model.StatsRecord, bool)

// Stats implements Lookup.
func (f LookupFunc) Stats(key model.StatsKey) (model.StatsRecord, bool) {
	return f(key)
}

// Resolve derives the outcome modifier for a (player, context) key.
//
// With a stats record present, OM = min(1 + 0.1·goals + 0.05·assists, 1.5).
// Goals and assists are non-negative, so the auto-derived value never
// drops below 1.0; manual overrides down to 0.5 remain possible elsewhere.
// A missing record is non-fatal: the neutral modifier is returned with
// found=false so the caller can fall back to manual entry.
func Resolve(key model.StatsKey, table Lookup) (om float64, found bool) {
	rec, ok := table.Stats(key)
	if !ok {
		return baseModifier, false
	}
	om = baseModifier + perGoalBonus*float64(rec.Goals) + perAssistBonus*float64(rec.Assists)
	return math.Min(om, maxModifier), true
}
