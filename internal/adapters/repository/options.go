// Package repository defines the session store interface and errors.
package repository

import "github.com/fpmodel/fpm/internal/domain/model"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithPlayers seeds the roster, e.g. with defaults when no persisted
// state exists yet.
func WithPlayers(ps ...model.Player) Option {
	return func(s *MemoryStore) {
		s.players = append(s.players, ps...)
	}
}
