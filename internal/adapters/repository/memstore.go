package repository

import (
	"context"
	"sync"

	"github.com/fpmodel/fpm/internal/domain/model"
)

// MemoryStore implements Store with in-memory collections.
//
// One logical actor mutates one collection at a time; the mutex only
// guards against interleaving from the HTTP adapter, it does not change
// the single-writer model.
type MemoryStore struct {
	mu sync.RWMutex

	players     []model.Player
	matches     []model.Match
	tournaments []model.Tournament

	stats     map[model.StatsKey]model.StatsRecord
	statsKeys []model.StatsKey // first-insertion order

	history []model.MPRRecord
}

// NewMemoryStore creates an empty store with configuration options.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		stats: make(map[model.StatsKey]model.StatsRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddPlayer appends a roster entry.
func (s *MemoryStore) AddPlayer(_ context.Context, p model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = append(s.players, p)
	return nil
}

// Players returns a copy of the roster in insertion order.
func (s *MemoryStore) Players(_ context.Context) []model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Player, len(s.players))
	copy(out, s.players)
	return out
}

// RemovePlayer deletes a roster entry by name.
func (s *MemoryStore) RemovePlayer(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.players {
		if p.Name == name {
			s.players = append(s.players[:i], s.players[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// AddMatch appends a registry entry, assigning id = max(existing)+1.
func (s *MemoryStore) AddMatch(_ context.Context, m model.Match) (model.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	maxID := 0
	for _, existing := range s.matches {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	m.ID = maxID + 1
	s.matches = append(s.matches, m)
	return m, nil
}

// Matches returns a copy of the registry in insertion order.
func (s *MemoryStore) Matches(_ context.Context) []model.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Match, len(s.matches))
	copy(out, s.matches)
	return out
}

// MatchByID returns the match with the given id.
func (s *MemoryStore) MatchByID(_ context.Context, id int) (model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.matches {
		if m.ID == id {
			return m, nil
		}
	}
	return model.Match{}, ErrNotFound
}

// AddTournament appends a registry entry.
func (s *MemoryStore) AddTournament(_ context.Context, t model.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments = append(s.tournaments, t)
	return nil
}

// Tournaments returns a copy of the registry in insertion order.
func (s *MemoryStore) Tournaments(_ context.Context) []model.Tournament {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Tournament, len(s.tournaments))
	copy(out, s.tournaments)
	return out
}

// UpsertStats saves a stats record, overwriting any record with the same
// (player, context) key.
func (s *MemoryStore) UpsertStats(_ context.Context, rec model.StatsRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := rec.Key()
	if _, exists := s.stats[key]; !exists {
		s.statsKeys = append(s.statsKeys, key)
	}
	s.stats[key] = rec
}

// Stats returns the record for a key.
func (s *MemoryStore) Stats(_ context.Context, key model.StatsKey) (model.StatsRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.stats[key]
	return rec, ok
}

// DeleteStats removes the record for a key.
func (s *MemoryStore) DeleteStats(_ context.Context, key model.StatsKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stats[key]; !ok {
		return ErrNotFound
	}
	delete(s.stats, key)
	for i, k := range s.statsKeys {
		if k == key {
			s.statsKeys = append(s.statsKeys[:i], s.statsKeys[i+1:]...)
			break
		}
	}
	return nil
}

// AllStats returns the table contents in first-insertion order.
func (s *MemoryStore) AllStats(_ context.Context) []model.StatsRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.StatsRecord, 0, len(s.statsKeys))
	for _, k := range s.statsKeys {
		out = append(out, s.stats[k])
	}
	return out
}

// AppendMPR appends a rating record to the history.
func (s *MemoryStore) AppendMPR(_ context.Context, rec model.MPRRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, rec)
}

// History returns a copy of the full rating history.
func (s *MemoryStore) History(_ context.Context) []model.MPRRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.MPRRecord, len(s.history))
	copy(out, s.history)
	return out
}

// HistoryFor returns one player's rating history in insertion order.
func (s *MemoryStore) HistoryFor(_ context.Context, player string) []model.MPRRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.MPRRecord
	for _, rec := range s.history {
		if rec.Player == player {
			out = append(out, rec)
		}
	}
	return out
}

// DeleteMPRAt removes the history entry at index.
func (s *MemoryStore) DeleteMPRAt(_ context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.history) {
		return ErrIndexOutOfRange
	}
	s.history = append(s.history[:index], s.history[index+1:]...)
	return nil
}

// Counts reports per-collection sizes for monitoring.
func (s *MemoryStore) Counts(_ context.Context) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{
		"players":     len(s.players),
		"matches":     len(s.matches),
		"tournaments": len(s.tournaments),
		"stats":       len(s.stats),
		"history":     len(s.history),
	}
}

// ReplacePlayers swaps the whole roster.
func (s *MemoryStore) ReplacePlayers(_ context.Context, ps []model.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = append([]model.Player(nil), ps...)
}

// ReplaceMatches swaps the whole match registry.
func (s *MemoryStore) ReplaceMatches(_ context.Context, ms []model.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = append([]model.Match(nil), ms...)
}

// ReplaceTournaments swaps the whole tournament registry.
func (s *MemoryStore) ReplaceTournaments(_ context.Context, ts []model.Tournament) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments = append([]model.Tournament(nil), ts...)
}

// ReplaceStats swaps the whole stats table, keeping the given order as
// the table's insertion order.
func (s *MemoryStore) ReplaceStats(_ context.Context, recs []model.StatsRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = make(map[model.StatsKey]model.StatsRecord, len(recs))
	s.statsKeys = s.statsKeys[:0]
	for _, rec := range recs {
		key := rec.Key()
		if _, exists := s.stats[key]; !exists {
			s.statsKeys = append(s.statsKeys, key)
		}
		s.stats[key] = rec
	}
}

// ReplaceHistory swaps the whole rating history.
func (s *MemoryStore) ReplaceHistory(_ context.Context, recs []model.MPRRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]model.MPRRecord(nil), recs...)
}
