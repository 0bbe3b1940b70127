// Package repository defines the session store interface and errors.
//
// The store owns the persisted collections of the session: roster, match
// and tournament registries, the stats table and the rating history.
// It is passed by handle to every component that needs persisted state;
// there is no global singleton.
package repository

import (
	"context"

	"github.com/fpmodel/fpm/internal/domain/model"
)

// Store provides read/write access to the session collections.
type Store interface {
	// AddPlayer appends a roster entry.
	AddPlayer(ctx context.Context, p model.Player) error
	// Players returns the roster in insertion order.
	Players(ctx context.Context) []model.Player
	// RemovePlayer deletes a roster entry by name.
	// Returns ErrNotFound if the player is unknown.
	RemovePlayer(ctx context.Context, name string) error

	// AddMatch appends a registry entry, assigning the next monotonic id.
	// The stored match, with its id set, is returned.
	AddMatch(ctx context.Context, m model.Match) (model.Match, error)
	// Matches returns the registry in insertion order.
	Matches(ctx context.Context) []model.Match
	// MatchByID returns the match with the given id.
	// Returns ErrNotFound if the id is unknown.
	MatchByID(ctx context.Context, id int) (model.Match, error)

	// AddTournament appends a registry entry.
	AddTournament(ctx context.Context, t model.Tournament) error
	// Tournaments returns the registry in insertion order.
	Tournaments(ctx context.Context) []model.Tournament

	// UpsertStats saves a stats record; a record with the same key is
	// overwritten.
	UpsertStats(ctx context.Context, rec model.StatsRecord)
	// Stats returns the record for a key, with found=false on absence.
	Stats(ctx context.Context, key model.StatsKey) (model.StatsRecord, bool)
	// DeleteStats removes the record for a key.
	// Returns ErrNotFound if no record exists.
	DeleteStats(ctx context.Context, key model.StatsKey) error
	// AllStats returns the table contents in first-insertion order.
	AllStats(ctx context.Context) []model.StatsRecord

	// AppendMPR appends a rating record to the history.
	AppendMPR(ctx context.Context, rec model.MPRRecord)
	// History returns the full rating history in insertion order.
	History(ctx context.Context) []model.MPRRecord
	// HistoryFor returns the rating history of one player, in insertion
	// order.
	HistoryFor(ctx context.Context, player string) []model.MPRRecord
	// DeleteMPRAt removes the history entry at index.
	// Returns ErrIndexOutOfRange when the index does not exist.
	DeleteMPRAt(ctx context.Context, index int) error

	// Counts reports the size of every collection, keyed by collection
	// name, for monitoring.
	Counts(ctx context.Context) map[string]int

	// Replace* swap whole collections; used when loading persisted state.
	ReplacePlayers(ctx context.Context, ps []model.Player)
	ReplaceMatches(ctx context.Context, ms []model.Match)
	ReplaceTournaments(ctx context.Context, ts []model.Tournament)
	ReplaceStats(ctx context.Context, recs []model.StatsRecord)
	ReplaceHistory(ctx context.Context, recs []model.MPRRecord)
}
