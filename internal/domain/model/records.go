package model

import "time"

// Player is one roster entry. Names are assumed unique for lookups,
// though uniqueness is not enforced here.
type Player struct {
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	DateAdded time.Time `json:"date_added"`
}

// Venue is where a match was played.
type Venue string

// Venues.
const (
	VenueHome    Venue = "Home"
	VenueAway    Venue = "Away"
	VenueNeutral Venue = "Neutral"
)

// Match is one registry entry. IDs are unique and monotonically assigned
// by the store.
type Match struct {
	ID         int       `json:"match_id"`
	Date       time.Time `json:"date"`
	Opponent   string    `json:"opponent"`
	Venue      Venue     `json:"venue"`
	Result     string    `json:"result"` // free-form, e.g. "W 2-1"
	Player     string    `json:"player"`
	Tournament string    `json:"tournament,omitempty"`
}

// Tournament is one registry entry.
type Tournament struct {
	ID        string    `json:"tournament_id"`
	Name      string    `json:"name"`
	DateAdded time.Time `json:"date_added"`
}

// ContextKind discriminates the variants of a ContextRef.
type ContextKind string

// Context variants.
const (
	ContextNone       ContextKind = ""
	ContextMatch      ContextKind = "match"
	ContextTournament ContextKind = "tournament"
)

// ContextRef links a record to either a match or a tournament. It is a
// tagged union compared structurally, so player or tournament names that
// contain delimiter-like substrings can never collide with a match link.
// The zero value means "no link".
type ContextRef struct {
	Kind       ContextKind `json:"kind"`
	MatchID    int         `json:"match_id,omitempty"`
	Tournament string      `json:"tournament,omitempty"`
}

// MatchRef builds a reference to a match by id.
func MatchRef(id int) ContextRef {
	return ContextRef{Kind: ContextMatch, MatchID: id}
}

// TournamentRef builds a reference to a tournament by name.
func TournamentRef(name string) ContextRef {
	return ContextRef{Kind: ContextTournament, Tournament: name}
}

// IsZero reports whether the reference links to nothing.
func (c ContextRef) IsZero() bool {
	return c.Kind == ContextNone
}

// StatsKey uniquely identifies a stats record: one player in one match or
// tournament context. The struct is comparable and usable as a map key.
type StatsKey struct {
	Player  string     `json:"player"`
	Context ContextRef `json:"context"`
}

// StatsRecord holds the recorded outcome statistics for a player in a
// match or tournament. A later save with the same key overwrites the
// earlier record.
type StatsRecord struct {
	Player            string     `json:"player"`
	Context           ContextRef `json:"context"`
	Goals             int        `json:"goals"`
	Assists           int        `json:"assists"`
	BigChancesCreated int        `json:"big_chances_created"`
	Dribbles          int        `json:"dribbles"`
	TeamGoals         int        `json:"team_goals"`
	PlayerClutchGA    int        `json:"player_clutch_ga"`
	TeamClutchGA      int        `json:"team_clutch_ga"`
	Timestamp         time.Time  `json:"timestamp"`
}

// Key returns the upsert key for the record.
func (r StatsRecord) Key() StatsKey {
	return StatsKey{Player: r.Player, Context: r.Context}
}
