package storage

import (
	"testing"
	"time"

	"github.com/fpmodel/fpm/internal/domain/model"
)

func newTestFiles(t *testing.T) *Files {
	t.Helper()
	f, err := NewFiles(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return f
}

func TestFiles_MissingFiles(t *testing.T) {
	f := newTestFiles(t)

	players, err := f.LoadPlayers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if players != nil {
		t.Errorf("expected nil roster for missing file, got %v", players)
	}

	history, err := f.LoadHistory()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history != nil {
		t.Errorf("expected nil history for missing file, got %v", history)
	}
}

func TestFiles_PlayersRoundTrip(t *testing.T) {
	f := newTestFiles(t)

	want := []model.Player{
		{Name: "Iker Mora", Position: "CM / 8", DateAdded: time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)},
		{Name: "Ana, the \"Nine\"", Position: "CF / Striker", DateAdded: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)},
	}
	if err := f.SavePlayers(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := f.LoadPlayers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d players, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Name != want[i].Name || got[i].Position != want[i].Position {
			t.Errorf("row %d mismatch: got %+v want %+v", i, got[i], want[i])
		}
		if !got[i].DateAdded.Equal(want[i].DateAdded) {
			t.Errorf("row %d timestamp mismatch: got %v want %v", i, got[i].DateAdded, want[i].DateAdded)
		}
	}
}

func TestFiles_MatchesRoundTrip(t *testing.T) {
	f := newTestFiles(t)

	want := []model.Match{
		{ID: 1, Date: time.Date(2026, 2, 7, 15, 0, 0, 0, time.UTC), Opponent: "Team A", Venue: model.VenueHome, Result: "W 2-1", Player: "Iker Mora"},
		{ID: 2, Date: time.Date(2026, 2, 14, 20, 45, 0, 0, time.UTC), Opponent: "Team B", Venue: model.VenueNeutral, Result: "D 0-0", Player: "Iker Mora", Tournament: "League Cup"},
	}
	if err := f.SaveMatches(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := f.LoadMatches()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("ids mismatch: %d, %d", got[0].ID, got[1].ID)
	}
	if got[1].Tournament != "League Cup" {
		t.Errorf("expected tournament link, got %q", got[1].Tournament)
	}
	if !got[0].Date.Equal(want[0].Date) {
		t.Errorf("timestamp mismatch: got %v want %v", got[0].Date, want[0].Date)
	}
}

func TestFiles_StatsRoundTrip(t *testing.T) {
	f := newTestFiles(t)

	want := []model.StatsRecord{
		{
			Player:            "Ana Duarte",
			Context:           model.MatchRef(3),
			Goals:             2,
			Assists:           1,
			BigChancesCreated: 4,
			Dribbles:          7,
			TeamGoals:         3,
			PlayerClutchGA:    1,
			TeamClutchGA:      2,
			Timestamp:         time.Date(2026, 5, 2, 17, 30, 12, 345678901, time.UTC),
		},
		{
			Player:    "Ana Duarte",
			Context:   model.TournamentRef("Copa 2026"),
			Goals:     9,
			Timestamp: time.Date(2026, 6, 30, 10, 0, 0, 0, time.UTC),
		},
	}
	if err := f.SaveStats(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := f.LoadStats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0] != want[0] {
		t.Errorf("record 0 did not round-trip:\n got %+v\nwant %+v", got[0], want[0])
	}
	if got[1].Context != model.TournamentRef("Copa 2026") {
		t.Errorf("context did not round-trip: %+v", got[1].Context)
	}
}

func TestFiles_HistoryRoundTrip(t *testing.T) {
	f := newTestFiles(t)

	want := []model.MPRRecord{
		{
			ID:        "7c9e6679-7425-40de-944b-e07fc1f90ae7",
			Player:    "Iker Mora",
			Role:      "CM / 8",
			Context:   model.MatchRef(2),
			Inputs:    model.RatingInputs{AQC: 7.2, HIS: 66.7, EC: 80, TII: 55, IBI: 40},
			OM:        1.15,
			MPR:       74.31,
			Timestamp: time.Date(2026, 2, 14, 22, 58, 1, 999999999, time.UTC),
		},
		{
			ID:        "9b2d7c1a-0000-4e1f-8000-000000000001",
			Player:    "Iker Mora",
			Role:      "CM / 8",
			MPR:       68.0,
			Timestamp: time.Date(2026, 2, 21, 22, 0, 0, 0, time.UTC),
		},
	}
	if err := f.SaveHistory(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := f.LoadHistory()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0] != want[0] {
		t.Errorf("record 0 did not round-trip:\n got %+v\nwant %+v", got[0], want[0])
	}
	if !got[1].Context.IsZero() {
		t.Errorf("expected unlinked record, got %+v", got[1].Context)
	}
}

func TestFiles_UnknownContextVariantDegradesToNoLink(t *testing.T) {
	f := newTestFiles(t)

	recs := []model.StatsRecord{{
		Player:  "Iker Mora",
		Context: model.ContextRef{Kind: "fixture", MatchID: 9},
	}}
	if err := f.SaveStats(recs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := f.LoadStats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got[0].Context.IsZero() {
		t.Errorf("expected unparseable link to degrade to no link, got %+v", got[0].Context)
	}
}

func TestFiles_SaveOverwritesWholeCollection(t *testing.T) {
	f := newTestFiles(t)

	first := []model.Player{{Name: "A", Position: "Winger", DateAdded: time.Unix(0, 0).UTC()}}
	second := []model.Player{{Name: "B", Position: "DM / 6", DateAdded: time.Unix(1, 0).UTC()}}

	if err := f.SavePlayers(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.SavePlayers(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := f.LoadPlayers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "B" {
		t.Errorf("expected whole-collection rewrite, got %+v", got)
	}
}
