// Package storage persists the session collections to disk.
//
// Roster, match and tournament registries are row-oriented CSV files
// with a textual timestamp column; the stats table and rating history
// are JSON record lists. Every save rewrites the whole collection
// atomically (temp file + rename), so a crash never leaves a partial
// file behind. All timestamps use RFC3339Nano: sortable, locale
// independent, and round-tripping to the identical temporal value.
package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fpmodel/fpm/internal/domain/model"
)

// Collection file names, mirroring the reference layout.
const (
	playersFile     = "players.csv"
	matchesFile     = "matches.csv"
	tournamentsFile = "tournaments.csv"
	statsFile       = "stats.json"
	historyFile     = "mprs.json"
)

// timeLayout is the on-disk timestamp format.
const timeLayout = time.RFC3339Nano

// Files reads and writes the session collections under one directory.
type Files struct {
	dir string
}

// NewFiles creates a Files store rooted at dir, creating it if needed.
func NewFiles(dir string) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaveState, err)
	}
	return &Files{dir: dir}, nil
}

// writeAtomic writes data to name via a temp file and rename.
func (f *Files) writeAtomic(name string, data []byte) error {
	path := filepath.Join(f.dir, name)
	tmp, err := os.CreateTemp(f.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveState, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSaveState, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSaveState, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSaveState, err)
	}
	return nil
}

// readFile loads a collection file. A missing file is not an error: it
// means the collection has never been saved.
func (f *Files) readFile(name string) ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrLoadState, err)
	}
	return data, true, nil
}

func marshalCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshalCSV(data []byte, wantColumns int) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = wantColumns
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadState, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	// Drop the header row.
	return rows[1:], nil
}

// SavePlayers rewrites the roster file.
func (f *Files) SavePlayers(players []model.Player) error {
	rows := make([][]string, len(players))
	for i, p := range players {
		rows[i] = []string{p.Name, p.Position, p.DateAdded.Format(timeLayout)}
	}
	data, err := marshalCSV([]string{"Player Name", "Position", "Date Added"}, rows)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveState, err)
	}
	return f.writeAtomic(playersFile, data)
}

// LoadPlayers reads the roster file; a missing file yields an empty
// roster.
func (f *Files) LoadPlayers() ([]model.Player, error) {
	data, ok, err := f.readFile(playersFile)
	if err != nil || !ok {
		return nil, err
	}
	rows, err := unmarshalCSV(data, 3)
	if err != nil {
		return nil, err
	}
	players := make([]model.Player, 0, len(rows))
	for _, row := range rows {
		ts, err := time.Parse(timeLayout, row[2])
		if err != nil {
			return nil, fmt.Errorf("%w: player %q: %w", ErrLoadState, row[0], err)
		}
		players = append(players, model.Player{Name: row[0], Position: row[1], DateAdded: ts})
	}
	return players, nil
}

// SaveMatches rewrites the match registry file.
func (f *Files) SaveMatches(matches []model.Match) error {
	rows := make([][]string, len(matches))
	for i, m := range matches {
		rows[i] = []string{
			strconv.Itoa(m.ID),
			m.Date.Format(timeLayout),
			m.Opponent,
			string(m.Venue),
			m.Result,
			m.Player,
			m.Tournament,
		}
	}
	header := []string{"Match ID", "Date", "Opponent", "Venue", "Result", "Player", "Tournament"}
	data, err := marshalCSV(header, rows)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveState, err)
	}
	return f.writeAtomic(matchesFile, data)
}

// LoadMatches reads the match registry file.
func (f *Files) LoadMatches() ([]model.Match, error) {
	data, ok, err := f.readFile(matchesFile)
	if err != nil || !ok {
		return nil, err
	}
	rows, err := unmarshalCSV(data, 7)
	if err != nil {
		return nil, err
	}
	matches := make([]model.Match, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("%w: match id %q: %w", ErrLoadState, row[0], err)
		}
		ts, err := time.Parse(timeLayout, row[1])
		if err != nil {
			return nil, fmt.Errorf("%w: match %d: %w", ErrLoadState, id, err)
		}
		matches = append(matches, model.Match{
			ID:         id,
			Date:       ts,
			Opponent:   row[2],
			Venue:      model.Venue(row[3]),
			Result:     row[4],
			Player:     row[5],
			Tournament: row[6],
		})
	}
	return matches, nil
}

// SaveTournaments rewrites the tournament registry file.
func (f *Files) SaveTournaments(ts []model.Tournament) error {
	rows := make([][]string, len(ts))
	for i, t := range ts {
		rows[i] = []string{t.ID, t.Name, t.DateAdded.Format(timeLayout)}
	}
	data, err := marshalCSV([]string{"Tournament ID", "Name", "Date Added"}, rows)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveState, err)
	}
	return f.writeAtomic(tournamentsFile, data)
}

// LoadTournaments reads the tournament registry file.
func (f *Files) LoadTournaments() ([]model.Tournament, error) {
	data, ok, err := f.readFile(tournamentsFile)
	if err != nil || !ok {
		return nil, err
	}
	rows, err := unmarshalCSV(data, 3)
	if err != nil {
		return nil, err
	}
	ts := make([]model.Tournament, 0, len(rows))
	for _, row := range rows {
		added, err := time.Parse(timeLayout, row[2])
		if err != nil {
			return nil, fmt.Errorf("%w: tournament %q: %w", ErrLoadState, row[1], err)
		}
		ts = append(ts, model.Tournament{ID: row[0], Name: row[1], DateAdded: added})
	}
	return ts, nil
}

// SaveStats rewrites the stats table file as a record list; the
// structural key needs no string concatenation on disk either.
func (f *Files) SaveStats(recs []model.StatsRecord) error {
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveState, err)
	}
	return f.writeAtomic(statsFile, data)
}

// LoadStats reads the stats table file. Records whose context carries an
// unknown variant degrade to "no link" rather than failing the load.
func (f *Files) LoadStats() ([]model.StatsRecord, error) {
	data, ok, err := f.readFile(statsFile)
	if err != nil || !ok {
		return nil, err
	}
	var recs []model.StatsRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadState, err)
	}
	for i := range recs {
		recs[i].Context = sanitizeRef(recs[i].Context)
	}
	return recs, nil
}

// SaveHistory rewrites the rating history file.
func (f *Files) SaveHistory(recs []model.MPRRecord) error {
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveState, err)
	}
	return f.writeAtomic(historyFile, data)
}

// LoadHistory reads the rating history file, degrading unknown context
// variants to "no link".
func (f *Files) LoadHistory() ([]model.MPRRecord, error) {
	data, ok, err := f.readFile(historyFile)
	if err != nil || !ok {
		return nil, err
	}
	var recs []model.MPRRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadState, err)
	}
	for i := range recs {
		recs[i].Context = sanitizeRef(recs[i].Context)
	}
	return recs, nil
}

// sanitizeRef keeps only well-formed context links; anything else means
// "no link", never a fatal fault.
func sanitizeRef(ref model.ContextRef) model.ContextRef {
	switch ref.Kind {
	case model.ContextMatch:
		return model.ContextRef{Kind: model.ContextMatch, MatchID: ref.MatchID}
	case model.ContextTournament:
		return model.ContextRef{Kind: model.ContextTournament, Tournament: ref.Tournament}
	default:
		return model.ContextRef{}
	}
}
