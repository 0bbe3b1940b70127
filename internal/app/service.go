// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	repository "github.com/fpmodel/fpm/internal/adapters/repository"
	"github.com/fpmodel/fpm/internal/adapters/storage"
	"github.com/fpmodel/fpm/internal/domain/model"
	"github.com/fpmodel/fpm/internal/domain/outcome"
	"github.com/fpmodel/fpm/internal/domain/rating"
	"github.com/fpmodel/fpm/internal/domain/scoring"
	"github.com/fpmodel/fpm/internal/domain/season"
	"github.com/fpmodel/fpm/internal/domain/types"
	"github.com/fpmodel/fpm/pkg/logger"
	"github.com/fpmodel/fpm/pkg/metrics"
)

// Service implements the API dependencies for the rating system.
//
// All mutations persist synchronously: every write goes to the session
// store first and then rewrites the affected collection file, so reads
// never see anything the disk does not.
type Service struct {
	mu sync.RWMutex

	// Core components
	store repository.Store
	files *storage.Files

	// Configuration
	dataDir    string
	seedRoster bool

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore sets a custom session store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDataDir sets the directory the session collections persist under.
// An empty directory disables persistence entirely.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		s.dataDir = dir
	}
}

// WithSeedRoster enables seeding placeholder players when no roster has
// ever been saved.
func WithSeedRoster(seed bool) Option {
	return func(s *Service) {
		s.seedRoster = seed
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:    "data",
		seedRoster: true,
		logger:     nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service: it opens the data directory, loads the
// persisted collections into the session store and seeds the roster if
// it has never been saved.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting rating service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}

	if s.dataDir != "" {
		files, err := storage.NewFiles(s.dataDir)
		if err != nil {
			return err
		}
		s.files = files
		if err := s.loadState(ctx); err != nil {
			return err
		}
	}

	if s.seedRoster && len(s.store.Players(ctx)) == 0 {
		now := time.Now()
		_ = s.store.AddPlayer(ctx, model.Player{Name: "Player 1", Position: "CM", DateAdded: now})
		_ = s.store.AddPlayer(ctx, model.Player{Name: "Player 2", Position: "CF", DateAdded: now})
		if err := s.persistPlayers(ctx); err != nil {
			return err
		}
		s.logger.Info(ctx, "seeded placeholder roster")
	}

	s.started = true
	counts := s.store.Counts(ctx)
	s.logger.Info(ctx, "rating service started",
		logger.String("dataDir", s.dataDir),
		logger.Int("players", counts["players"]),
		logger.Int("matches", counts["matches"]),
		logger.Int("history", counts["history"]),
	)

	return nil
}

// Stop gracefully shuts down the service, flushing all collections to
// disk one final time.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping rating service...")

	if s.files != nil {
		if err := s.persistAll(ctx); err != nil {
			s.logger.Error(ctx, "final state flush failed", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "rating service stopped")
}

// loadState replaces the in-memory collections with the persisted ones.
func (s *Service) loadState(ctx context.Context) error {
	start := time.Now()

	players, err := s.files.LoadPlayers()
	if err != nil {
		metrics.RecordPersistError("load")
		return err
	}
	matches, err := s.files.LoadMatches()
	if err != nil {
		metrics.RecordPersistError("load")
		return err
	}
	tournaments, err := s.files.LoadTournaments()
	if err != nil {
		metrics.RecordPersistError("load")
		return err
	}
	stats, err := s.files.LoadStats()
	if err != nil {
		metrics.RecordPersistError("load")
		return err
	}
	history, err := s.files.LoadHistory()
	if err != nil {
		metrics.RecordPersistError("load")
		return err
	}

	s.store.ReplacePlayers(ctx, players)
	s.store.ReplaceMatches(ctx, matches)
	s.store.ReplaceTournaments(ctx, tournaments)
	s.store.ReplaceStats(ctx, stats)
	s.store.ReplaceHistory(ctx, history)

	metrics.RecordPersistLatency("load", float64(time.Since(start).Milliseconds()))
	return nil
}

// persistAll rewrites every collection file.
func (s *Service) persistAll(ctx context.Context) error {
	for _, save := range []func(context.Context) error{
		s.persistPlayers,
		s.persistMatches,
		s.persistTournaments,
		s.persistStats,
		s.persistHistory,
	} {
		if err := save(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) persistPlayers(ctx context.Context) error {
	if s.files == nil {
		return nil
	}
	start := time.Now()
	if err := s.files.SavePlayers(s.store.Players(ctx)); err != nil {
		metrics.RecordPersistError("save")
		return err
	}
	metrics.RecordPersistLatency("save", float64(time.Since(start).Milliseconds()))
	return nil
}

func (s *Service) persistMatches(ctx context.Context) error {
	if s.files == nil {
		return nil
	}
	start := time.Now()
	if err := s.files.SaveMatches(s.store.Matches(ctx)); err != nil {
		metrics.RecordPersistError("save")
		return err
	}
	metrics.RecordPersistLatency("save", float64(time.Since(start).Milliseconds()))
	return nil
}

func (s *Service) persistTournaments(ctx context.Context) error {
	if s.files == nil {
		return nil
	}
	start := time.Now()
	if err := s.files.SaveTournaments(s.store.Tournaments(ctx)); err != nil {
		metrics.RecordPersistError("save")
		return err
	}
	metrics.RecordPersistLatency("save", float64(time.Since(start).Milliseconds()))
	return nil
}

func (s *Service) persistStats(ctx context.Context) error {
	if s.files == nil {
		return nil
	}
	start := time.Now()
	if err := s.files.SaveStats(s.store.AllStats(ctx)); err != nil {
		metrics.RecordPersistError("save")
		return err
	}
	metrics.RecordPersistLatency("save", float64(time.Since(start).Milliseconds()))
	return nil
}

func (s *Service) persistHistory(ctx context.Context) error {
	if s.files == nil {
		return nil
	}
	start := time.Now()
	if err := s.files.SaveHistory(s.store.History(ctx)); err != nil {
		metrics.RecordPersistError("save")
		return err
	}
	metrics.RecordPersistLatency("save", float64(time.Since(start).Milliseconds()))
	return nil
}

// ScoreActions scores a whole action log and reduces it to the match
// report: per-action values, AQC/HIS aggregate and the visual
// consistency estimate.
func (s *Service) ScoreActions(ctx context.Context, actions []model.Action) (types.MatchReport, error) {
	start := time.Now()
	cavs := scoring.ScoreAll(actions)
	agg, err := scoring.Aggregate(cavs)
	if err != nil {
		metrics.RecordScoringError()
		return types.MatchReport{}, err
	}

	scores := make([]types.ActionScore, len(actions))
	for i, a := range actions {
		scores[i] = types.ActionScore{Action: a, CAV: cavs[i]}
	}

	metrics.RecordActionsScored(len(actions))
	metrics.RecordMatchAggregated()
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))

	s.logger.Debug(ctx, "scored action log",
		logger.Int("actions", len(actions)),
		logger.Float64("aqc", agg.AQC),
		logger.Float64("his", agg.HIS),
	)

	return types.MatchReport{
		Scores:     scores,
		Aggregate:  agg,
		ECEstimate: scoring.EstimateConsistency(cavs),
	}, nil
}

// OutcomeModifier resolves the outcome multiplier for a (player, context)
// key from the stats table. A missing record yields the neutral modifier
// with found=false; the caller decides whether to fall back to manual
// entry.
func (s *Service) OutcomeModifier(ctx context.Context, key model.StatsKey) (float64, bool) {
	lookup := outcome.LookupFunc(func(k model.StatsKey) (model.StatsRecord, bool) {
		return s.store.Stats(ctx, k)
	})
	return outcome.Resolve(key, lookup)
}

// ComputeMPR computes the role-neutral rating variant.
func (s *Service) ComputeMPR(ctx context.Context, in model.RatingInputs, mod model.Modifiers) float64 {
	metrics.RecordRatingComputed("role_neutral")
	return rating.MPR(in, mod)
}

// ComputeWeightedMPR computes the role-weighted rating variant.
func (s *Service) ComputeWeightedMPR(ctx context.Context, role string, in model.RatingInputs, mod model.Modifiers) (float64, error) {
	v, err := rating.WeightedMPR(in, mod, rating.Role(role))
	if err != nil {
		metrics.RecordRatingError()
		return 0, err
	}
	metrics.RecordRatingComputed("weighted")
	return v, nil
}

// Roles returns the built-in role presets in a stable order.
func (s *Service) Roles(ctx context.Context) []string {
	roles := rating.Roles()
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// SaveRating assigns the record an id and timestamp, appends it to the
// history and persists. The stored record is returned.
func (s *Service) SaveRating(ctx context.Context, rec model.MPRRecord) (model.MPRRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = uuid.NewString()
	rec.Timestamp = time.Now()
	s.store.AppendMPR(ctx, rec)
	if err := s.persistHistory(ctx); err != nil {
		return model.MPRRecord{}, err
	}

	metrics.RecordRatingSaved()
	s.logger.Info(ctx, "rating record saved",
		logger.String("id", rec.ID),
		logger.String("player", rec.Player),
		logger.Float64("mpr", rec.MPR),
	)
	return rec, nil
}

// History returns the full rating history in insertion order.
func (s *Service) History(ctx context.Context) []model.MPRRecord {
	return s.store.History(ctx)
}

// HistoryFor returns one player's rating history in insertion order.
func (s *Service) HistoryFor(ctx context.Context, player string) []model.MPRRecord {
	return s.store.HistoryFor(ctx, player)
}

// DeleteRatingAt removes the history entry at index and persists.
func (s *Service) DeleteRatingAt(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteMPRAt(ctx, index); err != nil {
		return err
	}
	return s.persistHistory(ctx)
}

// SeasonSummary reduces a player's saved history into the contextual
// season rating.
func (s *Service) SeasonSummary(ctx context.Context, player string, roleTransfer float64) (types.SeasonSummary, error) {
	history := s.store.HistoryFor(ctx, player)
	sum, err := season.Evaluate(history, roleTransfer)
	if err != nil {
		return types.SeasonSummary{}, err
	}

	metrics.RecordSeasonEvaluation()
	return types.SeasonSummary{
		Player:        player,
		AvgMPR:        sum.AvgMPR,
		Repeatability: sum.Repeatability,
		Peak5:         sum.Peak5,
		RoleTransfer:  sum.RoleTransfer,
		CSR:           sum.CSR,
		Matches:       sum.Matches,
	}, nil
}

// AddPlayer appends a roster entry, stamping DateAdded, and persists.
func (s *Service) AddPlayer(ctx context.Context, name, position string) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := model.Player{Name: name, Position: position, DateAdded: time.Now()}
	if err := s.store.AddPlayer(ctx, p); err != nil {
		return model.Player{}, err
	}
	if err := s.persistPlayers(ctx); err != nil {
		return model.Player{}, err
	}
	return p, nil
}

// Players returns the roster in insertion order.
func (s *Service) Players(ctx context.Context) []model.Player {
	return s.store.Players(ctx)
}

// RemovePlayer deletes a roster entry by name and persists.
func (s *Service) RemovePlayer(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.RemovePlayer(ctx, name); err != nil {
		return err
	}
	return s.persistPlayers(ctx)
}

// AddMatch appends a registry entry and persists. The store assigns the
// next monotonic id; the stored match is returned.
func (s *Service) AddMatch(ctx context.Context, m model.Match) (model.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.store.AddMatch(ctx, m)
	if err != nil {
		return model.Match{}, err
	}
	if err := s.persistMatches(ctx); err != nil {
		return model.Match{}, err
	}
	return stored, nil
}

// Matches returns the registry in insertion order.
func (s *Service) Matches(ctx context.Context) []model.Match {
	return s.store.Matches(ctx)
}

// MatchByID returns the match with the given id.
func (s *Service) MatchByID(ctx context.Context, id int) (model.Match, error) {
	return s.store.MatchByID(ctx, id)
}

// AddTournament registers a tournament under a fresh id and persists.
func (s *Service) AddTournament(ctx context.Context, name string) (model.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.Tournament{ID: uuid.NewString(), Name: name, DateAdded: time.Now()}
	if err := s.store.AddTournament(ctx, t); err != nil {
		return model.Tournament{}, err
	}
	if err := s.persistTournaments(ctx); err != nil {
		return model.Tournament{}, err
	}
	return t, nil
}

// Tournaments returns the registry in insertion order.
func (s *Service) Tournaments(ctx context.Context) []model.Tournament {
	return s.store.Tournaments(ctx)
}

// UpsertStats saves a stats record, stamping its timestamp, and persists.
// A record with the same (player, context) key is overwritten.
func (s *Service) UpsertStats(ctx context.Context, rec model.StatsRecord) (model.StatsRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.Timestamp = time.Now()
	s.store.UpsertStats(ctx, rec)
	if err := s.persistStats(ctx); err != nil {
		return model.StatsRecord{}, err
	}
	return rec, nil
}

// StatsFor returns the stats record for a key, with found=false on
// absence.
func (s *Service) StatsFor(ctx context.Context, key model.StatsKey) (model.StatsRecord, bool) {
	return s.store.Stats(ctx, key)
}

// DeleteStats removes the stats record for a key and persists.
func (s *Service) DeleteStats(ctx context.Context, key model.StatsKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteStats(ctx, key); err != nil {
		return err
	}
	return s.persistStats(ctx)
}

// AllStats returns the stats table contents in first-insertion order.
func (s *Service) AllStats(ctx context.Context) []model.StatsRecord {
	return s.store.AllStats(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
		"dataDir": s.dataDir,
	}

	if s.started {
		for name, count := range s.store.Counts(ctx) {
			stats[name] = count
			metrics.UpdateCollectionSize(name, count)
		}
	}

	return stats
}
