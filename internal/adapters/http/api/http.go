// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fpmodel/fpm/internal/domain/model"
	"github.com/fpmodel/fpm/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Pipeline operations.
	ScoreActions(ctx context.Context, actions []model.Action) (types.MatchReport, error)
	OutcomeModifier(ctx context.Context, key model.StatsKey) (float64, bool)
	ComputeMPR(ctx context.Context, in model.RatingInputs, mod model.Modifiers) float64
	ComputeWeightedMPR(ctx context.Context, role string, in model.RatingInputs, mod model.Modifiers) (float64, error)
	Roles(ctx context.Context) []string

	// Rating history.
	SaveRating(ctx context.Context, rec model.MPRRecord) (model.MPRRecord, error)
	History(ctx context.Context) []model.MPRRecord
	HistoryFor(ctx context.Context, player string) []model.MPRRecord
	DeleteRatingAt(ctx context.Context, index int) error
	SeasonSummary(ctx context.Context, player string, roleTransfer float64) (types.SeasonSummary, error)

	// Session registries.
	AddPlayer(ctx context.Context, name, position string) (model.Player, error)
	Players(ctx context.Context) []model.Player
	RemovePlayer(ctx context.Context, name string) error
	AddMatch(ctx context.Context, m model.Match) (model.Match, error)
	Matches(ctx context.Context) []model.Match
	MatchByID(ctx context.Context, id int) (model.Match, error)
	AddTournament(ctx context.Context, name string) (model.Tournament, error)
	Tournaments(ctx context.Context) []model.Tournament

	// Stats table.
	UpsertStats(ctx context.Context, rec model.StatsRecord) (model.StatsRecord, error)
	StatsFor(ctx context.Context, key model.StatsKey) (model.StatsRecord, bool)
	DeleteStats(ctx context.Context, key model.StatsKey) error
	AllStats(ctx context.Context) []model.StatsRecord
}

// defaultMaxListLimit caps ?limit on listing endpoints unless configured.
const defaultMaxListLimit = 500

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxListLimit caps the ?limit parameter accepted by listing
// endpoints.
func WithMaxListLimit(limit int) Option {
	return func(s *Server) {
		if limit > 0 {
			s.maxListLimit = limit
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	maxListLimit int

	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	playersHandler     *PlayersHandler
	matchesHandler     *MatchesHandler
	tournamentsHandler *TournamentsHandler
	statRecordsHandler *StatRecordsHandler
	actionsHandler     *ActionsHandler
	ratingsHandler     *RatingsHandler
	historyHandler     *HistoryHandler
	seasonHandler      *SeasonHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{maxListLimit: defaultMaxListLimit}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.playersHandler = NewPlayersHandler(deps)
	s.matchesHandler = NewMatchesHandler(deps)
	s.tournamentsHandler = NewTournamentsHandler(deps)
	s.statRecordsHandler = NewStatRecordsHandler(deps)
	s.actionsHandler = NewActionsHandler(deps)
	s.ratingsHandler = NewRatingsHandler(deps)
	s.historyHandler = NewHistoryHandler(deps, s.maxListLimit)
	s.seasonHandler = NewSeasonHandler(deps)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandlePlayers, "players"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandleMatches, "matches"))
	mux.HandleFunc("/tournaments", MetricsMiddleware(s.tournamentsHandler.HandleTournaments, "tournaments"))
	mux.HandleFunc("/statrecords", MetricsMiddleware(s.statRecordsHandler.HandleStatRecords, "statrecords"))
	mux.HandleFunc("/actions/score", MetricsMiddleware(s.actionsHandler.HandleScoreActions, "score_actions"))
	mux.HandleFunc("/ratings/mpr", MetricsMiddleware(s.ratingsHandler.HandleMPR, "rating_mpr"))
	mux.HandleFunc("/ratings/weighted", MetricsMiddleware(s.ratingsHandler.HandleWeightedMPR, "rating_weighted"))
	mux.HandleFunc("/roles", MetricsMiddleware(s.ratingsHandler.HandleRoles, "roles"))
	mux.HandleFunc("/mprs", MetricsMiddleware(s.historyHandler.HandleHistory, "mprs"))
	mux.HandleFunc("/mprs/", MetricsMiddleware(s.historyHandler.HandleDeleteByIndex, "mprs_delete"))
	mux.HandleFunc("/season/", MetricsMiddleware(s.seasonHandler.HandleSeason, "season"))
}

// contextRequest is the wire shape of a match/tournament link. An absent
// or empty kind means "no link".
type contextRequest struct {
	Kind       string `json:"kind"`
	MatchID    int    `json:"match_id"`
	Tournament string `json:"tournament"`
}

func (c contextRequest) toRef() (model.ContextRef, error) {
	switch c.Kind {
	case "":
		return model.ContextRef{}, nil
	case string(model.ContextMatch):
		if c.MatchID < 1 {
			return model.ContextRef{}, errors.New("match context requires a positive match_id")
		}
		return model.MatchRef(c.MatchID), nil
	case string(model.ContextTournament):
		if strings.TrimSpace(c.Tournament) == "" {
			return model.ContextRef{}, errors.New("tournament context requires a tournament name")
		}
		return model.TournamentRef(c.Tournament), nil
	default:
		return model.ContextRef{}, fmt.Errorf("unknown context kind %q", c.Kind)
	}
}

// refFromQuery builds a context link from query parameters: kind plus
// match_id or tournament.
func refFromQuery(q map[string][]string) (model.ContextRef, error) {
	get := func(key string) string {
		if vs := q[key]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	req := contextRequest{Kind: get("kind"), Tournament: get("tournament")}
	if raw := get("match_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return model.ContextRef{}, fmt.Errorf("invalid match_id %q", raw)
		}
		req.MatchID = id
	}
	return req.toRef()
}

// matchFinder resolves match ids; writes carrying a match link verify it
// against the registry before persisting.
type matchFinder interface {
	MatchByID(ctx context.Context, id int) (model.Match, error)
}

// checkMatchLink rejects a match-kind link whose id is not registered.
// Non-match links pass through untouched.
func checkMatchLink(ctx context.Context, deps matchFinder, ref model.ContextRef) error {
	if ref.Kind != model.ContextMatch {
		return nil
	}
	if _, err := deps.MatchByID(ctx, ref.MatchID); err != nil {
		return fmt.Errorf("unknown match %d", ref.MatchID)
	}
	return nil
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
