// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fpmodel/fpm/internal/domain/model"
)

// MatchDependencies defines the interface for match registry operations.
type MatchDependencies interface {
	AddMatch(ctx context.Context, m model.Match) (model.Match, error)
	Matches(ctx context.Context) []model.Match
}

// MatchesHandler handles match registry requests.
type MatchesHandler struct {
	deps MatchDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// matchRequest mirrors the wire schema for POST /matches.
type matchRequest struct {
	Date       string `json:"date"`
	Opponent   string `json:"opponent"`
	Venue      string `json:"venue"`
	Result     string `json:"result"`
	Player     string `json:"player"`
	Tournament string `json:"tournament"`
}

func (m matchRequest) validate() error {
	switch {
	case strings.TrimSpace(m.Opponent) == "":
		return errors.New("missing opponent")
	case strings.TrimSpace(m.Player) == "":
		return errors.New("missing player")
	}
	switch model.Venue(m.Venue) {
	case model.VenueHome, model.VenueAway, model.VenueNeutral:
	default:
		return errors.New("venue must be Home, Away or Neutral")
	}
	if m.Date != "" {
		if _, err := time.Parse(time.RFC3339, m.Date); err != nil {
			return errors.New("invalid date; must be RFC3339")
		}
	}
	return nil
}

// HandleMatches handles GET and POST /matches requests.
func (h *MatchesHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.matches"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Matches(r.Context()))

	case http.MethodPost:
		var req matchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}

		date := time.Now()
		if req.Date != "" {
			date, _ = time.Parse(time.RFC3339, req.Date)
		}
		m, err := h.deps.AddMatch(r.Context(), model.Match{
			Date:       date,
			Opponent:   req.Opponent,
			Venue:      model.Venue(req.Venue),
			Result:     req.Result,
			Player:     req.Player,
			Tournament: req.Tournament,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusCreated, m)

	default:
		http.NotFound(w, r)
	}
}
