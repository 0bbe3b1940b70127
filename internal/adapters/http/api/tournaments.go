// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fpmodel/fpm/internal/domain/model"
)

// TournamentDependencies defines the interface for tournament registry
// operations.
type TournamentDependencies interface {
	AddTournament(ctx context.Context, name string) (model.Tournament, error)
	Tournaments(ctx context.Context) []model.Tournament
}

// TournamentsHandler handles tournament registry requests.
type TournamentsHandler struct {
	deps TournamentDependencies
}

// NewTournamentsHandler creates a new tournaments handler.
func NewTournamentsHandler(deps TournamentDependencies) *TournamentsHandler {
	return &TournamentsHandler{deps: deps}
}

// tournamentRequest mirrors the wire schema for POST /tournaments.
type tournamentRequest struct {
	Name string `json:"name"`
}

// HandleTournaments handles GET and POST /tournaments requests.
func (h *TournamentsHandler) HandleTournaments(w http.ResponseWriter, r *http.Request) {
	const op = "api.tournaments"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Tournaments(r.Context()))

	case http.MethodPost:
		var req tournamentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing name")))
			return
		}
		t, err := h.deps.AddTournament(r.Context(), req.Name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusCreated, t)

	default:
		http.NotFound(w, r)
	}
}
