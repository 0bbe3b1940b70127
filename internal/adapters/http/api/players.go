// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fpmodel/fpm/internal/adapters/repository"
	"github.com/fpmodel/fpm/internal/domain/model"
)

// PlayerDependencies defines the interface for roster operations.
type PlayerDependencies interface {
	AddPlayer(ctx context.Context, name, position string) (model.Player, error)
	Players(ctx context.Context) []model.Player
	RemovePlayer(ctx context.Context, name string) error
}

// PlayersHandler handles roster requests.
type PlayersHandler struct {
	deps PlayerDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// playerRequest mirrors the wire schema for POST /players.
type playerRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

func (p playerRequest) validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return errors.New("missing name")
	case strings.TrimSpace(p.Position) == "":
		return errors.New("missing position")
	}
	return nil
}

// HandlePlayers handles GET, POST and DELETE /players requests.
func (h *PlayersHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.players"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Players(r.Context()))

	case http.MethodPost:
		var req playerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		p, err := h.deps.AddPlayer(r.Context(), req.Name, req.Position)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusCreated, p)

	case http.MethodDelete:
		name := r.URL.Query().Get("name")
		if strings.TrimSpace(name) == "" {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if err := h.deps.RemovePlayer(r.Context(), name); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})

	default:
		http.NotFound(w, r)
	}
}
