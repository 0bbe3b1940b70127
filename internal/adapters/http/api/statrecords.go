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

// StatRecordDependencies defines the interface for stats table operations.
type StatRecordDependencies interface {
	UpsertStats(ctx context.Context, rec model.StatsRecord) (model.StatsRecord, error)
	MatchByID(ctx context.Context, id int) (model.Match, error)
	StatsFor(ctx context.Context, key model.StatsKey) (model.StatsRecord, bool)
	DeleteStats(ctx context.Context, key model.StatsKey) error
	AllStats(ctx context.Context) []model.StatsRecord
}

// StatRecordsHandler handles stats table requests.
type StatRecordsHandler struct {
	deps StatRecordDependencies
}

// NewStatRecordsHandler creates a new stat records handler.
func NewStatRecordsHandler(deps StatRecordDependencies) *StatRecordsHandler {
	return &StatRecordsHandler{deps: deps}
}

// statRecordRequest mirrors the wire schema for PUT /statrecords.
type statRecordRequest struct {
	Player            string         `json:"player"`
	Context           contextRequest `json:"context"`
	Goals             int            `json:"goals"`
	Assists           int            `json:"assists"`
	BigChancesCreated int            `json:"big_chances_created"`
	Dribbles          int            `json:"dribbles"`
	TeamGoals         int            `json:"team_goals"`
	PlayerClutchGA    int            `json:"player_clutch_ga"`
	TeamClutchGA      int            `json:"team_clutch_ga"`
}

func (s statRecordRequest) validate() error {
	if strings.TrimSpace(s.Player) == "" {
		return errors.New("missing player")
	}
	for _, v := range []int{
		s.Goals, s.Assists, s.BigChancesCreated, s.Dribbles,
		s.TeamGoals, s.PlayerClutchGA, s.TeamClutchGA,
	} {
		if v < 0 {
			return errors.New("counting stats must be non-negative")
		}
	}
	return nil
}

// keyFromRequest builds the structural lookup key from the query string.
func (h *StatRecordsHandler) keyFromRequest(r *http.Request) (model.StatsKey, error) {
	player := r.URL.Query().Get("player")
	if strings.TrimSpace(player) == "" {
		return model.StatsKey{}, errors.New("missing player")
	}
	ref, err := refFromQuery(r.URL.Query())
	if err != nil {
		return model.StatsKey{}, err
	}
	if ref.IsZero() {
		return model.StatsKey{}, errors.New("a match or tournament context is required")
	}
	return model.StatsKey{Player: player, Context: ref}, nil
}

// HandleStatRecords handles PUT, GET and DELETE /statrecords requests.
func (h *StatRecordsHandler) HandleStatRecords(w http.ResponseWriter, r *http.Request) {
	const op = "api.statrecords"
	switch r.Method {
	case http.MethodPut:
		var req statRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		ref, err := req.Context.toRef()
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		// Stats records always belong to exactly one match or tournament.
		if ref.IsZero() {
			writeError(w, http.StatusBadRequest, "bad_request",
				WrapKind(op, ErrBadRequest, errors.New("a match or tournament context is required")))
			return
		}
		if err := checkMatchLink(r.Context(), h.deps, ref); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		rec, err := h.deps.UpsertStats(r.Context(), model.StatsRecord{
			Player:            req.Player,
			Context:           ref,
			Goals:             req.Goals,
			Assists:           req.Assists,
			BigChancesCreated: req.BigChancesCreated,
			Dribbles:          req.Dribbles,
			TeamGoals:         req.TeamGoals,
			PlayerClutchGA:    req.PlayerClutchGA,
			TeamClutchGA:      req.TeamClutchGA,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, rec)

	case http.MethodGet:
		// Without a player the whole table is listed.
		if r.URL.Query().Get("player") == "" {
			writeJSON(w, http.StatusOK, h.deps.AllStats(r.Context()))
			return
		}
		key, err := h.keyFromRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		rec, ok := h.deps.StatsFor(r.Context(), key)
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
			return
		}
		writeJSON(w, http.StatusOK, rec)

	case http.MethodDelete:
		key, err := h.keyFromRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := h.deps.DeleteStats(r.Context(), key); err != nil {
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
