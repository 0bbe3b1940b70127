// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fpmodel/fpm/internal/adapters/repository"
	"github.com/fpmodel/fpm/internal/domain/model"
)

// HistoryDependencies defines the interface for rating history operations.
type HistoryDependencies interface {
	ComputeWeightedMPR(ctx context.Context, role string, in model.RatingInputs, mod model.Modifiers) (float64, error)
	OutcomeModifier(ctx context.Context, key model.StatsKey) (float64, bool)
	MatchByID(ctx context.Context, id int) (model.Match, error)
	SaveRating(ctx context.Context, rec model.MPRRecord) (model.MPRRecord, error)
	History(ctx context.Context) []model.MPRRecord
	HistoryFor(ctx context.Context, player string) []model.MPRRecord
	DeleteRatingAt(ctx context.Context, index int) error
}

// HistoryHandler handles rating history requests.
type HistoryHandler struct {
	deps     HistoryDependencies
	maxLimit int
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps HistoryDependencies, maxLimit int) *HistoryHandler {
	return &HistoryHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleHistory handles POST and GET /mprs requests.
//
// POST takes the same shape as /ratings/weighted and recomputes the
// weighted rating server-side before persisting; a client-sent rating
// value is never trusted. The id and timestamp are assigned server-side.
func (h *HistoryHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.mprs"
	switch r.Method {
	case http.MethodPost:
		var req ratingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if strings.TrimSpace(req.Player) == "" {
			writeError(w, http.StatusBadRequest, "bad_request",
				WrapKind(op, ErrBadRequest, errors.New("missing player")))
			return
		}
		if strings.TrimSpace(req.Role) == "" {
			writeError(w, http.StatusBadRequest, "bad_request",
				WrapKind(op, ErrBadRequest, errors.New("missing role")))
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
		if err := checkMatchLink(r.Context(), h.deps, ref); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		mod, _, err := resolveModifiers(r.Context(), h.deps, req)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		mpr, err := h.deps.ComputeWeightedMPR(r.Context(), req.Role, req.Inputs, mod)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		rec, err := h.deps.SaveRating(r.Context(), model.MPRRecord{
			Player:  req.Player,
			Role:    req.Role,
			Context: ref,
			Inputs:  req.Inputs,
			OM:      mod.OM,
			MPR:     mpr,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusCreated, rec)

	case http.MethodGet:
		var recs []model.MPRRecord
		if player := r.URL.Query().Get("player"); player != "" {
			recs = h.deps.HistoryFor(r.Context(), player)
		} else {
			recs = h.deps.History(r.Context())
		}
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			n, err := strconv.Atoi(limitStr)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
				return
			}
			if n > h.maxLimit {
				writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
				return
			}
			// Keep the most recent records when truncating.
			if len(recs) > n {
				recs = recs[len(recs)-n:]
			}
		}
		writeJSON(w, http.StatusOK, recs)

	default:
		http.NotFound(w, r)
	}
}

// HandleDeleteByIndex handles DELETE /mprs/{index} requests.
func (h *HistoryHandler) HandleDeleteByIndex(w http.ResponseWriter, r *http.Request) {
	const op = "api.mprs_delete"
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/mprs/")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if err := h.deps.DeleteRatingAt(r.Context(), index); err != nil {
		if errors.Is(err, repository.ErrIndexOutOfRange) {
			writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}
