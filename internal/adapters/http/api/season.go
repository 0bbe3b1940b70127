// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fpmodel/fpm/internal/domain/season"
	"github.com/fpmodel/fpm/internal/domain/types"
)

// defaultRoleTransfer is assumed when the query omits the manually
// assessed role transferability score.
const defaultRoleTransfer = 70.0

// SeasonDependencies defines the interface for season evaluation.
type SeasonDependencies interface {
	SeasonSummary(ctx context.Context, player string, roleTransfer float64) (types.SeasonSummary, error)
}

// SeasonHandler handles season evaluation requests.
type SeasonHandler struct {
	deps SeasonDependencies
}

// NewSeasonHandler creates a new season handler.
func NewSeasonHandler(deps SeasonDependencies) *SeasonHandler {
	return &SeasonHandler{deps: deps}
}

// HandleSeason handles GET /season/{player}?role_transfer=N requests.
func (h *SeasonHandler) HandleSeason(w http.ResponseWriter, r *http.Request) {
	const op = "api.season"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	player := strings.TrimPrefix(r.URL.Path, "/season/")
	if strings.TrimSpace(player) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	roleTransfer := defaultRoleTransfer
	if raw := r.URL.Query().Get("role_transfer"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 100 {
			writeError(w, http.StatusBadRequest, "bad_request",
				WrapKind(op, ErrBadRequest, errors.New("role_transfer must be in [0,100]")))
			return
		}
		roleTransfer = v
	}

	sum, err := h.deps.SeasonSummary(r.Context(), player, roleTransfer)
	if err != nil {
		if errors.Is(err, season.ErrNoHistory) {
			writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
