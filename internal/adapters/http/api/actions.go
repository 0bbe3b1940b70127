// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fpmodel/fpm/internal/domain/model"
	"github.com/fpmodel/fpm/internal/domain/types"
)

// ActionDependencies defines the interface for action scoring.
type ActionDependencies interface {
	ScoreActions(ctx context.Context, actions []model.Action) (types.MatchReport, error)
}

// ActionsHandler handles action scoring requests.
type ActionsHandler struct {
	deps ActionDependencies
}

// NewActionsHandler creates a new actions handler.
func NewActionsHandler(deps ActionDependencies) *ActionsHandler {
	return &ActionsHandler{deps: deps}
}

// actionRequest mirrors the wire schema of one logged action.
type actionRequest struct {
	Phase   string  `json:"phase"`
	DQ      float64 `json:"dq"`
	EQ      float64 `json:"eq"`
	CD      float64 `json:"cd"`
	TA      float64 `json:"ta"`
	LOP     float64 `json:"lop"`
	Mistake string  `json:"mistake_type"`
}

// scoreActionsRequest mirrors the wire schema for POST /actions/score.
type scoreActionsRequest struct {
	Actions []actionRequest `json:"actions"`
}

func (a actionRequest) validate(i int) error {
	for _, v := range []float64{a.DQ, a.EQ, a.CD, a.TA, a.LOP} {
		if v < 1 || v > 10 {
			return fmt.Errorf("action %d: sub-scores must be in [1,10]", i)
		}
	}
	switch model.MistakeType(a.Mistake) {
	case model.MistakeNone, model.MistakeDecision, model.MistakeExecution, model.MistakeForced:
	default:
		return fmt.Errorf("action %d: unknown mistake_type %q", i, a.Mistake)
	}
	switch model.Phase(a.Phase) {
	case model.PhaseBuildUp, model.PhaseFinalThird, model.PhaseAttackingTransition,
		model.PhaseDefensiveTransition, model.PhaseSetPiece:
	default:
		return fmt.Errorf("action %d: unknown phase %q", i, a.Phase)
	}
	return nil
}

// HandleScoreActions handles POST /actions/score requests.
func (h *ActionsHandler) HandleScoreActions(w http.ResponseWriter, r *http.Request) {
	const op = "api.score_actions"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req scoreActionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Actions) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("an empty action log has no defined aggregate")))
		return
	}

	actions := make([]model.Action, len(req.Actions))
	for i, a := range req.Actions {
		if err := a.validate(i); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		actions[i] = model.Action{
			Phase:   model.Phase(a.Phase),
			DQ:      a.DQ,
			EQ:      a.EQ,
			CD:      a.CD,
			TA:      a.TA,
			LOP:     a.LOP,
			Mistake: model.MistakeType(a.Mistake),
		}
	}

	report, err := h.deps.ScoreActions(r.Context(), actions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}
