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

// RatingDependencies defines the interface for rating computation.
type RatingDependencies interface {
	ComputeMPR(ctx context.Context, in model.RatingInputs, mod model.Modifiers) float64
	ComputeWeightedMPR(ctx context.Context, role string, in model.RatingInputs, mod model.Modifiers) (float64, error)
	OutcomeModifier(ctx context.Context, key model.StatsKey) (float64, bool)
	Roles(ctx context.Context) []string
}

// RatingsHandler handles rating computation requests.
type RatingsHandler struct {
	deps RatingDependencies
}

// NewRatingsHandler creates a new ratings handler.
func NewRatingsHandler(deps RatingDependencies) *RatingsHandler {
	return &RatingsHandler{deps: deps}
}

// ratingRequest mirrors the wire schema for the rating endpoints. OM is a
// pointer so a manual value of any kind can be told apart from "resolve
// it from the stats table": with OM absent, Player plus Context name the
// record to derive it from.
type ratingRequest struct {
	Role    string             `json:"role,omitempty"`
	Inputs  model.RatingInputs `json:"inputs"`
	SCI     float64            `json:"sci"`
	PI      float64            `json:"pi"`
	OM      *float64           `json:"om,omitempty"`
	Player  string             `json:"player,omitempty"`
	Context contextRequest     `json:"context,omitempty"`
}

// ratingResponse reports the computed value plus the outcome modifier
// that went into it and where it came from.
type ratingResponse struct {
	MPR      float64 `json:"mpr"`
	OM       float64 `json:"om"`
	OMSource string  `json:"om_source"` // manual, stats or default
}

func (req ratingRequest) validate() error {
	if req.Inputs.AQC < 1 || req.Inputs.AQC > 10 {
		return errors.New("aqc must be in [1,10]")
	}
	for _, v := range []float64{req.Inputs.HIS, req.Inputs.EC, req.Inputs.TII, req.Inputs.IBI} {
		if v < 0 || v > 100 {
			return errors.New("his, ec, tii and ibi must be in [0,100]")
		}
	}
	if req.SCI < 1.0 || req.SCI > 1.08 {
		return errors.New("sci must be in [1.0,1.08]")
	}
	if req.PI < 0.5 || req.PI > 1.5 {
		return errors.New("pi must be in [0.5,1.5]")
	}
	if req.OM != nil && (*req.OM < 0.5 || *req.OM > 1.5) {
		return errors.New("om must be in [0.5,1.5]")
	}
	if req.OM == nil && strings.TrimSpace(req.Player) == "" {
		return errors.New("either om or a player with context is required")
	}
	return nil
}

// modifierResolver derives outcome modifiers from the stats table.
type modifierResolver interface {
	OutcomeModifier(ctx context.Context, key model.StatsKey) (float64, bool)
}

// resolveModifiers builds the modifier set, deriving OM from the stats
// table when no manual value was sent.
func resolveModifiers(ctx context.Context, deps modifierResolver, req ratingRequest) (model.Modifiers, string, error) {
	mod := model.Modifiers{SCI: req.SCI, PI: req.PI}

	if req.OM != nil {
		mod.OM = *req.OM
		return mod, "manual", nil
	}

	ref, err := req.Context.toRef()
	if err != nil {
		return model.Modifiers{}, "", err
	}
	om, found := deps.OutcomeModifier(ctx, model.StatsKey{Player: req.Player, Context: ref})
	mod.OM = om
	if !found {
		return mod, "default", nil
	}
	return mod, "stats", nil
}

// HandleMPR handles POST /ratings/mpr requests.
func (h *RatingsHandler) HandleMPR(w http.ResponseWriter, r *http.Request) {
	const op = "api.rating_mpr"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	mod, source, err := resolveModifiers(r.Context(), h.deps, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	mpr := h.deps.ComputeMPR(r.Context(), req.Inputs, mod)
	writeJSON(w, http.StatusOK, ratingResponse{MPR: mpr, OM: mod.OM, OMSource: source})
}

// HandleWeightedMPR handles POST /ratings/weighted requests.
func (h *RatingsHandler) HandleWeightedMPR(w http.ResponseWriter, r *http.Request) {
	const op = "api.rating_weighted"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
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

	mod, source, err := resolveModifiers(r.Context(), h.deps, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	mpr, err := h.deps.ComputeWeightedMPR(r.Context(), req.Role, req.Inputs, mod)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, ratingResponse{MPR: mpr, OM: mod.OM, OMSource: source})
}

// rolesResponse lists the built-in role presets.
type rolesResponse struct {
	Roles []string `json:"roles"`
}

// HandleRoles handles GET /roles requests.
func (h *RatingsHandler) HandleRoles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, rolesResponse{Roles: h.deps.Roles(r.Context())})
}
