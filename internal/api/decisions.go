package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Optimizer/internal/config"
	"github.com/MikeSquared-Agency/Optimizer/internal/decision"
	"github.com/MikeSquared-Agency/Optimizer/internal/engine"
	"github.com/MikeSquared-Agency/Optimizer/internal/metrics"
	"github.com/MikeSquared-Agency/Optimizer/internal/table"
)

const (
	OrientationDirect   = "direct"
	OrientationInverted = "inverted"

	sourceAPI = "api"
)

// Solver is the part of engine.Engine the handlers need.
type Solver interface {
	Solve(ctx context.Context, req *engine.Request) (*engine.Result, error)
}

type CriterionRequest struct {
	Name        string    `json:"name" validate:"required"`
	Values      []float64 `json:"values" validate:"required,min=1"`
	Orientation string    `json:"orientation,omitempty" validate:"omitempty,oneof=direct inverted"`
}

type SolveRequest struct {
	Source       string             `json:"source,omitempty" validate:"omitempty,max=128"`
	IDColumn     string             `json:"id_column,omitempty"`
	Alternatives []string           `json:"alternatives,omitempty"`
	Criteria     []CriterionRequest `json:"criteria" validate:"required,min=1,dive"`
}

// ToEngineRequest builds the table for req. Missing alternatives are
// numbered from zero.
func (req SolveRequest) ToEngineRequest() *engine.Request {
	columns := make([]table.Column, len(req.Criteria))
	var inverted []string
	for i, c := range req.Criteria {
		columns[i] = table.Column{Name: c.Name, Values: c.Values}
		if c.Orientation == OrientationInverted {
			inverted = append(inverted, c.Name)
		}
	}
	t := table.New(req.Alternatives, columns)
	if req.IDColumn != "" {
		t.IDColumn = req.IDColumn
	}
	source := req.Source
	if source == "" {
		source = sourceAPI
	}
	return &engine.Request{Source: source, Surface: metrics.SurfaceAPI, Table: t, Inverted: inverted}
}

type DecisionsHandler struct {
	solver       Solver
	defaults     config.SolverConfig
	maxBodyBytes int64
	validate     *validator.Validate
}

func NewDecisionsHandler(s Solver, defaults config.SolverConfig, maxBodyBytes int64) *DecisionsHandler {
	return &DecisionsHandler{
		solver:       s,
		defaults:     defaults,
		maxBodyBytes: maxBodyBytes,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *DecisionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.solve(w, r, req.ToEngineRequest())
}

// CreateFromCSV solves a CSV body. The id_column and inverted query
// parameters override the configured defaults.
func (h *DecisionsHandler) CreateFromCSV(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)

	q := r.URL.Query()
	idColumn := q.Get("id_column")
	if idColumn == "" {
		idColumn = h.defaults.IDColumn
	}
	inverted := h.defaults.Inverted
	if q.Has("inverted") {
		inverted = config.SplitList(q.Get("inverted"))
	}
	source := q.Get("source")
	if source == "" {
		source = sourceAPI
	}

	t, err := table.ReadCSV(r.Body, idColumn)
	if err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		if decision.IsValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid csv body: "+err.Error())
		return
	}

	h.solve(w, r, &engine.Request{Source: source, Surface: metrics.SurfaceCSV, Table: t, Inverted: inverted})
}

func (h *DecisionsHandler) solve(w http.ResponseWriter, r *http.Request, req *engine.Request) {
	result, err := h.solver.Solve(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, result)
	case decision.IsValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *DecisionsHandler) limitBody(w http.ResponseWriter, r *http.Request) {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": strings.TrimSpace(msg)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
