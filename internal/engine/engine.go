// Package engine runs decisions for the service surfaces: it assigns an id,
// solves, records metrics and publishes the outcome.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Optimizer/internal/decision"
	"github.com/MikeSquared-Agency/Optimizer/internal/hermes"
	"github.com/MikeSquared-Agency/Optimizer/internal/metrics"
	"github.com/MikeSquared-Agency/Optimizer/internal/table"
)

const defaultSource = "unknown"

// Request is one problem to solve. Source is free-form and only reaches
// logs and events; Surface names the entry point and labels metrics.
type Request struct {
	Source   string
	Surface  string
	Table    *table.Table
	Inverted []string
}

// Result is a solved request.
type Result struct {
	DecisionID   uuid.UUID         `json:"decision_id"`
	Source       string            `json:"source"`
	Alternatives int               `json:"alternatives"`
	Criteria     int               `json:"criteria"`
	SolvedAt     time.Time         `json:"solved_at"`
	DurationMs   float64           `json:"duration_ms"`
	Decision     decision.Decision `json:"decision"`
}

type Engine struct {
	hermes  hermes.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an Engine. h may be nil, in which case no events are published.
func New(h hermes.Client, m *metrics.Metrics, logger *slog.Logger) *Engine {
	return &Engine{hermes: h, metrics: m, logger: logger, now: time.Now}
}

// Solve validates and solves req. Validation failures are returned as-is so
// callers can match them with errors.Is.
func (e *Engine) Solve(ctx context.Context, req *Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	source := req.Source
	if source == "" {
		source = defaultSource
	}
	if req.Table == nil {
		return nil, fmt.Errorf("solve %s: nil table", source)
	}

	surface := metrics.SurfaceLabel(req.Surface)

	start := e.now()
	def, err := decision.NewDefinition(req.Table, req.Inverted)
	if err != nil {
		e.reject(source, surface, err)
		return nil, err
	}
	d := def.Solve()
	elapsed := e.now().Sub(start)

	result := &Result{
		DecisionID:   uuid.New(),
		Source:       source,
		Alternatives: def.Problem().Alternatives(),
		Criteria:     def.Problem().Len(),
		SolvedAt:     start.Add(elapsed),
		DurationMs:   float64(elapsed.Microseconds()) / 1000,
		Decision:     d,
	}

	if e.metrics != nil {
		e.metrics.DecisionsTotal.WithLabelValues(surface, metrics.OutcomeSolved).Inc()
		e.metrics.SolveDuration.Observe(elapsed.Seconds())
		e.metrics.Alternatives.Observe(float64(result.Alternatives))
		e.metrics.Criteria.Observe(float64(result.Criteria))
	}

	e.publish(hermes.SubjectDecisionSolved(result.DecisionID.String()), hermes.DecisionSolvedEvent{
		DecisionID:   result.DecisionID.String(),
		Source:       source,
		WinnerIndex:  d.Index,
		WinnerID:     d.ID,
		Distance:     d.Distance,
		Alternatives: result.Alternatives,
		Criteria:     result.Criteria,
		DurationMs:   result.DurationMs,
		Timestamp:    result.SolvedAt,
	})

	e.logger.Info("decision solved",
		"decision_id", result.DecisionID,
		"source", source,
		"surface", surface,
		"winner", d.ID,
		"index", d.Index,
		"distance", d.Distance,
		"alternatives", result.Alternatives,
		"criteria", result.Criteria,
	)
	return result, nil
}

func (e *Engine) reject(source, surface string, err error) {
	if e.metrics != nil {
		e.metrics.DecisionsTotal.WithLabelValues(surface, metrics.OutcomeRejected).Inc()
	}
	e.publish(hermes.SubjectDecisionRejected, hermes.DecisionRejectedEvent{
		Source:    source,
		Error:     err.Error(),
		Timestamp: e.now(),
	})
	e.logger.Warn("problem rejected", "source", source, "surface", surface, "error", err)
}

func (e *Engine) publish(subject string, event any) {
	if e.hermes == nil {
		return
	}
	if err := e.hermes.Publish(subject, event); err != nil {
		if e.metrics != nil {
			e.metrics.EventsFailed.Inc()
		}
		e.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

// SetupSubscriptions solves problems arriving on hermes.SubjectProblemRequest.
func (e *Engine) SetupSubscriptions() error {
	if e.hermes == nil {
		return nil
	}
	return e.hermes.Subscribe(hermes.SubjectProblemRequest, e.HandleProblemRequest)
}

// HandleProblemRequest decodes a hermes.ProblemRequestEvent and solves it.
// The outcome is reported through the usual decision events.
func (e *Engine) HandleProblemRequest(subject string, data []byte) {
	var ev hermes.ProblemRequestEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		e.logger.Warn("invalid problem request", "subject", subject, "error", err)
		return
	}
	if _, err := e.Solve(context.Background(), RequestFromEvent(ev)); err != nil {
		e.logger.Debug("problem request not solved", "subject", subject, "error", err)
	}
}

// RequestFromEvent converts a wire request into a Request.
func RequestFromEvent(ev hermes.ProblemRequestEvent) *Request {
	columns := make([]table.Column, len(ev.Criteria))
	var inverted []string
	for i, c := range ev.Criteria {
		columns[i] = table.Column{Name: c.Name, Values: c.Values}
		if c.Inverted {
			inverted = append(inverted, c.Name)
		}
	}
	source := ev.Source
	if source == "" {
		source = "hermes"
	}
	return &Request{
		Source:   source,
		Surface:  metrics.SurfaceHermes,
		Table:    table.New(ev.Alternatives, columns),
		Inverted: inverted,
	}
}
