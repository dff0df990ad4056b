package hermes

import "time"

// CriterionPayload carries one criterion column over the wire.
type CriterionPayload struct {
	Name     string    `json:"name"`
	Values   []float64 `json:"values"`
	Inverted bool      `json:"inverted,omitempty"`
}

type ProblemRequestEvent struct {
	Source       string             `json:"source,omitempty"`
	Alternatives []string           `json:"alternatives,omitempty"`
	Criteria     []CriterionPayload `json:"criteria"`
}

type DecisionSolvedEvent struct {
	DecisionID   string    `json:"decision_id"`
	Source       string    `json:"source,omitempty"`
	WinnerIndex  int       `json:"winner_index"`
	WinnerID     string    `json:"winner_id"`
	Distance     float64   `json:"distance"`
	Alternatives int       `json:"alternatives"`
	Criteria     int       `json:"criteria"`
	DurationMs   float64   `json:"duration_ms"`
	Timestamp    time.Time `json:"timestamp"`
}

type DecisionRejectedEvent struct {
	Source    string    `json:"source,omitempty"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}
