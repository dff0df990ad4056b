// Package decision maps tabular alternatives onto a SolvableProblem and
// reads the winning alternative back out of the table.
package decision

import (
	"errors"
	"fmt"

	"github.com/MikeSquared-Agency/Optimizer/internal/solver"
	"github.com/MikeSquared-Agency/Optimizer/internal/table"
	"github.com/MikeSquared-Agency/Optimizer/internal/variables"
)

var (
	ErrUnknownCriterion = errors.New("decision: inverted criterion is not a column")
	ErrIDCountMismatch  = errors.New("decision: number of identifiers does not match number of alternatives")
)

// Decision is the alternative closest to the ideal point.
type Decision struct {
	Index    int                      `json:"index"`
	ID       string                   `json:"id"`
	Distance float64                  `json:"distance"`
	Criteria []solver.CriterionResult `json:"criteria"`
}

// Definition pairs the raw table with the problem built from it.
type Definition struct {
	table   *table.Table
	problem *solver.SolvableProblem
}

// NewDefinition turns every column of t into a variable. Columns named in
// inverted become InvertedAutoscale variables, the rest Autoscale.
func NewDefinition(t *table.Table, inverted []string) (*Definition, error) {
	invert := make(map[string]bool, len(inverted))
	for _, name := range inverted {
		if t.Column(name) == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCriterion, name)
		}
		invert[name] = true
	}

	vars := make([]variables.Variable, 0, len(t.Columns))
	for _, c := range t.Columns {
		v, err := newVariable(c, invert[c.Name])
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}

	p, err := solver.Define(vars)
	if err != nil {
		return nil, err
	}
	if len(t.IDs) != p.Alternatives() {
		return nil, fmt.Errorf("%w: %d identifiers, %d alternatives", ErrIDCountMismatch, len(t.IDs), p.Alternatives())
	}
	return &Definition{table: t, problem: p}, nil
}

func newVariable(c table.Column, inverted bool) (variables.Variable, error) {
	name, err := variables.NewName(c.Name)
	if err != nil {
		return variables.Variable{}, fmt.Errorf("column %q: %w", c.Name, err)
	}
	values, err := variables.NewValues(c.Values)
	if err != nil {
		return variables.Variable{}, fmt.Errorf("column %q: %w", c.Name, err)
	}
	if inverted {
		return variables.NewInvertedAutoscale(name, values), nil
	}
	return variables.NewAutoscale(name, values), nil
}

// Problem exposes the validated problem.
func (d *Definition) Problem() *solver.SolvableProblem {
	return d.problem
}

// Solve returns the winning alternative with its identifier.
func (d *Definition) Solve() Decision {
	e := d.problem.Explain()
	return Decision{
		Index:    e.Index,
		ID:       d.table.IDs[e.Index],
		Distance: e.Distance,
		Criteria: e.Criteria,
	}
}

// IsValidationError reports whether err comes from validating the input
// rather than from I/O.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrUnknownCriterion, ErrIDCountMismatch,
		solver.ErrEmptyProblem, solver.ErrRedefinedVariable, solver.ErrVariableSizeMismatch,
		variables.ErrEmptyName, variables.ErrInvalidCharacters,
		variables.ErrEmptyValues, variables.ErrNonFiniteValues,
		table.ErrNoHeader, table.ErrMissingIDColumn, table.ErrDuplicateColumn,
		table.ErrNoCriteria, table.ErrNoRows, table.ErrInvalidNumber,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
