package solver

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/MikeSquared-Agency/Optimizer/internal/variables"
)

var (
	ErrEmptyProblem         = errors.New("the problem cannot be empty")
	ErrRedefinedVariable    = errors.New("each variable must have a unique name, existing variables cannot be redefined")
	ErrVariableSizeMismatch = errors.New("all variables must have the same number of values")
)

// SolvableProblem is a validated set of variables: at least one, uniquely
// named, all with the same number of alternatives. It is read-only once
// Define returns it.
type SolvableProblem struct {
	variables map[variables.Name]variables.Variable
	names     []variables.Name
}

func newSolvableProblem() *SolvableProblem {
	return &SolvableProblem{variables: make(map[variables.Name]variables.Variable)}
}

// Define validates vars in order and builds a problem from them. The first
// repeated name and the first length differing from vars[0] are reported.
func Define(vars []variables.Variable) (*SolvableProblem, error) {
	if len(vars) == 0 {
		return nil, ErrEmptyProblem
	}

	p := newSolvableProblem()
	size := vars[0].Len()
	for _, v := range vars {
		if _, exists := p.variables[v.Name()]; exists {
			return nil, fmt.Errorf("%w: %s", ErrRedefinedVariable, v.Name())
		}
		if v.Len() != size {
			return nil, fmt.Errorf("%w: %s has %d values, expected %d", ErrVariableSizeMismatch, v.Name(), v.Len(), size)
		}
		p.addVariable(v)
	}
	return p, nil
}

// addVariable inserts v keeping names sorted. It does not validate.
func (p *SolvableProblem) addVariable(v variables.Variable) int {
	if _, exists := p.variables[v.Name()]; !exists {
		i, _ := slices.BinarySearchFunc(p.names, v.Name(), variables.Name.Compare)
		p.names = slices.Insert(p.names, i, v.Name())
	}
	p.variables[v.Name()] = v
	return len(p.variables)
}

// Len returns the number of criteria.
func (p *SolvableProblem) Len() int {
	return len(p.names)
}

// Alternatives returns the number of alternatives shared by every variable.
func (p *SolvableProblem) Alternatives() int {
	if len(p.names) == 0 {
		return 0
	}
	return p.variables[p.names[0]].Len()
}

// Names returns the criterion names in matrix column order.
func (p *SolvableProblem) Names() []variables.Name {
	return slices.Clone(p.names)
}

// Variables returns the variables in matrix column order.
func (p *SolvableProblem) Variables() []variables.Variable {
	out := make([]variables.Variable, len(p.names))
	for i, n := range p.names {
		out[i] = p.variables[n]
	}
	return out
}

// Matrix builds the normalized alternatives x criteria matrix. Column j holds
// the rescaled values of the j-th variable in name order.
func (p *SolvableProblem) Matrix() *mat.Dense {
	m := mat.NewDense(p.Alternatives(), p.Len(), nil)
	for j, n := range p.names {
		m.SetCol(j, p.variables[n].Rescale().Slice())
	}
	return m
}

// Solve returns the 0-based index of the alternative closest to the ideal
// point.
func (p *SolvableProblem) Solve() int {
	return IndexOfBestVector(p.Matrix())
}

// CriterionResult is one criterion's contribution to the winning row.
type CriterionResult struct {
	Name       string         `json:"name"`
	Kind       variables.Kind `json:"kind"`
	Raw        float64        `json:"raw"`
	Normalized float64        `json:"normalized"`
}

// Explanation describes the winning alternative.
type Explanation struct {
	Index    int               `json:"index"`
	Distance float64           `json:"distance"`
	Criteria []CriterionResult `json:"criteria"`
}

// Explain solves the problem and breaks the winning row down per criterion.
func (p *SolvableProblem) Explain() Explanation {
	m := p.Matrix()
	index, distance := bestVector(m)

	criteria := make([]CriterionResult, len(p.names))
	for j, n := range p.names {
		v := p.variables[n]
		criteria[j] = CriterionResult{
			Name:       n.String(),
			Kind:       v.Kind(),
			Raw:        v.RawValues().At(index),
			Normalized: m.At(index, j),
		}
	}
	return Explanation{Index: index, Distance: distance, Criteria: criteria}
}
