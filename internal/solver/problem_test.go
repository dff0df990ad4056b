package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/MikeSquared-Agency/Optimizer/internal/variables"
)

func autoscale(t *testing.T, name string, data ...float64) variables.Variable {
	t.Helper()
	n, err := variables.NewName(name)
	require.NoError(t, err)
	v, err := variables.NewValues(data)
	require.NoError(t, err)
	return variables.NewAutoscale(n, v)
}

func inverted(t *testing.T, name string, data ...float64) variables.Variable {
	t.Helper()
	n, err := variables.NewName(name)
	require.NoError(t, err)
	v, err := variables.NewValues(data)
	require.NoError(t, err)
	return variables.NewInvertedAutoscale(n, v)
}

func testProblem(t *testing.T) *SolvableProblem {
	t.Helper()
	p, err := Define([]variables.Variable{
		autoscale(t, "x", 1, 2, 3),
		inverted(t, "y", 3, 4, 5),
	})
	require.NoError(t, err)
	return p
}

func TestProblemMatrixIsRescaled(t *testing.T) {
	p := testProblem(t)
	want := mat.NewDense(3, 2, []float64{
		// x  y (rescaled)
		0, 1,
		0.5, 0.5,
		1, 0,
	})
	assert.True(t, mat.Equal(want, p.Matrix()), "got %v", mat.Formatted(p.Matrix()))
}

func TestProblemIsSolved(t *testing.T) {
	assert.Equal(t, 1, testProblem(t).Solve())
}

func TestSolveIsIdempotent(t *testing.T) {
	p := testProblem(t)
	first := p.Solve()
	assert.Equal(t, first, p.Solve())
	assert.True(t, mat.Equal(p.Matrix(), p.Matrix()))
}

func TestSolveSingleValue(t *testing.T) {
	p, err := Define([]variables.Variable{autoscale(t, "x", 1)})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Solve())
}

func TestSolveTwoDirectCriteria(t *testing.T) {
	p, err := Define([]variables.Variable{
		autoscale(t, "x", 2, 1, 3),
		autoscale(t, "y", 5, 4, 6),
	})
	require.NoError(t, err)

	want := mat.NewDense(3, 2, []float64{
		0.5, 0.5,
		0, 0,
		1, 1,
	})
	assert.True(t, mat.Equal(want, p.Matrix()))
	assert.Equal(t, 1, p.Solve())
}

func TestSolveConstantCriterionIsNeutral(t *testing.T) {
	p, err := Define([]variables.Variable{
		autoscale(t, "flat", 7, 7, 7),
		inverted(t, "gain", 1, 9, 4),
	})
	require.NoError(t, err)

	col := mat.Col(nil, 0, p.Matrix())
	assert.Equal(t, []float64{0, 0, 0}, col)
	assert.Equal(t, 1, p.Solve())
}

func TestMatrixColumnsFollowNameOrder(t *testing.T) {
	p, err := Define([]variables.Variable{
		autoscale(t, "zeta", 0, 10),
		autoscale(t, "alpha", 10, 0),
		autoscale(t, "mid", 5, 0),
	})
	require.NoError(t, err)

	names := p.Names()
	require.Len(t, names, 3)
	assert.Equal(t, "alpha", names[0].String())
	assert.Equal(t, "mid", names[1].String())
	assert.Equal(t, "zeta", names[2].String())

	want := mat.NewDense(2, 3, []float64{
		1, 1, 0,
		0, 0, 1,
	})
	assert.True(t, mat.Equal(want, p.Matrix()))
	assert.Equal(t, 1, p.Solve())
}

func TestAddVariable(t *testing.T) {
	p := newSolvableProblem()
	assert.Equal(t, 1, p.addVariable(autoscale(t, "x", 1, 2, 3)))
	assert.Equal(t, 2, p.addVariable(inverted(t, "y", 3, 4, 5)))
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, 3, p.Alternatives())
}

func TestDefineEmptyFailure(t *testing.T) {
	_, err := Define(nil)
	assert.ErrorIs(t, err, ErrEmptyProblem)

	_, err = Define([]variables.Variable{})
	assert.ErrorIs(t, err, ErrEmptyProblem)
}

func TestDefineRedefinedVariableFailure(t *testing.T) {
	_, err := Define([]variables.Variable{
		autoscale(t, "x", 1, 2, 3),
		inverted(t, "x", 3, 4, 5),
	})
	assert.ErrorIs(t, err, ErrRedefinedVariable)
	assert.Contains(t, err.Error(), "x")
}

func TestDefineSizeMismatchFailure(t *testing.T) {
	_, err := Define([]variables.Variable{
		autoscale(t, "x", 1, 2, 3),
		inverted(t, "y", 3, 4),
	})
	assert.ErrorIs(t, err, ErrVariableSizeMismatch)
}

func TestDefineReportsFirstProblem(t *testing.T) {
	// The duplicate comes before the size mismatch in input order.
	_, err := Define([]variables.Variable{
		autoscale(t, "x", 1, 2, 3),
		autoscale(t, "x", 1, 2, 3),
		autoscale(t, "y", 1),
	})
	assert.ErrorIs(t, err, ErrRedefinedVariable)
}

func TestVariablesInNameOrder(t *testing.T) {
	p, err := Define([]variables.Variable{
		inverted(t, "b", 1, 2),
		autoscale(t, "a", 3, 4),
	})
	require.NoError(t, err)

	vars := p.Variables()
	require.Len(t, vars, 2)
	assert.Equal(t, "a", vars[0].Name().String())
	assert.Equal(t, variables.InvertedAutoscale, vars[1].Kind())
}

func TestExplain(t *testing.T) {
	e := testProblem(t).Explain()
	assert.Equal(t, 1, e.Index)
	assert.InDelta(t, 0.7071067811865476, e.Distance, 1e-12)
	require.Len(t, e.Criteria, 2)

	assert.Equal(t, "x", e.Criteria[0].Name)
	assert.Equal(t, variables.Autoscale, e.Criteria[0].Kind)
	assert.Equal(t, 2.0, e.Criteria[0].Raw)
	assert.Equal(t, 0.5, e.Criteria[0].Normalized)

	assert.Equal(t, "y", e.Criteria[1].Name)
	assert.Equal(t, variables.InvertedAutoscale, e.Criteria[1].Kind)
	assert.Equal(t, 4.0, e.Criteria[1].Raw)
	assert.Equal(t, 0.5, e.Criteria[1].Normalized)
}
