package autograd_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microgpt-ml/microgpt/internal/autograd"
)

func TestOps_ForwardValues(t *testing.T) {
	arena := autograd.NewArena()

	a, err := arena.Constant(6.0)
	require.NoError(t, err)
	b, err := arena.Constant(2.0)
	require.NoError(t, err)

	sum, err := arena.Add(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, sum.Data, 1e-12)

	diff, err := arena.Sub(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, diff.Data, 1e-12)

	prod, err := arena.Mul(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, prod.Data, 1e-12)

	quot, err := arena.Div(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, quot.Data, 1e-12)

	neg, err := arena.Neg(a)
	require.NoError(t, err)
	assert.InDelta(t, -6.0, neg.Data, 1e-12)

	sq, err := arena.Pow(a, 2)
	require.NoError(t, err)
	assert.InDelta(t, 36.0, sq.Data, 1e-12)

	ln, err := arena.Log(a)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(6.0), ln.Data, 1e-12)

	ex, err := arena.Exp(b)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(2.0), ex.Data, 1e-12)

	relu, err := arena.ReLU(neg)
	require.NoError(t, err)
	assert.Zero(t, relu.Data)

	relu2, err := arena.ReLU(a)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, relu2.Data, 1e-12)
}

func TestOps_ScalarVariants(t *testing.T) {
	arena := autograd.NewArena()

	x, err := arena.Constant(5.0)
	require.NoError(t, err)

	sum, err := arena.AddScalar(x, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 6.5, sum.Data, 1e-12)

	diff, err := arena.SubScalar(x, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, diff.Data, 1e-12)

	prod, err := arena.MulScalar(x, -2.0)
	require.NoError(t, err)
	assert.InDelta(t, -10.0, prod.Data, 1e-12)

	quot, err := arena.DivScalar(x, 4.0)
	require.NoError(t, err)
	assert.InDelta(t, 1.25, quot.Data, 1e-12)

	require.NoError(t, quot.Backward())
	assert.InDelta(t, 0.25, x.Grad, 1e-12, "d(x/4)/dx = 1/4")
}

func TestOps_NonFiniteInputsRejected(t *testing.T) {
	arena := autograd.NewArena()

	_, err := arena.Constant(math.NaN())
	assert.ErrorIs(t, err, autograd.ErrNonFinite)

	_, err = arena.Constant(math.Inf(1))
	assert.ErrorIs(t, err, autograd.ErrNonFinite)

	x, err := arena.Constant(1.0)
	require.NoError(t, err)

	_, err = arena.AddScalar(x, math.NaN())
	assert.ErrorIs(t, err, autograd.ErrNonFinite)

	_, err = arena.MulScalar(x, math.Inf(-1))
	assert.ErrorIs(t, err, autograd.ErrNonFinite)

	_, err = arena.Pow(x, math.NaN())
	assert.ErrorIs(t, err, autograd.ErrNonFinite)
}

func TestOps_NilOperandsRejected(t *testing.T) {
	arena := autograd.NewArena()

	x, err := arena.Constant(1.0)
	require.NoError(t, err)

	_, err = arena.Add(nil, x)
	assert.ErrorIs(t, err, autograd.ErrNilOperand)
	_, err = arena.Mul(x, nil)
	assert.ErrorIs(t, err, autograd.ErrNilOperand)
	_, err = arena.Log(nil)
	assert.ErrorIs(t, err, autograd.ErrNilOperand)
}

func TestOps_DivNearZeroDenominator(t *testing.T) {
	arena := autograd.NewArena()

	x, err := arena.Constant(1.0)
	require.NoError(t, err)
	tiny, err := arena.Constant(1e-17)
	require.NoError(t, err)

	_, err = arena.Div(x, tiny)
	assert.ErrorIs(t, err, autograd.ErrDivByZero)

	_, err = arena.DivScalar(x, 0)
	assert.ErrorIs(t, err, autograd.ErrDivByZero)
}

func TestOps_PowIntegerExponentNegativeBase(t *testing.T) {
	arena := autograd.NewArena()

	x, err := arena.Constant(-2.0)
	require.NoError(t, err)

	cube, err := arena.Pow(x, 3)
	require.NoError(t, err)
	assert.InDelta(t, -8.0, cube.Data, 1e-12)

	require.NoError(t, cube.Backward())
	assert.InDelta(t, 12.0, x.Grad, 1e-12, "d(x³)/dx = 3x²")
}

func TestOps_LeafHasNoOperands(t *testing.T) {
	arena := autograd.NewArena()

	leaf, err := arena.Constant(1.0)
	require.NoError(t, err)
	assert.True(t, leaf.IsLeaf())
	assert.Zero(t, leaf.NumOperands())

	derived, err := arena.Mul(leaf, leaf)
	require.NoError(t, err)
	assert.False(t, derived.IsLeaf())
	assert.Equal(t, 2, derived.NumOperands())
}
