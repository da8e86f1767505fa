package autograd_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/microgpt-ml/microgpt/internal/autograd"
)

// TestArena_ReferenceStability grows an arena well past several block
// boundaries and confirms pointers handed out early still address the same
// nodes.
func TestArena_ReferenceStability(t *testing.T) {
	arena := autograd.NewArena()

	early := make([]*autograd.Value, 0, 100)
	for i := 0; i < 100; i++ {
		v, err := arena.Constant(float64(i))
		require.NoError(t, err)
		early = append(early, v)
	}

	// Force many block allocations.
	for i := 0; i < 20000; i++ {
		_, err := arena.Constant(float64(i))
		require.NoError(t, err)
	}

	for i, v := range early {
		require.Equal(t, float64(i), v.Data, "early node %d relocated or corrupted", i)
	}
	require.Equal(t, 20100, arena.Len())
}

func TestArena_Reset(t *testing.T) {
	arena := autograd.NewArena()

	for i := 0; i < 5000; i++ {
		_, err := arena.Constant(1.0)
		require.NoError(t, err)
	}
	require.Equal(t, 5000, arena.Len())

	arena.Reset()
	require.Equal(t, 0, arena.Len())

	// The arena is reusable after reset.
	v, err := arena.Constant(7.0)
	require.NoError(t, err)
	require.Equal(t, 7.0, v.Data)
	require.Equal(t, 1, arena.Len())
}

func TestArena_NodeLimit(t *testing.T) {
	arena := autograd.NewArenaWithLimit(3)

	a, err := arena.Constant(1.0)
	require.NoError(t, err)
	b, err := arena.Constant(2.0)
	require.NoError(t, err)
	_, err = arena.Add(a, b)
	require.NoError(t, err)

	_, err = arena.Constant(3.0)
	require.ErrorIs(t, err, autograd.ErrArenaFull)
}

func TestArena_CompositeOpsCountIntermediates(t *testing.T) {
	arena := autograd.NewArena()

	a, err := arena.Constant(6.0)
	require.NoError(t, err)
	b, err := arena.Constant(3.0)
	require.NoError(t, err)

	// Div is mul(a, pow(b, -1)): two constants + reciprocal + product.
	q, err := arena.Div(a, b)
	require.NoError(t, err)
	require.InDelta(t, 2.0, q.Data, 1e-12)
	require.Equal(t, 4, arena.Len(), "the reciprocal intermediate must be arena-owned")
}

func TestArena_DomainErrorsRejectBeforeConstruction(t *testing.T) {
	arena := autograd.NewArena()

	neg, err := arena.Constant(-1.0)
	require.NoError(t, err)
	zero, err := arena.Constant(0.0)
	require.NoError(t, err)
	base, err := arena.Constant(-2.0)
	require.NoError(t, err)
	before := arena.Len()

	_, err = arena.Log(neg)
	require.ErrorIs(t, err, autograd.ErrLogDomain)

	_, err = arena.Div(base, zero)
	require.ErrorIs(t, err, autograd.ErrDivByZero)

	_, err = arena.Pow(base, 0.5)
	require.ErrorIs(t, err, autograd.ErrPowDomain)

	_, err = arena.Pow(zero, -2)
	require.ErrorIs(t, err, autograd.ErrPowDomain)

	big, err := arena.Constant(1e308)
	require.NoError(t, err)
	_, err = arena.Add(big, big)
	require.ErrorIs(t, err, autograd.ErrOverflow)

	_, err = arena.Mul(big, big)
	require.ErrorIs(t, err, autograd.ErrOverflow)

	hot, err := arena.Constant(800.0)
	require.NoError(t, err)
	_, err = arena.Exp(hot)
	require.ErrorIs(t, err, autograd.ErrOverflow)

	require.Equal(t, before+2, arena.Len(),
		"failed factories must not construct nodes (only big and hot were added)")
}
