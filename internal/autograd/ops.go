package autograd

import (
	"fmt"
	"math"
)

// maxExpInput is the largest input Exp accepts; exp(709.8) is just past the
// largest finite float64, and values this large are already degenerate.
const maxExpInput = 700.0

// denomEpsilon is the smallest denominator magnitude Div accepts.
const denomEpsilon = 2.220446049250313e-16 // 2^-52, machine epsilon for float64

// Constant creates a leaf node with no operands.
//
// Leaves accumulate gradient during backward but propagate nothing further.
// Fails if x is NaN or infinite.
func (a *Arena) Constant(x float64) (*Value, error) {
	if !isFinite(x) {
		return nil, fmt.Errorf("%w: constant(%v)", ErrNonFinite, x)
	}
	return a.alloc(x, nil, nil)
}

// Add computes x + y.
//
// Local gradients: d/dx = 1, d/dy = 1.
func (a *Arena) Add(x, y *Value) (*Value, error) {
	if x == nil || y == nil {
		return nil, fmt.Errorf("%w: add", ErrNilOperand)
	}
	result := x.Data + y.Data
	if math.IsInf(result, 0) {
		return nil, fmt.Errorf("%w: %v + %v", ErrOverflow, x.Data, y.Data)
	}
	return a.alloc(result, []*Value{x, y}, []float64{1, 1})
}

// AddScalar computes x + c for a plain (non-differentiated) scalar c.
//
// Local gradient: d/dx = 1.
func (a *Arena) AddScalar(x *Value, c float64) (*Value, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: add", ErrNilOperand)
	}
	if !isFinite(c) {
		return nil, fmt.Errorf("%w: add scalar %v", ErrNonFinite, c)
	}
	result := x.Data + c
	if math.IsInf(result, 0) {
		return nil, fmt.Errorf("%w: %v + %v", ErrOverflow, x.Data, c)
	}
	return a.alloc(result, []*Value{x}, []float64{1})
}

// Mul computes x * y.
//
// Local gradients: d/dx = y, d/dy = x.
func (a *Arena) Mul(x, y *Value) (*Value, error) {
	if x == nil || y == nil {
		return nil, fmt.Errorf("%w: mul", ErrNilOperand)
	}
	result := x.Data * y.Data
	if math.IsInf(result, 0) {
		return nil, fmt.Errorf("%w: %v * %v", ErrOverflow, x.Data, y.Data)
	}
	return a.alloc(result, []*Value{x, y}, []float64{y.Data, x.Data})
}

// MulScalar computes x * c for a plain scalar c.
//
// Local gradient: d/dx = c.
func (a *Arena) MulScalar(x *Value, c float64) (*Value, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: mul", ErrNilOperand)
	}
	if !isFinite(c) {
		return nil, fmt.Errorf("%w: mul scalar %v", ErrNonFinite, c)
	}
	result := x.Data * c
	if math.IsInf(result, 0) {
		return nil, fmt.Errorf("%w: %v * %v", ErrOverflow, x.Data, c)
	}
	return a.alloc(result, []*Value{x}, []float64{c})
}

// Neg computes -x, expressed as x * -1 so the node carries a single
// multiplicative edge.
func (a *Arena) Neg(x *Value) (*Value, error) {
	return a.MulScalar(x, -1)
}

// Sub computes x - y as x + (-y). The negation is an arena-owned intermediate
// node, so its lifetime is guaranteed through any backward pass.
func (a *Arena) Sub(x, y *Value) (*Value, error) {
	negY, err := a.Neg(y)
	if err != nil {
		return nil, err
	}
	return a.Add(x, negY)
}

// SubScalar computes x - c for a plain scalar c.
func (a *Arena) SubScalar(x *Value, c float64) (*Value, error) {
	return a.AddScalar(x, -c)
}

// Pow computes x^k for a plain scalar exponent k.
//
// Local gradient: d/dx = k * x^(k-1).
//
// The exponent is deliberately not a graph node: differentiating through it
// would require an extra x^k * ln(x) gradient term this engine does not
// carry. Fails on a negative base with a non-integer exponent and on a zero
// base with a negative exponent.
func (a *Arena) Pow(x *Value, k float64) (*Value, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: pow", ErrNilOperand)
	}
	if !isFinite(k) {
		return nil, fmt.Errorf("%w: pow exponent %v", ErrNonFinite, k)
	}
	if x.Data < 0 && math.Floor(k) != k {
		return nil, fmt.Errorf("%w: negative base %v with non-integer exponent %v", ErrPowDomain, x.Data, k)
	}
	if x.Data == 0 && k < 0 {
		return nil, fmt.Errorf("%w: zero base with negative exponent %v", ErrPowDomain, k)
	}

	result := math.Pow(x.Data, k)
	if !isFinite(result) {
		return nil, fmt.Errorf("%w: %v^%v", ErrOverflow, x.Data, k)
	}

	var localGrad float64
	if k != 0 {
		localGrad = k * math.Pow(x.Data, k-1)
		if !isFinite(localGrad) {
			return nil, fmt.Errorf("%w: gradient of %v^%v", ErrOverflow, x.Data, k)
		}
	}

	return a.alloc(result, []*Value{x}, []float64{localGrad})
}

// Div computes x / y as x * y^-1. Both the reciprocal and the product are
// arena-owned nodes; the gradients compose to d/dx = 1/y and d/dy = -x/y².
//
// Fails when |y| is below machine epsilon.
func (a *Arena) Div(x, y *Value) (*Value, error) {
	if x == nil || y == nil {
		return nil, fmt.Errorf("%w: div", ErrNilOperand)
	}
	if math.Abs(y.Data) < denomEpsilon {
		return nil, fmt.Errorf("%w: denominator %v", ErrDivByZero, y.Data)
	}
	inv, err := a.Pow(y, -1)
	if err != nil {
		return nil, err
	}
	return a.Mul(x, inv)
}

// DivScalar computes x / c for a plain scalar c.
func (a *Arena) DivScalar(x *Value, c float64) (*Value, error) {
	if math.Abs(c) < denomEpsilon {
		return nil, fmt.Errorf("%w: denominator %v", ErrDivByZero, c)
	}
	if !isFinite(c) {
		return nil, fmt.Errorf("%w: div scalar %v", ErrNonFinite, c)
	}
	return a.MulScalar(x, 1/c)
}

// Log computes the natural logarithm ln(x).
//
// Local gradient: d/dx = 1/x. Fails on non-positive input.
func (a *Arena) Log(x *Value) (*Value, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: log", ErrNilOperand)
	}
	if x.Data <= 0 {
		return nil, fmt.Errorf("%w: log(%v)", ErrLogDomain, x.Data)
	}
	return a.alloc(math.Log(x.Data), []*Value{x}, []float64{1 / x.Data})
}

// Exp computes e^x.
//
// Local gradient: d/dx = e^x (the forward result itself). Fails when the
// input is large enough that the result would overflow.
func (a *Arena) Exp(x *Value) (*Value, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: exp", ErrNilOperand)
	}
	if x.Data > maxExpInput {
		return nil, fmt.Errorf("%w: exp(%v)", ErrOverflow, x.Data)
	}
	result := math.Exp(x.Data)
	return a.alloc(result, []*Value{x}, []float64{result})
}

// ReLU computes max(0, x).
//
// Local gradient: 1 for x > 0, else 0.
func (a *Arena) ReLU(x *Value) (*Value, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: relu", ErrNilOperand)
	}
	result := 0.0
	localGrad := 0.0
	if x.Data > 0 {
		result = x.Data
		localGrad = 1
	}
	return a.alloc(result, []*Value{x}, []float64{localGrad})
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
