package nn

import (
	"fmt"

	"github.com/microgpt-ml/microgpt/internal/autograd"
)

// Parameter is a named rows×cols matrix of trainable scalar leaves.
//
// All entries are allocated from the model's long-lived parameter arena, so
// their addresses stay valid for the lifetime of the model and can be shared
// with optimizers and per-step computation graphs.
//
// Example:
//
//	w, err := nn.NewParameter(arena, "attn_wq", embd, embd, nn.Normal(src, 0.02))
//	q := w.At(0, 3) // row 0, column 3
type Parameter struct {
	name   string
	rows   int
	cols   int
	values []*autograd.Value // row-major
}

// NewParameter allocates a rows×cols parameter matrix, drawing each entry
// from init.
func NewParameter(arena *autograd.Arena, name string, rows, cols int, init Init) (*Parameter, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: parameter %q has shape %dx%d", ErrInvalidConfig, name, rows, cols)
	}
	values := make([]*autograd.Value, 0, rows*cols)
	for i := 0; i < rows*cols; i++ {
		v, err := arena.Constant(init())
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		values = append(values, v)
	}
	return &Parameter{name: name, rows: rows, cols: cols, values: values}, nil
}

// Name returns the parameter name (e.g. "layer0.attn_wq").
func (p *Parameter) Name() string { return p.name }

// Rows returns the number of output rows.
func (p *Parameter) Rows() int { return p.rows }

// Cols returns the number of input columns.
func (p *Parameter) Cols() int { return p.cols }

// At returns the entry at row i, column j.
func (p *Parameter) At(i, j int) *autograd.Value {
	return p.values[i*p.cols+j]
}

// Row returns row i as a slice of scalar leaves.
//
// The returned slice aliases the parameter storage; callers must not
// rearrange it.
func (p *Parameter) Row(i int) []*autograd.Value {
	return p.values[i*p.cols : (i+1)*p.cols]
}

// Values returns all entries in row-major order.
func (p *Parameter) Values() []*autograd.Value {
	return p.values
}

// ZeroGrad clears the gradient of every entry.
func (p *Parameter) ZeroGrad() {
	for _, v := range p.values {
		v.ZeroGrad()
	}
}
