package nn

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Init produces one freshly drawn initial value per call.
type Init func() float64

// Normal returns an initializer drawing from N(0, stddev²) using src.
//
// Embeddings and input projections use stddev 0.02; see NewGPT.
func Normal(src rand.Source, stddev float64) Init {
	dist := distuv.Normal{Mu: 0, Sigma: stddev, Src: src}
	return dist.Rand
}

// Zeros returns an initializer that always yields 0. Output projections
// (attn_wo, mlp_fc2) start at zero so residual branches are identity at
// initialization.
func Zeros() Init {
	return func() float64 { return 0 }
}
