// Package model runs the frozen sentiment network: an embedding layer,
// one LSTM layer and a stack of dense layers ending in a single sigmoid
// unit. Weights come from a JSON artifact and never change after load.
//
// Kernel layouts follow Keras: LSTM kernels are [input][4*units] with
// gates ordered input, forget, cell, output; dense kernels are [in][out].
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/gonum/floats"

	"github.com/CrestNiraj12/tweetsentiment/domain"
)

// Network is a loaded, immutable set of weights. Safe for concurrent use.
type Network struct {
	InputLength int         `json:"input_length"`
	MaskZero    bool        `json:"mask_zero"`
	Embedding   [][]float64 `json:"embedding"`
	LSTM        LSTM        `json:"lstm"`
	Dense       []Dense     `json:"dense"`
}

// LSTM holds the recurrent layer weights.
type LSTM struct {
	Units           int         `json:"units"`
	Kernel          [][]float64 `json:"kernel"`
	RecurrentKernel [][]float64 `json:"recurrent_kernel"`
	Bias            []float64   `json:"bias"`
}

// Dense is a fully connected layer.
type Dense struct {
	Kernel     [][]float64 `json:"kernel"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

// LoadNetwork reads and validates a network artifact.
func LoadNetwork(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading model %s: %v", domain.ErrModelArtifact, path, err)
	}
	var n Network
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("%w: parsing model %s: %v", domain.ErrModelArtifact, path, err)
	}
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return &n, nil
}

// Validate checks that every layer's shape agrees with its neighbours.
func (n *Network) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", domain.ErrModelArtifact, fmt.Sprintf(format, args...))
	}
	if n.InputLength <= 0 {
		return bad("input_length must be positive")
	}
	if len(n.Embedding) == 0 || len(n.Embedding[0]) == 0 {
		return bad("embedding is empty")
	}
	dim := len(n.Embedding[0])
	for i, row := range n.Embedding {
		if len(row) != dim {
			return bad("embedding row %d has %d values, want %d", i, len(row), dim)
		}
	}

	u := n.LSTM.Units
	if u <= 0 {
		return bad("lstm units must be positive")
	}
	if err := checkMatrix(n.LSTM.Kernel, dim, 4*u); err != nil {
		return bad("lstm kernel: %v", err)
	}
	if err := checkMatrix(n.LSTM.RecurrentKernel, u, 4*u); err != nil {
		return bad("lstm recurrent kernel: %v", err)
	}
	if len(n.LSTM.Bias) != 4*u {
		return bad("lstm bias has %d values, want %d", len(n.LSTM.Bias), 4*u)
	}

	if len(n.Dense) == 0 {
		return bad("no dense layers")
	}
	in := u
	for i, d := range n.Dense {
		out := len(d.Bias)
		if err := checkMatrix(d.Kernel, in, out); err != nil {
			return bad("dense %d kernel: %v", i, err)
		}
		if _, ok := activations[d.Activation]; !ok {
			return bad("dense %d: unknown activation %q", i, d.Activation)
		}
		in = out
	}
	if in != 1 {
		return bad("final layer has %d outputs, want 1", in)
	}
	if last := n.Dense[len(n.Dense)-1].Activation; last != "sigmoid" {
		return bad("final layer activation is %q, want sigmoid", last)
	}
	return nil
}

func checkMatrix(m [][]float64, rows, cols int) error {
	if len(m) != rows {
		return fmt.Errorf("%d rows, want %d", len(m), rows)
	}
	for i, r := range m {
		if len(r) != cols {
			return fmt.Errorf("row %d has %d columns, want %d", i, len(r), cols)
		}
	}
	return nil
}

var activations = map[string]func(float64) float64{
	"":        func(x float64) float64 { return x },
	"linear":  func(x float64) float64 { return x },
	"sigmoid": sigmoid,
	"tanh":    math.Tanh,
	"relu":    func(x float64) float64 { return math.Max(0, x) },
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Score runs one sequence through the network.
func (n *Network) Score(seq []int) (float64, error) {
	if len(seq) != n.InputLength {
		return 0, fmt.Errorf("sequence length %d, model expects %d", len(seq), n.InputLength)
	}
	u := n.LSTM.Units
	h := make([]float64, u)
	c := make([]float64, u)
	z := make([]float64, 4*u)
	tmp := make([]float64, u)

	for _, id := range seq {
		if id < 0 || id >= len(n.Embedding) {
			return 0, fmt.Errorf("%w: token id %d outside embedding of %d rows", domain.ErrModelArtifact, id, len(n.Embedding))
		}
		if n.MaskZero && id == 0 {
			continue
		}
		x := n.Embedding[id]

		copy(z, n.LSTM.Bias)
		for d, xv := range x {
			floats.AddScaled(z, xv, n.LSTM.Kernel[d])
		}
		for k, hv := range h {
			floats.AddScaled(z, hv, n.LSTM.RecurrentKernel[k])
		}

		ig, fg, cg, og := z[:u], z[u:2*u], z[2*u:3*u], z[3*u:]
		apply(ig, sigmoid)
		apply(fg, sigmoid)
		apply(cg, math.Tanh)
		apply(og, sigmoid)

		// c = f*c + i*g
		floats.Mul(c, fg)
		copy(tmp, ig)
		floats.Mul(tmp, cg)
		floats.Add(c, tmp)

		// h = o*tanh(c)
		copy(h, c)
		apply(h, math.Tanh)
		floats.Mul(h, og)
	}

	act := h
	for _, d := range n.Dense {
		out := make([]float64, len(d.Bias))
		copy(out, d.Bias)
		for k, v := range act {
			floats.AddScaled(out, v, d.Kernel[k])
		}
		apply(out, activations[d.Activation])
		act = out
	}
	return act[0], nil
}

func apply(s []float64, f func(float64) float64) {
	for i, v := range s {
		s[i] = f(v)
	}
}
