package model

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Handle is a lazily loaded, shared network. The artifact is read on
// the first Predict and reused afterwards; a failed load is sticky.
type Handle struct {
	path string

	once sync.Once
	net  *Network
	err  error
}

// NewHandle creates a Handle for the artifact at path.
func NewHandle(path string) *Handle {
	return &Handle{path: path}
}

// NewHandleFromNetwork wraps an already loaded network.
func NewHandleFromNetwork(n *Network) *Handle {
	h := &Handle{net: n}
	h.once.Do(func() {})
	return h
}

// Network returns the loaded network, loading it if needed.
func (h *Handle) Network() (*Network, error) {
	h.once.Do(func() {
		h.net, h.err = LoadNetwork(h.path)
		if h.err == nil {
			slog.Info("model loaded", "path", h.path, "units", h.net.LSTM.Units, "vocab", len(h.net.Embedding))
		}
	})
	return h.net, h.err
}

// Predict returns one score in [0,1] per sequence, in order.
func (h *Handle) Predict(ctx context.Context, seqs [][]int) ([]float64, error) {
	n, err := h.Network()
	if err != nil {
		return nil, err
	}
	scores := make([]float64, len(seqs))
	for i, s := range seqs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		score, err := n.Score(s)
		if err != nil {
			return nil, fmt.Errorf("scoring sequence %d: %w", i, err)
		}
		scores[i] = score
	}
	return scores, nil
}
