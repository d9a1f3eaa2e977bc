package backend

import (
	"context"

	"github.com/cvelab/collatzmgr/internal/collatz"
)

// LocalBackend computes sequences in-process
type LocalBackend struct{}

// NewLocalBackend creates a new local backend
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{}
}

// Compute returns the sequence for n computed in-process
func (b *LocalBackend) Compute(_ context.Context, n int) ([]int, error) {
	return collatz.Sequence(n)
}
