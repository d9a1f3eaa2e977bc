// Package backend abstracts the per-item computation behind a single
// contract so the worker pool does not care whether sequences are computed
// in-process or by the compute service over HTTP. Both variants produce
// identical sequences for the same input.
package backend

import "context"

// Backend maps a work item to its Collatz sequence
type Backend interface {
	// Compute returns the sequence for n, or an error classified by the
	// internal errors package (invalid input, remote, decode)
	Compute(ctx context.Context, n int) ([]int, error)
}
