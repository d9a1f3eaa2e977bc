// Package collatz implements the Collatz recurrence used as the unit of work
// for the pipeline. The sequence for n starts at n, halves even values,
// maps odd values to 3n+1, and ends at 1 inclusive.
package collatz

import (
	"github.com/cvelab/collatzmgr/internal/errors"
)

// Sequence returns the complete Collatz sequence for n.
// It fails with an invalid input error when n <= 0.
func Sequence(n int) ([]int, error) {
	if n <= 0 {
		return nil, errors.NewInvalidInputError(n)
	}

	sequence := []int{n}
	current := n

	for current != 1 {
		if current%2 == 0 {
			current = current / 2
		} else {
			current = 3*current + 1
		}
		sequence = append(sequence, current)
	}

	return sequence, nil
}
