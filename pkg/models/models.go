// Package models contains the data types shared between the worker pool,
// the result aggregator and the command-line reporting.
package models

import "time"

// Result is one successful computation. Created by a worker, owned by the
// result collector afterwards.
type Result struct {
	Number   int   `json:"number"`
	Sequence []int `json:"sequence"`
	Length   int   `json:"length"`
	WorkerID int   `json:"worker_id"`
}

// NewResult creates a result for a computed sequence
func NewResult(number int, sequence []int, workerID int) Result {
	return Result{
		Number:   number,
		Sequence: sequence,
		Length:   len(sequence),
		WorkerID: workerID,
	}
}

// WorkerStat is the per-worker statistics record. Each worker owns exactly
// one slot, allocated at pool creation, and mutates it exclusively while
// running; it is read only after the worker has exited.
type WorkerStat struct {
	WorkerID          int           `json:"worker_id"`
	Processed         int           `json:"processed"`
	Failed            int           `json:"failed"`
	TotalLength       int           `json:"total_length"`
	LongestLength     int           `json:"longest_length"`
	NumberWithLongest int           `json:"number_with_longest"`
	ProcessingTime    time.Duration `json:"processing_time"`
}

// AvgLength returns the mean sequence length across processed items
func (s WorkerStat) AvgLength() float64 {
	if s.Processed == 0 {
		return 0
	}
	return float64(s.TotalLength) / float64(s.Processed)
}
