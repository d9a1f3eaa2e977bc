package results

import (
	"sort"

	apperrors "github.com/cvelab/collatzmgr/internal/errors"
	"github.com/cvelab/collatzmgr/pkg/models"
)

// Longest returns the result whose sequence has strictly the greatest length.
// Ties break toward the smaller number: results are enumerated in ascending
// number order before the left-to-right max scan, so the reduction is
// deterministic no matter how appends interleaved across workers.
// It fails with an empty result set error when no successful results exist.
func Longest(results []models.Result) (models.Result, error) {
	if len(results) == 0 {
		return models.Result{}, apperrors.NewEmptyResultSetError()
	}

	ordered := make([]models.Result, len(results))
	copy(ordered, results)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Number < ordered[j].Number
	})

	longest := ordered[0]
	for _, result := range ordered[1:] {
		if result.Length > longest.Length {
			longest = result
		}
	}
	return longest, nil
}

// Longest reduces the collected results to the longest-sequence argmax
func (c *Collector) Longest() (models.Result, error) {
	return Longest(c.Snapshot())
}
