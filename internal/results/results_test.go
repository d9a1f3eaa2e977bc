package results

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cvelab/collatzmgr/internal/errors"
	"github.com/cvelab/collatzmgr/pkg/models"
)

func TestCollector_ConcurrentAppend(t *testing.T) {
	collector := NewCollector()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				collector.Append(models.NewResult(workerID*100+i+1, []int{1}, workerID))
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 800, collector.Len())
}

func TestCollector_CloseRejectsAppends(t *testing.T) {
	collector := NewCollector()

	assert.True(t, collector.Append(models.NewResult(1, []int{1}, 0)))
	collector.Close()
	assert.False(t, collector.Append(models.NewResult(2, []int{2, 1}, 0)))
	assert.Equal(t, 1, collector.Len())
}

func TestLongest_Empty(t *testing.T) {
	_, err := Longest(nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeEmptyResultSet))
}

func TestLongest_Argmax(t *testing.T) {
	results := []models.Result{
		models.NewResult(5, []int{5, 16, 8, 4, 2, 1}, 0),
		models.NewResult(3, []int{3, 10, 5, 16, 8, 4, 2, 1}, 1),
		models.NewResult(1, []int{1}, 0),
	}

	longest, err := Longest(results)
	require.NoError(t, err)
	assert.Equal(t, 3, longest.Number)
	assert.Equal(t, 8, longest.Length)
}

func TestLongest_TieBreaksTowardSmallerNumber(t *testing.T) {
	// Appended out of order on purpose: the reduction must be deterministic
	// regardless of arrival order, so ties go to the smaller number.
	results := []models.Result{
		models.NewResult(10, []int{10, 5, 16, 8, 4, 2, 1}, 0),
		models.NewResult(2, []int{2, 1}, 1),
		models.NewResult(4, []int{4, 2, 1}, 1),
	}
	// 10 and a fabricated equal-length entry for 9.
	results = append(results, models.Result{Number: 9, Sequence: []int{9, 0, 0, 0, 0, 0, 1}, Length: 7, WorkerID: 2})

	longest, err := Longest(results)
	require.NoError(t, err)
	assert.Equal(t, 9, longest.Number)
}

func TestReport_WriteStatsTable(t *testing.T) {
	report := &Report{
		RunID:     "test",
		MaxNumber: 10,
		Workers:   2,
		Longest:   models.NewResult(9, []int{9, 28, 14, 7, 22, 11, 34, 17, 52, 26, 13, 40, 20, 10, 5, 16, 8, 4, 2, 1}, 0),
		Attempted: 10,
		Succeeded: 9,
		Failed:    1,
		Elapsed:   time.Second,
		Stats: []models.WorkerStat{
			{WorkerID: 0, Processed: 5, TotalLength: 40, LongestLength: 20, NumberWithLongest: 9, ProcessingTime: 400 * time.Millisecond},
			{WorkerID: 1, Processed: 4, Failed: 1, TotalLength: 20, LongestLength: 8, NumberWithLongest: 3, ProcessingTime: 300 * time.Millisecond},
		},
	}

	var buf bytes.Buffer
	report.WriteStatsTable(&buf)

	output := buf.String()
	assert.Contains(t, output, "WORKER")
	assert.Contains(t, output, "8.00")
	assert.Contains(t, output, "TOTAL")
	assert.Equal(t, 700*time.Millisecond, report.TotalProcessingTime())
}
