package results

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/cvelab/collatzmgr/pkg/models"
)

// Report is the final run report: the argmax reduction, drain accounting
// totals and the per-worker statistics. It is a read-only projection built
// after the pool has drained.
type Report struct {
	RunID     string              `json:"run_id"`
	MaxNumber int                 `json:"max_number"`
	Workers   int                 `json:"workers"`
	Longest   models.Result       `json:"longest"`
	Attempted int                 `json:"attempted"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Elapsed   time.Duration       `json:"elapsed"`
	Stats     []models.WorkerStat `json:"stats"`
}

// TotalProcessingTime returns the cumulative compute time across workers
func (r *Report) TotalProcessingTime() time.Duration {
	var total time.Duration
	for _, stat := range r.Stats {
		total += stat.ProcessingTime
	}
	return total
}

// WriteStatsTable renders the per-worker statistics table with a totals
// rollup, matching the drain accounting: processed plus failed sums to the
// attempted item count.
func (r *Report) WriteStatsTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Worker", "Processed", "Failed", "Avg Length", "Longest", "Number", "Time"})

	for _, stat := range r.Stats {
		table.Append([]string{
			fmt.Sprintf("%d", stat.WorkerID),
			fmt.Sprintf("%d", stat.Processed),
			fmt.Sprintf("%d", stat.Failed),
			fmt.Sprintf("%.2f", stat.AvgLength()),
			fmt.Sprintf("%d", stat.LongestLength),
			fmt.Sprintf("%d", stat.NumberWithLongest),
			stat.ProcessingTime.Round(time.Millisecond).String(),
		})
	}

	table.SetFooter([]string{
		"Total",
		fmt.Sprintf("%d", r.Succeeded),
		fmt.Sprintf("%d", r.Failed),
		"",
		fmt.Sprintf("%d", r.Longest.Length),
		fmt.Sprintf("%d", r.Longest.Number),
		r.TotalProcessingTime().Round(time.Millisecond).String(),
	})
	table.Render()
}
