// Package progress reports per-item completion events from the worker pool
// to an external sink, by default a terminal progress bar.
package progress

import (
	"github.com/schollz/progressbar/v3"

	"github.com/cvelab/collatzmgr/internal/logger"
)

// Reporter receives completion events from the pool. Implementations must be
// safe for concurrent use by multiple workers.
type Reporter interface {
	// Completed records count successfully processed items
	Completed(count int)
	// Failed records a failed item with its error
	Failed(number int, err error)
	// Finish marks the run as complete
	Finish()
}

// Bar renders a terminal progress bar for a run of a known total size.
// progressbar's Add is internally synchronized, so workers report directly.
type Bar struct {
	bar *progressbar.ProgressBar
	log logger.Logger
}

// NewBar creates a progress bar reporter for total items
func NewBar(total int) *Bar {
	return &Bar{
		bar: progressbar.NewOptions(total,
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetWidth(50),
			progressbar.OptionSetDescription("[cyan]Processing numbers[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		),
		log: logger.New("progress"),
	}
}

// Completed advances the bar
func (b *Bar) Completed(count int) {
	_ = b.bar.Add(count)
}

// Failed logs the failed item without advancing the bar
func (b *Bar) Failed(number int, err error) {
	b.log.WithError(err).Warn("item failed", logger.Int("number", number))
}

// Finish completes and closes the bar
func (b *Bar) Finish() {
	_ = b.bar.Finish()
}

// Nop discards all progress events
type Nop struct{}

// NewNop creates a reporter that discards all events
func NewNop() Nop { return Nop{} }

// Completed implements Reporter
func (Nop) Completed(int) {}

// Failed implements Reporter
func (Nop) Failed(int, error) {}

// Finish implements Reporter
func (Nop) Finish() {}
