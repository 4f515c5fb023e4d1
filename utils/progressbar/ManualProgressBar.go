// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ManualProgressBar implement progress bar functionality that must
// be manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be printed.
//
// ManualProgressBar does not use concurrency.
type ManualProgressBar struct {
	out             io.Writer
	width           int
	maxProgress     int
	currentProgress int
	bar             strings.Builder
	startTime       time.Time
}

// NewManualProgressBar returns a new ManualProgressBar of the given
// width which is full after max increments and prints to out
func NewManualProgressBar(out io.Writer, width, max int) *ManualProgressBar {
	if width < 1 || max < 1 {
		panic(fmt.Sprintf("newManualProgressBar: width (%d) and max (%d) "+
			"must be positive", width, max))
	}
	return &ManualProgressBar{
		out:         out,
		width:       width,
		maxProgress: max,
		startTime:   time.Now(),
	}
}

// Increment increments the interal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ManualProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Set sets the progress counter, clipped to [0, max]
func (p *ManualProgressBar) Set(progress int) {
	p.currentProgress = min(max(progress, 0), p.maxProgress)
}

// Fraction returns the fraction of the bar that is full
func (p *ManualProgressBar) Fraction() float64 {
	return float64(p.currentProgress) / float64(p.maxProgress)
}

// String returns the progress bar without any terminal control codes
func (p *ManualProgressBar) String() string {
	p.bar.Reset()
	p.bar.WriteString("|")

	filled := p.currentProgress * p.width / p.maxProgress
	p.bar.WriteString(strings.Repeat("█", filled))
	p.bar.WriteString(strings.Repeat(" ", p.width-filled))

	fmt.Fprintf(&p.bar, "| [%d/%d %.2f%% | elapsed: %v]", p.currentProgress,
		p.maxProgress, p.Fraction()*100,
		time.Since(p.startTime).Truncate(time.Second))
	return p.bar.String()
}

// Display redraws the progress bar in place on the current line
func (p *ManualProgressBar) Display() {
	fmt.Fprintf(p.out, "\r\033[K%v", p.String())
}

// Clear erases the progress bar so that other output can be printed
// on its line
func (p *ManualProgressBar) Clear() {
	fmt.Fprint(p.out, "\r\033[K")
}

// Done displays the progress bar a final time and ends the line
func (p *ManualProgressBar) Done() {
	p.Display()
	fmt.Fprintln(p.out)
}
