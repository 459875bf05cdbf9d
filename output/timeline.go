package output

import (
	"fmt"

	"github.com/blitz-io/blitz-go/sprint"
	"github.com/guptarohit/asciigraph"
)

// printTimeline plots the duration of every step. Single-step sprints
// have nothing to compare and print nothing.
func (p *ResultPrinter) printTimeline(result *sprint.Result) {
	if len(result.Steps) < 2 {
		return
	}

	durations := make([]float64, 0, len(result.Steps))
	for _, step := range result.Steps {
		durations = append(durations, float64(sprint.Milliseconds(step.Duration)))
	}

	graph := asciigraph.Plot(durations,
		asciigraph.Height(8),
		asciigraph.Caption("step duration (ms)"))
	fmt.Fprintln(p.writer, graph)
	fmt.Fprintln(p.writer)
}
