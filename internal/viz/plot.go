package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/driftsim/internal/drift"
	"github.com/san-kum/driftsim/internal/sim"
)

// PlotActive renders the active particle count over the recorded
// snapshots.
func PlotActive(result *sim.Result) string {
	if len(result.Snapshots) == 0 {
		return "no recorded snapshots"
	}
	series := make([]float64, len(result.Snapshots))
	for i, snap := range result.Snapshots {
		series[i] = float64(snap.NumActive())
	}
	graph := asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption("active particles"))
	return graph
}

// PlotMeanDepth renders the mean active-particle depth over the recorded
// snapshots.
func PlotMeanDepth(result *sim.Result) string {
	if len(result.Snapshots) == 0 {
		return "no recorded snapshots"
	}
	series := make([]float64, len(result.Snapshots))
	for i, snap := range result.Snapshots {
		z, n := 0.0, 0
		for j := range snap.Z {
			if snap.Status[j].Active() {
				z += snap.Z[j]
				n++
			}
		}
		if n > 0 {
			series[i] = z / float64(n)
		}
	}
	graph := asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption("mean depth (m)"))
	return graph
}

// StatusSummary renders the per-status particle counts of the final
// ensemble state.
func StatusSummary(e *drift.Ensemble) string {
	var b strings.Builder
	for _, status := range []drift.Status{drift.StatusActive, drift.StatusStranded, drift.StatusRetired, drift.StatusOutside} {
		if n := e.CountStatus(status); n > 0 {
			fmt.Fprintf(&b, "  %-9s %d\n", status.String(), n)
		}
	}
	return b.String()
}
