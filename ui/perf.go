package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lark/telemetry"
)

// PerfPanel renders per-phase step timings.
type PerfPanel struct{}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel() *PerfPanel {
	return &PerfPanel{}
}

// Draw renders the performance panel at (x, y).
func (p *PerfPanel) Draw(x, y float32, stats telemetry.PerfStats) {
	px, py := int32(x), int32(y)

	rl.DrawText("Step Performance", px, py, 16, rl.White)
	py += 20

	rl.DrawText(fmt.Sprintf("Avg tick: %s", stats.AvgTickDuration.Round(time.Microsecond)), px, py, 14, rl.Yellow)
	py += 16

	for _, row := range PhaseRows(stats) {
		color := rl.LightGray
		if row.Pct > 50 {
			color = rl.Red
		} else if row.Pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-11s %8s %5.1f%%", row.Phase, row.Avg.Round(time.Microsecond), row.Pct), px, py, 12, color)
		py += 14
	}
}

// PhaseRow is one line of the performance panel.
type PhaseRow struct {
	Phase string
	Avg   time.Duration
	Pct   float64
}

// PhaseRows lists the step phases in execution order.
func PhaseRows(stats telemetry.PerfStats) []PhaseRow {
	phases := telemetry.Phases()
	rows := make([]PhaseRow, 0, len(phases))
	for _, phase := range phases {
		rows = append(rows, PhaseRow{Phase: phase.String(), Avg: stats.PhaseAvg[phase], Pct: stats.PhasePct[phase]})
	}
	return rows
}
