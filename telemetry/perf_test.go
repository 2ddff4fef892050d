package telemetry

import (
	"math"
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	return newPerfCollector(window, clock.now), clock
}

func TestPerfCollectorPhaseShares(t *testing.T) {
	pc, clock := newTestCollector(10)

	for i := 0; i < 4; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseCollisions)
		clock.advance(1 * time.Millisecond)
		pc.StartPhase(PhaseBrains)
		clock.advance(6 * time.Millisecond)
		pc.StartPhase(PhaseMovement)
		clock.advance(3 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration != 10*time.Millisecond {
		t.Errorf("AvgTickDuration = %v, want 10ms", stats.AvgTickDuration)
	}
	if stats.TicksPerSecond != 100 {
		t.Errorf("TicksPerSecond = %v, want 100", stats.TicksPerSecond)
	}

	tests := []struct {
		phase Phase
		avg   time.Duration
		pct   float64
		ticks int
	}{
		{PhaseCollisions, time.Millisecond, 10, 4},
		{PhaseBrains, 6 * time.Millisecond, 60, 4},
		{PhaseMovement, 3 * time.Millisecond, 30, 4},
		{PhaseEvolve, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			if got := stats.PhaseAvg[tt.phase]; got != tt.avg {
				t.Errorf("avg = %v, want %v", got, tt.avg)
			}
			if got := stats.PhasePct[tt.phase]; math.Abs(got-tt.pct) > 1e-9 {
				t.Errorf("pct = %v, want %v", got, tt.pct)
			}
			if got := stats.PhaseTicks[tt.phase]; got != tt.ticks {
				t.Errorf("ticks = %d, want %d", got, tt.ticks)
			}
		})
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc, clock := newTestCollector(3)

	// Ticks of 1..5 ms; only the last three stay in the window.
	for i := 1; i <= 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseBrains)
		clock.advance(time.Duration(i) * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.MinTickDuration != 3*time.Millisecond {
		t.Errorf("MinTickDuration = %v, want 3ms", stats.MinTickDuration)
	}
	if stats.MaxTickDuration != 5*time.Millisecond {
		t.Errorf("MaxTickDuration = %v, want 5ms", stats.MaxTickDuration)
	}
	if stats.AvgTickDuration != 4*time.Millisecond {
		t.Errorf("AvgTickDuration = %v, want 4ms", stats.AvgTickDuration)
	}
}

func TestPerfCollectorOccasionalPhase(t *testing.T) {
	pc, clock := newTestCollector(10)

	// Evolve runs on one tick in four.
	for i := 0; i < 4; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseMovement)
		clock.advance(time.Millisecond)
		if i == 3 {
			pc.StartPhase(PhaseEvolve)
			clock.advance(4 * time.Millisecond)
		}
		pc.EndTick()
	}

	stats := pc.Stats()
	if got := stats.PhaseTicks[PhaseEvolve]; got != 1 {
		t.Errorf("evolve ticks = %d, want 1", got)
	}
	if got := stats.PhaseAvg[PhaseEvolve]; got != time.Millisecond {
		t.Errorf("evolve avg = %v, want 1ms per tick", got)
	}
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	pc, _ := newTestCollector(10)

	stats := pc.Stats()
	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("empty collector stats = %+v", stats)
	}
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc, clock := newTestCollector(10)

	pc.RecordFrame()
	clock.advance(20 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration != 20*time.Millisecond {
		t.Errorf("FrameDuration = %v, want 20ms", stats.FrameDuration)
	}
	if stats.FPS != 50 {
		t.Errorf("FPS = %v, want 50", stats.FPS)
	}
}

func TestPerfCollectorNil(t *testing.T) {
	var pc *PerfCollector

	pc.StartTick()
	pc.StartPhase(PhaseEvolve)
	pc.EndTick()
	pc.RecordFrame()

	if stats := pc.Stats(); stats != (PerfStats{}) {
		t.Errorf("nil collector stats = %+v", stats)
	}
}

func TestPhaseString(t *testing.T) {
	want := []string{"collisions", "brains", "movement", "evolve"}
	for i, phase := range Phases() {
		if phase.String() != want[i] {
			t.Errorf("Phases()[%d] = %q, want %q", i, phase, want[i])
		}
	}
	if got := Phase(99).String(); got != "unknown" {
		t.Errorf("Phase(99) = %q, want unknown", got)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		MinTickDuration: time.Millisecond,
		MaxTickDuration: 2 * time.Millisecond,
		TicksPerSecond:  666,
	}
	stats.PhasePct[PhaseCollisions] = 10
	stats.PhasePct[PhaseBrains] = 60
	stats.PhasePct[PhaseMovement] = 25
	stats.PhasePct[PhaseEvolve] = 5

	row := stats.ToCSV(7)
	want := PerfStatsCSV{
		Generation:    7,
		AvgTickUS:     1500,
		MinTickUS:     1000,
		MaxTickUS:     2000,
		TicksPerSec:   666,
		CollisionsPct: 10,
		BrainsPct:     60,
		MovementPct:   25,
		EvolvePct:     5,
	}
	if row != want {
		t.Errorf("ToCSV = %+v, want %+v", row, want)
	}
}
