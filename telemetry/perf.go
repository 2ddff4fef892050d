package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one stage of a simulation step.
type Phase int

// Step phases in execution order. Evolve only runs on the last tick of a
// generation.
const (
	PhaseCollisions Phase = iota
	PhaseBrains
	PhaseMovement
	PhaseEvolve
	numPhases
)

var phaseNames = [numPhases]string{"collisions", "brains", "movement", "evolve"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases lists every phase in execution order.
func Phases() []Phase {
	return []Phase{PhaseCollisions, PhaseBrains, PhaseMovement, PhaseEvolve}
}

// PhaseTimes holds one duration per phase.
type PhaseTimes [numPhases]time.Duration

type tickSample struct {
	total  time.Duration
	phases PhaseTimes
	seen   [numPhases]bool
}

// PerfCollector times simulation ticks and their phases over a rolling
// window. A nil collector ignores every call, so callers need not check for
// one.
type PerfCollector struct {
	now func() time.Time

	ring   []tickSample
	next   int
	filled int

	current    tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	// Frame timing (graphics mode)
	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over the last window ticks.
// A non-positive window falls back to 60.
func NewPerfCollector(window int) *PerfCollector {
	return newPerfCollector(window, time.Now)
}

func newPerfCollector(window int, now func() time.Time) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{now: now, ring: make([]tickSample, window)}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	if p == nil {
		return
	}
	p.tickStart = p.now()
	p.current = tickSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	if p == nil {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if !p.inPhase {
		return
	}
	p.current.phases[p.phase] += now.Sub(p.phaseStart)
	p.current.seen[p.phase] = true
}

// EndTick closes the running phase and stores the tick in the window.
func (p *PerfCollector) EndTick() {
	if p == nil {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.inPhase = false
	p.current.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	p.filled = min(p.filled+1, len(p.ring))
}

// RecordFrame marks the start of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the ticks in the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64

	// PhaseAvg is each phase's average time per tick, PhasePct its share of
	// the average tick and PhaseTicks the number of ticks that ran it.
	PhaseAvg   PhaseTimes
	PhasePct   [numPhases]float64
	PhaseTicks [numPhases]int

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p == nil {
		return s
	}

	s.FrameDuration = p.frame
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phaseTotal PhaseTimes
	for i, sample := range p.ring[:p.filled] {
		total += sample.total
		if i == 0 || sample.total < s.MinTickDuration {
			s.MinTickDuration = sample.total
		}
		s.MaxTickDuration = max(s.MaxTickDuration, sample.total)

		for phase, d := range sample.phases {
			phaseTotal[phase] += d
			if sample.seen[phase] {
				s.PhaseTicks[phase]++
			}
		}
	}

	n := time.Duration(p.filled)
	s.AvgTickDuration = total / n
	for phase, d := range phaseTotal {
		s.PhaseAvg[phase] = d / n
		if s.AvgTickDuration > 0 {
			s.PhasePct[phase] = float64(s.PhaseAvg[phase]) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs the summary at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging. Phases that
// never ran in the window are left out.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases() {
		if s.PhaseTicks[phase] > 0 {
			attrs = append(attrs, slog.Float64(phase.String()+"_pct", s.PhasePct[phase]))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	Generation    int     `csv:"generation"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	CollisionsPct float64 `csv:"collisions_pct"`
	BrainsPct     float64 `csv:"brains_pct"`
	MovementPct   float64 `csv:"movement_pct"`
	EvolvePct     float64 `csv:"evolve_pct"`
}

// ToCSV flattens the summary into a perf.csv row for generation.
func (s PerfStats) ToCSV(generation int) PerfStatsCSV {
	return PerfStatsCSV{
		Generation:    generation,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		CollisionsPct: s.PhasePct[PhaseCollisions],
		BrainsPct:     s.PhasePct[PhaseBrains],
		MovementPct:   s.PhasePct[PhaseMovement],
		EvolvePct:     s.PhasePct[PhaseEvolve],
	}
}
