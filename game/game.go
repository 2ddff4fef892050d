package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/lark/camera"
	"github.com/pthm-cable/lark/config"
	"github.com/pthm-cable/lark/telemetry"
	"github.com/pthm-cable/lark/ui"
)

// Screen dimensions
const (
	ScreenWidth  = 1280
	ScreenHeight = 800
)

// maxStepsPerUpdate caps the speed control.
const maxStepsPerUpdate = 100

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	PerfWindow     int
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game drives a Simulation from a host loop, headless or inside a raylib
// window, and reports every finished generation.
type Game struct {
	sim *Simulation
	rng *rand.Rand

	perf     *telemetry.PerfCollector
	output   *telemetry.OutputManager
	logStats bool

	// State
	paused          bool
	trainRequested  bool
	stepsPerUpdate  int
	generationStart time.Time
	lastStats       Statistics
	hasStats        bool
	showEye         bool
	selected        int

	// Rendering (graphical mode only)
	camera    *camera.Camera
	hud       *ui.HUD
	controls  *ui.ControlPanel
	perfPanel *ui.PerfPanel

	width, height float32
}

// NewGameWithOptions builds a game around a fresh random simulation.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		sim:             RandomSimulation(cfg, rng),
		rng:             rng,
		output:          output,
		logStats:        opts.LogStats,
		stepsPerUpdate:  max(opts.StepsPerUpdate, 1),
		generationStart: time.Now(),
		width:           float32(ScreenWidth),
		height:          float32(ScreenHeight),
	}

	if opts.LogStats || output != nil {
		g.perf = telemetry.NewPerfCollector(opts.PerfWindow)
		g.sim.SetPerf(g.perf)
	}

	if !opts.Headless {
		g.camera = camera.New(g.width, g.height)
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlPanel()
		g.perfPanel = ui.NewPerfPanel()
	}

	return g, nil
}

// Simulation exposes the underlying simulation.
func (g *Game) Simulation() *Simulation { return g.sim }

// Generation returns the index of the running generation.
func (g *Game) Generation() int { return g.sim.Generation() }

// UpdateHeadless runs StepsPerUpdate ticks without touching raylib.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// Update handles input and advances the simulation for one frame.
func (g *Game) Update() {
	g.perf.RecordFrame()
	g.handleInput()

	if g.trainRequested {
		g.trainRequested = false
		g.recordGeneration(g.sim.Train(g.rng))
		return
	}

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

func (g *Game) step() {
	if stats, ok := g.sim.Step(g.rng); ok {
		g.recordGeneration(stats)
	}
}

// recordGeneration logs and persists a finished generation. Output errors
// are logged and do not stop the simulation.
func (g *Game) recordGeneration(stats Statistics) {
	now := time.Now()
	record := telemetry.NewGenerationRecord(stats.Generation, stats.GA, now.Sub(g.generationStart))
	g.generationStart = now
	g.lastStats = stats
	g.hasStats = true

	if g.logStats {
		slog.Info("generation", "stats", record)
		g.perf.Stats().LogStats()
	}

	if err := g.output.WriteGeneration(record); err != nil {
		slog.Error("failed to write generation", "error", err)
	}
	if err := g.output.WritePerf(g.perf.Stats(), stats.Generation); err != nil {
		slog.Error("failed to write perf stats", "error", err)
	}
}

// Unload flushes and closes experiment output.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
