package main

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/lark/config"
	"github.com/pthm-cable/lark/telemetry"
)

// trialRecord is one row of optimize_log.csv. Parameter columns hold the
// clamped values the simulation actually ran with.
type trialRecord struct {
	Eval             int     `csv:"eval"`
	Fitness          float64 `csv:"fitness"`
	LateMean         float64 `csv:"late_mean"`
	GAMutChance      float32 `csv:"ga_mut_chance"`
	GAMutCoeff       float32 `csv:"ga_mut_coeff"`
	SimSpeedAccel    float32 `csv:"sim_speed_accel"`
	SimRotationAccel float32 `csv:"sim_rotation_accel"`
	ElapsedMS        int64   `csv:"elapsed_ms"`
}

// tuner owns the objective CMA-ES minimizes and remembers the best
// configuration seen across all evaluations.
type tuner struct {
	params    *ParamVector
	base      *config.Config
	evaluator *FitnessEvaluator
	trials    *telemetry.CSVLog // nil disables the trial log
	start     time.Time

	mu      sync.Mutex
	evals   int
	best    Score
	bestCfg *config.Config
}

func newTuner(params *ParamVector, base *config.Config, evaluator *FitnessEvaluator, trials *telemetry.CSVLog) *tuner {
	return &tuner{
		params:    params,
		base:      base,
		evaluator: evaluator,
		trials:    trials,
		start:     time.Now(),
		best:      Score{Fitness: math.Inf(1)},
	}
}

// objective maps a normalized point to a configuration and scores it.
func (t *tuner) objective(x []float64) float64 {
	cfg := t.params.ApplyToConfig(t.base, t.params.Denormalize(x))
	score := t.evaluator.Evaluate(cfg)
	t.record(cfg, score)
	return score.Fitness
}

func (t *tuner) record(cfg *config.Config, score Score) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.evals++
	if score.Fitness < t.best.Fitness {
		t.best = score
		t.bestCfg = cfg
	}

	if t.trials == nil {
		return
	}
	row := trialRecord{
		Eval:             t.evals,
		Fitness:          score.Fitness,
		LateMean:         score.LateMean,
		GAMutChance:      cfg.GAMutChance,
		GAMutCoeff:       cfg.GAMutCoeff,
		SimSpeedAccel:    cfg.SimSpeedAccel,
		SimRotationAccel: cfg.SimRotationAccel,
		ElapsedMS:        time.Since(t.start).Milliseconds(),
	}
	if err := t.trials.Append([]trialRecord{row}); err != nil {
		slog.Error("failed to write trial", "eval", t.evals, "error", err)
	}
}

// Best returns the best score and its configuration. The configuration is
// nil until the first evaluation finishes.
func (t *tuner) Best() (Score, *config.Config) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.best, t.bestCfg
}

// Evals returns the number of finished evaluations.
func (t *tuner) Evals() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.evals
}

// progressRecorder logs each CMA-ES iteration.
type progressRecorder struct {
	tuner    *tuner
	maxEvals int
}

func (r *progressRecorder) Init() error { return nil }

func (r *progressRecorder) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op != optimize.MajorIteration {
		return nil
	}

	best, _ := r.tuner.Best()
	attrs := []any{
		"iteration", stats.MajorIterations,
		"evals", stats.FuncEvaluations,
		"fitness", loc.F,
		"best_fitness", best.Fitness,
		"best_late_mean", best.LateMean,
		"elapsed", stats.Runtime.Round(time.Second).String(),
	}
	if done := stats.FuncEvaluations; done > 0 && r.maxEvals > done {
		eta := stats.Runtime / time.Duration(done) * time.Duration(r.maxEvals-done)
		attrs = append(attrs, "eta", eta.Round(time.Second).String())
	}
	slog.Info("cma-es iteration", attrs...)
	return nil
}
