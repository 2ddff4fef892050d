// Command optimize searches mutation and steering parameters with CMA-ES,
// scoring each candidate by how quickly headless simulations learn to
// gather food.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/lark/config"
	"github.com/pthm-cable/lark/telemetry"
)

type options struct {
	configPath  string
	generations int
	seeds       int
	maxEvals    int
	population  int
	workers     int
	stepSize    float64
	outputDir   string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Base config YAML or JSON file (empty = use defaults)")
	flag.IntVar(&opts.generations, "generations", 20, "Generations trained per run")
	flag.IntVar(&opts.seeds, "seeds", 3, "Number of seeds per evaluation")
	flag.IntVar(&opts.maxEvals, "max-evals", 200, "Maximum number of evaluations")
	flag.IntVar(&opts.population, "population", 0, "CMA-ES population size (0 = auto)")
	flag.IntVar(&opts.workers, "workers", 1, "Candidates evaluated concurrently")
	flag.Float64Var(&opts.stepSize, "step-size", 0.3, "Initial CMA-ES step size in normalized units")
	flag.StringVar(&opts.outputDir, "output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(opts); err != nil {
		slog.Error("optimize failed", "error", err)
		os.Exit(1)
	}
}

// evalSeeds returns n fixed, well separated seeds.
func evalSeeds(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	return seeds
}

// populationSize returns the CMA-ES default of 4 + floor(3 ln dim) unless
// requested is positive.
func populationSize(requested, dim int) int {
	if requested > 0 {
		return requested
	}
	return 4 + int(3*math.Log(float64(dim)))
}

func run(opts options) error {
	if opts.outputDir == "" {
		return fmt.Errorf("-output is required")
	}
	if opts.seeds < 1 || opts.generations < 1 {
		return fmt.Errorf("-seeds and -generations must be positive")
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	base, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	trials, err := telemetry.CreateCSVLog(filepath.Join(opts.outputDir, "optimize_log.csv"))
	if err != nil {
		return err
	}
	defer trials.Close()

	params := NewParamVector()
	t := newTuner(params, base, NewFitnessEvaluator(opts.generations, evalSeeds(opts.seeds)), trials)

	problem := optimize.Problem{Func: t.objective}
	settings := &optimize.Settings{
		FuncEvaluations: opts.maxEvals,
		Concurrent:      max(opts.workers, 1),
		Recorder:        &progressRecorder{tuner: t, maxEvals: opts.maxEvals},
	}
	method := &optimize.CmaEsChol{
		InitStepSize: opts.stepSize,
		Population:   populationSize(opts.population, params.Dim()),
	}

	slog.Info("starting optimization",
		"params", params.Dim(),
		"population", method.Population,
		"max_evals", opts.maxEvals,
		"seeds", opts.seeds,
		"generations", opts.generations,
	)

	initX := params.Normalize(params.ExtractFromConfig(base))
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		// The best trial so far is still worth keeping.
		slog.Warn("optimization stopped", "error", err)
	} else {
		slog.Info("optimization finished", "status", result.Status.String())
	}

	best, bestCfg := t.Best()
	if bestCfg == nil {
		if result == nil {
			return fmt.Errorf("no evaluation finished")
		}
		bestCfg = params.ApplyToConfig(base, params.Denormalize(result.X))
	}

	bestPath := filepath.Join(opts.outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(bestPath); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}

	slog.Info("optimization complete",
		"evals", t.Evals(),
		"best_fitness", best.Fitness,
		"best_late_mean", best.LateMean,
		"ga_mut_chance", bestCfg.GAMutChance,
		"ga_mut_coeff", bestCfg.GAMutCoeff,
		"sim_speed_accel", bestCfg.SimSpeedAccel,
		"sim_rotation_accel", bestCfg.SimRotationAccel,
		"config", bestPath,
	)
	return nil
}
