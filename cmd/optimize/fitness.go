package main

import (
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/lark/config"
	"github.com/pthm-cable/lark/game"
)

// Score is the outcome of evaluating one candidate configuration.
type Score struct {
	Fitness  float64 // Lower is better
	LateMean float64 // Mean average fitness over the second half of each run
}

// FitnessEvaluator trains headless simulations on a fixed set of seeds.
// It holds no per-call state, so Evaluate may run concurrently.
type FitnessEvaluator struct {
	generations int
	seeds       []int64
}

// NewFitnessEvaluator creates an evaluator training for the given number of
// generations on each seed.
func NewFitnessEvaluator(generations int, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{generations: generations, seeds: seeds}
}

// Evaluate scores cfg averaged over every seed. Seeds run in parallel, each
// on its own simulation and random source.
func (fe *FitnessEvaluator) Evaluate(cfg *config.Config) Score {
	curves := make([][]float64, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			curves[i] = runSimulation(cfg, seed, fe.generations)
		}()
	}
	wg.Wait()

	fitness := make([]float64, len(curves))
	lateMeans := make([]float64, len(curves))
	for i, curve := range curves {
		fitness[i], lateMeans[i] = computeFitness(curve)
	}
	return Score{Fitness: stat.Mean(fitness, nil), LateMean: stat.Mean(lateMeans, nil)}
}

// runSimulation trains for the given number of generations and returns the
// average fitness of each one.
func runSimulation(cfg *config.Config, seed int64, generations int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	sim := game.RandomSimulation(cfg, rng)

	curve := make([]float64, generations)
	for i := range curve {
		curve[i] = float64(sim.Train(rng).GA.AvgFitness)
	}
	return curve
}

// improvementWeight scales the bonus for a rising fitness curve.
const improvementWeight = 0.2

// computeFitness scores one learning curve (lower = better). The mean over
// the second half of the run dominates; improvement over the first half
// adds up to a 20% bonus.
// Formula: -(lateMean × (1 + 0.2 × improvement))
func computeFitness(curve []float64) (fitness, lateMean float64) {
	if len(curve) == 0 {
		return 0, 0
	}
	half := len(curve) / 2
	late := curve[half:]
	lateMean = stat.Mean(late, nil)

	improvement := 0.0
	if half > 0 && lateMean > 0 {
		earlyMean := stat.Mean(curve[:half], nil)
		improvement = clamp01((lateMean - earlyMean) / lateMean)
	}
	return -(lateMean * (1 + improvementWeight*improvement)), lateMean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
