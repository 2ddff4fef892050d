package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/lark/config"
)

func TestComputeFitness(t *testing.T) {
	tests := []struct {
		name     string
		curve    []float64
		wantFit  float64
		wantMean float64
	}{
		{"empty", nil, 0, 0},
		{"flat", []float64{2, 2, 2, 2}, -2, 2},
		{"improving", []float64{1, 1, 4, 4}, -4 * (1 + 0.2*0.75), 4},
		{"declining", []float64{4, 4, 1, 1}, -1, 1},
		{"single", []float64{3}, -3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit, mean := computeFitness(tt.curve)
			if math.Abs(fit-tt.wantFit) > 1e-9 {
				t.Errorf("fitness = %v, want %v", fit, tt.wantFit)
			}
			if math.Abs(mean-tt.wantMean) > 1e-9 {
				t.Errorf("late mean = %v, want %v", mean, tt.wantMean)
			}
		})
	}
}

// smallConfig keeps evaluations fast enough for unit tests.
func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.WorldAnimals = 6
	cfg.WorldFoods = 10
	cfg.SimGenerationLength = 50
	return cfg
}

func TestEvaluateDeterministic(t *testing.T) {
	base := smallConfig()
	pv := NewParamVector()
	fe := NewFitnessEvaluator(3, []int64{1, 2})

	a := fe.Evaluate(pv.ApplyToConfig(base, pv.DefaultVector()))
	b := fe.Evaluate(pv.ApplyToConfig(base, pv.DefaultVector()))
	if a != b {
		t.Errorf("Evaluate not deterministic: %+v != %+v", a, b)
	}
	if a.Fitness > 0 {
		t.Errorf("fitness %v should be <= 0", a.Fitness)
	}
	if a.LateMean < 0 {
		t.Errorf("late mean %v should be >= 0", a.LateMean)
	}
}

func TestPopulationSize(t *testing.T) {
	if got := populationSize(12, 4); got != 12 {
		t.Errorf("populationSize(12, 4) = %d, want 12", got)
	}
	// 4 + floor(3 ln 4) = 4 + 4
	if got := populationSize(0, 4); got != 8 {
		t.Errorf("populationSize(0, 4) = %d, want 8", got)
	}
}

func TestEvalSeedsDistinct(t *testing.T) {
	seen := make(map[int64]bool)
	for _, s := range evalSeeds(5) {
		if seen[s] {
			t.Fatalf("seed %d repeated", s)
		}
		seen[s] = true
	}
}
