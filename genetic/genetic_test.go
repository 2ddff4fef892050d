package genetic

import (
	"math"
	"math/rand"
	"testing"
)

type testIndividual struct {
	fitness    float32
	chromosome Chromosome
}

func (ti *testIndividual) Fitness() float32       { return ti.fitness }
func (ti *testIndividual) Chromosome() Chromosome { return ti.chromosome }

func withFitness(values ...float32) []Individual {
	pop := make([]Individual, len(values))
	for i, f := range values {
		pop[i] = &testIndividual{fitness: f, chromosome: NewChromosome([]float32{f})}
	}
	return pop
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}

func TestChromosome(t *testing.T) {
	genes := []float32{3, 1, 2}
	c := NewChromosome(genes)

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	for i, g := range c.All() {
		if g != genes[i] || c.At(i) != genes[i] {
			t.Errorf("gene %d = %v/%v, want %v", i, g, c.At(i), genes[i])
		}
	}

	// The chromosome owns its genes.
	genes[0] = 99
	if c.At(0) != 3 {
		t.Error("NewChromosome did not copy its input")
	}
	out := c.Genes()
	out[1] = 99
	if c.At(1) != 1 {
		t.Error("Genes() exposed internal storage")
	}
}

func TestUniformCrossoverFairness(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	const genes = 100
	a := make([]float32, genes)
	b := make([]float32, genes)
	for i := range a {
		a[i] = float32(i + 1)
		b[i] = -float32(i + 1)
	}
	parentA, parentB := NewChromosome(a), NewChromosome(b)

	const trials = 1000
	fromA := 0
	for trial := 0; trial < trials; trial++ {
		child := UniformCrossover{}.Crossover(rng, parentA, parentB)
		if child.Len() != genes {
			t.Fatalf("child length = %d, want %d", child.Len(), genes)
		}
		for i, g := range child.All() {
			switch g {
			case a[i]:
				fromA++
			case b[i]:
			default:
				t.Fatalf("gene %d = %v comes from neither parent", i, g)
			}
		}
	}

	share := float64(fromA) / float64(trials*genes)
	if share < 0.45 || share > 0.55 {
		t.Errorf("share of genes from parent A = %.3f, want about 0.5", share)
	}
}

func TestUniformCrossoverLengthMismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := NewChromosome([]float32{1, 2, 3})
	b := NewChromosome([]float32{1, 2})

	assertPanics(t, "Crossover", func() {
		UniformCrossover{}.Crossover(rng, a, b)
	})
}

func TestGaussianMutation(t *testing.T) {
	original := make([]float32, 32)
	for i := range original {
		original[i] = float32(i)
	}

	tests := []struct {
		name        string
		chance      float32
		coeff       float32
		wantChanged func(changed int) bool
	}{
		{"zero chance", 0, 0.5, func(n int) bool { return n == 0 }},
		{"zero coeff", 1, 0, func(n int) bool { return n == 0 }},
		{"full chance", 1, 0.5, func(n int) bool { return n == len(original) }},
		{"half chance", 0.5, 0.5, func(n int) bool { return n > 0 && n < len(original) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			child := NewChromosome(original)
			NewGaussianMutation(tt.chance, tt.coeff).Mutate(rng, &child)

			changed := 0
			for i, g := range child.All() {
				delta := math.Abs(float64(g - original[i]))
				if delta > float64(tt.coeff)+1e-6 {
					t.Errorf("gene %d moved by %v, more than coeff %v", i, delta, tt.coeff)
				}
				if delta > 0 {
					changed++
				}
			}
			if !tt.wantChanged(changed) {
				t.Errorf("%d genes changed", changed)
			}
		})
	}
}

func TestNewGaussianMutationRejectsBadChance(t *testing.T) {
	assertPanics(t, "NewGaussianMutation(1.5)", func() { NewGaussianMutation(1.5, 0.1) })
	assertPanics(t, "NewGaussianMutation(-0.1)", func() { NewGaussianMutation(-0.1, 0.1) })
}

func TestRouletteWheelSelection(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pop := withFitness(2, 1, 4, 3)

	counts := make(map[float32]int)
	for i := 0; i < 1000; i++ {
		counts[RouletteWheelSelection{}.Select(rng, pop).Fitness()]++
	}

	for _, f := range []float32{1, 2, 3, 4} {
		if counts[f] == 0 {
			t.Errorf("individual with fitness %v never selected", f)
		}
	}
	if counts[4] <= counts[1] {
		t.Errorf("fitness 4 picked %d times, fitness 1 picked %d times; want proportional", counts[4], counts[1])
	}
	if counts[3] <= counts[1] {
		t.Errorf("fitness 3 picked %d times, fitness 1 picked %d times; want proportional", counts[3], counts[1])
	}
}

func TestRouletteWheelSelectionZeroFitness(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pop := withFitness(0, 0, -5)

	seen := make(map[Individual]bool)
	for i := 0; i < 1000; i++ {
		seen[RouletteWheelSelection{}.Select(rng, pop)] = true
	}
	if len(seen) != len(pop) {
		t.Errorf("selected %d distinct individuals, want %d", len(seen), len(pop))
	}
}

func TestRouletteWheelSelectionEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	assertPanics(t, "Select", func() {
		RouletteWheelSelection{}.Select(rng, nil)
	})
}

func TestStatistics(t *testing.T) {
	tests := []struct {
		name    string
		fitness []float32
		want    Statistics
	}{
		{"even", []float32{30, 10, 40, 20}, Statistics{MinFitness: 10, MaxFitness: 40, AvgFitness: 25, MedianFitness: 25}},
		{"odd", []float32{40, 20, 30}, Statistics{MinFitness: 20, MaxFitness: 40, AvgFitness: 30, MedianFitness: 30}},
		{"single", []float32{7}, Statistics{MinFitness: 7, MaxFitness: 7, AvgFitness: 7, MedianFitness: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewStatistics(withFitness(tt.fitness...))
			if got != tt.want {
				t.Errorf("NewStatistics(%v) = %+v, want %+v", tt.fitness, got, tt.want)
			}
		})
	}
}

func TestStatisticsEmpty(t *testing.T) {
	assertPanics(t, "NewStatistics", func() { NewStatistics(nil) })
}

func newTestAlgorithm(chance, coeff float32) *GeneticAlgorithm {
	return NewGeneticAlgorithm(
		RouletteWheelSelection{},
		UniformCrossover{},
		NewGaussianMutation(chance, coeff),
	)
}

func freshIndividual(c Chromosome) Individual {
	var sum float32
	for _, g := range c.All() {
		sum += g
	}
	return &testIndividual{fitness: sum, chromosome: c}
}

func TestEvolveConservesPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ga := newTestAlgorithm(0.1, 0.5)

	for n := 1; n <= 16; n++ {
		pop := make([]Individual, n)
		for i := range pop {
			pop[i] = freshIndividual(NewChromosome([]float32{float32(i), 1, 2}))
		}

		offspring, stats := ga.Evolve(rng, pop, func(c Chromosome) Individual {
			return &testIndividual{chromosome: c}
		})

		if len(offspring) != n {
			t.Errorf("Evolve on %d individuals returned %d", n, len(offspring))
		}
		if want := NewStatistics(pop); stats != want {
			t.Errorf("stats = %+v, want stats of the input population %+v", stats, want)
		}
		for _, child := range offspring {
			if child.Fitness() != 0 {
				t.Errorf("offspring fitness = %v, want 0", child.Fitness())
			}
			if child.Chromosome().Len() != 3 {
				t.Errorf("offspring chromosome length = %d, want 3", child.Chromosome().Len())
			}
		}
	}
}

func TestEvolveWithoutMutationOnlyRecombines(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ga := newTestAlgorithm(0, 0)

	pop := []Individual{
		freshIndividual(NewChromosome([]float32{1, 1, 1})),
		freshIndividual(NewChromosome([]float32{2, 2, 2})),
	}

	offspring, _ := ga.Evolve(rng, pop, freshIndividual)
	for _, child := range offspring {
		for i, g := range child.Chromosome().All() {
			if g != 1 && g != 2 {
				t.Errorf("gene %d = %v, not taken from any parent", i, g)
			}
		}
	}
}

func TestEvolveImprovesFitness(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ga := newTestAlgorithm(0.5, 0.5)

	pop := []Individual{
		freshIndividual(NewChromosome([]float32{0, 0, 0})),
		freshIndividual(NewChromosome([]float32{1, 1, 1})),
		freshIndividual(NewChromosome([]float32{1, 2, 1})),
		freshIndividual(NewChromosome([]float32{1, 2, 4})),
	}
	initial := NewStatistics(pop)

	for gen := 0; gen < 20; gen++ {
		pop, _ = ga.Evolve(rng, pop, freshIndividual)
	}

	final := NewStatistics(pop)
	if final.AvgFitness <= initial.AvgFitness {
		t.Errorf("average fitness went from %v to %v, want an increase", initial.AvgFitness, final.AvgFitness)
	}
}

func TestEvolveEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	assertPanics(t, "Evolve", func() {
		newTestAlgorithm(0, 0).Evolve(rng, nil, freshIndividual)
	})
}

func TestStrategies(t *testing.T) {
	sel, cross, mut := newTestAlgorithm(0.1, 0.1).Strategies()
	if sel != "roulette_wheel" || cross != "uniform" || mut != "gaussian" {
		t.Errorf("Strategies() = %s, %s, %s", sel, cross, mut)
	}
}

func BenchmarkEvolve(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	ga := newTestAlgorithm(0.01, 0.3)

	pop := make([]Individual, 40)
	for i := range pop {
		genes := make([]float32, 110)
		for j := range genes {
			genes[j] = rng.Float32()
		}
		pop[i] = freshIndividual(NewChromosome(genes))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ga.Evolve(rng, pop, freshIndividual)
	}
}
