package genetic

import (
	"fmt"
	"math/rand"
)

// CrossoverMethod combines two parent chromosomes into a child.
type CrossoverMethod interface {
	Name() string
	Crossover(rng *rand.Rand, parentA, parentB Chromosome) Chromosome
}

// UniformCrossover takes every gene from either parent with equal probability.
type UniformCrossover struct{}

func (UniformCrossover) Name() string {
	return "uniform"
}

// Crossover panics if the parents differ in length.
func (UniformCrossover) Crossover(rng *rand.Rand, parentA, parentB Chromosome) Chromosome {
	if parentA.Len() != parentB.Len() {
		panic(fmt.Sprintf("genetic: crossover of chromosomes with different lengths (%d vs %d)",
			parentA.Len(), parentB.Len()))
	}

	genes := make([]float32, parentA.Len())
	for i := range genes {
		if rng.Float64() < 0.5 {
			genes[i] = parentA.genes[i]
		} else {
			genes[i] = parentB.genes[i]
		}
	}
	return Chromosome{genes: genes}
}
