package genetic

import (
	"math/rand"
)

// GeneticAlgorithm breeds a new population from the current one using a
// fixed set of strategies chosen at construction.
type GeneticAlgorithm struct {
	selection SelectionMethod
	crossover CrossoverMethod
	mutation  MutationMethod
}

// NewGeneticAlgorithm creates an algorithm from its three strategies.
func NewGeneticAlgorithm(selection SelectionMethod, crossover CrossoverMethod, mutation MutationMethod) *GeneticAlgorithm {
	return &GeneticAlgorithm{
		selection: selection,
		crossover: crossover,
		mutation:  mutation,
	}
}

// Evolve returns exactly len(population) offspring along with statistics of
// the population being replaced. Each offspring comes from two parents
// drawn independently, with replacement, from population only.
// Panics if the population is empty.
func (ga *GeneticAlgorithm) Evolve(rng *rand.Rand, population []Individual, newIndividual IndividualFactory) ([]Individual, Statistics) {
	if len(population) == 0 {
		panic("genetic: cannot evolve an empty population")
	}

	offspring := make([]Individual, len(population))
	for i := range offspring {
		parentA := ga.selection.Select(rng, population).Chromosome()
		parentB := ga.selection.Select(rng, population).Chromosome()

		child := ga.crossover.Crossover(rng, parentA, parentB)
		ga.mutation.Mutate(rng, &child)

		offspring[i] = newIndividual(child)
	}

	return offspring, NewStatistics(population)
}

// Strategies returns the names of the configured strategies, in
// selection, crossover, mutation order.
func (ga *GeneticAlgorithm) Strategies() (selection, crossover, mutation string) {
	return ga.selection.Name(), ga.crossover.Name(), ga.mutation.Name()
}
