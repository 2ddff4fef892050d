package game

import (
	"github.com/pthm-cable/lark/components"
	"github.com/pthm-cable/lark/genetic"
)

// AnimalIndividual adapts an animal's brain and score to the genetic package.
type AnimalIndividual struct {
	fitness    float32
	chromosome genetic.Chromosome
}

// individualsFromAnimals scores the population. With reverse set, fitness is
// the population's best satiation minus the animal's own, so the best
// gatherer scores zero.
func individualsFromAnimals(animals []*components.Animal, reverse bool) []genetic.Individual {
	var maxSatiation uint32
	for _, a := range animals {
		maxSatiation = max(maxSatiation, a.Satiation())
	}

	population := make([]genetic.Individual, len(animals))
	for i, a := range animals {
		fitness := float32(a.Satiation())
		if reverse {
			fitness = float32(maxSatiation - a.Satiation())
		}
		population[i] = &AnimalIndividual{fitness: fitness, chromosome: a.AsChromosome()}
	}
	return population
}

// newAnimalIndividual wraps an offspring chromosome. Offspring are never
// scored, so fitness stays zero.
func newAnimalIndividual(chromosome genetic.Chromosome) genetic.Individual {
	return &AnimalIndividual{chromosome: chromosome}
}

func (ind *AnimalIndividual) Fitness() float32 { return ind.fitness }

func (ind *AnimalIndividual) Chromosome() genetic.Chromosome { return ind.chromosome }
