package genetic

import (
	"math/rand"
)

// minSelectionWeight keeps zero and negative fitness selectable and the total
// weight positive.
const minSelectionWeight = 0.00001

// SelectionMethod picks one parent from a population.
type SelectionMethod interface {
	Name() string
	Select(rng *rand.Rand, population []Individual) Individual
}

// RouletteWheelSelection picks individuals with probability proportional
// to their fitness.
type RouletteWheelSelection struct{}

func (RouletteWheelSelection) Name() string {
	return "roulette_wheel"
}

// Select panics if the population is empty.
func (RouletteWheelSelection) Select(rng *rand.Rand, population []Individual) Individual {
	if len(population) == 0 {
		panic("genetic: cannot select from an empty population")
	}

	var total float64
	for _, ind := range population {
		total += selectionWeight(ind)
	}

	pick := rng.Float64() * total
	for _, ind := range population {
		pick -= selectionWeight(ind)
		if pick < 0 {
			return ind
		}
	}

	// Rounding can leave a sliver past the last bucket.
	return population[len(population)-1]
}

func selectionWeight(ind Individual) float64 {
	return max(float64(ind.Fitness()), minSelectionWeight)
}
