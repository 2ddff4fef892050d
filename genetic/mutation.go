package genetic

import (
	"fmt"
	"math/rand"
)

// MutationMethod perturbs a chromosome in place.
type MutationMethod interface {
	Name() string
	Mutate(rng *rand.Rand, child *Chromosome)
}

// GaussianMutation nudges each gene with probability Chance by up to
// Coeff in either direction.
type GaussianMutation struct {
	Chance float32 // Per-gene probability in [0, 1]
	Coeff  float32 // Magnitude of the largest perturbation
}

// NewGaussianMutation panics if chance is outside [0, 1].
func NewGaussianMutation(chance, coeff float32) GaussianMutation {
	if chance < 0 || chance > 1 {
		panic(fmt.Sprintf("genetic: mutation chance %v outside [0, 1]", chance))
	}
	return GaussianMutation{Chance: chance, Coeff: coeff}
}

func (GaussianMutation) Name() string {
	return "gaussian"
}

func (m GaussianMutation) Mutate(rng *rand.Rand, child *Chromosome) {
	for i := range child.genes {
		if rng.Float32() >= m.Chance {
			continue
		}
		sign := float32(1)
		if rng.Float64() < 0.5 {
			sign = -1
		}
		child.genes[i] += sign * m.Coeff * rng.Float32()
	}
}
