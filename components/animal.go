package components

import (
	"math/rand"
	"slices"

	"github.com/pthm-cable/lark/config"
	"github.com/pthm-cable/lark/genetic"
	"github.com/pthm-cable/lark/neural"
)

// Animal is the sensing and scoring half of an evolving agent: it sees food
// through its eye, steers with its brain and counts how much it has eaten
// this generation. Where it is and where it heads live in Position and Motion.
type Animal struct {
	vision    []float32
	eye       *neural.Eye
	brain     *neural.Brain
	satiation uint32 // Food eaten this generation
}

// NewAnimal wraps brain with a fresh eye and an empty stomach.
func NewAnimal(cfg *config.Config, brain *neural.Brain) Animal {
	return Animal{
		vision: make([]float32, cfg.EyeCells),
		eye:    neural.EyeFromConfig(cfg),
		brain:  brain,
	}
}

// RandomAnimal creates an animal with a random brain.
func RandomAnimal(cfg *config.Config, rng *rand.Rand) Animal {
	return NewAnimal(cfg, neural.RandomBrain(cfg, rng))
}

// AnimalFromChromosome creates a fresh animal whose brain is built from genes.
func AnimalFromChromosome(cfg *config.Config, chromosome genetic.Chromosome) Animal {
	return NewAnimal(cfg, neural.BrainFromChromosome(cfg, chromosome))
}

func (a *Animal) Satiation() uint32    { return a.satiation }
func (a *Animal) Eye() *neural.Eye     { return a.eye }
func (a *Animal) Brain() *neural.Brain { return a.brain }

// Vision returns a copy of the most recent vision vector.
func (a *Animal) Vision() []float32 {
	return slices.Clone(a.vision)
}

// AsChromosome flattens the animal's brain into genes.
func (a *Animal) AsChromosome() genetic.Chromosome {
	return a.brain.AsChromosome()
}

// Feed records one food eaten.
func (a *Animal) Feed() {
	a.satiation++
}

// Look recomputes the vision vector for an animal at pos heading along
// motion and returns the brain's speed and rotation deltas.
func (a *Animal) Look(pos Position, motion Motion, foods []neural.FoodInfo) (speedDelta, rotationDelta float32) {
	a.vision = a.eye.ProcessVision(pos.X, pos.Y, motion.Rotation, foods)
	return a.brain.Propagate(a.vision)
}
