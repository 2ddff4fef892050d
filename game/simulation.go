package game

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/lark/components"
	"github.com/pthm-cable/lark/config"
	"github.com/pthm-cable/lark/genetic"
	"github.com/pthm-cable/lark/systems"
	"github.com/pthm-cable/lark/telemetry"
)

// Statistics describes one completed generation.
type Statistics struct {
	Generation int
	GA         genetic.Statistics
}

// LogValue implements slog.LogValuer for structured logging.
func (s Statistics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Any("ga", s.GA),
	)
}

// Simulation owns a World and advances it one tick at a time, evolving the
// animals whenever a generation ends. It is not safe for concurrent use;
// readers must inspect the World between calls to Step.
type Simulation struct {
	cfg        *config.Config
	world      *World
	ga         *genetic.GeneticAlgorithm
	age        int
	generation int

	feeding  *systems.FeedingSystem
	brains   *systems.BrainSystem
	movement *systems.MovementSystem
	perf     *telemetry.PerfCollector
}

// RandomSimulation builds a simulation with a fully random initial
// population. cfg must already be validated.
func RandomSimulation(cfg *config.Config, rng *rand.Rand) *Simulation {
	ga := genetic.NewGeneticAlgorithm(
		genetic.RouletteWheelSelection{},
		genetic.UniformCrossover{},
		genetic.NewGaussianMutation(cfg.GAMutChance, cfg.GAMutCoeff),
	)
	world := RandomWorld(cfg, rng)

	feeding := systems.NewFeedingSystem(world.ECS(), cfg.FoodSize)
	feeding.SetFoodGrid(systems.NewFoodGrid(cfg.FoodSize))

	return &Simulation{
		cfg:      cfg,
		world:    world,
		ga:       ga,
		feeding:  feeding,
		brains:   systems.NewBrainSystem(world.ECS(), cfg),
		movement: systems.NewMovementSystem(world.ECS()),
	}
}

// SetPerf attaches a collector that times each phase of Step.
func (s *Simulation) SetPerf(perf *telemetry.PerfCollector) {
	s.perf = perf
}

func (s *Simulation) Config() *config.Config { return s.cfg }
func (s *Simulation) World() *World          { return s.world }

// Age is the number of ticks run in the current generation.
func (s *Simulation) Age() int { return s.age }

// Generation is the index of the generation currently running.
func (s *Simulation) Generation() int { return s.generation }

// Step advances the world by one tick. The second result reports whether
// the tick ended a generation, in which case the statistics describe it.
func (s *Simulation) Step(rng *rand.Rand) (Statistics, bool) {
	s.perf.StartTick()
	defer s.perf.EndTick()

	w := s.world.ECS()

	s.perf.StartPhase(telemetry.PhaseCollisions)
	s.feeding.Update(w, rng)

	s.perf.StartPhase(telemetry.PhaseBrains)
	s.brains.Update(w)

	s.perf.StartPhase(telemetry.PhaseMovement)
	s.movement.Update(w)

	s.age++
	if s.age < s.cfg.SimGenerationLength {
		return Statistics{}, false
	}

	s.perf.StartPhase(telemetry.PhaseEvolve)
	s.age = 0
	return s.evolve(rng), true
}

// Train steps until a generation ends and returns its statistics.
func (s *Simulation) Train(rng *rand.Rand) Statistics {
	for {
		if stats, ok := s.Step(rng); ok {
			return stats
		}
	}
}

func (s *Simulation) evolve(rng *rand.Rand) Statistics {
	animals := make([]*components.Animal, 0, s.world.NumAnimals())
	s.world.EachAnimal(func(_ int, _ *components.Position, _ *components.Motion, a *components.Animal) {
		animals = append(animals, a)
	})

	population := individualsFromAnimals(animals, s.cfg.GAReverse)
	offspring, gaStats := s.ga.Evolve(rng, population, newAnimalIndividual)

	next := make([]components.Animal, len(offspring))
	for i, ind := range offspring {
		next[i] = components.AnimalFromChromosome(s.cfg, ind.Chromosome())
	}
	s.world.ReplaceAnimals(rng, next)
	s.world.RelocateFoods(rng)

	stats := Statistics{Generation: s.generation, GA: gaStats}
	s.generation++

	slog.Debug("generation complete", "stats", stats)
	return stats
}
