package game

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lark/components"
	"github.com/pthm-cable/lark/config"
)

// World stores animals and foods as entities of an ark world. Animals carry
// Position, Motion and Animal; foods carry Position and the Food tag.
// Queries return entities in creation order, and the entity set never
// changes after construction, so iteration order is stable for the lifetime
// of the World.
type World struct {
	cfg *config.Config
	ecs *ecs.World

	animalMap    *ecs.Map3[components.Position, components.Motion, components.Animal]
	foodMap      *ecs.Map2[components.Position, components.Food]
	animalFilter *ecs.Filter3[components.Position, components.Motion, components.Animal]
	foodFilter   *ecs.Filter1[components.Position]

	numAnimals int
	numFoods   int
}

func newWorld(cfg *config.Config) *World {
	w := ecs.NewWorld()
	return &World{
		cfg:          cfg,
		ecs:          w,
		animalMap:    ecs.NewMap3[components.Position, components.Motion, components.Animal](w),
		foodMap:      ecs.NewMap2[components.Position, components.Food](w),
		animalFilter: ecs.NewFilter3[components.Position, components.Motion, components.Animal](w),
		foodFilter:   ecs.NewFilter1[components.Position](w).With(ecs.C[components.Food]()),
	}
}

// RandomWorld spawns cfg.WorldAnimals random animals, then cfg.WorldFoods
// randomly placed foods.
func RandomWorld(cfg *config.Config, rng *rand.Rand) *World {
	w := newWorld(cfg)
	for range cfg.WorldAnimals {
		animal := components.RandomAnimal(cfg, rng)
		pos := components.RandomPosition(rng)
		motion := components.RandomMotion(cfg, rng)
		w.animalMap.NewEntity(&pos, &motion, &animal)
	}
	for range cfg.WorldFoods {
		pos := components.RandomPosition(rng)
		w.foodMap.NewEntity(&pos, &components.Food{})
	}
	w.numAnimals = cfg.WorldAnimals
	w.numFoods = cfg.WorldFoods
	return w
}

// ECS exposes the underlying ark world for systems.
func (w *World) ECS() *ecs.World { return w.ecs }

func (w *World) NumAnimals() int { return w.numAnimals }
func (w *World) NumFoods() int   { return w.numFoods }

// EachAnimal calls fn for every animal in iteration order. fn may modify
// the components but must not add or remove entities.
func (w *World) EachAnimal(fn func(i int, pos *components.Position, motion *components.Motion, animal *components.Animal)) {
	i := 0
	query := w.animalFilter.Query()
	for query.Next() {
		pos, motion, animal := query.Get()
		fn(i, pos, motion, animal)
		i++
	}
}

// EachFood calls fn for every food position in iteration order.
func (w *World) EachFood(fn func(i int, pos *components.Position)) {
	i := 0
	query := w.foodFilter.Query()
	for query.Next() {
		fn(i, query.Get())
		i++
	}
}

// ReplaceAnimals overwrites every animal in iteration order and respawns it
// at a random position and heading. It panics if the count differs from the
// current population.
func (w *World) ReplaceAnimals(rng *rand.Rand, animals []components.Animal) {
	if len(animals) != w.numAnimals {
		panic("game: replacement population size differs from world population")
	}
	i := 0
	query := w.animalFilter.Query()
	for query.Next() {
		pos, motion, animal := query.Get()
		*animal = animals[i]
		*pos = components.RandomPosition(rng)
		*motion = components.RandomMotion(w.cfg, rng)
		i++
	}
}

// RelocateFoods moves every food to a fresh random position.
func (w *World) RelocateFoods(rng *rand.Rand) {
	query := w.foodFilter.Query()
	for query.Next() {
		*query.Get() = components.RandomPosition(rng)
	}
}
