// Package systems contains ECS systems for the simulation.
package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lark/components"
)

// FeedingSystem lets animals eat food within foodSize. Animals are visited
// in query order and, for each one, foods in query order; eaten food is
// relocated at once, so when two animals reach the same food in one tick
// the earlier animal gets it. An animal may eat several foods per tick.
type FeedingSystem struct {
	animalFilter *ecs.Filter2[components.Position, components.Animal]
	foodFilter   *ecs.Filter1[components.Position]
	posMap       *ecs.Map1[components.Position]
	foodSize     float32

	grid       *FoodGrid // Broad phase (set via SetFoodGrid)
	candidates []ecs.Entity
}

// NewFeedingSystem creates a feeding system over the animals and foods of w.
func NewFeedingSystem(w *ecs.World, foodSize float32) *FeedingSystem {
	return &FeedingSystem{
		animalFilter: ecs.NewFilter2[components.Position, components.Animal](w),
		foodFilter:   newFoodFilter(w),
		posMap:       ecs.NewMap1[components.Position](w),
		foodSize:     foodSize,
	}
}

// newFoodFilter matches entities tagged as food.
func newFoodFilter(w *ecs.World) *ecs.Filter1[components.Position] {
	return ecs.NewFilter1[components.Position](w).With(ecs.C[components.Food]())
}

// SetFoodGrid enables the grid broad phase. Results, including the order in
// which rng is consumed, match the exhaustive pass.
func (s *FeedingSystem) SetFoodGrid(grid *FoodGrid) {
	s.grid = grid
}

// Update runs one feeding pass and returns the number of foods eaten.
func (s *FeedingSystem) Update(w *ecs.World, rng *rand.Rand) int {
	if s.grid != nil {
		return s.updateGrid(rng)
	}

	eaten := 0
	query := s.animalFilter.Query()
	for query.Next() {
		pos, animal := query.Get()

		foods := s.foodFilter.Query()
		for foods.Next() {
			food := foods.Get()
			if pos.Distance(*food) <= s.foodSize {
				animal.Feed()
				*food = components.RandomPosition(rng)
				eaten++
			}
		}
	}
	return eaten
}

func (s *FeedingSystem) updateGrid(rng *rand.Rand) int {
	s.grid.Clear()
	foods := s.foodFilter.Query()
	for foods.Next() {
		s.grid.Insert(foods.Entity(), *foods.Get())
	}

	eaten := 0
	query := s.animalFilter.Query()
	for query.Next() {
		pos, animal := query.Get()

		s.candidates = s.grid.QueryInto(s.candidates, *pos, s.foodSize)
		for _, e := range s.candidates {
			food := s.posMap.Get(e)
			if pos.Distance(*food) <= s.foodSize {
				animal.Feed()
				from := *food
				*food = components.RandomPosition(rng)
				s.grid.Move(e, from, *food)
				eaten++
			}
		}
	}
	return eaten
}
