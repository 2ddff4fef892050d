package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lark/components"
	"github.com/pthm-cable/lark/config"
	"github.com/pthm-cable/lark/neural"
)

// BrainSystem lets every animal look at the food and steer.
type BrainSystem struct {
	animalFilter *ecs.Filter3[components.Position, components.Motion, components.Animal]
	foodFilter   *ecs.Filter1[components.Position]
	speedMin     float32
	speedMax     float32

	foods []neural.FoodInfo // reused across ticks
}

// NewBrainSystem creates a brain system over the animals and foods of w.
func NewBrainSystem(w *ecs.World, cfg *config.Config) *BrainSystem {
	return &BrainSystem{
		animalFilter: ecs.NewFilter3[components.Position, components.Motion, components.Animal](w),
		foodFilter:   newFoodFilter(w),
		speedMin:     cfg.SimSpeedMin,
		speedMax:     cfg.SimSpeedMax,
	}
}

// Update recomputes every animal's vision and applies its brain's speed and
// rotation deltas. Every animal sees the food as it stood at the start of
// the pass.
func (s *BrainSystem) Update(w *ecs.World) {
	s.foods = s.foods[:0]
	foods := s.foodFilter.Query()
	for foods.Next() {
		p := foods.Get()
		s.foods = append(s.foods, neural.FoodInfo{X: p.X, Y: p.Y})
	}

	query := s.animalFilter.Query()
	for query.Next() {
		pos, motion, animal := query.Get()
		speedDelta, rotationDelta := animal.Look(*pos, *motion, s.foods)
		motion.Steer(speedDelta, rotationDelta, s.speedMin, s.speedMax)
	}
}
