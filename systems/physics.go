package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lark/components"
)

// MovementSystem advances every moving entity along its heading.
type MovementSystem struct {
	filter *ecs.Filter2[components.Position, components.Motion]
}

// NewMovementSystem creates a movement system.
func NewMovementSystem(w *ecs.World) *MovementSystem {
	return &MovementSystem{
		filter: ecs.NewFilter2[components.Position, components.Motion](w),
	}
}

// Update runs the movement system.
func (s *MovementSystem) Update(w *ecs.World) {
	query := s.filter.Query()
	for query.Next() {
		pos, motion := query.Get()
		*pos = Advance(*pos, motion.Rotation, motion.Speed)
	}
}

// Advance moves p by speed along rotation and wraps the result onto the torus.
// Rotation 0 points along +X.
func Advance(p components.Position, rotation, speed float32) components.Position {
	sin, cos := math.Sincos(float64(rotation))
	return components.Position{
		X: Wrap01(p.X + speed*float32(cos)),
		Y: Wrap01(p.Y + speed*float32(sin)),
	}
}

// Wrap01 maps v into [0, 1).
func Wrap01(v float32) float32 {
	v -= float32(math.Floor(float64(v)))
	// Tiny negatives round up to exactly 1.
	if v >= 1 {
		v = 0
	}
	return v
}
