// Package components defines the ECS components for the simulation.
//
// An animal entity carries Position, Motion and Animal. A food entity
// carries Position and the Food tag.
package components

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/lark/config"
)

// Position is a point in the unit square [0, 1) x [0, 1).
type Position struct {
	X, Y float32
}

// RandomPosition draws a uniform point in the unit square.
func RandomPosition(rng *rand.Rand) Position {
	return Position{X: rng.Float32(), Y: rng.Float32()}
}

// Distance returns the Euclidean distance between p and q.
func (p Position) Distance(q Position) float32 {
	return float32(math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y)))
}

// Motion is an animal's heading and scalar speed.
type Motion struct {
	Rotation float32 // Heading in radians, not normalized
	Speed    float32 // Distance travelled per tick
}

// RandomMotion draws a uniform heading. Speed starts at the middle of the
// configured range.
func RandomMotion(cfg *config.Config, rng *rand.Rand) Motion {
	return Motion{
		Rotation: rng.Float32() * 2 * math.Pi,
		Speed:    (cfg.SimSpeedMin + cfg.SimSpeedMax) / 2,
	}
}

// Steer applies brain deltas. Speed is clamped to [speedMin, speedMax];
// rotation accumulates without bound.
func (m *Motion) Steer(speedDelta, rotationDelta, speedMin, speedMax float32) {
	m.Speed = min(max(m.Speed+speedDelta, speedMin), speedMax)
	m.Rotation += rotationDelta
}

// Food tags an entity as edible. Eaten food moves elsewhere instead of
// disappearing, so the food count never changes.
type Food struct{}
