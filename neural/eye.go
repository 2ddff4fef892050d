package neural

import (
	"fmt"
	"math"

	"github.com/pthm-cable/lark/config"
)

// FoodInfo is the position of one food item as seen by an eye.
type FoodInfo struct {
	X, Y float32
}

// Eye turns nearby food into a proximity histogram over angular cells.
type Eye struct {
	fovRange float32 // Maximum seeing distance
	fovAngle float32 // Total field of view in radians, centered on the heading
	cells    int     // Angular buckets across the field of view
}

// NewEye panics unless every parameter is positive.
func NewEye(fovRange, fovAngle float32, cells int) *Eye {
	if fovRange <= 0 || fovAngle <= 0 || cells <= 0 {
		panic(fmt.Sprintf("neural: invalid eye (range %v, angle %v, cells %d)", fovRange, fovAngle, cells))
	}
	return &Eye{fovRange: fovRange, fovAngle: fovAngle, cells: cells}
}

// EyeFromConfig creates an eye with the configured geometry.
func EyeFromConfig(cfg *config.Config) *Eye {
	return NewEye(cfg.EyeFOVRange, cfg.EyeFOVAngle, cfg.EyeCells)
}

func (e *Eye) FOVRange() float32 { return e.fovRange }
func (e *Eye) FOVAngle() float32 { return e.fovAngle }
func (e *Eye) Cells() int { return e.cells }

// ProcessVision returns one value per cell for an observer at (x, y) facing
// rotation. Each visible food adds (range - distance) / range to the cell
// covering its bearing, so several foods can light up the same cell.
func (e *Eye) ProcessVision(x, y, rotation float32, foods []FoodInfo) []float32 {
	cells := make([]float32, e.cells)

	fovRange := float64(e.fovRange)
	fovAngle := float64(e.fovAngle)
	halfAngle := fovAngle / 2

	for _, food := range foods {
		dx := float64(food.X - x)
		dy := float64(food.Y - y)

		dist := math.Hypot(dx, dy)
		if dist > fovRange {
			continue
		}

		bearing := normalizeAngle(math.Atan2(dy, dx) - float64(rotation))
		if math.Abs(bearing) > halfAngle {
			continue
		}

		cell := int(math.Floor((bearing + halfAngle) / fovAngle * float64(e.cells)))
		cell = min(max(cell, 0), e.cells-1)

		cells[cell] += float32((fovRange - dist) / fovRange)
	}

	return cells
}

// normalizeAngle wraps an angle into (-π, π].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
