// Package ui draws the on-screen panels of the graphical driver.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lark/genetic"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title            string
	Generation       int
	Age              int
	GenerationLength int
	Animals          int
	Foods            int
	Speed            int
	FPS              int32
	Paused           bool

	// LastStats is nil until the first generation ends.
	LastGeneration int
	LastStats      *genetic.Statistics
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Generation: %d | Age: %d/%d", data.Generation, data.Age, data.GenerationLength),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Animals: %d | Foods: %d | Speed: %dx | FPS: %d", data.Animals, data.Foods, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	y := int32(75)
	if data.Paused {
		rl.DrawText("PAUSED", 10, y, 16, rl.Yellow)
		y += 20
	}

	if data.LastStats != nil {
		for _, line := range StatsLines(data.LastGeneration, *data.LastStats) {
			rl.DrawText(line, 10, y, 14, rl.Gray)
			y += 16
		}
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// StatsLines formats the fitness summary of a finished generation.
func StatsLines(generation int, s genetic.Statistics) []string {
	return []string{
		fmt.Sprintf("Last generation: %d", generation),
		fmt.Sprintf("  min %.0f  max %.0f", s.MinFitness, s.MaxFitness),
		fmt.Sprintf("  avg %.2f  median %.1f", s.AvgFitness, s.MedianFitness),
	}
}
