package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlState is the input to one frame of the control panel.
type ControlState struct {
	X, Y           float32
	Paused         bool
	ShowEye        bool
	StepsPerUpdate int
	MaxSteps       int
}

// ControlActions reports what the user clicked this frame.
type ControlActions struct {
	TogglePause    bool
	Train          bool
	ToggleEye      bool
	StepsPerUpdate int
}

// ControlPanel renders raygui buttons and the speed slider.
type ControlPanel struct {
	width float32
}

// NewControlPanel creates a new control panel.
func NewControlPanel() *ControlPanel {
	return &ControlPanel{width: 220}
}

// Draw renders the panel and returns the actions taken.
func (c *ControlPanel) Draw(s ControlState) ControlActions {
	x, y := s.X, s.Y
	half := (c.width - 10) / 2

	actions := ControlActions{StepsPerUpdate: s.StepsPerUpdate}

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += 24

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 30}, toggleText(s.Paused, "Resume", "Pause")) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 30}, "Train") {
		actions.Train = true
	}
	y += 40

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: c.width, Height: 30}, toggleText(s.ShowEye, "Hide eye", "Show eye")) {
		actions.ToggleEye = true
	}
	y += 45

	rl.DrawText("Steps per frame", int32(x), int32(y), 14, rl.Gray)
	y += 18
	steps := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: c.width - 50, Height: 20},
		"", "",
		float32(s.StepsPerUpdate), 1, float32(s.MaxSteps),
	)
	rl.DrawText(fmt.Sprintf("%d", s.StepsPerUpdate), int32(x+c.width-40), int32(y+2), 16, rl.LightGray)
	actions.StepsPerUpdate = ClampSteps(int(steps+0.5), s.MaxSteps)

	return actions
}

// ClampSteps keeps a slider value within [1, maxSteps].
func ClampSteps(steps, maxSteps int) int {
	return max(1, min(steps, maxSteps))
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
