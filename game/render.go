package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lark/components"
	"github.com/pthm-cable/lark/ui"
)

var (
	backgroundColor = rl.Color{R: 18, G: 22, B: 30, A: 255}
	arenaColor      = rl.Color{R: 28, G: 34, B: 46, A: 255}
	foodColor       = rl.Color{R: 120, G: 220, B: 110, A: 255}
	animalColor     = rl.Color{R: 240, G: 200, B: 90, A: 255}
	selectedColor   = rl.Color{R: 250, G: 120, B: 90, A: 255}
)

func (g *Game) toScreen(p components.Position) rl.Vector2 {
	x, y := g.camera.WorldToScreen(p.X, p.Y)
	return rl.Vector2{X: x, Y: y}
}

// Draw renders the world, the overlays and the HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	g.drawArena()
	if g.showEye {
		g.drawEye()
	}
	g.drawFoods()
	g.drawAnimals()
	g.drawUI()

	rl.EndDrawing()
}

// drawArena shades the world square. Once the view is panned or zoomed the
// torus fills the whole window.
func (g *Game) drawArena() {
	if g.camera.Zoom > 1 || g.camera.X != 0.5 || g.camera.Y != 0.5 {
		rl.ClearBackground(arenaColor)
		return
	}
	x, y := g.camera.WorldToScreen(0, 0)
	size := g.camera.Scale()
	rl.DrawRectangleV(rl.Vector2{X: x, Y: y}, rl.Vector2{X: size, Y: size}, arenaColor)
}

func (g *Game) drawFoods() {
	size := g.sim.Config().FoodSize
	radius := max(size*g.camera.Scale(), 2)
	g.sim.World().EachFood(func(_ int, p *components.Position) {
		if !g.camera.IsVisible(p.X, p.Y, size) {
			return
		}
		rl.DrawCircleV(g.toScreen(*p), radius, foodColor)
	})
}

func (g *Game) drawAnimals() {
	const bodySize = 0.01
	radius := max(bodySize*g.camera.Scale(), 4)
	g.sim.World().EachAnimal(func(i int, p *components.Position, m *components.Motion, _ *components.Animal) {
		if !g.camera.IsVisible(p.X, p.Y, bodySize*1.5) {
			return
		}
		color := animalColor
		if g.showEye && i == g.selected {
			color = selectedColor
		}
		center := g.toScreen(*p)
		drawOrientedTriangle(center.X, center.Y, m.Rotation, radius, color)
	})
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	point := func(angle, r float32) rl.Vector2 {
		sin, cos := math.Sincos(float64(angle))
		return rl.Vector2{X: x + float32(cos)*r, Y: y + float32(sin)*r}
	}

	v1 := point(heading, radius*1.5)
	v2 := point(heading+math.Pi*0.8, radius)
	v3 := point(heading-math.Pi*0.8, radius)

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
	rl.DrawTriangleLines(v1, v2, v3, rl.White)
}

// drawEye shades each eye cell of the selected animal by its energy.
func (g *Game) drawEye() {
	g.sim.World().EachAnimal(func(i int, p *components.Position, m *components.Motion, animal *components.Animal) {
		if i != g.selected {
			return
		}
		eye := animal.Eye()
		center := g.toScreen(*p)
		radius := eye.FOVRange() * g.camera.Scale()
		cellAngle := eye.FOVAngle() / float32(eye.Cells())
		start := m.Rotation - eye.FOVAngle()/2

		for cell, energy := range animal.Vision() {
			from := (start + float32(cell)*cellAngle) * rl.Rad2deg
			to := (start + float32(cell+1)*cellAngle) * rl.Rad2deg
			alpha := uint8(30 + 200*min(energy, 1))
			rl.DrawCircleSector(center, radius, from, to, 6, rl.Color{R: 90, G: 160, B: 230, A: alpha})
		}
		rl.DrawCircleSectorLines(center, radius, start*rl.Rad2deg, (start+eye.FOVAngle())*rl.Rad2deg, 16, rl.LightGray)
	})
}

// drawUI draws the HUD, control panel and performance panel.
func (g *Game) drawUI() {
	cfg := g.sim.Config()
	data := ui.HUDData{
		Title:            "Lark",
		Generation:       g.sim.Generation(),
		Age:              g.sim.Age(),
		GenerationLength: cfg.SimGenerationLength,
		Animals:          cfg.WorldAnimals,
		Foods:            cfg.WorldFoods,
		Speed:            g.stepsPerUpdate,
		FPS:              rl.GetFPS(),
		Paused:           g.paused,
	}
	if g.hasStats {
		data.LastGeneration = g.lastStats.Generation
		data.LastStats = &g.lastStats.GA
	}
	g.hud.Draw(data)

	actions := g.controls.Draw(ui.ControlState{
		X:              g.width - 230,
		Y:              10,
		Paused:         g.paused,
		ShowEye:        g.showEye,
		StepsPerUpdate: g.stepsPerUpdate,
		MaxSteps:       maxStepsPerUpdate,
	})
	if actions.TogglePause {
		g.paused = !g.paused
	}
	if actions.Train {
		g.trainRequested = true
	}
	if actions.ToggleEye {
		g.showEye = !g.showEye
	}
	g.stepsPerUpdate = actions.StepsPerUpdate

	if g.perf != nil {
		g.perfPanel.Draw(g.width-230, 170, g.perf.Stats())
	}

	g.hud.DrawControls(int32(g.height),
		"SPACE: Pause | T: Train | < >: Speed | V: Eye | Left/Right: Select | WASD/Wheel: Camera | R: Reset view")
}
