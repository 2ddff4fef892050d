package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input and control panel actions.
func (g *Game) handleInput() {
	// Window resize propagation
	if rl.IsWindowResized() {
		g.width = float32(rl.GetScreenWidth())
		g.height = float32(rl.GetScreenHeight())
		g.camera.Resize(g.width, g.height)
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.trainRequested = true
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < maxStepsPerUpdate {
		g.stepsPerUpdate++
	}

	// Eye overlay and selection
	if rl.IsKeyPressed(rl.KeyV) {
		g.showEye = !g.showEye
	}
	if n := g.sim.World().NumAnimals(); n > 0 {
		if rl.IsKeyPressed(rl.KeyRight) {
			g.selected = (g.selected + 1) % n
		}
		if rl.IsKeyPressed(rl.KeyLeft) {
			g.selected = (g.selected + n - 1) % n
		}
	}

	g.handleCameraInput()
}

// handleCameraInput pans with WASD and zooms with the mouse wheel.
func (g *Game) handleCameraInput() {
	const panSpeed = 10
	if rl.IsKeyDown(rl.KeyW) {
		g.camera.Pan(0, -panSpeed)
	}
	if rl.IsKeyDown(rl.KeyS) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyA) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyD) {
		g.camera.Pan(panSpeed, 0)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.camera.Reset()
	}
}
