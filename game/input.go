package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

// selectRadius is the world distance within which a right click picks a creature.
const selectRadius = 3.0

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.stepsPerUpdate = clampSteps(g.stepsPerUpdate - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.stepsPerUpdate = clampSteps(g.stepsPerUpdate + 1)
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}

	g.handleCameraInput()
	g.handleMouse()
}

// handleMouse plants on left click and selects on right click.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()
	if g.overControls(mouse) {
		return
	}

	wx, wz := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	if !g.camera.OnStage(wx, wz) {
		return
	}
	pos := r3.Vec{X: float64(wx), Z: float64(wz)}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.sim.SpawnResource(pos, "")
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.selectedID, g.hasSelected = g.sim.NearestCreature(pos, selectRadius)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.inspector.SetPosition(int32(w)-g.inspector.Width()-10, 10)
	g.perfPanel.SetPosition(int32(w)-230, int32(h)-130)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Screen pixels per frame; Pan converts through the zoom
	const panSpeed = float32(8.0)

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		g.camera.ZoomBy(1 + wheelMove*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
