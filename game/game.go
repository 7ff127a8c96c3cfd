// Package game is the raylib front-end: it drives a Simulation at the
// frame rate and draws the stage top-down.
package game

import (
	"github.com/lemilonkh/ecolia/camera"
	"github.com/lemilonkh/ecolia/sim"
	"github.com/lemilonkh/ecolia/ui"
)

// Speed limits for steps per frame.
const (
	MinStepsPerUpdate = 1
	MaxStepsPerUpdate = 10
)

// Game holds the front-end state around a running simulation.
type Game struct {
	sim *sim.Simulation

	camera    *camera.Camera
	hud       *ui.HUD
	inspector *ui.Inspector
	perfPanel *ui.PerfPanel

	paused         bool
	stepsPerUpdate int
	showPerf       bool

	selectedID  uint32
	hasSelected bool

	screenWidth, screenHeight float32
}

// NewGame wraps s for interactive display. The raylib window must already be open.
func NewGame(s *sim.Simulation, stepsPerUpdate int) *Game {
	cfg := s.Config()
	w := float32(cfg.Screen.Width)
	h := float32(cfg.Screen.Height)

	return &Game{
		sim:            s,
		camera:         camera.New(w, h, float32(cfg.Stage.Size)),
		hud:            ui.NewHUD(),
		inspector:      ui.NewInspector(int32(w)-230, 10, 220),
		perfPanel:      ui.NewPerfPanel(int32(w)-230, int32(h)-130),
		stepsPerUpdate: clampSteps(stepsPerUpdate),
		screenWidth:    w,
		screenHeight:   h,
	}
}

// Update handles input and advances the simulation unless paused.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.sim.Tick()
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.sim.TickCount()
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

func clampSteps(n int) int {
	return min(max(n, MinStepsPerUpdate), MaxStepsPerUpdate)
}
