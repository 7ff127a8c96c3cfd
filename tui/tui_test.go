package tui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lemilonkh/ecolia/config"
	"github.com/lemilonkh/ecolia/sim"
)

// newTestApp builds an App on an 80x24 simulation screen around an empty stage.
func newTestApp(t *testing.T, steps int) (*App, tcell.SimulationScreen) {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	ss.SetSize(80, 24)
	t.Cleanup(ss.Fini)

	cfg := config.Default()
	cfg.Creatures.Species = nil
	cfg.Resource.InitialCount = 0
	cfg.Resource.RespawnInterval = 1000
	return New(ss, sim.New(cfg, sim.Options{Seed: 1}), steps), ss
}

func TestGridMapping(t *testing.T) {
	g := NewGrid(80, 24, 100)
	if g.Cols != 40 || g.Rows != 22 {
		t.Fatalf("grid = %dx%d, want 40x22", g.Cols, g.Rows)
	}

	for _, cell := range [][2]int{{0, 0}, {13, 7}, {39, 21}} {
		x, z := g.CellToWorld(cell[0], cell[1])
		cx, cy := g.WorldToCell(x, z)
		if cx != cell[0] || cy != cell[1] {
			t.Errorf("cell %v -> (%.2f, %.2f) -> (%d, %d)", cell, x, z, cx, cy)
		}
	}

	// Far edge of the stage stays on the grid
	if cx, cy := g.WorldToCell(100, 100); cx != 39 || cy != 21 {
		t.Errorf("stage corner mapped to (%d, %d)", cx, cy)
	}

	if _, _, ok := g.ScreenToCell(10, 22); ok {
		t.Error("status rows should not map to a cell")
	}
	if cx, cy, ok := g.ScreenToCell(11, 3); !ok || cx != 5 || cy != 3 {
		t.Errorf("ScreenToCell(11, 3) = (%d, %d, %v)", cx, cy, ok)
	}
}

func TestClickPlants(t *testing.T) {
	app, _ := newTestApp(t, 1)

	app.HandleEvent(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))

	plants := app.sim.Plants()
	if len(plants) != 1 {
		t.Fatalf("expected one plant after click, got %d", len(plants))
	}
	wx, wz := app.grid.CellToWorld(5, 5)
	if plants[0].Pos != (r3.Vec{X: wx, Z: wz}) {
		t.Errorf("plant at %v, want (%.2f, 0, %.2f)", plants[0].Pos, wx, wz)
	}

	// Clicks on the status line and plain moves do nothing
	app.HandleEvent(tcell.NewEventMouse(10, 23, tcell.Button1, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(12, 5, tcell.ButtonNone, tcell.ModNone))
	if n := app.sim.PlantCount(); n != 1 {
		t.Errorf("expected still one plant, got %d", n)
	}
}

func TestKeys(t *testing.T) {
	app, _ := newTestApp(t, 1)

	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !app.Paused() {
		t.Error("space should pause")
	}
	app.Update()
	if app.sim.TickCount() != 0 {
		t.Errorf("paused update advanced to tick %d", app.sim.TickCount())
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if app.Paused() {
		t.Error("second space should resume")
	}

	for i := 0; i < 20; i++ {
		app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone))
	}
	if app.Steps() != maxSteps {
		t.Errorf("steps = %d, want clamp at %d", app.Steps(), maxSteps)
	}
	app.Update()
	if app.sim.TickCount() != maxSteps {
		t.Errorf("tick = %d, want %d", app.sim.TickCount(), maxSteps)
	}

	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if !app.quit {
		t.Error("q should quit")
	}
}

func TestDrawGlyphs(t *testing.T) {
	app, ss := newTestApp(t, 1)
	x, z := app.grid.CellToWorld(3, 4)
	app.sim.SpawnResource(r3.Vec{X: x, Z: z}, "tree")
	x, z = app.grid.CellToWorld(8, 2)
	app.sim.SpawnCreature("Fox", r3.Vec{X: x, Z: z})

	app.Draw()

	if r, _, _, _ := ss.GetContent(6, 4); r != '🌳' {
		t.Errorf("expected tree at (6, 4), got %q", r)
	}
	if r, _, _, _ := ss.GetContent(16, 2); r != '🦊' {
		t.Errorf("expected fox at (16, 2), got %q", r)
	}
	if r, _, _, _ := ss.GetContent(0, 22); r != 'c' {
		t.Errorf("expected status line on row 22, got %q", r)
	}
}

func TestPollEventsStopsWhenCancelled(t *testing.T) {
	app, ss := newTestApp(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Nobody reads events, so a send that ignored ctx would block forever
	events := make(chan tcell.Event)
	done := make(chan struct{})
	go func() {
		app.pollEvents(ctx, events)
		close(done)
	}()
	ss.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pollEvents still blocked after cancellation")
	}
	if _, ok := <-events; ok {
		t.Error("events channel should be closed")
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	app, ss := newTestApp(t, 1)
	ss.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	errc := make(chan error, 1)
	go func() { errc <- app.Run(context.Background(), 0) }()

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}
}
