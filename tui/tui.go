// Package tui is a terminal front-end that draws the stage with emoji glyphs.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lemilonkh/ecolia/components"
	"github.com/lemilonkh/ecolia/sim"
)

// Speed limits for steps per frame.
const (
	minSteps = 1
	maxSteps = 10
)

var speciesGlyphs = map[string]string{
	"Alpaca": "🦙",
	"Deer":   "🦌",
	"Fox":    "🦊",
	"Husky":  "🐕",
	"Stag":   "🐐",
	"Wolf":   "🐺",
}

var variantGlyphs = map[string]string{
	"tree": "🌳",
	"bush": "🌿",
}

const (
	defaultCreatureGlyph = "🐾"
	defaultPlantGlyph    = "🌱"
	deadGlyph            = "💀"
)

// App runs a Simulation on a tcell screen.
type App struct {
	screen tcell.Screen
	sim    *sim.Simulation
	grid   Grid

	paused bool
	steps  int
	quit   bool
}

// New creates an App on an initialized screen.
func New(screen tcell.Screen, s *sim.Simulation, steps int) *App {
	w, h := screen.Size()
	screen.EnableMouse()
	return &App{
		screen: screen,
		sim:    s,
		grid:   NewGrid(w, h, s.Config().Stage.Size),
		steps:  min(max(steps, minSteps), maxSteps),
	}
}

// Run drives the simulation at the configured frame rate until the user
// quits, ctx is cancelled or maxTicks is reached (0 = unlimited).
func (a *App) Run(ctx context.Context, maxTicks int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 32)
	go a.pollEvents(ctx, events)

	fps := max(a.sim.Config().Screen.TargetFPS, 1)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.HandleEvent(ev)
			if a.quit {
				return nil
			}
		case <-ticker.C:
			a.Update()
			a.Draw()
			if maxTicks > 0 && int(a.sim.TickCount()) >= maxTicks {
				return nil
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or ctx ends.
func (a *App) pollEvents(ctx context.Context, events chan<- tcell.Event) {
	defer close(events)
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Update advances the simulation unless paused.
func (a *App) Update() {
	if a.paused {
		return
	}
	for i := 0; i < a.steps; i++ {
		a.sim.Tick()
	}
	a.sim.RecordFrame()
}

// HandleEvent applies one input event.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := a.screen.Size()
		a.grid = NewGrid(w, h, a.sim.Config().Stage.Size)
		a.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			a.quit = true
			return
		}
		switch ev.Rune() {
		case ' ':
			a.paused = !a.paused
		case 'q', 'Q':
			a.quit = true
		case '+', '>', '.':
			a.steps = min(a.steps+1, maxSteps)
		case '-', '<', ',':
			a.steps = max(a.steps-1, minSteps)
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return
		}
		cx, cy, ok := a.grid.ScreenToCell(ev.Position())
		if !ok {
			return
		}
		x, z := a.grid.CellToWorld(cx, cy)
		a.sim.SpawnResource(r3.Vec{X: x, Z: z}, "")
	}
}

// Paused reports whether the simulation is paused.
func (a *App) Paused() bool { return a.paused }

// Steps returns simulation ticks per frame.
func (a *App) Steps() int { return a.steps }

// Draw renders the stage and the status lines.
func (a *App) Draw() {
	a.screen.Clear()
	ground := tcell.StyleDefault.Background(tcell.ColorDarkOliveGreen)

	for cy := 0; cy < a.grid.Rows; cy++ {
		for cx := 0; cx < a.grid.Cols; cx++ {
			a.screen.SetContent(cx*2, cy, ' ', nil, ground)
			a.screen.SetContent(cx*2+1, cy, ' ', nil, ground)
		}
	}

	for _, p := range a.sim.Plants() {
		cx, cy := a.grid.WorldToCell(p.Pos.X, p.Pos.Z)
		a.putGlyph(cx*2, cy, glyphOr(variantGlyphs, p.Variant, defaultPlantGlyph), ground)
	}

	alive, dead := 0, 0
	for _, c := range a.sim.Creatures() {
		cx, cy := a.grid.WorldToCell(c.Position.X, c.Position.Z)
		glyph := glyphOr(speciesGlyphs, c.Species, defaultCreatureGlyph)
		style := ground
		switch c.State {
		case components.StateDead:
			glyph = deadGlyph
			dead++
		case components.StateEating, components.StateDrinking:
			style = ground.Background(tcell.ColorOlive)
			alive++
		default:
			alive++
		}
		a.putGlyph(cx*2, cy, glyph, style)
	}

	status := "running"
	if a.paused {
		status = "PAUSED"
	}
	a.putText(0, a.grid.Rows, fmt.Sprintf("creatures %d  dead %d  plants %d  tick %d  t=%.1fs  speed %dx  %s",
		alive, dead, a.sim.PlantCount(), a.sim.TickCount(), a.sim.Elapsed(), a.steps, status), tcell.StyleDefault)
	a.putText(0, a.grid.Rows+1, "[space] pause  [+/-] speed  [click] plant  [q] quit", tcell.StyleDefault.Foreground(tcell.ColorGray))

	a.screen.Show()
}

func glyphOr(m map[string]string, key, fallback string) string {
	if g, ok := m[key]; ok {
		return g
	}
	return fallback
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (a *App) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 && runewidth.StringWidth(glyph) == 2 {
		combc = runes[1:]
	}
	a.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		a.screen.SetContent(x+1, y, ' ', nil, style)
	} else if len(runes) > 1 {
		a.screen.SetContent(x+1, y, runes[1], nil, style)
	}
}

// putText writes a line of text, advancing by each rune's display width.
func (a *App) putText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		a.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
