package game

import (
	"hash/fnv"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lemilonkh/ecolia/components"
	"github.com/lemilonkh/ecolia/sim"
	"github.com/lemilonkh/ecolia/ui"
)

// Sizes in world units.
const (
	creatureRadius = 1.2
	plantRadius    = 0.7
)

var (
	stageColor = rl.Color{R: 34, G: 52, B: 30, A: 255}
	deadColor  = rl.Color{R: 90, G: 90, B: 90, A: 255}

	speciesPalette = []rl.Color{
		{R: 230, G: 200, B: 150, A: 255},
		{R: 190, G: 130, B: 80, A: 255},
		{R: 230, G: 110, B: 40, A: 255},
		{R: 200, G: 210, B: 230, A: 255},
		{R: 160, G: 100, B: 60, A: 255},
		{R: 140, G: 140, B: 160, A: 255},
	}
	variantPalette = []rl.Color{
		{R: 40, G: 150, B: 60, A: 255},
		{R: 120, G: 190, B: 70, A: 255},
		{R: 70, G: 120, B: 40, A: 255},
	}
)

// controlsRect is the raygui strip in the bottom left corner.
func (g *Game) controlsRect() rl.Rectangle {
	return rl.Rectangle{X: 10, Y: g.screenHeight - 80, Width: 330, Height: 45}
}

// overControls reports whether a screen point is over the raygui strip.
func (g *Game) overControls(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, g.controlsRect())
}

// Draw renders one frame.
func (g *Game) Draw() {
	g.sim.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.drawStage()
	g.drawPlants()
	creatures := g.sim.Creatures()
	g.drawCreatures(creatures)

	alive, dead := 0, 0
	for _, c := range creatures {
		if c.State.Alive() {
			alive++
		} else {
			dead++
		}
	}
	g.hud.Draw(ui.HUDData{
		Title:        "Ecolia",
		Alive:        alive,
		Dead:         dead,
		Plants:       g.sim.PlantCount(),
		Tick:         g.sim.TickCount(),
		SimTime:      g.sim.Elapsed(),
		Speed:        g.stepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
	})
	g.hud.DrawControls(int32(g.screenHeight), "[Space] Pause  [</>] Speed  [LMB] Plant  [RMB] Select  [P] Perf  [Arrows/Wheel] Camera  [Home] Reset")

	g.drawGUI()

	if g.hasSelected {
		if c, ok := g.sim.Creature(g.selectedID); ok {
			g.inspector.Draw(c)
		}
	}
	if g.showPerf {
		g.perfPanel.Draw(g.sim.PerfStats())
	}

	rl.EndDrawing()
}

// drawGUI renders the pause button and speed slider.
func (g *Game) drawGUI() {
	r := g.controlsRect()

	label := "Pause"
	if g.paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: r.X, Y: r.Y + 10, Width: 90, Height: 25}, label) {
		g.paused = !g.paused
	}

	speed := gui.SliderBar(
		rl.Rectangle{X: r.X + 140, Y: r.Y + 12, Width: 150, Height: 20},
		"1x", "10x",
		float32(g.stepsPerUpdate), MinStepsPerUpdate, MaxStepsPerUpdate,
	)
	g.stepsPerUpdate = clampSteps(int(math.Round(float64(speed))))
}

// drawStage fills the stage square.
func (g *Game) drawStage() {
	size := float32(g.sim.Config().Stage.Size)
	x0, y0 := g.camera.WorldToScreen(0, 0)
	x1, y1 := g.camera.WorldToScreen(size, size)
	rl.DrawRectangle(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0), stageColor)
	rl.DrawRectangleLines(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0), rl.DarkGreen)
}

// drawPlants renders each plant as a circle colored by variant.
func (g *Game) drawPlants() {
	index := g.sim.Config().Derived.VariantIndex
	radius := plantRadius * g.camera.Zoom
	for _, p := range g.sim.Plants() {
		x, z := float32(p.Pos.X), float32(p.Pos.Z)
		if !g.camera.IsVisible(x, z, plantRadius) {
			continue
		}
		sx, sy := g.camera.WorldToScreen(x, z)
		color := variantPalette[index[p.Variant]%len(variantPalette)]
		rl.DrawCircle(int32(sx), int32(sy), radius, color)
	}
}

// drawCreatures renders creatures as triangles along their travel direction.
func (g *Game) drawCreatures(creatures []sim.CreatureView) {
	radius := creatureRadius * g.camera.Zoom
	for _, c := range creatures {
		x, z := float32(c.Position.X), float32(c.Position.Z)
		if !g.camera.IsVisible(x, z, creatureRadius) {
			continue
		}
		sx, sy := g.camera.WorldToScreen(x, z)
		heading := float32(math.Atan2(c.Forward.Z, c.Forward.X))

		color := speciesColor(c.Species)
		switch c.Slot {
		case components.SlotEating:
			color = rl.ColorBrightness(color, 0.3)
		case components.SlotFallback:
			if c.State == components.StateDead {
				color = deadColor
			}
		}
		// Fade with energy, which also sets animation playback speed
		color.A = uint8(120 + c.PlaybackSpeed()*135)

		drawOrientedTriangle(sx, sy, heading, radius, color)

		if g.hasSelected && c.ID == g.selectedID {
			rl.DrawCircleLines(int32(sx), int32(sy), radius*2, rl.Yellow)
			if c.Target.Valid {
				tx, ty := g.camera.WorldToScreen(float32(c.Target.Point.X), float32(c.Target.Point.Z))
				rl.DrawLine(int32(sx), int32(sy), int32(tx), int32(ty), rl.Yellow)
			}
		}
	}
}

// speciesColor picks a stable palette color for a species name.
func speciesColor(species string) rl.Color {
	h := fnv.New32a()
	h.Write([]byte(species))
	return speciesPalette[h.Sum32()%uint32(len(speciesPalette))]
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	// Front point
	frontX := x + cos*radius*1.5
	frontY := y + sin*radius*1.5

	// Back left
	backAngle := heading + math.Pi*0.8
	backLeftX := x + float32(math.Cos(float64(backAngle)))*radius
	backLeftY := y + float32(math.Sin(float64(backAngle)))*radius

	// Back right
	backAngle = heading - math.Pi*0.8
	backRightX := x + float32(math.Cos(float64(backAngle)))*radius
	backRightY := y + float32(math.Sin(float64(backAngle)))*radius

	v1 := rl.Vector2{X: frontX, Y: frontY}
	v2 := rl.Vector2{X: backLeftX, Y: backLeftY}
	v3 := rl.Vector2{X: backRightX, Y: backRightY}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
	rl.DrawTriangleLines(v1, v2, v3, rl.White)
}
