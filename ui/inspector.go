package ui

import (
	"fmt"

	"github.com/lemilonkh/ecolia/sim"
)

// Inspector renders the panel for the selected creature.
type Inspector struct {
	renderer *Renderer
	panel    PanelDescriptor
	x, y     int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		panel:    creaturePanel(width),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Width returns the panel width.
func (ins *Inspector) Width() int32 {
	return ins.panel.Width
}

// Draw renders the inspector panel for a creature and returns its height.
func (ins *Inspector) Draw(c sim.CreatureView) int32 {
	return ins.renderer.DrawPanelDescriptor(ins.x, ins.y, ins.panel, c)
}

func creature(data any) sim.CreatureView {
	return data.(sim.CreatureView)
}

func creaturePanel(width int32) PanelDescriptor {
	return PanelDescriptor{
		ID:    "creature",
		Title: "Creature",
		Width: width,
		Sections: []SectionDescriptor{
			{
				ID: "identity",
				Fields: []FieldDescriptor{
					{ID: "id", Label: "ID", Widget: WidgetText, TextGetter: func(d any) string {
						return fmt.Sprintf("#%d", creature(d).ID)
					}},
					{ID: "species", Label: "Species", Widget: WidgetText, TextGetter: func(d any) string {
						return creature(d).Species
					}},
					{ID: "state", Label: "State", Widget: WidgetText, TextGetter: func(d any) string {
						c := creature(d)
						return fmt.Sprintf("%s (%s)", c.State, c.Slot)
					}},
				},
			},
			{
				ID:    "vitality",
				Title: "Vitality",
				Fields: []FieldDescriptor{
					{ID: "health", Label: "Health", Widget: WidgetNeedBar, Getter: func(d any) float32 {
						return float32(creature(d).Vitality.Health())
					}},
					{ID: "energy", Label: "Energy", Widget: WidgetNeedBar, Getter: func(d any) float32 {
						return float32(creature(d).Vitality.Energy())
					}},
					{ID: "hunger", Label: "Hunger", Widget: WidgetNeedBar, Getter: func(d any) float32 {
						return float32(creature(d).Vitality.Hunger())
					}},
					{ID: "thirst", Label: "Thirst", Widget: WidgetNeedBar, Getter: func(d any) float32 {
						return float32(creature(d).Vitality.Thirst())
					}},
				},
			},
			{
				ID:    "motion",
				Title: "Motion",
				Fields: []FieldDescriptor{
					{ID: "pos", Label: "Pos", Widget: WidgetText, TextGetter: func(d any) string {
						p := creature(d).Position
						return fmt.Sprintf("%.1f, %.1f", p.X, p.Z)
					}},
					{ID: "speed", Label: "Speed", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 {
						return float32(creature(d).Speed)
					}},
					{ID: "target", Label: "Target", Widget: WidgetText, TextGetter: func(d any) string {
						t := creature(d).Target
						return fmt.Sprintf("%.1f, %.1f", t.Point.X, t.Point.Z)
					}, Visible: func(d any) bool { return creature(d).Target.Valid }},
					{ID: "wait", Label: "Wait", Widget: WidgetText, Format: "%.1fs", Getter: func(d any) float32 {
						return float32(creature(d).Wait.Remaining)
					}, Visible: func(d any) bool { return creature(d).Wait.Armed }},
				},
			},
		},
	}
}
