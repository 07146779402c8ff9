package ui

import (
	"fmt"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/game"
)

// AgentSections returns the inspector layout for a game.AgentSnapshot.
// Vital bars follow components.VitalFieldDescriptors.
func AgentSections() []SectionDescriptor {
	vitals := components.VitalFieldDescriptors()
	bars := make([]FieldDescriptor, 0, len(vitals))
	for _, vf := range vitals {
		id := vf.ID
		bars = append(bars, FieldDescriptor{
			ID:        id,
			Label:     vf.Label,
			Widget:    WidgetBar,
			WarnBelow: float32(vf.WarnBelow),
			Getter: func(d any) float32 {
				s := d.(game.AgentSnapshot)
				return float32(components.VitalFraction(s.Vitals, s.Limits, id))
			},
		})
	}

	return []SectionDescriptor{
		{
			ID:    "agent",
			Title: "Agent",
			Fields: []FieldDescriptor{
				{ID: "id", Label: "ID", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", d.(game.AgentSnapshot).ID)
				}},
				{ID: "stage", Label: "Stage", Widget: WidgetText, TextGetter: func(d any) string {
					s := d.(game.AgentSnapshot)
					switch {
					case !s.Alive:
						return "dead"
					case s.Adult:
						return "adult"
					default:
						return "juvenile"
					}
				}},
				{ID: "state", Label: "State", Widget: WidgetText, TextGetter: func(d any) string {
					return d.(game.AgentSnapshot).State.String()
				}},
				{ID: "position", Label: "Position", Widget: WidgetText, TextGetter: func(d any) string {
					p := d.(game.AgentSnapshot).Position
					return fmt.Sprintf("%.1f, %.1f", p.X, p.Z)
				}},
				{ID: "near_water", Label: "Near water", Widget: WidgetText, TextGetter: func(d any) string {
					if d.(game.AgentSnapshot).NearWater {
						return "yes"
					}
					return "no"
				}},
			},
		},
		{
			ID:     "vitals",
			Title:  "Vitals",
			Fields: bars,
		},
	}
}

// Inspector renders the selected agent panel.
type Inspector struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		sections: AgentSections(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector for a snapshot and returns the bottom Y.
func (ins *Inspector) Draw(snap game.AgentSnapshot) int32 {
	r := ins.renderer
	padding := r.Theme.Padding

	height := padding * 2
	for _, sd := range ins.sections {
		height += r.SectionHeight(sd, snap)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + padding
	for _, sd := range ins.sections {
		y = r.DrawSection(ins.x+padding, y, sd, snap, ins.width-padding*2)
	}
	return ins.y + height
}
