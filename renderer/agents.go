package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/camera"
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/views"
)

// Vital bar layout in screen pixels.
const (
	barWidth   = 22
	barHeight  = 3
	barSpacing = 1
)

var (
	barBack   = rl.Color{R: 20, G: 20, B: 20, A: 160}
	barFill   = rl.Color{R: 90, G: 200, B: 90, A: 230}
	barWarn   = rl.Color{R: 220, G: 60, B: 50, A: 230}
	selection = rl.Color{R: 255, G: 235, B: 120, A: 255}
)

// stateColors tints agent bodies by controller state.
var stateColors = [...]rl.Color{
	components.StateIdle:         {R: 200, G: 190, B: 170, A: 255},
	components.StateWandering:    {R: 225, G: 200, B: 150, A: 255},
	components.StateSeekingWater: {R: 110, G: 170, B: 230, A: 255},
	components.StateDrinking:     {R: 60, G: 130, B: 220, A: 255},
	components.StateSeekingFood:  {R: 230, G: 170, B: 80, A: 255},
	components.StateEating:       {R: 210, G: 120, B: 40, A: 255},
	components.StateSeekingMate:  {R: 235, G: 130, B: 190, A: 255},
	components.StateMating:       {R: 220, G: 70, B: 150, A: 255},
	components.StateDead:         {R: 90, G: 80, B: 75, A: 255},
}

// StateColor returns the body colour for a controller state.
func StateColor(s components.State) rl.Color {
	if !s.Valid() {
		return rl.Magenta
	}
	return stateColors[s]
}

// AgentRenderer draws agents from their views.
type AgentRenderer struct {
	radius        float32 // Body radius in ground units at scale 1
	deathDuration float64
	ShowBars      bool
	ShowHeadings  bool
}

// NewAgentRenderer creates an agent renderer.
func NewAgentRenderer(radius, deathDuration float64) *AgentRenderer {
	return &AgentRenderer{
		radius:        float32(radius),
		deathDuration: deathDuration,
		ShowBars:      true,
		ShowHeadings:  true,
	}
}

// Draw renders every visible view. selectedID highlights one agent (0 = none).
func (r *AgentRenderer) Draw(cam *camera.Camera, tracker *views.Tracker, snapshots []game.AgentSnapshot, selectedID uint32, light float32) {
	for i := range snapshots {
		id := snapshots[i].ID
		v, ok := tracker.View(id)
		if !ok || !v.Visible {
			continue
		}
		r.drawAgent(cam, v, id == selectedID, light)
	}
}

func (r *AgentRenderer) drawAgent(cam *camera.Camera, v *views.View, selected bool, light float32) {
	x, z := float32(v.Position.X), float32(v.Position.Z)
	size := r.radius * float32(v.Scale)
	if !cam.IsVisible(x, z, size*2) {
		return
	}
	sx, sy := cam.WorldToScreen(x, z)
	rs := size * cam.Zoom
	if rs < 1.5 {
		rs = 1.5
	}

	body := shade(StateColor(v.State), light)
	if v.Animation == views.AnimDie {
		fade := 1 - float32(v.DeathProgress(r.deathDuration))
		body.A = uint8(float32(body.A) * fade)
		rs *= 0.6 + 0.4*fade
	}

	if selected {
		rl.DrawCircleLines(int32(sx), int32(sy), rs+3, selection)
	}
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, rs, body)

	if r.ShowHeadings {
		// Heading is atan2(vx, vz), measured from +z toward +x
		hx := float32(math.Sin(v.Heading))
		hz := float32(math.Cos(v.Heading))
		nose := rl.Vector2{X: sx + hx*rs*1.4, Y: sy + hz*rs*1.4}
		rl.DrawLineEx(rl.Vector2{X: sx, Y: sy}, nose, 1.5, rl.Fade(rl.Black, float32(body.A)/255*0.7))
	}

	if r.ShowBars && v.Alive {
		r.drawBars(sx, sy-rs-4, v.Bars())
	}
}

// drawBars stacks vital bars upward from a screen point.
func (r *AgentRenderer) drawBars(cx, bottom float32, bars []views.Bar) {
	x := cx - barWidth/2
	y := bottom - float32(len(bars))*(barHeight+barSpacing)
	for _, b := range bars {
		rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: barWidth, Height: barHeight}, barBack)
		fill := barFill
		if b.Warn {
			fill = barWarn
		}
		rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: barWidth * float32(b.Value), Height: barHeight}, fill)
		y += barHeight + barSpacing
	}
}
