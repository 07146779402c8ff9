package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/systems"
)

const (
	buttonHeight = 24
	buttonGap    = 6
)

// ControlsPanel renders the control panel: clock mode, time and simulation
// pause, rain, and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the panel.
func (c *ControlsPanel) Contains(p rl.Vector2) bool {
	return c.visible && rl.CheckCollisionPointRec(p, c.bounds())
}

func (c *ControlsPanel) bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height())}
}

func (c *ControlsPanel) height() int32 {
	r := c.renderer
	rows := int32(4) // Clock modes, pauses, rain toggle, intensity
	h := r.Theme.Padding*2 + r.Theme.LineHeight*3 + rows*(buttonHeight+buttonGap)
	return h + int32(numOverlays)*r.Theme.LineHeight + r.Theme.LineHeight // Overlay toggles
}

// Draw renders the panel and applies any control the user clicked.
func (c *ControlsPanel) Draw(g *game.Game, overlays *Overlays) {
	if !c.visible {
		return
	}

	r := c.renderer
	padding := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.height())

	x := float32(c.x + padding)
	y := c.y + padding
	inner := float32(c.width - padding*2)

	// Clock
	clock := g.Clock()
	y = r.DrawSectionHeader(int32(x), y, fmt.Sprintf("Time  %s", clock.ClockString()))
	third := (inner - 2*buttonGap) / 3
	modes := []struct {
		label string
		mode  systems.ClockMode
		set   func()
	}{
		{"Day", systems.ClockDay, clock.SetDay},
		{"Night", systems.ClockNight, clock.SetNight},
		{"Auto", systems.ClockAuto, clock.SetAuto},
	}
	for i, m := range modes {
		bx := x + float32(i)*(third+buttonGap)
		if gui.Button(rl.Rectangle{X: bx, Y: float32(y), Width: third, Height: buttonHeight}, m.label) {
			m.set()
		}
		if clock.Mode == m.mode {
			rl.DrawRectangleLinesEx(rl.Rectangle{X: bx - 1, Y: float32(y) - 1, Width: third + 2, Height: buttonHeight + 2}, 2, rl.Yellow)
		}
	}
	y += buttonHeight + buttonGap

	half := (inner - buttonGap) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: buttonHeight}, toggleText(g.TimePaused(), "Resume Time", "Pause Time")) {
		g.ToggleTimePaused()
	}
	if gui.Button(rl.Rectangle{X: x + half + buttonGap, Y: float32(y), Width: half, Height: buttonHeight}, toggleText(g.SimulationPaused(), "Resume Sim", "Pause Sim")) {
		g.ToggleSimulationPaused()
	}
	y += buttonHeight + buttonGap

	// Weather
	weather := g.Weather()
	y = r.DrawSectionHeader(int32(x), y, "Weather")
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: buttonHeight}, toggleText(weather.Raining, "Stop Rain", "Start Rain")) {
		weather.Toggle()
	}
	y += buttonHeight + buttonGap

	intensity := gui.SliderBar(
		rl.Rectangle{X: x + 60, Y: float32(y), Width: inner - 100, Height: buttonHeight - 4},
		"Intensity", fmt.Sprintf("%.2f", weather.Intensity),
		float32(weather.Intensity), 0, 1,
	)
	if float64(intensity) != weather.Intensity {
		weather.SetIntensity(float64(intensity))
	}
	y += buttonHeight + buttonGap

	// Overlays
	y = r.DrawSectionHeader(int32(x), y, "Overlays")
	for _, id := range overlays.All() {
		if c.drawToggle(int32(x), y, id, overlays.Enabled(id), int32(inner)) {
			overlays.Toggle(id)
		}
		y += r.Theme.LineHeight
	}
}

// drawToggle draws one overlay line and reports whether it was clicked.
func (c *ControlsPanel) drawToggle(x, y int32, id Overlay, enabled bool, width int32) bool {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(id.Name(), x+14, y, r.Theme.FontSize, nameColor)

	if key := id.KeyName(); key != "" {
		keyText := fmt.Sprintf("[%s]", key)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}

	line := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(r.Theme.LineHeight)}
	return rl.IsMouseButtonPressed(rl.MouseButtonLeft) && rl.CheckCollisionPointRec(rl.GetMousePosition(), line)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
