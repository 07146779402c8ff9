package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Clock      string // "hh:mm AM"
	Day        bool
	Raining    bool
	Population game.Population
	Tick       int32
	FPS        int32
	SimPaused  bool
	TimePaused bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	phase := "Night"
	if data.Day {
		phase = "Day"
	}
	if data.Raining {
		phase += ", raining"
	}
	rl.DrawText(fmt.Sprintf("%s  (%s)", data.Clock, phase), 10, 35, 16, rl.LightGray)

	p := data.Population
	rl.DrawText(
		fmt.Sprintf("Alive: %d | Adults: %d | Juveniles: %d | Dying: %d", p.Alive, p.Adults, p.Juveniles, p.Dead),
		10, 55, 16, rl.LightGray,
	)

	rl.DrawText(fmt.Sprintf("Tick: %d | FPS: %d", data.Tick, data.FPS), 10, 75, 16, rl.LightGray)

	switch {
	case data.SimPaused:
		rl.DrawText("PAUSED", 10, 95, 16, rl.Yellow)
	case data.TimePaused:
		rl.DrawText("TIME PAUSED", 10, 95, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the step phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, ph := range telemetry.Phases() {
		pct := stats.PhasePct[ph]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", ph, stats.PhaseAvg[ph].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}

	if stats.FrameDuration > 0 {
		rl.DrawText(fmt.Sprintf("Frame: %s", stats.FrameDuration.Round(time.Microsecond)), x, y+4, 12, rl.LightGray)
	}
}
