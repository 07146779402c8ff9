package main

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/camera"
	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/renderer"
	"github.com/pthm-cable/meadow/ui"
	"github.com/pthm-cable/meadow/views"
)

// selectRadius is the click pick distance in screen pixels.
const selectRadius = 12

// viewer owns the graphical presentation of one game.
type viewer struct {
	game    *game.Game
	tracker *views.Tracker

	camera        *camera.Camera
	terrain       *renderer.TerrainRenderer
	agents        *renderer.AgentRenderer
	sky           *renderer.SkyRenderer
	hud           *ui.HUD
	controls      *ui.ControlsPanel
	inspector     *ui.Inspector
	perfPanel     *ui.PerfPanel
	overlays      *ui.Overlays
	snapshots     []game.AgentSnapshot
	selectedID    uint32
	screenW       float32
	screenH       float32
	frameDuration float32
}

func newViewer(g *game.Game, tracker *views.Tracker) *viewer {
	cfg := g.Config()
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	half := float32(g.Terrain().HalfExtent())

	v := &viewer{
		game:      g,
		tracker:   tracker,
		camera:    camera.New(w, h, half),
		terrain:   renderer.NewTerrainRenderer(g.Terrain(), g.Seed()),
		agents:    renderer.NewAgentRenderer(cfg.Agent.Radius, cfg.Presentation.DeathDuration),
		sky:       renderer.NewSkyRenderer(int32(w), int32(h), g.Seed()),
		hud:       ui.NewHUD(),
		controls:  ui.NewControlsPanel(int32(w)-230, 10, 220),
		inspector: ui.NewInspector(10, 125, 220),
		perfPanel: ui.NewPerfPanel(10, int32(h)-160),
		overlays:  ui.NewOverlays(),
		screenW:   w,
		screenH:   h,
	}
	v.terrain.Init()
	v.snapshots = g.Snapshot(v.snapshots)
	v.tracker.Sync(v.snapshots, 0)
	return v
}

// Update handles input, advances the simulation by one step and syncs views.
func (v *viewer) Update(frameTime float32) {
	v.frameDuration = frameTime
	v.handleInput()

	v.game.Update(time.Duration(float64(frameTime) * float64(time.Second)))
	v.game.RecordFrame()

	v.snapshots = v.game.Snapshot(v.snapshots)
	v.tracker.Sync(v.snapshots, float64(frameTime))

	if v.selectedID != 0 {
		if _, ok := game.FindByID(v.snapshots, v.selectedID); !ok {
			v.selectedID = 0
		}
	}
}

// Draw renders one frame.
func (v *viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 25, G: 30, B: 25, A: 255})

	clock := v.game.Clock()
	light := renderer.LightLevel(clock.NightFactor())

	v.terrain.Draw(v.camera, light)

	v.agents.ShowBars = v.overlays.Enabled(ui.OverlayVitalBars)
	v.agents.ShowHeadings = v.overlays.Enabled(ui.OverlayHeadings)
	v.agents.Draw(v.camera, v.tracker, v.snapshots, v.selectedID, light)

	v.sky.Draw(clock.SunAngle(), clock.NightFactor())
	if v.overlays.Enabled(ui.OverlayRain) {
		v.sky.DrawRain(v.game.Weather().EffectiveIntensity(), v.frameDuration)
	}

	v.drawUI()

	rl.EndDrawing()
}

func (v *viewer) drawUI() {
	clock := v.game.Clock()
	v.hud.Draw(ui.HUDData{
		Title:      "Meadow",
		Clock:      clock.ClockString(),
		Day:        clock.IsDay(),
		Raining:    v.game.Weather().Raining,
		Population: v.game.Population(),
		Tick:       v.game.Tick(),
		FPS:        rl.GetFPS(),
		SimPaused:  v.game.SimulationPaused(),
		TimePaused: v.game.TimePaused(),
	})

	v.controls.Draw(v.game, v.overlays)

	if v.selectedID != 0 {
		if snap, ok := game.FindByID(v.snapshots, v.selectedID); ok {
			v.inspector.Draw(snap)
		}
	}

	if v.overlays.Enabled(ui.OverlayPerf) {
		v.perfPanel.Draw(v.game.PerfStats())
	}

	v.hud.DrawControls(int32(v.screenH), "Space: pause | T: pause time | R: rain | Arrows/wheel: camera | Home: reset | Click: select | Tab: panel")
}

// handleInput processes keyboard and mouse input.
func (v *viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		v.game.ToggleSimulationPaused()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		v.game.ToggleTimePaused()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.game.Weather().Toggle()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		v.controls.Toggle()
	}
	v.overlays.HandleKeys()

	v.handleCameraInput()
	v.handleSelection()
}

// handleResize checks for window resize and propagates new dimensions.
func (v *viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == v.screenW && h == v.screenH {
		return
	}
	v.screenW = w
	v.screenH = h

	v.camera.Resize(w, h)
	v.sky.Resize(w, h)
	v.controls.SetPosition(int32(w)-230, 10)
	v.perfPanel.SetPosition(10, int32(h)-160)
}

// handleCameraInput processes camera pan/zoom controls.
func (v *viewer) handleCameraInput() {
	panSpeed := float32(8.0)

	if rl.IsKeyDown(rl.KeyRight) {
		v.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.camera.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		v.camera.Reset()
	}
}

// handleSelection picks the living agent under the cursor on click.
func (v *viewer) handleSelection() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	if v.controls.Contains(mouse) {
		return
	}

	wx, wz := v.camera.ScreenToWorld(mouse.X, mouse.Y)
	if !v.camera.OnGround(wx, wz) {
		v.selectedID = 0
		return
	}
	snap, ok := game.AgentAt(v.snapshots, float64(wx), float64(wz), float64(selectRadius/v.camera.Zoom))
	if !ok {
		v.selectedID = 0
		return
	}
	v.selectedID = snap.ID
}

// Unload frees renderer resources.
func (v *viewer) Unload() {
	v.terrain.Unload()
}
