// Terrain preview tool - interactive lake and tree placement with sliders.
//
// Usage: go run ./cmd/terrainpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 560
	panelWidth   = windowWidth - previewSize - 30
)

// slider lays out labelled sliders down the control panel.
type slider struct {
	x, y float32
}

func (s *slider) next(label, format string, value, lo, hi float32) float32 {
	rl.DrawText(label, int32(s.x), int32(s.y), 14, rl.Gray)
	s.y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: s.x, Y: s.y, Width: float32(panelWidth - 80), Height: 20},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(s.x+float32(panelWidth-70)), int32(s.y+2), 16, rl.DarkGray)
	s.y += 32
	return v
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	seed := cfg.Terrain.Seed
	if seed == 0 {
		seed = 12345
	}
	// The slider owns the seed.
	defaults := cfg.Terrain
	defaults.Seed = 0
	params := defaults
	half := cfg.Derived.HalfExtent

	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	terrain := systems.GenerateTerrain(params, half, seed)
	needsRegen := false

	for !rl.WindowShouldClose() {
		if needsRegen {
			terrain = systems.GenerateTerrain(params, half, seed)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawTerrain(terrain, half)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Lakes: %d/%d  Trees: %d/%d",
			len(terrain.Lakes()), params.NumLakes, len(terrain.Trees()), params.NumTrees), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Ground: %.0f x %.0f  Seed: %d", half*2, half*2, seed), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		s := &slider{x: float32(previewSize + 20), y: 10}
		rl.DrawText("Terrain Parameters", int32(s.x), int32(s.y), 20, rl.DarkGray)
		s.y += 35

		before := params
		params.NumLakes = int(s.next("Lakes", "%.0f", float32(params.NumLakes), 0, 30))
		params.LakeMinRadius = float64(s.next("Lake min radius", "%.1f", float32(params.LakeMinRadius), 1, 30))
		params.LakeMaxRadius = float64(s.next("Lake max radius", "%.1f", float32(params.LakeMaxRadius), 1, 40))
		params.LakeMaxRadius = max(params.LakeMaxRadius, params.LakeMinRadius)
		params.NumTrees = int(s.next("Trees", "%.0f", float32(params.NumTrees), 0, 300))
		params.MinTreeDistance = float64(s.next("Min tree distance", "%.1f", float32(params.MinTreeDistance), 0, 30))
		params.NoiseScale = float64(s.next("Noise scale", "%.3f", float32(params.NoiseScale), 0.002, 0.1))
		params.LakeThreshold = float64(s.next("Lake threshold (noise below)", "%.2f", float32(params.LakeThreshold), 0, 1))
		params.TreeThreshold = float64(s.next("Tree threshold (noise above)", "%.2f", float32(params.TreeThreshold), 0, 1))
		if params != before {
			needsRegen = true
		}

		newSeed := int64(s.next("Seed", "%.0f", float32(seed), 1, 99999))
		if newSeed != seed {
			seed = newSeed
			needsRegen = true
		}
		s.y += 10

		if gui.Button(rl.Rectangle{X: s.x, Y: s.y, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(1, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: s.x + 130, Y: s.y, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		s.y += 45

		yaml := terrainYAML(params)
		rl.DrawText("YAML Config:", int32(s.x), int32(s.y), 16, rl.DarkGray)
		s.y += 22
		for _, line := range strings.Split(yaml, "\n") {
			rl.DrawText(line, int32(s.x), int32(s.y), 12, rl.Gray)
			s.y += 14
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(previewSize+20), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// drawTerrain draws the ground square with its lakes and trees.
func drawTerrain(t *systems.Terrain, half float64) {
	scale := float32(previewSize) / float32(2*half)
	toScreen := func(x, z float64) rl.Vector2 {
		return rl.Vector2{
			X: 10 + float32(x+half)*scale,
			Y: 10 + float32(z+half)*scale,
		}
	}

	rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Color{R: 96, G: 140, B: 70, A: 255})
	for _, l := range t.Lakes() {
		rl.DrawCircleV(toScreen(l.Center.X, l.Center.Z), float32(l.Radius)*scale, rl.Color{R: 50, G: 110, B: 180, A: 255})
	}
	for _, tr := range t.Trees() {
		r := max(float32(tr.Radius)*scale, 1.5)
		rl.DrawCircleV(toScreen(tr.Center.X, tr.Center.Z), r, rl.Color{R: 30, G: 80, B: 35, A: 255})
	}
	rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
}

func terrainYAML(p config.TerrainConfig) string {
	return fmt.Sprintf(`terrain:
  num_lakes: %d
  lake_min_radius: %.1f
  lake_max_radius: %.1f
  num_trees: %d
  min_tree_distance: %.1f
  noise_scale: %.3f
  lake_threshold: %.2f
  tree_threshold: %.2f`,
		p.NumLakes, p.LakeMinRadius, p.LakeMaxRadius, p.NumTrees,
		p.MinTreeDistance, p.NoiseScale, p.LakeThreshold, p.TreeThreshold)
}
