package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/meadow/camera"
	"github.com/pthm-cable/meadow/systems"
)

// groundTexels is the edge length of the baked ground texture.
const groundTexels = 256

// TerrainRenderer renders the ground with noise shading, plus lakes and trees.
type TerrainRenderer struct {
	terrain *systems.Terrain
	noise   opensimplex.Noise

	ground      rl.Texture2D
	initialized bool
}

// NewTerrainRenderer creates a terrain renderer. seed varies the grass texture.
func NewTerrainRenderer(terrain *systems.Terrain, seed int64) *TerrainRenderer {
	return &TerrainRenderer{
		terrain: terrain,
		noise:   opensimplex.NewNormalized(seed),
	}
}

// Init bakes the ground texture (must be called after the raylib window is created).
func (r *TerrainRenderer) Init() {
	if r.initialized {
		return
	}

	img := rl.GenImageColor(groundTexels, groundTexels, rl.Black)
	r.ground = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(r.ground, rl.FilterBilinear)

	pixels := make([]color.RGBA, groundTexels*groundTexels)
	for y := 0; y < groundTexels; y++ {
		for x := 0; x < groundTexels; x++ {
			pixels[y*groundTexels+x] = r.grassColor(x, y)
		}
	}
	rl.UpdateTexture(r.ground, pixels)

	r.initialized = true
}

// grassColor returns the ground colour of one texel: two noise octaves for
// patches and tufts.
func (r *TerrainRenderer) grassColor(x, y int) rl.Color {
	fx, fy := float64(x), float64(y)
	patch := r.noise.Eval2(fx*0.02, fy*0.02)
	tuft := r.noise.Eval2(fx*0.15+300, fy*0.15+300)
	v := float32(0.7*patch + 0.3*tuft)

	return rl.Color{
		R: uint8(70 + v*30),
		G: uint8(110 + v*45),
		B: uint8(50 + v*20),
		A: 255,
	}
}

// Draw renders the ground, lakes and trees, dimmed by light in [0, 1].
func (r *TerrainRenderer) Draw(cam *camera.Camera, light float32) {
	if !r.initialized {
		r.Init()
	}

	half := float32(r.terrain.HalfExtent())
	x0, y0 := cam.WorldToScreen(-half, -half)
	x1, y1 := cam.WorldToScreen(half, half)
	rl.DrawTexturePro(r.ground,
		rl.Rectangle{Width: groundTexels, Height: groundTexels},
		rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0},
		rl.Vector2{}, 0, shade(rl.White, light))

	for _, lake := range r.terrain.Lakes() {
		r.drawLake(cam, lake, light)
	}
	for _, tree := range r.terrain.Trees() {
		r.drawTree(cam, tree, light)
	}
}

// drawLake draws a lake with a shallow rim and a darker center.
func (r *TerrainRenderer) drawLake(cam *camera.Camera, c systems.Circle, light float32) {
	x, z, radius := float32(c.Center.X), float32(c.Center.Z), float32(c.Radius)
	if !cam.IsVisible(x, z, radius) {
		return
	}
	sx, sy := cam.WorldToScreen(x, z)
	rs := radius * cam.Zoom

	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, rs+0.6*cam.Zoom, shade(rl.Color{R: 150, G: 135, B: 95, A: 255}, light))
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, rs, shade(rl.Color{R: 60, G: 120, B: 170, A: 255}, light))
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, rs*0.6, shade(rl.Color{R: 40, G: 90, B: 145, A: 255}, light))
}

// drawTree draws a trunk with a noise-tinted canopy.
func (r *TerrainRenderer) drawTree(cam *camera.Camera, c systems.Circle, light float32) {
	x, z, radius := float32(c.Center.X), float32(c.Center.Z), float32(c.Radius)
	canopy := radius * 2.5
	if !cam.IsVisible(x, z, canopy) {
		return
	}
	sx, sy := cam.WorldToScreen(x, z)

	tint := float32(r.noise.Eval2(c.Center.X*0.5+900, c.Center.Z*0.5+900))
	leaves := rl.Color{
		R: uint8(30 + tint*25),
		G: uint8(85 + tint*40),
		B: uint8(35 + tint*15),
		A: 235,
	}

	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius*cam.Zoom, shade(rl.Color{R: 95, G: 65, B: 40, A: 255}, light))
	rl.DrawCircleV(rl.Vector2{X: sx - 0.3*cam.Zoom, Y: sy - 0.3*cam.Zoom}, canopy*cam.Zoom, shade(leaves, light))

	// Highlight toward the light
	hl := rl.Color{
		R: uint8(math.Min(float64(leaves.R)+35, 255)),
		G: uint8(math.Min(float64(leaves.G)+35, 255)),
		B: uint8(math.Min(float64(leaves.B)+25, 255)),
		A: 120,
	}
	rl.DrawCircleV(rl.Vector2{X: sx - canopy*0.35*cam.Zoom, Y: sy - canopy*0.35*cam.Zoom}, canopy*0.45*cam.Zoom, shade(hl, light))
}

// Unload frees resources.
func (r *TerrainRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.ground)
		r.initialized = false
	}
}

// shade scales a colour's RGB by light in [0, 1], keeping alpha.
func shade(c rl.Color, light float32) rl.Color {
	return rl.Color{
		R: uint8(float32(c.R) * light),
		G: uint8(float32(c.G) * light),
		B: uint8(float32(c.B) * light),
		A: c.A,
	}
}
