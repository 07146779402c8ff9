package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxDrops is the number of rain streaks at intensity 1.
const maxDrops = 600

// raindrop is one falling streak in normalized screen space.
type raindrop struct {
	X, Y  float32 // 0-1
	Speed float32 // Screen heights per second
	Len   float32 // Pixels
}

// SkyRenderer renders lighting overlays: night darkening, the sun glow
// and rain streaks.
type SkyRenderer struct {
	width  float32
	height float32

	rng   *rand.Rand
	drops []raindrop
}

// NewSkyRenderer creates a sky renderer for the given screen size.
func NewSkyRenderer(width, height int32, seed int64) *SkyRenderer {
	r := &SkyRenderer{
		width:  float32(width),
		height: float32(height),
		rng:    rand.New(rand.NewSource(seed)),
		drops:  make([]raindrop, maxDrops),
	}
	for i := range r.drops {
		r.resetDrop(&r.drops[i], r.rng.Float32())
	}
	return r
}

// Resize updates screen dimensions.
func (r *SkyRenderer) Resize(width, height float32) {
	r.width = width
	r.height = height
}

// LightLevel converts a night factor in [0, 1] to a colour multiplier for
// world drawing. Midnight keeps a quarter of the light.
func LightLevel(nightFactor float64) float32 {
	return float32(1 - 0.75*nightFactor)
}

// Draw renders the sun glow and night tint. sunAngle is in radians above the
// eastern horizon.
func (r *SkyRenderer) Draw(sunAngle, nightFactor float64) {
	// Sun arcs across the top of the screen during the day
	if s := math.Sin(sunAngle); s > 0 {
		sunX := float32(0.5+0.45*math.Cos(sunAngle)) * r.width
		sunY := float32(0.2-0.12*s) * r.height
		r.drawSunGlow(sunX, sunY, float32(s))
	}

	tint := uint8(110 * nightFactor)
	if tint > 0 {
		rl.DrawRectangle(0, 0, int32(r.width), int32(r.height), rl.Color{R: 10, G: 15, B: 40, A: tint})
	}
}

// DrawRain advances and renders rain streaks. intensity in [0, 1] scales the
// number of visible drops.
func (r *SkyRenderer) DrawRain(intensity float64, dt float32) {
	n := int(float64(len(r.drops)) * math.Min(math.Max(intensity, 0), 1))
	if n == 0 {
		return
	}

	color := rl.Color{R: 170, G: 190, B: 220, A: uint8(90 + 80*intensity)}
	for i := 0; i < n; i++ {
		d := &r.drops[i]
		d.Y += d.Speed * dt
		if d.Y > 1 {
			r.resetDrop(d, 0)
		}

		x := d.X * r.width
		y := d.Y * r.height
		// Slight wind slant
		rl.DrawLineV(rl.Vector2{X: x, Y: y}, rl.Vector2{X: x - d.Len*0.2, Y: y - d.Len}, color)
	}

	// Overcast
	rl.DrawRectangle(0, 0, int32(r.width), int32(r.height), rl.Color{R: 40, G: 50, B: 65, A: uint8(50 * intensity)})
}

func (r *SkyRenderer) resetDrop(d *raindrop, y float32) {
	d.X = r.rng.Float32()
	d.Y = y
	d.Speed = 1.2 + r.rng.Float32()*0.8
	d.Len = 8 + r.rng.Float32()*10
}

// drawSunGlow draws the sun glow effect.
func (r *SkyRenderer) drawSunGlow(x, y, intensity float32) {
	glowLayers := []struct {
		radius float32
		alpha  float32
	}{
		{50, 8},
		{30, 15},
		{18, 25},
		{10, 50},
	}

	for _, layer := range glowLayers {
		alpha := layer.alpha * intensity
		color := rl.Color{R: 255, G: 220, B: 180, A: uint8(alpha)}
		rl.DrawCircle(int32(x), int32(y), layer.radius, color)
	}

	// Bright core
	coreAlpha := uint8(200 * intensity)
	rl.DrawCircle(int32(x), int32(y), 4, rl.Color{R: 255, G: 250, B: 230, A: coreAlpha})
}
