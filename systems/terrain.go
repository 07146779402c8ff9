package systems

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/meadow/config"
)

// Circle is a circular footprint on the ground.
type Circle struct {
	Center r3.Vec
	Radius float64
}

// Contains reports whether (x, z) lies strictly inside the footprint.
func (c Circle) Contains(x, z float64) bool {
	return math.Hypot(x-c.Center.X, z-c.Center.Z) < c.Radius
}

// Terrain is the static ground: a square of half-extent Half centered on
// the origin, with lakes (water) and trees (food).
type Terrain struct {
	half  float64
	lakes []Circle
	trees []Circle
}

// NewTerrain builds a terrain from fixed footprints.
func NewTerrain(half float64, lakes, trees []Circle) *Terrain {
	return &Terrain{half: half, lakes: lakes, trees: trees}
}

// HalfExtent returns half the ground edge length.
func (t *Terrain) HalfExtent() float64 { return t.half }

// Lakes returns the water footprints.
func (t *Terrain) Lakes() []Circle { return t.lakes }

// Trees returns the food footprints.
func (t *Terrain) Trees() []Circle { return t.trees }

// InLake reports whether (x, z) lies inside any lake.
func (t *Terrain) InLake(x, z float64) bool {
	return anyContains(t.lakes, x, z)
}

// InTree reports whether (x, z) lies inside any tree footprint.
func (t *Terrain) InTree(x, z float64) bool {
	return anyContains(t.trees, x, z)
}

func anyContains(cs []Circle, x, z float64) bool {
	for _, c := range cs {
		if c.Contains(x, z) {
			return true
		}
	}
	return false
}

// GenerateTerrain places lakes and trees by rejection sampling weighted by
// simplex noise: lakes settle in low-noise basins, trees in high-noise groves.
func GenerateTerrain(cfg config.TerrainConfig, half float64, seed int64) *Terrain {
	if cfg.Seed != 0 {
		seed = cfg.Seed
	}
	rng := rand.New(rand.NewSource(seed))
	noise := opensimplex.NewNormalized(seed)

	t := &Terrain{half: half}

	for attempts := 0; len(t.lakes) < cfg.NumLakes && attempts < cfg.MaxAttempts; attempts++ {
		r := cfg.LakeMinRadius + rng.Float64()*(cfg.LakeMaxRadius-cfg.LakeMinRadius)
		c, ok := samplePoint(rng, half-r)
		if !ok || octaveNoise(noise, c.X, c.Z, 3, cfg.NoiseScale, 0.5) >= cfg.LakeThreshold {
			continue
		}
		if overlapsAny(t.lakes, c, r, cfg.LakeSpacing) {
			continue
		}
		t.lakes = append(t.lakes, Circle{Center: c, Radius: r})
	}

	for attempts := 0; len(t.trees) < cfg.NumTrees && attempts < cfg.MaxAttempts*cfg.NumTrees; attempts++ {
		r := cfg.TreeMinRadius + rng.Float64()*(cfg.TreeMaxRadius-cfg.TreeMinRadius)
		c, ok := samplePoint(rng, half-r)
		if !ok || octaveNoise(noise, c.X+1000, c.Z+1000, 3, cfg.NoiseScale, 0.5) <= cfg.TreeThreshold {
			continue
		}
		if overlapsAny(t.lakes, c, r, cfg.LakeClearance) || tooClose(t.trees, c, cfg.MinTreeDistance) {
			continue
		}
		t.trees = append(t.trees, Circle{Center: c, Radius: r})
	}

	return t
}

// samplePoint returns a uniform point in [-extent, extent]².
func samplePoint(rng *rand.Rand, extent float64) (r3.Vec, bool) {
	if extent <= 0 {
		return r3.Vec{}, false
	}
	return r3.Vec{
		X: (rng.Float64()*2 - 1) * extent,
		Z: (rng.Float64()*2 - 1) * extent,
	}, true
}

func overlapsAny(cs []Circle, c r3.Vec, r, gap float64) bool {
	for _, o := range cs {
		if planarDist(o.Center, c) < o.Radius+r+gap {
			return true
		}
	}
	return false
}

func tooClose(cs []Circle, c r3.Vec, minDist float64) bool {
	for _, o := range cs {
		if planarDist(o.Center, c) < minDist {
			return true
		}
	}
	return false
}

// octaveNoise sums several noise octaves and normalizes to [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
