package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// up is the world up axis; agents move in the plane it is normal to.
var up = r3.Vec{Y: 1}

// planar drops the vertical component of v.
func planar(v r3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Z: v.Z}
}

// planarDist returns the distance between a and b in the XZ plane.
func planarDist(a, b r3.Vec) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// unitOr normalizes v, returning fallback for a zero vector.
func unitOr(v, fallback r3.Vec) r3.Vec {
	if r3.Norm2(v) == 0 {
		return fallback
	}
	return r3.Unit(v)
}

// lerp interpolates between a and b.
func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// inBounds reports whether p lies on the ground [-half, half]².
func inBounds(p r3.Vec, half float64) bool {
	return math.Abs(p.X) <= half && math.Abs(p.Z) <= half
}

// clampToGround pulls p back onto the ground.
func clampToGround(p r3.Vec, half float64) r3.Vec {
	p.X = clampFloat(p.X, -half, half)
	p.Z = clampFloat(p.Z, -half, half)
	return p
}

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}

// ringPoint returns a point on the circle of radius r around center at angle.
func ringPoint(center r3.Vec, r, angle float64) r3.Vec {
	return r3.Vec{
		X: center.X + math.Cos(angle)*r,
		Y: center.Y,
		Z: center.Z + math.Sin(angle)*r,
	}
}
