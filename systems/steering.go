package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
)

// SteerResult is the outcome of one steering step.
type SteerResult struct {
	Next        r3.Vec // Candidate position
	Dir         r3.Vec // Final unit direction (zero when already at target)
	Step        float64
	Collided    bool // Candidate overlaps an obstacle footprint
	OutOfBounds bool // Candidate lies off the ground
}

// Blocked reports whether the step must be rejected.
func (r SteerResult) Blocked() bool {
	return r.Collided || r.OutOfBounds
}

// Displacement returns the movement the step would realize.
func (r SteerResult) Displacement() r3.Vec {
	return r3.Scale(r.Step, r.Dir)
}

// Steerer computes local steering against a spatial index.
// Scratch buffers are reused between calls; a Steerer is not safe for
// concurrent use.
type Steerer struct {
	Index *SpatialIndex
	Cfg   config.SteeringConfig
	Half  float64 // Ground half-extent

	obstacles []WorldObject
	neighbors []WorldObject
}

// NewSteerer creates a steerer bound to index.
func NewSteerer(index *SpatialIndex, cfg config.SteeringConfig, half float64) *Steerer {
	return &Steerer{Index: index, Cfg: cfg, Half: half}
}

// Steer computes the next position for self at pos moving toward target.
// The desired direction is bent by avoidance of obstacles ahead and, for
// states that separate, pushed away from nearby agents.
func (s *Steerer) Steer(self ecs.Entity, pos, target r3.Vec, state components.State, delta float64) SteerResult {
	cfg := &s.Cfg
	desired := unitOr(planar(r3.Sub(target, pos)), r3.Vec{})

	s.obstacles = s.Index.ObstaclesAround(s.obstacles[:0], pos, cfg.ObstacleQuery)

	var avoidance r3.Vec
	for _, obs := range s.obstacles {
		toObs := planar(r3.Sub(obs.Position, pos))
		dist := r3.Norm(toObs)
		if dist == 0 || dist >= obs.Radius+cfg.AvoidRange {
			continue
		}
		dirToObs := r3.Scale(1/dist, toObs)
		if r3.Dot(desired, dirToObs) <= 0 {
			continue
		}
		strength := s.obstacleStrength(obs.Kind, state)
		avoidDir := unitOr(r3.Cross(dirToObs, up), r3.Vec{})
		avoidance = r3.Add(avoidance, r3.Scale(strength/dist, avoidDir))
	}

	var separation r3.Vec
	if state.Separates() {
		radius := cfg.SeparationRadius
		s.neighbors = s.Index.AgentsAround(s.neighbors[:0], pos, radius, self)
		for _, other := range s.neighbors {
			toMe := r3.Sub(pos, other.Position)
			dist := r3.Norm(toMe)
			if dist < radius && dist > 0.01 {
				separation = r3.Add(separation, r3.Scale((radius-dist)/dist, toMe))
			}
		}
	}

	res := SteerResult{
		Dir:  unitOr(r3.Add(r3.Add(desired, avoidance), separation), r3.Vec{}),
		Step: cfg.Speed * delta,
	}
	res.Next = r3.Add(pos, r3.Scale(res.Step, res.Dir))

	for _, obs := range s.obstacles {
		if planarDist(obs.Position, res.Next) < obs.Radius+cfg.CollisionMargin {
			res.Collided = true
			break
		}
	}
	res.OutOfBounds = !inBounds(res.Next, s.Half)
	return res
}

func (s *Steerer) obstacleStrength(kind components.Kind, state components.State) float64 {
	switch kind {
	case components.KindWater:
		return s.Cfg.WaterStrength
	case components.KindFood:
		if state == components.StateSeekingWater {
			return s.Cfg.FoodStrengthThirsty
		}
		return s.Cfg.FoodStrength
	default:
		return 1
	}
}

// ResolveOverlaps pushes self and every agent closer than the overlap
// distance apart by half the penetration each. Positions stay on the ground.
func (s *Steerer) ResolveOverlaps(self ecs.Entity, pos *components.Position, posMap *ecs.Map1[components.Position]) {
	minDist := s.Cfg.OverlapDistance
	s.neighbors = s.Index.AgentsAround(s.neighbors[:0], pos.Vec, minDist, self)
	for _, other := range s.neighbors {
		otherPos := posMap.Get(other.Entity)
		away := r3.Sub(pos.Vec, otherPos.Vec)
		dist := r3.Norm(away)
		if dist >= minDist || dist <= 0.01 {
			continue
		}
		push := r3.Scale((minDist-dist)/2/dist, away)
		pos.Vec = clampToGround(r3.Add(pos.Vec, push), s.Half)
		otherPos.Vec = clampToGround(r3.Sub(otherPos.Vec, push), s.Half)
	}
}

// WanderTarget samples a point within the wander radius of pos that lies on
// the ground. Falls back to the origin when every attempt fails.
func (s *Steerer) WanderTarget(rng *rand.Rand, pos r3.Vec) r3.Vec {
	for i := 0; i < s.Cfg.WanderAttempts; i++ {
		angle := rng.Float64() * 2 * math.Pi
		r := rng.Float64() * s.Cfg.WanderRadius
		p := r3.Vec{X: pos.X + math.Cos(angle)*r, Z: pos.Z + math.Sin(angle)*r}
		if inBounds(p, s.Half) {
			return p
		}
	}
	return r3.Vec{}
}

// RimPoint returns the point just outside the water's edge facing pos.
func (s *Steerer) RimPoint(water WorldObject, pos r3.Vec) r3.Vec {
	fromCenter := unitOr(planar(r3.Sub(pos, water.Position)), r3.Vec{X: 1})
	return r3.Add(water.Position, r3.Scale(water.Radius+s.Cfg.RimClearance, fromCenter))
}

// ApproachPoint returns a random point around obj at a distance of
// obj.Radius + offset + U[0, spread). Used to come at an obstacle from a
// different side after a blocked step.
func (s *Steerer) ApproachPoint(rng *rand.Rand, obj WorldObject) r3.Vec {
	offset := s.Cfg.TreeApproachMin
	if obj.Kind == components.KindWater {
		offset = s.Cfg.LakeApproachMin
	}
	angle := rng.Float64() * 2 * math.Pi
	r := obj.Radius + offset + rng.Float64()*s.Cfg.ApproachSpread
	p := ringPoint(obj.Position, r, angle)
	p.Y = 0
	return p
}
