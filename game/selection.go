package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/meadow/components"
)

// AgentSnapshot is the observable state of one agent, copied out for the
// presentation layer.
type AgentSnapshot struct {
	Entity   ecs.Entity
	ID       uint32
	Position r3.Vec
	Velocity r3.Vec
	State    components.State
	Alive    bool
	Adult    bool
	Vitals   components.Vitals
	Limits   components.Limits
	// NearWater is set within steering.water_margin of a lake rim.
	NearWater bool
}

// Population counts agents by lifecycle stage.
type Population struct {
	Alive     int
	Adults    int
	Juveniles int
	Dead      int // Awaiting removal
}

// Snapshot appends the state of every agent to dst and returns it.
// Order follows ECS iteration and is not stable across removals.
func (g *Game) Snapshot(dst []AgentSnapshot) []AgentSnapshot {
	dst = dst[:0]
	margin := g.cfg.Steering.WaterMargin
	query := g.agentFilter.Query()
	for query.Next() {
		pos, vel, agent, ctrl := query.Get()
		dst = append(dst, AgentSnapshot{
			Entity:   query.Entity(),
			ID:       agent.ID,
			Position: pos.Vec,
			Velocity: vel.Vec,
			State:    ctrl.State,
			Alive:    agent.Alive,
			Adult:    agent.Adult,
			Vitals:   agent.Vitals,
			Limits:   agent.Limits,

			NearWater: g.index.IsNearWater(pos.Vec, margin),
		})
	}
	return dst
}

// Population returns the current agent counts.
func (g *Game) Population() Population {
	var p Population
	query := g.agentFilter.Query()
	for query.Next() {
		_, _, agent, _ := query.Get()
		switch {
		case !agent.Alive:
			p.Dead++
		case agent.Adult:
			p.Alive++
			p.Adults++
		default:
			p.Alive++
			p.Juveniles++
		}
	}
	return p
}

// AgentAt returns the living agent nearest to ground point (x, z) within
// maxDist, for click selection.
func AgentAt(snapshots []AgentSnapshot, x, z, maxDist float64) (AgentSnapshot, bool) {
	best := -1
	bestDist := maxDist * maxDist
	for i := range snapshots {
		s := &snapshots[i]
		if !s.Alive {
			continue
		}
		dx, dz := s.Position.X-x, s.Position.Z-z
		if d := dx*dx + dz*dz; d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 {
		return AgentSnapshot{}, false
	}
	return snapshots[best], true
}

// FindByID returns the snapshot with the given agent ID.
func FindByID(snapshots []AgentSnapshot, id uint32) (AgentSnapshot, bool) {
	for _, s := range snapshots {
		if s.ID == id {
			return s, true
		}
	}
	return AgentSnapshot{}, false
}
