package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/meadow/components"
)

// ErrNoPlacement is returned by Spawn when no free ground was found.
var ErrNoPlacement = errors.New("no valid spawn position")

// SpawnOptions describes a new agent.
type SpawnOptions struct {
	Adult bool

	// Position places the agent exactly. Nil samples free ground.
	Position *r3.Vec

	// GrowTimer overrides agent.grow_timer for juveniles. Ignored for adults.
	GrowTimer *int
}

// spawnInitialPopulation creates the seed adults.
func (g *Game) spawnInitialPopulation() {
	for i := 0; i < g.cfg.Population.Initial; i++ {
		if _, err := g.Spawn(SpawnOptions{Adult: true}); err != nil {
			continue // logged by Spawn
		}
		g.collector.RecordSeedSpawn()
	}
}

// Spawn creates an agent with its controller and registers it in the
// spatial index. Without an explicit position it rejection-samples the
// ground and returns ErrNoPlacement if every sample lands in a lake or tree.
func (g *Game) Spawn(opts SpawnOptions) (ecs.Entity, error) {
	var at r3.Vec
	if opts.Position != nil {
		at = *opts.Position
	} else {
		p, ok := g.findPlacement()
		if !ok {
			attempts := g.cfg.Population.SpawnAttempts
			slog.Warn("spawn_placement_failed",
				"attempts", attempts,
				"half_extent", g.half,
			)
			g.collector.RecordPlacementFailure()
			return ecs.Entity{}, fmt.Errorf("spawn after %d attempts: %w", attempts, ErrNoPlacement)
		}
		at = p
	}

	id := g.nextID
	g.nextID++

	var agent components.Agent
	if opts.Adult {
		agent = components.NewAdult(id, g.limits)
	} else {
		grow := g.cfg.Agent.GrowTimer
		if opts.GrowTimer != nil {
			grow = *opts.GrowTimer
		}
		agent = components.NewJuvenile(id, g.limits, grow)
	}

	pos := components.Position{Vec: at}
	vel := components.Velocity{}
	ctrl := components.Controller{State: components.StateIdle}

	e := g.agentMapper.NewEntity(&pos, &vel, &agent, &ctrl)
	g.index.RegisterAgent(e, g.cfg.Agent.Radius)
	g.lifetimeTracker.Register(id, g.tick, opts.Adult)

	slog.Debug("agent_spawned", "id", id, "adult", opts.Adult, "x", at.X, "z", at.Z)
	return e, nil
}

// findPlacement samples up to population.spawn_attempts points inside the
// spawn extent and returns the first outside every lake and tree.
func (g *Game) findPlacement() (r3.Vec, bool) {
	ext := g.spawnExtent
	for i := 0; i < g.cfg.Population.SpawnAttempts; i++ {
		x := (g.rng.Float64()*2 - 1) * ext
		z := (g.rng.Float64()*2 - 1) * ext
		if g.terrain.InLake(x, z) || g.terrain.InTree(x, z) {
			continue
		}
		return r3.Vec{X: x, Z: z}, true
	}
	return r3.Vec{}, false
}

// queueBirth defers an offspring until the controller query has finished.
func (g *Game) queueBirth(pos r3.Vec) {
	g.births = append(g.births, pos)
}

// flushBirths spawns every queued offspring as a juvenile.
func (g *Game) flushBirths() {
	for i := range g.births {
		if _, err := g.Spawn(SpawnOptions{Position: &g.births[i]}); err != nil {
			slog.Error("failed to spawn offspring", "error", err)
			continue
		}
		g.collector.RecordBirth()
	}
	g.births = g.births[:0]
}

// pruneDead removes dead agents whose controller has observed the death and
// whose presentation has finished.
func (g *Game) pruneDead() {
	// First pass: collect (no structural changes during a query)
	g.removals = g.removals[:0]
	query := g.agentFilter.Query()
	for query.Next() {
		_, _, agent, ctrl := query.Get()
		if agent.Alive || ctrl.State != components.StateDead {
			continue
		}
		if !g.gate.ReadyToRemove(agent.ID) {
			continue
		}
		g.removals = append(g.removals, query.Entity())
	}

	// Second pass: remove entities (query iteration complete)
	for _, e := range g.removals {
		id := g.agentMap.Get(e).ID
		g.index.RemoveAgent(e)
		g.lifetimeTracker.Remove(id)
		g.world.RemoveEntity(e)
		slog.Debug("agent_removed", "id", id)
	}
}
