package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/meadow/telemetry"
)

// Update advances the simulation by one step. elapsed is the real time
// since the previous call and drives the clock and aging timer; controllers
// always step by physics.dt.
func (g *Game) Update(elapsed time.Duration) {
	if g.simPaused {
		return
	}
	g.step(elapsed)
}

// UpdateHeadless runs StepsPerUpdate steps, each feeding physics.dt as the
// elapsed real time.
func (g *Game) UpdateHeadless() {
	dt := time.Duration(g.cfg.Physics.DT * float64(time.Second))
	for i := 0; i < g.stepsPerUpdate; i++ {
		if g.simPaused {
			return
		}
		g.step(dt)
	}
}

// step runs a single tick of the simulation.
func (g *Game) step(elapsed time.Duration) {
	g.perfCollector.StartTick()

	// 1. Day/night clock
	g.perfCollector.StartPhase(telemetry.PhaseClock)
	if !g.timePaused {
		g.clock.Advance(elapsed.Seconds())
	}

	// 2. Controllers
	g.perfCollector.StartPhase(telemetry.PhaseControllers)
	g.controllers.Update(g.cfg.Physics.DT)

	// 3. Offspring queued by matings
	g.perfCollector.StartPhase(telemetry.PhaseBirths)
	g.flushBirths()

	// 4. Vital ticks at the fixed real-time interval
	g.perfCollector.StartPhase(telemetry.PhaseAging)
	for n := g.aging.Advance(elapsed); n > 0; n-- {
		g.ageAgents()
	}

	// 5. Remove dead agents whose presentation finished
	g.perfCollector.StartPhase(telemetry.PhasePrune)
	g.pruneDead()

	g.tick++

	// 6. Stats window
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// ageAgents calls Tick on every agent and records new deaths.
func (g *Game) ageAgents() {
	dt := g.cfg.Physics.DT

	query := g.agentFilter.Query()
	for query.Next() {
		_, _, agent, _ := query.Get()
		if !agent.Alive {
			continue
		}

		agent.Tick()

		if g.debug {
			if err := agent.Validate(); err != nil {
				panic(fmt.Errorf("agent %d after tick: %w", agent.ID, err))
			}
		}

		if agent.Alive {
			continue
		}

		cause := agent.Cause()
		slog.Debug("agent_died", "id", agent.ID, "cause", cause.String())

		g.lifetimeTracker.UpdateSurvivalTime(agent.ID, g.tick, dt)
		ls := g.lifetimeTracker.Get(agent.ID)
		var lifespan float64
		if ls != nil {
			lifespan = ls.SurvivalTimeSec
		}
		g.collector.RecordDeath(cause, lifespan)
		g.deathRecords = append(g.deathRecords, telemetry.NewDeathRecord(agent, g.tick, ls))
	}
}
