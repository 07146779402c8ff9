package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/meadow/components"
)

// onStateChange counts drinks and meals as they start.
func (g *Game) onStateChange(_ ecs.Entity, a *components.Agent, _, to components.State) {
	switch to {
	case components.StateDrinking:
		g.collector.RecordDrink()
		g.lifetimeTracker.RecordDrink(a.ID)
	case components.StateEating:
		g.collector.RecordMeal()
		g.lifetimeTracker.RecordMeal(a.ID)
	}
}

// onMate records a completed mating. The offspring is counted when the
// queued birth is spawned.
func (g *Game) onMate(a, b *components.Agent, at r3.Vec) {
	g.collector.RecordMating()
	g.lifetimeTracker.RecordMating(a.ID, b.ID)
	slog.Debug("agent_mated", "a", a.ID, "b", b.ID, "x", at.X, "z", at.Z)
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	g.samplePopulation()

	stats := g.collector.Flush(g.tick, g.sample)
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	if err := g.outputManager.WriteDeaths(g.deathRecords); err != nil {
		slog.Error("failed to write deaths", "error", err)
	}
	g.deathRecords = g.deathRecords[:0]

	// Check for bookmarks
	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// samplePopulation fills g.sample with the end-of-window population state.
func (g *Game) samplePopulation() {
	g.sample.Reset()

	query := g.agentFilter.Query()
	for query.Next() {
		_, _, agent, ctrl := query.Get()

		if !agent.Alive {
			g.sample.Dying++
			continue
		}

		g.sample.Alive++
		if agent.Adult {
			g.sample.Adults++
		} else {
			g.sample.Juveniles++
		}
		if ctrl.State.Valid() {
			g.sample.States[ctrl.State]++
		}
		g.sample.Life = append(g.sample.Life, agent.LifeFrac())
		g.sample.Hunger = append(g.sample.Hunger, agent.HungerFrac())
		g.sample.Thirst = append(g.sample.Thirst, agent.ThirstFrac())
	}
}
