// Package game runs the population: spawning, births, aging, pruning and
// telemetry around the controller system.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/systems"
	"github.com/pthm-cable/meadow/telemetry"
)

// Game holds the complete simulation state.
type Game struct {
	cfg     *config.Config
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64

	agentMapper *ecs.Map4[components.Position, components.Velocity, components.Agent, components.Controller]
	agentFilter *ecs.Filter4[components.Position, components.Velocity, components.Agent, components.Controller]
	agentMap    *ecs.Map1[components.Agent]

	terrain     *systems.Terrain
	index       *systems.SpatialIndex
	controllers *systems.ControllerSystem
	aging       *systems.AgingTimer
	clock       *systems.DayNight
	weather     *systems.Weather

	limits      components.Limits
	gate        RemovalGate
	half        float64 // Ground half-extent
	spawnExtent float64 // Spawn samples stay within ±spawnExtent

	// Offspring queued during the controller pass
	births []r3.Vec
	// Scratch for the prune pass
	removals []ecs.Entity

	// State
	tick           int32
	nextID         uint32
	simPaused      bool
	timePaused     bool
	debug          bool
	stepsPerUpdate int

	// Telemetry
	collector        *telemetry.Collector
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	deathRecords     []telemetry.DeathRecord
	sample           telemetry.Sample
}

// NewGameWithOptions creates a new game with the given options.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	gate := opts.Gate
	if gate == nil {
		gate = RemoveImmediately
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:            cfg,
		world:          world,
		rng:            rand.New(rand.NewSource(seed)),
		rngSeed:        seed,
		agentMapper:    ecs.NewMap4[components.Position, components.Velocity, components.Agent, components.Controller](world),
		agentFilter:    ecs.NewFilter4[components.Position, components.Velocity, components.Agent, components.Controller](world),
		agentMap:       ecs.NewMap1[components.Agent](world),
		index:          systems.NewSpatialIndex(world),
		aging:          systems.NewAgingTimer(time.Duration(cfg.Derived.AgingIntervalNs)),
		clock:          systems.NewDayNight(cfg.Clock),
		weather:        systems.NewWeather(cfg.Weather),
		limits:         systems.LimitsFromConfig(cfg.Agent),
		gate:           gate,
		nextID:         1,
		debug:          opts.Debug,
		stepsPerUpdate: stepsPerUpdate,

		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		perfCollector:    telemetry.NewPerfCollector(cfg.Derived.StepsPerWindow),
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,
		sample:           telemetry.NewSample(),
	}
	g.index.Margin = cfg.Steering.QueryMargin

	// Terrain
	g.terrain = opts.Terrain
	if g.terrain == nil {
		g.terrain = systems.GenerateTerrain(cfg.Terrain, cfg.Derived.HalfExtent, seed)
	}
	g.half = g.terrain.HalfExtent()
	g.spawnExtent = max(g.half-cfg.Ground.SpawnMargin, 0)
	for _, lake := range g.terrain.Lakes() {
		g.index.Register(components.KindWater, lake.Center, lake.Radius)
	}
	for _, tree := range g.terrain.Trees() {
		g.index.Register(components.KindFood, tree.Center, tree.Radius)
	}

	// Controllers
	g.controllers = systems.NewControllerSystem(world, g.index, cfg.Steering, g.half, g.rng, g.queueBirth)
	g.controllers.Hooks = systems.Hooks{
		OnStateChange: g.onStateChange,
		OnMate:        g.onMate,
	}

	// Output
	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	if !opts.SkipSeed {
		g.spawnInitialPopulation()
	}

	return g, nil
}

// Unload flushes pending output and releases resources.
func (g *Game) Unload() {
	if err := g.outputManager.WriteDeaths(g.deathRecords); err != nil {
		slog.Error("failed to write deaths", "error", err)
	}
	g.deathRecords = g.deathRecords[:0]

	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the number of simulation steps taken.
func (g *Game) Tick() int32 {
	return g.tick
}

// Seed returns the RNG seed in use.
func (g *Game) Seed() int64 {
	return g.rngSeed
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Terrain returns the terrain provider.
func (g *Game) Terrain() *systems.Terrain {
	return g.terrain
}

// Index returns the spatial index.
func (g *Game) Index() *systems.SpatialIndex {
	return g.index
}

// Clock returns the day/night clock.
func (g *Game) Clock() *systems.DayNight {
	return g.clock
}

// Weather returns the rain state.
func (g *Game) Weather() *systems.Weather {
	return g.weather
}

// PerfStats returns performance statistics for the recent window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// RecordFrame records a rendered frame for FPS tracking.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// SetSimulationPaused pauses or resumes controllers and aging together.
func (g *Game) SetSimulationPaused(paused bool) {
	g.simPaused = paused
}

// ToggleSimulationPaused flips the simulation pause.
func (g *Game) ToggleSimulationPaused() {
	g.simPaused = !g.simPaused
}

// SimulationPaused reports whether the simulation is paused.
func (g *Game) SimulationPaused() bool {
	return g.simPaused
}

// SetTimePaused pauses or resumes the day/night clock only.
func (g *Game) SetTimePaused(paused bool) {
	g.timePaused = paused
}

// ToggleTimePaused flips the clock pause.
func (g *Game) ToggleTimePaused() {
	g.timePaused = !g.timePaused
}

// TimePaused reports whether the day/night clock is paused.
func (g *Game) TimePaused() bool {
	return g.timePaused
}
