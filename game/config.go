package game

import (
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/systems"
	"github.com/pthm-cable/meadow/telemetry"
)

// Options configures game initialization.
type Options struct {
	// Config is the simulation configuration. Nil falls back to config.Cfg().
	Config *config.Config

	Seed     int64 // RNG seed (0 = time-based)
	Headless bool  // No presentation layer; dead agents are removed immediately
	Debug    bool  // Validate agent invariants after every aging tick

	LogStats       bool   // Log window stats via slog
	OutputDir      string // Directory for CSV logs and config snapshot (empty = disabled)
	StepsPerUpdate int    // Simulation steps per UpdateHeadless call

	// Terrain overrides generated terrain. Nil generates from Config.Terrain.
	Terrain *systems.Terrain

	// Gate decides when a dead agent may be removed. Nil removes as soon as
	// the controller has observed the death.
	Gate RemovalGate

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)

	// SkipSeed leaves the world empty instead of spawning the initial population.
	SkipSeed bool
}

// RemovalGate reports whether the presentation of a dead agent has finished.
type RemovalGate interface {
	ReadyToRemove(id uint32) bool
}

// RemovalGateFunc adapts a function to RemovalGate.
type RemovalGateFunc func(id uint32) bool

// ReadyToRemove calls f(id).
func (f RemovalGateFunc) ReadyToRemove(id uint32) bool {
	return f(id)
}

// RemoveImmediately is the gate used when nothing presents deaths.
var RemoveImmediately RemovalGate = RemovalGateFunc(func(uint32) bool { return true })
