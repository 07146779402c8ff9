package telemetry

import "github.com/pthm-cable/meadow/components"

// Sample is the population state observed at the end of a window.
type Sample struct {
	Alive     int
	Adults    int
	Juveniles int
	Dying     int

	// States counts living agents per controller state, indexed by State.
	States []int

	// Vital fractions of every living agent.
	Life   []float64
	Hunger []float64
	Thirst []float64
}

// NewSample returns an empty sample with state counters allocated.
func NewSample() Sample {
	return Sample{States: make([]int, components.StateCount())}
}

// Reset clears the sample for reuse, keeping allocated storage.
func (s *Sample) Reset() {
	s.Alive, s.Adults, s.Juveniles, s.Dying = 0, 0, 0, 0
	if len(s.States) != components.StateCount() {
		s.States = make([]int, components.StateCount())
	}
	for i := range s.States {
		s.States[i] = 0
	}
	s.Life = s.Life[:0]
	s.Hunger = s.Hunger[:0]
	s.Thirst = s.Thirst[:0]
}

func (s *Sample) state(st components.State) int {
	if int(st) < len(s.States) {
		return s.States[st]
	}
	return 0
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	births            int
	seedSpawns        int
	placementFailures int
	matings           int
	drinks            int
	meals             int
	deaths            [4]int // Indexed by DeathCause
	lifespans         []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec/dt + 0.5)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordBirth records an offspring entering the population.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordSeedSpawn records an adult spawned outside of mating.
func (c *Collector) RecordSeedSpawn() {
	c.seedSpawns++
}

// RecordPlacementFailure records a spawn that found no valid position.
func (c *Collector) RecordPlacementFailure() {
	c.placementFailures++
}

// RecordMating records a completed mating.
func (c *Collector) RecordMating() {
	c.matings++
}

// RecordDrink records an agent starting to drink.
func (c *Collector) RecordDrink() {
	c.drinks++
}

// RecordMeal records an agent starting to eat.
func (c *Collector) RecordMeal() {
	c.meals++
}

// RecordDeath records a death with its cause and the agent's lifespan.
func (c *Collector) RecordDeath(cause components.DeathCause, lifespanSec float64) {
	if int(cause) < len(c.deaths) {
		c.deaths[cause]++
	}
	c.lifespans = append(c.lifespans, lifespanSec)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	life := Summarize(s.Life)
	hunger := Summarize(s.Hunger)
	thirst := Summarize(s.Thirst)

	var deaths int
	for _, n := range c.deaths {
		deaths += n
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Population: s.Alive,
		Adults:     s.Adults,
		Juveniles:  s.Juveniles,
		Dying:      s.Dying,

		Births:            c.births,
		SeedSpawns:        c.seedSpawns,
		PlacementFailures: c.placementFailures,
		Matings:           c.matings,
		Drinks:            c.drinks,
		Meals:             c.meals,
		Deaths:            deaths,
		DeathsOldAge:      c.deaths[components.CauseOldAge],
		DeathsStarvation:  c.deaths[components.CauseStarvation],
		DeathsDehydration: c.deaths[components.CauseDehydration],

		Idle:         s.state(components.StateIdle),
		Wandering:    s.state(components.StateWandering),
		SeekingWater: s.state(components.StateSeekingWater),
		Drinking:     s.state(components.StateDrinking),
		SeekingFood:  s.state(components.StateSeekingFood),
		Eating:       s.state(components.StateEating),
		SeekingMate:  s.state(components.StateSeekingMate),

		LifeMean:   life.Mean,
		LifeStd:    life.Std,
		LifeP10:    life.P10,
		LifeP50:    life.P50,
		HungerMean: hunger.Mean,
		HungerStd:  hunger.Std,
		HungerP10:  hunger.P10,
		HungerP50:  hunger.P50,
		ThirstMean: thirst.Mean,
		ThirstStd:  thirst.Std,
		ThirstP10:  thirst.P10,
		ThirstP50:  thirst.P50,

		MeanLifespanSec: Mean(c.lifespans),
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.seedSpawns = 0
	c.placementFailures = 0
	c.matings = 0
	c.drinks = 0
	c.meals = 0
	c.deaths = [4]int{}
	c.lifespans = c.lifespans[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
