package components

import (
	"fmt"
	"math"
)

// DeathCause records which vital ran out.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseOldAge
	CauseStarvation
	CauseDehydration
)

// String returns the snake_case name used in logs and CSV output.
func (c DeathCause) String() string {
	switch c {
	case CauseOldAge:
		return "old_age"
	case CauseStarvation:
		return "starvation"
	case CauseDehydration:
		return "dehydration"
	default:
		return "none"
	}
}

// Limits holds vital capacities and the need thresholds derived from them.
// Thresholds are fractions of the matching capacity.
type Limits struct {
	MaxLife         float64
	MaxHunger       float64
	MaxThirst       float64
	MaxReproduction float64

	WaterThreshold float64 // needsWater below this fraction of MaxThirst
	FoodThreshold  float64 // needsFood below this fraction of MaxHunger
	MateFullness   float64 // canMate above this fraction of hunger and thirst
}

// DefaultLimits returns the standard creature limits.
func DefaultLimits() Limits {
	return Limits{
		MaxLife:         600,
		MaxHunger:       100,
		MaxThirst:       100,
		MaxReproduction: 100,
		WaterThreshold:  0.70,
		FoodThreshold:   0.45,
		MateFullness:    0.70,
	}
}

// Vitals are the four bounded counters of a creature.
type Vitals struct {
	Life         float64
	Hunger       float64
	Thirst       float64
	Reproduction float64
}

// Agent holds per-creature lifecycle state.
type Agent struct {
	ID uint32
	Vitals
	Limits Limits

	Alive bool
	Adult bool
	Age   int // Vital ticks survived

	growTimer int // Only meaningful while !Adult
	cause     DeathCause
}

// NewAdult creates a mature agent with full vitals.
func NewAdult(id uint32, limits Limits) Agent {
	return Agent{
		ID:     id,
		Vitals: fullVitals(limits),
		Limits: limits,
		Alive:  true,
		Adult:  true,
	}
}

// NewJuvenile creates an immature agent that becomes adult after growTimer ticks.
func NewJuvenile(id uint32, limits Limits, growTimer int) Agent {
	if growTimer < 0 {
		growTimer = 0
	}
	return Agent{
		ID:        id,
		Vitals:    fullVitals(limits),
		Limits:    limits,
		Alive:     true,
		growTimer: growTimer,
	}
}

func fullVitals(l Limits) Vitals {
	return Vitals{
		Life:         l.MaxLife,
		Hunger:       l.MaxHunger,
		Thirst:       l.MaxThirst,
		Reproduction: l.MaxReproduction,
	}
}

// GrowTimer returns the remaining ticks until adulthood.
// ok is false once the agent is adult.
func (a *Agent) GrowTimer() (ticks int, ok bool) {
	if a.Adult {
		return 0, false
	}
	return a.growTimer, true
}

// Tick advances the agent by one aging interval. Dead agents are unchanged.
func (a *Agent) Tick() {
	if !a.Alive {
		return
	}
	a.Age++

	a.Life = math.Max(a.Life-1, 0)
	a.Hunger = math.Max(a.Hunger-1, 0)
	a.Thirst = math.Max(a.Thirst-1, 0)

	if a.Adult {
		a.Reproduction = math.Max(a.Reproduction-1, 0)
	} else {
		a.Reproduction = a.Limits.MaxReproduction
		a.growTimer--
		if a.growTimer <= 0 {
			a.Adult = true
			a.growTimer = 0
		}
	}

	switch {
	case a.Life == 0:
		a.die(CauseOldAge)
	case a.Hunger == 0:
		a.die(CauseStarvation)
	case a.Thirst == 0:
		a.die(CauseDehydration)
	}
}

func (a *Agent) die(cause DeathCause) {
	a.Alive = false
	a.cause = cause
}

// Cause returns why the agent died, or CauseNone while it lives.
func (a *Agent) Cause() DeathCause {
	return a.cause
}

// Eat adds to hunger, clamped to [0, MaxHunger].
func (a *Agent) Eat(amount float64) {
	a.Hunger = clamp(a.Hunger+amount, 0, a.Limits.MaxHunger)
}

// Drink adds to thirst, clamped to [0, MaxThirst].
func (a *Agent) Drink(amount float64) {
	a.Thirst = clamp(a.Thirst+amount, 0, a.Limits.MaxThirst)
}

// Mate resets the reproduction timer.
func (a *Agent) Mate() {
	a.Reproduction = a.Limits.MaxReproduction
}

// NeedsWater reports whether thirst is below the water threshold.
func (a *Agent) NeedsWater() bool {
	return a.Thirst < a.Limits.WaterThreshold*a.Limits.MaxThirst
}

// NeedsFood reports whether hunger is below the food threshold.
func (a *Agent) NeedsFood() bool {
	return a.Hunger < a.Limits.FoodThreshold*a.Limits.MaxHunger
}

// CanMate reports whether the agent is ready to reproduce.
func (a *Agent) CanMate() bool {
	return a.Adult &&
		a.Reproduction == 0 &&
		a.Hunger > a.Limits.MateFullness*a.Limits.MaxHunger &&
		a.Thirst > a.Limits.MateFullness*a.Limits.MaxThirst
}

// HungerFrac returns hunger as a fraction of its capacity.
func (a *Agent) HungerFrac() float64 { return frac(a.Hunger, a.Limits.MaxHunger) }

// ThirstFrac returns thirst as a fraction of its capacity.
func (a *Agent) ThirstFrac() float64 { return frac(a.Thirst, a.Limits.MaxThirst) }

// LifeFrac returns life as a fraction of its capacity.
func (a *Agent) LifeFrac() float64 { return frac(a.Life, a.Limits.MaxLife) }

// ReproductionFrac returns the reproduction timer as a fraction of its capacity.
func (a *Agent) ReproductionFrac() float64 {
	return frac(a.Reproduction, a.Limits.MaxReproduction)
}

// Validate reports the first broken lifecycle invariant, if any.
func (a *Agent) Validate() error {
	checks := []struct {
		name     string
		val, max float64
	}{
		{"life", a.Life, a.Limits.MaxLife},
		{"hunger", a.Hunger, a.Limits.MaxHunger},
		{"thirst", a.Thirst, a.Limits.MaxThirst},
		{"reproduction", a.Reproduction, a.Limits.MaxReproduction},
	}
	for _, c := range checks {
		if math.IsNaN(c.val) || c.val < 0 || c.val > c.max {
			return fmt.Errorf("agent %d: %s = %v outside [0, %v]", a.ID, c.name, c.val, c.max)
		}
	}
	if a.Adult && a.growTimer != 0 {
		return fmt.Errorf("agent %d: adult with grow timer %d", a.ID, a.growTimer)
	}
	if !a.Alive && a.cause == CauseNone {
		return fmt.Errorf("agent %d: dead without cause", a.ID)
	}
	if a.Alive && a.cause != CauseNone {
		return fmt.Errorf("agent %d: alive with cause %s", a.ID, a.cause)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func frac(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return v / max
}
