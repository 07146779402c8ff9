// Package views tracks per-agent presentation state: animation, facing,
// scale, vital bars and the death presentation that gates removal.
package views

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/game"
)

// Animation is the clip a view plays.
type Animation uint8

const (
	AnimWalk Animation = iota
	AnimEat
	AnimDie
)

// String returns the clip name.
func (a Animation) String() string {
	switch a {
	case AnimEat:
		return "eat"
	case AnimDie:
		return "die"
	default:
		return "walk"
	}
}

// minFacingSpeedSq is the squared displacement below which heading is kept.
const minFacingSpeedSq = 0.001

// Bar is one vital bar drawn above an agent.
type Bar struct {
	Label string
	Value float64 // Fraction in [0, 1]
	Warn  bool
}

// View is the presentation state of one agent.
type View struct {
	ID       uint32
	Position r3.Vec
	State    components.State
	Alive    bool
	Adult    bool
	Vitals   components.Vitals
	Limits   components.Limits

	Animation Animation
	Paused    bool    // Walk clip frozen while idle
	Heading   float64 // Radians about the up axis, atan2(vx, vz)
	Scale     float64
	Visible   bool // False while outside the ground

	dying float64 // Seconds the die clip has played
}

// DeathProgress returns how far the die clip has played, in [0, 1].
func (v *View) DeathProgress(duration float64) float64 {
	if v.Animation != AnimDie {
		return 0
	}
	if duration <= 0 {
		return 1
	}
	return math.Min(v.dying/duration, 1)
}

// Bars returns the vital bars in display order.
func (v *View) Bars() []Bar {
	fields := components.VitalFieldDescriptors()
	bars := make([]Bar, len(fields))
	for i, f := range fields {
		value := components.VitalFraction(v.Vitals, v.Limits, f.ID)
		bars[i] = Bar{
			Label: f.Label,
			Value: value,
			Warn:  f.WarnBelow > 0 && value < f.WarnBelow,
		}
	}
	return bars
}

// Tracker keeps one View per agent in sync with game snapshots.
// It implements game.RemovalGate.
type Tracker struct {
	views map[uint32]*View
	seen  map[uint32]bool

	half          float64
	deathDuration float64
	adultScale    float64
	juvenileScale float64
}

// NewTracker creates a tracker for a ground of the given half-extent.
func NewTracker(cfg config.PresentationConfig, half float64) *Tracker {
	return &Tracker{
		views:         make(map[uint32]*View),
		seen:          make(map[uint32]bool),
		half:          half,
		deathDuration: cfg.DeathDuration,
		adultScale:    cfg.AdultScale,
		juvenileScale: cfg.JuvenileScale,
	}
}

// Sync updates views from snapshots and advances animations by dt seconds.
// Views of agents missing from snapshots are forgotten.
func (t *Tracker) Sync(snapshots []game.AgentSnapshot, dt float64) {
	clear(t.seen)

	for i := range snapshots {
		s := &snapshots[i]
		t.seen[s.ID] = true

		v, ok := t.views[s.ID]
		if !ok {
			v = &View{ID: s.ID}
			t.views[s.ID] = v
		}

		v.Position = s.Position
		v.State = s.State
		v.Alive = s.Alive
		v.Adult = s.Adult
		v.Vitals = s.Vitals
		v.Limits = s.Limits
		v.Visible = math.Abs(s.Position.X) <= t.half && math.Abs(s.Position.Z) <= t.half

		v.Scale = t.juvenileScale
		if s.Adult {
			v.Scale = t.adultScale
		}

		if r3.Norm2(s.Velocity) > minFacingSpeedSq {
			v.Heading = math.Atan2(s.Velocity.X, s.Velocity.Z)
		}

		t.animate(v, dt)
	}

	for id := range t.views {
		if !t.seen[id] {
			delete(t.views, id)
		}
	}
}

func (t *Tracker) animate(v *View, dt float64) {
	switch v.State {
	case components.StateDead:
		if v.Animation != AnimDie {
			v.Animation = AnimDie
			v.dying = 0
		} else {
			v.dying += dt
		}
		v.Paused = false
	case components.StateEating, components.StateDrinking:
		v.Animation = AnimEat
		v.Paused = false
	default:
		v.Animation = AnimWalk
		v.Paused = v.State == components.StateIdle
	}
}

// View returns the view of an agent.
func (t *Tracker) View(id uint32) (*View, bool) {
	v, ok := t.views[id]
	return v, ok
}

// Len returns the number of tracked views.
func (t *Tracker) Len() int {
	return len(t.views)
}

// ReadyToRemove reports whether the agent's die clip has finished.
// Agents the tracker never presented can be removed at once.
func (t *Tracker) ReadyToRemove(id uint32) bool {
	v, ok := t.views[id]
	if !ok {
		return true
	}
	return v.Animation == AnimDie && v.dying >= t.deathDuration
}

// Forget drops the view of an agent.
func (t *Tracker) Forget(id uint32) {
	delete(t.views, id)
}

var _ game.RemovalGate = (*Tracker)(nil)
