package systems

import (
	"math"
	"strings"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
)

// Drive is the need currently steering an agent.
type Drive uint8

const (
	DriveNone Drive = iota
	DriveWater
	DriveFood
	DriveMate
)

// String returns the drive name.
func (d Drive) String() string {
	switch d {
	case DriveWater:
		return "water"
	case DriveFood:
		return "food"
	case DriveMate:
		return "mate"
	default:
		return "none"
	}
}

// drivePriority lists drives from most to least urgent.
var drivePriority = []struct {
	drive  Drive
	active func(*components.Agent) bool
}{
	{DriveWater, (*components.Agent).NeedsWater},
	{DriveFood, (*components.Agent).NeedsFood},
	{DriveMate, (*components.Agent).CanMate},
}

// PrimaryDrive returns the most urgent active drive of a.
func PrimaryDrive(a *components.Agent) Drive {
	for _, p := range drivePriority {
		if p.active(a) {
			return p.drive
		}
	}
	return DriveNone
}

// Action is a set of side effects the controller executes for a decision.
type Action uint16

const (
	ActAcquireWater Action = 1 << iota // Target the nearest water rim
	ActAcquireFood                     // Target the nearest food source
	ActAcquireMate                     // Search for a partner
	ActWanderTarget                    // Sample a new wander point
	ActMove                            // Steer toward the current target
	ActPursueMate                      // Steer toward the partner's position
	ActDrink                           // Refill thirst
	ActEat                             // Refill hunger
	ActIdle                            // Count down the idle timer
	ActStartIdle                       // Sample a new idle duration
	ActMate                            // Mate with the partner and spawn offspring
	ActClearTargets                    // Drop target point, object and partner
)

var actionNames = []string{
	"acquire_water", "acquire_food", "acquire_mate", "wander_target",
	"move", "pursue_mate", "drink", "eat", "idle", "start_idle",
	"mate", "clear_targets",
}

// Has reports whether all actions in other are set.
func (a Action) Has(other Action) bool {
	return a&other == other
}

// String lists the set actions separated by '|'.
func (a Action) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	for i, name := range actionNames {
		if a&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Decision is the outcome of a transition: the next state and the side
// effects needed to enter or stay in it.
type Decision struct {
	Next   components.State
	Action Action
}

// Transition decides what an agent does this step before it moves.
// Priority: death, ongoing idle or interaction, water, food, mate, wander.
func Transition(c *components.Controller, a *components.Agent) Decision {
	if !a.Alive {
		return Decision{Next: components.StateDead, Action: ActClearTargets}
	}

	switch c.State {
	case components.StateDead:
		return Decision{Next: components.StateDead}
	case components.StateIdle:
		if c.IdleTimer > 0 {
			return Decision{Next: components.StateIdle, Action: ActIdle}
		}
	case components.StateDrinking:
		return Decision{Next: components.StateDrinking, Action: ActDrink}
	case components.StateEating:
		return Decision{Next: components.StateEating, Action: ActEat}
	}

	switch PrimaryDrive(a) {
	case DriveWater:
		if c.State != components.StateSeekingWater {
			return Decision{Next: components.StateSeekingWater, Action: ActClearTargets | ActAcquireWater | ActMove}
		}
		return Decision{Next: components.StateSeekingWater, Action: ActMove}
	case DriveFood:
		if c.State != components.StateSeekingFood {
			return Decision{Next: components.StateSeekingFood, Action: ActClearTargets | ActAcquireFood | ActMove}
		}
		return Decision{Next: components.StateSeekingFood, Action: ActMove}
	case DriveMate:
		if c.State != components.StateSeekingMate && c.State != components.StateMating {
			return Decision{Next: components.StateSeekingMate, Action: ActClearTargets | ActAcquireMate}
		}
	}

	switch c.State {
	case components.StateSeekingMate:
		if c.HasMate {
			return Decision{Next: components.StateSeekingMate, Action: ActPursueMate}
		}
	case components.StateMating:
		return Decision{Next: components.StateWandering, Action: ActClearTargets | ActWanderTarget}
	}

	if c.State != components.StateWandering || !c.HasTarget {
		return Decision{Next: components.StateWandering, Action: ActClearTargets | ActWanderTarget | ActMove}
	}
	return Decision{Next: components.StateWandering, Action: ActMove}
}

// Replenished decides what follows a completed drink or meal.
func Replenished(state components.State, a *components.Agent) Decision {
	if state == components.StateDrinking && a.NeedsFood() {
		return Decision{Next: components.StateSeekingFood, Action: ActClearTargets | ActAcquireFood}
	}
	return Decision{Next: components.StateIdle, Action: ActClearTargets}
}

// Proximity describes an agent's surroundings after it moved.
type Proximity struct {
	TargetDist float64 // Distance to the movement target

	HasObject    bool    // Sought water or food still exists
	ObjectDist   float64 // Distance to the object's center
	ObjectRadius float64

	HasMate     bool // Partner entity still exists
	MateDist    float64
	MateCanMate bool
}

// Rules holds the capture and arrival distances used by Arrive.
type Rules struct {
	DrinkBand        float64 // Drinking starts within this band around a water rim
	EatReach         float64 // Eating starts within radius + EatReach of food
	RetargetDistance float64 // Seek target reached without capture
	MateDistance     float64
	WanderArrival    float64
}

// RulesFromConfig builds Rules from steering configuration.
func RulesFromConfig(c config.SteeringConfig) Rules {
	return Rules{
		DrinkBand:        c.DrinkBand,
		EatReach:         c.EatReach,
		RetargetDistance: c.RetargetDistance,
		MateDistance:     c.MateDistance,
		WanderArrival:    c.WanderArrival,
	}
}

// LimitsFromConfig builds agent limits from agent configuration.
func LimitsFromConfig(c config.AgentConfig) components.Limits {
	return components.Limits{
		MaxLife:         c.MaxLife,
		MaxHunger:       c.MaxHunger,
		MaxThirst:       c.MaxThirst,
		MaxReproduction: c.MaxReproduction,
		WaterThreshold:  c.WaterThreshold,
		FoodThreshold:   c.FoodThreshold,
		MateFullness:    c.MateFullness,
	}
}

// Arrive decides what follows a step taken in state given the new proximity.
func Arrive(state components.State, p Proximity, r Rules) Decision {
	switch state {
	case components.StateSeekingWater:
		if p.HasObject && math.Abs(p.ObjectDist-p.ObjectRadius) < r.DrinkBand {
			return Decision{Next: components.StateDrinking}
		}
		if !p.HasObject || p.TargetDist < r.RetargetDistance {
			return Decision{Next: state, Action: ActAcquireWater}
		}
	case components.StateSeekingFood:
		if p.HasObject && p.ObjectDist < p.ObjectRadius+r.EatReach {
			return Decision{Next: components.StateEating}
		}
		if !p.HasObject || p.TargetDist < r.RetargetDistance {
			return Decision{Next: state, Action: ActAcquireFood}
		}
	case components.StateSeekingMate:
		if !p.HasMate || !p.MateCanMate {
			return Decision{Next: components.StateWandering, Action: ActClearTargets | ActWanderTarget}
		}
		if p.MateDist < r.MateDistance {
			return Decision{Next: components.StateMating, Action: ActMate}
		}
	case components.StateWandering:
		if p.TargetDist < r.WanderArrival {
			return Decision{Next: components.StateIdle, Action: ActClearTargets | ActStartIdle}
		}
	}
	return Decision{Next: state}
}
