package components

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"
)

// State is the behavioral state of an agent controller.
type State uint8

const (
	StateIdle State = iota
	StateWandering
	StateSeekingWater
	StateDrinking
	StateSeekingFood
	StateEating
	StateSeekingMate
	StateMating
	StateDead

	stateCount
)

var stateNames = [stateCount]string{
	"idle",
	"wandering",
	"seeking_water",
	"drinking",
	"seeking_food",
	"eating",
	"seeking_mate",
	"mating",
	"dead",
}

// String returns the snake_case state name.
func (s State) String() string {
	if s.Valid() {
		return stateNames[s]
	}
	return "invalid"
}

// Valid reports whether s is one of the enumerated states.
func (s State) Valid() bool {
	return s < stateCount
}

// StateCount returns the number of controller states.
func StateCount() int {
	return int(stateCount)
}

// Locomotive reports whether the state moves the agent through steering.
func (s State) Locomotive() bool {
	switch s {
	case StateWandering, StateSeekingWater, StateSeekingFood, StateSeekingMate:
		return true
	}
	return false
}

// Separates reports whether the state applies separation from other agents.
func (s State) Separates() bool {
	return s == StateWandering || s == StateSeekingWater || s == StateSeekingFood
}

// Controller holds per-agent decision state.
type Controller struct {
	State State

	Target    r3.Vec
	HasTarget bool

	TargetObj ObjectID // Water or food being sought; zero when none

	TargetMate ecs.Entity
	HasMate    bool

	IdleTimer float64
}

// ClearTargets drops the movement target, object and mate.
func (c *Controller) ClearTargets() {
	c.Target = r3.Vec{}
	c.HasTarget = false
	c.TargetObj = ObjectID{}
	c.TargetMate = ecs.Entity{}
	c.HasMate = false
}

// SetTarget sets the movement target.
func (c *Controller) SetTarget(p r3.Vec) {
	c.Target = p
	c.HasTarget = true
}
