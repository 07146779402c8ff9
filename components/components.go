// Package components defines ECS components for the simulation.
package components

import "gonum.org/v1/gonum/spatial/r3"

// Position represents an entity's world position. Y is up; agents move in
// the XZ plane.
type Position struct {
	r3.Vec
}

// Velocity holds the displacement realized by the last successful step.
// It is only used for facing direction.
type Velocity struct {
	r3.Vec
}
