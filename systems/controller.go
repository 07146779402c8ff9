package systems

import (
	"math"
	"math/rand"
	"sort"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
)

// BirthFunc queues an offspring at pos. Called during the controller query,
// so implementations must defer entity creation until Update returns.
type BirthFunc func(pos r3.Vec)

// Hooks receive controller events. Nil hooks are skipped.
type Hooks struct {
	// OnStateChange fires whenever an agent's controller changes state.
	OnStateChange func(e ecs.Entity, a *components.Agent, from, to components.State)
	// OnMate fires once per mating with both parents and the birth position.
	OnMate func(a, b *components.Agent, at r3.Vec)
}

// ControllerSystem advances every agent's state machine and movement.
type ControllerSystem struct {
	filter  ecs.Filter4[components.Position, components.Velocity, components.Agent, components.Controller]
	posMap  *ecs.Map1[components.Position]
	agents  *ecs.Map1[components.Agent]
	ctrlMap *ecs.Map1[components.Controller]
	world   *ecs.World

	index   *SpatialIndex
	steerer *Steerer
	rules   Rules
	cfg     config.SteeringConfig
	rng     *rand.Rand
	birth   BirthFunc

	Hooks Hooks

	candidates []mateCandidate
	nearby     []WorldObject
}

type mateCandidate struct {
	e    ecs.Entity
	dist float64
}

// NewControllerSystem creates a controller system over all agents in w.
func NewControllerSystem(w *ecs.World, index *SpatialIndex, cfg config.SteeringConfig, half float64, rng *rand.Rand, birth BirthFunc) *ControllerSystem {
	return &ControllerSystem{
		filter:  *ecs.NewFilter4[components.Position, components.Velocity, components.Agent, components.Controller](w),
		posMap:  ecs.NewMap1[components.Position](w),
		agents:  ecs.NewMap1[components.Agent](w),
		ctrlMap: ecs.NewMap1[components.Controller](w),
		world:   w,
		index:   index,
		steerer: NewSteerer(index, cfg, half),
		rules:   RulesFromConfig(cfg),
		cfg:     cfg,
		rng:     rng,
		birth:   birth,
	}
}

// Steerer returns the steering helper used by the system.
func (s *ControllerSystem) Steerer() *Steerer {
	return s.steerer
}

// Update advances every controller by delta seconds of simulated time.
func (s *ControllerSystem) Update(delta float64) {
	query := s.filter.Query()
	for query.Next() {
		e := query.Entity()
		pos, vel, agent, ctrl := query.Get()

		from := ctrl.State
		s.step(e, pos, vel, agent, ctrl, delta)
		if ctrl.State != from {
			s.stateChanged(e, agent, from, ctrl.State)
		}
	}
}

// step runs one controller update for a single agent.
func (s *ControllerSystem) step(e ecs.Entity, pos *components.Position, vel *components.Velocity, agent *components.Agent, ctrl *components.Controller, delta float64) {
	d := Transition(ctrl, agent)
	ctrl.State = d.Next
	if d.Action.Has(ActClearTargets) {
		ctrl.ClearTargets()
	}

	switch {
	case d.Action.Has(ActIdle):
		ctrl.IdleTimer -= delta
		if ctrl.IdleTimer <= 0 {
			s.wander(pos, ctrl)
		}
		return
	case d.Action.Has(ActDrink):
		agent.Drink(s.cfg.DrinkRate * delta)
		if agent.Thirst >= agent.Limits.MaxThirst {
			s.replenished(pos, agent, ctrl)
		}
		return
	case d.Action.Has(ActEat):
		agent.Eat(s.cfg.EatRate * delta)
		if agent.Hunger >= agent.Limits.MaxHunger {
			s.replenished(pos, agent, ctrl)
		}
		return
	}

	if d.Action.Has(ActAcquireWater) && !s.acquire(components.KindWater, pos, ctrl) {
		s.wander(pos, ctrl)
		return
	}
	if d.Action.Has(ActAcquireFood) && !s.acquire(components.KindFood, pos, ctrl) {
		s.wander(pos, ctrl)
		return
	}
	if d.Action.Has(ActAcquireMate) {
		if !s.acquireMate(e, pos, ctrl) {
			s.wander(pos, ctrl)
		}
		return
	}
	if d.Action.Has(ActWanderTarget) {
		ctrl.SetTarget(s.steerer.WanderTarget(s.rng, pos.Vec))
	}

	if d.Action.Has(ActPursueMate) {
		if !s.world.Alive(ctrl.TargetMate) {
			s.wander(pos, ctrl)
			return
		}
		ctrl.SetTarget(s.posMap.Get(ctrl.TargetMate).Vec)
	} else if !d.Action.Has(ActMove) {
		return
	}

	if ctrl.HasTarget {
		s.move(e, pos, vel, ctrl, delta)
	}
	s.arrive(e, pos, agent, ctrl)
}

// arrive applies the post-move transition.
func (s *ControllerSystem) arrive(e ecs.Entity, pos *components.Position, agent *components.Agent, ctrl *components.Controller) {
	d := Arrive(ctrl.State, s.proximity(pos.Vec, ctrl), s.rules)
	ctrl.State = d.Next
	if d.Action.Has(ActClearTargets) {
		ctrl.ClearTargets()
	}

	switch {
	case d.Action.Has(ActAcquireWater):
		if !s.acquire(components.KindWater, pos, ctrl) {
			s.wander(pos, ctrl)
		}
	case d.Action.Has(ActAcquireFood):
		if !s.acquire(components.KindFood, pos, ctrl) {
			s.wander(pos, ctrl)
		}
	case d.Action.Has(ActWanderTarget):
		ctrl.SetTarget(s.steerer.WanderTarget(s.rng, pos.Vec))
	case d.Action.Has(ActStartIdle):
		ctrl.IdleTimer = s.cfg.IdleMin + s.rng.Float64()*(s.cfg.IdleMax-s.cfg.IdleMin)
	case d.Action.Has(ActMate):
		s.mate(e, pos, agent, ctrl)
	}
}

// proximity measures the controller's targets from pos.
func (s *ControllerSystem) proximity(pos r3.Vec, ctrl *components.Controller) Proximity {
	var p Proximity
	if ctrl.HasTarget {
		p.TargetDist = r3.Norm(r3.Sub(ctrl.Target, pos))
	} else {
		p.TargetDist = math.Inf(1)
	}
	if obj, ok := s.index.Get(ctrl.TargetObj); ok {
		p.HasObject = true
		p.ObjectDist = r3.Norm(r3.Sub(obj.Position, pos))
		p.ObjectRadius = obj.Radius
	}
	if ctrl.HasMate && s.world.Alive(ctrl.TargetMate) {
		p.HasMate = true
		p.MateDist = r3.Norm(r3.Sub(s.posMap.Get(ctrl.TargetMate).Vec, pos))
		mate := s.agents.Get(ctrl.TargetMate)
		p.MateCanMate = mate.Alive && mate.CanMate()
	}
	return p
}

// move takes one steering step toward the controller target. A blocked step
// leaves the agent in place and picks a new target for seeking and
// wandering states.
func (s *ControllerSystem) move(e ecs.Entity, pos *components.Position, vel *components.Velocity, ctrl *components.Controller, delta float64) {
	res := s.steerer.Steer(e, pos.Vec, ctrl.Target, ctrl.State, delta)
	if !res.Blocked() {
		pos.Vec = res.Next
		vel.Vec = res.Displacement()
		s.steerer.ResolveOverlaps(e, pos, s.posMap)
		return
	}

	switch ctrl.State {
	case components.StateWandering:
		ctrl.SetTarget(s.steerer.WanderTarget(s.rng, pos.Vec))
	case components.StateSeekingWater:
		s.approach(components.KindWater, pos, ctrl)
	case components.StateSeekingFood:
		s.approach(components.KindFood, pos, ctrl)
	}
}

// approach targets a random point around the sought object, or re-acquires
// the nearest one if it is gone.
func (s *ControllerSystem) approach(kind components.Kind, pos *components.Position, ctrl *components.Controller) {
	if obj, ok := s.index.Get(ctrl.TargetObj); ok {
		ctrl.SetTarget(s.steerer.ApproachPoint(s.rng, obj))
		return
	}
	s.acquire(kind, pos, ctrl)
}

// acquire targets the nearest object of kind. Water is approached at its rim,
// food at its center. Returns false if none exists.
func (s *ControllerSystem) acquire(kind components.Kind, pos *components.Position, ctrl *components.Controller) bool {
	obj, ok := s.index.FindNearest(kind, pos.Vec)
	if !ok {
		ctrl.TargetObj = components.ObjectID{}
		ctrl.HasTarget = false
		return false
	}
	ctrl.TargetObj = obj.ID
	if kind == components.KindWater {
		ctrl.SetTarget(s.steerer.RimPoint(obj, pos.Vec))
	} else {
		ctrl.SetTarget(obj.Position)
	}
	return true
}

// acquireMate targets the nearest qualifying partner within the mate radius.
func (s *ControllerSystem) acquireMate(self ecs.Entity, pos *components.Position, ctrl *components.Controller) bool {
	s.nearby = s.index.AgentsAround(s.nearby[:0], pos.Vec, s.cfg.MateRadius, self)
	s.candidates = s.candidates[:0]
	for _, obj := range s.nearby {
		if !s.qualifies(s.agents.Get(obj.Entity)) {
			continue
		}
		s.candidates = append(s.candidates, mateCandidate{e: obj.Entity, dist: r3.Norm(r3.Sub(obj.Position, pos.Vec))})
	}
	if len(s.candidates) == 0 {
		return false
	}
	sort.SliceStable(s.candidates, func(i, j int) bool {
		return s.candidates[i].dist < s.candidates[j].dist
	})

	mate := s.candidates[0].e
	ctrl.TargetMate = mate
	ctrl.HasMate = true
	ctrl.TargetObj = components.ObjectID{}
	ctrl.SetTarget(s.posMap.Get(mate).Vec)
	return true
}

// qualifies applies the stricter fullness bar used when choosing a partner.
func (s *ControllerSystem) qualifies(a *components.Agent) bool {
	l := a.Limits
	return a.Alive &&
		a.Adult &&
		a.Reproduction == 0 &&
		a.Hunger > s.cfg.MateFullness*l.MaxHunger &&
		a.Thirst > s.cfg.MateFullness*l.MaxThirst
}

// mate resets both parents and queues one juvenile at their midpoint.
// Both controllers return to wandering.
func (s *ControllerSystem) mate(e ecs.Entity, pos *components.Position, agent *components.Agent, ctrl *components.Controller) {
	partnerEntity := ctrl.TargetMate
	partner := s.agents.Get(partnerEntity)
	partnerPos := s.posMap.Get(partnerEntity)

	agent.Mate()
	partner.Mate()

	at := lerp(pos.Vec, partnerPos.Vec, 0.5)
	if s.birth != nil {
		s.birth(at)
	}
	if s.Hooks.OnMate != nil {
		s.Hooks.OnMate(agent, partner, at)
	}

	pc := s.ctrlMap.Get(partnerEntity)
	switch pc.State {
	case components.StateIdle, components.StateWandering, components.StateSeekingMate, components.StateMating:
		from := pc.State
		pc.ClearTargets()
		pc.IdleTimer = 0
		pc.State = components.StateWandering
		pc.SetTarget(s.steerer.WanderTarget(s.rng, partnerPos.Vec))
		if from != pc.State {
			s.stateChanged(partnerEntity, partner, from, pc.State)
		}
	}
}

// replenished leaves a finished drink or meal.
func (s *ControllerSystem) replenished(pos *components.Position, agent *components.Agent, ctrl *components.Controller) {
	d := Replenished(ctrl.State, agent)
	ctrl.State = d.Next
	ctrl.ClearTargets()
	ctrl.IdleTimer = 0
	if d.Action.Has(ActAcquireFood) && !s.acquire(components.KindFood, pos, ctrl) {
		s.wander(pos, ctrl)
	}
}

// wander switches to wandering toward a fresh wander point.
func (s *ControllerSystem) wander(pos *components.Position, ctrl *components.Controller) {
	ctrl.ClearTargets()
	ctrl.State = components.StateWandering
	ctrl.SetTarget(s.steerer.WanderTarget(s.rng, pos.Vec))
}

func (s *ControllerSystem) stateChanged(e ecs.Entity, a *components.Agent, from, to components.State) {
	if s.Hooks.OnStateChange != nil {
		s.Hooks.OnStateChange(e, a, from, to)
	}
}
