package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

func agentWith(v components.Vitals) *components.Agent {
	a := components.NewAdult(1, components.DefaultLimits())
	a.Vitals = v
	return &a
}

func TestPrimaryDrive(t *testing.T) {
	tests := []struct {
		name   string
		vitals components.Vitals
		want   Drive
	}{
		{"content", components.Vitals{Life: 600, Hunger: 100, Thirst: 100, Reproduction: 50}, DriveNone},
		{"thirsty", components.Vitals{Life: 600, Hunger: 100, Thirst: 30, Reproduction: 50}, DriveWater},
		{"hungry", components.Vitals{Life: 600, Hunger: 30, Thirst: 100, Reproduction: 50}, DriveFood},
		{"water beats food", components.Vitals{Life: 600, Hunger: 30, Thirst: 30, Reproduction: 0}, DriveWater},
		{"ready to mate", components.Vitals{Life: 600, Hunger: 90, Thirst: 90, Reproduction: 0}, DriveMate},
		{"food beats mate", components.Vitals{Life: 600, Hunger: 40, Thirst: 90, Reproduction: 0}, DriveFood},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrimaryDrive(agentWith(tt.vitals)); got != tt.want {
				t.Errorf("PrimaryDrive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransition(t *testing.T) {
	content := components.Vitals{Life: 600, Hunger: 100, Thirst: 100, Reproduction: 50}
	thirsty := components.Vitals{Life: 600, Hunger: 100, Thirst: 30, Reproduction: 50}
	hungry := components.Vitals{Life: 600, Hunger: 30, Thirst: 100, Reproduction: 50}
	ready := components.Vitals{Life: 600, Hunger: 90, Thirst: 90, Reproduction: 0}

	tests := []struct {
		name   string
		ctrl   components.Controller
		vitals components.Vitals
		dead   bool
		want   Decision
	}{
		{
			name: "death overrides everything",
			ctrl: components.Controller{State: components.StateDrinking},
			dead: true,
			want: Decision{components.StateDead, ActClearTargets},
		},
		{
			name:   "idle counts down",
			ctrl:   components.Controller{State: components.StateIdle, IdleTimer: 3},
			vitals: thirsty,
			want:   Decision{components.StateIdle, ActIdle},
		},
		{
			name:   "expired idle re-evaluates needs",
			ctrl:   components.Controller{State: components.StateIdle},
			vitals: thirsty,
			want:   Decision{components.StateSeekingWater, ActClearTargets | ActAcquireWater | ActMove},
		},
		{
			name:   "drinking continues",
			ctrl:   components.Controller{State: components.StateDrinking},
			vitals: hungry,
			want:   Decision{components.StateDrinking, ActDrink},
		},
		{
			name:   "eating continues",
			ctrl:   components.Controller{State: components.StateEating},
			vitals: thirsty,
			want:   Decision{components.StateEating, ActEat},
		},
		{
			name:   "already seeking water keeps target",
			ctrl:   components.Controller{State: components.StateSeekingWater, HasTarget: true},
			vitals: thirsty,
			want:   Decision{components.StateSeekingWater, ActMove},
		},
		{
			name:   "hunger interrupts wandering",
			ctrl:   components.Controller{State: components.StateWandering, HasTarget: true},
			vitals: hungry,
			want:   Decision{components.StateSeekingFood, ActClearTargets | ActAcquireFood | ActMove},
		},
		{
			name:   "thirst interrupts mate search",
			ctrl:   components.Controller{State: components.StateSeekingMate, HasMate: true},
			vitals: components.Vitals{Life: 600, Hunger: 100, Thirst: 30, Reproduction: 0},
			want:   Decision{components.StateSeekingWater, ActClearTargets | ActAcquireWater | ActMove},
		},
		{
			name:   "mate search starts",
			ctrl:   components.Controller{State: components.StateWandering, HasTarget: true},
			vitals: ready,
			want:   Decision{components.StateSeekingMate, ActClearTargets | ActAcquireMate},
		},
		{
			name:   "pursue acquired mate",
			ctrl:   components.Controller{State: components.StateSeekingMate, HasMate: true},
			vitals: ready,
			want:   Decision{components.StateSeekingMate, ActPursueMate},
		},
		{
			name:   "mating reverts to wandering",
			ctrl:   components.Controller{State: components.StateMating},
			vitals: content,
			want:   Decision{components.StateWandering, ActClearTargets | ActWanderTarget},
		},
		{
			name:   "wandering without target picks one",
			ctrl:   components.Controller{State: components.StateWandering},
			vitals: content,
			want:   Decision{components.StateWandering, ActClearTargets | ActWanderTarget | ActMove},
		},
		{
			name:   "wandering with target moves",
			ctrl:   components.Controller{State: components.StateWandering, HasTarget: true},
			vitals: content,
			want:   Decision{components.StateWandering, ActMove},
		},
		{
			name:   "mate lost falls back to wandering",
			ctrl:   components.Controller{State: components.StateSeekingMate},
			vitals: content,
			want:   Decision{components.StateWandering, ActClearTargets | ActWanderTarget | ActMove},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := agentWith(tt.vitals)
			if tt.dead {
				a.Life = 1
				a.Tick()
			}
			ctrl := tt.ctrl
			got := Transition(&ctrl, a)
			if got != tt.want {
				t.Errorf("Transition() = {%v %v}, want {%v %v}", got.Next, got.Action, tt.want.Next, tt.want.Action)
			}
		})
	}
}

func TestTransition_DeadIsAbsorbing(t *testing.T) {
	a := agentWith(components.Vitals{Life: 1, Hunger: 100, Thirst: 100})
	a.Tick()

	states := []components.State{
		components.StateIdle, components.StateWandering, components.StateSeekingWater,
		components.StateDrinking, components.StateSeekingFood, components.StateEating,
		components.StateSeekingMate, components.StateMating, components.StateDead,
	}
	for _, s := range states {
		ctrl := components.Controller{State: s, IdleTimer: 5, TargetMate: ecs.Entity{}}
		if got := Transition(&ctrl, a); got.Next != components.StateDead {
			t.Errorf("Transition(%v) = %v, want dead", s, got.Next)
		}
	}
}

func TestReplenished(t *testing.T) {
	hungry := agentWith(components.Vitals{Life: 600, Hunger: 30, Thirst: 100})
	fed := agentWith(components.Vitals{Life: 600, Hunger: 60, Thirst: 100})

	if got := Replenished(components.StateDrinking, hungry); got.Next != components.StateSeekingFood || !got.Action.Has(ActAcquireFood) {
		t.Errorf("Replenished(drinking, hungry) = %v %v, want seeking_food with acquire", got.Next, got.Action)
	}
	if got := Replenished(components.StateDrinking, fed); got.Next != components.StateIdle {
		t.Errorf("Replenished(drinking, fed) = %v, want idle", got.Next)
	}
	if got := Replenished(components.StateEating, hungry); got.Next != components.StateIdle {
		t.Errorf("Replenished(eating) = %v, want idle", got.Next)
	}
}

func TestArrive(t *testing.T) {
	rules := Rules{DrinkBand: 0.8, EatReach: 3, RetargetDistance: 0.05, MateDistance: 1.2, WanderArrival: 0.2}

	tests := []struct {
		name  string
		state components.State
		prox  Proximity
		want  Decision
	}{
		{"drink inside rim band", components.StateSeekingWater,
			Proximity{TargetDist: 1, HasObject: true, ObjectDist: 3.7, ObjectRadius: 3}, Decision{Next: components.StateDrinking}},
		{"just inside rim band", components.StateSeekingWater,
			Proximity{TargetDist: 1, HasObject: true, ObjectDist: 3.79, ObjectRadius: 3}, Decision{Next: components.StateDrinking}},
		{"just outside rim band", components.StateSeekingWater,
			Proximity{TargetDist: 1, HasObject: true, ObjectDist: 3.81, ObjectRadius: 3}, Decision{Next: components.StateSeekingWater}},
		{"inside the lake band", components.StateSeekingWater,
			Proximity{TargetDist: 1, HasObject: true, ObjectDist: 2.21, ObjectRadius: 3}, Decision{Next: components.StateDrinking}},
		{"rim reached without capture", components.StateSeekingWater,
			Proximity{TargetDist: 0.01, HasObject: true, ObjectDist: 10, ObjectRadius: 3}, Decision{components.StateSeekingWater, ActAcquireWater}},
		{"eat within reach", components.StateSeekingFood,
			Proximity{TargetDist: 4.9, HasObject: true, ObjectDist: 4.9, ObjectRadius: 2}, Decision{Next: components.StateEating}},
		{"food out of reach", components.StateSeekingFood,
			Proximity{TargetDist: 5, HasObject: true, ObjectDist: 5, ObjectRadius: 2}, Decision{Next: components.StateSeekingFood}},
		{"mate in range", components.StateSeekingMate,
			Proximity{HasMate: true, MateDist: 1.1, MateCanMate: true}, Decision{components.StateMating, ActMate}},
		{"mate approaching", components.StateSeekingMate,
			Proximity{HasMate: true, MateDist: 5, MateCanMate: true}, Decision{Next: components.StateSeekingMate}},
		{"mate no longer willing", components.StateSeekingMate,
			Proximity{HasMate: true, MateDist: 1, MateCanMate: false}, Decision{components.StateWandering, ActClearTargets | ActWanderTarget}},
		{"mate gone", components.StateSeekingMate,
			Proximity{}, Decision{components.StateWandering, ActClearTargets | ActWanderTarget}},
		{"wander target reached", components.StateWandering,
			Proximity{TargetDist: 0.1}, Decision{components.StateIdle, ActClearTargets | ActStartIdle}},
		{"wander in progress", components.StateWandering,
			Proximity{TargetDist: 3}, Decision{Next: components.StateWandering}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Arrive(tt.state, tt.prox, rules); got != tt.want {
				t.Errorf("Arrive() = {%v %v}, want {%v %v}", got.Next, got.Action, tt.want.Next, tt.want.Action)
			}
		})
	}
}

func TestAction_String(t *testing.T) {
	if got := (ActAcquireWater | ActMove).String(); got != "acquire_water|move" {
		t.Errorf("String() = %q, want %q", got, "acquire_water|move")
	}
	if got := Action(0).String(); got != "none" {
		t.Errorf("String() = %q, want none", got)
	}
}
