package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
)

const testDT = 1.0 / 60

// testWorld bundles an ECS world, spatial index and controller system for
// systems tests.
type testWorld struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Velocity, components.Agent, components.Controller]
	posMap *ecs.Map1[components.Position]
	agents *ecs.Map1[components.Agent]
	ctrls  *ecs.Map1[components.Controller]
	index  *SpatialIndex
	cfg    *config.Config
	sys    *ControllerSystem
	births []r3.Vec
}

func newTestWorld(t *testing.T, half float64) *testWorld {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Ground.Size = half * 2
	cfg.Recompute()

	w := ecs.NewWorld()
	tw := &testWorld{
		world:  w,
		mapper: ecs.NewMap4[components.Position, components.Velocity, components.Agent, components.Controller](w),
		posMap: ecs.NewMap1[components.Position](w),
		agents: ecs.NewMap1[components.Agent](w),
		ctrls:  ecs.NewMap1[components.Controller](w),
		index:  NewSpatialIndex(w),
		cfg:    cfg,
	}
	tw.sys = NewControllerSystem(w, tw.index, cfg.Steering, half, rand.New(rand.NewSource(1)), func(pos r3.Vec) {
		tw.births = append(tw.births, pos)
	})
	return tw
}

// addAgent spawns an adult at pos with the given vitals and registers it.
func (tw *testWorld) addAgent(pos r3.Vec, v components.Vitals) ecs.Entity {
	a := components.NewAdult(uint32(tw.index.Count(components.KindAgent)+1), LimitsFromConfig(tw.cfg.Agent))
	a.Vitals = v
	p := components.Position{Vec: pos}
	vel := components.Velocity{}
	ctrl := components.Controller{}
	e := tw.mapper.NewEntity(&p, &vel, &a, &ctrl)
	tw.index.RegisterAgent(e, tw.cfg.Agent.Radius)
	return e
}

func (tw *testWorld) pos(e ecs.Entity) r3.Vec {
	return tw.posMap.Get(e).Vec
}

func (tw *testWorld) agent(e ecs.Entity) *components.Agent {
	return tw.agents.Get(e)
}

func (tw *testWorld) ctrl(e ecs.Entity) *components.Controller {
	return tw.ctrls.Get(e)
}

// runUntil steps the controller until cond holds or max steps pass.
// Returns the number of steps taken, or -1 on timeout.
func (tw *testWorld) runUntil(max int, cond func() bool) int {
	for i := 0; i < max; i++ {
		tw.sys.Update(testDT)
		if cond() {
			return i + 1
		}
	}
	return -1
}

func fullVitals() components.Vitals {
	return components.Vitals{Life: 600, Hunger: 100, Thirst: 100, Reproduction: 100}
}
