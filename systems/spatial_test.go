package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/meadow/components"
)

func TestSpatialIndex_RegisterAndGet(t *testing.T) {
	idx := NewSpatialIndex(ecs.NewWorld())

	id := idx.Register(components.KindWater, r3.Vec{X: 5}, 3)
	if id.IsZero() {
		t.Fatal("Register returned zero ObjectID")
	}

	obj, ok := idx.Get(id)
	if !ok {
		t.Fatal("Get() ok = false for live object")
	}
	if obj.Kind != components.KindWater || obj.Radius != 3 || obj.Position.X != 5 {
		t.Errorf("Get() = %+v, want water at x=5 radius 3", obj)
	}
	if _, ok := idx.Get(components.ObjectID{}); ok {
		t.Error("Get(zero ID) ok = true, want false")
	}
}

func TestSpatialIndex_RemoveTombstones(t *testing.T) {
	idx := NewSpatialIndex(ecs.NewWorld())

	first := idx.Register(components.KindFood, r3.Vec{X: 1}, 1)
	if !idx.Remove(first) {
		t.Fatal("Remove() = false for live object")
	}
	if idx.Remove(first) {
		t.Error("second Remove() = true, want false")
	}
	if _, ok := idx.Get(first); ok {
		t.Error("Get() ok = true after Remove")
	}

	// Slot is reused with a new generation; the stale handle stays dead.
	second := idx.Register(components.KindFood, r3.Vec{X: 2}, 1)
	if second.Index != first.Index {
		t.Errorf("reused Index = %d, want %d", second.Index, first.Index)
	}
	if second.Gen == first.Gen {
		t.Error("reused slot kept the old generation")
	}
	if _, ok := idx.Get(first); ok {
		t.Error("stale handle resolved after slot reuse")
	}
	if obj, ok := idx.Get(second); !ok || obj.Position.X != 2 {
		t.Errorf("Get(second) = %+v, %v, want food at x=2", obj, ok)
	}
	if got := idx.Count(components.KindFood); got != 1 {
		t.Errorf("Count(food) = %d, want 1", got)
	}
}

func TestSpatialIndex_FindNearest(t *testing.T) {
	idx := NewSpatialIndex(ecs.NewWorld())

	if _, ok := idx.FindNearest(components.KindWater, r3.Vec{}); ok {
		t.Error("FindNearest() ok = true on empty index")
	}

	far := idx.Register(components.KindWater, r3.Vec{X: 10}, 1)
	tieA := idx.Register(components.KindWater, r3.Vec{X: 3}, 1)
	tieB := idx.Register(components.KindWater, r3.Vec{X: -3}, 1)
	idx.Register(components.KindFood, r3.Vec{X: 1}, 1)

	got, ok := idx.FindNearest(components.KindWater, r3.Vec{})
	if !ok {
		t.Fatal("FindNearest() ok = false")
	}
	if got.ID != tieA {
		t.Errorf("FindNearest() = %v, want first registered of tie %v", got.ID, tieA)
	}

	idx.Remove(tieA)
	got, _ = idx.FindNearest(components.KindWater, r3.Vec{})
	if got.ID != tieB {
		t.Errorf("FindNearest() after remove = %v, want %v", got.ID, tieB)
	}

	// 3D distance is used, not planar
	idx.Remove(tieB)
	high := idx.Register(components.KindWater, r3.Vec{X: 1, Y: 20}, 1)
	got, _ = idx.FindNearest(components.KindWater, r3.Vec{})
	if got.ID != far {
		t.Errorf("FindNearest() = %v, want %v (high object is farther in 3D), high = %v", got.ID, far, high)
	}
}

func TestSpatialIndex_ObstaclesAround(t *testing.T) {
	idx := NewSpatialIndex(ecs.NewWorld())
	idx.Register(components.KindWater, r3.Vec{X: 6.9}, 3) // 6.9 < 3 + 2 + 2
	idx.Register(components.KindWater, r3.Vec{X: 7}, 3)   // 7 is not < 7
	idx.Register(components.KindFood, r3.Vec{Z: -4, Y: 50}, 1)

	got := idx.ObstaclesAround(nil, r3.Vec{}, 2)
	if len(got) != 2 {
		t.Fatalf("ObstaclesAround() returned %d objects, want 2", len(got))
	}
	if got[0].Position.X != 6.9 {
		t.Errorf("first obstacle x = %v, want 6.9", got[0].Position.X)
	}
	if got[1].Kind != components.KindFood {
		t.Errorf("second obstacle kind = %v, want food (planar distance ignores height)", got[1].Kind)
	}
}

func TestSpatialIndex_AgentsTrackLivePosition(t *testing.T) {
	tw := newTestWorld(t, 50)
	self := tw.addAgent(r3.Vec{}, fullVitals())
	other := tw.addAgent(r3.Vec{X: 10}, fullVitals())

	if got := tw.index.AgentsAround(nil, r3.Vec{}, 1, self); len(got) != 0 {
		t.Fatalf("AgentsAround() = %d agents, want 0 before move", len(got))
	}

	// Move the other agent without re-registering it
	tw.posMap.Get(other).Vec = r3.Vec{X: 3}

	got := tw.index.AgentsAround(nil, r3.Vec{}, 1, self)
	if len(got) != 1 || got[0].Entity != other {
		t.Fatalf("AgentsAround() = %+v, want the moved agent", got)
	}
	if got[0].Position.X != 3 {
		t.Errorf("agent position = %v, want live x=3", got[0].Position.X)
	}

	// Removed entities never resolve
	tw.index.RemoveAgent(other)
	tw.world.RemoveEntity(other)
	if got := tw.index.AgentsAround(nil, r3.Vec{}, 5, self); len(got) != 0 {
		t.Errorf("AgentsAround() = %d agents after removal, want 0", len(got))
	}
}

func TestSpatialIndex_IsNearWater(t *testing.T) {
	idx := NewSpatialIndex(ecs.NewWorld())
	idx.Register(components.KindWater, r3.Vec{}, 5)
	idx.Register(components.KindFood, r3.Vec{X: 20}, 5)

	tests := []struct {
		name string
		pos  r3.Vec
		want bool
	}{
		{"inside", r3.Vec{X: 1}, true},
		{"within margin", r3.Vec{X: 6.9}, true},
		{"on margin", r3.Vec{X: 7}, false},
		{"near food only", r3.Vec{X: 20}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.IsNearWater(tt.pos, DefaultQueryMargin); got != tt.want {
				t.Errorf("IsNearWater(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}
