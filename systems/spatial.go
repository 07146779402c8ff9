// Package systems provides ECS systems for the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/meadow/components"
)

// DefaultQueryMargin is the slack added to every proximity query so that
// avoidance activates before contact.
const DefaultQueryMargin = 2

// WorldObject is an entry in the spatial index.
// For agents, Position is read from the ECS at query time.
type WorldObject struct {
	ID       components.ObjectID
	Kind     components.Kind
	Position r3.Vec
	Radius   float64
	Entity   ecs.Entity // Agents only
}

type slot struct {
	obj  WorldObject
	gen  uint32
	live bool
}

// SpatialIndex is a flat registry of water, food and agent objects.
// Slots are reused through a free list; a generation counter on every slot
// keeps stale ObjectIDs from resolving after removal.
type SpatialIndex struct {
	world  *ecs.World
	posMap *ecs.Map1[components.Position]

	slots  []slot
	free   []uint32
	counts [3]int
	agents map[ecs.Entity]components.ObjectID

	// Margin is added to object and query radii in ObstaclesAround and AgentsAround.
	Margin float64
}

// NewSpatialIndex creates an empty index reading agent positions from world.
func NewSpatialIndex(world *ecs.World) *SpatialIndex {
	return &SpatialIndex{
		world:  world,
		posMap: ecs.NewMap1[components.Position](world),
		agents: make(map[ecs.Entity]components.ObjectID),
		Margin: DefaultQueryMargin,
	}
}

// Register adds a static object and returns its handle. No deduplication.
func (s *SpatialIndex) Register(kind components.Kind, pos r3.Vec, radius float64) components.ObjectID {
	return s.insert(WorldObject{Kind: kind, Position: pos, Radius: radius})
}

// RegisterAgent adds an agent entity. Its position tracks the entity's
// Position component without re-registration.
func (s *SpatialIndex) RegisterAgent(e ecs.Entity, radius float64) components.ObjectID {
	if id, ok := s.agents[e]; ok {
		return id
	}
	id := s.insert(WorldObject{Kind: components.KindAgent, Radius: radius, Entity: e})
	s.agents[e] = id
	return id
}

func (s *SpatialIndex) insert(obj WorldObject) components.ObjectID {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot{})
	}

	sl := &s.slots[idx]
	sl.gen++
	obj.ID = components.ObjectID{Index: idx, Gen: sl.gen}
	sl.obj = obj
	sl.live = true
	s.counts[obj.Kind]++
	return obj.ID
}

// Remove tombstones the slot. Returns false for stale or unknown handles.
func (s *SpatialIndex) Remove(id components.ObjectID) bool {
	sl := s.slot(id)
	if sl == nil {
		return false
	}
	if sl.obj.Kind == components.KindAgent {
		delete(s.agents, sl.obj.Entity)
	}
	s.counts[sl.obj.Kind]--
	sl.live = false
	sl.obj = WorldObject{}
	s.free = append(s.free, id.Index)
	return true
}

// RemoveAgent removes the entry registered for e, if any.
func (s *SpatialIndex) RemoveAgent(e ecs.Entity) bool {
	id, ok := s.agents[e]
	if !ok {
		return false
	}
	return s.Remove(id)
}

// Get resolves a handle. ok is false once the object was removed.
func (s *SpatialIndex) Get(id components.ObjectID) (WorldObject, bool) {
	sl := s.slot(id)
	if sl == nil {
		return WorldObject{}, false
	}
	obj, ok := s.resolve(sl)
	return obj, ok
}

// Count returns the number of live objects of the given kind.
func (s *SpatialIndex) Count(kind components.Kind) int {
	return s.counts[kind]
}

// Len returns the number of live objects.
func (s *SpatialIndex) Len() int {
	return s.counts[0] + s.counts[1] + s.counts[2]
}

func (s *SpatialIndex) slot(id components.ObjectID) *slot {
	if id.IsZero() || int(id.Index) >= len(s.slots) {
		return nil
	}
	sl := &s.slots[id.Index]
	if !sl.live || sl.gen != id.Gen {
		return nil
	}
	return sl
}

// resolve returns the object with its current position. Agents whose
// entity is gone resolve to nothing.
func (s *SpatialIndex) resolve(sl *slot) (WorldObject, bool) {
	obj := sl.obj
	if obj.Kind != components.KindAgent {
		return obj, true
	}
	if !s.world.Alive(obj.Entity) {
		return WorldObject{}, false
	}
	obj.Position = s.posMap.Get(obj.Entity).Vec
	return obj, true
}

// FindNearest returns the closest object of kind by 3D distance.
// Ties go to the object in the lowest slot.
func (s *SpatialIndex) FindNearest(kind components.Kind, pos r3.Vec) (WorldObject, bool) {
	var best WorldObject
	found := false
	bestDist := 0.0

	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.live || sl.obj.Kind != kind {
			continue
		}
		obj, ok := s.resolve(sl)
		if !ok {
			continue
		}
		d := r3.Norm(r3.Sub(obj.Position, pos))
		if !found || d < bestDist {
			best, bestDist, found = obj, d, true
		}
	}
	return best, found
}

// ObstaclesAround appends water and food objects whose planar distance from
// pos is below obj.Radius + radius + Margin.
func (s *SpatialIndex) ObstaclesAround(dst []WorldObject, pos r3.Vec, radius float64) []WorldObject {
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.live || !sl.obj.Kind.IsObstacle() {
			continue
		}
		if planarDist(sl.obj.Position, pos) < sl.obj.Radius+radius+s.Margin {
			dst = append(dst, sl.obj)
		}
	}
	return dst
}

// AgentsAround appends agents other than exclude under the same margin rule
// as ObstaclesAround.
func (s *SpatialIndex) AgentsAround(dst []WorldObject, pos r3.Vec, radius float64, exclude ecs.Entity) []WorldObject {
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.live || sl.obj.Kind != components.KindAgent || sl.obj.Entity == exclude {
			continue
		}
		obj, ok := s.resolve(sl)
		if !ok {
			continue
		}
		if planarDist(obj.Position, pos) < obj.Radius+radius+s.Margin {
			dst = append(dst, obj)
		}
	}
	return dst
}

// IsNearWater reports whether pos lies within margin of any water footprint.
func (s *SpatialIndex) IsNearWater(pos r3.Vec, margin float64) bool {
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.live || sl.obj.Kind != components.KindWater {
			continue
		}
		if planarDist(sl.obj.Position, pos) < sl.obj.Radius+margin {
			return true
		}
	}
	return false
}
