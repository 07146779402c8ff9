package telemetry

// LifetimeStats tracks per-agent statistics over its lifetime.
type LifetimeStats struct {
	BirthTick       int32
	SurvivalTimeSec float64
	Seeded          bool // Spawned as part of the seed population

	Matings  int
	Children int
	Drinks   int
	Meals    int
}

// LifetimeTracker manages per-agent lifetime statistics keyed by agent ID.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new agent.
func (lt *LifetimeTracker) Register(id uint32, birthTick int32, seeded bool) {
	lt.stats[id] = &LifetimeStats{BirthTick: birthTick, Seeded: seeded}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an agent's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordMating increments the mating count of both parents.
func (lt *LifetimeTracker) RecordMating(a, b uint32) {
	for _, id := range [2]uint32{a, b} {
		if s := lt.stats[id]; s != nil {
			s.Matings++
			s.Children++
		}
	}
}

// RecordDrink increments the drink count.
func (lt *LifetimeTracker) RecordDrink(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Drinks++
	}
}

// RecordMeal increments the meal count.
func (lt *LifetimeTracker) RecordMeal(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Meals++
	}
}

// UpdateSurvivalTime updates the survival time based on current tick.
func (lt *LifetimeTracker) UpdateSurvivalTime(id uint32, currentTick int32, dt float64) {
	if s := lt.stats[id]; s != nil {
		s.SurvivalTimeSec = float64(currentTick-s.BirthTick) * dt
	}
}

// Count returns the number of tracked agents.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
