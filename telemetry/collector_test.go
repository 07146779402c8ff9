package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/meadow/components"
)

func TestCollector_WindowTicks(t *testing.T) {
	c := NewCollector(10, 1.0/60)
	if got := c.WindowDurationTicks(); got != 600 {
		t.Fatalf("WindowDurationTicks() = %d, want 600", got)
	}
	if c.ShouldFlush(599) {
		t.Error("ShouldFlush(599) = true, want false")
	}
	if !c.ShouldFlush(600) {
		t.Error("ShouldFlush(600) = false, want true")
	}
}

func TestCollector_Flush(t *testing.T) {
	c := NewCollector(10, 1.0/60)

	c.RecordBirth()
	c.RecordBirth()
	c.RecordSeedSpawn()
	c.RecordPlacementFailure()
	c.RecordMating()
	c.RecordDrink()
	c.RecordMeal()
	c.RecordMeal()
	c.RecordDeath(components.CauseDehydration, 30)
	c.RecordDeath(components.CauseStarvation, 50)
	c.RecordDeath(components.CauseDehydration, 40)

	sample := NewSample()
	sample.Alive = 3
	sample.Adults = 2
	sample.Juveniles = 1
	sample.Dying = 1
	sample.States[components.StateWandering] = 2
	sample.States[components.StateDrinking] = 1
	sample.Life = []float64{0.5, 0.7, 0.9}
	sample.Hunger = []float64{1, 1, 1}
	sample.Thirst = []float64{0.2, 0.4, 0.6}

	stats := c.Flush(600, sample)

	ints := []struct {
		name      string
		got, want int
	}{
		{"Population", stats.Population, 3},
		{"Adults", stats.Adults, 2},
		{"Juveniles", stats.Juveniles, 1},
		{"Dying", stats.Dying, 1},
		{"Births", stats.Births, 2},
		{"SeedSpawns", stats.SeedSpawns, 1},
		{"PlacementFailures", stats.PlacementFailures, 1},
		{"Matings", stats.Matings, 1},
		{"Drinks", stats.Drinks, 1},
		{"Meals", stats.Meals, 2},
		{"Deaths", stats.Deaths, 3},
		{"DeathsDehydration", stats.DeathsDehydration, 2},
		{"DeathsStarvation", stats.DeathsStarvation, 1},
		{"DeathsOldAge", stats.DeathsOldAge, 0},
		{"Wandering", stats.Wandering, 2},
		{"Drinking", stats.Drinking, 1},
		{"Idle", stats.Idle, 0},
	}
	for _, f := range ints {
		if f.got != f.want {
			t.Errorf("%s = %d, want %d", f.name, f.got, f.want)
		}
	}

	if math.Abs(stats.LifeMean-0.7) > 1e-9 {
		t.Errorf("LifeMean = %v, want 0.7", stats.LifeMean)
	}
	if math.Abs(stats.ThirstP50-0.4) > 1e-9 {
		t.Errorf("ThirstP50 = %v, want 0.4", stats.ThirstP50)
	}
	if stats.HungerStd != 0 {
		t.Errorf("HungerStd = %v, want 0", stats.HungerStd)
	}
	if math.Abs(stats.MeanLifespanSec-40) > 1e-9 {
		t.Errorf("MeanLifespanSec = %v, want 40", stats.MeanLifespanSec)
	}
	if math.Abs(stats.SimTimeSec-10) > 1e-9 {
		t.Errorf("SimTimeSec = %v, want 10", stats.SimTimeSec)
	}
}

func TestCollector_FlushResetsCounters(t *testing.T) {
	c := NewCollector(1, 0.5)
	c.RecordBirth()
	c.RecordDeath(components.CauseOldAge, 600)
	c.Flush(2, NewSample())

	stats := c.Flush(4, NewSample())
	if stats.Births != 0 || stats.Deaths != 0 || stats.MeanLifespanSec != 0 {
		t.Errorf("second window = %+v, want counters reset", stats)
	}
	if stats.WindowStartTick != 2 {
		t.Errorf("WindowStartTick = %d, want 2", stats.WindowStartTick)
	}
}

func TestSample_Reset(t *testing.T) {
	s := NewSample()
	s.Alive = 4
	s.States[components.StateIdle] = 4
	s.Life = append(s.Life, 1, 1)

	s.Reset()
	if s.Alive != 0 || s.States[components.StateIdle] != 0 || len(s.Life) != 0 {
		t.Errorf("Reset() left %+v", s)
	}
	if len(s.States) != components.StateCount() {
		t.Errorf("len(States) = %d, want %d", len(s.States), components.StateCount())
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, 0, true)
	lt.Register(2, 60, false)

	lt.RecordMating(1, 2)
	lt.RecordDrink(1)
	lt.RecordMeal(2)
	lt.RecordDrink(99) // unknown IDs are ignored
	lt.UpdateSurvivalTime(2, 180, 0.5)

	if s := lt.Get(1); s.Matings != 1 || s.Children != 1 || s.Drinks != 1 || !s.Seeded {
		t.Errorf("Get(1) = %+v", s)
	}
	if s := lt.Get(2); s.SurvivalTimeSec != 60 || s.Meals != 1 {
		t.Errorf("Get(2) = %+v, want 60s survival and 1 meal", s)
	}

	if s := lt.Remove(1); s == nil {
		t.Fatal("Remove(1) = nil")
	}
	if lt.Count() != 1 || lt.Get(1) != nil {
		t.Errorf("Count() = %d after Remove, want 1", lt.Count())
	}
}

func TestNewDeathRecord(t *testing.T) {
	a := components.NewAdult(7, components.DefaultLimits())
	a.Thirst = 1
	a.Tick()

	r := NewDeathRecord(&a, 120, &LifetimeStats{SurvivalTimeSec: 42, Children: 3})
	if r.ID != 7 || r.Tick != 120 || r.Cause != "dehydration" || !r.Adult {
		t.Errorf("NewDeathRecord() = %+v", r)
	}
	if r.AgeTicks != 1 || r.LifespanSec != 42 || r.Children != 3 {
		t.Errorf("NewDeathRecord() = %+v, want age 1, lifespan 42, children 3", r)
	}
}
