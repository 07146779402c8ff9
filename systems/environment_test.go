package systems

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/meadow/config"
)

func TestAgingTimer(t *testing.T) {
	timer := NewAgingTimer(time.Second)

	if n := timer.Advance(400 * time.Millisecond); n != 0 {
		t.Errorf("Advance(400ms) = %d, want 0", n)
	}
	if n := timer.Advance(700 * time.Millisecond); n != 1 {
		t.Errorf("Advance(700ms) = %d, want 1", n)
	}
	if p := timer.Pending(); p != 100*time.Millisecond {
		t.Errorf("Pending() = %v, want 100ms", p)
	}
	if n := timer.Advance(2500 * time.Millisecond); n != 2 {
		t.Errorf("Advance(2.5s) = %d, want 2", n)
	}
	if n := timer.Advance(-time.Second); n != 0 {
		t.Errorf("Advance(negative) = %d, want 0", n)
	}

	timer.Reset()
	if p := timer.Pending(); p != 0 {
		t.Errorf("Pending() after Reset = %v, want 0", p)
	}
}

func TestAgingTimer_StepRateIndependent(t *testing.T) {
	fast, slow := NewAgingTimer(time.Second), NewAgingTimer(time.Second)

	var fastTicks, slowTicks int
	for i := 0; i < 600; i++ {
		fastTicks += fast.Advance(10 * time.Millisecond)
	}
	for i := 0; i < 60; i++ {
		slowTicks += slow.Advance(100 * time.Millisecond)
	}
	if fastTicks != 6 || slowTicks != 6 {
		t.Errorf("ticks = %d and %d, want 6 for both step rates", fastTicks, slowTicks)
	}
}

func TestNewAgingTimer_DefaultInterval(t *testing.T) {
	if got := NewAgingTimer(0).Interval; got != time.Second {
		t.Errorf("Interval = %v, want 1s", got)
	}
}

func TestWeather(t *testing.T) {
	w := NewWeather(config.WeatherConfig{Rain: false, RainIntensity: 1.5})
	if w.Intensity != 1 {
		t.Errorf("Intensity = %v, want clamped to 1", w.Intensity)
	}
	if got := w.EffectiveIntensity(); got != 0 {
		t.Errorf("EffectiveIntensity() = %v while dry, want 0", got)
	}

	w.Toggle()
	w.SetIntensity(0.4)
	if got := w.EffectiveIntensity(); got != 0.4 {
		t.Errorf("EffectiveIntensity() = %v, want 0.4", got)
	}

	w.SetIntensity(-1)
	if w.Intensity != 0 {
		t.Errorf("Intensity = %v, want clamped to 0", w.Intensity)
	}
}

func TestDayNight_Clock(t *testing.T) {
	tests := []struct {
		phase   float64
		want    string
		day     bool
		nightly float64
	}{
		{0, "06:00 AM", true, 0.5},
		{0.25, "12:00 PM", true, 0},
		{0.5, "06:00 PM", false, 0.5},
		{0.75, "12:00 AM", false, 1},
	}
	for _, tt := range tests {
		d := NewDayNight(config.ClockConfig{DayLength: 240, StartPhase: tt.phase})
		if got := d.ClockString(); got != tt.want {
			t.Errorf("phase %v: ClockString() = %q, want %q", tt.phase, got, tt.want)
		}
		if got := d.IsDay(); got != tt.day {
			t.Errorf("phase %v: IsDay() = %v, want %v", tt.phase, got, tt.day)
		}
		if got := d.NightFactor(); math.Abs(got-tt.nightly) > 1e-9 {
			t.Errorf("phase %v: NightFactor() = %v, want %v", tt.phase, got, tt.nightly)
		}
	}
}

func TestDayNight_AdvanceWraps(t *testing.T) {
	d := NewDayNight(config.ClockConfig{DayLength: 100, StartPhase: 0.9})
	d.Advance(20)
	if math.Abs(d.Time-10) > 1e-9 {
		t.Errorf("Time = %v, want 10 after wrapping", d.Time)
	}
	if math.Abs(d.Phase()-0.1) > 1e-9 {
		t.Errorf("Phase() = %v, want 0.1", d.Phase())
	}
}

func TestDayNight_Modes(t *testing.T) {
	d := NewDayNight(config.ClockConfig{DayLength: 240})

	d.SetNight()
	d.Advance(30)
	if d.Phase() != phaseMidnight {
		t.Errorf("Phase() = %v in night mode, want frozen at %v", d.Phase(), phaseMidnight)
	}

	d.SetDay()
	d.Advance(30)
	if d.Phase() != phaseNoon {
		t.Errorf("Phase() = %v in day mode, want frozen at %v", d.Phase(), phaseNoon)
	}

	d.SetAuto()
	d.Advance(24)
	if math.Abs(d.Phase()-0.35) > 1e-9 {
		t.Errorf("Phase() = %v after resuming, want 0.35", d.Phase())
	}
	if d.Mode.String() != "auto" {
		t.Errorf("Mode = %v, want auto", d.Mode)
	}
}

func TestNewDayNight_DefaultLength(t *testing.T) {
	if got := NewDayNight(config.ClockConfig{}).Length; got != 240 {
		t.Errorf("Length = %v, want 240", got)
	}
}

func TestGenerateTerrain(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	tc := cfg.Terrain
	half := cfg.Derived.HalfExtent

	terrain := GenerateTerrain(tc, half, 42)
	if len(terrain.Lakes()) == 0 || len(terrain.Lakes()) > tc.NumLakes {
		t.Fatalf("len(Lakes()) = %d, want 1..%d", len(terrain.Lakes()), tc.NumLakes)
	}
	if len(terrain.Trees()) == 0 || len(terrain.Trees()) > tc.NumTrees {
		t.Fatalf("len(Trees()) = %d, want 1..%d", len(terrain.Trees()), tc.NumTrees)
	}

	for i, l := range terrain.Lakes() {
		if math.Abs(l.Center.X)+l.Radius > half || math.Abs(l.Center.Z)+l.Radius > half {
			t.Errorf("lake %d at %v radius %v leaves the ground", i, l.Center, l.Radius)
		}
		if l.Radius < tc.LakeMinRadius || l.Radius > tc.LakeMaxRadius {
			t.Errorf("lake %d radius = %v, want [%v, %v]", i, l.Radius, tc.LakeMinRadius, tc.LakeMaxRadius)
		}
		for j, o := range terrain.Lakes()[i+1:] {
			if d := planarDist(l.Center, o.Center); d < l.Radius+o.Radius+tc.LakeSpacing {
				t.Errorf("lakes %d and %d are %v apart, want >= %v", i, i+1+j, d, l.Radius+o.Radius+tc.LakeSpacing)
			}
		}
	}

	for i, tr := range terrain.Trees() {
		for _, l := range terrain.Lakes() {
			if planarDist(tr.Center, l.Center) < tr.Radius+l.Radius+tc.LakeClearance {
				t.Errorf("tree %d at %v intrudes on lake at %v", i, tr.Center, l.Center)
			}
		}
		for j, o := range terrain.Trees()[i+1:] {
			if d := planarDist(tr.Center, o.Center); d < tc.MinTreeDistance {
				t.Errorf("trees %d and %d are %v apart, want >= %v", i, i+1+j, d, tc.MinTreeDistance)
			}
		}
	}
}

func TestGenerateTerrain_Deterministic(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	a := GenerateTerrain(cfg.Terrain, cfg.Derived.HalfExtent, 7)
	b := GenerateTerrain(cfg.Terrain, cfg.Derived.HalfExtent, 7)

	if len(a.Lakes()) != len(b.Lakes()) || len(a.Trees()) != len(b.Trees()) {
		t.Fatal("same seed produced different object counts")
	}
	for i := range a.Lakes() {
		if a.Lakes()[i] != b.Lakes()[i] {
			t.Errorf("lake %d = %v, want %v", i, b.Lakes()[i], a.Lakes()[i])
		}
	}

	// A configured seed overrides the argument
	cfg.Terrain.Seed = 7
	c := GenerateTerrain(cfg.Terrain, cfg.Derived.HalfExtent, 99)
	if len(c.Lakes()) != len(a.Lakes()) || (len(a.Lakes()) > 0 && c.Lakes()[0] != a.Lakes()[0]) {
		t.Error("configured seed did not override the argument")
	}
}

func TestTerrain_Containment(t *testing.T) {
	terrain := NewTerrain(50,
		[]Circle{{Radius: 5}},
		[]Circle{{Center: r3.Vec{X: 20}, Radius: 1}},
	)
	tests := []struct {
		name         string
		x, z         float64
		lake, inTree bool
	}{
		{"lake center", 0, 0, true, false},
		{"lake edge", 5, 0, false, false},
		{"tree", 20.5, 0, false, true},
		{"open", 30, 30, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := terrain.InLake(tt.x, tt.z); got != tt.lake {
				t.Errorf("InLake() = %v, want %v", got, tt.lake)
			}
			if got := terrain.InTree(tt.x, tt.z); got != tt.inTree {
				t.Errorf("InTree() = %v, want %v", got, tt.inTree)
			}
		})
	}
}
