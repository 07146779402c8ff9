package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseControllers)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseAging)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.PhaseAvg[PhaseControllers] <= 0 {
		t.Error("expected controllers phase to be timed")
	}
	if stats.PhaseAvg[PhaseAging] <= 0 {
		t.Error("expected aging phase to be timed")
	}
	if stats.PhaseAvg[PhasePrune] != 0 {
		t.Errorf("PhaseAvg[prune] = %v, want 0", stats.PhaseAvg[PhasePrune])
	}
	if stats.MinTickDuration > stats.AvgTickDuration || stats.AvgTickDuration > stats.MaxTickDuration {
		t.Errorf("min/avg/max = %v/%v/%v, want ordered", stats.MinTickDuration, stats.AvgTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseControllers)
		pc.EndTick()
	}

	if pc.count != 5 {
		t.Errorf("count = %d, want 5", pc.count)
	}
	if stats := pc.Stats(); stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseBirths)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseControllers)
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	fast, slow := stats.PhasePct[PhaseBirths], stats.PhasePct[PhaseControllers]
	if slow <= fast {
		t.Errorf("controllers = %v%%, births = %v%%, want controllers larger", slow, fast)
	}
	if slow > 100 {
		t.Errorf("controllers = %v%%, want <= 100", slow)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgTickDuration != 0 {
		t.Errorf("AvgTickDuration = %v, want 0", stats.AvgTickDuration)
	}
	if stats.TicksPerSecond != 0 {
		t.Errorf("TicksPerSecond = %v, want 0", stats.TicksPerSecond)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("FrameDuration = %v, want >= 15ms", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("FPS = %v, want in (0, 70]", stats.FPS)
	}
}

func TestPhase_String(t *testing.T) {
	want := []string{"clock", "controllers", "births", "aging", "prune", "telemetry"}
	phases := Phases()
	if len(phases) != len(want) {
		t.Fatalf("len(Phases()) = %d, want %d", len(phases), len(want))
	}
	for i, ph := range phases {
		if ph.String() != want[i] {
			t.Errorf("Phases()[%d] = %q, want %q", i, ph.String(), want[i])
		}
	}
	if got := NumPhases.String(); got != "unknown" {
		t.Errorf("NumPhases.String() = %q, want %q", got, "unknown")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	var s PerfStats
	s.AvgTickDuration = 250 * time.Microsecond
	s.PhasePct[PhaseControllers] = 80
	s.PhasePct[PhaseAging] = 5
	s.PhasePct[PhasePrune] = 1

	row := s.ToCSV(600)
	if row.WindowEnd != 600 {
		t.Errorf("WindowEnd = %d, want 600", row.WindowEnd)
	}
	if row.AvgTickUS != 250 {
		t.Errorf("AvgTickUS = %d, want 250", row.AvgTickUS)
	}
	if row.ControllersPct != 80 || row.AgingPct != 5 || row.PrunePct != 1 {
		t.Errorf("phase pct = %v/%v/%v, want 80/5/1", row.ControllersPct, row.AgingPct, row.PrunePct)
	}
	if row.ClockPct != 0 {
		t.Errorf("ClockPct = %v, want 0 for an untimed phase", row.ClockPct)
	}
}
