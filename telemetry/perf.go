package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase identifies one part of a simulation step.
type Phase uint8

// Step phases in execution order.
const (
	PhaseClock Phase = iota
	PhaseControllers
	PhaseBirths
	PhaseAging
	PhasePrune
	PhaseTelemetry

	NumPhases
)

var phaseNames = [NumPhases]string{"clock", "controllers", "births", "aging", "prune", "telemetry"}

func (p Phase) String() string {
	if p >= NumPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases returns the step phases in execution order.
func Phases() []Phase {
	out := make([]Phase, NumPhases)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

// stepTiming is the measured cost of one step.
type stepTiming struct {
	total  time.Duration
	phases [NumPhases]time.Duration
}

// PerfCollector keeps a ring of the most recent step timings.
type PerfCollector struct {
	ring  []stepTiming
	next  int
	count int

	cur        stepTiming
	stepStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize steps.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]stepTiming, windowSize)}
}

// StartTick begins timing a step.
func (p *PerfCollector) StartTick() {
	p.cur = stepTiming{}
	p.stepStart = time.Now()
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = phase < NumPhases
}

// EndTick closes the step and stores it in the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.stepStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// RecordFrame measures the time since the previous call. Graphical mode only.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the step timings in the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg [NumPhases]time.Duration
	PhasePct [NumPhases]float64 // Share of the average step

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameDuration: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	totals := make([]float64, p.count)
	perPhase := make([]float64, p.count)
	for i, st := range p.ring[:p.count] {
		totals[i] = float64(st.total)
	}
	avg := stat.Mean(totals, nil)
	s.AvgTickDuration = time.Duration(avg)
	s.MinTickDuration = time.Duration(floats.Min(totals))
	s.MaxTickDuration = time.Duration(floats.Max(totals))
	if avg > 0 {
		s.TicksPerSecond = float64(time.Second) / avg
	}

	for ph := range NumPhases {
		for i, st := range p.ring[:p.count] {
			perPhase[i] = float64(st.phases[ph])
		}
		m := stat.Mean(perPhase, nil)
		s.PhaseAvg[ph] = time.Duration(m)
		if avg > 0 {
			s.PhasePct[ph] = m / avg * 100
		}
	}
	return s
}

// LogStats logs the summary as a "perf" event.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer. Phases under 0.1% are omitted.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for ph, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, slog.Float64(Phase(ph).String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd      int32   `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	FPS            float64 `csv:"fps"`
	ClockPct       float64 `csv:"clock_pct"`
	ControllersPct float64 `csv:"controllers_pct"`
	BirthsPct      float64 `csv:"births_pct"`
	AgingPct       float64 `csv:"aging_pct"`
	PrunePct       float64 `csv:"prune_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		FPS:            s.FPS,
		ClockPct:       s.PhasePct[PhaseClock],
		ControllersPct: s.PhasePct[PhaseControllers],
		BirthsPct:      s.PhasePct[PhaseBirths],
		AgingPct:       s.PhasePct[PhaseAging],
		PrunePct:       s.PhasePct[PhasePrune],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
