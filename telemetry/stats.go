package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Population int `csv:"population"`
	Adults     int `csv:"adults"`
	Juveniles  int `csv:"juveniles"`
	Dying      int `csv:"dying"` // Dead, awaiting removal

	// Events during window
	Births            int `csv:"births"`
	SeedSpawns        int `csv:"seed_spawns"`
	PlacementFailures int `csv:"placement_failures"`
	Matings           int `csv:"matings"`
	Drinks            int `csv:"drinks"`
	Meals             int `csv:"meals"`
	Deaths            int `csv:"deaths"`
	DeathsOldAge      int `csv:"deaths_old_age"`
	DeathsStarvation  int `csv:"deaths_starvation"`
	DeathsDehydration int `csv:"deaths_dehydration"`

	// Controller state occupancy at window end
	Idle         int `csv:"state_idle"`
	Wandering    int `csv:"state_wandering"`
	SeekingWater int `csv:"state_seeking_water"`
	Drinking     int `csv:"state_drinking"`
	SeekingFood  int `csv:"state_seeking_food"`
	Eating       int `csv:"state_eating"`
	SeekingMate  int `csv:"state_seeking_mate"`

	// Vital distributions over living agents, as fractions of max
	LifeMean   float64 `csv:"life_mean"`
	LifeStd    float64 `csv:"life_std"`
	LifeP10    float64 `csv:"life_p10"`
	LifeP50    float64 `csv:"life_p50"`
	HungerMean float64 `csv:"hunger_mean"`
	HungerStd  float64 `csv:"hunger_std"`
	HungerP10  float64 `csv:"hunger_p10"`
	HungerP50  float64 `csv:"hunger_p50"`
	ThirstMean float64 `csv:"thirst_mean"`
	ThirstStd  float64 `csv:"thirst_std"`
	ThirstP10  float64 `csv:"thirst_p10"`
	ThirstP50  float64 `csv:"thirst_p50"`

	// Lifespan of agents that died this window
	MeanLifespanSec float64 `csv:"mean_lifespan"`
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes mean, standard deviation and empirical quantiles.
// Returns the zero Distribution for an empty sample.
func Summarize(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var d Distribution
	if n == 1 {
		d.Mean = sorted[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(sorted, nil)
	}
	d.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	d.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	d.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return d
}

// Mean returns the arithmetic mean, or 0 for an empty sample.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := stat.Mean(values, nil)
	if math.IsNaN(m) {
		return 0
	}
	return m
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("population", s.Population),
		slog.Int("adults", s.Adults),
		slog.Int("juveniles", s.Juveniles),
		slog.Int("dying", s.Dying),
		slog.Int("births", s.Births),
		slog.Int("matings", s.Matings),
		slog.Int("drinks", s.Drinks),
		slog.Int("meals", s.Meals),
		slog.Int("deaths", s.Deaths),
		slog.Int("deaths_old_age", s.DeathsOldAge),
		slog.Int("deaths_starvation", s.DeathsStarvation),
		slog.Int("deaths_dehydration", s.DeathsDehydration),
		slog.Int("placement_failures", s.PlacementFailures),
		slog.Float64("life_mean", s.LifeMean),
		slog.Float64("hunger_mean", s.HungerMean),
		slog.Float64("thirst_mean", s.ThirstMean),
		slog.Float64("mean_lifespan", s.MeanLifespanSec),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
