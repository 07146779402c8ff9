package main

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalSec float64                 // sim seconds before extinction (or the cap if it survived)
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated mean survival time across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalSurvival, totalQuality float64
	for _, r := range results {
		totalSurvival += r.survivalSec
		totalQuality += computeQuality(r.windowStats)
	}

	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return -totalSurvival / n
}

// checkEvery is how many steps run between extinction checks.
const checkEvery = 60

// runSimulation executes a single headless simulation run.
// Runs until the population is gone or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}

	g, err := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		Headless:       true,
		Gate:           game.RemoveImmediately,
		StepsPerUpdate: checkEvery,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		slog.Error("failed to create game", "seed", seed, "error", err)
		return result
	}
	defer g.Unload()

	dt := cfg.Physics.DT
	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()

		if p := g.Population(); p.Alive == 0 {
			result.survivalSec = float64(g.Tick()) * dt
			return result
		}
	}

	result.survivalSec = float64(fe.maxTicks) * dt
	return result
}

// Quality component weights.
const (
	qualityWeightStability = 0.4
	qualityWeightVitals    = 0.4
	qualityWeightBirths    = 0.2

	qualityWarmupWindows = 3 // skip first N windows (warmup)
)

// computeQuality scores ecosystem health in [0, 1] from window stats:
// steady population, well-fed agents, and ongoing births.
// It is reported alongside fitness but does not change it.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	counts := make([]float64, 0, len(valid))
	var vitalsSum float64
	var windowsWithBirths int
	for _, w := range valid {
		if w.Population == 0 {
			continue
		}
		counts = append(counts, float64(w.Population))

		hunger := math.Exp(-math.Pow((w.HungerP50-0.7)/0.25, 2))
		thirst := math.Exp(-math.Pow((w.ThirstP50-0.8)/0.2, 2))
		vitalsSum += (hunger + thirst) / 2

		if w.Births > 0 {
			windowsWithBirths++
		}
	}
	if len(counts) == 0 {
		return 0
	}

	stability := 0.0
	if len(counts) >= 2 {
		c := cv(counts)
		stability = math.Exp(-c * c)
	}
	vitals := vitalsSum / float64(len(counts))
	births := float64(windowsWithBirths) / float64(len(counts))

	return clamp01(qualityWeightStability*stability +
		qualityWeightVitals*vitals +
		qualityWeightBirths*births)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
