// Package main searches population parameters with CMA-ES, scoring each
// candidate by how long headless meadows stay populated.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/meadow/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 216000, "Survival cap per run in ticks")
	seeds := flag.Int("seeds", 3, "Runs per candidate")
	maxEvals := flag.Int("max-evals", 100, "Candidate budget")
	outputDir := flag.String("output", "", "Directory for optimize_log.csv and best_config.yaml")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	params := NewParamVector()
	runSeeds := make([]int64, *seeds)
	for i := range runSeeds {
		runSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, int32(*maxTicks), runSeeds, baseCfg)

	trail, err := newTrail(filepath.Join(*outputDir, "optimize_log.csv"), params)
	if err != nil {
		log.Fatalf("creating log: %v", err)
	}
	defer trail.Close()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			used := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(used)
			trail.Record(used, fitness, evaluator.LastQuality())
			fmt.Printf("eval %d/%d: survived %.0fs, quality %.2f (best %.0fs)\n",
				trail.Evals(), *maxEvals, -fitness, evaluator.LastQuality(), -trail.BestFitness())
			return fitness
		},
	}

	dim := params.Dim()
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   4 + int(3*math.Log(float64(dim))),
	}
	start := params.Normalize(params.ExtractFromConfig(baseCfg))

	if _, err := optimize.Minimize(problem, start, &optimize.Settings{FuncEvaluations: *maxEvals}, method); err != nil {
		log.Printf("optimization ended: %v", err)
	}

	best := trail.Best()
	if best == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nbest mean survival %.0fs after %d evaluations\n", -trail.BestFitness(), trail.Evals())
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %g\n", spec.Path, best[i])
	}

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, best)
	out := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(out); err != nil {
		log.Fatalf("writing best config: %v", err)
	}
	fmt.Printf("best config saved to %s\n", out)
}
