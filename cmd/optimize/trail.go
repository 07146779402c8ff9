package main

import (
	"fmt"
	"math"
	"os"

	"github.com/gocarina/gocsv"
)

// evalRow is one line of optimize_log.csv. Parameter columns follow
// NewParamVector order.
type evalRow struct {
	Eval              int     `csv:"eval"`
	Fitness           float64 `csv:"fitness"`
	Quality           float64 `csv:"quality"`
	InitialPopulation float64 `csv:"initial_population"`
	GrowTimer         float64 `csv:"grow_timer"`
	MaxLife           float64 `csv:"max_life"`
	MateRadius        float64 `csv:"mate_radius"`
}

// trail logs every evaluation and remembers the best one.
type trail struct {
	file  *os.File
	evals int
	best  []float64
	fit   float64
}

func newTrail(path string, pv *ParamVector) (*trail, error) {
	if pv.Dim() != 4 {
		return nil, fmt.Errorf("optimize log has 4 parameter columns, vector has %d", pv.Dim())
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &trail{file: f, fit: math.Inf(1)}, nil
}

// Record appends one evaluation. Lower fitness is better.
func (t *trail) Record(values []float64, fitness, quality float64) {
	t.evals++
	if fitness < t.fit {
		t.fit = fitness
		t.best = append(t.best[:0], values...)
	}

	rows := []evalRow{{
		Eval:              t.evals,
		Fitness:           fitness,
		Quality:           quality,
		InitialPopulation: values[0],
		GrowTimer:         values[1],
		MaxLife:           values[2],
		MateRadius:        values[3],
	}}
	marshal := gocsv.MarshalWithoutHeaders
	if t.evals == 1 {
		marshal = gocsv.Marshal
	}
	if err := marshal(rows, t.file); err != nil {
		fmt.Fprintf(os.Stderr, "writing optimize log: %v\n", err)
	}
}

// Evals returns the number of recorded evaluations.
func (t *trail) Evals() int { return t.evals }

// Best returns the parameters of the best evaluation, or nil before any.
func (t *trail) Best() []float64 { return t.best }

// BestFitness returns the lowest fitness seen.
func (t *trail) BestFitness() float64 { return t.fit }

func (t *trail) Close() error { return t.file.Close() }
