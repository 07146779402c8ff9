// Package telemetry provides population tracking, bookmarking, and CSV output.
package telemetry

import "github.com/pthm-cable/meadow/components"

// DeathRecord is one row of deaths.csv.
type DeathRecord struct {
	ID          uint32  `csv:"id"`
	Tick        int32   `csv:"tick"`
	Cause       string  `csv:"cause"`
	AgeTicks    int     `csv:"age_ticks"`
	Adult       bool    `csv:"adult"`
	LifespanSec float64 `csv:"lifespan"`
	Children    int     `csv:"children"`
}

// NewDeathRecord builds a death record for a dead agent.
// Lifetime stats are optional.
func NewDeathRecord(a *components.Agent, tick int32, ls *LifetimeStats) DeathRecord {
	r := DeathRecord{
		ID:       a.ID,
		Tick:     tick,
		Cause:    a.Cause().String(),
		AgeTicks: a.Age,
		Adult:    a.Adult,
	}
	if ls != nil {
		r.LifespanSec = ls.SurvivalTimeSec
		r.Children = ls.Children
	}
	return r
}
