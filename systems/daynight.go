package systems

import (
	"fmt"
	"math"

	"github.com/pthm-cable/meadow/config"
)

// ClockMode selects how the day/night clock advances.
type ClockMode uint8

const (
	ClockAuto  ClockMode = iota // Time advances with the simulation
	ClockDay                    // Frozen at noon
	ClockNight                  // Frozen at midnight
)

// String returns the mode name.
func (m ClockMode) String() string {
	switch m {
	case ClockDay:
		return "day"
	case ClockNight:
		return "night"
	default:
		return "auto"
	}
}

const (
	phaseNoon     = 0.25
	phaseMidnight = 0.75
	sunriseHour   = 6
)

// DayNight tracks the time of day. Phase 0 is sunrise, 0.25 noon, 0.5 sunset.
type DayNight struct {
	Time   float64 // Seconds into the cycle
	Length float64 // Seconds per day
	Mode   ClockMode
}

// NewDayNight creates a clock from config.
func NewDayNight(cfg config.ClockConfig) *DayNight {
	length := cfg.DayLength
	if length <= 0 {
		length = 240
	}
	return &DayNight{Time: cfg.StartPhase * length, Length: length}
}

// Advance moves the clock forward by dt seconds in auto mode.
func (d *DayNight) Advance(dt float64) {
	if d.Mode != ClockAuto {
		return
	}
	d.Time = math.Mod(d.Time+dt, d.Length)
}

// SetDay freezes the clock at noon.
func (d *DayNight) SetDay() {
	d.Mode = ClockDay
	d.Time = phaseNoon * d.Length
}

// SetNight freezes the clock at midnight.
func (d *DayNight) SetNight() {
	d.Mode = ClockNight
	d.Time = phaseMidnight * d.Length
}

// SetAuto resumes the cycle from the current time.
func (d *DayNight) SetAuto() {
	d.Mode = ClockAuto
}

// Phase returns the fraction of the day elapsed since sunrise in [0, 1).
func (d *DayNight) Phase() float64 {
	p := math.Mod(d.Time/d.Length, 1)
	if p < 0 {
		p++
	}
	return p
}

// SunAngle returns the sun's angle above the eastern horizon in radians.
func (d *DayNight) SunAngle() float64 {
	return d.Phase() * 2 * math.Pi
}

// NightFactor returns 0 at noon, 0.5 at the horizons and 1 at midnight.
func (d *DayNight) NightFactor() float64 {
	return clamp01((1 - math.Sin(d.SunAngle())) / 2)
}

// IsDay reports whether the sun is above the horizon.
func (d *DayNight) IsDay() bool {
	return d.Phase() < 0.5
}

// ClockString formats the time of day as "hh:mm AM".
func (d *DayNight) ClockString() string {
	minutes := int(math.Floor(d.Phase()*24*60)) + sunriseHour*60
	minutes %= 24 * 60
	h, m := minutes/60, minutes%60

	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, m, suffix)
}
