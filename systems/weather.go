package systems

import "github.com/pthm-cable/meadow/config"

// Weather is environment-wide rain state. Agents never read it; only the
// presentation layer does.
type Weather struct {
	Raining   bool
	Intensity float64 // 0..1
}

// NewWeather creates weather from config.
func NewWeather(cfg config.WeatherConfig) *Weather {
	return &Weather{Raining: cfg.Rain, Intensity: clamp01(cfg.RainIntensity)}
}

// Toggle switches rain on or off.
func (w *Weather) Toggle() {
	w.Raining = !w.Raining
}

// SetIntensity sets rain intensity clamped to [0, 1].
func (w *Weather) SetIntensity(v float64) {
	w.Intensity = clamp01(v)
}

// EffectiveIntensity returns the intensity if raining, otherwise 0.
func (w *Weather) EffectiveIntensity() float64 {
	if !w.Raining {
		return 0
	}
	return w.Intensity
}
