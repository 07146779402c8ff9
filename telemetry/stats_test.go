package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Distribution
	}{
		{"empty slice", []float64{}, Distribution{}},
		{"single element", []float64{5}, Distribution{Mean: 5, P10: 5, P50: 5, P90: 5}},
		{"unsorted", []float64{5, 1, 3, 2, 4}, Distribution{Mean: 3, Std: math.Sqrt(2.5), P10: 1, P50: 3, P90: 5}},
		{"constant", []float64{2, 2, 2, 2}, Distribution{Mean: 2, P10: 2, P50: 2, P90: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			for _, f := range []struct {
				name      string
				got, want float64
			}{
				{"Mean", got.Mean, tt.want.Mean},
				{"Std", got.Std, tt.want.Std},
				{"P10", got.P10, tt.want.P10},
				{"P50", got.P50, tt.want.P50},
				{"P90", got.P90, tt.want.P90},
			} {
				if math.Abs(f.got-f.want) > 1e-9 {
					t.Errorf("%s = %v, want %v", f.name, f.got, f.want)
				}
			}
		})
	}
}

func TestSummarize_DoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered to %v", values)
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
	if got := Mean([]float64{10, 20, 60}); math.Abs(got-30) > 1e-9 {
		t.Errorf("Mean() = %v, want 30", got)
	}
}

func TestWindowStats_LogValue(t *testing.T) {
	s := WindowStats{WindowEndTick: 600, Population: 12, Deaths: 2}
	v := s.LogValue()

	attrs := map[string]bool{}
	for _, a := range v.Group() {
		attrs[a.Key] = true
	}
	for _, key := range []string{"window_end", "population", "deaths", "thirst_mean"} {
		if !attrs[key] {
			t.Errorf("LogValue() missing %q", key)
		}
	}
}
