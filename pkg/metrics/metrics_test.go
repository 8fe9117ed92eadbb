package metrics

import (
	"math"
	"testing"
)

func approx(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func TestComputeReferenceValues(t *testing.T) {
	// Documented reference reading: 27.00C at 43.00%RH.
	m := Compute(27.00, 43.00)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"dew point", m.DewPoint, 15.60},
		{"vapor pressure", m.VaporPressure, 15.29},
		{"sat vapor pressure", m.SatVaporPressure, 35.57},
		{"humidex", m.Humidex, 29.94},
		{"enthalpy", m.Enthalpy, 1124.19},
	}
	for _, tt := range tests {
		if !approx(tt.got, tt.want, 0.01) {
			t.Fatalf("%s: got %.4f want %.2f", tt.name, tt.got, tt.want)
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	a := Compute(27.00, 43.00)
	b := Compute(27.00, 43.00)
	if a != b {
		t.Fatalf("same inputs produced different sets:\n%+v\n%+v", a, b)
	}
}

func TestHeatIndexSteadmanBranch(t *testing.T) {
	// 20C/50% stays below the 80F blend threshold:
	// 0.5*(68 + 61 + 0 + 4.7) = 66.85F = 19.36C.
	if got := HeatIndex(20, 50); !approx(got, 19.36, 0.01) {
		t.Fatalf("heat index: got %.4f want 19.36", got)
	}
}

func TestHeatIndexRothfuszBranch(t *testing.T) {
	// Hot and humid air must feel hotter than the dry-bulb reading.
	got := HeatIndex(32, 70)
	if got <= 32 {
		t.Fatalf("heat index %.2f not above dry-bulb 32.00", got)
	}
	// NOAA chart gives roughly 41C for 32C/70%.
	if !approx(got, 41, 1.5) {
		t.Fatalf("heat index %.2f too far from chart value ~41", got)
	}
}

func TestWetBulbBelowDryBulb(t *testing.T) {
	for _, tc := range []struct{ t, rh float64 }{
		{10, 30}, {20, 50}, {27, 43}, {35, 80},
	} {
		wb := WetBulb(tc.t, tc.rh)
		if wb >= tc.t {
			t.Fatalf("wet bulb %.2f >= dry bulb %.2f at RH %.0f%%", wb, tc.t, tc.rh)
		}
	}
}

func TestSpecificHumidityAndMixingRatio(t *testing.T) {
	// At 43%RH: q = 0.622*0.43/(1+0.622*0.43), r = 622*0.43/(1000-0.43).
	if got := SpecificHumidity(43); !approx(got, 0.21101, 0.0001) {
		t.Fatalf("specific humidity: got %.5f", got)
	}
	if got := MixingRatio(43); !approx(got, 0.26757, 0.001) {
		t.Fatalf("mixing ratio: got %.5f", got)
	}
}

func TestAbsHumidity(t *testing.T) {
	// 216.7 * vaporPressure / (273.15 + t) with vaporPressure at 27C/43%.
	want := 216.7 * VaporPressure(27, 43) / (273.15 + 27)
	if got := AbsHumidity(27, 43); !approx(got, want, 1e-9) {
		t.Fatalf("abs humidity: got %.4f want %.4f", got, want)
	}
}
