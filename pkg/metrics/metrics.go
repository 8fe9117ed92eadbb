// Package metrics derives standard meteorological quantities from a
// temperature/humidity pair. All functions are pure; inputs are trusted
// floats in the sensor's native ranges (0-50C, 20-90%RH) and are not
// bounds-checked. Callers must not pass NaN.
package metrics

import "math"

// Magnus formula constants (over water).
const (
	magnusGamma = 17.62
	magnusBeta  = 243.12
)

// Set holds the raw reading plus the ten derived quantities for one cycle.
type Set struct {
	Temperature float64 `json:"temperature_c"`
	Humidity    float64 `json:"humidity_pct"`

	HeatIndex        float64 `json:"heat_index_c"`
	DewPoint         float64 `json:"dew_point_c"`
	AbsHumidity      float64 `json:"abs_humidity_g_m3"`
	SpecificHumidity float64 `json:"specific_humidity"`
	MixingRatio      float64 `json:"mixing_ratio_g_kg"`
	VaporPressure    float64 `json:"vapor_pressure_hpa"`
	SatVaporPressure float64 `json:"sat_vapor_pressure_hpa"`
	WetBulb          float64 `json:"wet_bulb_c"`
	Humidex          float64 `json:"humidex"`
	Enthalpy         float64 `json:"enthalpy_kj_kg"`
}

// Compute evaluates every derived quantity for the given temperature (C)
// and relative humidity (%).
func Compute(t, rh float64) Set {
	return Set{
		Temperature:      t,
		Humidity:         rh,
		HeatIndex:        HeatIndex(t, rh),
		DewPoint:         DewPoint(t, rh),
		AbsHumidity:      AbsHumidity(t, rh),
		SpecificHumidity: SpecificHumidity(rh),
		MixingRatio:      MixingRatio(rh),
		VaporPressure:    VaporPressure(t, rh),
		SatVaporPressure: SatVaporPressure(t),
		WetBulb:          WetBulb(t, rh),
		Humidex:          Humidex(t, rh),
		Enthalpy:         Enthalpy(t, rh),
	}
}

// HeatIndex is the NOAA apparent temperature in C. Uses the Steadman
// approximation, blended with the Rothfusz regression when the simple
// result reaches 80F.
func HeatIndex(t, rh float64) float64 {
	tf := CtoF(t)

	hi := 0.5 * (tf + 61.0 + (tf-68.0)*1.2 + rh*0.094)
	if hi >= 80 {
		hi = -42.379 +
			2.04901523*tf +
			10.14333127*rh +
			-0.22475541*tf*rh +
			-0.00683783*tf*tf +
			-0.05481717*rh*rh +
			0.00122874*tf*tf*rh +
			0.00085282*tf*rh*rh +
			-0.00000199*tf*tf*rh*rh

		if rh < 13 && tf >= 80 && tf <= 112 {
			hi -= ((13 - rh) / 4) * math.Sqrt((17-math.Abs(tf-95))/17)
		} else if rh > 85 && tf >= 80 && tf <= 87 {
			hi += ((rh - 85) / 10) * ((87 - tf) / 5)
		}
	}

	return FtoC(hi)
}

// DewPoint is the simple linear approximation in C, valid for RH > 50%.
func DewPoint(t, rh float64) float64 {
	return t - ((100 - rh) / 5.0)
}

// AbsHumidity is the water vapor mass per air volume in g/m3.
func AbsHumidity(t, rh float64) float64 {
	return 216.7 * ((rh / 100.0) * 6.112 * math.Exp((magnusGamma*t)/(magnusBeta+t)) / (273.15 + t))
}

// SpecificHumidity is the water vapor mass fraction of moist air
// (dimensionless).
func SpecificHumidity(rh float64) float64 {
	return (0.622 * (rh / 100.0)) / (1 + 0.622*(rh/100.0))
}

// MixingRatio is the water vapor mass per dry air mass in g/kg.
func MixingRatio(rh float64) float64 {
	return (622 * (rh / 100.0)) / (1000 - rh/100.0)
}

// VaporPressure is the partial pressure of water vapor in hPa.
func VaporPressure(t, rh float64) float64 {
	return (rh / 100.0) * SatVaporPressure(t)
}

// SatVaporPressure is the Magnus saturation vapor pressure in hPa.
func SatVaporPressure(t float64) float64 {
	return 6.112 * math.Exp((magnusGamma*t)/(magnusBeta+t))
}

// WetBulb is the Stull empirical wet-bulb temperature in C.
func WetBulb(t, rh float64) float64 {
	return t*math.Atan(0.151977*math.Sqrt(rh+8.313659)) +
		math.Atan(t+rh) -
		math.Atan(rh-1.676331) +
		0.00391838*math.Pow(rh, 1.5)*math.Atan(0.023101*rh) -
		4.686035
}

// Humidex is the Canadian apparent-temperature index.
func Humidex(t, rh float64) float64 {
	return t + 0.5555*(VaporPressure(t, rh)-10.0)
}

// Enthalpy is the heat content of moist air in kJ/kg dry air.
func Enthalpy(t, rh float64) float64 {
	return 1.006*t + (2501+1.86*t)*(rh/100.0)
}

func CtoF(t float64) float64 {
	return t*1.8 + 32
}

func FtoC(t float64) float64 {
	return (t - 32) / 1.8
}
