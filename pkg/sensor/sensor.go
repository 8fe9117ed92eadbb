package sensor

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ericogr/dht11-station/pkg/config"
)

// Reading is one temperature/humidity acquisition. Either field may be NaN
// when the sensor could not produce a value; callers must check Valid
// before deriving metrics.
type Reading struct {
	Temperature float64   `json:"temperature_c"`
	Humidity    float64   `json:"humidity_pct"`
	Timestamp   time.Time `json:"timestamp"`
}

// Valid reports whether both fields carry usable values.
func (r Reading) Valid() bool {
	return !math.IsNaN(r.Temperature) && !math.IsNaN(r.Humidity)
}

// Invalid returns a NaN/NaN reading stamped with the current time.
func Invalid() Reading {
	return Reading{Temperature: math.NaN(), Humidity: math.NaN(), Timestamp: time.Now()}
}

type Sensor interface {
	// Label names the sensor for log entries ("DHT11", "BME280", ...).
	Label() string
	// Read acquires one reading. Failed acquisitions (timeout, bad
	// checksum) surface as a NaN reading, not an error; errors are
	// reserved for transport failures.
	Read() (Reading, error)
	Close() error
}

// New builds the sensor backend selected by the configuration.
func New(cfg config.Config) (Sensor, error) {
	switch strings.ToLower(cfg.SensorType) {
	case "dht11":
		return NewDHT11(cfg)
	case "bme280":
		return NewBME280(cfg)
	case "simulation":
		return NewSimulated(cfg), nil
	default:
		return nil, fmt.Errorf("unknown sensor type %q", cfg.SensorType)
	}
}
