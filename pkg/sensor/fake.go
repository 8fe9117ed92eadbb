package sensor

import (
	"math/rand"
	"time"

	"github.com/ericogr/dht11-station/pkg/config"
)

// SimulatedSensor produces plausible indoor readings without hardware.
// With FailEvery = n > 0 every n-th read returns a NaN reading, which
// exercises the error branch of the acquisition loop.
type SimulatedSensor struct {
	failEvery int
	reads     int
}

func NewSimulated(cfg config.Config) Sensor {
	return &SimulatedSensor{failEvery: cfg.Simulation.FailEvery}
}

func (f *SimulatedSensor) Label() string { return "simulated sensor" }

func (f *SimulatedSensor) Read() (Reading, error) {
	f.reads++
	if f.failEvery > 0 && f.reads%f.failEvery == 0 {
		return Invalid(), nil
	}
	return Reading{
		Temperature: 18 + rand.Float64()*12, // 18..30C
		Humidity:    35 + rand.Float64()*30, // 35..65%
		Timestamp:   time.Now(),
	}, nil
}

func (f *SimulatedSensor) Close() error { return nil }
