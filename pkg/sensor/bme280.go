package sensor

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"

	"github.com/ericogr/dht11-station/pkg/config"
)

// BME280 is the I2C alternative backend for boards wired with a Bosch part
// instead of a DHT11. Only temperature and humidity are consumed; the
// pressure channel is ignored.
type BME280 struct {
	dev *bmxx80.Dev
	bus i2c.BusCloser
}

func NewBME280(cfg config.Config) (Sensor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	bus, err := i2creg.Open(cfg.I2C.Bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c: %w", err)
	}
	dev, err := bmxx80.NewI2C(bus, uint16(cfg.I2C.Address), &bmxx80.DefaultOpts)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("bme280 init: %w", err)
	}
	return &BME280{dev: dev, bus: bus}, nil
}

func (s *BME280) Label() string { return "BME280" }

func (s *BME280) Read() (Reading, error) {
	var e physic.Env
	if err := s.dev.Sense(&e); err != nil {
		return Invalid(), fmt.Errorf("bme280 sense: %w", err)
	}
	return Reading{
		Temperature: e.Temperature.Celsius(),
		Humidity:    float64(e.Humidity) / float64(physic.PercentRH),
		Timestamp:   time.Now(),
	}, nil
}

func (s *BME280) Close() error {
	if err := s.dev.Halt(); err != nil {
		return err
	}
	return s.bus.Close()
}
