package sensor

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/ericogr/dht11-station/pkg/config"
)

const (
	// Datasheet: hold the bus low for at least 18ms to request a reading.
	dht11StartLow = 18 * time.Millisecond
	// Power-up settle time before the first read.
	dht11Settle = 2 * time.Second
	// Minimum spacing between reads; the part misbehaves below ~1s.
	dht11MinInterval = time.Second

	// A data bit is a ~50us low followed by ~27us high for 0 or ~70us
	// high for 1; anything past this threshold decodes as 1.
	dht11OneThreshold = 48 * time.Microsecond
	dht11PulseTimeout = 150 * time.Microsecond
)

var errPulseTimeout = errors.New("dht11: pulse timeout")

// DHT11 reads the single-wire DHT11 protocol by bit-banging a GPIO pin.
type DHT11 struct {
	pin      gpio.PinIO
	lastRead time.Time
}

// NewDHT11 opens the configured GPIO pin and waits out the sensor's
// power-up settle time.
func NewDHT11(cfg config.Config) (Sensor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	pin := gpioreg.ByName(cfg.DHTPin)
	if pin == nil {
		return nil, fmt.Errorf("dht11: no gpio pin %q", cfg.DHTPin)
	}
	if err := pin.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("dht11: idle pin: %w", err)
	}
	time.Sleep(dht11Settle)
	return &DHT11{pin: pin}, nil
}

func (d *DHT11) Label() string { return "DHT11" }

func (d *DHT11) Read() (Reading, error) {
	if since := time.Since(d.lastRead); since < dht11MinInterval {
		time.Sleep(dht11MinInterval - since)
	}
	d.lastRead = time.Now()

	data, err := d.acquire()
	if err != nil || !checksumOK(data) {
		// The sensor contract is "NaN and retry next cycle".
		return Invalid(), nil
	}
	r, ok := decodeDHT11(data)
	if !ok {
		return Invalid(), nil
	}
	return r, nil
}

func (d *DHT11) Close() error {
	return d.pin.Out(gpio.Low)
}

// acquire runs one bus transaction: host start signal, sensor response
// preamble, then 40 data bits.
func (d *DHT11) acquire() ([5]byte, error) {
	var data [5]byte

	if err := d.pin.Out(gpio.Low); err != nil {
		return data, fmt.Errorf("dht11: start signal: %w", err)
	}
	time.Sleep(dht11StartLow)
	if err := d.pin.Out(gpio.High); err != nil {
		return data, fmt.Errorf("dht11: release bus: %w", err)
	}
	time.Sleep(30 * time.Microsecond)
	if err := d.pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return data, fmt.Errorf("dht11: switch to input: %w", err)
	}

	// Response preamble: ~80us low, ~80us high, then the first bit's low.
	if err := d.waitLevel(gpio.Low, dht11PulseTimeout); err != nil {
		return data, err
	}
	if err := d.waitLevel(gpio.High, dht11PulseTimeout); err != nil {
		return data, err
	}
	if err := d.waitLevel(gpio.Low, dht11PulseTimeout); err != nil {
		return data, err
	}

	for i := 0; i < 40; i++ {
		if err := d.waitLevel(gpio.High, dht11PulseTimeout); err != nil {
			return data, err
		}
		start := time.Now()
		if err := d.waitLevel(gpio.Low, dht11PulseTimeout); err != nil {
			return data, err
		}
		if time.Since(start) > dht11OneThreshold {
			data[i/8] |= 1 << (7 - uint(i%8))
		}
	}
	return data, nil
}

// waitLevel spins until the pin reads level. Polling beats edge waits here:
// the pulses are tens of microseconds and the scheduler latency of a
// channel wakeup would swallow them.
func (d *DHT11) waitLevel(level gpio.Level, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for d.pin.Read() != level {
		if time.Now().After(deadline) {
			return errPulseTimeout
		}
	}
	return nil
}

func checksumOK(data [5]byte) bool {
	return data[4] == data[0]+data[1]+data[2]+data[3]
}

// decodeDHT11 unpacks the integral/decimal byte pairs. The DHT11 reports
// whole degrees and whole percent; the decimal bytes are zero on most
// parts but are honored when present.
func decodeDHT11(data [5]byte) (Reading, bool) {
	hum := float64(data[0]) + float64(data[1])/10.0
	temp := float64(data[2]) + float64(data[3]&0x7F)/10.0
	if data[3]&0x80 != 0 {
		temp = -temp
	}
	if hum > 100 {
		return Reading{}, false
	}
	return Reading{Temperature: temp, Humidity: hum, Timestamp: time.Now()}, true
}
