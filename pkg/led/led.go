// Package led drives the status LED: a short triple pulse acknowledges a
// good reading, a slow repeated blink spans the wait window between cycles.
package led

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// LED wraps a digital output pin. A nil *LED is a valid no-op device that
// still sleeps out its blink timing, so the loop keeps its fixed period
// when running headless.
type LED struct {
	pin gpio.PinIO
}

// Open resolves the named GPIO pin and configures it low.
func Open(name string) (*LED, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("led: no gpio pin %q", name)
	}
	l := New(pin)
	if err := l.Off(); err != nil {
		return nil, err
	}
	return l, nil
}

func New(pin gpio.PinIO) *LED {
	return &LED{pin: pin}
}

// Blink drives the pin high for period then low for period, times over.
// The call blocks for the full 2*times*period window.
func (l *LED) Blink(times int, period time.Duration) error {
	for i := 0; i < times; i++ {
		if err := l.set(gpio.High); err != nil {
			return err
		}
		time.Sleep(period)
		if err := l.set(gpio.Low); err != nil {
			return err
		}
		time.Sleep(period)
	}
	return nil
}

// Off forces the pin low.
func (l *LED) Off() error {
	return l.set(gpio.Low)
}

func (l *LED) set(level gpio.Level) error {
	if l == nil || l.pin == nil {
		return nil
	}
	return l.pin.Out(level)
}
