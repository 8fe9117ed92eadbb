package led

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestBlinkEndsLow(t *testing.T) {
	pin := &gpiotest.Pin{N: "test-led", Num: 20}
	l := New(pin)
	if err := l.Blink(3, time.Millisecond); err != nil {
		t.Fatalf("blink: %v", err)
	}
	if pin.Read() != gpio.Low {
		t.Fatalf("pin left high after blink")
	}
}

func TestBlinkBlocksForWindow(t *testing.T) {
	l := New(&gpiotest.Pin{N: "test-led", Num: 20})
	start := time.Now()
	if err := l.Blink(2, 5*time.Millisecond); err != nil {
		t.Fatalf("blink: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("blink returned after %v; want >= 20ms", elapsed)
	}
}

func TestNilLEDStillSleeps(t *testing.T) {
	var l *LED
	start := time.Now()
	if err := l.Blink(2, 5*time.Millisecond); err != nil {
		t.Fatalf("nil blink: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("nil blink returned after %v; want >= 20ms", elapsed)
	}
	if err := l.Off(); err != nil {
		t.Fatalf("nil off: %v", err)
	}
}

func TestOff(t *testing.T) {
	pin := &gpiotest.Pin{N: "test-led", Num: 20, L: gpio.High}
	l := New(pin)
	if err := l.Off(); err != nil {
		t.Fatalf("off: %v", err)
	}
	if pin.Read() != gpio.Low {
		t.Fatalf("pin still high after Off")
	}
}
