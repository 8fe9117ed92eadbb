// Package serialport writes the status panel to a physical serial device,
// the station's original transport.
package serialport

import (
	"fmt"
	"io"

	serial "github.com/jacobsa/go-serial/serial"

	"github.com/ericogr/dht11-station/pkg/config"
	"github.com/ericogr/dht11-station/pkg/output"
	"github.com/ericogr/dht11-station/pkg/render"
)

const (
	DefaultDevice   = "/dev/ttyAMA0"
	DefaultBaudRate = 9600
)

type SerialOutput struct {
	port io.ReadWriteCloser
}

func NewSerial(cfg config.SerialConfig) (output.Output, error) {
	if cfg.Device == "" {
		cfg.Device = DefaultDevice
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaudRate
	}

	opts := serial.OpenOptions{
		PortName:        cfg.Device,
		BaudRate:        cfg.BaudRate,
		DataBits:        8,
		StopBits:        1,
		ParityMode:      serial.PARITY_NONE,
		MinimumReadSize: 1,
	}
	port, err := serial.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Device, err)
	}
	return &SerialOutput{port: port}, nil
}

func (s *SerialOutput) Publish(rep output.Report) error {
	return render.Screen(s.port, rep.Station, rep.Uptime, rep.Metrics, rep.Events)
}

func (s *SerialOutput) Close() error {
	return s.port.Close()
}
