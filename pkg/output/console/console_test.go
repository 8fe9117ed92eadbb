package console

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ericogr/dht11-station/pkg/eventlog"
	"github.com/ericogr/dht11-station/pkg/metrics"
	"github.com/ericogr/dht11-station/pkg/output"
	"github.com/ericogr/dht11-station/pkg/sensor"
)

func captureStdout(f func()) string {
	r, w, _ := os.Pipe()
	stdout := os.Stdout
	os.Stdout = w
	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()
	f()
	_ = w.Close()
	os.Stdout = stdout
	return <-outC
}

func TestConsolePublish(t *testing.T) {
	c := NewConsole()
	m := metrics.Compute(27, 43)
	rep := output.Report{
		Station: "DHT11 Weather Station",
		Uptime:  90 * time.Second,
		Reading: sensor.Reading{Temperature: 27, Humidity: 43},
		Metrics: &m,
		Events: []eventlog.Entry{
			{Message: "Measurement received from DHT11.", Elapsed: 90 * time.Second},
		},
	}
	out := captureStdout(func() {
		if err := c.Publish(rep); err != nil {
			t.Errorf("publish: %v", err)
		}
	})
	for _, want := range []string{
		"DHT11 Weather Station Live Feed",
		"Uptime: 00:01:30",
		"  Humidex:            29.94",
		"  [00:01:30] Measurement received from DHT11.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("console output missing %q:\n%s", want, out)
		}
	}
}
