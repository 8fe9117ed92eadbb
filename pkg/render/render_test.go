package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ericogr/dht11-station/pkg/eventlog"
	"github.com/ericogr/dht11-station/pkg/metrics"
)

func renderScreen(t *testing.T, m *metrics.Set, events []eventlog.Entry) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Screen(&buf, "DHT11 Weather Station", 90*time.Second, m, events); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func lineCount(s string) int {
	return strings.Count(s, "\n")
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{90 * time.Second, "00:01:30"},
		{3*time.Hour + 4*time.Minute + 5*time.Second, "03:04:05"},
		// no day rollover: hours keep counting
		{49 * time.Hour, "49:00:00"},
	}
	for _, tt := range tests {
		if got := FormatUptime(tt.in); got != tt.want {
			t.Fatalf("FormatUptime(%v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenConstantHeight(t *testing.T) {
	m := metrics.Compute(27, 43)
	empty := renderScreen(t, &m, nil)

	events := make([]eventlog.Entry, 0, eventlog.Capacity)
	for i := 0; i < eventlog.Capacity; i++ {
		events = append(events, eventlog.Entry{Message: "event", Elapsed: time.Second})
	}
	full := renderScreen(t, &m, events)

	if lineCount(empty) != lineCount(full) {
		t.Fatalf("frame height varies with log size: %d vs %d", lineCount(empty), lineCount(full))
	}
}

func TestScreenValidFrame(t *testing.T) {
	m := metrics.Compute(27, 43)
	out := renderScreen(t, &m, []eventlog.Entry{
		{Message: "Measurement received from DHT11.", Elapsed: 90 * time.Second},
		{Message: "=== WAIT FOR 10 SECONDS FOR SCREEN TO REFRESH ===", Marker: true},
	})

	for _, want := range []string{
		"DHT11 Weather Station Live Feed",
		"Uptime: 00:01:30",
		"  Temp (C):           27.00  (approx +/-2.00)",
		"  Humidity (%):       43.00  (approx +/-5.00)",
		"  Humidex:            29.94",
		"  Dew Point (C):      15.60",
		"  Enthalpy (kJ/kg):   1124.19",
		"  Specific Humidity:  0.21102",
		"  Vapor Pressure (hPa):15.29",
		"  Sat Vapor Press.:   35.57",
		"Log & Status:",
		"  [00:01:30] Measurement received from DHT11.",
		"  === WAIT FOR 10 SECONDS FOR SCREEN TO REFRESH ===",
		"github.com/ericogr/dht11-station",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("frame missing %q:\n%s", want, out)
		}
	}

	// Marker entries render without a timestamp.
	if strings.Contains(out, "] === WAIT") {
		t.Fatalf("marker entry rendered with timestamp:\n%s", out)
	}
}

func TestScreenInvalidFrame(t *testing.T) {
	out := renderScreen(t, nil, []eventlog.Entry{
		{Message: "Sensor error: nan values.", Elapsed: time.Second},
	})

	if !strings.Contains(out, "Sensor error: invalid reading, metrics skipped.") {
		t.Fatalf("missing error notice:\n%s", out)
	}
	for _, metric := range []string{"Heat Index", "Dew Point", "Enthalpy", "Vapor Pressure"} {
		if strings.Contains(out, metric) {
			t.Fatalf("invalid frame contains metric line %q:\n%s", metric, out)
		}
	}
	if !strings.Contains(out, "  [00:00:01] Sensor error: nan values.") {
		t.Fatalf("missing log entry:\n%s", out)
	}
}

func TestScreenBorderWidth(t *testing.T) {
	m := metrics.Compute(27, 43)
	out := renderScreen(t, &m, nil)
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "|") || strings.HasPrefix(line, "+") {
			if len(line) != innerWidth+2 {
				t.Fatalf("frame line width %d: %q", len(line), line)
			}
		}
	}
}

func TestScreenLogSectionPadding(t *testing.T) {
	m := metrics.Compute(27, 43)
	out := renderScreen(t, &m, []eventlog.Entry{{Message: "only one", Elapsed: 0}})

	lines := strings.Split(out, "\n")
	start := -1
	for i, l := range lines {
		if strings.HasPrefix(l, "Log & Status:") {
			start = i
			break
		}
	}
	if start == -1 {
		t.Fatalf("no log section:\n%s", out)
	}
	// Heading + Capacity entry lines + one trailing blank before the footer.
	section := lines[start+1 : start+1+eventlog.Capacity+1]
	if section[0] != "  [00:00:00] only one" {
		t.Fatalf("first log line: %q", section[0])
	}
	for i, l := range section[1:] {
		if strings.TrimSpace(l) != "" {
			t.Fatalf("pad line %d not blank: %q", i, l)
		}
	}
}
