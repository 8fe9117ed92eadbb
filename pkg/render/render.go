// Package render formats the per-cycle status panel: a bordered header with
// uptime, the metrics section (or a sensor-error notice), the padded log
// section, and a project banner footer.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ericogr/dht11-station/pkg/eventlog"
	"github.com/ericogr/dht11-station/pkg/metrics"
)

const (
	// Inner width of the bordered frame, excluding the '|' pair.
	innerWidth = 52

	// Blank lines emitted before a full frame so the previous frame
	// scrolls out of a dumb serial terminal.
	clearLines = 30
)

var (
	border    = "+" + strings.Repeat("-", innerWidth) + "+"
	blankLine = strings.Repeat(" ", innerWidth+1)
)

// Screen writes one complete frame. m is nil when the cycle's reading was
// invalid; the metrics section is then replaced by the error notice and the
// screen-clear scroll is skipped so the notice stays adjacent to the last
// good frame.
func Screen(w io.Writer, station string, uptime time.Duration, m *metrics.Set, events []eventlog.Entry) error {
	var b bytes.Buffer

	if m != nil {
		b.WriteString(strings.Repeat("\n", clearLines))
	}

	b.WriteString(border + "\n")
	fmt.Fprintf(&b, "|%s|\n", center(station+" Live Feed", innerWidth))
	fmt.Fprintf(&b, "|%-*s|\n", innerWidth, "         Uptime: "+FormatUptime(uptime))
	b.WriteString(border + "\n")

	if m != nil {
		metricsSection(&b, m)
	} else {
		b.WriteString("  Sensor error: invalid reading, metrics skipped.\n")
	}
	b.WriteString(border + "\n")

	logSection(&b, events)
	footer(&b)

	_, err := w.Write(b.Bytes())
	return err
}

func metricsSection(b *bytes.Buffer, m *metrics.Set) {
	fmt.Fprintf(b, "  Temp (C):           %.2f  (approx +/-2.00)\n", m.Temperature)
	fmt.Fprintf(b, "  Humidity (%%):       %.2f  (approx +/-5.00)\n", m.Humidity)
	fmt.Fprintf(b, "  Heat Index (C):     %.2f\n", m.HeatIndex)
	fmt.Fprintf(b, "  Humidex:            %.2f\n", m.Humidex)
	fmt.Fprintf(b, "  Dew Point (C):      %.2f\n", m.DewPoint)
	fmt.Fprintf(b, "  Wet Bulb Temp (C):  %.2f\n", m.WetBulb)
	fmt.Fprintf(b, "  Enthalpy (kJ/kg):   %.2f\n", m.Enthalpy)
	b.WriteString("\n")
	fmt.Fprintf(b, "  Abs Humidity (g/m3):%.2f\n", m.AbsHumidity)
	fmt.Fprintf(b, "  Specific Humidity:  %.5f\n", m.SpecificHumidity)
	fmt.Fprintf(b, "  Mixing Ratio (g/kg):%.2f\n", m.MixingRatio)
	b.WriteString("\n")
	fmt.Fprintf(b, "  Vapor Pressure (hPa):%.2f\n", m.VaporPressure)
	fmt.Fprintf(b, "  Sat Vapor Press.:   %.2f\n", m.SatVaporPressure)
}

// logSection always emits exactly eventlog.Capacity entry lines plus one
// trailing blank line, padding with blanks so the frame height is constant.
func logSection(b *bytes.Buffer, events []eventlog.Entry) {
	fmt.Fprintf(b, "%-49s\n", "Log & Status:")
	n := 0
	for _, e := range events {
		if n == eventlog.Capacity {
			break
		}
		if e.Marker {
			fmt.Fprintf(b, "  %s\n", e.Message)
		} else {
			fmt.Fprintf(b, "  [%s] %s\n", FormatUptime(e.Elapsed), e.Message)
		}
		n++
	}
	for ; n < eventlog.Capacity; n++ {
		b.WriteString(blankLine + "\n")
	}
	b.WriteString(blankLine + "\n")
}

func footer(b *bytes.Buffer) {
	b.WriteString(border + "\n")
	fmt.Fprintf(b, "|%-*s|\n", innerWidth, " dht11-station | Serial Live Feed")
	fmt.Fprintf(b, "|%-*s|\n", innerWidth, " github.com/ericogr/dht11-station")
	b.WriteString(border + "\n")
}

// FormatUptime renders elapsed time as HH:MM:SS. Hours are not wrapped to
// days; the underlying counter wraps silently like the source timer.
func FormatUptime(d time.Duration) string {
	sec := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, (sec/60)%60, sec%60)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
