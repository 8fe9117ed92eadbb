package main

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ericogr/dht11-station/pkg/config"
	"github.com/ericogr/dht11-station/pkg/eventlog"
	"github.com/ericogr/dht11-station/pkg/led"
	"github.com/ericogr/dht11-station/pkg/metrics"
	"github.com/ericogr/dht11-station/pkg/output"
	"github.com/ericogr/dht11-station/pkg/output/console"
	"github.com/ericogr/dht11-station/pkg/output/influx"
	mqttout "github.com/ericogr/dht11-station/pkg/output/mqtt"
	"github.com/ericogr/dht11-station/pkg/output/serialport"
	"github.com/ericogr/dht11-station/pkg/sensor"
)

const (
	waitMarker = "=== WAIT FOR 10 SECONDS FOR SCREEN TO REFRESH ==="

	msgSensorError = "Sensor error: nan values."
	msgCalcDone    = "Calculations for metrics done."
	msgParsing     = "Parsing data to serial output."
	msgSuccess     = "Successful display to serial monitor."

	// Short triple pulse acknowledging a good reading.
	ackBlinkCount  = 3
	ackBlinkPeriod = 70 * time.Millisecond

	// The wait window is spent blinking: waitBlinkCount on/off cycles
	// whose periods sum to the configured wait (8 x 2 x 625ms = 10s).
	waitBlinkCount = 8
)

type station struct {
	name            string
	sensor          sensor.Sensor
	led             *led.LED
	outputs         []output.Output
	events          *eventlog.Log
	start           time.Time
	ackBlinkPeriod  time.Duration
	waitBlinkPeriod time.Duration
}

func newStation(cfg config.Config, s sensor.Sensor, l *led.LED, outputs []output.Output) *station {
	start := time.Now()
	return &station{
		name:            cfg.StationName,
		sensor:          s,
		led:             l,
		outputs:         outputs,
		events:          eventlog.New(func() time.Duration { return time.Since(start) }),
		start:           start,
		ackBlinkPeriod:  ackBlinkPeriod,
		waitBlinkPeriod: time.Duration(cfg.WaitSeconds) * time.Second / (waitBlinkCount * 2),
	}
}

func (st *station) uptime() time.Duration {
	return time.Since(st.start)
}

// cycle runs one acquisition: read, log, compute, render, wait. Both the
// valid and invalid branches end with the same blink-out wait window so
// the polling period stays fixed.
func (st *station) cycle() {
	st.events.Clear()
	st.events.Append("Measurement received from " + st.sensor.Label() + ".")

	r, err := st.sensor.Read()
	if err != nil {
		log.Warnf("sensor read: %v", err)
		r = sensor.Invalid()
	}

	if !r.Valid() {
		st.events.Append(msgSensorError)
		st.events.AppendMarker(waitMarker)
		st.publish(r, nil)
		st.wait()
		return
	}

	st.events.Append(msgCalcDone)
	m := metrics.Compute(r.Temperature, r.Humidity)
	st.events.Append(msgParsing)

	if err := st.led.Blink(ackBlinkCount, st.ackBlinkPeriod); err != nil {
		log.Warnf("led ack blink: %v", err)
	}

	st.events.Append(msgSuccess)
	st.events.AppendMarker(waitMarker)
	st.publish(r, &m)
	st.wait()
}

func (st *station) publish(r sensor.Reading, m *metrics.Set) {
	rep := output.Report{
		Station: st.name,
		Uptime:  st.uptime(),
		Reading: r,
		Metrics: m,
		Events:  st.events.Entries(),
	}
	for _, o := range st.outputs {
		if err := o.Publish(rep); err != nil {
			log.Warnf("publish: %v", err)
		}
	}
}

func (st *station) wait() {
	if err := st.led.Blink(waitBlinkCount, st.waitBlinkPeriod); err != nil {
		log.Warnf("led wait blink: %v", err)
	}
}

func initOutputs(cfg *config.Config) ([]output.Output, error) {
	outs := make([]output.Output, 0, len(cfg.Outputs))
	for i := range cfg.Outputs {
		oc := &cfg.Outputs[i]
		switch strings.ToLower(oc.Type) {
		case "console":
			outs = append(outs, console.NewConsole())
		case "serial":
			if oc.Serial == nil {
				oc.Serial = &config.SerialConfig{}
			}
			o, err := serialport.NewSerial(*oc.Serial)
			if err != nil {
				return nil, err
			}
			outs = append(outs, o)
		case "mqtt":
			if oc.MQTT == nil {
				oc.MQTT = &config.MQTTConfig{}
			}
			o, err := mqttout.NewMQTT(*oc.MQTT)
			if err != nil {
				return nil, err
			}
			outs = append(outs, o)
		case "influx":
			if oc.Influx == nil {
				oc.Influx = &config.InfluxConfig{}
			}
			o, err := influx.NewInflux(*oc.Influx)
			if err != nil {
				return nil, err
			}
			outs = append(outs, o)
		default:
			return nil, fmt.Errorf("unknown output type %q", oc.Type)
		}
	}
	return outs, nil
}

func main() {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	s, err := sensor.New(cfg)
	if err != nil {
		log.Fatalf("sensor: %v", err)
	}
	defer s.Close()

	var l *led.LED
	if cfg.LEDPin != "" {
		if l, err = led.Open(cfg.LEDPin); err != nil {
			log.Warnf("led disabled: %v", err)
			l = nil
		}
	}

	outputs, err := initOutputs(&cfg)
	if err != nil {
		log.Fatalf("outputs: %v", err)
	}
	defer func() {
		for _, o := range outputs {
			if err := o.Close(); err != nil {
				log.Warnf("output close: %v", err)
			}
		}
	}()

	log.Infof("station %q: %s sensor, %d output(s), %ds refresh",
		cfg.StationName, s.Label(), len(outputs), cfg.WaitSeconds)

	st := newStation(cfg, s, l, outputs)
	for {
		st.cycle()
	}
}
