// Package influx forwards each valid cycle's metric set to an InfluxDB
// time-series bucket.
package influx

import (
	"context"
	"fmt"

	influxdb2 "github.com/influxdata/influxdb-client-go"

	"github.com/ericogr/dht11-station/pkg/config"
	"github.com/ericogr/dht11-station/pkg/output"
)

const DefaultMeasurement = "environment"

type InfluxOutput struct {
	client influxdb2.Client
	bucket string
	meas   string
}

func NewInflux(cfg config.InfluxConfig) (output.Output, error) {
	if cfg.Server == "" {
		return nil, fmt.Errorf("influx output requires a server URL")
	}
	if cfg.Measurement == "" {
		cfg.Measurement = DefaultMeasurement
	}
	return &InfluxOutput{
		client: influxdb2.NewClient(cfg.Server, cfg.AuthToken),
		bucket: cfg.Bucket,
		meas:   cfg.Measurement,
	}, nil
}

func (o *InfluxOutput) Publish(rep output.Report) error {
	if rep.Metrics == nil {
		return nil
	}
	m := rep.Metrics
	pt := influxdb2.NewPoint(o.meas,
		map[string]string{
			"station": rep.Station,
		},
		map[string]interface{}{
			"temperature":        m.Temperature,
			"humidity":           m.Humidity,
			"heat_index":         m.HeatIndex,
			"dew_point":          m.DewPoint,
			"abs_humidity":       m.AbsHumidity,
			"specific_humidity":  m.SpecificHumidity,
			"mixing_ratio":       m.MixingRatio,
			"vapor_pressure":     m.VaporPressure,
			"sat_vapor_pressure": m.SatVaporPressure,
			"wet_bulb":           m.WetBulb,
			"humidex":            m.Humidex,
			"enthalpy":           m.Enthalpy,
		},
		rep.Reading.Timestamp,
	)
	return o.client.WriteAPIBlocking("", o.bucket).WritePoint(context.Background(), pt)
}

func (o *InfluxOutput) Close() error {
	o.client.Close()
	return nil
}
