package output

import (
	"time"

	"github.com/ericogr/dht11-station/pkg/eventlog"
	"github.com/ericogr/dht11-station/pkg/metrics"
	"github.com/ericogr/dht11-station/pkg/sensor"
)

// Report is the per-cycle snapshot handed to every output. Metrics is nil
// when the cycle's reading was invalid.
type Report struct {
	Station string
	Uptime  time.Duration
	Reading sensor.Reading
	Metrics *metrics.Set
	Events  []eventlog.Entry
}

type Output interface {
	Publish(Report) error
	Close() error
}

// constructors are in subpackages
