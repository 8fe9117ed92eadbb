package console

import (
	"os"

	"github.com/ericogr/dht11-station/pkg/output"
	"github.com/ericogr/dht11-station/pkg/render"
)

type ConsoleOutput struct{}

func NewConsole() output.Output { return &ConsoleOutput{} }

func (c *ConsoleOutput) Publish(rep output.Report) error {
	return render.Screen(os.Stdout, rep.Station, rep.Uptime, rep.Metrics, rep.Events)
}

func (c *ConsoleOutput) Close() error { return nil }
