package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ericogr/dht11-station/pkg/config"
	"github.com/ericogr/dht11-station/pkg/metrics"
	"github.com/ericogr/dht11-station/pkg/output"
)

const (
	DefaultServer   = "tcp://localhost:1883"
	DefaultClientID = "dht11-station"
	DefaultTopic    = "dht11station/state"
)

type MQTTOutput struct {
	client mqtt.Client
	topic  string
}

// statePayload is the JSON snapshot published once per valid cycle.
type statePayload struct {
	Station   string      `json:"station"`
	UptimeSec int64       `json:"uptime_sec"`
	Timestamp time.Time   `json:"timestamp"`
	Metrics   metrics.Set `json:"metrics"`
}

func NewMQTT(cfg config.MQTTConfig) (output.Output, error) {
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	if cfg.ClientID == "" {
		cfg.ClientID = DefaultClientID
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}

	opts := mqtt.NewClientOptions().AddBroker(cfg.Server).SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	return &MQTTOutput{client: client, topic: cfg.Topic}, nil
}

func (m *MQTTOutput) Publish(rep output.Report) error {
	// Nothing numeric to report on an invalid cycle.
	if rep.Metrics == nil {
		return nil
	}
	b, err := json.Marshal(statePayload{
		Station:   rep.Station,
		UptimeSec: int64(rep.Uptime / time.Second),
		Timestamp: rep.Reading.Timestamp,
		Metrics:   *rep.Metrics,
	})
	if err != nil {
		return err
	}
	token := m.client.Publish(m.topic, 0, false, b)
	token.Wait()
	return token.Error()
}

func (m *MQTTOutput) Close() error {
	if m.client != nil {
		m.client.Disconnect(250)
	}
	return nil
}
