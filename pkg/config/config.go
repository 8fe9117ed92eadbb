package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type SerialConfig struct {
	Device   string `json:"device"`
	BaudRate uint   `json:"baud_rate"`
}

type MQTTConfig struct {
	Server   string `json:"server"`
	Username string `json:"username"`
	Password string `json:"password"`
	ClientID string `json:"client_id"`
	Topic    string `json:"topic"`
}

type InfluxConfig struct {
	Server      string `json:"server"`
	AuthToken   string `json:"auth_token"`
	Bucket      string `json:"bucket"`
	Measurement string `json:"measurement"`
}

type OutputConfig struct {
	Type   string        `json:"type"`
	Serial *SerialConfig `json:"serial,omitempty"`
	MQTT   *MQTTConfig   `json:"mqtt,omitempty"`
	Influx *InfluxConfig `json:"influx,omitempty"`
}

type I2CConfig struct {
	Bus     string `json:"bus"`
	Address int    `json:"address"`
}

type SimulationConfig struct {
	// FailEvery makes every n-th simulated read return NaN (0 = never).
	FailEvery int `json:"fail_every"`
}

type Config struct {
	StationName string           `json:"station_name"`
	SensorType  string           `json:"sensor_type"` // dht11|bme280|simulation
	DHTPin      string           `json:"dht_pin"`
	LEDPin      string           `json:"led_pin"`
	I2C         I2CConfig        `json:"i2c"`
	WaitSeconds int              `json:"wait_seconds"`
	Simulation  SimulationConfig `json:"simulation"`
	Outputs     []OutputConfig   `json:"outputs"`
}

func DefaultConfig() Config {
	return Config{
		StationName: "DHT11 Weather Station",
		SensorType:  "dht11",
		DHTPin:      "GPIO4",
		LEDPin:      "GPIO20",
		I2C:         I2CConfig{Bus: "1", Address: 0x76},
		WaitSeconds: 10,
		Outputs:     []OutputConfig{{Type: "console"}},
	}
}

// LoadFromFlags loads configuration from a JSON file (optional) and flags.
// Flags override values present in the JSON file.
func LoadFromFlags() (Config, error) {
	cfgPath := flag.String("config", "", "Path to JSON config file")
	flagStation := flag.String("station-name", "", "Station name shown in the panel title")
	flagSensorType := flag.String("sensor-type", "", "sensor type: dht11|bme280|simulation")
	flagDHTPin := flag.String("dht-pin", "", "DHT11 data pin (e.g. GPIO4)")
	flagLEDPin := flag.String("led-pin", "", "Heartbeat LED pin (e.g. GPIO20, empty to disable)")
	flagI2CBus := flag.String("i2c-bus", "", "I2C bus for bme280 (e.g. '1' -> /dev/i2c-1)")
	flagI2CAddStr := flag.String("i2c-address", "", "I2C address for bme280 (decimal or 0x hex)")
	flagWait := flag.Int("wait-seconds", -1, "Refresh wait between cycles in seconds")
	flagFailEvery := flag.Int("sim-fail-every", -1, "Simulation: fail every n-th read (0 = never)")
	flagOutputs := flag.String("outputs", "", "Comma-separated outputs (console,serial,mqtt,influx)")
	flagSerialDevice := flag.String("serial-device", "", "Serial output device (e.g. /dev/ttyAMA0)")
	flagSerialBaud := flag.Uint("serial-baud", 0, "Serial output baud rate")
	flagMQTTServer := flag.String("mqtt-server", "", "MQTT server (tcp://host:port)")
	flagMQTTUser := flag.String("mqtt-user", "", "MQTT username")
	flagMQTTPass := flag.String("mqtt-pass", "", "MQTT password")
	flagClientID := flag.String("mqtt-client-id", "", "MQTT client id")
	flagTopic := flag.String("mqtt-topic", "", "MQTT state topic")
	flagInfluxServer := flag.String("influx-server", "", "InfluxDB server URL")
	flagInfluxToken := flag.String("influx-token", "", "InfluxDB auth token (user:pass for 1.x)")
	flagInfluxBucket := flag.String("influx-bucket", "", "InfluxDB bucket (db/retention for 1.x)")

	flag.Parse()

	cfg := DefaultConfig()

	if *cfgPath != "" {
		b, err := os.ReadFile(*cfgPath)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if *flagStation != "" {
		cfg.StationName = *flagStation
	}
	if *flagSensorType != "" {
		cfg.SensorType = *flagSensorType
	}
	if *flagDHTPin != "" {
		cfg.DHTPin = *flagDHTPin
	}
	if *flagLEDPin != "" {
		cfg.LEDPin = *flagLEDPin
	}
	if *flagI2CBus != "" {
		cfg.I2C.Bus = *flagI2CBus
	}
	if *flagI2CAddStr != "" {
		v, err := parseIntOrHex(*flagI2CAddStr)
		if err != nil {
			return cfg, fmt.Errorf("i2c-address: %w", err)
		}
		cfg.I2C.Address = v
	}
	if *flagWait != -1 {
		cfg.WaitSeconds = *flagWait
	}
	if *flagFailEvery != -1 {
		cfg.Simulation.FailEvery = *flagFailEvery
	}
	if *flagOutputs != "" {
		// convert simple CSV of types into structured OutputConfig entries
		parts := parseCSV(*flagOutputs)
		outs := make([]OutputConfig, 0, len(parts))
		for _, p := range parts {
			outs = append(outs, OutputConfig{Type: p})
		}
		cfg.Outputs = outs
	}
	if *flagSerialDevice != "" || *flagSerialBaud != 0 {
		applySerialFlags(&cfg, *flagSerialDevice, *flagSerialBaud)
	}
	if *flagMQTTServer != "" || *flagMQTTUser != "" || *flagMQTTPass != "" || *flagClientID != "" || *flagTopic != "" {
		applyMQTTFlags(&cfg, MQTTConfig{
			Server:   *flagMQTTServer,
			Username: *flagMQTTUser,
			Password: *flagMQTTPass,
			ClientID: *flagClientID,
			Topic:    *flagTopic,
		})
	}
	if *flagInfluxServer != "" || *flagInfluxToken != "" || *flagInfluxBucket != "" {
		applyInfluxFlags(&cfg, InfluxConfig{
			Server:    *flagInfluxServer,
			AuthToken: *flagInfluxToken,
			Bucket:    *flagInfluxBucket,
		})
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.WaitSeconds <= 0 {
		return errors.New("wait-seconds must be > 0")
	}
	switch strings.ToLower(cfg.SensorType) {
	case "dht11", "bme280", "simulation":
	default:
		return fmt.Errorf("unknown sensor type %q", cfg.SensorType)
	}
	if len(cfg.Outputs) == 0 {
		return errors.New("at least one output required")
	}
	return nil
}

// applySerialFlags applies serial flags to all serial outputs; if none
// exist, one is created.
func applySerialFlags(cfg *Config, device string, baud uint) {
	applied := false
	for i := range cfg.Outputs {
		if strings.ToLower(cfg.Outputs[i].Type) != "serial" {
			continue
		}
		if cfg.Outputs[i].Serial == nil {
			cfg.Outputs[i].Serial = &SerialConfig{}
		}
		overlaySerial(cfg.Outputs[i].Serial, device, baud)
		applied = true
	}
	if !applied {
		sc := &SerialConfig{}
		overlaySerial(sc, device, baud)
		cfg.Outputs = append(cfg.Outputs, OutputConfig{Type: "serial", Serial: sc})
	}
}

func overlaySerial(sc *SerialConfig, device string, baud uint) {
	if device != "" {
		sc.Device = device
	}
	if baud != 0 {
		sc.BaudRate = baud
	}
}

func applyMQTTFlags(cfg *Config, fl MQTTConfig) {
	applied := false
	for i := range cfg.Outputs {
		if strings.ToLower(cfg.Outputs[i].Type) != "mqtt" {
			continue
		}
		if cfg.Outputs[i].MQTT == nil {
			cfg.Outputs[i].MQTT = &MQTTConfig{}
		}
		overlayMQTT(cfg.Outputs[i].MQTT, fl)
		applied = true
	}
	if !applied {
		mc := &MQTTConfig{}
		overlayMQTT(mc, fl)
		cfg.Outputs = append(cfg.Outputs, OutputConfig{Type: "mqtt", MQTT: mc})
	}
}

func overlayMQTT(mc *MQTTConfig, fl MQTTConfig) {
	if fl.Server != "" {
		mc.Server = fl.Server
	}
	if fl.Username != "" {
		mc.Username = fl.Username
	}
	if fl.Password != "" {
		mc.Password = fl.Password
	}
	if fl.ClientID != "" {
		mc.ClientID = fl.ClientID
	}
	if fl.Topic != "" {
		mc.Topic = fl.Topic
	}
}

func applyInfluxFlags(cfg *Config, fl InfluxConfig) {
	applied := false
	for i := range cfg.Outputs {
		if strings.ToLower(cfg.Outputs[i].Type) != "influx" {
			continue
		}
		if cfg.Outputs[i].Influx == nil {
			cfg.Outputs[i].Influx = &InfluxConfig{}
		}
		overlayInflux(cfg.Outputs[i].Influx, fl)
		applied = true
	}
	if !applied {
		ic := &InfluxConfig{}
		overlayInflux(ic, fl)
		cfg.Outputs = append(cfg.Outputs, OutputConfig{Type: "influx", Influx: ic})
	}
}

func overlayInflux(ic *InfluxConfig, fl InfluxConfig) {
	if fl.Server != "" {
		ic.Server = fl.Server
	}
	if fl.AuthToken != "" {
		ic.AuthToken = fl.AuthToken
	}
	if fl.Bucket != "" {
		ic.Bucket = fl.Bucket
	}
}

func parseIntOrHex(s string) (int, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseInt(s[2:], 16, 0)
		return int(v), err
	}
	v, err := strconv.Atoi(s)
	return v, err
}

func parseCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
