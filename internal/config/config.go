// Package config holds the hardware wiring of the timer.
// The timing constants (threshold, settle time, track distance) are fixed
// in package logic and deliberately absent here.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceSerial = "serial"
	SourceModbus = "modbus"
	SourceFake   = "fake"
)

// Display kinds.
const (
	DisplayConsole = "console"
	DisplayPanel   = "panel"
	DisplayMQTT    = "mqtt"
)

type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Buttons ButtonsConfig `yaml:"buttons"`
	Display DisplayConfig `yaml:"display"`
}

// ---- SAMPLE SOURCE ----

type SourceConfig struct {
	Kind   string       `yaml:"kind"`
	Batch  int          `yaml:"batch"`
	Serial SerialConfig `yaml:"serial"`
	Modbus ModbusConfig `yaml:"modbus"`
	Sim    SimConfig    `yaml:"sim"`
}

type SerialConfig struct {
	Device    string `yaml:"device"`
	Baud      int    `yaml:"baud"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type ModbusConfig struct {
	Endpoint  string `yaml:"endpoint"`
	RTU       bool   `yaml:"rtu"`
	Baud      int    `yaml:"baud"`
	UnitID    uint8  `yaml:"unit_id"`
	Address   uint16 `yaml:"address"`
	Quantity  uint16 `yaml:"quantity"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// SimConfig shapes the synthetic gate used by the fake source.
type SimConfig struct {
	LapMs    int `yaml:"lap_ms"`
	ShadowMs int `yaml:"shadow_ms"`
	PeriodUs int `yaml:"period_us"`
}

// ---- BUTTONS ----

type ButtonsConfig struct {
	Chip    string `yaml:"chip"`
	PinB1   int    `yaml:"pin_b1"`
	PinB2   int    `yaml:"pin_b2"`
	PollMs  int    `yaml:"poll_ms"`
	GuardMs int    `yaml:"guard_ms"`
}

// ---- DISPLAY ----

type DisplayConfig struct {
	Kind        string `yaml:"kind"`
	Broker      string `yaml:"broker"`
	TopicPrefix string `yaml:"topic_prefix"`
}

// Default returns the wiring of the reference build.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:  SourceSerial,
			Batch: 20,
			Serial: SerialConfig{
				Device:    "/dev/ttyUSB0",
				Baud:      115200,
				TimeoutMs: 3000,
			},
			Modbus: ModbusConfig{
				Baud:      19200,
				UnitID:    1,
				Quantity:  1,
				TimeoutMs: 3000,
			},
			Sim: SimConfig{
				LapMs:    5000,
				ShadowMs: 200,
				PeriodUs: 1000,
			},
		},
		Buttons: ButtonsConfig{
			Chip:    "gpiochip0",
			PinB1:   9,
			PinB2:   10,
			PollMs:  10,
			GuardMs: 100,
		},
		Display: DisplayConfig{
			Kind:        DisplayConsole,
			Broker:      "tcp://127.0.0.1:1883",
			TopicPrefix: "gluon/display",
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep their default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Poll returns the button poll interval.
func (b ButtonsConfig) Poll() time.Duration {
	return time.Duration(b.PollMs) * time.Millisecond
}

// Guard returns the release guard interval.
func (b ButtonsConfig) Guard() time.Duration {
	return time.Duration(b.GuardMs) * time.Millisecond
}
