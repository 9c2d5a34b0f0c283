package config

import (
	"errors"
	"fmt"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks configuration correctness.
// It performs declarative validation only and never mutates cfg.
func Validate(cfg *Config) error {
	s := cfg.Source
	if s.Batch <= 0 {
		return fmt.Errorf("%w: source.batch must be > 0", ErrInvalid)
	}

	switch s.Kind {
	case SourceSerial:
		if s.Serial.Device == "" {
			return fmt.Errorf("%w: source.serial.device is required", ErrInvalid)
		}
		if s.Serial.Baud <= 0 {
			return fmt.Errorf("%w: source.serial.baud must be > 0", ErrInvalid)
		}
		if s.Serial.TimeoutMs < 0 {
			return fmt.Errorf("%w: source.serial.timeout_ms must be >= 0", ErrInvalid)
		}
	case SourceModbus:
		if s.Modbus.Endpoint == "" {
			return fmt.Errorf("%w: source.modbus.endpoint is required", ErrInvalid)
		}
		if s.Modbus.Quantity == 0 || s.Modbus.Quantity > 125 {
			return fmt.Errorf("%w: source.modbus.quantity must be 1..125", ErrInvalid)
		}
		if s.Modbus.RTU && s.Modbus.Baud <= 0 {
			return fmt.Errorf("%w: source.modbus.baud must be > 0 for rtu", ErrInvalid)
		}
	case SourceFake:
		if s.Sim.LapMs <= 0 || s.Sim.ShadowMs <= 0 || s.Sim.PeriodUs <= 0 {
			return fmt.Errorf("%w: source.sim values must be > 0", ErrInvalid)
		}
		if s.Sim.ShadowMs >= s.Sim.LapMs {
			return fmt.Errorf("%w: source.sim.shadow_ms must be shorter than lap_ms", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown source.kind %q", ErrInvalid, s.Kind)
	}

	b := cfg.Buttons
	if b.Chip == "" {
		return fmt.Errorf("%w: buttons.chip is required", ErrInvalid)
	}
	if b.PinB1 < 0 || b.PinB2 < 0 {
		return fmt.Errorf("%w: button pins must be >= 0", ErrInvalid)
	}
	if b.PinB1 == b.PinB2 {
		return fmt.Errorf("%w: buttons.pin_b1 and pin_b2 must differ", ErrInvalid)
	}
	if b.PollMs <= 0 {
		return fmt.Errorf("%w: buttons.poll_ms must be > 0", ErrInvalid)
	}
	if b.GuardMs < 0 {
		return fmt.Errorf("%w: buttons.guard_ms must be >= 0", ErrInvalid)
	}

	d := cfg.Display
	switch d.Kind {
	case DisplayConsole, DisplayPanel:
	case DisplayMQTT:
		if d.Broker == "" {
			return fmt.Errorf("%w: display.broker is required for mqtt", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown display.kind %q", ErrInvalid, d.Kind)
	}

	return nil
}
