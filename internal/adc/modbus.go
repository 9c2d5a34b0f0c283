package adc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goburrow/modbus"
)

// maxRegisters is the Modbus limit for one read of input registers.
const maxRegisters = 125

// ModbusConfig describes an analog input module.
type ModbusConfig struct {
	// Endpoint is host:port for TCP or a device path for RTU.
	Endpoint string
	RTU      bool
	Baud     int
	UnitID   uint8
	// Address is the first input register holding samples.
	Address uint16
	// Quantity is the number of registers read per batch.
	Quantity uint16
	Timeout  time.Duration
}

type registerReader interface {
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
}

// ModbusSource polls input registers of an analog module; every register is one sample.
type ModbusSource struct {
	client   registerReader
	handler  io.Closer
	address  uint16
	quantity uint16
}

// DialModbus connects to the module over TCP or RTU.
func DialModbus(cfg ModbusConfig) (*ModbusSource, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("adc modbus: endpoint required")
	}

	var handler interface {
		modbus.ClientHandler
		Connect() error
		Close() error
	}
	if cfg.RTU {
		h := modbus.NewRTUClientHandler(cfg.Endpoint)
		h.BaudRate = cfg.Baud
		h.DataBits = 8
		h.Parity = "N"
		h.StopBits = 1
		h.SlaveId = cfg.UnitID
		h.Timeout = cfg.Timeout
		handler = h
	} else {
		h := modbus.NewTCPClientHandler(cfg.Endpoint)
		h.SlaveId = cfg.UnitID
		h.Timeout = cfg.Timeout
		handler = h
	}

	if err := handler.Connect(); err != nil {
		return nil, fmt.Errorf("connect modbus %s: %w", cfg.Endpoint, err)
	}

	return newModbusSource(modbus.NewClient(handler), handler, cfg.Address, cfg.Quantity), nil
}

func newModbusSource(client registerReader, handler io.Closer, address, quantity uint16) *ModbusSource {
	if quantity == 0 {
		quantity = 1
	}
	return &ModbusSource{
		client:   client,
		handler:  handler,
		address:  address,
		quantity: quantity,
	}
}

// ReadSamples reads up to len(dst) registers, capped by the configured quantity.
func (s *ModbusSource) ReadSamples(dst []uint16) (int, error) {
	if s.client == nil {
		return 0, ErrClosed
	}
	qty := s.quantity
	if int(qty) > len(dst) {
		qty = uint16(len(dst))
	}
	if qty > maxRegisters {
		qty = maxRegisters
	}
	if qty == 0 {
		return 0, nil
	}

	raw, err := s.client.ReadInputRegisters(s.address, qty)
	if err != nil {
		return 0, fmt.Errorf("read input registers: %w", err)
	}

	n := len(raw) / 2
	if n > int(qty) {
		n = int(qty)
	}
	for i := 0; i < n; i++ {
		dst[i] = binary.BigEndian.Uint16(raw[i*2:])
	}
	return n, nil
}

// Close closes the Modbus connection.
func (s *ModbusSource) Close() error {
	if s.handler == nil {
		return nil
	}
	err := s.handler.Close()
	s.client = nil
	s.handler = nil
	return err
}
