// Command gluon-timer times laps through a photogate and shows them on a small display.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gluongp/gluon-timer/internal/adc"
	"github.com/gluongp/gluon-timer/internal/config"
	"github.com/gluongp/gluon-timer/internal/display"
	"github.com/gluongp/gluon-timer/internal/gpio"
	"github.com/gluongp/gluon-timer/internal/logic"
	"github.com/gluongp/gluon-timer/internal/mqtt"
	"github.com/gluongp/gluon-timer/internal/screen"
)

// readErrorBackoff paces the sampler while the source keeps failing.
const readErrorBackoff = 100 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "YAML config file (empty for built-in defaults)")
	source := flag.String("source", "", "Sample source: serial, modbus or fake (overrides config)")
	displayKind := flag.String("display", "", "Display: console, panel or mqtt (overrides config)")
	printState := flag.Bool("print-state", false, "Print current button state and exit")

	flag.Parse()

	cfg, err := loadConfig(*configPath, *source, *displayKind)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if err := run(cfg, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// loadConfig reads the optional config file and applies the flag overrides.
func loadConfig(path, source, displayKind string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if source != "" {
		cfg.Source.Kind = source
	}
	if displayKind != "" {
		cfg.Display.Kind = displayKind
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config.Config, printState bool) error {
	// Initialize GPIO
	buttons, err := gpio.NewRealReader(cfg.Buttons.Chip, cfg.Buttons.PinB1, cfg.Buttons.PinB2)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer buttons.Close()

	// Print state mode
	if printState {
		b1, b2, err := buttons.Read()
		if err != nil {
			return fmt.Errorf("read gpio: %w", err)
		}
		fmt.Println(formatButtonState(b1, b2))
		return nil
	}

	src, err := openSource(cfg.Source)
	if err != nil {
		return fmt.Errorf("init source: %w", err)
	}
	defer src.Close()

	sink, closeSink, err := openDisplay(cfg.Display)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer closeSink()

	engine := logic.NewEngine()
	ctrl := screen.New(engine, sink)
	if err := ctrl.Start(); err != nil {
		return fmt.Errorf("start display: %w", err)
	}

	log.Printf("started: source=%s display=%s batch=%d poll=%v guard=%v",
		cfg.Source.Kind, cfg.Display.Kind, cfg.Source.Batch, cfg.Buttons.Poll(), cfg.Buttons.Guard())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.Buttons.Poll())
	defer ticker.Stop()

	start := time.Now()
	clock := func() uint64 {
		return uint64(time.Since(start).Microseconds())
	}

	runLoops(ctx, pipeline{
		src:     src,
		batch:   cfg.Source.Batch,
		clock:   clock,
		buttons: buttons,
		monitor: logic.NewButtonMonitor(cfg.Buttons.Guard()),
		tick:    ticker.C,
		now:     time.Now,
		engine:  engine,
		ctrl:    ctrl,
	})

	log.Printf("shutting down")
	if err := sink.Clear(); err != nil {
		log.Printf("failed to clear display: %v", err)
	}
	return nil
}

// openSource opens the configured sample source.
func openSource(cfg config.SourceConfig) (adc.Source, error) {
	switch cfg.Kind {
	case config.SourceSerial:
		return adc.OpenSerial(adc.SerialConfig{
			Device:      cfg.Serial.Device,
			Baud:        cfg.Serial.Baud,
			ReadTimeout: time.Duration(cfg.Serial.TimeoutMs) * time.Millisecond,
		})
	case config.SourceModbus:
		return adc.DialModbus(adc.ModbusConfig{
			Endpoint: cfg.Modbus.Endpoint,
			RTU:      cfg.Modbus.RTU,
			Baud:     cfg.Modbus.Baud,
			UnitID:   cfg.Modbus.UnitID,
			Address:  cfg.Modbus.Address,
			Quantity: cfg.Modbus.Quantity,
			Timeout:  time.Duration(cfg.Modbus.TimeoutMs) * time.Millisecond,
		})
	case config.SourceFake:
		return adc.NewSimSource(
			time.Duration(cfg.Sim.LapMs)*time.Millisecond,
			time.Duration(cfg.Sim.ShadowMs)*time.Millisecond,
			time.Duration(cfg.Sim.PeriodUs)*time.Microsecond,
		), nil
	}
	return nil, fmt.Errorf("unknown source %q", cfg.Kind)
}

// openDisplay returns the configured sink and a function releasing it.
func openDisplay(cfg config.DisplayConfig) (display.Sink, func(), error) {
	switch cfg.Kind {
	case config.DisplayConsole:
		return display.NewTextSink(os.Stdout), func() {}, nil
	case config.DisplayPanel:
		fb := display.NewFramebuffer()
		fb.OnDisplay = func(f *display.Framebuffer) {
			fmt.Fprint(os.Stdout, "\033[H\033[2J", f.String())
		}
		return display.NewPanelSink(fb), func() {}, nil
	case config.DisplayMQTT:
		s, err := mqtt.NewDisplaySink(cfg.Broker, cfg.TopicPrefix)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown display %q", cfg.Kind)
}

// pipeline carries everything the three loops share.
type pipeline struct {
	src   adc.Source
	batch int
	clock func() uint64 // microseconds, monotonic

	buttons gpio.Reader
	monitor *logic.ButtonMonitor
	tick    <-chan time.Time
	now     func() time.Time

	engine *logic.Engine
	ctrl   *screen.Controller
}

// runLoops runs the sampler, button and consumer loops until ctx is done.
func runLoops(ctx context.Context, p pipeline) {
	edges := logic.NewEdgeChannel()
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		runSampler(ctx, p.src, logic.NewEdgeDetector(), p.batch, p.clock, edges)
	}()
	go func() {
		defer wg.Done()
		runButtons(ctx, p.buttons, p.monitor, p.ctrl, p.tick, p.now)
	}()
	go func() {
		defer wg.Done()
		runConsumer(ctx, edges, p.engine, p.ctrl)
	}()
	wg.Wait()
}

// runSampler reads sample batches and hands every confirmed pass to the consumer.
// A full channel blocks the sampler until the consumer catches up.
func runSampler(ctx context.Context, src adc.Source, det *logic.EdgeDetector, batch int, clock func() uint64, edges chan<- uint64) {
	if batch <= 0 {
		batch = adc.DefaultBatch
	}
	buf := make([]uint16, batch)

	emit := func(ts uint64) bool {
		log.Printf("pass: t=%dus", ts)
		select {
		case edges <- ts:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for ctx.Err() == nil {
		n, err := src.ReadSamples(buf)
		if err != nil {
			if errors.Is(err, adc.ErrClosed) {
				return
			}
			log.Printf("adc read error: %v", err)
			if !wait(ctx, readErrorBackoff) {
				return
			}
		}

		for _, sample := range buf[:n] {
			if ts, ok := det.Process(sample, clock()); ok {
				if !emit(ts) {
					return
				}
			}
		}

		// Settle check even when the read timed out empty
		if ts, ok := det.Check(clock()); ok {
			if !emit(ts) {
				return
			}
		}
	}
}

// runButtons polls both buttons on every tick and dispatches presses to the screen.
func runButtons(ctx context.Context, reader gpio.Reader, monitor *logic.ButtonMonitor, ctrl *screen.Controller, tick <-chan time.Time, now func() time.Time) {
	for {
		select {
		case <-ctx.Done():
			return

		case <-tick:
			b1, b2, err := reader.Read()
			if err != nil {
				log.Printf("gpio read error: %v", err)
				continue
			}

			switch monitor.Process(logic.ButtonInput{B1: b1, B2: b2, Time: now()}) {
			case logic.ButtonMode:
				if err := ctrl.OnButton1Press(); err != nil {
					log.Printf("display error: %v", err)
				}
			case logic.ButtonReset:
				ctrl.OnButton2Press()
			}
		}
	}
}

// runConsumer drains the edge channel into the engine and refreshes the screen on every lap.
func runConsumer(ctx context.Context, edges <-chan uint64, engine *logic.Engine, ctrl *screen.Controller) {
	for {
		select {
		case <-ctx.Done():
			return

		case ts := <-edges:
			lap, ok := engine.Record(ts)
			if !ok {
				log.Printf("lap: session boundary at t=%dus", ts)
				continue
			}
			log.Printf("lap: %.3fs speed=%.3f best=%d new_best=%v",
				float64(lap.Millis)/1000, logic.Speed(lap.Millis), engine.Best(), lap.NewBest)
			if err := ctrl.Refresh(); err != nil {
				log.Printf("display error: %v", err)
			}
		}
	}
}

// wait sleeps for d and reports false if ctx ended first.
func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func stateString(pressed bool) string {
	if pressed {
		return "PRESSED"
	}
	return "RELEASED"
}

func formatButtonState(b1, b2 bool) string {
	return fmt.Sprintf("B1: %s, B2: %s", stateString(b1), stateString(b2))
}
