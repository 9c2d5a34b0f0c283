package screen

import (
	"errors"
	"sync"
	"testing"

	"github.com/gluongp/gluon-timer/internal/display"
	"github.com/gluongp/gluon-timer/internal/logic"
)

func setup(t *testing.T) (*Controller, *logic.Engine, *display.FakeSink) {
	t.Helper()
	engine := logic.NewEngine()
	sink := display.NewFakeSink()
	return New(engine, sink), engine, sink
}

// recordLaps feeds boundaries so that the engine holds the given lap durations.
func recordLaps(t *testing.T, e *logic.Engine, millis ...uint64) {
	t.Helper()
	ts := uint64(1000)
	e.Record(ts)
	for _, ms := range millis {
		ts += ms * 1000
		if _, ok := e.Record(ts); !ok {
			t.Fatalf("expected lap for %dms", ms)
		}
	}
}

func TestStartDrawsBannerAndCurrent(t *testing.T) {
	c, _, sink := setup(t)
	if err := c.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sink.Clears != 1 {
		t.Errorf("expected 1 clear, got %d", sink.Clears)
	}
	if sink.Line(RowBanner) != Banner {
		t.Errorf("banner: got %q", sink.Line(RowBanner))
	}
	if sink.Line(RowTitle) != "Last Lap" {
		t.Errorf("title: got %q", sink.Line(RowTitle))
	}
	if sink.Line(RowTime) != "No time yet" {
		t.Errorf("time: got %q", sink.Line(RowTime))
	}
	if sink.Line(RowSpeed) != "" {
		t.Errorf("speed row must stay empty without a lap, got %q", sink.Line(RowSpeed))
	}
}

func TestModeCycleReturnsToCurrent(t *testing.T) {
	c, _, _ := setup(t)
	want := []logic.Mode{logic.ModeBest, logic.ModeList, logic.ModeCurrent}
	for i, w := range want {
		if err := c.OnButton1Press(); err != nil {
			t.Fatalf("press %d: %v", i, err)
		}
		if c.Mode() != w {
			t.Errorf("press %d: expected %s, got %s", i, w, c.Mode())
		}
	}
}

func TestButton1RedrawsWithBanner(t *testing.T) {
	c, e, sink := setup(t)
	recordLaps(t, e, 200)

	c.OnButton1Press()

	if sink.Clears != 1 {
		t.Errorf("expected a clear on mode switch, got %d", sink.Clears)
	}
	if sink.Line(RowBanner) != Banner {
		t.Errorf("banner: got %q", sink.Line(RowBanner))
	}
	if sink.Line(RowTitle) != "Best Lap" {
		t.Errorf("title: got %q", sink.Line(RowTitle))
	}
	if sink.Line(RowTime) != "Time: 0.200  " {
		t.Errorf("time: got %q", sink.Line(RowTime))
	}
	if sink.Line(RowSpeed) != "Speed: 27.381  " {
		t.Errorf("speed: got %q", sink.Line(RowSpeed))
	}
}

func TestButton2ResetsWithoutRedraw(t *testing.T) {
	c, e, sink := setup(t)
	recordLaps(t, e, 1500, 1200)
	c.Start()
	writes := sink.WriteCount()
	clears := sink.Clears

	c.OnButton2Press()

	if c.Mode() != logic.ModeCurrent {
		t.Errorf("reset must not change mode, got %s", c.Mode())
	}
	if sink.WriteCount() != writes || sink.Clears != clears {
		t.Error("reset must not touch the display")
	}
	if _, ok := e.Current(); ok {
		t.Error("reset must clear the current lap")
	}
	if e.Best() != 1200 {
		t.Errorf("reset must keep best time, got %d", e.Best())
	}
	// Stale content stays until the next redraw
	if sink.Line(RowTime) != "Time: 1.200  " {
		t.Errorf("display changed on reset: %q", sink.Line(RowTime))
	}
}

func TestRefreshRendersCurrentMode(t *testing.T) {
	c, e, sink := setup(t)
	c.Start()
	recordLaps(t, e, 12345)

	if err := c.Refresh(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.Line(RowTime) != "Time: 12.345  " {
		t.Errorf("time: got %q", sink.Line(RowTime))
	}
	if sink.Line(RowSpeed) != "Speed: 0.444  " {
		t.Errorf("speed: got %q", sink.Line(RowSpeed))
	}
	if sink.Clears != 1 {
		t.Errorf("refresh must not clear, got %d clears", sink.Clears)
	}
}

func TestListRendering(t *testing.T) {
	tests := []struct {
		name string
		laps []uint64
		rows []string
	}{
		{
			name: "empty",
			rows: []string{blankRow, blankRow, blankRow, blankRow, blankRow},
		},
		{
			name: "two laps",
			laps: []uint64{2000, 1000},
			rows: []string{"1.000 | 5.476", "2.000 | 2.738", blankRow, blankRow, blankRow},
		},
		{
			name: "wrapped",
			laps: []uint64{1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 2000, 4000},
			rows: []string{"4.000 | 1.369", "2.000 | 2.738", "1.000 | 5.476", "1.000 | 5.476", "1.000 | 5.476"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, e, sink := setup(t)
			if len(tt.laps) > 0 {
				recordLaps(t, e, tt.laps...)
			}
			c.SetMode(logic.ModeList)

			if sink.Line(RowTitle) != "List Laps" {
				t.Errorf("title: got %q", sink.Line(RowTitle))
			}
			for i, want := range tt.rows {
				if got := sink.Line(RowList + i); got != want {
					t.Errorf("row %d: got %q, want %q", RowList+i, got, want)
				}
			}
		})
	}
}

func TestListBlanksRowsAfterReset(t *testing.T) {
	c, e, sink := setup(t)
	recordLaps(t, e, 1000, 1000, 1000)
	c.SetMode(logic.ModeList)

	c.OnButton2Press()
	c.Refresh()

	for i := 0; i < logic.RecentLaps; i++ {
		if got := sink.Line(RowList + i); got != blankRow {
			t.Errorf("row %d: expected blank, got %q", RowList+i, got)
		}
	}
}

func TestBestShowsSentinelBeforeLaps(t *testing.T) {
	snap := logic.NewEngine().Snapshot()
	lines := Render(logic.ModeBest, snap)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1].Text != "Time: 10.000  " {
		t.Errorf("time: got %q", lines[1].Text)
	}
	if lines[2].Text != "Speed: 0.548  " {
		t.Errorf("speed: got %q", lines[2].Text)
	}
}

func TestStatsRendersNothing(t *testing.T) {
	c, e, sink := setup(t)
	recordLaps(t, e, 1000)

	if err := c.SetMode(logic.ModeStats); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Refresh(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.Line(RowBanner) != Banner {
		t.Errorf("banner: got %q", sink.Line(RowBanner))
	}
	for row := RowTitle; row < display.Rows; row++ {
		if sink.Line(row) != "" {
			t.Errorf("row %d: expected empty, got %q", row, sink.Line(row))
		}
	}

	c.OnButton1Press()
	if c.Mode() != logic.ModeCurrent {
		t.Errorf("expected Current after Stats, got %s", c.Mode())
	}
}

func TestSinkErrorIsReturned(t *testing.T) {
	c, _, sink := setup(t)
	sink.WriteError = errors.New("simulated error")
	if err := c.Refresh(); err == nil {
		t.Error("expected error from refresh")
	}
	if err := c.OnButton1Press(); err == nil {
		t.Error("expected error from mode switch")
	}
}

func TestConcurrentButtonsAndRefresh(t *testing.T) {
	c, e, _ := setup(t)
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		ts := uint64(1)
		for i := 0; i < 200; i++ {
			ts += 500000
			e.Record(ts)
			c.Refresh()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			c.OnButton1Press()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			c.OnButton2Press()
		}
	}()
	wg.Wait()

	// 200 presses over a 3-cycle: 200 % 3 == 2
	if c.Mode() != logic.ModeList {
		t.Errorf("expected List after 200 presses, got %s", c.Mode())
	}
}
