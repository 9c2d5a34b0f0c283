package screen

import (
	"fmt"

	"github.com/gluongp/gluon-timer/internal/logic"
)

// Line is one positioned text row.
type Line struct {
	Row  int
	Text string
}

// Render returns the rows to write for mode m. Stats renders nothing.
func Render(m logic.Mode, snap logic.Snapshot) []Line {
	switch m {
	case logic.ModeCurrent:
		if !snap.HasCurrent {
			return []Line{
				{RowTitle, "Last Lap"},
				{RowTime, "No time yet"},
			}
		}
		return []Line{
			{RowTitle, "Last Lap"},
			{RowTime, formatTime(snap.Current)},
			{RowSpeed, formatSpeed(snap.Current)},
		}

	case logic.ModeBest:
		return []Line{
			{RowTitle, "Best Lap"},
			{RowTime, formatTime(snap.Best)},
			{RowSpeed, formatSpeed(snap.Best)},
		}

	case logic.ModeList:
		lines := make([]Line, 0, logic.RecentLaps+1)
		lines = append(lines, Line{RowTitle, "List Laps"})
		for i := 0; i < logic.RecentLaps; i++ {
			text := blankRow
			if i < len(snap.Recent) {
				ms := snap.Recent[i]
				text = fmt.Sprintf("%.3f | %.3f", seconds(ms), logic.Speed(ms))
			}
			lines = append(lines, Line{RowList + i, text})
		}
		return lines
	}
	return nil
}

func seconds(ms uint32) float64 {
	return float64(ms) / 1000
}

func formatTime(ms uint32) string {
	return fmt.Sprintf("Time: %.3f  ", seconds(ms))
}

func formatSpeed(ms uint32) string {
	return fmt.Sprintf("Speed: %.3f  ", logic.Speed(ms))
}
