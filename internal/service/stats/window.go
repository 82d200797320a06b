package stats

import (
	"time"

	"github.com/shiftwise/timeclock-go/internal/domain/stats"
	"github.com/shiftwise/timeclock-go/internal/service/schedule"
)

// WindowFor derives the aggregation range from a view mode and an anchor
// date. Week windows honor the configured week-start weekday; custom
// windows are widened to whole calendar days.
func WindowFor(view stats.ViewMode, anchor time.Time, start, end time.Time, weekStart int, loc *time.Location) stats.Window {
	switch view {
	case stats.ViewDay:
		d := dayOf(anchor, loc)
		return stats.Window{Start: d, End: d.AddDate(0, 0, 1)}
	case stats.ViewWeek:
		ws := schedule.WeekStart(anchor, weekStart, loc)
		return stats.Window{Start: ws, End: ws.AddDate(0, 0, 7)}
	case stats.ViewMonth:
		local := anchor.In(loc)
		first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		return stats.Window{Start: first, End: first.AddDate(0, 1, 0)}
	case stats.ViewCustom:
		s := dayOf(start, loc)
		e := dayOf(end, loc).AddDate(0, 0, 1)
		if e.Before(s) {
			e = s
		}
		return stats.Window{Start: s, End: e}
	default:
		d := dayOf(anchor, loc)
		return stats.Window{Start: d, End: d.AddDate(0, 0, 1)}
	}
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
