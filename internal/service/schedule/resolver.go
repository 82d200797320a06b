// Package schedule resolves which shift windows apply to an employee on a
// given calendar day, honoring per-weekday schedules and roster scoping.
package schedule

import (
	"time"

	"github.com/shiftwise/timeclock-go/internal/domain/job"
)

// ShiftWindow is the resolved absolute start/end for one shift on one day.
type ShiftWindow struct {
	Start time.Time
	End   time.Time
}

const dateLayout = "2006-01-02"

// ResolveShiftWindow determines whether the shift runs for the employee on
// the given calendar day and, if so, its absolute window. Returns nil when
// the shift does not run that day, the employee is not rostered for it, or
// the day falls outside the shift's overall date bounds.
//
// The day is taken in loc, the timezone the schedule was authored in, so a
// late-night UTC instant still resolves against the local weekday.
func ResolveShiftWindow(shift *job.Shift, employeeID string, date time.Time, loc *time.Location) *ShiftWindow {
	if shift == nil {
		return nil
	}

	local := date.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	if shift.StartDate != nil && day.Before(dayOf(*shift.StartDate, loc)) {
		return nil
	}
	if shift.EndDate != nil && day.After(dayOf(*shift.EndDate, loc)) {
		return nil
	}

	weekday := job.WeekdayNames[int(local.Weekday())]
	entry, ok := shift.DefaultSchedule[weekday]
	if !ok || !entry.HasTimes() {
		return nil
	}

	if !entry.Roster.AuthorizedOn(employeeID, day.Format(dateLayout)) {
		return nil
	}

	start, ok := combine(day, entry.StartTime, loc)
	if !ok {
		return nil
	}
	end, ok := combine(day, entry.EndTime, loc)
	if !ok {
		return nil
	}

	// Overnight shift: the end time of day precedes the start, so the
	// window closes on the following calendar day.
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}

	return &ShiftWindow{Start: start, End: end}
}

// ResolveForDate finds the first shift window applicable to the employee
// on the given day across all of the job's shifts, preferring the named
// shift when a slug is supplied.
func ResolveForDate(j *job.Job, employeeID, shiftSlug string, date time.Time, loc *time.Location) (*job.Shift, *ShiftWindow) {
	if j == nil {
		return nil, nil
	}

	if shiftSlug != "" {
		s := j.ShiftBySlug(shiftSlug)
		return s, ResolveShiftWindow(s, employeeID, date, loc)
	}

	for i := range j.Shifts {
		if w := ResolveShiftWindow(&j.Shifts[i], employeeID, date, loc); w != nil {
			return &j.Shifts[i], w
		}
	}
	return nil, nil
}

// JobHasShiftForUser reports whether any weekday roster of any shift
// admits the employee, ignoring date scoping. This is the coarse gate for
// "can this employee ever clock in for this job". An empty roster on a
// scheduled day is open to any employee, mirroring Roster.AuthorizedOn.
func JobHasShiftForUser(j *job.Job, employeeID string) bool {
	if j == nil {
		return false
	}
	for i := range j.Shifts {
		for _, entry := range j.Shifts[i].DefaultSchedule {
			if !entry.HasTimes() {
				continue
			}
			if len(entry.Roster) == 0 || entry.Roster.Includes(employeeID) {
				return true
			}
		}
	}
	return false
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func combine(day time.Time, timeOfDay string, loc *time.Location) (time.Time, bool) {
	parsed, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, loc), true
}

// WeekStart returns midnight of the configured first weekday of the week
// containing t, in loc. weekStart follows time.Weekday numbering
// (0 = Sunday).
func WeekStart(t time.Time, weekStart int, loc *time.Location) time.Time {
	local := t.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	offset := (int(day.Weekday()) - weekStart + 7) % 7
	return day.AddDate(0, 0, -offset)
}
