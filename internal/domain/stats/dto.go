package stats

import "time"

type ViewMode string

const (
	ViewDay    ViewMode = "day"
	ViewWeek   ViewMode = "week"
	ViewMonth  ViewMode = "month"
	ViewCustom ViewMode = "custom"
)

// Window is the derived aggregation range; never persisted.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls in [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// StatsRequest narrows an aggregation run. ApplicantID is ignored for
// roles that may view all employees unless explicitly supplied.
type StatsRequest struct {
	View        ViewMode
	Anchor      time.Time // reference date for day/week/month views
	Start       time.Time // custom view only
	End         time.Time // custom view only
	ApplicantID string
	JobIDs      []string
	ShiftSlug   string
}

// WeeklyChange holds current-minus-previous deltas for the week view.
// The absence delta is intentionally left at zero; scheduled-instance
// counting for the trailing window is not worth its cost here.
type WeeklyChange struct {
	Hours           float64 `json:"hours"`
	ShiftsCompleted int     `json:"shifts_completed"`
	Violations      int     `json:"violations"`
}

type Stats struct {
	TotalHours         float64       `json:"total_hours"`
	ShiftsCompleted    int           `json:"shifts_completed"`
	Absences           int           `json:"absences"`
	GeofenceViolations int           `json:"geofence_violations"`
	TotalSpend         *float64      `json:"total_spend,omitempty"` // billing roles only
	WeeklyChange       *WeeklyChange `json:"weekly_change,omitempty"`
}

type PerformanceMetrics struct {
	OnTimeRate     float64 `json:"on_time_rate"`     // percent
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
	OvertimeHours  float64 `json:"overtime_hours"`
	AttendanceRate float64 `json:"attendance_rate"` // percent
}
