package activity

import "time"

// Entry is one activity-log line. Writes are best-effort: a failed write
// never fails the punch operation that produced it.
type Entry struct {
	ID          string
	ActorID     string
	ApplicantID string
	JobID       string
	PunchID     string
	Action      string
	Detail      string
	CreatedAt   time.Time
}

const (
	ActionClockIn     = "clock_in"
	ActionClockOut    = "clock_out"
	ActionPunchEdited = "punch_edited"
)
