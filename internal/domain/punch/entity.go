package punch

import (
	"time"

	"github.com/shiftwise/timeclock-go/internal/domain/job"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Punch is one clock-in/clock-out record for an employee at a job. A nil
// TimeOut means the punch is open (work in progress).
type Punch struct {
	ID                  string
	UserID              string
	ApplicantID         string
	JobID               string
	ShiftSlug           string
	TimeIn              time.Time
	TimeOut             *time.Time
	Status              Status
	ClockInCoordinates  *job.Coordinate
	ClockOutCoordinates *job.Coordinate
	UserNote            *string
	ManagerNote         *string
	ModifiedDate        *time.Time
	ModifiedBy          *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsOpen reports whether the punch has not been closed yet.
func (p *Punch) IsOpen() bool {
	return p.TimeOut == nil
}

// Interval returns the punch's worked interval for overlap checks. An open
// punch extends to now.
func (p *Punch) Interval(now time.Time) (time.Time, time.Time) {
	if p.TimeOut != nil {
		return p.TimeIn, *p.TimeOut
	}
	return p.TimeIn, now
}

// Hours returns the completed duration in hours, zero while open.
func (p *Punch) Hours() float64 {
	if p.TimeOut == nil {
		return 0
	}
	return p.TimeOut.Sub(p.TimeIn).Hours()
}

// Overlaps reports whether two punch intervals intersect, treating open
// punches as extending to now.
func (p *Punch) Overlaps(other *Punch, now time.Time) bool {
	aStart, aEnd := p.Interval(now)
	bStart, bEnd := other.Interval(now)
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
