package punch

import (
	"context"
	"time"
)

// TxRunner executes fn atomically. Repository calls made with the context
// fn receives join the same transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// RangeFilter narrows FindInRange queries. Empty fields are ignored.
type RangeFilter struct {
	ApplicantID string
	JobIDs      []string
	ShiftSlug   string
}

// PunchRepository defines data access for punch records.
//
// Insert must fail with ErrOpenPunchExists when an open punch already
// exists for the same (applicant, job) pair; the storage layer enforces
// this with a partial unique index so concurrent clock-ins cannot race
// past the service's read-then-write check.
type PunchRepository interface {
	// Insert persists a new punch and returns it with storage-assigned fields
	Insert(ctx context.Context, p Punch) (Punch, error)

	// Update rewrites a punch by id
	Update(ctx context.Context, p Punch) (Punch, error)

	// GetByID retrieves a punch by id
	GetByID(ctx context.Context, id string) (Punch, error)

	// FindOpenPunch returns the open punch for the pair, or nil
	FindOpenPunch(ctx context.Context, applicantID, jobID string) (*Punch, error)

	// FindInRange returns punches whose TimeIn falls in [start, end)
	FindInRange(ctx context.Context, filter RangeFilter, start, end time.Time) ([]Punch, error)

	// FindOverlapping returns the applicant's punches whose interval
	// intersects [start, end), excluding excludeID. Open punches extend
	// to now for the comparison.
	FindOverlapping(ctx context.Context, applicantID string, start, end time.Time, excludeID string) ([]Punch, error)
}
