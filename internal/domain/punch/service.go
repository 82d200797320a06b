package punch

import (
	"context"

	"github.com/shiftwise/timeclock-go/internal/domain/user"
)

// PunchService is the clock-in/clock-out eligibility engine.
type PunchService interface {
	// ClockIn opens a new punch after the ordered eligibility checks
	ClockIn(ctx context.Context, caller user.Identity, req ClockInRequest) (PunchResponse, error)

	// ClockOut closes the caller's open punch for the job
	ClockOut(ctx context.Context, caller user.Identity, req ClockOutRequest) (PunchResponse, error)

	// UpdatePunch is the manager correction path; edited times are
	// re-checked against the employee's other punches for overlap
	UpdatePunch(ctx context.Context, caller user.Identity, req UpdatePunchRequest) (PunchResponse, error)
}
