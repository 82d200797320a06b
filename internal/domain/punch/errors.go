package punch

import "errors"

// Punch domain errors, grouped by the rejection taxonomy: conflicts,
// policy rejections, not-found, and infrastructure failures.
var (
	// Conflict errors
	ErrOpenPunchExists = errors.New("an open punch already exists for this job")
	ErrPunchOverlap    = errors.New("punch would overlap another punch for this employee")

	// Policy errors
	ErrOutsideGeofence    = errors.New("you are outside the allowed clock-in area")
	ErrBreaksNotAllowed   = errors.New("breaks are not allowed for this job")
	ErrOvertimeNotAllowed = errors.New("overtime is not allowed for this job")
	ErrNoValidShift       = errors.New("no valid shift window for today")
	ErrNoShiftsForUser    = errors.New("no shifts are assigned to this employee for this job")

	// Validation / not-found errors
	ErrInvalidCoordinates = errors.New("invalid clock-in coordinates")
	ErrPunchNotFound      = errors.New("punch record not found")
	ErrNotClockedIn       = errors.New("no open punch to clock out of")
	ErrTimeOutBeforeIn    = errors.New("clock-out time must not precede clock-in time")

	// Infrastructure errors
	ErrClockOutFailed = errors.New("failed to record clock-out")
)
