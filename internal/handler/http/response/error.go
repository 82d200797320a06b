package response

import (
	"errors"
	"net/http"

	"github.com/shiftwise/timeclock-go/internal/domain/job"
	"github.com/shiftwise/timeclock-go/internal/domain/punch"
	"github.com/shiftwise/timeclock-go/internal/domain/user"
	"github.com/shiftwise/timeclock-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Every rejection
// carries a short machine-readable code alongside the human message.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Conflict errors
	case errors.Is(err, punch.ErrOpenPunchExists):
		Forbidden(w, "open-punch-exists", err.Error())
	case errors.Is(err, punch.ErrPunchOverlap):
		BadRequest(w, "punch-overlap", err.Error(), nil)

	// Policy errors
	case errors.Is(err, punch.ErrOutsideGeofence):
		BadRequest(w, "outside-geofence", err.Error(), nil)
	case errors.Is(err, punch.ErrBreaksNotAllowed):
		Forbidden(w, "breaks-not-allowed", err.Error())
	case errors.Is(err, punch.ErrOvertimeNotAllowed):
		BadRequest(w, "overtime-not-allowed", err.Error(), nil)
	case errors.Is(err, punch.ErrNoValidShift):
		BadRequest(w, "no-valid-shift", err.Error(), nil)
	case errors.Is(err, punch.ErrNoShiftsForUser):
		NotFound(w, "no-shifts-for-user", err.Error())

	// Validation / not-found errors
	case errors.Is(err, punch.ErrInvalidCoordinates):
		BadRequest(w, "invalid-coordinates", err.Error(), nil)
	case errors.Is(err, punch.ErrTimeOutBeforeIn):
		BadRequest(w, "invalid-time-range", err.Error(), nil)
	case errors.Is(err, punch.ErrNotClockedIn):
		BadRequest(w, "not-clocked-in", err.Error(), nil)
	case errors.Is(err, punch.ErrPunchNotFound):
		NotFound(w, "punch-not-found", err.Error())
	case errors.Is(err, job.ErrJobNotFound):
		BadRequest(w, "job-not-found", err.Error(), nil)
	case errors.Is(err, job.ErrMissingCoordinates):
		NotFound(w, "missing-job-coordinates", err.Error())

	// Identity errors
	case errors.Is(err, user.ErrIdentityMissing):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "manager-access-required", err.Error())

	// Infrastructure errors
	case errors.Is(err, punch.ErrClockOutFailed):
		InternalServerError(w, "clock-out-failed", err.Error())

	// Default
	default:
		InternalServerError(w, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}
