package punch

import (
	"time"

	"github.com/shiftwise/timeclock-go/internal/domain/job"
	"github.com/shiftwise/timeclock-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

type ClockInRequest struct {
	ApplicantID string          `json:"applicant_id"`
	JobID       string          `json:"job_id"`
	ShiftSlug   string          `json:"shift_slug"`
	Coordinates *job.Coordinate `json:"coordinates"`
	UserNote    *string         `json:"user_note"`
	TimeIn      *string         `json:"time_in"` // RFC3339; defaults to now
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ApplicantID) {
		errs = append(errs, validator.ValidationError{
			Field:   "applicant_id",
			Message: "applicant_id is required",
		})
	}

	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_id",
			Message: "job_id is required",
		})
	}

	if validator.IsEmpty(r.ShiftSlug) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_slug",
			Message: "shift_slug is required",
		})
	}

	if r.TimeIn != nil {
		if _, ok := validator.IsValidDateTime(*r.TimeIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "time_in",
				Message: "time_in must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedTimeIn returns the requested clock-in instant, or now.
func (r *ClockInRequest) ParsedTimeIn(now time.Time) time.Time {
	if r.TimeIn == nil {
		return now
	}
	if t, ok := validator.IsValidDateTime(*r.TimeIn); ok {
		return t
	}
	return now
}

type ClockOutRequest struct {
	ApplicantID string          `json:"applicant_id"`
	JobID       string          `json:"job_id"`
	Coordinates *job.Coordinate `json:"coordinates"`
	TimeOut     *string         `json:"time_out"` // RFC3339; defaults to now
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ApplicantID) {
		errs = append(errs, validator.ValidationError{
			Field:   "applicant_id",
			Message: "applicant_id is required",
		})
	}

	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_id",
			Message: "job_id is required",
		})
	}

	if r.TimeOut != nil {
		if _, ok := validator.IsValidDateTime(*r.TimeOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "time_out",
				Message: "time_out must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedTimeOut returns the requested clock-out instant, or now.
func (r *ClockOutRequest) ParsedTimeOut(now time.Time) time.Time {
	if r.TimeOut == nil {
		return now
	}
	if t, ok := validator.IsValidDateTime(*r.TimeOut); ok {
		return t
	}
	return now
}

// UpdatePunchRequest is the manager correction path. Nil fields are left
// untouched.
type UpdatePunchRequest struct {
	ID          string  `json:"id"`
	TimeIn      *string `json:"time_in"`
	TimeOut     *string `json:"time_out"`
	Status      *string `json:"status"`
	ManagerNote *string `json:"manager_note"`
}

func (r *UpdatePunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.TimeIn != nil {
		if _, ok := validator.IsValidDateTime(*r.TimeIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "time_in",
				Message: "time_in must be an ISO8601 timestamp",
			})
		}
	}

	if r.TimeOut != nil {
		if _, ok := validator.IsValidDateTime(*r.TimeOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "time_out",
				Message: "time_out must be an ISO8601 timestamp",
			})
		}
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{
		string(StatusPending), string(StatusApproved), string(StatusRejected),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be pending, approved, or rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchResponse struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"user_id"`
	ApplicantID         string          `json:"applicant_id"`
	JobID               string          `json:"job_id"`
	ShiftSlug           string          `json:"shift_slug"`
	TimeIn              string          `json:"time_in"`
	TimeOut             *string         `json:"time_out"`
	Status              string          `json:"status"`
	ClockInCoordinates  *job.Coordinate `json:"clock_in_coordinates"`
	ClockOutCoordinates *job.Coordinate `json:"clock_out_coordinates"`
	UserNote            *string         `json:"user_note"`
	ManagerNote         *string         `json:"manager_note"`
	HoursWorked         *float64        `json:"hours_worked"`
}

// ToResponse maps a punch entity to its API shape.
func ToResponse(p Punch) PunchResponse {
	resp := PunchResponse{
		ID:                  p.ID,
		UserID:              p.UserID,
		ApplicantID:         p.ApplicantID,
		JobID:               p.JobID,
		ShiftSlug:           p.ShiftSlug,
		TimeIn:              p.TimeIn.Format(time.RFC3339),
		Status:              string(p.Status),
		ClockInCoordinates:  p.ClockInCoordinates,
		ClockOutCoordinates: p.ClockOutCoordinates,
		UserNote:            p.UserNote,
		ManagerNote:         p.ManagerNote,
	}
	if p.TimeOut != nil {
		out := p.TimeOut.Format(time.RFC3339)
		resp.TimeOut = &out
		hours := p.Hours()
		resp.HoursWorked = &hours
	}
	return resp
}
