package punch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftwise/timeclock-go/internal/config"
	activitydomain "github.com/shiftwise/timeclock-go/internal/domain/activity"
	"github.com/shiftwise/timeclock-go/internal/domain/job"
	"github.com/shiftwise/timeclock-go/internal/domain/punch"
	"github.com/shiftwise/timeclock-go/internal/domain/user"
	"github.com/shiftwise/timeclock-go/internal/pkg/email"
	"github.com/shiftwise/timeclock-go/internal/pkg/validator"
	"github.com/shiftwise/timeclock-go/internal/service/activity"
	"github.com/shiftwise/timeclock-go/internal/service/geofence"
	"github.com/shiftwise/timeclock-go/internal/service/schedule"
)

type PunchServiceImpl struct {
	punch.PunchRepository
	job.JobRepository
	recorder *activity.Recorder
	emails   email.EmailService
	policy   config.AttendanceConfig
	loc      *time.Location
	inTx     punch.TxRunner

	// now is swappable so tests can pin the clock
	now func() time.Time
}

func NewPunchService(
	punchRepo punch.PunchRepository,
	jobRepo job.JobRepository,
	recorder *activity.Recorder,
	emails email.EmailService,
	policy config.AttendanceConfig,
	loc *time.Location,
	txRunner punch.TxRunner,
) punch.PunchService {
	return &PunchServiceImpl{
		PunchRepository: punchRepo,
		JobRepository:   jobRepo,
		recorder:        recorder,
		emails:          emails,
		policy:          policy,
		loc:             loc,
		inTx:            txRunner,
		now:             time.Now,
	}
}

// transact runs fn through the configured transaction runner, or directly
// when none is wired.
func (s *PunchServiceImpl) transact(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx == nil {
		return fn(ctx)
	}
	return s.inTx(ctx, fn)
}

// ClockIn implements punch.PunchService. The checks run in a fixed order
// and the first failure wins; nothing is written until every check passes.
func (s *PunchServiceImpl) ClockIn(ctx context.Context, caller user.Identity, req punch.ClockInRequest) (punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	now := s.now().UTC()
	timeIn := req.ParsedTimeIn(now).UTC()

	// One open punch per employee per job, regardless of shift.
	open, err := s.PunchRepository.FindOpenPunch(ctx, req.ApplicantID, req.JobID)
	if err != nil {
		return punch.PunchResponse{}, fmt.Errorf("failed to look up open punch: %w", err)
	}
	if open != nil {
		return punch.PunchResponse{}, punch.ErrOpenPunchExists
	}

	j, err := s.JobRepository.GetByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			return punch.PunchResponse{}, job.ErrJobNotFound
		}
		return punch.PunchResponse{}, fmt.Errorf("failed to get job: %w", err)
	}

	if !schedule.JobHasShiftForUser(j, req.ApplicantID) {
		return punch.PunchResponse{}, punch.ErrNoShiftsForUser
	}

	coords, err := s.checkGeofence(caller, j, req.Coordinates)
	if err != nil {
		return punch.PunchResponse{}, err
	}

	_, window := schedule.ResolveForDate(j, req.ApplicantID, req.ShiftSlug, timeIn, s.loc)
	if window == nil {
		return punch.PunchResponse{}, punch.ErrNoValidShift
	}

	if !j.Config.AllowBreaks {
		if err := s.checkBreaks(ctx, req.ApplicantID, req.JobID, req.ShiftSlug, window); err != nil {
			return punch.PunchResponse{}, err
		}
	}

	if !j.Config.OvertimeAllowed() {
		if err := s.checkWeeklyOvertime(ctx, req.ApplicantID, req.JobID, timeIn); err != nil {
			return punch.PunchResponse{}, err
		}
	}

	created, err := s.PunchRepository.Insert(ctx, punch.Punch{
		UserID:             caller.UserID,
		ApplicantID:        req.ApplicantID,
		JobID:              req.JobID,
		ShiftSlug:          req.ShiftSlug,
		TimeIn:             timeIn,
		TimeOut:            nil,
		Status:             punch.StatusPending,
		ClockInCoordinates: coords,
		UserNote:           req.UserNote,
	})
	if err != nil {
		if errors.Is(err, punch.ErrOpenPunchExists) {
			// Lost the race to a concurrent clock-in; same rejection as
			// the up-front check.
			return punch.PunchResponse{}, punch.ErrOpenPunchExists
		}
		return punch.PunchResponse{}, fmt.Errorf("failed to create punch: %w", err)
	}

	s.recorder.Record(caller.UserID, req.ApplicantID, req.JobID, created.ID,
		activitydomain.ActionClockIn, fmt.Sprintf("clocked in to %s", j.Title))

	return punch.ToResponse(created), nil
}

// checkGeofence applies check 4: enforced only for geofenced jobs and the
// ordinary employee role. For everyone else coordinates are kept when they
// parse and silently dropped when they do not.
func (s *PunchServiceImpl) checkGeofence(caller user.Identity, j *job.Job, coords *job.Coordinate) (*job.Coordinate, error) {
	enforced := j.Geofenced && !caller.Role.BypassesGeofence()

	if !enforced {
		if coords != nil && !coordinateParses(*coords) {
			return nil, nil
		}
		return coords, nil
	}

	if coords == nil || !coordinateParses(*coords) {
		return nil, punch.ErrInvalidCoordinates
	}
	if !j.HasVenue() {
		return nil, job.ErrMissingCoordinates
	}
	if geofence.Violates(coords, j) {
		return nil, punch.ErrOutsideGeofence
	}
	return coords, nil
}

func coordinateParses(c job.Coordinate) bool {
	return validator.IsValidLatitude(c.Latitude) && validator.IsValidLongitude(c.Longitude)
}

// checkBreaks rejects a second clock-in inside the same resolved shift
// window when the job disables breaks.
func (s *PunchServiceImpl) checkBreaks(ctx context.Context, applicantID, jobID, shiftSlug string, window *schedule.ShiftWindow) error {
	prior, err := s.PunchRepository.FindInRange(ctx, punch.RangeFilter{
		ApplicantID: applicantID,
		JobIDs:      []string{jobID},
		ShiftSlug:   shiftSlug,
	}, window.Start, window.End)
	if err != nil {
		return fmt.Errorf("failed to check prior punches in shift window: %w", err)
	}
	if len(prior) > 0 {
		return punch.ErrBreaksNotAllowed
	}
	return nil
}

// checkWeeklyOvertime rejects a clock-in once the employee's completed
// hours for this job in the current calendar week exceed the configured
// limit. The week starts on the configured weekday in the reference zone.
func (s *PunchServiceImpl) checkWeeklyOvertime(ctx context.Context, applicantID, jobID string, timeIn time.Time) error {
	weekStart := schedule.WeekStart(timeIn, s.policy.WeekStartDay, s.loc)
	weekEnd := weekStart.AddDate(0, 0, 7)

	punches, err := s.PunchRepository.FindInRange(ctx, punch.RangeFilter{
		ApplicantID: applicantID,
		JobIDs:      []string{jobID},
	}, weekStart, weekEnd)
	if err != nil {
		return fmt.Errorf("failed to sum weekly hours: %w", err)
	}

	var hours float64
	for i := range punches {
		hours += punches[i].Hours()
	}
	if hours > s.policy.OvertimeWeeklyLimit {
		return punch.ErrOvertimeNotAllowed
	}
	return nil
}

// ClockOut implements punch.PunchService.
func (s *PunchServiceImpl) ClockOut(ctx context.Context, caller user.Identity, req punch.ClockOutRequest) (punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	open, err := s.PunchRepository.FindOpenPunch(ctx, req.ApplicantID, req.JobID)
	if err != nil {
		return punch.PunchResponse{}, fmt.Errorf("failed to look up open punch: %w", err)
	}
	if open == nil {
		return punch.PunchResponse{}, punch.ErrNotClockedIn
	}

	timeOut := req.ParsedTimeOut(s.now().UTC()).UTC()
	if timeOut.Before(open.TimeIn) {
		return punch.PunchResponse{}, punch.ErrTimeOutBeforeIn
	}

	open.TimeOut = &timeOut
	if req.Coordinates != nil && coordinateParses(*req.Coordinates) {
		open.ClockOutCoordinates = req.Coordinates
	}

	updated, err := s.PunchRepository.Update(ctx, *open)
	if err != nil {
		return punch.PunchResponse{}, fmt.Errorf("%w: %v", punch.ErrClockOutFailed, err)
	}

	s.recorder.Record(caller.UserID, req.ApplicantID, req.JobID, updated.ID,
		activitydomain.ActionClockOut, "clocked out")

	return punch.ToResponse(updated), nil
}

// UpdatePunch implements punch.PunchService. This is the manager
// correction path; edited times are re-checked for interval overlap
// against the employee's other punches before the write.
func (s *PunchServiceImpl) UpdatePunch(ctx context.Context, caller user.Identity, req punch.UpdatePunchRequest) (punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	stored, err := s.PunchRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, punch.ErrPunchNotFound) {
			return punch.PunchResponse{}, punch.ErrPunchNotFound
		}
		return punch.PunchResponse{}, fmt.Errorf("failed to get punch: %w", err)
	}

	now := s.now().UTC()
	edited := stored
	timesChanged := false

	if req.TimeIn != nil {
		if t, ok := validator.IsValidDateTime(*req.TimeIn); ok {
			t = t.UTC()
			if !t.Equal(stored.TimeIn) {
				edited.TimeIn = t
				timesChanged = true
			}
		}
	}

	if req.TimeOut != nil {
		if t, ok := validator.IsValidDateTime(*req.TimeOut); ok {
			t = t.UTC()
			if stored.TimeOut == nil || !t.Equal(*stored.TimeOut) {
				edited.TimeOut = &t
				timesChanged = true
			}
		}
	}

	if timesChanged && edited.TimeOut != nil && edited.TimeOut.Before(edited.TimeIn) {
		return punch.PunchResponse{}, punch.ErrTimeOutBeforeIn
	}

	if req.Status != nil {
		edited.Status = punch.Status(*req.Status)
	}

	noteAdded := false
	if req.ManagerNote != nil && !validator.IsEmpty(*req.ManagerNote) {
		if stored.ManagerNote == nil || *stored.ManagerNote != *req.ManagerNote {
			noteAdded = true
		}
		edited.ManagerNote = req.ManagerNote
	}

	edited.ModifiedDate = &now
	edited.ModifiedBy = &caller.UserID

	// The overlap re-check and the write commit or fail as one unit so a
	// punch created between them cannot slip past the check.
	var updated punch.Punch
	err = s.transact(ctx, func(ctx context.Context) error {
		if timesChanged {
			start, end := edited.Interval(now)
			others, err := s.PunchRepository.FindOverlapping(ctx, edited.ApplicantID, start, end, edited.ID)
			if err != nil {
				return fmt.Errorf("failed to check punch overlap: %w", err)
			}
			if len(others) > 0 {
				return punch.ErrPunchOverlap
			}
		}

		var err error
		updated, err = s.PunchRepository.Update(ctx, edited)
		if err != nil {
			return fmt.Errorf("failed to update punch: %w", err)
		}
		return nil
	})
	if err != nil {
		return punch.PunchResponse{}, err
	}

	s.recorder.Record(caller.UserID, updated.ApplicantID, updated.JobID, updated.ID,
		activitydomain.ActionPunchEdited, "punch corrected by manager")

	if noteAdded {
		s.notifyManagerNote(ctx, caller, updated)
	}

	return punch.ToResponse(updated), nil
}

// notifyManagerNote emails the job's configured recipients about a new
// manager note. Best effort: failures are logged and swallowed so they
// can never roll back the punch update.
func (s *PunchServiceImpl) notifyManagerNote(ctx context.Context, caller user.Identity, p punch.Punch) {
	if s.emails == nil {
		return
	}

	j, err := s.JobRepository.GetByID(ctx, p.JobID)
	if err != nil || len(j.Config.NotifyEmails) == 0 {
		return
	}

	note := ""
	if p.ManagerNote != nil {
		note = *p.ManagerNote
	}

	go func(recipients []string, title string) {
		if err := s.emails.SendPunchEditNotice(recipients, p.ApplicantID, title, caller.UserID, note); err != nil {
			slog.Warn("manager note notification failed",
				"punch_id", p.ID,
				"job_id", p.JobID,
				"error", err,
			)
		}
	}(j.Config.NotifyEmails, j.Title)
}
