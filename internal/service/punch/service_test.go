package punch

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shiftwise/timeclock-go/internal/config"
	"github.com/shiftwise/timeclock-go/internal/domain/job"
	"github.com/shiftwise/timeclock-go/internal/domain/punch"
	"github.com/shiftwise/timeclock-go/internal/domain/user"
	"github.com/shiftwise/timeclock-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A Monday, 09:00 UTC, inside the default test shift window.
var mondayNine = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

type fakePunchRepo struct {
	mu        sync.Mutex
	punches   map[string]punch.Punch
	seq       int
	insertErr error
}

func newFakePunchRepo() *fakePunchRepo {
	return &fakePunchRepo{punches: make(map[string]punch.Punch)}
}

func (f *fakePunchRepo) Insert(_ context.Context, p punch.Punch) (punch.Punch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return punch.Punch{}, f.insertErr
	}
	// Mirrors the partial unique index on (applicant_id, job_id) open rows.
	for _, existing := range f.punches {
		if existing.ApplicantID == p.ApplicantID && existing.JobID == p.JobID && existing.IsOpen() {
			return punch.Punch{}, punch.ErrOpenPunchExists
		}
	}
	f.seq++
	p.ID = fmt.Sprintf("punch-%d", f.seq)
	p.CreatedAt = p.TimeIn
	p.UpdatedAt = p.TimeIn
	f.punches[p.ID] = p
	return p, nil
}

func (f *fakePunchRepo) Update(_ context.Context, p punch.Punch) (punch.Punch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.punches[p.ID]; !ok {
		return punch.Punch{}, punch.ErrPunchNotFound
	}
	f.punches[p.ID] = p
	return p, nil
}

func (f *fakePunchRepo) GetByID(_ context.Context, id string) (punch.Punch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.punches[id]
	if !ok {
		return punch.Punch{}, punch.ErrPunchNotFound
	}
	return p, nil
}

func (f *fakePunchRepo) FindOpenPunch(_ context.Context, applicantID, jobID string) (*punch.Punch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.punches {
		if p.ApplicantID == applicantID && p.JobID == jobID && p.IsOpen() {
			open := p
			return &open, nil
		}
	}
	return nil, nil
}

func (f *fakePunchRepo) FindInRange(_ context.Context, filter punch.RangeFilter, start, end time.Time) ([]punch.Punch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []punch.Punch
	for _, p := range f.punches {
		if p.TimeIn.Before(start) || !p.TimeIn.Before(end) {
			continue
		}
		if filter.ApplicantID != "" && p.ApplicantID != filter.ApplicantID {
			continue
		}
		if filter.ShiftSlug != "" && p.ShiftSlug != filter.ShiftSlug {
			continue
		}
		if len(filter.JobIDs) > 0 {
			matched := false
			for _, id := range filter.JobIDs {
				if p.JobID == id {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePunchRepo) FindOverlapping(_ context.Context, applicantID string, start, end time.Time, excludeID string) ([]punch.Punch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	span := punch.Punch{TimeIn: start, TimeOut: &end}
	var out []punch.Punch
	for _, p := range f.punches {
		if p.ID == excludeID || p.ApplicantID != applicantID {
			continue
		}
		if p.Overlaps(&span, now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePunchRepo) seed(t *testing.T, p punch.Punch) punch.Punch {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if p.ID == "" {
		p.ID = fmt.Sprintf("punch-%d", f.seq)
	}
	f.punches[p.ID] = p
	return p
}

type fakeJobRepo struct {
	jobs map[string]*job.Job
}

func (f *fakeJobRepo) GetByID(_ context.Context, id string) (*job.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound
	}
	return j, nil
}

func (f *fakeJobRepo) GetByIDs(_ context.Context, ids []string) (map[string]*job.Job, error) {
	out := make(map[string]*job.Job)
	for _, id := range ids {
		if j, ok := f.jobs[id]; ok {
			out[id] = j
		}
	}
	return out, nil
}

func (f *fakeJobRepo) ListIDs(_ context.Context) ([]string, error) {
	var ids []string
	for id := range f.jobs {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeEmailService struct {
	err    error
	called chan []string
}

func (f *fakeEmailService) SendPunchEditNotice(to []string, _, _, _, _ string) error {
	if f.called != nil {
		select {
		case f.called <- to:
		default:
		}
	}
	return f.err
}

// testJob returns a non-geofenced job whose day shift runs Mondays
// 08:00-17:00 with appl-1 on the roster.
func testJob(mutate ...func(*job.Job)) *job.Job {
	j := &job.Job{
		ID:               "job-1",
		Title:            "Warehouse Associate",
		VenueCoordinates: &job.Coordinate{Latitude: 40, Longitude: -75},
		RadiusFeet:       100,
		Shifts: []job.Shift{{
			Slug:     "day",
			Name:     "Day Shift",
			BillRate: 20,
			DefaultSchedule: map[string]job.DaySchedule{
				"monday": {
					StartTime: "08:00",
					EndTime:   "17:00",
					Roster:    job.Roster{{EmployeeID: "appl-1", Legacy: true}},
				},
			},
		}},
	}
	for _, m := range mutate {
		m(j)
	}
	return j
}

func newTestService(jobs ...*job.Job) (*PunchServiceImpl, *fakePunchRepo, *fakeJobRepo) {
	punchRepo := newFakePunchRepo()
	jobRepo := &fakeJobRepo{jobs: make(map[string]*job.Job)}
	for _, j := range jobs {
		jobRepo.jobs[j.ID] = j
	}
	svc := &PunchServiceImpl{
		PunchRepository: punchRepo,
		JobRepository:   jobRepo,
		policy: config.AttendanceConfig{
			WeekStartDay:        0,
			OvertimeWeeklyLimit: 40,
			OnTimeGraceMinutes:  15,
		},
		loc: time.UTC,
		now: func() time.Time { return mondayNine },
	}
	return svc, punchRepo, jobRepo
}

func employee() user.Identity {
	return user.Identity{UserID: "user-1", ApplicantID: "appl-1", Role: user.RoleUser}
}

func TestClockIn_Success(t *testing.T) {
	svc, _, _ := newTestService(testJob())

	resp, err := svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{
		ApplicantID: "appl-1",
		JobID:       "job-1",
		ShiftSlug:   "day",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "appl-1", resp.ApplicantID)
	assert.Equal(t, string(punch.StatusPending), resp.Status)
	assert.Equal(t, mondayNine.Format(time.RFC3339), resp.TimeIn)
	assert.Nil(t, resp.TimeOut)
}

func TestClockIn_RejectsSecondOpenPunch(t *testing.T) {
	svc, _, _ := newTestService(testJob())

	_, err := svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{
		ApplicantID: "appl-1", JobID: "job-1", ShiftSlug: "day",
	})
	require.NoError(t, err)

	_, err = svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{
		ApplicantID: "appl-1", JobID: "job-1", ShiftSlug: "day",
	})
	assert.ErrorIs(t, err, punch.ErrOpenPunchExists)
}

func TestClockIn_ConcurrentInsertLosesRace(t *testing.T) {
	svc, punchRepo, _ := newTestService(testJob())
	// The up-front open-punch read saw nothing, but another clock-in
	// committed first and the unique index rejects the insert.
	punchRepo.insertErr = punch.ErrOpenPunchExists

	_, err := svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{
		ApplicantID: "appl-1", JobID: "job-1", ShiftSlug: "day",
	})
	assert.ErrorIs(t, err, punch.ErrOpenPunchExists)
}

func TestClockIn_JobNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{
		ApplicantID: "appl-1", JobID: "missing", ShiftSlug: "day",
	})
	assert.ErrorIs(t, err, job.ErrJobNotFound)
}

func TestClockIn_OpenRosterAdmitsAnyEmployee(t *testing.T) {
	svc, _, _ := newTestService(testJob(func(j *job.Job) {
		j.Shifts[0].DefaultSchedule["monday"] = job.DaySchedule{
			StartTime: "08:00",
			EndTime:   "17:00",
			Roster:    nil,
		}
	}))

	// An employee never named on any roster can still clock in when the
	// scheduled day's roster is open.
	caller := user.Identity{UserID: "user-7", ApplicantID: "appl-7", Role: user.RoleUser}
	resp, err := svc.ClockIn(context.Background(), caller, punch.ClockInRequest{
		ApplicantID: "appl-7", JobID: "job-1", ShiftSlug: "day",
	})
	require.NoError(t, err)
	assert.Equal(t, "appl-7", resp.ApplicantID)
}

func TestClockIn_NoShiftsForUser(t *testing.T) {
	svc, _, _ := newTestService(testJob())

	caller := user.Identity{UserID: "user-2", ApplicantID: "appl-2", Role: user.RoleUser}
	_, err := svc.ClockIn(context.Background(), caller, punch.ClockInRequest{
		ApplicantID: "appl-2", JobID: "job-1", ShiftSlug: "day",
	})
	assert.ErrorIs(t, err, punch.ErrNoShiftsForUser)
}

func TestClockIn_NoValidShiftOnUnscheduledDay(t *testing.T) {
	svc, _, _ := newTestService(testJob())
	// Tuesday has no schedule at all.
	svc.now = func() time.Time { return mondayNine.AddDate(0, 0, 1) }

	_, err := svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{
		ApplicantID: "appl-1", JobID: "job-1", ShiftSlug: "day",
	})
	assert.ErrorIs(t, err, punch.ErrNoValidShift)
}

func TestClockIn_Geofence(t *testing.T) {
	geofenced := func(j *job.Job) { j.Geofenced = true }

	t.Run("at venue succeeds", func(t *testing.T) {
		svc, _, _ := newTestService(testJob(geofenced))
		resp, err := svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{
			ApplicantID: "appl-1", JobID: "job-1", ShiftSlug: "day",
			Coordinates: &job.Coordinate{Latitude: 40, Longitude: -75},
		})
		require.NoError(t, err)
		require.NotNil(t, resp.ClockInCoordinates)
		assert.Equal(t, 40.0, resp.ClockInCoordinates.Latitude)
	})

	t.Run("outside radius rejected", func(t *testing.T) {
		svc, _, _ := newTestService(testJob(geofenced))
		// ~0.0005 deg latitude is roughly 180 ft, past the 100 ft fence.
		_, err := svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{
			ApplicantID: "appl-1", JobID: "job-1", ShiftSlug: "day",
			Coordinates: &job.Coordinate{Latitude: 40.0005, Longitude: -75},
		})
		assert.ErrorIs(t, err, punch.ErrOutsideGeofence)
	})

	t.Run("missing coordinates rejected", func(t *testing.T) {
		svc, _, _ := newTestService(testJob(geofenced))
		_, err := svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{
			ApplicantID: "appl-1", JobID: "job-1", ShiftSlug: "day",
		})
		assert.ErrorIs(t, err, punch.ErrInvalidCoordinates)
	})

	t.Run("job without venue coordinates rejected", func(t *testing.T) {
		svc, _, _ := newTestService(testJob(geofenced, func(j *job.Job) {
			j.VenueCoordinates = nil
		}))
		_, err := svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{
			ApplicantID: "appl-1", JobID: "job-1", ShiftSlug: "day",
			Coordinates: &job.Coordinate{Latitude: 40, Longitude: -75},
		})
		assert.ErrorIs(t, err, job.ErrMissingCoordinates)
	})

	t.Run("manager bypasses fence", func(t *testing.T) {
		svc, _, _ := newTestService(testJob(geofenced, func(j *job.Job) {
			j.Shifts[0].DefaultSchedule["monday"] = job.DaySchedule{
				StartTime: "08:00",
				EndTime:   "17:00",
				Roster:    job.Roster{{EmployeeID: "mgr-1", Legacy: true}},
			}
		}))
		caller := user.Identity{UserID: "user-9", ApplicantID: "mgr-1", Role: user.RoleManager}
		_, err := svc.ClockIn(context.Background(), caller, punch.ClockInRequest{
			ApplicantID: "mgr-1", JobID: "job-1", ShiftSlug: "day",
			Coordinates: &job.Coordinate{Latitude: 41, Longitude: -75},
		})
		assert.NoError(t, err)
	})
}

func TestClockIn_BreaksNotAllowed(t *testing.T) {
	svc, punchRepo, _ := newTestService(testJob())

	// A completed punch earlier inside today's 08:00-17:00 window.
	out := mondayNine.Add(-30 * time.Minute)
	punchRepo.seed(t, punch.Punch{
		ApplicantID: "appl-1",
		JobID:       "job-1",
		ShiftSlug:   "day",
		TimeIn:      mondayNine.Add(-time.Hour),
		TimeOut:     &out,
		Status:      punch.StatusPending,
	})

	_, err := svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{
		ApplicantID: "appl-1", JobID: "job-1", ShiftSlug: "day",
	})
	assert.ErrorIs(t, err, punch.ErrBreaksNotAllowed)
}

func TestClockIn_BreaksAllowedByJobConfig(t *testing.T) {
	svc, punchRepo, _ := newTestService(testJob(func(j *job.Job) {
		j.Config.AllowBreaks = true
	}))

	out := mondayNine.Add(-30 * time.Minute)
	punchRepo.seed(t, punch.Punch{
		ApplicantID: "appl-1",
		JobID:       "job-1",
		ShiftSlug:   "day",
		TimeIn:      mondayNine.Add(-time.Hour),
		TimeOut:     &out,
		Status:      punch.StatusPending,
	})

	_, err := svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{
		ApplicantID: "appl-1", JobID: "job-1", ShiftSlug: "day",
	})
	assert.NoError(t, err)
}

func TestClockIn_WeeklyOvertime(t *testing.T) {
	// 41 completed hours Sunday..now, over the 40 hour weekly limit.
	seedWeek := func(repo *fakePunchRepo) {
		sunday := mondayNine.AddDate(0, 0, -1)
		for d := 0; d < 2; d++ {
			in := sunday.AddDate(0, 0, d).Add(-8 * time.Hour) // 01:00 local day
			out := in.Add(20*time.Hour + 30*time.Minute)
			repo.seed(t, punch.Punch{
				ApplicantID: "appl-1",
				JobID:       "job-1",
				ShiftSlug:   "day",
				TimeIn:      in,
				TimeOut:     &out,
				Status:      punch.StatusApproved,
			})
		}
	}

	t.Run("rejected when job forbids overtime", func(t *testing.T) {
		svc, punchRepo, _ := newTestService(testJob(func(j *job.Job) {
			no := false
			j.Config.AllowOvertime = &no
			j.Config.AllowBreaks = true
		}))
		seedWeek(punchRepo)

		_, err := svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{
			ApplicantID: "appl-1", JobID: "job-1", ShiftSlug: "day",
		})
		assert.ErrorIs(t, err, punch.ErrOvertimeNotAllowed)
	})

	t.Run("allowed when the flag is unset", func(t *testing.T) {
		svc, punchRepo, _ := newTestService(testJob(func(j *job.Job) {
			j.Config.AllowBreaks = true
		}))
		seedWeek(punchRepo)

		_, err := svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{
			ApplicantID: "appl-1", JobID: "job-1", ShiftSlug: "day",
		})
		assert.NoError(t, err)
	})
}

func TestClockIn_ValidationErrors(t *testing.T) {
	svc, _, _ := newTestService(testJob())

	_, err := svc.ClockIn(context.Background(), employee(), punch.ClockInRequest{})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

func TestClockOut_Success(t *testing.T) {
	svc, punchRepo, _ := newTestService(testJob())

	punchRepo.seed(t, punch.Punch{
		ID:          "punch-open",
		ApplicantID: "appl-1",
		JobID:       "job-1",
		ShiftSlug:   "day",
		TimeIn:      mondayNine.Add(-4 * time.Hour),
		Status:      punch.StatusPending,
	})

	resp, err := svc.ClockOut(context.Background(), employee(), punch.ClockOutRequest{
		ApplicantID: "appl-1", JobID: "job-1",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.TimeOut)
	assert.Equal(t, mondayNine.Format(time.RFC3339), *resp.TimeOut)
	require.NotNil(t, resp.HoursWorked)
	assert.InDelta(t, 4.0, *resp.HoursWorked, 0.001)
}

func TestClockOut_NotClockedIn(t *testing.T) {
	svc, _, _ := newTestService(testJob())

	_, err := svc.ClockOut(context.Background(), employee(), punch.ClockOutRequest{
		ApplicantID: "appl-1", JobID: "job-1",
	})
	assert.ErrorIs(t, err, punch.ErrNotClockedIn)
}

func TestClockOut_BeforeClockInRejected(t *testing.T) {
	svc, punchRepo, _ := newTestService(testJob())

	punchRepo.seed(t, punch.Punch{
		ID:          "punch-open",
		ApplicantID: "appl-1",
		JobID:       "job-1",
		ShiftSlug:   "day",
		TimeIn:      mondayNine.Add(-time.Hour),
		Status:      punch.StatusPending,
	})

	early := mondayNine.Add(-2 * time.Hour).Format(time.RFC3339)
	_, err := svc.ClockOut(context.Background(), employee(), punch.ClockOutRequest{
		ApplicantID: "appl-1", JobID: "job-1", TimeOut: &early,
	})
	assert.ErrorIs(t, err, punch.ErrTimeOutBeforeIn)
}

func manager() user.Identity {
	return user.Identity{UserID: "user-9", ApplicantID: "mgr-1", Role: user.RoleManager}
}

func TestUpdatePunch_OverlapRejected(t *testing.T) {
	svc, punchRepo, _ := newTestService(testJob())

	firstOut := mondayNine.Add(-time.Hour)
	punchRepo.seed(t, punch.Punch{
		ID:          "punch-a",
		ApplicantID: "appl-1",
		JobID:       "job-1",
		ShiftSlug:   "day",
		TimeIn:      mondayNine.Add(-4 * time.Hour),
		TimeOut:     &firstOut,
		Status:      punch.StatusApproved,
	})
	secondOut := mondayNine.Add(time.Hour)
	punchRepo.seed(t, punch.Punch{
		ID:          "punch-b",
		ApplicantID: "appl-1",
		JobID:       "job-1",
		ShiftSlug:   "day",
		TimeIn:      mondayNine.Add(-30 * time.Minute),
		TimeOut:     &secondOut,
		Status:      punch.StatusPending,
	})

	// Stretching punch-b backwards over punch-a's interval must fail.
	newIn := mondayNine.Add(-2 * time.Hour).Format(time.RFC3339)
	_, err := svc.UpdatePunch(context.Background(), manager(), punch.UpdatePunchRequest{
		ID:     "punch-b",
		TimeIn: &newIn,
	})
	assert.ErrorIs(t, err, punch.ErrPunchOverlap)
}

func TestUpdatePunch_TimesAndStatus(t *testing.T) {
	svc, punchRepo, _ := newTestService(testJob())

	out := mondayNine.Add(-time.Hour)
	punchRepo.seed(t, punch.Punch{
		ID:          "punch-a",
		ApplicantID: "appl-1",
		JobID:       "job-1",
		ShiftSlug:   "day",
		TimeIn:      mondayNine.Add(-4 * time.Hour),
		TimeOut:     &out,
		Status:      punch.StatusPending,
	})

	newOut := mondayNine.Format(time.RFC3339)
	status := string(punch.StatusApproved)
	resp, err := svc.UpdatePunch(context.Background(), manager(), punch.UpdatePunchRequest{
		ID:      "punch-a",
		TimeOut: &newOut,
		Status:  &status,
	})
	require.NoError(t, err)

	assert.Equal(t, string(punch.StatusApproved), resp.Status)
	require.NotNil(t, resp.TimeOut)
	assert.Equal(t, newOut, *resp.TimeOut)
	require.NotNil(t, resp.HoursWorked)
	assert.InDelta(t, 4.0, *resp.HoursWorked, 0.001)

	stored, err := punchRepo.GetByID(context.Background(), "punch-a")
	require.NoError(t, err)
	require.NotNil(t, stored.ModifiedBy)
	assert.Equal(t, "user-9", *stored.ModifiedBy)
	assert.NotNil(t, stored.ModifiedDate)
}

func TestUpdatePunch_TimeOutBeforeInRejected(t *testing.T) {
	svc, punchRepo, _ := newTestService(testJob())

	punchRepo.seed(t, punch.Punch{
		ID:          "punch-a",
		ApplicantID: "appl-1",
		JobID:       "job-1",
		ShiftSlug:   "day",
		TimeIn:      mondayNine.Add(-time.Hour),
		Status:      punch.StatusPending,
	})

	bad := mondayNine.Add(-2 * time.Hour).Format(time.RFC3339)
	_, err := svc.UpdatePunch(context.Background(), manager(), punch.UpdatePunchRequest{
		ID:      "punch-a",
		TimeOut: &bad,
	})
	assert.ErrorIs(t, err, punch.ErrTimeOutBeforeIn)
}

func TestUpdatePunch_RunsOverlapCheckAndWriteAtomically(t *testing.T) {
	svc, punchRepo, _ := newTestService(testJob())

	punchRepo.seed(t, punch.Punch{
		ID:          "punch-a",
		ApplicantID: "appl-1",
		JobID:       "job-1",
		ShiftSlug:   "day",
		TimeIn:      mondayNine.Add(-4 * time.Hour),
		Status:      punch.StatusPending,
	})

	t.Run("edit flows through the runner", func(t *testing.T) {
		runs := 0
		svc.inTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			runs++
			return fn(ctx)
		}

		newOut := mondayNine.Format(time.RFC3339)
		_, err := svc.UpdatePunch(context.Background(), manager(), punch.UpdatePunchRequest{
			ID:      "punch-a",
			TimeOut: &newOut,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, runs)
	})

	t.Run("failed transaction leaves the punch unwritten", func(t *testing.T) {
		svc.inTx = func(_ context.Context, _ func(ctx context.Context) error) error {
			return fmt.Errorf("serialization failure")
		}

		note := "late adjustment"
		_, err := svc.UpdatePunch(context.Background(), manager(), punch.UpdatePunchRequest{
			ID:          "punch-a",
			ManagerNote: &note,
		})
		require.Error(t, err)

		stored, getErr := punchRepo.GetByID(context.Background(), "punch-a")
		require.NoError(t, getErr)
		assert.Nil(t, stored.ManagerNote)
	})
}

func TestUpdatePunch_NotFound(t *testing.T) {
	svc, _, _ := newTestService(testJob())

	_, err := svc.UpdatePunch(context.Background(), manager(), punch.UpdatePunchRequest{ID: "nope"})
	assert.ErrorIs(t, err, punch.ErrPunchNotFound)
}

func TestUpdatePunch_NoteNotifiesBestEffort(t *testing.T) {
	svc, punchRepo, _ := newTestService(testJob(func(j *job.Job) {
		j.Config.NotifyEmails = []string{"supervisor@example.com"}
	}))
	emails := &fakeEmailService{
		err:    fmt.Errorf("smtp unreachable"),
		called: make(chan []string, 1),
	}
	svc.emails = emails

	out := mondayNine.Add(-time.Hour)
	punchRepo.seed(t, punch.Punch{
		ID:          "punch-a",
		ApplicantID: "appl-1",
		JobID:       "job-1",
		ShiftSlug:   "day",
		TimeIn:      mondayNine.Add(-4 * time.Hour),
		TimeOut:     &out,
		Status:      punch.StatusPending,
	})

	note := "adjusted for missed meal break"
	resp, err := svc.UpdatePunch(context.Background(), manager(), punch.UpdatePunchRequest{
		ID:          "punch-a",
		ManagerNote: &note,
	})

	// The failing notifier must never fail the update itself.
	require.NoError(t, err)
	require.NotNil(t, resp.ManagerNote)
	assert.Equal(t, note, *resp.ManagerNote)

	select {
	case to := <-emails.called:
		assert.Equal(t, []string{"supervisor@example.com"}, to)
	case <-time.After(time.Second):
		t.Fatal("expected the notifier to be invoked")
	}
}
