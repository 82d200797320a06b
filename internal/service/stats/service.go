package stats

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/shiftwise/timeclock-go/internal/config"
	"github.com/shiftwise/timeclock-go/internal/domain/job"
	"github.com/shiftwise/timeclock-go/internal/domain/punch"
	"github.com/shiftwise/timeclock-go/internal/domain/stats"
	"github.com/shiftwise/timeclock-go/internal/domain/user"
	"github.com/shiftwise/timeclock-go/internal/service/geofence"
	"github.com/shiftwise/timeclock-go/internal/service/schedule"
	"golang.org/x/sync/errgroup"
)

const standardDayHours = 8

type StatsServiceImpl struct {
	punch.PunchRepository
	job.JobRepository
	policy config.AttendanceConfig
	loc    *time.Location

	now func() time.Time
}

func NewStatsService(
	punchRepo punch.PunchRepository,
	jobRepo job.JobRepository,
	policy config.AttendanceConfig,
	loc *time.Location,
) stats.StatsService {
	return &StatsServiceImpl{
		PunchRepository: punchRepo,
		JobRepository:   jobRepo,
		policy:          policy,
		loc:             loc,
		now:             time.Now,
	}
}

// ComputeStats implements stats.StatsService. Every failure path, unknown
// employees and timed-out queries included, degrades to a zero-valued
// result with a logged warning instead of an error.
func (s *StatsServiceImpl) ComputeStats(ctx context.Context, caller user.Identity, req stats.StatsRequest) (stats.Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	window := WindowFor(req.View, req.Anchor, req.Start, req.End, s.policy.WeekStartDay, s.loc)
	applicantID := s.scopeApplicant(caller, req)

	var current, previous windowTotals
	var curPunches []punch.Punch
	var jobs map[string]*job.Job

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		curPunches, jobs, err = s.fetchWindow(gCtx, applicantID, req, window)
		if err != nil {
			return err
		}
		current = tally(curPunches, jobs)
		return nil
	})

	if req.View == stats.ViewWeek {
		g.Go(func() error {
			prevWindow := stats.Window{
				Start: window.Start.AddDate(0, 0, -7),
				End:   window.Start,
			}
			prevPunches, prevJobs, err := s.fetchWindow(gCtx, applicantID, req, prevWindow)
			if err != nil {
				return err
			}
			previous = tally(prevPunches, prevJobs)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Warn("stats aggregation degraded to zero result", "error", err)
		return stats.Stats{}, nil
	}

	result := stats.Stats{
		TotalHours:         current.hours,
		ShiftsCompleted:    current.completed,
		GeofenceViolations: current.violations,
	}

	scheduled, _ := s.scheduledInstances(curPunches, jobs, req.JobIDs, applicantID, window)
	result.Absences = max(0, scheduled-current.completed)

	if caller.Role.CanViewBilling() {
		spend := roundCents(current.spend)
		result.TotalSpend = &spend
	}

	if req.View == stats.ViewWeek {
		result.WeeklyChange = &stats.WeeklyChange{
			Hours:           current.hours - previous.hours,
			ShiftsCompleted: current.completed - previous.completed,
			Violations:      current.violations - previous.violations,
		}
	}

	return result, nil
}

// ComputePerformance implements stats.StatsService.
func (s *StatsServiceImpl) ComputePerformance(ctx context.Context, caller user.Identity, req stats.StatsRequest) (stats.PerformanceMetrics, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	window := WindowFor(req.View, req.Anchor, req.Start, req.End, s.policy.WeekStartDay, s.loc)
	applicantID := s.scopeApplicant(caller, req)

	punches, jobs, err := s.fetchWindow(ctx, applicantID, req, window)
	if err != nil {
		slog.Warn("performance aggregation degraded to zero result", "error", err)
		return stats.PerformanceMetrics{}, nil
	}

	metrics := stats.PerformanceMetrics{}
	grace := time.Duration(s.policy.OnTimeGraceMinutes) * time.Minute

	var matched, onTime int
	var totalHours, overtimeHours float64
	completedDays := map[string]bool{}

	for i := range punches {
		p := &punches[i]
		j := jobs[p.JobID]

		if j != nil {
			shift := j.ShiftBySlug(p.ShiftSlug)
			if w := schedule.ResolveShiftWindow(shift, p.ApplicantID, p.TimeIn, s.loc); w != nil {
				matched++
				if !p.TimeIn.After(w.Start.Add(grace)) {
					onTime++
				}
			}
		}

		if p.TimeOut == nil {
			continue
		}

		hours := p.Hours()
		totalHours += hours
		completedDays[p.TimeIn.In(s.loc).Format("2006-01-02")] = true

		if j != nil && j.Config.OvertimeAllowed() {
			overtimeHours += math.Max(0, hours-standardDayHours)
		}
	}

	if matched > 0 {
		metrics.OnTimeRate = float64(onTime) / float64(matched) * 100
	}
	if len(completedDays) > 0 {
		metrics.AvgHoursPerDay = totalHours / float64(len(completedDays))
	}
	metrics.OvertimeHours = overtimeHours

	scheduledDays, attendedDays := s.scheduledDayCounts(punches, jobs, req.JobIDs, applicantID, window, completedDays)
	if scheduledDays > 0 {
		metrics.AttendanceRate = float64(attendedDays) / float64(scheduledDays) * 100
	}

	return metrics, nil
}

func (s *StatsServiceImpl) timeout() time.Duration {
	if s.policy.StatsQueryTimeout > 0 {
		return s.policy.StatsQueryTimeout
	}
	return 3 * time.Second
}

// scopeApplicant restricts the aggregation to the caller's own punches
// unless the role may view all employees.
func (s *StatsServiceImpl) scopeApplicant(caller user.Identity, req stats.StatsRequest) string {
	if caller.Role.CanViewAllEmployees() {
		return req.ApplicantID
	}
	return caller.ApplicantID
}

// fetchWindow is the two-phase batch load: punches first, then one batch
// job fetch for every distinct job id touched. An unfiltered request loads
// the whole catalog so unworked schedules are visible to the aggregation.
func (s *StatsServiceImpl) fetchWindow(ctx context.Context, applicantID string, req stats.StatsRequest, window stats.Window) ([]punch.Punch, map[string]*job.Job, error) {
	punches, err := s.PunchRepository.FindInRange(ctx, punch.RangeFilter{
		ApplicantID: applicantID,
		JobIDs:      req.JobIDs,
		ShiftSlug:   req.ShiftSlug,
	}, window.Start, window.End)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch punches: %w", err)
	}

	idSet := map[string]bool{}
	for i := range punches {
		idSet[punches[i].JobID] = true
	}
	if len(req.JobIDs) > 0 {
		for _, id := range req.JobIDs {
			idSet[id] = true
		}
	} else {
		// No job filter: widen to the whole catalog so schedules at
		// never-punched jobs still count toward absence figures.
		all, err := s.JobRepository.ListIDs(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list jobs: %w", err)
		}
		for _, id := range all {
			idSet[id] = true
		}
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	jobs, err := s.JobRepository.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	return punches, jobs, nil
}

type windowTotals struct {
	hours      float64
	completed  int
	violations int
	spend      float64
}

func tally(punches []punch.Punch, jobs map[string]*job.Job) windowTotals {
	var t windowTotals
	for i := range punches {
		p := &punches[i]
		j := jobs[p.JobID]

		if geofence.Violates(p.ClockInCoordinates, j) {
			t.violations++
		}

		if p.TimeOut == nil {
			continue
		}
		hours := p.Hours()
		t.hours += hours
		t.completed++

		if j != nil {
			if shift := j.ShiftBySlug(p.ShiftSlug); shift != nil {
				t.spend += hours * shift.BillRate
			}
		}
	}
	return t
}

// scheduledInstances counts the shift-days resolvable for the applicant
// inside the window. When no schedule resolves anything it falls back to
// counting distinct punch days, so a sparse catalog does not read as
// total absenteeism. Returns (count, usedFallback).
func (s *StatsServiceImpl) scheduledInstances(punches []punch.Punch, jobs map[string]*job.Job, jobFilter []string, applicantID string, window stats.Window) (int, bool) {
	scheduled := 0
	for _, j := range jobs {
		if j == nil || !jobInFilter(j.ID, jobFilter) {
			continue
		}
		for day := window.Start; day.Before(window.End); day = day.AddDate(0, 0, 1) {
			for i := range j.Shifts {
				if w := schedule.ResolveShiftWindow(&j.Shifts[i], applicantID, day, s.loc); w != nil && window.Contains(w.Start) {
					scheduled++
				}
			}
		}
	}

	if scheduled > 0 {
		return scheduled, false
	}
	return s.fallbackScheduledDays(punches), true
}

// fallbackScheduledDays is the sparse-schedule policy: distinct calendar
// days with any punch stand in for the missing schedule catalog.
func (s *StatsServiceImpl) fallbackScheduledDays(punches []punch.Punch) int {
	days := map[string]bool{}
	for i := range punches {
		days[punches[i].TimeIn.In(s.loc).Format("2006-01-02")] = true
	}
	return len(days)
}

// scheduledDayCounts returns (totalScheduledShiftDays, attendedScheduledShiftDays)
// with the same sparse-schedule fallback as scheduledInstances.
func (s *StatsServiceImpl) scheduledDayCounts(punches []punch.Punch, jobs map[string]*job.Job, jobFilter []string, applicantID string, window stats.Window, completedDays map[string]bool) (int, int) {
	scheduledDays := map[string]bool{}
	for _, j := range jobs {
		if j == nil || !jobInFilter(j.ID, jobFilter) {
			continue
		}
		for day := window.Start; day.Before(window.End); day = day.AddDate(0, 0, 1) {
			for i := range j.Shifts {
				if w := schedule.ResolveShiftWindow(&j.Shifts[i], applicantID, day, s.loc); w != nil && window.Contains(w.Start) {
					scheduledDays[day.In(s.loc).Format("2006-01-02")] = true
				}
			}
		}
	}

	if len(scheduledDays) == 0 {
		// Sparse-schedule fallback, mirroring scheduledInstances.
		fallback := s.fallbackScheduledDays(punches)
		return fallback, len(completedDays)
	}

	attended := 0
	for day := range scheduledDays {
		if completedDays[day] {
			attended++
		}
	}
	return len(scheduledDays), attended
}

func jobInFilter(id string, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if f == id {
			return true
		}
	}
	return false
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
