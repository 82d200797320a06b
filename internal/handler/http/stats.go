package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/shiftwise/timeclock-go/internal/domain/stats"
	"github.com/shiftwise/timeclock-go/internal/handler/http/middleware"
	"github.com/shiftwise/timeclock-go/internal/handler/http/response"
	"github.com/shiftwise/timeclock-go/internal/pkg/validator"
)

type StatsHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
	GetPerformance(w http.ResponseWriter, r *http.Request)
}

type statsHandlerImpl struct {
	statsService stats.StatsService
}

func NewStatsHandler(statsService stats.StatsService) StatsHandler {
	return &statsHandlerImpl{
		statsService: statsService,
	}
}

// parseStatsRequest reads the shared query parameters. Bad dates fall
// back to today rather than erroring, matching the dashboard's
// forgiving-query convention.
func parseStatsRequest(r *http.Request) stats.StatsRequest {
	q := r.URL.Query()

	req := stats.StatsRequest{
		View:        stats.ViewMode(q.Get("view")),
		Anchor:      time.Now(),
		ApplicantID: q.Get("applicant_id"),
		ShiftSlug:   q.Get("shift"),
	}
	if req.View == "" {
		req.View = stats.ViewDay
	}

	if d, ok := validator.IsValidDate(q.Get("date")); ok {
		req.Anchor = d
	}
	if d, ok := validator.IsValidDate(q.Get("start")); ok {
		req.Start = d
	}
	if d, ok := validator.IsValidDate(q.Get("end")); ok {
		req.End = d
	}

	if ids := q.Get("job_ids"); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if !validator.IsEmpty(id) {
				req.JobIDs = append(req.JobIDs, strings.TrimSpace(id))
			}
		}
	}

	return req
}

// GetStats implements StatsHandler.
func (h *statsHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.statsService.ComputeStats(r.Context(), identity, parseStatsRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPerformance implements StatsHandler.
func (h *statsHandlerImpl) GetPerformance(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.statsService.ComputePerformance(r.Context(), identity, parseStatsRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
