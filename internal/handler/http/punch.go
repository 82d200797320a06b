package http

import (
	"encoding/json"
	"net/http"

	"github.com/shiftwise/timeclock-go/internal/domain/punch"
	"github.com/shiftwise/timeclock-go/internal/handler/http/middleware"
	"github.com/shiftwise/timeclock-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PunchHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.PunchService
}

func NewPunchHandler(punchService punch.PunchService) PunchHandler {
	return &punchHandlerImpl{
		punchService: punchService,
	}
}

// ClockIn implements PunchHandler.
func (h *punchHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req punch.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid-request", "Invalid request format", nil)
		return
	}

	// Ordinary employees can only clock themselves in.
	if req.ApplicantID == "" || !identity.Role.CanEditPunches() {
		req.ApplicantID = identity.ApplicantID
	}

	result, err := h.punchService.ClockIn(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", result)
}

// ClockOut implements PunchHandler.
func (h *punchHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req punch.ClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid-request", "Invalid request format", nil)
		return
	}

	if req.ApplicantID == "" || !identity.Role.CanEditPunches() {
		req.ApplicantID = identity.ApplicantID
	}

	result, err := h.punchService.ClockOut(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements PunchHandler. Manager-only; the route enforces the
// role.
func (h *punchHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req punch.UpdatePunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid-request", "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "punchID")

	result, err := h.punchService.UpdatePunch(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
