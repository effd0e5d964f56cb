package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventcoord/internal/delivery/http/helpers"
	"eventcoord/internal/domain"
)

// AssignStaffRequest is the request body for POST /events/{eventID}/staff.
type AssignStaffRequest struct {
	StaffID string `json:"staff_id" validate:"required"`
}

// StaffListSuccessResponse is the success response envelope for GET /staff (200).
type StaffListSuccessResponse struct {
	Data  []*domain.Staff   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type StaffController struct {
	Logger  *slog.Logger
	Service domain.EventCoordinator
}

func NewStaffController(logger *slog.Logger, svc domain.EventCoordinator) *StaffController {
	return &StaffController{
		Logger:  logger,
		Service: svc,
	}
}

// AssignStaff godoc
// @Summary Assign a staff member to an event
// @Description Fails when the staff member is unavailable or already works another event on the same date.
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body AssignStaffRequest true "Staff member"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (date conflict, unavailable, locked)"
// @Router /events/{eventID}/staff [post]
func (c *StaffController) AssignStaff(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	var req AssignStaffRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.AssignStaffToEvent(r.Context(), eventID, req.StaffID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, event)
}

// RemoveStaff godoc
// @Summary Remove a staff member from an event
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param staffID path string true "Staff ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/staff/{staffID} [delete]
func (c *StaffController) RemoveStaff(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	staffID, ok := pathParam(w, r, "staffID")
	if !ok {
		return
	}
	event, err := c.Service.RemoveStaffFromEvent(r.Context(), eventID, staffID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, event)
}

// ListStaff godoc
// @Summary List staff
// @Description With date, returns only staff who are available and not assigned to any event on that day.
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param date query string false "Calendar day (YYYY-MM-DD)"
// @Success 200 {object} controllers.StaffListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /staff [get]
func (c *StaffController) ListStaff(w http.ResponseWriter, r *http.Request) {
	var (
		staff []*domain.Staff
		err   error
	)
	if s := r.URL.Query().Get("date"); s != "" {
		date, perr := time.Parse(dateLayout, s)
		if perr != nil {
			helpers.WriteJSONError(w, r, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be YYYY-MM-DD")
			return
		}
		staff, err = c.Service.GetAvailableStaff(r.Context(), date)
	} else {
		staff, err = c.Service.ListStaff(r.Context())
	}
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, staff)
}
