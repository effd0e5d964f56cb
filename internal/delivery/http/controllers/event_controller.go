package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"eventcoord/internal/delivery/http/helpers"
	"eventcoord/internal/domain"
)

// dateLayout is the wire format for event dates.
const dateLayout = time.DateOnly

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name     string  `json:"name" validate:"required"`
	Venue    string  `json:"venue"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	Cost     float64 `json:"cost" validate:"gte=0"`
	Capacity int     `json:"capacity" validate:"gte=1"`
}

// EventSuccessResponse is the success response envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsResponse is the response body for GET /events.
type ListEventsResponse struct {
	Items      []*domain.Event        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// RejectEventRequest is the request body for POST /events/{eventID}/reject.
type RejectEventRequest struct {
	Notes string `json:"notes" validate:"required"`
}

// CancelEventRequest is the request body for POST /events/{eventID}/cancel.
type CancelEventRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// CancelEventResponse reports how many invited customers were notified.
type CancelEventResponse struct {
	Notified int `json:"notified"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventCoordinator
}

func NewEventController(logger *slog.Logger, svc domain.EventCoordinator) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a draft event
// @Description Creates an event in DRAFT status. The date is a calendar day (YYYY-MM-DD).
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		helpers.WriteJSONError(w, r, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be YYYY-MM-DD")
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), domain.CreateEventInput{
		Name:     req.Name,
		Venue:    req.Venue,
		Date:     date,
		Cost:     req.Cost,
		Capacity: req.Capacity,
	})
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List events
// @Description Lists events ordered by date, optionally filtered by status.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param status query string false "DRAFT, PENDING_APPROVAL, APPROVED, LOCKED or CANCELLED"
// @Param page query int false "Page number (default 1)"
// @Param page_size query string false "Page size (default 25, max 200), or all"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	var status domain.EventStatus
	if s := r.URL.Query().Get("status"); s != "" {
		parsed, err := domain.ParseEventStatus(s)
		if err != nil {
			helpers.WriteJSONError(w, r, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		status = parsed
	}
	params, err := helpers.ParsePagination(r)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	events, total, err := c.Service.ListEvents(r.Context(), status, params)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, ListEventsResponse{
		Items:      events,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, event)
}

// SubmitForApproval godoc
// @Summary Submit a draft event for financial approval
// @Tags lifecycle
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event not in draft)"
// @Router /events/{eventID}/submit [post]
func (c *EventController) SubmitForApproval(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.Service.SubmitForApproval)
}

// ApproveEvent godoc
// @Summary Approve a pending event
// @Description Records the upfront cost (30% of the event cost) with the finance ledger and moves the event to APPROVED. Requires the finance role.
// @Tags lifecycle
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event not pending approval)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error (ledger failure)"
// @Router /events/{eventID}/approve [post]
func (c *EventController) ApproveEvent(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.Service.ApproveEvent)
}

// RejectEvent godoc
// @Summary Reject a pending event back to draft
// @Description Requires the finance role. The notes are stored on the event.
// @Tags lifecycle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body RejectEventRequest true "Rejection notes"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events/{eventID}/reject [post]
func (c *EventController) RejectEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	var req RejectEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.RejectEvent(r.Context(), eventID, req.Notes)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, event)
}

// LockEvent godoc
// @Summary Lock an approved, staffed event
// @Tags lifecycle
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not approved or no staff)"
// @Router /events/{eventID}/lock [post]
func (c *EventController) LockEvent(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.Service.LockEvent)
}

// CancelEvent godoc
// @Summary Cancel an event and notify invited customers
// @Tags lifecycle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CancelEventRequest true "Cancellation reason"
// @Success 200 {object} helpers.APIResponse "data: {notified}"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already cancelled)"
// @Router /events/{eventID}/cancel [post]
func (c *EventController) CancelEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	var req CancelEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	notified, err := c.Service.CancelEvent(r.Context(), eventID, req.Reason)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, CancelEventResponse{Notified: notified})
}

func (c *EventController) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, eventID string) (*domain.Event, error)) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	event, err := apply(r.Context(), eventID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, event)
}

// pathParam reads a required path value, writing 400 when it is empty.
func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.PathValue(name)
	if v == "" {
		helpers.WriteJSONError(w, r, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	return v, true
}
