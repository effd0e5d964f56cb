package controllers

import (
	"log/slog"
	"net/http"

	"eventcoord/internal/delivery/http/helpers"
	"eventcoord/internal/domain"
)

// ProcessRSVPRequest is the request body for POST /events/{eventID}/rsvps/{customerID}.
// PartySize must be at least 1 when Accepted is true.
type ProcessRSVPRequest struct {
	Accepted  *bool `json:"accepted" validate:"required"`
	PartySize int   `json:"party_size" validate:"omitempty,gte=1"`
}

// RSVPSuccessResponse is the success response envelope for POST /events/{eventID}/rsvps/{customerID} (200).
type RSVPSuccessResponse struct {
	Data  *domain.EventRSVP `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RSVPSummarySuccessResponse is the success response envelope for GET /events/{eventID}/rsvps/summary (200).
type RSVPSummarySuccessResponse struct {
	Data  domain.RSVPSummary `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type RSVPController struct {
	Logger  *slog.Logger
	Service domain.EventCoordinator
}

func NewRSVPController(logger *slog.Logger, svc domain.EventCoordinator) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// ProcessRSVP godoc
// @Summary Record a customer's RSVP response
// @Description Accepting admits the party if seats remain, otherwise the RSVP is waitlisted. Declining releases held seats.
// @Tags rsvps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param customerID path string true "Customer ID"
// @Param body body ProcessRSVPRequest true "Response"
// @Success 200 {object} controllers.RSVPSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event, customer or rsvp)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event cancelled)"
// @Router /events/{eventID}/rsvps/{customerID} [post]
func (c *RSVPController) ProcessRSVP(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	customerID, ok := pathParam(w, r, "customerID")
	if !ok {
		return
	}
	var req ProcessRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rsvp, err := c.Service.ProcessRSVP(r.Context(), eventID, customerID, *req.Accepted, req.PartySize)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, rsvp)
}

// GetRSVPSummary godoc
// @Summary Count RSVPs by status
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.RSVPSummarySuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/rsvps/summary [get]
func (c *RSVPController) GetRSVPSummary(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	summary, err := c.Service.GetRSVPSummary(r.Context(), eventID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, summary)
}

// GetWaitlist godoc
// @Summary List waitlisted RSVPs
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data: waitlisted rsvps"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/waitlist [get]
func (c *RSVPController) GetWaitlist(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	waitlist, err := c.Service.GetWaitlist(r.Context(), eventID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, waitlist)
}
