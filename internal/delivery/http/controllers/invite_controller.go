package controllers

import (
	"log/slog"
	"net/http"

	"eventcoord/internal/delivery/http/helpers"
	"eventcoord/internal/domain"
)

// AddInviteRequest is the request body for POST /events/{eventID}/invites.
type AddInviteRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	VIP        bool   `json:"vip"`
}

// InviteSuccessResponse is the success response envelope for POST /events/{eventID}/invites (201).
type InviteSuccessResponse struct {
	Data  *domain.EventInvite `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// InviteListSuccessResponse is the success response envelope for GET /events/{eventID}/invites (200).
type InviteListSuccessResponse struct {
	Data  []*domain.EventInvite `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// SendInvitesResponse reports how many invitations this call delivered.
type SendInvitesResponse struct {
	Sent int `json:"sent"`
}

type InviteController struct {
	Logger  *slog.Logger
	Service domain.EventCoordinator
}

func NewInviteController(logger *slog.Logger, svc domain.EventCoordinator) *InviteController {
	return &InviteController{
		Logger:  logger,
		Service: svc,
	}
}

// ListInvites godoc
// @Summary List the invite list of an event
// @Description Invites are returned in the order they were added.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.InviteListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/invites [get]
func (c *InviteController) ListInvites(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	invites, err := c.Service.GetInviteList(r.Context(), eventID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, invites)
}

// AddInvite godoc
// @Summary Add a customer to the invite list
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body AddInviteRequest true "Customer to invite"
// @Success 201 {object} controllers.InviteSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (ineligible customer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate invite or locked/cancelled event)"
// @Router /events/{eventID}/invites [post]
func (c *InviteController) AddInvite(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	var req AddInviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	invite, err := c.Service.AddCustomerToInviteList(r.Context(), eventID, req.CustomerID, req.VIP)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusCreated, invite)
}

// RemoveInvite godoc
// @Summary Remove a not-yet-sent invite
// @Tags invites
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param customerID path string true "Customer ID"
// @Success 204
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events/{eventID}/invites/{customerID} [delete]
func (c *InviteController) RemoveInvite(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	customerID, ok := pathParam(w, r, "customerID")
	if !ok {
		return
	}
	if err := c.Service.RemoveCustomerFromInviteList(r.Context(), eventID, customerID); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendInvites godoc
// @Summary Send pending invitations
// @Description Sends every unsent invite of an approved event and opens a PENDING RSVP per delivery. Invites whose delivery failed are retried by the next call.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data: {sent}"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event not approved)"
// @Router /events/{eventID}/invites/send [post]
func (c *InviteController) SendInvites(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	sent, err := c.Service.SendInvites(r.Context(), eventID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, SendInvitesResponse{Sent: sent})
}
