package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"eventcoord/internal/delivery/http/helpers"
	"eventcoord/internal/domain"
)

// RegisterCustomerRequest is the request body for POST /customers.
type RegisterCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

// ImportOrder is one online order in an ImportCustomersRequest. Orders without a deliverable
// email are skipped rather than rejected.
type ImportOrder struct {
	OrderID      string `json:"order_id" validate:"required"`
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

// ImportCustomersRequest is the request body for POST /customers/import.
type ImportCustomersRequest struct {
	Orders []ImportOrder `json:"orders" validate:"required,min=1,max=1000,dive"`
}

// ImportCustomersSuccessResponse is the success response envelope for POST /customers/import.
type ImportCustomersSuccessResponse struct {
	Data  domain.CustomerImport `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// CustomerSuccessResponse is the success response envelope for POST /customers.
type CustomerSuccessResponse struct {
	Data  *domain.Customer  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type CustomerController struct {
	Logger  *slog.Logger
	Service domain.EventCoordinator
}

func NewCustomerController(logger *slog.Logger, svc domain.EventCoordinator) *CustomerController {
	return &CustomerController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterCustomer godoc
// @Summary Register a customer
// @Description Registering an email that already exists returns the existing customer.
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegisterCustomerRequest true "Customer"
// @Success 201 {object} controllers.CustomerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /customers [post]
func (c *CustomerController) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req RegisterCustomerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	customer, err := c.Service.RegisterCustomer(r.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusCreated, customer)
}

// ListCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param eligible query bool false "Only customers with a deliverable email"
// @Success 200 {object} helpers.APIResponse "data: customers"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /customers [get]
func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	eligible := false
	if s := r.URL.Query().Get("eligible"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			helpers.WriteJSONError(w, r, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eligible must be a boolean")
			return
		}
		eligible = v
	}
	var (
		customers []*domain.Customer
		err       error
	)
	if eligible {
		customers, err = c.Service.ListEligibleCustomers(r.Context())
	} else {
		customers, err = c.Service.ListCustomers(r.Context())
	}
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, customers)
}

// ImportCustomers godoc
// @Summary Import customers from online orders
// @Description Registers the buyer of each order. Known emails are counted as existing; orders without a name or deliverable email are skipped.
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ImportCustomersRequest true "Orders"
// @Success 200 {object} controllers.ImportCustomersSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /customers/import [post]
func (c *CustomerController) ImportCustomers(w http.ResponseWriter, r *http.Request) {
	var req ImportCustomersRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	orders := make([]domain.OnlineOrder, 0, len(req.Orders))
	for _, o := range req.Orders {
		orders = append(orders, domain.OnlineOrder{
			OrderID:      o.OrderID,
			CustomerName: o.CustomerName,
			Email:        o.Email,
			Phone:        o.Phone,
		})
	}
	result, err := c.Service.ImportCustomersFromOrders(r.Context(), orders)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, r, http.StatusOK, result)
}
