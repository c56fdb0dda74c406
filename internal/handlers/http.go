package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	apperrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/service"
)

const (
	customerAddedMsg   = "Customer added successfully"
	customerUpdatedMsg = "Customer updated successfully"
	customerDeletedMsg = "Customer deleted successfully"
)

type identifier struct {
	ID string `json:"id" validate:"required,numeric"`
}

type message struct {
	Message string `json:"message"`
}

// CustomerHTTPHandler is http handler for customer endpoint
type CustomerHTTPHandler struct {
	customerSvc service.CustomerService
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler
func NewCustomerHTTPHandler(customerSvc service.CustomerService) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{customerSvc: customerSvc}
}

// Get gets customer
// @Summary     Get single customer by id
// @Description Returns single customer with provided id
// @Tags        customers
// @Produce     json
// @Param       id     path 	int true "Customer id"
// @Success     200    {object} model.Customer
// @Failure     400    {object} errorBody
// @Failure     404    {object} errorBody
// @Failure     500    {object} errorBody
// @Router      /api/customers/{id} [get]
func (h *CustomerHTTPHandler) Get(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	customer, err := h.customerSvc.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customer)
}

// GetAll gets all customers
// @Summary     Get all customers
// @Description Returns all customers in creation order
// @Tags        customers
// @Produce     json
// @Success     200    {array}  model.Customer
// @Failure     500    {object} errorBody
// @Router      /api/customers [get]
func (h *CustomerHTTPHandler) GetAll(c echo.Context) error {
	customers, err := h.customerSvc.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// Post creates new customer
// @Summary     New Customer
// @Description Creates new customer, name and email are required
// @Tags        customers
// @Accept		json
// @Produce     json
// @Param 		newCustomer body	 model.NewCustomer true "Data for new customer"
// @Success     201    		{object} model.Customer
// @Failure     400    		{object} errorBody
// @Failure     500    		{object} errorBody
// @Router      /api/customers [post]
func (h *CustomerHTTPHandler) Post(c echo.Context) error {
	var nc model.NewCustomer
	if err := c.Bind(&nc); err != nil {
		return err
	}

	customer, err := h.customerSvc.Create(c.Request().Context(), nc)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, customer)
}

// Put updates customer partially, only supplied non-blank fields are changed
// @Summary     Update Customer
// @Description Updates supplied non-blank fields of existing customer
// @Tags        customers
// @Accept		json
// @Produce     json
// @Param       id     		   path 	int 		        true "Customer id"
// @Param 		customerPatch  body	    model.CustomerPatch true "Fields to update"
// @Success     200    		   {object} model.Customer
// @Failure     400    		   {object} errorBody
// @Failure     404    		   {object} errorBody
// @Failure     500    		   {object} errorBody
// @Router      /api/customers/{id} [put]
// @Router      /api/customers/{id} [patch]
func (h *CustomerHTTPHandler) Put(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	var patch model.CustomerPatch
	if err := (&echo.DefaultBinder{}).BindBody(c, &patch); err != nil {
		return err
	}

	customer, err := h.customerSvc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customer)
}

// DeleteByID deletes customer
// @Summary     Delete customer by id
// @Description Deletes customer with provided id
// @Tags        customers
// @Produce     json
// @Param       id     path 	int true "Customer id"
// @Success     200    {object} message
// @Failure     400    {object} errorBody
// @Failure     404    {object} errorBody
// @Failure     500    {object} errorBody
// @Router      /api/customers/{id} [delete]
func (h *CustomerHTTPHandler) DeleteByID(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	if err := h.customerSvc.DeleteByID(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &message{Message: customerDeletedMsg})
}

// customerID rejects malformed ids. Ids below 1 are never assigned, so they are reported as missing.
func customerID(c echo.Context) (int64, error) {
	param := c.Param("id")
	if err := c.Validate(&identifier{ID: param}); err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid customer id")
	}

	if id <= 0 {
		return 0, apperrors.NewEntryNotFoundErr(id)
	}
	return id, nil
}
