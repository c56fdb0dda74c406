package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	apperrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/middleware"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/service"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

const (
	indexTemplate = "index.html"
	errorTemplate = "error.html"
)

type formResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CustomerWebHandler serves the browser page and its form endpoints.
// Form endpoints always answer 200, outcome is carried by status field.
type CustomerWebHandler struct {
	customerSvc service.CustomerService
}

// NewCustomerWebHandler builds new CustomerWebHandler
func NewCustomerWebHandler(customerSvc service.CustomerService) *CustomerWebHandler {
	return &CustomerWebHandler{customerSvc: customerSvc}
}

// Index renders page with all customers
func (h *CustomerWebHandler) Index(c echo.Context) error {
	customers, err := h.customerSvc.FindAll(c.Request().Context())
	if err != nil {
		middleware.Logger(c).WithError(err).Error("failed to list customers for index page")
		return c.Render(http.StatusOK, errorTemplate, err.Error())
	}
	return c.Render(http.StatusOK, indexTemplate, customers)
}

// Add creates customer from submitted form
func (h *CustomerWebHandler) Add(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusOK, failure(err))
	}

	nc := model.NewCustomer{
		Name:    form.Get("name"),
		Email:   form.Get("email"),
		Phone:   form.Get("phone"),
		Company: form.Get("company"),
	}

	if _, err := h.customerSvc.Create(c.Request().Context(), nc); err != nil {
		return c.JSON(http.StatusOK, failure(err))
	}
	return c.JSON(http.StatusOK, success(customerAddedMsg))
}

// Update applies submitted non-blank form fields to customer
func (h *CustomerWebHandler) Update(c echo.Context) error {
	id, err := formCustomerID(c)
	if err != nil {
		return c.JSON(http.StatusOK, failure(err))
	}

	form, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusOK, failure(err))
	}

	patch := model.CustomerPatch{
		Name:    formValue(form, "name"),
		Email:   formValue(form, "email"),
		Phone:   formValue(form, "phone"),
		Company: formValue(form, "company"),
	}

	if _, err := h.customerSvc.Update(c.Request().Context(), id, patch); err != nil {
		return c.JSON(http.StatusOK, failure(err))
	}
	return c.JSON(http.StatusOK, success(customerUpdatedMsg))
}

// Delete removes customer
func (h *CustomerWebHandler) Delete(c echo.Context) error {
	id, err := formCustomerID(c)
	if err != nil {
		return c.JSON(http.StatusOK, failure(err))
	}

	if err := h.customerSvc.DeleteByID(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusOK, failure(err))
	}
	return c.JSON(http.StatusOK, success(customerDeletedMsg))
}

// Get answers customer details used to fill the form
func (h *CustomerWebHandler) Get(c echo.Context) error {
	id, err := formCustomerID(c)
	if err != nil {
		return c.JSON(http.StatusOK, failure(err))
	}

	customer, err := h.customerSvc.FindByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, failure(err))
	}
	return c.JSON(http.StatusOK, customer)
}

func formCustomerID(c echo.Context) (int64, error) {
	id, err := customerID(c)
	if err != nil {
		return 0, apperrors.NewEntryNotFoundErr(id)
	}
	return id, nil
}

func formValue(form url.Values, key string) *string {
	if _, ok := form[key]; !ok {
		return nil
	}

	v := form.Get(key)
	return &v
}

func success(msg string) *formResult {
	return &formResult{Status: statusSuccess, Message: msg}
}

func failure(err error) *formResult {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return &formResult{Status: statusError, Message: internalErrorMsg}
	}
	return &formResult{Status: statusError, Message: err.Error()}
}
