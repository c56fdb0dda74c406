package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	apperrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/middleware"
	"github.com/umalmyha/crm/internal/validation"
)

const internalErrorMsg = "Internal server error"

type errorBody struct {
	Error string `json:"error"`
}

// HTTPErrorHandler renders store errors with matching status codes
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		middleware.Logger(c).WithError(err).Error("request handling failed")
	} else {
		middleware.Logger(c).WithError(err).Debug("request rejected")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}

	if err != nil {
		middleware.Logger(c).WithError(err).Error("failed to send error response")
	}
}

func errorResponse(err error) (int, any) {
	var (
		pldErr      *validation.PayloadError
		validErr    *apperrors.ValidationErr
		dupErr      *apperrors.DuplicateEmailErr
		noFieldsErr *apperrors.NoFieldsProvidedErr
		notFoundErr *apperrors.EntryNotFoundErr
		httpErr     *echo.HTTPError
	)

	switch {
	case errors.As(err, &pldErr):
		return http.StatusBadRequest, pldErr
	case errors.As(err, &validErr):
		return http.StatusBadRequest, validErr
	case errors.As(err, &dupErr), errors.As(err, &noFieldsErr):
		return http.StatusBadRequest, &errorBody{Error: err.Error()}
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, &errorBody{Error: notFoundErr.Error()}
	case errors.As(err, &httpErr):
		if httpErr.Code >= http.StatusInternalServerError {
			return httpErr.Code, &errorBody{Error: internalErrorMsg}
		}
		return httpErr.Code, &errorBody{Error: fmt.Sprint(httpErr.Message)}
	default:
		return http.StatusInternalServerError, &errorBody{Error: internalErrorMsg}
	}
}
