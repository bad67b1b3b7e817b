package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/staffhub/employee-api/internal/core/domain"
)

// errorEnvelope is the canonical failure envelope for all API errors.
type errorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the uniform envelope: {statusCode, message, success, errors}.
//
// Every entry point funnels through here; no raw error reaches a client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorEnvelope{
			StatusCode: code,
			Message:    msg,
			Success:    false,
			Errors:     []string{msg},
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. The admin denial maps
	// to 500 on purpose: that is the status this contract has always exposed
	// (see DESIGN.md).
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusBadRequest, "Provide credentials for login"
	case errors.Is(err, domain.ErrNoUpdateFields):
		return http.StatusBadRequest, "No fields to update"
	case errors.Is(err, domain.ErrMissingEmployeeID):
		return http.StatusBadRequest, "Please provide employeeId"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorised User"
	case errors.Is(err, domain.ErrPasswordIncorrect):
		return http.StatusUnauthorized, "Password is incorrect"
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound, "No employee found"
	case errors.Is(err, domain.ErrEmployeeExists):
		return http.StatusConflict, "Employee already exists with username and email"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many login attempts, try again later"
	case errors.Is(err, domain.ErrAdminAccess):
		return http.StatusInternalServerError, "Employee have no access to this endpoint"
	case errors.Is(err, domain.ErrIdentityGone):
		return http.StatusInternalServerError, "No employee found"
	case errors.Is(err, domain.ErrTokenGeneration):
		return http.StatusInternalServerError, "Something went wrong while generating tokens"
	case errors.Is(err, domain.ErrRegistrationFailed):
		return http.StatusInternalServerError, "Failed to register employee"
	case errors.Is(err, domain.ErrUpdateFailed):
		return http.StatusInternalServerError, "Failed to update the employee details"
	case errors.Is(err, domain.ErrDeleteFailed):
		return http.StatusInternalServerError, "Failed to delete employee"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
