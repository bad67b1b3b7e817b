package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/staffhub/employee-api/internal/api/middleware"
	"github.com/staffhub/employee-api/internal/core/domain"
)

// ctxEmployee extracts the employee injected by the Auth middleware. Its
// presence proves the middleware ran; a protected handler reached without it
// is a wiring error, surfaced as an auth failure rather than a panic.
func ctxEmployee(c echo.Context) (*domain.Employee, error) {
	employee, _ := c.Get(middleware.EmployeeContextKey).(*domain.Employee)
	if employee == nil || employee.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	return employee, nil
}
