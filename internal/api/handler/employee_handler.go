package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/employee-api/internal/api/metrics"
	"github.com/staffhub/employee-api/internal/core/ports"
)

// EmployeeHandler exposes the profile CRUD endpoints.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Get returns the authenticated employee's own profile.
//
// @Summary      Fetch the authenticated employee
// @Tags         employees
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /api/v1/employee/getemployee [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	employee, err := ctxEmployee(c)
	if err != nil {
		return err
	}

	fetched, err := h.service.Get(c.Request().Context(), employee.ID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, fetched, "Employee details fetched successfully")
}

// GetAll lists every employee. Restricted to admins; a non-admin caller gets
// the contract's long-standing 500, not a 403.
//
// @Summary      List all employees (admin only)
// @Tags         employees
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  errorEnvelope
// @Failure      500  {object}  errorEnvelope
// @Router       /api/v1/employee/getemployees [get]
func (h *EmployeeHandler) GetAll(c echo.Context) error {
	employee, err := ctxEmployee(c)
	if err != nil {
		return err
	}

	employees, err := h.service.GetAll(c.Request().Context(), employee)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, employees, "Employees fetched successfully")
}

// Update applies a partial update to the authenticated employee's profile.
//
// @Summary      Update profile fields
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        body  body      updateRequest  true  "Fields to update"
// @Success      200   {object}  apiResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Router       /api/v1/employee/update [patch]
func (h *EmployeeHandler) Update(c echo.Context) error {
	employee, err := ctxEmployee(c)
	if err != nil {
		return err
	}

	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), employee.ID, ports.UpdateEmployeeFields{
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Mobile:     req.Mobile,
		IntroBio:   req.IntroBio,
		Role:       req.Role,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, updated, "Employee updated successfully")
}

// Delete removes the authenticated employee's own account.
//
// @Summary      Delete own account
// @Tags         employees
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  errorEnvelope
// @Failure      500  {object}  errorEnvelope
// @Router       /api/v1/employee/delete [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	employee, err := ctxEmployee(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), employee.ID); err != nil {
		return err
	}

	metrics.EmployeesDeletedTotal.WithLabelValues("self").Inc()
	return respond(c, http.StatusOK, map[string]any{}, "Employee deleted successfully")
}

// DeleteByID removes an arbitrary employee by id. The route carries no auth
// middleware — known defect, preserved deliberately (see DESIGN.md).
//
// @Summary      Delete an employee by id
// @Tags         employees
// @Produce      json
// @Param        employeeId  query     string  true  "Employee id"
// @Success      200         {object}  apiResponse
// @Failure      400         {object}  errorEnvelope
// @Failure      500         {object}  errorEnvelope
// @Router       /api/v1/employee/deleteemployee [delete]
func (h *EmployeeHandler) DeleteByID(c echo.Context) error {
	employeeID := c.QueryParam("employeeId")

	if err := h.service.DeleteByID(c.Request().Context(), employeeID); err != nil {
		return err
	}

	metrics.EmployeesDeletedTotal.WithLabelValues("by_id").Inc()
	return respond(c, http.StatusOK, map[string]any{}, "Employee deleted successfully")
}
