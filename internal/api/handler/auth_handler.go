package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/employee-api/internal/api/metrics"
	"github.com/staffhub/employee-api/internal/api/middleware"
	"github.com/staffhub/employee-api/internal/core/domain"
	"github.com/staffhub/employee-api/internal/core/ports"
)

const refreshTokenCookie = "refreshToken"

// AuthHandler exposes registration and the session lifecycle.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new employee account.
//
// @Summary      Register a new employee
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Employee registration details"
// @Success      201   {object}  apiResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      409   {object}  errorEnvelope
// @Failure      500   {object}  errorEnvelope
// @Router       /api/v1/employee/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Username:   req.Username,
		Mobile:     req.Mobile,
		Email:      req.Email,
		IntroBio:   req.IntroBio,
		Role:       req.Role,
		JoinedOn:   req.JoinedOn,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(employee.Role).Inc()
	return respond(c, http.StatusCreated, employee, "Employee registered successfully")
}

// Login authenticates an employee and starts a session.
//
// The issuance, refresh-token persistence and cookie writes behave as one
// unit: on any failure the service returns an error and no cookie is set.
//
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  apiResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      401   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Failure      429   {object}  errorEnvelope
// @Router       /api/v1/employee/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResultLabel(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	setSessionCookie(c, middleware.AccessTokenCookie, result.AccessToken)
	setSessionCookie(c, refreshTokenCookie, result.RefreshToken)

	return respond(c, http.StatusOK, loginData{
		Employee:     result.Employee,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "Employee logged in successfully")
}

// Logout ends the active session: the stored refresh token is removed and
// both cookies are cleared. An already-issued access token keeps verifying
// until its natural expiry.
//
// @Summary      Log out the authenticated employee
// @Tags         auth
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  errorEnvelope
// @Router       /api/v1/employee/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	employee, err := ctxEmployee(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), employee.ID); err != nil {
		return err
	}

	clearSessionCookie(c, middleware.AccessTokenCookie)
	clearSessionCookie(c, refreshTokenCookie)

	return respond(c, http.StatusOK, map[string]any{}, "Employee logged out successfully")
}

// loginResultLabel maps a login failure to its metrics label.
func loginResultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrPasswordIncorrect):
		return "bad_password"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	case errors.Is(err, domain.ErrTokenGeneration):
		return "token_error"
	default:
		return "error"
	}
}

// Session cookies must survive cross-site requests from the browser
// frontend, hence SameSite=None; that mode requires Secure.
func setSessionCookie(c echo.Context, name, value string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
