package middleware

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/staffhub/employee-api/internal/api/metrics"
	"github.com/staffhub/employee-api/internal/core/domain"
	"github.com/staffhub/employee-api/internal/core/ports"
)

// AccessTokenCookie is the cookie carrying the short-lived access token.
const AccessTokenCookie = "accessToken"

// EmployeeContextKey is where the authenticated employee is stored in the
// echo context.
const EmployeeContextKey = "employee"

// Auth validates the access token cookie and resolves it to an employee.
//
// The whole check runs to completion before the protected handler executes:
// signature and expiry first, then a store lookup for the embedded id. A
// token that verifies but references a deleted employee is a server-side
// inconsistency, not a client error.
func Auth(accessSecret string, repo ports.EmployeeRepository) echo.MiddlewareFunc {
	secret := []byte(accessSecret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AccessTokenCookie)
			if err != nil || cookie.Value == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrUnauthorized
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !tkn.Valid {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return domain.ErrUnauthorized
			}

			id, _ := claims["_id"].(string)
			employee, err := repo.FindByID(c.Request().Context(), id)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("identity_gone").Inc()
				return domain.ErrIdentityGone
			}

			metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()
			c.Set(EmployeeContextKey, employee.Sanitized())

			return next(c)
		}
	}
}
