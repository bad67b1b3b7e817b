package ports

import (
	"context"

	"github.com/staffhub/employee-api/internal/core/domain"
)

// EmployeeService covers the profile CRUD surface. Every returned employee is
// sanitized: no password hash, no refresh token.
type EmployeeService interface {
	Get(ctx context.Context, employeeID string) (*domain.Employee, error)
	// GetAll lists every employee. The caller's admin flag is checked through
	// the authorization policy before the store is touched.
	GetAll(ctx context.Context, caller *domain.Employee) ([]*domain.Employee, error)
	Update(ctx context.Context, employeeID string, fields UpdateEmployeeFields) (*domain.Employee, error)
	Delete(ctx context.Context, employeeID string) error
	// DeleteByID removes an arbitrary employee. No caller identity is taken:
	// the route exposing it performs no authentication. Known defect, kept
	// until the contract is deliberately hardened.
	DeleteByID(ctx context.Context, employeeID string) error
}
