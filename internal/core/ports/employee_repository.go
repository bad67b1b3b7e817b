package ports

import (
	"context"

	"github.com/staffhub/employee-api/internal/core/domain"
)

// UpdateEmployeeFields carries the optional profile fields a self-update may
// change. Nil pointers mean "leave untouched". Username, email, password and
// the admin flag are deliberately absent: no update path may alter them.
type UpdateEmployeeFields struct {
	FirstName  *string
	MiddleName *string
	LastName   *string
	Mobile     *int64
	IntroBio   *string
	Role       *string
}

// Empty reports whether no field was provided at all.
func (f UpdateEmployeeFields) Empty() bool {
	return f.FirstName == nil && f.MiddleName == nil && f.LastName == nil &&
		f.Mobile == nil && f.IntroBio == nil && f.Role == nil
}

// EmployeeRepository is the credential store: employee documents including
// the password hash and the currently active refresh token.
type EmployeeRepository interface {
	// Create persists a new employee (hashing the password on write) and
	// returns the stored document fetched back from the collection.
	Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	// FindByUsernameOrEmail returns any employee matching either value.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.Employee, error)
	FindAll(ctx context.Context) ([]*domain.Employee, error)
	// UpdateFields applies a targeted partial update and returns the updated
	// document.
	UpdateFields(ctx context.Context, id string, fields UpdateEmployeeFields) (*domain.Employee, error)
	// SetRefreshToken writes only the refresh token field; the rest of the
	// document is not revalidated.
	SetRefreshToken(ctx context.Context, id, token string) error
	// ClearRefreshToken removes the refresh token field entirely, so its
	// absence is distinguishable from an empty string.
	ClearRefreshToken(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
