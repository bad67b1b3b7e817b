package ports

import (
	"context"
	"time"

	"github.com/staffhub/employee-api/internal/core/domain"
)

// RegisterInput carries all registration fields. JoinedOn is optional and
// defaults to creation time.
type RegisterInput struct {
	FirstName  string
	MiddleName string
	LastName   string
	Username   string
	Mobile     int64
	Email      string
	IntroBio   string
	Role       string
	JoinedOn   *time.Time
	Password   string
}

// LoginResult is returned on successful authentication. Both tokens travel in
// the response body as well as in cookies, for clients that cannot hold
// cookies.
type LoginResult struct {
	Employee     *domain.Employee
	AccessToken  string
	RefreshToken string
}

// AuthService covers registration and the session lifecycle.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Employee, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, employeeID string) error
}

// LoginLimiter throttles repeated failed logins per account. Implementations
// are expected to fail open: callers treat limiter errors as advisory.
type LoginLimiter interface {
	TooManyAttempts(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
