package domain

import (
	"errors"
	"time"
)

// Employee roles form a closed set, enforced at the write path.
const (
	RoleDeveloper = "developer"
	RoleDesigner  = "designer"
	RoleManager   = "manager"
)

var ErrEmployeeNotFound = errors.New("no employee found")
var ErrEmployeeExists = errors.New("employee already exists with username and email")
var ErrPasswordIncorrect = errors.New("password is incorrect")
var ErrMissingCredentials = errors.New("provide credentials for login")
var ErrUnauthorized = errors.New("unauthorised user")
var ErrIdentityGone = errors.New("authenticated employee no longer exists")
var ErrAdminAccess = errors.New("employee have no access to this endpoint")
var ErrNoUpdateFields = errors.New("no fields to update")
var ErrMissingEmployeeID = errors.New("please provide employeeId")
var ErrTokenGeneration = errors.New("something went wrong while generating tokens")
var ErrRegistrationFailed = errors.New("failed to register employee")
var ErrUpdateFailed = errors.New("failed to update the employee details")
var ErrDeleteFailed = errors.New("failed to delete employee")
var ErrTooManyAttempts = errors.New("too many login attempts, try again later")

// Employee is the sole aggregate of the service. Password and RefreshToken
// never serialize; every response projection of an employee excludes both.
type Employee struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	MiddleName   string    `json:"middleName,omitempty"`
	LastName     string    `json:"lastName"`
	Username     string    `json:"username"`
	Mobile       int64     `json:"mobile"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	IntroBio     string    `json:"introBio"`
	IsAdmin      bool      `json:"isAdmin"`
	Role         string    `json:"role"`
	JoinedOn     time.Time `json:"joinedOn"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleDeveloper, RoleDesigner, RoleManager:
		return true
	}
	return false
}

// Sanitized returns a copy safe to hand to the transport layer: the password
// hash and the stored refresh token are stripped.
func (e *Employee) Sanitized() *Employee {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Password = ""
	clone.RefreshToken = ""
	return &clone
}
