package handler

import "time"

// Request types for the employee endpoints.
//
// Presence of the required register fields is intentionally not enforced
// here (the carried-over blank check never fires; see DESIGN.md). Email
// format and the role enum are enforced, matching what the store's model
// layer has always rejected.

type registerRequest struct {
	FirstName  string     `json:"firstName"`
	MiddleName string     `json:"middleName"`
	LastName   string     `json:"lastName"`
	Username   string     `json:"username"`
	Mobile     int64      `json:"mobile"`
	Email      string     `json:"email"      validate:"omitempty,email"`
	IntroBio   string     `json:"introBio"`
	Role       string     `json:"role"       validate:"omitempty,oneof=developer designer manager"`
	JoinedOn   *time.Time `json:"joinedOn"`
	Password   string     `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

// updateRequest carries the self-update fields. Pointers distinguish "not
// provided" from a zero value; username, email, password and isAdmin are not
// accepted on this path.
type updateRequest struct {
	FirstName  *string `json:"firstName"`
	MiddleName *string `json:"middleName"`
	LastName   *string `json:"lastName"`
	Mobile     *int64  `json:"mobile"`
	IntroBio   *string `json:"introBio"`
	Role       *string `json:"role" validate:"omitempty,oneof=developer designer manager"`
}

// loginData is the login response payload. Both tokens are echoed in the
// body on purpose, for clients that cannot hold cookies; this is the single
// place tokens appear in a response body.
type loginData struct {
	Employee     any    `json:"employee"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
