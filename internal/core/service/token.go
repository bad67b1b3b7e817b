package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs the access/refresh token pair. The two token kinds use
// distinct secrets so a leaked refresh token can never pass the access-token
// verifier. Issuance is pure: no I/O, no stored state beyond configuration.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenIssuer builds an issuer from the two signing secrets and their
// lifetimes. Non-positive TTLs fall back to 15 minutes / 10 days.
func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 240 * time.Hour
	}
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken signs a short-lived token identifying the employee.
func (i *TokenIssuer) IssueAccessToken(employeeID, email string) (string, error) {
	return i.sign(employeeID, email, i.accessSecret, i.accessTTL)
}

// IssueRefreshToken signs the long-lived token that represents the single
// active session for the employee.
func (i *TokenIssuer) IssueRefreshToken(employeeID, email string) (string, error) {
	return i.sign(employeeID, email, i.refreshSecret, i.refreshTTL)
}

// The "_id" claim key matches the wire format existing clients already parse.
func (i *TokenIssuer) sign(employeeID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"_id":   employeeID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
