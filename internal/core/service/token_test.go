package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func parseToken(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	return claims
}

func TestTokenIssuer_PairIsDistinct(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 240*time.Hour)

	access, err := issuer.IssueAccessToken("emp1", "a@example.com")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	refresh, err := issuer.IssueRefreshToken("emp1", "a@example.com")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}
	if access == refresh {
		t.Fatalf("access and refresh tokens must differ")
	}

	accessClaims := parseToken(t, access, "access-secret")
	refreshClaims := parseToken(t, refresh, "refresh-secret")

	if accessClaims["_id"] != "emp1" || accessClaims["email"] != "a@example.com" {
		t.Fatalf("unexpected access claims: %v", accessClaims)
	}
	if refreshClaims["_id"] != "emp1" {
		t.Fatalf("unexpected refresh claims: %v", refreshClaims)
	}

	accessExp := int64(accessClaims["exp"].(float64))
	refreshExp := int64(refreshClaims["exp"].(float64))
	if refreshExp <= accessExp {
		t.Fatalf("refresh token should outlive access token: %d <= %d", refreshExp, accessExp)
	}
}

func TestTokenIssuer_SecretsAreNotInterchangeable(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", time.Minute, time.Hour)

	refresh, err := issuer.IssueRefreshToken("emp1", "a@example.com")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(refresh, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	})
	if err == nil && parsed.Valid {
		t.Fatalf("refresh token must not verify against the access secret")
	}
}

func TestTokenIssuer_DefaultTTLs(t *testing.T) {
	issuer := NewTokenIssuer("a", "b", 0, 0)

	access, err := issuer.IssueAccessToken("emp1", "a@example.com")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	claims := parseToken(t, access, "a")

	exp := int64(claims["exp"].(float64))
	iat := int64(claims["iat"].(float64))
	if exp-iat != int64((15 * time.Minute).Seconds()) {
		t.Fatalf("expected 15m default access TTL, got %ds", exp-iat)
	}
}
