package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	maxFailedLogins = 5
	failureWindow   = 15 * time.Minute
)

// LoginLimiter throttles repeated failed logins per account, backed by Redis.
// Key format: login_fail:<email>, expiring after failureWindow.
type LoginLimiter struct {
	client *redis.Client
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// TooManyAttempts reports whether the account has exceeded the failure budget
// within the current window.
func (l *LoginLimiter) TooManyAttempts(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("login limiter check: %w", err)
	}
	return n >= maxFailedLogins, nil
}

// RecordFailure increments the failure counter and refreshes the window.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, failureWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, l.key(email)).Err()
}

func (l *LoginLimiter) key(email string) string {
	return "login_fail:" + strings.ToLower(email)
}
