// Package redis implements the OTP store port on Redis, giving codes a
// server-side TTL and atomic consumption.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// OTPStore keeps login codes in Redis keyed by email.
type OTPStore struct {
	client *redis.Client
}

// NewOTPStore creates an OTP store backed by the given Redis client.
func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

// Set stores a code for the address, replacing any previous one.
func (s *OTPStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKeyPrefix+email, code, ttl).Err()
}

// Consume atomically fetches and deletes the code for the address, so a
// code can never be verified twice.
func (s *OTPStore) Consume(ctx context.Context, email string) (string, bool, error) {
	code, err := s.client.GetDel(ctx, otpKeyPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return code, true, nil
}

// Delete discards any stored code for the address.
func (s *OTPStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, otpKeyPrefix+email).Err()
}
