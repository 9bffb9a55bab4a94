package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Transient auth state (OTPs, lockouts, reset tokens) lives in an injected
// TTL store instead of process-wide maps, so it survives restarts and
// multiple instances.

const (
	otpTTL        = 5 * time.Minute
	resetTokenTTL = 15 * time.Minute
	lockoutTTL    = time.Minute
	maxIntentos   = 5
)

// AuthStoreInterface is the expiring key-value contract the auth flow needs.
type AuthStoreInterface interface {
	SetOTP(ctx context.Context, correo, otp string) error
	GetOTP(ctx context.Context, correo string) (string, error)
	DeleteOTP(ctx context.Context, correo string) error
	// RegisterFailedLogin counts a failed attempt and reports whether the
	// account just got locked out.
	RegisterFailedLogin(ctx context.Context, correo string) (bool, error)
	IsLockedOut(ctx context.Context, correo string) (bool, error)
	ClearAttempts(ctx context.Context, correo string) error
	SetResetToken(ctx context.Context, token, correo string) error
	GetResetToken(ctx context.Context, token string) (string, error)
	DeleteResetToken(ctx context.Context, token string) error
}

// AuthStore is the Redis-backed implementation
type AuthStore struct {
	client *redis.Client
}

// NewAuthStore connects to Redis using REDIS_ADDR/REDIS_PASSWORD
func NewAuthStore() (*AuthStore, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	log.Printf("✓ Redis connection established successfully")
	return &AuthStore{client: client}, nil
}

// Ensure AuthStore implements AuthStoreInterface
var _ AuthStoreInterface = (*AuthStore)(nil)

func otpKey(correo string) string      { return "otp:" + correo }
func attemptsKey(correo string) string { return "login_attempts:" + correo }
func lockoutKey(correo string) string  { return "login_lockout:" + correo }
func resetKey(token string) string     { return "reset_token:" + token }

// SetOTP stores the one-time password for 5 minutes
func (s *AuthStore) SetOTP(ctx context.Context, correo, otp string) error {
	return s.client.Set(ctx, otpKey(correo), otp, otpTTL).Err()
}

// GetOTP returns the pending OTP, or "" when expired or absent
func (s *AuthStore) GetOTP(ctx context.Context, correo string) (string, error) {
	otp, err := s.client.Get(ctx, otpKey(correo)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return otp, nil
}

// DeleteOTP discards the pending OTP after a successful verification
func (s *AuthStore) DeleteOTP(ctx context.Context, correo string) error {
	return s.client.Del(ctx, otpKey(correo)).Err()
}

// RegisterFailedLogin increments the per-account failure counter; after
// maxIntentos failures the account locks for lockoutTTL and the counter resets.
func (s *AuthStore) RegisterFailedLogin(ctx context.Context, correo string) (bool, error) {
	intentos, err := s.client.Incr(ctx, attemptsKey(correo)).Result()
	if err != nil {
		return false, err
	}
	// Keep the counter from lingering forever between attempts.
	s.client.Expire(ctx, attemptsKey(correo), 15*time.Minute)

	if intentos < maxIntentos {
		return false, nil
	}

	if err := s.client.Set(ctx, lockoutKey(correo), "1", lockoutTTL).Err(); err != nil {
		return false, err
	}
	if err := s.client.Del(ctx, attemptsKey(correo)).Err(); err != nil {
		return false, err
	}
	log.Printf("⚠️ AuthStore: Account %s locked out after %d failed attempts", correo, maxIntentos)
	return true, nil
}

// IsLockedOut reports whether the account is currently locked
func (s *AuthStore) IsLockedOut(ctx context.Context, correo string) (bool, error) {
	_, err := s.client.Get(ctx, lockoutKey(correo)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ClearAttempts resets the failure counter after a successful password check
func (s *AuthStore) ClearAttempts(ctx context.Context, correo string) error {
	return s.client.Del(ctx, attemptsKey(correo)).Err()
}

// SetResetToken maps a password-reset token to the account email for 15 minutes
func (s *AuthStore) SetResetToken(ctx context.Context, token, correo string) error {
	return s.client.Set(ctx, resetKey(token), correo, resetTokenTTL).Err()
}

// GetResetToken resolves a reset token to its email, or "" when invalid/expired
func (s *AuthStore) GetResetToken(ctx context.Context, token string) (string, error) {
	correo, err := s.client.Get(ctx, resetKey(token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return correo, nil
}

// DeleteResetToken burns a reset token after use
func (s *AuthStore) DeleteResetToken(ctx context.Context, token string) error {
	return s.client.Del(ctx, resetKey(token)).Err()
}
