// Package config provides OTP configuration and code hashing functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// OTPConfig holds configuration for one-time code issuance and verification.
// Codes are never stored in the clear; only bcrypt hashes are kept.
type OTPConfig struct {
	BcryptCost  int
	TTL         time.Duration
	MaxAttempts int
}

// NewOTPConfig creates an OTP configuration from environment variables.
// It reads OTP_BCRYPT_COST (default: 10), OTP_TTL_SECONDS (default: 300),
// and OTP_MAX_ATTEMPTS (default: 3).
func NewOTPConfig() (*OTPConfig, error) {
	costStr := os.Getenv("OTP_BCRYPT_COST")
	if costStr == "" {
		costStr = "10" // default; OTP codes are short-lived
	}
	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_BCRYPT_COST: %v", err)
	}

	ttlStr := os.Getenv("OTP_TTL_SECONDS")
	if ttlStr == "" {
		ttlStr = "300"
	}
	ttlSeconds, err := strconv.Atoi(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_TTL_SECONDS: %v", err)
	}

	attemptsStr := os.Getenv("OTP_MAX_ATTEMPTS")
	if attemptsStr == "" {
		attemptsStr = "3"
	}
	attempts, err := strconv.Atoi(attemptsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_MAX_ATTEMPTS: %v", err)
	}

	config := &OTPConfig{
		BcryptCost:  cost,
		TTL:         time.Duration(ttlSeconds) * time.Second,
		MaxAttempts: attempts,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *OTPConfig) normalize() error {
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > 14 {
		return fmt.Errorf("OTP bcrypt cost out of range: %d (must be %d-14)", c.BcryptCost, bcrypt.MinCost)
	}
	if c.TTL < 30*time.Second {
		return fmt.Errorf("OTP TTL too short: %s (minimum 30s)", c.TTL)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("OTP_MAX_ATTEMPTS must be at least 1, got: %d", c.MaxAttempts)
	}
	return nil
}

// HashCode hashes a one-time code using bcrypt.
func (c *OTPConfig) HashCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash OTP code: %w", err)
	}
	return string(hash), nil
}

// VerifyCode checks a code against its stored hash.
func (c *OTPConfig) VerifyCode(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
