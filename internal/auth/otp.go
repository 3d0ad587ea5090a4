// Package auth implements phone-based one-time-code authentication for the
// marketplace. It issues short-lived codes, stores only their bcrypt hashes,
// and exchanges a verified code for a signed session via the server's JWT
// service. Credential handling never touches the matching core.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/shramsaathi/marketplace/internal/config"
)

// Verification errors surfaced to the API layer.
var (
	// ErrNoPendingCode indicates no code was requested for this phone+role.
	ErrNoPendingCode = errors.New("no pending code for this phone")

	// ErrCodeExpired indicates the code's TTL has elapsed.
	ErrCodeExpired = errors.New("code has expired")

	// ErrCodeMismatch indicates the submitted code does not match.
	ErrCodeMismatch = errors.New("incorrect code")

	// ErrTooManyAttempts indicates the verification attempt cap was hit;
	// the pending code is invalidated.
	ErrTooManyAttempts = errors.New("too many incorrect attempts")
)

const codeDigits = 6

type pendingCode struct {
	hash      string
	expiresAt time.Time
	attempts  int
}

// OTPService issues and verifies one-time codes. Pending codes live in
// memory only; a restart simply requires requesting a fresh code.
type OTPService struct {
	cfg *config.OTPConfig
	now func() time.Time

	mu      sync.Mutex
	pending map[string]pendingCode // keyed by role:phone
}

// NewOTPService creates an OTP service with the given configuration.
func NewOTPService(cfg *config.OTPConfig) *OTPService {
	return &OTPService{
		cfg:     cfg,
		now:     time.Now,
		pending: make(map[string]pendingCode),
	}
}

// RequestCode generates a fresh 6-digit code for the phone+role pair and
// returns it for delivery (SMS dispatch is the caller's concern). Any
// previously pending code for the pair is replaced.
func (s *OTPService) RequestCode(phone, role string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	hash, err := s.cfg.HashCode(code)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[key(phone, role)] = pendingCode{
		hash:      hash,
		expiresAt: s.now().Add(s.cfg.TTL),
	}
	return code, nil
}

// VerifyCode checks a submitted code. On success the pending code is
// consumed; it cannot be replayed. After the attempt cap is reached the
// pending code is invalidated and a fresh one must be requested.
func (s *OTPService) VerifyCode(phone, role, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(phone, role)
	p, ok := s.pending[k]
	if !ok {
		return ErrNoPendingCode
	}

	if s.now().After(p.expiresAt) {
		delete(s.pending, k)
		return ErrCodeExpired
	}

	if !s.cfg.VerifyCode(code, p.hash) {
		p.attempts++
		if p.attempts >= s.cfg.MaxAttempts {
			delete(s.pending, k)
			return ErrTooManyAttempts
		}
		s.pending[k] = p
		return ErrCodeMismatch
	}

	delete(s.pending, k)
	return nil
}

// Purge drops expired pending codes. Called periodically by the server so
// abandoned requests do not accumulate.
func (s *OTPService) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, p := range s.pending {
		if now.After(p.expiresAt) {
			delete(s.pending, k)
		}
	}
}

func key(phone, role string) string {
	return role + ":" + phone
}

// generateCode produces a uniformly random 6-digit code, zero-padded.
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
