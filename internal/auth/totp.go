// Package auth implements the admin credential check (time-based one-time
// codes) and the stateless session tokens issued on success.
package auth

import (
	"errors"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var (
	// ErrCodeFormat is returned when the submitted code is not six digits.
	ErrCodeFormat = errors.New("code must be exactly 6 digits")

	// ErrCodeInvalid is returned when a well-formed code does not match the
	// shared secret at the current time.
	ErrCodeInvalid = errors.New("invalid code")
)

const (
	totpPeriod = 30
	totpDigits = otp.DigitsSix

	// totpSkew accepts codes one step before and after the current step
	// to absorb clock drift between the server and the authenticator.
	totpSkew = 1
)

// CredentialVerifier validates 6-digit time-based one-time codes against a
// shared base32 secret.
type CredentialVerifier struct {
	secret string
}

// NewCredentialVerifier returns a verifier for the given base32 secret.
func NewCredentialVerifier(secret string) *CredentialVerifier {
	return &CredentialVerifier{secret: secret}
}

// Verify checks a code against the wall clock.
func (v *CredentialVerifier) Verify(code string) error {
	return v.VerifyAt(code, time.Now())
}

// VerifyAt checks a code at the given instant. Format errors are reported
// before any code comparison happens.
func (v *CredentialVerifier) VerifyAt(code string, at time.Time) error {
	if !isSixDigits(code) {
		return ErrCodeFormat
	}

	ok, err := totp.ValidateCustom(code, v.secret, at, totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    totpDigits,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrCodeInvalid
	}
	return nil
}

// isSixDigits reports whether s is exactly six ASCII digits.
func isSixDigits(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
