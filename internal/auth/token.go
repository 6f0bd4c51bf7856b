package auth

import (
	"encoding/hex"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

const (
	tokenIssuer = "musubi-server"

	// AdminSubject is the fixed subject carried by every session token.
	// The system has a single operator; tokens carry no further identity.
	AdminSubject = "admin"

	// AdminRole is the fixed role claim.
	AdminRole = "admin"

	// SessionTTL is how long an issued session token stays valid.
	SessionTTL = 24 * time.Hour

	// PASETO v4 symmetric key requirements.
	keyBytesSize = 32 // 256 bits
	keyHexSize   = 64 // 32 bytes as hex string
)

// Claims is the payload carried by a verified session token.
type Claims struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies PASETO v4.local session tokens. Tokens
// are stateless: validity is the authenticated decryption plus the expiry
// rule, with no server-side session store.
type TokenService struct {
	symmetricKey paseto.V4SymmetricKey
	ttl          time.Duration
}

// NewTokenService creates a token service from a 64-hex-character key.
func NewTokenService(keyHex string, ttl time.Duration) (*TokenService, error) {
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("session key must be exactly %d hex characters (%d bytes), got %d", keyHexSize, keyBytesSize, len(keyHex))
	}

	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string for session key: %w", err)
	}

	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("create symmetric key: %w", err)
	}

	return &TokenService{symmetricKey: key, ttl: ttl}, nil
}

// Issue creates a new session token for the admin, expiring after the
// configured TTL.
func (s *TokenService) Issue() (string, error) {
	return s.IssueAt(time.Now())
}

// IssueAt creates a session token as of the given instant.
func (s *TokenService) IssueAt(now time.Time) (string, error) {
	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(AdminSubject)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.ttl))

	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("role", AdminRole)

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// Verify checks a token's authenticity and expiry against the wall clock.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	return s.VerifyAt(tokenString, time.Now())
}

// VerifyAt checks a token as of the given instant. Returns the claims if
// valid, or an error if the token is malformed, tampered with, or expired.
func (s *TokenService) VerifyAt(tokenString string, at time.Time) (*Claims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.Subject(AdminSubject))
	parser.AddRule(paseto.ValidAt(at))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims := &Claims{Subject: AdminSubject}
	if role, err := token.GetString("role"); err == nil {
		claims.Role = role
	}
	if iat, err := token.GetIssuedAt(); err == nil {
		claims.IssuedAt = iat
	}
	if exp, err := token.GetExpiration(); err == nil {
		claims.ExpiresAt = exp
	}

	return claims, nil
}
