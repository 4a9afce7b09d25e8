// Package token implements the RS256 credential codec shared by the backend
// (signing) and the gate (verification). A credential authorises exactly one
// entry or one emergency exit; the gate verifies it fully offline against
// the backend's public key.
package token

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	Issuer   = "library-backend"
	Audience = "library-gate"

	// EntryTokenTTL is the default validity of an entry credential.
	EntryTokenTTL = 24 * time.Hour
	// EmergencyExitTTL is the validity of an emergency exit credential.
	EmergencyExitTTL = 5 * time.Minute
)

// Action claim values.
const (
	ActionEntering = "ENTERING"
	ActionExiting  = "EXITING"
)

// TypeEmergency in the type claim marks an emergency exit credential.
const TypeEmergency = "emergency"

// Verification failures. The error text doubles as the operator-facing DENY
// reason, so the wording is load-bearing.
var (
	ErrExpired      = errors.New("token expired")
	ErrBadAudience  = errors.New("invalid audience (aud)")
	ErrBadIssuer    = errors.New("invalid issuer (iss)")
	ErrBadSignature = errors.New("invalid token (signature verification failed)")
	ErrMalformed    = errors.New("invalid token (malformed)")
)

// Claims is the payload of a gate credential. Extra is an opaque ordered
// list carried through to the scan row untouched. CreatedAt is only set on
// replay/test credentials and lets the scanner backdate a row.
type Claims struct {
	EntryID    string          `json:"entryId,omitempty"`
	ExitID     string          `json:"exitId,omitempty"`
	Roll       string          `json:"roll,omitempty"`
	Action     string          `json:"action,omitempty"`
	Type       string          `json:"type,omitempty"`
	Laptop     *string         `json:"laptop,omitempty"`
	Extra      json.RawMessage `json:"extra,omitempty"`
	Source     string          `json:"source,omitempty"`
	OS         string          `json:"os,omitempty"`
	DeviceID   string          `json:"deviceId,omitempty"`
	DeviceMeta map[string]any  `json:"deviceMeta,omitempty"`
	CreatedAt  string          `json:"createdAt,omitempty"`
	jwt.RegisteredClaims
}

// Signer issues credentials with the backend's private key.
type Signer struct {
	key *rsa.PrivateKey
	now func() time.Time
}

func NewSigner(key *rsa.PrivateKey) *Signer {
	return &Signer{key: key, now: time.Now}
}

// SignEntry issues an entry credential. Action is forced to ENTERING. A
// non-positive ttl selects the default 24 h window.
func (s *Signer) SignEntry(claims Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = EntryTokenTTL
	}
	claims.Action = ActionEntering
	return s.sign(claims, ttl)
}

// SignEmergencyExit issues a short-lived exit credential for a roll whose
// entry QR is not available. Action is forced to EXITING and the type claim
// marks it as emergency.
func (s *Signer) SignEmergencyExit(claims Claims) (string, error) {
	claims.Action = ActionExiting
	claims.Type = TypeEmergency
	return s.sign(claims, EmergencyExitTTL)
}

func (s *Signer) sign(claims Claims, ttl time.Duration) (string, error) {
	now := s.now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, &claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verifier checks credentials against the backend's public key.
type Verifier struct {
	key *rsa.PublicKey
}

func NewVerifier(key *rsa.PublicKey) *Verifier {
	return &Verifier{key: key}
}

// Verify parses and validates a credential. On success the decoded claims
// are returned. When the token fails only on expiry, the claims are still
// returned alongside ErrExpired so the scanner can run the controlled
// expired-entry path; any signature, issuer or audience failure returns no
// claims at all.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, v.keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
	)
	if err == nil {
		return claims, nil
	}

	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrBadSignature
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return nil, ErrBadAudience
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return nil, ErrBadIssuer
	case errors.Is(err, jwt.ErrTokenExpired):
		return claims, ErrExpired
	default:
		return nil, fmt.Errorf("invalid token (%s)", err)
	}
}

func (v *Verifier) keyfunc(*jwt.Token) (any, error) {
	return v.key, nil
}

// LoadPrivateKey reads a PEM-encoded RSA private key.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(raw)
	if err != nil {
		return nil, fmt.Errorf("parse private key %s: %w", path, err)
	}
	return key, nil
}

// LoadPublicKey reads a PEM-encoded RSA public key.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(raw)
	if err != nil {
		return nil, fmt.Errorf("parse public key %s: %w", path, err)
	}
	return key, nil
}
