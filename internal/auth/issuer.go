// Package auth mints and verifies the short-lived session credentials that
// bind an HTTP caller to a resolved voter identity.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth"
)

// DefaultTokenTTL is the credential lifetime when none is configured.
const DefaultTokenTTL = 2 * time.Hour

var (
	// ErrInvalidCredential is returned for tokens whose signature does not
	// verify or whose structure or claims cannot be parsed.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrExpiredCredential is returned for well-formed tokens past their expiry.
	ErrExpiredCredential = errors.New("credential expired")
)

// Issuer signs and verifies session credentials. The signing key is fixed at
// construction; rotating the key means constructing a new Issuer, the Issue
// and Verify contracts do not change.
type Issuer struct {
	tokenAuth *jwtauth.JWTAuth
	ttl       time.Duration
}

// NewIssuer creates an issuer signing HS256 tokens with the given secret.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{
		tokenAuth: jwtauth.New("HS256", secret, nil),
		ttl:       ttl,
	}
}

// TTL returns the configured credential lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue mints a signed token bound to the voter id, expiring after the
// configured TTL.
func (i *Issuer) Issue(voterID int64) (string, error) {
	claims := map[string]interface{}{
		"sub": strconv.FormatInt(voterID, 10),
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, i.ttl)

	_, tokenString, err := i.tokenAuth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("encode credential: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature and expiry and returns the bound voter id.
// Any malformed or tampered token yields ErrInvalidCredential; a valid but
// stale token yields ErrExpiredCredential.
func (i *Issuer) Verify(tokenString string) (int64, error) {
	token, err := jwtauth.VerifyToken(i.tokenAuth, tokenString)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return 0, ErrExpiredCredential
		}
		return 0, ErrInvalidCredential
	}

	voterID, err := strconv.ParseInt(token.Subject(), 10, 64)
	if err != nil || voterID <= 0 {
		return 0, ErrInvalidCredential
	}
	return voterID, nil
}
