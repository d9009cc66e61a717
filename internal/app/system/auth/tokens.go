package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// PurposePasswordReset tags tokens handed out by the forgot-password flow.
	PurposePasswordReset = "password_reset"

	// DefaultSessionTTL applies when no session lifetime is configured.
	DefaultSessionTTL = 30 * time.Minute

	// ResetTTL is the lifetime of a password-reset token.
	ResetTTL = time.Hour

	minSecretLen = 32

	// expiryResolution is the granularity of the exp claim. Issue rounds
	// expiry up to it and Validate rounds the decoded claim back onto it.
	expiryResolution = time.Millisecond
)

// The default whole-second NumericDate would cut up to a second off every
// token's lifetime.
func init() {
	jwt.TimePrecision = time.Microsecond
}

var (
	// ErrInvalidToken covers every reason a token is refused. Expired tokens
	// also match ErrTokenExpired.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrWrongPurpose = errors.New("token purpose mismatch")
	ErrEmptySecret  = errors.New("jwt secret is empty")
)

// Claims is the signed payload: sub (email), exp, iat and an optional
// purpose tag.
type Claims struct {
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256-signed bearer tokens.
// It is immutable after construction and safe for concurrent use.
type TokenService struct {
	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces time.Now; tests use it to step over expiry.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService builds a service signing with secret. A non-positive
// sessionTTL falls back to DefaultSessionTTL.
func NewTokenService(secret string, sessionTTL time.Duration, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	s := &TokenService{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// SecretIsShort reports whether secret is below the recommended length.
func SecretIsShort(secret string) bool {
	return len(secret) < minSecretLen
}

// SessionTTL returns the configured session lifetime.
func (s *TokenService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Issue signs a token for subject that expires ttl from now. purpose may be
// empty.
func (s *TokenService) Issue(subject string, ttl time.Duration, purpose string) (string, error) {
	now := s.now()
	claims := Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(ceilTo(now.Add(ttl), expiryResolution)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// IssueSession signs a session token for email.
func (s *TokenService) IssueSession(email string) (string, error) {
	return s.Issue(email, s.sessionTTL, "")
}

// IssueReset signs a one-hour password-reset token for email.
func (s *TokenService) IssueReset(email string) (string, error) {
	return s.Issue(email, ResetTTL, PurposePasswordReset)
}

// Validate checks signature, algorithm and expiry. Expiry is exclusive: a
// token is refused from the instant exp is reached.
//
// Expiry is compared here rather than by the jwt validator because exp
// travels as a float and can decode a few hundred nanoseconds early.
func (s *TokenService) Validate(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, jwt.ErrTokenRequiredClaimMissing)
	}
	exp := claims.ExpiresAt.Time.Round(expiryResolution)
	if !s.now().Before(exp) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenExpired)
	}
	claims.ExpiresAt = &jwt.NumericDate{Time: exp}
	return claims, nil
}

// ceilTo rounds t up to the next multiple of d.
func ceilTo(t time.Time, d time.Duration) time.Time {
	if tr := t.Truncate(d); !tr.Equal(t) {
		return tr.Add(d)
	}
	return t
}

// ValidateSession accepts only untagged tokens, so a password-reset token
// cannot be used to call protected endpoints.
func (s *TokenService) ValidateSession(token string) (*Claims, error) {
	claims, err := s.Validate(token)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrWrongPurpose)
	}
	return claims, nil
}

// ValidatePurpose accepts only tokens tagged with purpose.
func (s *TokenService) ValidatePurpose(token, purpose string) (*Claims, error) {
	claims, err := s.Validate(token)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrWrongPurpose)
	}
	return claims, nil
}
