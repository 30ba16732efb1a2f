package security

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// DefaultSessionTTL is how long a session token stays valid when no other
// lifetime is configured
const DefaultSessionTTL = 24 * time.Hour

var (
	SupportedSigningAlgorithms = []string{"HS256", "HS384", "HS512"}

	ErrEmptySecret          = errors.New("signing secret can't be empty")
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")
	ErrInvalidTTL           = errors.New("token lifetime must be bigger than 0")
	ErrEmptySubject         = errors.New("token subject can't be empty")
)

// SessionClaims is what a verified session token proves: who the bearer is
// and until when
type SessionClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// SessionTokens signs and verifies stateless session tokens. It holds no
// mutable state after construction and is safe for concurrent use.
type SessionTokens struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionTokens(secret, algorithm string, ttl time.Duration) (*SessionTokens, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	if !slices.Contains(SupportedSigningAlgorithms, algorithm) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}

	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	return &SessionTokens{
		secret: []byte(secret),
		method: jwt.GetSigningMethod(algorithm),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock returns a copy of t that reads the time from now. Used by tests.
func (t *SessionTokens) WithClock(now func() time.Time) *SessionTokens {
	c := *t
	c.now = now
	return &c
}

func (t *SessionTokens) TTL() time.Duration {
	return t.ttl
}

// Issue signs a token for subject with the configured lifetime
func (t *SessionTokens) Issue(subject string) (string, time.Time, error) {
	return t.IssueWithTTL(subject, t.ttl)
}

func (t *SessionTokens) IssueWithTTL(subject string, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, ErrEmptySubject
	}

	now := t.now()
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(t.method, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token, %w", err)
	}

	return signed, expiresAt, nil
}

// Verify returns the claims of a token only if its signature checks out with
// the configured algorithm and it hasn't expired yet. Callers can't tell a
// malformed, forged or expired token apart, they all come back as false.
func (t *SessionTokens) Verify(tokenStr string) (*SessionClaims, bool) {
	if tokenStr == "" {
		return nil, false
	}

	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{t.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		zap.L().Debug("Rejected session token", zap.Error(err))
		return nil, false
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, false
	}

	return &SessionClaims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, true
}
