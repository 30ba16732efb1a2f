package security

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret"

func newTokens(t *testing.T) *SessionTokens {
	t.Helper()

	tokens, err := NewSessionTokens(testSecret, "HS256", DefaultSessionTTL)
	require.NoError(t, err)
	return tokens
}

func TestSessionTokens_IssueAndVerify(t *testing.T) {
	tokens := newTokens(t)

	for _, subject := range []string{"1", "42", "18446744073709551615"} {
		tok, exp, err := tokens.Issue(subject)
		require.NoError(t, err)

		claims, ok := tokens.Verify(tok)
		require.True(t, ok)
		assert.Equal(t, subject, claims.Subject)
		assert.WithinDuration(t, exp, claims.ExpiresAt, time.Second)
	}
}

func TestSessionTokens_DefaultTTL(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tokens := newTokens(t).WithClock(func() time.Time { return now })

	_, exp, err := tokens.Issue("7")
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), exp)
}

func TestSessionTokens_Expired(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tokens := newTokens(t).WithClock(func() time.Time { return now })

	tok, _, err := tokens.IssueWithTTL("7", time.Hour)
	require.NoError(t, err)

	_, ok := tokens.WithClock(func() time.Time { return now.Add(59 * time.Minute) }).Verify(tok)
	assert.True(t, ok, "still valid before expiry")

	_, ok = tokens.WithClock(func() time.Time { return now.Add(time.Hour + time.Second) }).Verify(tok)
	assert.False(t, ok, "expired token must be rejected")
}

func TestSessionTokens_NegativeTTLIsExpired(t *testing.T) {
	tokens := newTokens(t)

	tok, _, err := tokens.IssueWithTTL("7", -time.Minute)
	require.NoError(t, err)

	claims, ok := tokens.Verify(tok)
	assert.False(t, ok)
	assert.Nil(t, claims)
}

func TestSessionTokens_WrongSecret(t *testing.T) {
	tok, _, err := newTokens(t).Issue("7")
	require.NoError(t, err)

	other, err := NewSessionTokens("another-secret", "HS256", time.Hour)
	require.NoError(t, err)

	_, ok := other.Verify(tok)
	assert.False(t, ok)
}

func TestSessionTokens_Tampered(t *testing.T) {
	tokens := newTokens(t)

	tok, _, err := tokens.Issue("7")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	// Swap the subject but keep the original signature
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"1","exp":4102444800}`))
	forged := parts[0] + "." + payload + "." + parts[2]

	_, ok := tokens.Verify(forged)
	assert.False(t, ok)
}

func TestSessionTokens_RejectsOtherAlgorithms(t *testing.T) {
	tokens := newTokens(t)
	claims := jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, ok := tokens.Verify(unsigned)
	assert.False(t, ok, "alg none must be rejected")

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, ok = tokens.Verify(hs512)
	assert.False(t, ok, "only the configured algorithm is accepted")
}

func TestSessionTokens_RequiresExpiryAndSubject(t *testing.T) {
	tokens := newTokens(t)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "7"}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, ok := tokens.Verify(noExp)
	assert.False(t, ok)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, ok = tokens.Verify(noSub)
	assert.False(t, ok)
}

func TestSessionTokens_Malformed(t *testing.T) {
	tokens := newTokens(t)

	for _, tok := range []string{"", "not.a.jwt", "abc", "a.b", "...."} {
		claims, ok := tokens.Verify(tok)
		assert.False(t, ok, "token %q", tok)
		assert.Nil(t, claims)
	}
}

func TestSessionTokens_OtherAlgorithms(t *testing.T) {
	for _, alg := range []string{"HS384", "HS512"} {
		tokens, err := NewSessionTokens(testSecret, alg, time.Hour)
		require.NoError(t, err)

		tok, _, err := tokens.Issue("3")
		require.NoError(t, err)

		claims, ok := tokens.Verify(tok)
		require.True(t, ok)
		assert.Equal(t, "3", claims.Subject)
	}
}

func TestNewSessionTokens_InvalidSettings(t *testing.T) {
	_, err := NewSessionTokens("", "HS256", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = NewSessionTokens(testSecret, "RS256", time.Hour)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	_, err = NewSessionTokens(testSecret, "none", time.Hour)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	_, err = NewSessionTokens(testSecret, "HS256", 0)
	assert.ErrorIs(t, err, ErrInvalidTTL)
}

func TestSessionTokens_EmptySubject(t *testing.T) {
	_, _, err := newTokens(t).Issue("")
	assert.ErrorIs(t, err, ErrEmptySubject)
}
