package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"maqola/platform/internal/identity"
	"maqola/platform/internal/model"
	"maqola/platform/internal/store"
	"maqola/platform/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *store.Memory
	tokens   *security.SessionTokens
	resolver *identity.Resolver
	alice    *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := store.NewMemory()
	tokens, err := security.NewSessionTokens("resolver-secret", "HS256", time.Hour)
	require.NoError(t, err)

	alice := &model.User{FullName: "Alice", Email: "alice@example.com", HashedPassword: "x"}
	require.NoError(t, s.InsertUser(context.Background(), alice))

	return &fixture{
		store:    s,
		tokens:   tokens,
		resolver: identity.NewResolver(tokens, s, identity.CookieName),
		alice:    alice,
	}
}

func requestWithCookie(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.AddCookie(&http.Cookie{Name: identity.CookieName, Value: value})
	}

	return req
}

func TestResolve_ValidSession(t *testing.T) {
	f := newFixture(t)

	tok, _, err := f.tokens.Issue("1")
	require.NoError(t, err)

	u := f.resolver.Resolve(context.Background(), requestWithCookie(tok))
	require.NotNil(t, u)
	assert.Equal(t, f.alice.ID, u.ID)
	assert.Equal(t, "Alice", u.FullName)
}

func TestResolve_Anonymous(t *testing.T) {
	f := newFixture(t)

	other, err := security.NewSessionTokens("other-secret", "HS256", time.Hour)
	require.NoError(t, err)
	forged, _, err := other.Issue("1")
	require.NoError(t, err)

	expired, _, err := f.tokens.IssueWithTTL("1", -time.Minute)
	require.NoError(t, err)

	tests := map[string]string{
		"no cookie":    "",
		"garbage":      "not-a-token",
		"wrong secret": forged,
		"expired":      expired,
	}

	for name, cookie := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, f.resolver.Resolve(context.Background(), requestWithCookie(cookie)))
		})
	}
}

func TestResolve_MalformedSubject(t *testing.T) {
	f := newFixture(t)

	for _, subject := range []string{"alice", "0", "-1", "1.5", "99999999999999999999999"} {
		tok, _, err := f.tokens.Issue(subject)
		require.NoError(t, err)

		assert.Nil(t, f.resolver.Resolve(context.Background(), requestWithCookie(tok)), subject)
	}
}

func TestResolve_DeletedUser(t *testing.T) {
	f := newFixture(t)

	tok, _, err := f.tokens.Issue("1")
	require.NoError(t, err)

	require.NoError(t, f.store.DeleteUser(context.Background(), f.alice.ID))
	assert.Nil(t, f.resolver.Resolve(context.Background(), requestWithCookie(tok)))
}

func TestMiddleware_StoresCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)

	r := gin.New()
	r.Use(identity.Middleware(f.resolver))
	r.GET("/", func(c *gin.Context) {
		if u := identity.Current(c); u != nil {
			c.String(http.StatusOK, u.Email)
			return
		}

		c.String(http.StatusOK, "anonymous")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, requestWithCookie(""))
	assert.Equal(t, "anonymous", w.Body.String())

	tok, _, err := f.tokens.Issue("1")
	require.NoError(t, err)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, requestWithCookie(tok))
	assert.Equal(t, "alice@example.com", w.Body.String())
}

func TestChannel_EstablishAndClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ch := identity.NewChannel("", false, 24*time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)

	ch.Establish(c, "token-value")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, identity.CookieName, cookies[0].Name)
	assert.Equal(t, "token-value", cookies[0].Value)
	assert.Equal(t, 24*60*60, cookies[0].MaxAge)
	assert.Equal(t, "/", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/logout", nil)

	ch.Clear(c)

	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
