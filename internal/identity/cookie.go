package identity

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieName is the cookie carrying the session token
const CookieName = "access_token"

// Channel writes and clears the session cookie. Every session cookie is
// HttpOnly and SameSite=Lax.
type Channel struct {
	Name   string
	Domain string
	Secure bool
	MaxAge time.Duration
}

func NewChannel(domain string, secure bool, maxAge time.Duration) *Channel {
	return &Channel{
		Name:   CookieName,
		Domain: domain,
		Secure: secure,
		MaxAge: maxAge,
	}
}

// Establish hands token to the client
func (ch *Channel) Establish(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ch.Name, token, int(ch.MaxAge/time.Second), "/", ch.Domain, ch.Secure, true)
}

// Clear deletes the cookie on the client. The token itself stays valid until
// it expires, there is no server side revocation.
func (ch *Channel) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ch.Name, "", -1, "/", ch.Domain, ch.Secure, true)
}
