package user

import (
	"net/http"

	"maqola/platform/internal"

	"github.com/gin-gonic/gin"
)

// UserLogout only drops the cookie. A copy of the token kept elsewhere keeps
// working until it expires.
func UserLogout(c *gin.Context, d *internal.Deps) {
	d.Sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, "/")
}
