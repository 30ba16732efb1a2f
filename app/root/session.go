package root

import (
	"net/http"

	"maqola/platform/internal/model"

	"github.com/gin-gonic/gin"
)

// Session tells scripts whether the caller's cookie is still good without
// rendering a page
func Session(c *gin.Context, u *model.User) {
	if u == nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	c.Status(http.StatusNoContent)
}
