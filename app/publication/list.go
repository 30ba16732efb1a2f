// Package publication contains the handlers for reading and writing
// publications
package publication

import (
	"net/http"

	"maqola/platform/app/view"
	"maqola/platform/internal"
	"maqola/platform/internal/model"

	"github.com/gin-gonic/gin"
)

// Home lists everything, the identity only affects the navigation
func Home(c *gin.Context, d *internal.Deps) {
	publications, err := d.Publications.ListHome(c.Request.Context())
	if err != nil {
		view.Internal(c, err, "Failed to list publications")
		return
	}

	view.Page(c, http.StatusOK, "home.html", gin.H{
		"Publications": publications,
	})
}

func Dashboard(c *gin.Context, d *internal.Deps, u *model.User) {
	publications, err := d.Publications.ListDashboard(c.Request.Context(), u)
	if err != nil {
		view.Internal(c, err, "Failed to list user publications")
		return
	}

	view.Page(c, http.StatusOK, "dashboard.html", gin.H{
		"Title":        "Dashboard",
		"Publications": publications,
	})
}
