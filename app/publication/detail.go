package publication

import (
	"errors"
	"net/http"
	"strconv"

	"maqola/platform/app/view"
	"maqola/platform/internal"
	"maqola/platform/internal/service"

	"github.com/gin-gonic/gin"
)

const notFound = "Publication not found"

func PublicationDetail(c *gin.Context, d *internal.Deps) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		view.Error(c, http.StatusNotFound, notFound)
		return
	}

	pub, err := d.Publications.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrPublicationNotFound) {
			view.Error(c, http.StatusNotFound, notFound)
			return
		}

		view.Internal(c, err, "Failed to fetch publication")
		return
	}

	view.Page(c, http.StatusOK, "publication_detail.html", gin.H{
		"Title":       pub.Title,
		"Publication": pub,
	})
}
