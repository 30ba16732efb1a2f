package publication

import (
	"errors"
	"net/http"
	"strconv"

	"maqola/platform/app/view"
	"maqola/platform/internal"
	"maqola/platform/internal/model"
	"maqola/platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// There's deliberately no author field, authorship comes from the session
type publicationForm struct {
	Title      string `form:"title" binding:"required"`
	Category   string `form:"category"`
	Annotation string `form:"annotation" binding:"required"`
	Content    string `form:"content" binding:"required"`
}

func NewPage(c *gin.Context, d *internal.Deps) {
	view.Page(c, http.StatusOK, "new_publication.html", gin.H{
		"Title":           "New publication",
		"Form":            publicationForm{},
		"DefaultCategory": d.Config.DefaultCategory,
	})
}

func PublicationCreate(c *gin.Context, d *internal.Deps, u *model.User) {
	requestID := c.MustGet("requestID").(string)

	var data publicationForm
	if err := c.ShouldBind(&data); err != nil {
		renderForm(c, d, data, err)
		return
	}

	pub, err := d.Publications.Create(c.Request.Context(), u, service.PublicationInput{
		Title:      data.Title,
		Category:   data.Category,
		Annotation: data.Annotation,
		Content:    data.Content,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			view.Reject(c, http.StatusUnauthorized)
			return
		}

		renderForm(c, d, data, err)
		return
	}

	zap.L().Info("Publication created",
		zap.Uint("publicationID", pub.ID),
		zap.Uint("userID", u.ID),
		zap.String("requestID", requestID),
	)

	c.Redirect(http.StatusSeeOther, "/publications/"+strconv.FormatUint(uint64(pub.ID), 10))
}

func renderForm(c *gin.Context, d *internal.Deps, data publicationForm, err error) {
	msg, ok := view.FormError(err)
	if !ok {
		view.Internal(c, err, "Failed to create publication")
		return
	}

	view.Page(c, http.StatusBadRequest, "new_publication.html", gin.H{
		"Title":           "New publication",
		"Error":           msg,
		"Form":            data,
		"DefaultCategory": d.Config.DefaultCategory,
	})
}
