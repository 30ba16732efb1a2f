package user

import (
	"errors"
	"net/http"

	"maqola/platform/app/view"
	"maqola/platform/internal"
	"maqola/platform/internal/policy"
	"maqola/platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerForm struct {
	FullName string `form:"full_name" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func RegisterPage(c *gin.Context) {
	view.Page(c, http.StatusOK, "register.html", gin.H{
		"Title": "Register",
		"Form":  registerForm{},
	})
}

func UserRegister(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerForm
	if err := c.ShouldBind(&data); err != nil {
		renderRegister(c, data, err)
		return
	}

	session, err := d.Accounts.Register(c.Request.Context(), service.RegisterInput{
		FullName: data.FullName,
		Email:    data.Email,
		Password: data.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			zap.L().Debug("Registration with a taken email", zap.String("requestID", requestID))
		}

		renderRegister(c, data, err)
		return
	}

	zap.L().Info("User registered", zap.Uint("userID", session.User.ID), zap.String("requestID", requestID))

	d.Sessions.Establish(c, session.Token)
	c.Redirect(http.StatusSeeOther, policy.DashboardPath)
}

func renderRegister(c *gin.Context, data registerForm, err error) {
	msg, ok := view.FormError(err)
	if !ok {
		if !errors.Is(err, service.ErrEmailTaken) {
			view.Internal(c, err, "Failed to register user")
			return
		}

		msg = "A user with this email already exists"
	}

	data.Password = ""
	view.Page(c, http.StatusBadRequest, "register.html", gin.H{
		"Title": "Register",
		"Error": msg,
		"Form":  data,
	})
}
