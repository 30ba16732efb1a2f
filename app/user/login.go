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

// Shown for every failed login, whatever the actual reason was
const invalidCredentials = "Invalid email or password"

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func LoginPage(c *gin.Context) {
	view.Page(c, http.StatusOK, "login.html", gin.H{
		"Title": "Log in",
		"Form":  loginForm{},
	})
}

func UserLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginForm
	if err := c.ShouldBind(&data); err != nil {
		zap.L().Debug("Can't bind login form", zap.Error(err), zap.String("requestID", requestID))
		renderLoginFailure(c, data)
		return
	}

	session, err := d.Accounts.Login(c.Request.Context(), data.Email, data.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			renderLoginFailure(c, data)
			return
		}

		view.Internal(c, err, "Failed to log in user")
		return
	}

	d.Sessions.Establish(c, session.Token)
	c.Redirect(http.StatusSeeOther, policy.DashboardPath)
}

func renderLoginFailure(c *gin.Context, data loginForm) {
	data.Password = ""
	view.Page(c, http.StatusUnauthorized, "login.html", gin.H{
		"Title": "Log in",
		"Error": invalidCredentials,
		"Form":  data,
	})
}
