package identity

import (
	"maqola/platform/internal/model"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// Middleware resolves the identity once per request and keeps it for the
// handlers and guards that run after it
func Middleware(r *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u := r.Resolve(c.Request.Context(), c.Request); u != nil {
			c.Set(currentUserKey, u)
			c.Set("userID", u.ID)
		}

		c.Next()
	}
}

// Current returns the user resolved by Middleware, nil when anonymous
func Current(c *gin.Context) *model.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}

	u, _ := v.(*model.User)
	return u
}
