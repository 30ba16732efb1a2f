package policy

import (
	"net/http"

	"maqola/platform/internal/identity"

	"github.com/gin-gonic/gin"
)

// RejectHandler renders the response for a rejected request. The handler
// must write a response, Guard aborts the chain right after.
type RejectHandler func(c *gin.Context, status int)

// Guard enforces Decide for the route class. It relies on the identity
// middleware having run before it.
func Guard(class RouteClass, reject RejectHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := Decide(class, StateOf(identity.Current(c)), c.Request.Method)

		switch d.Outcome {
		case Redirect:
			c.Redirect(d.Status, d.Location)
			c.Abort()
		case Reject:
			if reject != nil {
				reject(c, d.Status)
			} else {
				c.String(d.Status, http.StatusText(d.Status))
			}
			c.Abort()
		default:
			c.Next()
		}
	}
}
