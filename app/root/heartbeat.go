// Package root contains the handlers that aren't pages: liveness and
// session probes
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat answers load balancers and uptime checks. Nothing is cached so
// a dead instance can't look alive.
func Heartbeat(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)
}
