package middleware

import (
	"errors"
	"net/http"

	"court-grid/internal/handler/httperr"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var errNotUpgrade = errors.New("request is not a websocket upgrade")

// RequireUpgrade rejects plain HTTP requests on websocket routes before the
// upgrader writes its own bare error.
func RequireUpgrade() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !websocket.IsWebSocketUpgrade(c.Request) {
			httperr.AbortWithError(c, http.StatusBadRequest, errNotUpgrade, "Websocket upgrade required", nil)
			return
		}
		c.Next()
	}
}
