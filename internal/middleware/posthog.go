package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/teaminfinity/expense_management/internal/utils"
)

// pathsToSkip contains paths that should not be tracked.
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful
// authenticated API calls as analytics events.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// Event name from route path, e.g. "/api/v1/expenses" -> "api_v1_expenses".
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		posthogClient.Enqueue(userID, eventName, map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		})
	}
}
