package gate

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiaonanln/plantsim/util/callcontext"
)

// Client-visible authentication errors
const (
	errMissingAPIKey = "You must provide a valid API key."
	errInvalidAPIKey = "The API key you provided was invalid."
)

// APIKeyHeader is accepted as an alternative to the apiKey query parameter
const APIKeyHeader = "X-API-Key"

func (g *Gate) apiKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Query("apiKey")
		if key == "" {
			key = c.GetHeader(APIKeyHeader)
		}
		if key == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errMissingAPIKey})
			return
		}
		if _, ok := g.config.APIKeys[key]; !ok {
			g.logger.Warnf("Rejected request to %s with unknown API key from %s", c.Request.URL.Path, c.ClientIP())
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errInvalidAPIKey})
			return
		}

		c.Request = c.Request.WithContext(callcontext.WithTenantKey(c.Request.Context(), key))
		c.Next()
	}
}

// allow checks the access rules for command before the handler runs
func (g *Gate) allow(command string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := callcontext.TenantKey(c.Request.Context())
		if err := g.config.Access.Check(key, command); err != nil {
			g.logger.Warnf("Access rule rejected %s for %s", command, g.config.APIKeys[key])
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.Next()
	}
}

func (g *Gate) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		g.logger.Debugf("%s %s -> %d (%v)", c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
