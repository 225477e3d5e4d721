package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS allows credentialed requests from the listed origins.
// Preflight requests are answered here and never reach the handlers.
func CORS(allowOrigins []string) gin.HandlerFunc {
	origins := make([]string, 0, len(allowOrigins))
	for _, o := range allowOrigins {
		origins = append(origins, strings.TrimRight(o, "/"))
	}

	policy := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:         86400,
	})

	return func(c *gin.Context) {
		policy.HandlerFunc(c.Writer, c.Request)

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
