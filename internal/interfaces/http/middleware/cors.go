package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to make cross-origin requests.
	// ["*"] allows all of them.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string

	// AllowCredentials is never combined with a literal "*" origin.
	AllowCredentials bool

	// MaxAge is how long, in seconds, preflight results can be cached.
	MaxAge int

	// AllowWildcard enables subdomain patterns such as *.example.com.
	AllowWildcard bool
}

// DefaultCORSConfig returns a restrictive default: no origins allowed.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			HeaderRequestID,
		},
		ExposedHeaders: []string{
			HeaderRequestID,
			"Content-Disposition",
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		MaxAge: 86400,
	}
}

// CORS returns middleware that handles Cross-Origin Resource Sharing.
func CORS(config CORSConfig) gin.HandlerFunc {
	allowedMethodsStr := strings.Join(config.AllowedMethods, ", ")
	allowedHeadersStr := strings.Join(config.AllowedHeaders, ", ")
	exposedHeadersStr := strings.Join(config.ExposedHeaders, ", ")
	maxAgeStr := strconv.Itoa(config.MaxAge)

	originSet := make(map[string]bool, len(config.AllowedOrigins))
	var wildcardPatterns []string
	allowAll := false

	for _, origin := range config.AllowedOrigins {
		switch {
		case origin == "*":
			allowAll = true
		case config.AllowWildcard && strings.HasPrefix(origin, "*."):
			wildcardPatterns = append(wildcardPatterns, strings.ToLower(origin[1:]))
		default:
			originSet[strings.ToLower(origin)] = true
		}
	}

	isOriginAllowed := func(origin string) bool {
		if allowAll {
			return true
		}
		lower := strings.ToLower(origin)
		if originSet[lower] {
			return true
		}
		for _, pattern := range wildcardPatterns {
			if strings.HasSuffix(lower, pattern) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || !isOriginAllowed(origin) {
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Add("Vary", "Origin")
		h.Add("Vary", "Access-Control-Request-Method")
		h.Add("Vary", "Access-Control-Request-Headers")

		if allowAll && !config.AllowCredentials {
			h.Set("Access-Control-Allow-Origin", "*")
		} else {
			h.Set("Access-Control-Allow-Origin", origin)
		}
		if config.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", allowedMethodsStr)
			h.Set("Access-Control-Allow-Headers", allowedHeadersStr)
			if config.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", maxAgeStr)
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if exposedHeadersStr != "" {
			h.Set("Access-Control-Expose-Headers", exposedHeadersStr)
		}
		c.Next()
	}
}

//Personal.AI order the ending
