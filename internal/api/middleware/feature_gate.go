package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Optional server features that depend on configured backends
const (
	FeatureQueryLog = "query_log"
	FeatureReload   = "reload"
)

// FeatureChecker reports which optional features this deployment has
type FeatureChecker interface {
	Enabled(feature string) bool
}

// Features is a static FeatureChecker
type Features map[string]bool

// Enabled implements FeatureChecker
func (f Features) Enabled(feature string) bool {
	return f[feature]
}

// RequireFeature answers 503 when the deployment lacks the backend a route needs
func RequireFeature(checker FeatureChecker, feature string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker == nil || !checker.Enabled(feature) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":   "feature not available",
				"feature": feature,
			})
			return
		}
		c.Next()
	}
}
