package middleware

import (
	"net/http"
	"strings"

	"github.com/careerlink/jobboard/internal/models"
	"github.com/careerlink/jobboard/internal/utils"
	"github.com/gin-gonic/gin"
)

func RequireRole(allowed ...models.Role) gin.HandlerFunc {
	allow := map[string]struct{}{}
	for _, a := range allowed {
		s := strings.TrimSpace(strings.ToLower(string(a)))
		if s != "" {
			allow[s] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		v, ok := c.Get("role")
		role, _ := v.(string)
		role = strings.ToLower(strings.TrimSpace(role))

		if !ok || role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    utils.CodeForbidden,
				"message": "forbidden",
			})
			return
		}

		if _, ok := allow[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    utils.CodeForbidden,
				"message": "forbidden",
			})
			return
		}

		c.Next()
	}
}

func RequireJobSeeker() gin.HandlerFunc { return RequireRole(models.RoleJobSeeker) }
func RequireEmployer() gin.HandlerFunc  { return RequireRole(models.RoleEmployer) }
