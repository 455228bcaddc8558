package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-backoffice/models"
	"hotel-backoffice/utils"
)

const (
	ContextUserID = "userID"
	ContextClaims = "claims"
)

// AuthJWT requires a valid "Authorization: Bearer <token>" header.
func AuthJWT(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}
		claims, err := utils.ParseToken(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextClaims, claims)
		c.Set(utils.LoggerKey, utils.Log(c).WithField("user_id", claims.UserID))
		c.Next()
	}
}

// RequireRoles lets through callers whose role is listed. ADMIN always passes.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToUpper(r)] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil {
			utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok && claims.Role != models.RoleAdmin {
			utils.JSONError(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentClaims(c *gin.Context) *utils.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}

// CurrentUserID is zero for unauthenticated requests.
func CurrentUserID(c *gin.Context) uint {
	if claims := CurrentClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}
