package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/medbooksvc/domain"
)

const doctorContextKey = "doctor"

// DoctorFromContext returns the authenticated doctor attached by the auth
// middleware, if any.
func DoctorFromContext(c *gin.Context) (*domain.Doctor, bool) {
	value, exists := c.Get(doctorContextKey)
	if !exists {
		return nil, false
	}
	doctor, ok := value.(*domain.Doctor)
	return doctor, ok
}

// AuthMiddleware creates authentication middleware. A missing or malformed
// Authorization header is rejected before any store lookup. With optional
// set, every failure falls through to the handler unauthenticated instead
// of aborting.
func AuthMiddleware(tokenSvc domain.TokenService, doctorRepo domain.DoctorRepository, optional bool) gin.HandlerFunc {
	reject := func(c *gin.Context, message string) {
		if optional {
			c.Next()
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
		c.Abort()
	}

	return gin.HandlerFunc(func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			reject(c, "Authorization header required")
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			reject(c, "Invalid authorization header format")
			return
		}

		claims, err := tokenSvc.Validate(tokenParts[1])
		if err != nil {
			switch err {
			case domain.ErrTokenExpired:
				reject(c, "Token expired")
			default:
				reject(c, "Invalid token")
			}
			return
		}

		// The token may outlive the account; resolve the subject and
		// re-check it is still allowed in
		doctor, err := doctorRepo.FindByID(c.Request.Context(), claims.DoctorID)
		if err != nil {
			reject(c, "Account no longer exists")
			return
		}
		if !doctor.IsActive {
			reject(c, "Account deactivated")
			return
		}

		c.Set(doctorContextKey, doctor)
		c.Next()
	})
}
