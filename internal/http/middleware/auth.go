package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/you/medbooksvc/domain"
)

// AuthMW wraps the token service and doctor repository for middleware
type AuthMW struct {
	tokenSvc   domain.TokenService
	doctorRepo domain.DoctorRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, doctorRepo domain.DoctorRepository) *AuthMW {
	return &AuthMW{
		tokenSvc:   tokenSvc,
		doctorRepo: doctorRepo,
	}
}

// RequireAuth returns middleware that rejects unauthenticated requests
func (mw *AuthMW) RequireAuth() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc, mw.doctorRepo, false)
}

// OptionalAuth returns middleware that attaches the doctor when a valid
// token is presented but lets anonymous requests through
func (mw *AuthMW) OptionalAuth() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc, mw.doctorRepo, true)
}
