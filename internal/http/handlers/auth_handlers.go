package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/medbooksvc/domain"
	"github.com/you/medbooksvc/internal/http/middleware"
)

// AuthHandlers handles doctor registration, authentication, profile and
// password management requests
type AuthHandlers struct {
	authSvc  domain.AuthService
	resetSvc domain.PasswordResetService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, resetSvc domain.PasswordResetService) *AuthHandlers {
	return &AuthHandlers{
		authSvc:  authSvc,
		resetSvc: resetSvc,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	FirstName      string `json:"first_name" binding:"required,max=100"`
	LastName       string `json:"last_name" binding:"required,max=100"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Specialization string `json:"specialization" binding:"required"`
	LicenseNumber  string `json:"license_number" binding:"required,max=64"`
	Hospital       string `json:"hospital" binding:"required,max=255"`
	Phone          string `json:"phone" binding:"required,max=32"`
}

// VerifyAccountRequest represents account verification token consumption
type VerifyAccountRequest struct {
	Token string `json:"token" binding:"required"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a whitelisted profile update
type UpdateProfileRequest struct {
	FirstName      *string `json:"first_name,omitempty" binding:"omitempty,max=100"`
	LastName       *string `json:"last_name,omitempty" binding:"omitempty,max=100"`
	Specialization *string `json:"specialization,omitempty"`
	Hospital       *string `json:"hospital,omitempty" binding:"omitempty,max=255"`
	Phone          *string `json:"phone,omitempty" binding:"omitempty,max=32"`
}

// ChangePasswordRequest represents password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// ForgotPasswordRequest represents a reset request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents reset token consumption
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// resetRequestedMessage is deliberately identical whether or not the email
// exists, to prevent account enumeration.
const resetRequestedMessage = "If an account exists for that email, a reset link has been sent"

// Register handles doctor registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
		Hospital:       req.Hospital,
		Phone:          req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			respondError(c, http.StatusBadRequest, "Email is already registered")
		case errors.Is(err, domain.ErrLicenseTaken):
			respondError(c, http.StatusBadRequest, "License number is already registered")
		case errors.Is(err, domain.ErrInvalidSpecialization):
			respondError(c, http.StatusBadRequest, "Unknown specialization")
		case errors.Is(err, domain.ErrPasswordTooShort):
			respondError(c, http.StatusBadRequest, domain.ErrPasswordTooShort.Error())
		default:
			respondError(c, http.StatusInternalServerError, "Failed to register")
		}
		return
	}

	respondOK(c, http.StatusCreated, "Registered successfully", gin.H{
		"token":      result.Token,
		"expires_in": result.ExpiresIn,
		"doctor":     result.Doctor.View(),
	})
}

// VerifyAccount consumes the verification token mailed on registration
// and lists the doctor in the public directory
func (h *AuthHandlers) VerifyAccount(c *gin.Context) {
	var req VerifyAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	if err := h.authSvc.VerifyAccount(c.Request.Context(), req.Token); err != nil {
		if errors.Is(err, domain.ErrVerificationTokenInvalid) {
			respondError(c, http.StatusBadRequest, "Invalid verification token")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to verify account")
		return
	}

	respondOK(c, http.StatusOK, "Account verified", nil)
}

// Login handles doctor login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, domain.ErrAccountDeactivated):
			respondError(c, http.StatusUnauthorized, "Account deactivated")
		default:
			respondError(c, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	respondOK(c, http.StatusOK, "Logged in successfully", gin.H{
		"token":      result.Token,
		"expires_in": result.ExpiresIn,
		"doctor":     result.Doctor.View(),
	})
}

// Profile returns the authenticated doctor's profile
func (h *AuthHandlers) Profile(c *gin.Context) {
	doctor, ok := middleware.DoctorFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	respondOK(c, http.StatusOK, "Profile retrieved", gin.H{"doctor": doctor.View()})
}

// UpdateProfile applies a whitelisted update to the authenticated doctor
func (h *AuthHandlers) UpdateProfile(c *gin.Context) {
	doctor, ok := middleware.DoctorFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	updated, err := h.authSvc.UpdateProfile(c.Request.Context(), doctor.ID, domain.ProfileUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Specialization: req.Specialization,
		Hospital:       req.Hospital,
		Phone:          req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSpecialization):
			respondError(c, http.StatusBadRequest, "Unknown specialization")
		case errors.Is(err, domain.ErrDoctorNotFound):
			respondError(c, http.StatusUnauthorized, "Account no longer exists")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	respondOK(c, http.StatusOK, "Profile updated", gin.H{"doctor": updated.View()})
}

// ChangePassword replaces the authenticated doctor's password
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	doctor, ok := middleware.DoctorFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	err := h.authSvc.ChangePassword(c.Request.Context(), doctor.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWrongPassword):
			respondError(c, http.StatusUnauthorized, "Current password is incorrect")
		case errors.Is(err, domain.ErrPasswordTooShort):
			respondError(c, http.StatusBadRequest, domain.ErrPasswordTooShort.Error())
		default:
			respondError(c, http.StatusInternalServerError, "Failed to change password")
		}
		return
	}

	respondOK(c, http.StatusOK, "Password changed", nil)
}

// ForgotPassword starts the reset flow
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	if err := h.resetSvc.Request(c.Request.Context(), req.Email); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to send reset email")
		return
	}

	respondOK(c, http.StatusOK, resetRequestedMessage, nil)
}

// ResetPassword consumes a reset token
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	err := h.resetSvc.Reset(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrResetTokenInvalid):
			respondError(c, http.StatusBadRequest, "Invalid or expired token")
		case errors.Is(err, domain.ErrPasswordTooShort):
			respondError(c, http.StatusBadRequest, domain.ErrPasswordTooShort.Error())
		default:
			respondError(c, http.StatusInternalServerError, "Failed to reset password")
		}
		return
	}

	respondOK(c, http.StatusOK, "Password has been reset", nil)
}
