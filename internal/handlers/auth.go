package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cleverai/api/internal/models"
	"cleverai/api/internal/service"
	"cleverai/api/internal/session"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Username string `json:"username" binding:"required,min=3"`
}

func (r *registerRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Username = strings.TrimSpace(r.Username)
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		respondError(c, http.StatusConflict, "Username is already taken")
		return
	case errors.Is(err, service.ErrEmailTaken):
		respondError(c, http.StatusConflict, "Email is already registered")
		return
	case err != nil:
		h.log.Error().Err(err).Msg("register user failed")
		respondError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    user.Public(),
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r *loginRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

type loginResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	User      models.PublicUser `json:"user"`
	SessionID string            `json:"sessionId"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		respondError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Success:   true,
		Message:   "Login successful",
		User:      result.User.Public(),
		SessionID: result.Session.Token,
		ExpiresAt: result.Session.ExpiresAt.UTC(),
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), sess.Token); err != nil {
		h.log.Error().Err(err).Int64("user_id", sess.UserID).Msg("logout failed")
		respondError(c, http.StatusInternalServerError, "Failed to log out")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h HandlerSet) Me(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	user, err := h.authService.WhoAmI(c.Request.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error().Err(err).Int64("user_id", sess.UserID).Msg("get current user failed")
		respondError(c, http.StatusInternalServerError, "Failed to get user information")
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// currentSession writes a 401 when the auth middleware did not run.
func currentSession(c *gin.Context) (session.Session, bool) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return session.Session{}, false
	}
	return sess, true
}
