package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/themobileprof/portfolio-concierge/internal/api/middleware"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues admin tokens. The site owner is the only account; its
// bcrypt hash comes from configuration.
type AuthHandler struct {
	passwordHash []byte
	jwtSecret    string
	tokenTTL     time.Duration
	now          func() time.Time
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(passwordHash, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &AuthHandler{
		passwordHash: []byte(passwordHash),
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		now:          time.Now,
	}
}

// LoginRequest represents the login request
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles admin login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)); err != nil {
		logger := middleware.GetLogger(c)
		logger.Warn().Str("client_ip", c.ClientIP()).Msg("admin login failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, expires, err := middleware.IssueToken(h.jwtSecret, h.tokenTTL, h.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:     token,
		ExpiresAt: expires.UTC(),
	})
}

// HashPassword returns a bcrypt hash suitable for the admin password setting
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
