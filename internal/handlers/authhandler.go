package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtrail/internal/auth"
	"jobtrail/internal/config"
	"jobtrail/internal/dtos"
)

type AuthHandler struct {
	Config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{Config: cfg}
}

// Login is POST /auth/login. On a correct passcode it sets the session
// cookie and also returns the token in the body so the extension can use it
// as a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passcode is required"})
		return
	}

	if !auth.VerifyPasscode(req.Passcode, h.Config.Passcode) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid passcode"})
		return
	}

	token, err := auth.CreateSession(h.Config.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.SetCookie(auth.CookieName, token, int(auth.SessionTTL.Seconds()), "/", "", h.Config.SecureCookies(), true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.Config.SecureCookies(), true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session is GET /auth/session - lets the dashboard check login state.
func (h *AuthHandler) Session(c *gin.Context) {
	token, err := c.Cookie(auth.CookieName)
	authenticated := err == nil && token != "" && auth.VerifySession(token, h.Config.JWTSecret)
	c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
}
