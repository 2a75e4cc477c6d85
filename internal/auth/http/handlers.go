package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioauth "github.com/devfolio/portfolio-backend/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login signs in with email+password and returns the token bundle the admin
// client stores for subsequent Bearer-authenticated calls.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email and password are required"})
		return
	}

	session, err := h.login.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, portfolioauth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Invalid email or password"})
		case errors.Is(err, portfolioauth.ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "Too many failed attempts. Please try again later"})
		default:
			log.Printf("[auth] sign-in failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "Login failed. Please try again"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "session": session})
}

// Session echoes the verified identity back to the client; reaching this
// handler at all means the middleware accepted the token.
func (h *Handler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"uid":   portfolioauth.SessionUID(c),
		"email": portfolioauth.SessionEmail(c),
	})
}

// Logout revokes the user's refresh tokens so existing sessions cannot mint
// new ID tokens. Already-issued ID tokens expire on their own within the
// hour.
func (h *Handler) Logout(c *gin.Context) {
	uid := portfolioauth.SessionUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "no active session"})
		return
	}

	if err := h.authClient.RevokeRefreshTokens(c.Request.Context(), uid); err != nil {
		log.Printf("[auth] revoke tokens for %s: %v", uid, err)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to sign out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
