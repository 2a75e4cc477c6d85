package http

import (
	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	portfolioauth "github.com/devfolio/portfolio-backend/internal/auth"
)

type Handler struct {
	login      *portfolioauth.LoginClient
	authClient *auth.Client
}

func NewHandler(login *portfolioauth.LoginClient, authClient *auth.Client) *Handler {
	return &Handler{login: login, authClient: authClient}
}

// RegisterPublic attaches the sign-in route; it must sit outside the auth
// middleware since callers have no token yet.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

// RegisterProtected attaches the routes that need a verified session.
func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.GET("/auth/session", h.Session)
	rg.POST("/auth/logout", h.Logout)
}
