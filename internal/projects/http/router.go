package http

import (
	"github.com/gin-gonic/gin"

	"github.com/devfolio/portfolio-backend/internal/projects/service"
)

type Handler struct {
	svc    *service.SyncService
	editor *service.Editor
}

func New(svc *service.SyncService) *Handler {
	return &Handler{svc: svc, editor: service.NewEditor(svc)}
}

// RegisterPublic attaches the read-only project routes.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/stream", h.stream)
	rg.GET("/:id", h.get)
}

// RegisterAdmin attaches the authenticated write routes.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
