package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	data *Data
}

func NewHandler(data *Data) *Handler {
	return &Handler{data: data}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/identity", h.get)
}

func (h *Handler) get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "identity": h.data})
}
