package storage

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 10 MB is plenty for a project card image.
const maxUploadBytes = 10 << 20

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// Handler exposes the admin image-upload endpoint. When no bucket is
// configured the route answers 404, keeping the rest of the editor usable
// with externally hosted image URLs.
type Handler struct {
	uploader Uploader
}

func NewHandler(uploader Uploader) *Handler {
	return &Handler{uploader: uploader}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "uploads are not configured"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file field is required"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unsupported image type"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := "projects/" + uuid.NewString() + ext
	url, err := h.uploader.Upload(c.Request.Context(), key, contentType, file)
	if err != nil {
		log.Printf("[storage] upload failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to upload image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "url": url, "key": key})
}
