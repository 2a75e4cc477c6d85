package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Inbox is the submission store surface the handlers need; the Firestore
// Repo satisfies it, tests use a fake.
type Inbox interface {
	Create(ctx context.Context, draft Draft) (string, error)
	List(ctx context.Context) ([]Submission, error)
	Listen(ctx context.Context, onUpdate func([]Submission)) (func(), error)
}

type Handler struct {
	inbox Inbox
}

func NewHandler(inbox Inbox) *Handler {
	return &Handler{inbox: inbox}
}

// RegisterPublic attaches the visitor-facing submit route.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.POST("/contact", RateLimit(), h.submit)
}

// RegisterAdmin attaches the inbox routes.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/submissions", h.list)
	rg.GET("/submissions/stream", h.stream)
}

func (h *Handler) submit(c *gin.Context) {
	var draft Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if err := draft.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	id, err := h.inbox.Create(c.Request.Context(), draft)
	if err != nil {
		log.Printf("[contact] submit failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to send message"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": id})
}

func (h *Handler) list(c *gin.Context) {
	submissions, err := h.inbox.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to load submissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "submissions": submissions, "total": len(submissions)})
}

func (h *Handler) stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	ctx := c.Request.Context()
	updates := make(chan []Submission, 8)

	cancel, err := h.inbox.Listen(ctx, func(submissions []Submission) {
		select {
		case updates <- submissions:
		default:
			log.Printf("[contact] dropping stream update, slow consumer")
		}
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to subscribe"})
		return
	}
	defer cancel()

	keepAlive := time.NewTicker(15 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-keepAlive.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()
		case submissions := <-updates:
			data, err := json.Marshal(gin.H{"submissions": submissions, "total": len(submissions)})
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "event: submissions\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
