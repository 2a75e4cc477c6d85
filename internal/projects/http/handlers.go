package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/portfolio-backend/internal/carousel"
	"github.com/devfolio/portfolio-backend/internal/projects/domain"
	"github.com/devfolio/portfolio-backend/internal/projects/service"
)

func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		projects []domain.Project
		err      error
	)
	if c.Query("refresh") == "true" {
		// manual refresh: bounded live fetch, see SyncService.Refresh
		projects, err = h.svc.Refresh(ctx)
	} else {
		projects, err = h.svc.List(ctx, false)
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to load projects"})
		return
	}

	payload := gin.H{"ok": true, "projects": projects, "total": len(projects)}

	// Optional carousel windowing: ?viewport=<px>&page=<n> returns only the
	// visible page plus the navigation state the client needs.
	if viewportStr := c.Query("viewport"); viewportStr != "" {
		viewport, err := strconv.Atoi(viewportStr)
		if err != nil || viewport <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid viewport"})
			return
		}
		page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))

		window := carousel.New(len(projects), carousel.CardsPerView(viewport))
		window.GotoPage(page)
		start, end := window.Window()

		payload["projects"] = projects[start:end]
		payload["index"] = window.Index()
		payload["max_index"] = window.MaxIndex()
		payload["cards_per_view"] = carousel.CardsPerView(viewport)
		payload["controls"] = window.ShowControls()
	}

	c.JSON(http.StatusOK, payload)
}

func (h *Handler) get(c *gin.Context) {
	project, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to load project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": project})
}

// stream pushes the live project list over Server-Sent Events. With a fresh
// cache and no ?refresh=true the single cached snapshot is emitted and no
// remote subscription is opened; the connection then idles on keep-alives.
func (h *Handler) stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	ctx := c.Request.Context()
	updates := make(chan []domain.Project, 8)

	cancel, err := h.svc.Subscribe(ctx, func(projects []domain.Project) {
		select {
		case updates <- projects:
		default:
			log.Printf("[projects] dropping stream update, slow consumer")
		}
	}, c.Query("refresh") == "true")
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
		case projects := <-updates:
			data, err := json.Marshal(gin.H{"projects": projects, "total": len(projects)})
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "event: projects\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (h *Handler) create(c *gin.Context) {
	var form service.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	form.ID = ""

	result, err := h.editor.Submit(c.Request.Context(), form)
	if err != nil {
		h.saveError(c, err, form)
		return
	}
	c.JSON(http.StatusCreated, saveResponse(result))
}

func (h *Handler) update(c *gin.Context) {
	var form service.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	form.ID = c.Param("id")

	result, err := h.editor.Submit(c.Request.Context(), form)
	if err != nil {
		h.saveError(c, err, form)
		return
	}
	c.JSON(http.StatusOK, saveResponse(result))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to delete project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// saveError splits the two failure families of the editor: validation is a
// 400 with its specific message, a remote rejection is a generic save
// failure that echoes the form so nothing the admin typed is lost.
func (h *Handler) saveError(c *gin.Context, err error, form service.Form) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": verr.Msg})
		return
	}
	log.Printf("[projects] save failed: %v", err)
	c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to save project", "form": form})
}

func saveResponse(result *service.SaveResult) gin.H {
	resp := gin.H{"ok": true, "id": result.ID, "created": result.Created}
	if result.Notice != "" {
		resp["notice"] = result.Notice
	}
	return resp
}
