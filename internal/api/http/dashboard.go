package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/portfolio-backend/internal/contact"
	"github.com/devfolio/portfolio-backend/internal/projects/domain"
)

type projectLister interface {
	List(ctx context.Context, forceRefresh bool) ([]domain.Project, error)
}

// DashboardHandler serves the admin landing view: summary counts of
// projects and contact submissions.
type DashboardHandler struct {
	projects projectLister
	inbox    contact.Inbox
}

func NewDashboardHandler(projects projectLister, inbox contact.Inbox) *DashboardHandler {
	return &DashboardHandler{projects: projects, inbox: inbox}
}

func (h *DashboardHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.summary)
}

func (h *DashboardHandler) summary(c *gin.Context) {
	ctx := c.Request.Context()

	projects, err := h.projects.List(ctx, false)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to load projects"})
		return
	}

	submissions, err := h.inbox.List(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to load submissions"})
		return
	}

	featured := 0
	for _, p := range projects {
		if p.Featured {
			featured++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"projects": gin.H{
			"total":    len(projects),
			"featured": featured,
		},
		"submissions": gin.H{
			"total": len(submissions),
		},
	})
}
