package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/devfolio/portfolio-backend/internal/projects/service"
)

// Scheduler re-warms the project cache every 12 hours, matching the cache
// TTL so anonymous traffic rarely has to open its own live subscription.
type Scheduler struct {
	svc *service.SyncService
	c   *cron.Cron
}

func NewScheduler(svc *service.SyncService) *Scheduler {
	return &Scheduler{svc: svc}
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	s.c = cron.New(cron.WithSeconds())

	// Every 12 hours (12:00 AM and 12:00 PM)
	_, err := s.c.AddFunc("0 0 0,12 * * *", func() {
		s.refreshProjects()
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (project cache refresh every 12 hours)")
	s.c.Start()
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.c == nil {
		return
	}
	<-s.c.Stop().Done()
}

func (s *Scheduler) refreshProjects() {
	log.Println("Project cache refresh started...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	projects, err := s.svc.Refresh(ctx)
	if err != nil {
		log.Printf("Project cache refresh failed: %v", err)
		return
	}

	log.Printf("Project cache refresh completed: %d projects at %s", len(projects), time.Now().Format(time.RFC1123))
}
