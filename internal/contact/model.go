package contact

import (
	"fmt"
	"strings"
	"time"
)

// Submission is one visitor inquiry. The public side can only create;
// the admin dashboard reads the inbox. There is no update or delete path:
// the collection is an append-only log.
type Submission struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Message   string    `json:"message" firestore:"message"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

// Draft is the visitor-supplied part of a submission.
type Draft struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(d.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if strings.TrimSpace(d.Message) == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}
