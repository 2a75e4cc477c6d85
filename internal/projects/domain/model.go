package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const MaxMarkdownLength = 2500

// Project is a single portfolio entry. The Firestore collection is the
// single source of truth; the Redis cache and any in-memory copies are
// disposable read replicas.
type Project struct {
	ID                  string    `json:"id" firestore:"-"`
	Title               string    `json:"title" firestore:"title"`
	Description         string    `json:"description" firestore:"description"`
	Tagline             string    `json:"tagline,omitempty" firestore:"tagline"`
	Topic               string    `json:"topic,omitempty" firestore:"topic"`
	MarkdownDescription string    `json:"markdownDescription,omitempty" firestore:"markdownDescription"`
	ImageURL            string    `json:"imageUrl" firestore:"imageUrl"`
	GitLink             string    `json:"gitLink,omitempty" firestore:"gitLink"`
	PDFReportLink       string    `json:"pdfReportLink,omitempty" firestore:"pdfReportLink"`
	TechStack           []string  `json:"techStack" firestore:"techStack"`
	Featured            bool      `json:"featured" firestore:"featured"`
	Order               int       `json:"order" firestore:"order"`
	LastUpdated         time.Time `json:"lastUpdated" firestore:"lastUpdated"`
}

// Draft is the writable subset of Project: everything except the
// store-assigned id and server-assigned timestamp.
type Draft struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Tagline             string   `json:"tagline"`
	Topic               string   `json:"topic"`
	MarkdownDescription string   `json:"markdownDescription"`
	ImageURL            string   `json:"imageUrl"`
	GitLink             string   `json:"gitLink"`
	PDFReportLink       string   `json:"pdfReportLink"`
	TechStack           []string `json:"techStack"`
	Featured            bool     `json:"featured"`
	Order               int      `json:"order"`
}

// ValidLink reports whether s is an absolute http or https URL.
func ValidLink(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Validate checks the draft invariants at the write boundary.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if d.ImageURL == "" {
		return fmt.Errorf("image URL is required")
	}
	if !ValidLink(d.ImageURL) {
		return fmt.Errorf("image URL must start with http:// or https://")
	}
	if d.GitLink != "" && !ValidLink(d.GitLink) {
		return fmt.Errorf("git link must start with http:// or https://")
	}
	if d.PDFReportLink != "" && !ValidLink(d.PDFReportLink) {
		return fmt.Errorf("PDF report link must start with http:// or https://")
	}
	if len(d.MarkdownDescription) > MaxMarkdownLength {
		return fmt.Errorf("markdown description exceeds %d characters", MaxMarkdownLength)
	}
	seen := make(map[string]struct{}, len(d.TechStack))
	for _, tech := range d.TechStack {
		key := strings.ToLower(tech)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("tech stack contains duplicate entry %q", tech)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// NormalizeTechStack splits a comma-separated tag string, trims whitespace,
// drops empty tokens and removes case-insensitive duplicates keeping the
// first occurrence's casing. It returns the normalized list and the number
// of duplicates removed. Normalizing an already-normalized list is a no-op.
func NormalizeTechStack(raw string) ([]string, int) {
	tokens := strings.Split(raw, ",")
	cleaned := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}

	seen := make(map[string]struct{}, len(cleaned))
	unique := make([]string, 0, len(cleaned))
	for _, t := range cleaned {
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, t)
	}

	return unique, len(cleaned) - len(unique)
}

// Sort orders projects the way the remote query does: order descending,
// then lastUpdated descending.
func Sort(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].Order != projects[j].Order {
			return projects[i].Order > projects[j].Order
		}
		return projects[i].LastUpdated.After(projects[j].LastUpdated)
	})
}
