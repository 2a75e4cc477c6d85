package service

import (
	"context"
	"fmt"

	"github.com/devfolio/portfolio-backend/internal/projects/domain"
)

// ValidationError is a client-side, pre-submission failure. Handlers map it
// to a 400; everything else on the save path is a remote write failure.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Form is one project editor submission. TechStack arrives as the raw
// comma-separated input; an empty ID means "create new".
type Form struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Tagline             string `json:"tagline"`
	Topic               string `json:"topic"`
	MarkdownDescription string `json:"markdownDescription"`
	ImageURL            string `json:"imageUrl"`
	GitLink             string `json:"gitLink"`
	PDFReportLink       string `json:"pdfReportLink"`
	TechStack           string `json:"techStack"`
	Featured            bool   `json:"featured"`
	Order               int    `json:"order"`
}

// SaveResult reports a successful save. Notice carries the non-blocking
// duplicate-tag message when normalization removed entries.
type SaveResult struct {
	ID      string `json:"id"`
	Created bool   `json:"created"`
	Notice  string `json:"notice,omitempty"`
}

// Editor validates and normalizes a project form before delegating to the
// sync service.
type Editor struct {
	sync *SyncService
}

func NewEditor(sync *SyncService) *Editor {
	return &Editor{sync: sync}
}

// Submit runs the form through validation, failing closed on the first
// malformed link, then normalizes the tech stack and dispatches to update
// (id present) or create. A RemoteWriteError passes through untouched so
// the caller can keep the form populated for retry.
func (e *Editor) Submit(ctx context.Context, form Form) (*SaveResult, error) {
	if form.GitLink != "" && !domain.ValidLink(form.GitLink) {
		return nil, &ValidationError{Msg: "git link must start with http:// or https://"}
	}
	if form.ImageURL != "" && !domain.ValidLink(form.ImageURL) {
		return nil, &ValidationError{Msg: "image URL must start with http:// or https://"}
	}
	if form.PDFReportLink != "" && !domain.ValidLink(form.PDFReportLink) {
		return nil, &ValidationError{Msg: "PDF report link must start with http:// or https://"}
	}

	techStack, removed := domain.NormalizeTechStack(form.TechStack)

	draft := domain.Draft{
		Title:               form.Title,
		Description:         form.Description,
		Tagline:             form.Tagline,
		Topic:               form.Topic,
		MarkdownDescription: form.MarkdownDescription,
		ImageURL:            form.ImageURL,
		GitLink:             form.GitLink,
		PDFReportLink:       form.PDFReportLink,
		TechStack:           techStack,
		Featured:            form.Featured,
		Order:               form.Order,
	}
	if err := draft.Validate(); err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	result := &SaveResult{}
	if removed > 0 {
		result.Notice = fmt.Sprintf("removed %d duplicate tag(s)", removed)
	}

	if form.ID != "" {
		// Edit mode: full replace of the listed fields.
		if err := e.sync.Update(ctx, form.ID, draftFields(draft)); err != nil {
			return nil, err
		}
		result.ID = form.ID
		return result, nil
	}

	id, err := e.sync.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	result.ID = id
	result.Created = true
	return result, nil
}

func draftFields(d domain.Draft) map[string]any {
	return map[string]any{
		"title":               d.Title,
		"description":         d.Description,
		"tagline":             d.Tagline,
		"topic":               d.Topic,
		"markdownDescription": d.MarkdownDescription,
		"imageUrl":            d.ImageURL,
		"gitLink":             d.GitLink,
		"pdfReportLink":       d.PDFReportLink,
		"techStack":           d.TechStack,
		"featured":            d.Featured,
		"order":               d.Order,
	}
}
