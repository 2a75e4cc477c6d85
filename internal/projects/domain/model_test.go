package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTechStack(t *testing.T) {
	tags, removed := NormalizeTechStack("Python, python , React,React")
	assert.Equal(t, []string{"Python", "React"}, tags)
	assert.Equal(t, 2, removed)
}

func TestNormalizeTechStackIdempotent(t *testing.T) {
	tags, removed := NormalizeTechStack("Go, Redis, Firestore")
	require.Equal(t, 0, removed)

	again, removed := NormalizeTechStack(join(tags))
	assert.Equal(t, tags, again)
	assert.Equal(t, 0, removed)
}

func join(tags []string) string {
	out := ""
	for i, tag := range tags {
		if i > 0 {
			out += ", "
		}
		out += tag
	}
	return out
}

func TestNormalizeTechStackDropsEmptyTokens(t *testing.T) {
	tags, removed := NormalizeTechStack(" , Go, , ,Go ,")
	assert.Equal(t, []string{"Go"}, tags)
	assert.Equal(t, 1, removed)
}

func TestValidLink(t *testing.T) {
	assert.True(t, ValidLink("https://x"))
	assert.True(t, ValidLink("http://x"))
	assert.False(t, ValidLink("ftp://x"))
	assert.False(t, ValidLink("x"))
	assert.False(t, ValidLink(""))
}

func validDraft() Draft {
	return Draft{
		Title:       "Demo",
		Description: "A demo project",
		ImageURL:    "https://x/y.png",
		TechStack:   []string{"Go", "Redis"},
	}
}

func TestDraftValidate(t *testing.T) {
	require.NoError(t, validDraft().Validate())

	d := validDraft()
	d.Title = "  "
	assert.ErrorContains(t, d.Validate(), "title")

	d = validDraft()
	d.ImageURL = ""
	assert.ErrorContains(t, d.Validate(), "image URL is required")

	d = validDraft()
	d.ImageURL = "ftp://x"
	assert.ErrorContains(t, d.Validate(), "http")

	d = validDraft()
	d.GitLink = "github.com/x"
	assert.ErrorContains(t, d.Validate(), "git link")

	// empty optional links are accepted as absent
	d = validDraft()
	d.GitLink = ""
	d.PDFReportLink = ""
	assert.NoError(t, d.Validate())

	d = validDraft()
	d.TechStack = []string{"Go", "go"}
	assert.ErrorContains(t, d.Validate(), "duplicate")

	d = validDraft()
	d.MarkdownDescription = string(make([]byte, MaxMarkdownLength+1))
	assert.ErrorContains(t, d.Validate(), "2500")
}

func TestSortOrdersByOrderThenLastUpdated(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	projects := []Project{
		{ID: "a", Order: 0, LastUpdated: base},
		{ID: "b", Order: 2, LastUpdated: base},
		{ID: "c", Order: 2, LastUpdated: base.Add(time.Hour)},
		{ID: "d", Order: 1, LastUpdated: base},
	}

	Sort(projects)

	ids := []string{projects[0].ID, projects[1].ID, projects[2].ID, projects[3].ID}
	assert.Equal(t, []string{"c", "b", "d", "a"}, ids)
}
