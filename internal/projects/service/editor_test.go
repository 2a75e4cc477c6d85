package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfolio/portfolio-backend/internal/projects/domain"
	"github.com/devfolio/portfolio-backend/internal/projects/service"
)

func validForm() service.Form {
	return service.Form{
		Title:       "Demo",
		Description: "A demo project",
		ImageURL:    "https://x/y.png",
		TechStack:   "Go, Redis",
	}
}

func TestSubmitRejectsMalformedLinksInOrder(t *testing.T) {
	svc, _, _ := setup(t)
	editor := service.NewEditor(svc)
	ctx := context.Background()

	form := validForm()
	form.GitLink = "github.com/x"
	form.ImageURL = "not-a-url"
	_, err := editor.Submit(ctx, form)
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "git link must start with http:// or https://", verr.Msg,
		"git link is checked first")

	form = validForm()
	form.ImageURL = "not-a-url"
	_, err = editor.Submit(ctx, form)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Msg, "image URL")

	form = validForm()
	form.PDFReportLink = "ftp://x"
	_, err = editor.Submit(ctx, form)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Msg, "PDF report link")
}

func TestSubmitCreateEndToEnd(t *testing.T) {
	svc, store, _ := setup(t)
	editor := service.NewEditor(svc)
	ctx := context.Background()

	form := validForm()
	form.TechStack = "A, a, B"
	result, err := editor.Submit(ctx, form)
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "removed 1 duplicate tag(s)", result.Notice)

	stored, err := store.Get(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, stored.TechStack)
	assert.False(t, stored.LastUpdated.IsZero())
}

func TestSubmitWithoutDuplicatesHasNoNotice(t *testing.T) {
	svc, _, _ := setup(t)
	editor := service.NewEditor(svc)

	result, err := editor.Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.Empty(t, result.Notice)
}

func TestSubmitUpdateDispatch(t *testing.T) {
	svc, store, _ := setup(t)
	editor := service.NewEditor(svc)
	ctx := context.Background()

	created, err := editor.Submit(ctx, validForm())
	require.NoError(t, err)

	form := validForm()
	form.ID = created.ID
	form.Title = "Renamed"
	result, err := editor.Submit(ctx, form)
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, created.ID, result.ID)

	stored, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
}

func TestSubmitRemoteFailurePassesThrough(t *testing.T) {
	svc, store, _ := setup(t)
	editor := service.NewEditor(svc)
	store.writeErr = errors.New("network down")

	_, err := editor.Submit(context.Background(), validForm())
	assert.True(t, domain.IsRemoteWrite(err),
		"remote failures must stay distinguishable so the form survives for retry")
}

func TestSubmitRequiredFields(t *testing.T) {
	svc, _, _ := setup(t)
	editor := service.NewEditor(svc)

	form := validForm()
	form.Title = ""
	_, err := editor.Submit(context.Background(), form)
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Msg, "title")
}
