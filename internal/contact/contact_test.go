package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInbox struct {
	submissions []Submission
	createErr   error
}

func (f *fakeInbox) Create(_ context.Context, draft Draft) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	id := "sub-1"
	f.submissions = append([]Submission{{ID: id, Name: draft.Name, Email: draft.Email, Message: draft.Message}}, f.submissions...)
	return id, nil
}

func (f *fakeInbox) List(_ context.Context) ([]Submission, error) {
	return f.submissions, nil
}

func (f *fakeInbox) Listen(_ context.Context, onUpdate func([]Submission)) (func(), error) {
	onUpdate(f.submissions)
	return func() {}, nil
}

func newTestRouter(inbox Inbox) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(inbox)
	public := r.Group("/api/v1")
	h.RegisterPublic(public)
	admin := r.Group("/api/v1/admin")
	h.RegisterAdmin(admin)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDraftValidate(t *testing.T) {
	valid := Draft{Name: "Ada", Email: "ada@example.com", Message: "hello"}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name  string
		draft Draft
		want  string
	}{
		{"missing name", Draft{Email: "a@b.c", Message: "hi"}, "name is required"},
		{"missing email", Draft{Name: "Ada", Message: "hi"}, "email is required"},
		{"missing message", Draft{Name: "Ada", Email: "a@b.c"}, "message is required"},
		{"whitespace only", Draft{Name: "  ", Email: "a@b.c", Message: "hi"}, "name is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestSubmitCreatesSubmission(t *testing.T) {
	inbox := &fakeInbox{}
	r := newTestRouter(inbox)

	w := postJSON(t, r, "/api/v1/contact", Draft{Name: "Ada", Email: "ada@example.com", Message: "hello there"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["ok"])
	assert.Equal(t, "sub-1", resp["id"])
	require.Len(t, inbox.submissions, 1)
	assert.Equal(t, "Ada", inbox.submissions[0].Name)
}

func TestSubmitRejectsInvalidDraft(t *testing.T) {
	inbox := &fakeInbox{}
	r := newTestRouter(inbox)

	w := postJSON(t, r, "/api/v1/contact", Draft{Name: "Ada", Email: "ada@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "message is required", resp["error"])
	assert.Empty(t, inbox.submissions)
}

func TestSubmitRemoteFailure(t *testing.T) {
	inbox := &fakeInbox{createErr: errors.New("firestore down")}
	r := newTestRouter(inbox)

	w := postJSON(t, r, "/api/v1/contact", Draft{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "failed to send message", resp["error"])
}

func TestAdminListReturnsInbox(t *testing.T) {
	inbox := &fakeInbox{submissions: []Submission{
		{ID: "b", Name: "Bob"},
		{ID: "a", Name: "Alice"},
	}}
	r := newTestRouter(inbox)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/submissions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK          bool         `json:"ok"`
		Submissions []Submission `json:"submissions"`
		Total       int          `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "b", resp.Submissions[0].ID)
}

func TestRateLimitBlocksBursts(t *testing.T) {
	limiter := newIPLimiter()

	// Burst of 3 is allowed, the fourth immediate request is not.
	for i := 0; i < submissionBurst; i++ {
		assert.True(t, limiter.allow("10.0.0.1"), "request %d should pass", i)
	}
	assert.False(t, limiter.allow("10.0.0.1"))

	// A different IP has its own bucket.
	assert.True(t, limiter.allow("10.0.0.2"))
}

func TestRateLimitMiddlewareResponds429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/contact", RateLimit(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	var last *httptest.ResponseRecorder
	for i := 0; i < submissionBurst+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		last = httptest.NewRecorder()
		r.ServeHTTP(last, req)
	}
	require.Equal(t, http.StatusTooManyRequests, last.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(last.Body.Bytes(), &resp))
	assert.Equal(t, "too many submissions, try again later", resp["error"])
}
