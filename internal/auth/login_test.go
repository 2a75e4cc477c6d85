package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoginClient(t *testing.T, handler http.HandlerFunc) *LoginClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewLoginClient("test-key")
	c.baseURL = srv.URL
	return c
}

func signInFailure(code string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": code}})
	}
}

func TestSignInSuccess(t *testing.T) {
	c := newTestLoginClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:signInWithPassword", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@example.com", req["email"])
		assert.Equal(t, true, req["returnSecureToken"])

		json.NewEncoder(w).Encode(map[string]any{
			"localId":      "uid-1",
			"email":        "admin@example.com",
			"idToken":      "id-token",
			"refreshToken": "refresh-token",
			"expiresIn":    "3600",
		})
	})

	session, err := c.SignIn(context.Background(), "admin@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", session.UID)
	assert.Equal(t, "id-token", session.IDToken)
	assert.Equal(t, "3600", session.ExpiresIn)
}

func TestSignInErrorMapping(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"EMAIL_NOT_FOUND", ErrInvalidCredentials},
		{"INVALID_PASSWORD", ErrInvalidCredentials},
		{"INVALID_LOGIN_CREDENTIALS", ErrInvalidCredentials},
		{"TOO_MANY_ATTEMPTS_TRY_LATER", ErrTooManyAttempts},
		{"TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account has been temporarily disabled", ErrTooManyAttempts},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			c := newTestLoginClient(t, signInFailure(tc.code))
			_, err := c.SignIn(context.Background(), "admin@example.com", "bad")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSignInUnknownErrorIsGeneric(t *testing.T) {
	c := newTestLoginClient(t, signInFailure("USER_DISABLED"))
	_, err := c.SignIn(context.Background(), "admin@example.com", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrTooManyAttempts)
	assert.Contains(t, err.Error(), "USER_DISABLED")
}
