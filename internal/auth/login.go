package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Sign-in failures the client is expected to distinguish. Everything else is
// surfaced as a generic failure.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("too many failed attempts")
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com"

// LoginClient signs in email+password users against the Identity Toolkit
// REST API. The Admin SDK cannot do this; it only verifies tokens.
type LoginClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// Session is the token bundle returned on a successful sign-in.
type Session struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

func NewLoginClient(apiKey string) *LoginClient {
	return &LoginClient{
		baseURL: identityToolkitURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	Error        struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn exchanges credentials for a token bundle.
func (c *LoginClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	reqURL := c.baseURL + "/v1/accounts:signInWithPassword?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sign-in request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode sign-in response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, mapSignInError(parsed.Error.Message)
	}

	return &Session{
		UID:          parsed.LocalID,
		Email:        parsed.Email,
		IDToken:      parsed.IDToken,
		RefreshToken: parsed.RefreshToken,
		ExpiresIn:    parsed.ExpiresIn,
	}, nil
}

// mapSignInError collapses the provider's error codes into the two cases the
// login view distinguishes. Wrong-password and unknown-email map to the same
// message so the form does not leak which accounts exist.
func mapSignInError(code string) error {
	switch {
	case code == "EMAIL_NOT_FOUND", code == "INVALID_PASSWORD", code == "INVALID_LOGIN_CREDENTIALS":
		return ErrInvalidCredentials
	case strings.HasPrefix(code, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return ErrTooManyAttempts
	default:
		return fmt.Errorf("sign-in failed: %s", code)
	}
}
