package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultIdentityURL is the Identity Toolkit REST base.
const DefaultIdentityURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseProvider signs in anonymously through the Identity Toolkit
// accounts:signUp endpoint.
type FirebaseProvider struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewFirebaseProvider returns a provider for the given web API key.
func NewFirebaseProvider(apiKey string) *FirebaseProvider {
	return &FirebaseProvider{APIKey: apiKey, BaseURL: DefaultIdentityURL}
}

type signUpResponse struct {
	LocalID string `json:"localId"`
	IDToken string `json:"idToken"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignInAnonymously creates an anonymous account and returns its localId.
func (p *FirebaseProvider) SignInAnonymously(ctx context.Context) (string, error) {
	base := strings.TrimRight(p.BaseURL, "/")
	if base == "" {
		base = DefaultIdentityURL
	}
	endpoint := base + "/accounts:signUp?key=" + url.QueryEscape(p.APIKey)

	body, _ := json.Marshal(map[string]any{"returnSecureToken": true})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := p.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", errors.New(strings.ReplaceAll(err.Error(), p.APIKey, "REDACTED"))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read sign-up response: %w", err)
	}

	var out signUpResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode sign-up response (status %d): %w", resp.StatusCode, err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("sign-up failed (%d): %s", out.Error.Code, out.Error.Message)
	}
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("sign-up failed: status %d", resp.StatusCode)
	}
	if out.LocalID == "" {
		return "", errors.New("sign-up response has no localId")
	}
	return out.LocalID, nil
}
