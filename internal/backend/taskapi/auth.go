package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"taskdeck/internal/config"
	"taskdeck/internal/service"
)

// AuthClient implements service.Authenticator against the task API.
// Signup and login are the only unauthenticated calls; no token is attached.
type AuthClient struct {
	baseURL string
	http    *http.Client
}

// NewAuthClient creates an auth adapter for the configured API.
func NewAuthClient(cfg *config.Config) *AuthClient {
	return &AuthClient{
		baseURL: cfg.APIURL,
		http:    &http.Client{Timeout: APITimeout},
	}
}

// NewAuthClientWithHTTPClient creates an auth adapter with a custom HTTP
// client (for testing).
func NewAuthClientWithHTTPClient(cfg *config.Config, httpClient *http.Client) *AuthClient {
	return &AuthClient{baseURL: cfg.APIURL, http: httpClient}
}

// Signup implements service.Authenticator.
func (a *AuthClient) Signup(ctx context.Context, req service.SignupRequest) (string, error) {
	body := map[string]string{
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"username":  req.Username,
		"password":  req.Password,
	}
	return a.requestToken(ctx, "/signup", body)
}

// Login implements service.Authenticator.
func (a *AuthClient) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}
	return a.requestToken(ctx, "/login", body)
}

// requestToken posts credentials and extracts the token from the response.
// A body with an "error" field is a domain error; a token-less success body
// is treated as a malformed response.
func (a *AuthClient) requestToken(ctx context.Context, path string, body map[string]string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", wrapError(fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var env struct {
		Token string `json:"token"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(respBody, &env); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if env.Error != "" {
		return "", &service.DomainError{Message: env.Error}
	}
	if env.Token == "" {
		return "", fmt.Errorf("response missing token")
	}
	return env.Token, nil
}
