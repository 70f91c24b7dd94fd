// Package taskapi implements the service interfaces against the task REST API.
package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"taskdeck/internal/config"
	"taskdeck/internal/service"
)

// APITimeout is the timeout for API calls.
const APITimeout = 10 * time.Second

// Client implements service.Service against the task API.
// Requests carry the session token as a bearer Authorization header via the
// oauth2 transport.
type Client struct {
	baseURL string
	http    *http.Client
	cfg     *config.Config
}

// New creates an authenticated task API client for the given session token.
func New(ctx context.Context, cfg *config.Config, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})
	return &Client{
		baseURL: cfg.APIURL,
		http:    oauth2.NewClient(ctx, src),
		cfg:     cfg,
	}
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(cfg *config.Config, httpClient *http.Client) *Client {
	return &Client{baseURL: cfg.APIURL, http: httpClient, cfg: cfg}
}

// taskJSON is the wire representation of a task. The id field follows the
// backend's Mongo-style naming.
type taskJSON struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (t taskJSON) toTask() service.Task {
	return service.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
	}
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var body []taskJSON
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &body); err != nil {
		return nil, wrapError(err)
	}
	tasks := make([]service.Task, 0, len(body))
	for _, t := range body {
		tasks = append(tasks, t.toTask())
	}
	return tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, title, description, status string) (service.Task, error) {
	req := map[string]string{
		"title":       title,
		"description": description,
		"status":      status,
	}
	var body taskJSON
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &body); err != nil {
		return service.Task{}, wrapError(err)
	}
	return body.toTask(), nil
}

// UpdateTask implements service.Service. Only the fields set in patch are
// sent, so a status-only change stays a partial update on the wire.
func (c *Client) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	req := make(map[string]string)
	if patch.Title != nil {
		req["title"] = *patch.Title
	}
	if patch.Description != nil {
		req["description"] = *patch.Description
	}
	if patch.Status != nil {
		req["status"] = *patch.Status
	}
	var body taskJSON
	if err := c.do(ctx, http.MethodPut, "/tasks/"+id, req, &body); err != nil {
		return service.Task{}, wrapError(err)
	}
	return body.toTask(), nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil); err != nil {
		return wrapError(err)
	}
	return nil
}

// do executes one API request and decodes the JSON response.
//
// The API reports application failures in an "error" field of a JSON object
// body, at any HTTP status; those come back as *service.DomainError. A body
// that fails to parse as JSON is a transport failure, as is any network
// error. HTTP status is otherwise ignored.
func (c *Client) do(ctx context.Context, method, path string, reqBody, result any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var reader io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.cfg != nil && c.cfg.Debug {
		fmt.Fprintf(os.Stderr, "debug: %s %s\n", method, c.baseURL+path)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	return decodeBody(respBody, result)
}

// decodeBody interprets an API response body: a JSON object with a non-empty
// "error" field is a domain error, anything else is decoded into result.
func decodeBody(body []byte, result any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '{' {
		var env struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		if env.Error != "" {
			return &service.DomainError{Message: env.Error}
		}
	}

	if result == nil {
		// Still require a parseable body so non-JSON error pages surface
		// as transport failures.
		var discard any
		if err := json.Unmarshal(trimmed, &discard); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	if err := json.Unmarshal(trimmed, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// wrapError maps low-level failures to user-friendly messages.
// Domain errors pass through untouched.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := service.AsDomain(err); ok {
		return err
	}
	if strings.Contains(err.Error(), "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}
	return err
}
