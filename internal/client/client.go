// Package client is a typed HTTP client for the project board API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"project-board-api/internal/ai"
	"project-board-api/internal/models"
)

// DefaultBaseURL is the API root of a locally running server.
const DefaultBaseURL = "http://localhost:5000/api"

// APIError is a failure envelope returned by the server. Message is the
// text meant for end users.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	return e.Message
}

// ProjectUpdate carries the optional fields of a project update.
type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// NewTask is the payload of a task creation; an empty Status means "To Do".
type NewTask struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status,omitempty"`
}

// TaskUpdate carries the optional fields of a task update.
type TaskUpdate struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	Status      *models.TaskStatus `json:"status,omitempty"`
	Order       *int               `json:"order,omitempty"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// Client talks to the REST API rooted at baseURL (including the /api prefix).
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client. An empty baseURL means DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type failure struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type dataEnvelope[T any] struct {
	Data  T   `json:"data"`
	Count int `json:"count"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var f failure
	_ = json.Unmarshal(raw, &f)
	if resp.StatusCode >= http.StatusBadRequest || (f.Success != nil && !*f.Success) {
		msg := f.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg, Detail: f.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func data[T any](ctx context.Context, c *Client, method, path string, in any) (T, error) {
	var env dataEnvelope[T]
	err := c.do(ctx, method, path, in, &env)
	return env.Data, err
}

func escape(id string) string {
	return url.PathEscape(id)
}

// ListProjects returns every project, newest first.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	return data[[]models.Project](ctx, c, http.MethodGet, "/projects", nil)
}

// GetProject returns one project.
func (c *Client) GetProject(ctx context.Context, id string) (models.Project, error) {
	return data[models.Project](ctx, c, http.MethodGet, "/projects/"+escape(id), nil)
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, name, description string) (models.Project, error) {
	in := map[string]string{"name": name, "description": description}
	return data[models.Project](ctx, c, http.MethodPost, "/projects", in)
}

// UpdateProject changes the provided fields of a project.
func (c *Client) UpdateProject(ctx context.Context, id string, upd ProjectUpdate) (models.Project, error) {
	return data[models.Project](ctx, c, http.MethodPut, "/projects/"+escape(id), upd)
}

// DeleteProject deletes a project and its tasks.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+escape(id), nil, nil)
}

// ListTasks returns the tasks of a project sorted by order.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	return data[[]models.Task](ctx, c, http.MethodGet, "/tasks/"+escape(projectID), nil)
}

// CreateTask appends a task to a project.
func (c *Client) CreateTask(ctx context.Context, projectID string, in NewTask) (models.Task, error) {
	return data[models.Task](ctx, c, http.MethodPost, "/tasks/"+escape(projectID), in)
}

// UpdateTask changes the provided fields of a task.
func (c *Client) UpdateTask(ctx context.Context, id string, upd TaskUpdate) (models.Task, error) {
	return data[models.Task](ctx, c, http.MethodPut, "/tasks/"+escape(id), upd)
}

// DeleteTask deletes one task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+escape(id), nil, nil)
}

// ReorderTasks persists a bulk set of order and status assignments.
func (c *Client) ReorderTasks(ctx context.Context, items []models.ReorderItem) error {
	if items == nil {
		items = []models.ReorderItem{}
	}
	in := map[string][]models.ReorderItem{"tasks": items}
	return c.do(ctx, http.MethodPut, "/tasks/reorder", in, nil)
}

// Summarize asks the server for an AI summary of a project.
func (c *Client) Summarize(ctx context.Context, projectID string) (ai.Summary, error) {
	var out ai.Summary
	err := c.do(ctx, http.MethodPost, "/ai/summarize", map[string]string{"projectId": projectID}, &out)
	return out, err
}

// Ask asks the server an AI question about a project.
func (c *Client) Ask(ctx context.Context, projectID, question string) (ai.Answer, error) {
	var out ai.Answer
	in := map[string]string{"projectId": projectID, "question": question}
	err := c.do(ctx, http.MethodPost, "/ai/ask", in, &out)
	return out, err
}
