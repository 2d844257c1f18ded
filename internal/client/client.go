package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/workzen-dev/workzen/internal/types"
)

const requestTimeout = 15 * time.Second

// APIError is a non-2xx answer from the server, carrying its {message} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the WorkZen API. It injects the stored bearer token into
// every request and clears stored credentials when a non-auth endpoint
// answers 401, forcing re-authentication.
type Client struct {
	baseURL string
	http    *http.Client
	creds   *CredentialStore
}

func New(baseURL string, creds *CredentialStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		creds:   creds,
	}
}

type Session struct {
	Token string             `json:"token"`
	User  types.UserResponse `json:"user"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, body, &session); err != nil {
		return nil, err
	}

	if err := c.creds.Save(session.Token, session.User); err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}

	return &session, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &session); err != nil {
		return nil, err
	}

	if err := c.creds.Save(session.Token, session.User); err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}

	return &session, nil
}

// FetchUser verifies the stored token against the server and refreshes the
// persisted profile snapshot.
func (c *Client) FetchUser(ctx context.Context) (*types.UserResponse, error) {
	var user types.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/user", nil, nil, &user); err != nil {
		return nil, err
	}

	if token := c.creds.Token(); token != "" {
		if err := c.creds.Save(token, user); err != nil {
			return nil, fmt.Errorf("save credentials: %w", err)
		}
	}

	return &user, nil
}

func (c *Client) Logout() error {
	return c.creds.Clear()
}

type ProjectPayload struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type TaskPayload struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	ProjectID   *uint      `json:"project_id,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// TaskQuery narrows ListTasks; zero values mean no filter.
type TaskQuery struct {
	ProjectID uint
	Status    string
	Priority  string
}

func (c *Client) ListProjects(ctx context.Context) ([]types.ProjectResponse, error) {
	var projects []types.ProjectResponse
	if err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, id uint) (*types.ProjectResponse, error) {
	var project types.ProjectResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) CreateProject(ctx context.Context, payload ProjectPayload) (*types.ProjectResponse, error) {
	var project types.ProjectResponse
	if err := c.do(ctx, http.MethodPost, "/projects", nil, payload, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) UpdateProject(ctx context.Context, id uint, payload ProjectPayload) (*types.ProjectResponse, error) {
	var project types.ProjectResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", id), nil, payload, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil, nil)
}

func (c *Client) ListTasks(ctx context.Context, query TaskQuery) ([]types.TaskResponse, error) {
	values := url.Values{}
	if query.ProjectID != 0 {
		values.Set("project_id", fmt.Sprint(query.ProjectID))
	}
	if query.Status != "" {
		values.Set("status", query.Status)
	}
	if query.Priority != "" {
		values.Set("priority", query.Priority)
	}

	var tasks []types.TaskResponse
	if err := c.do(ctx, http.MethodGet, "/tasks", values, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, payload TaskPayload) (*types.TaskResponse, error) {
	var task types.TaskResponse
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id uint, payload TaskPayload) (*types.TaskResponse, error) {
	var task types.TaskResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), nil, payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil, nil)
}

func isAuthEndpoint(path string) bool {
	return strings.HasPrefix(path, "/auth/login") || strings.HasPrefix(path, "/auth/register")
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader *bytes.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)

		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}

		if resp.StatusCode == http.StatusUnauthorized && !isAuthEndpoint(path) {
			_ = c.creds.Clear()
		}

		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
