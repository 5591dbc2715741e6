// Package client is a thin HTTP client for the TaskMaster REST API.
package client

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
	"time"

	"taskmaster/domain/dto"
	"taskmaster/domain/models"
)

// APIError is a non-2xx response. Message is the server's error string.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetToken sets the bearer token sent on every request. Empty clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

// ========== Auth ==========

func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) Me(ctx context.Context) (*dto.PublicUser, error) {
	var user dto.PublicUser
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ========== Projects ==========

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects)
	return projects, err
}

func (c *Client) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return c.project(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), nil)
}

func (c *Client) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*models.Project, error) {
	return c.project(ctx, http.MethodPost, "/api/projects", req)
}

func (c *Client) UpdateProject(ctx context.Context, id string, req dto.UpdateProjectRequest) (*models.Project, error) {
	return c.project(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(id), req)
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil)
}

func (c *Client) AddMember(ctx context.Context, projectID, userID string) (*models.Project, error) {
	return c.project(ctx, http.MethodPost, "/api/projects/"+url.PathEscape(projectID)+"/members", dto.AddMemberRequest{UserID: userID})
}

func (c *Client) RemoveMember(ctx context.Context, projectID, userID string) (*models.Project, error) {
	return c.project(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(projectID)+"/members/"+url.PathEscape(userID), nil)
}

func (c *Client) project(ctx context.Context, method, path string, body any) (*models.Project, error) {
	var project models.Project
	if err := c.do(ctx, method, path, body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ========== Tasks ==========

func (c *Client) ListProjectTasks(ctx context.Context, projectID string) ([]dto.TaskResponse, error) {
	var tasks []dto.TaskResponse
	err := c.do(ctx, http.MethodGet, "/api/tasks/project/"+url.PathEscape(projectID), nil, &tasks)
	return tasks, err
}

func (c *Client) ListMyTasks(ctx context.Context) ([]dto.MyTaskResponse, error) {
	var tasks []dto.MyTaskResponse
	err := c.do(ctx, http.MethodGet, "/api/tasks/my/tasks", nil, &tasks)
	return tasks, err
}

func (c *Client) GetTask(ctx context.Context, id string) (*dto.TaskResponse, error) {
	return c.task(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil)
}

func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	return c.task(ctx, http.MethodPost, "/api/tasks", req)
}

func (c *Client) UpdateTask(ctx context.Context, id string, req dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	return c.task(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), req)
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) task(ctx context.Context, method, path string, body any) (*dto.TaskResponse, error) {
	var task dto.TaskResponse
	if err := c.do(ctx, method, path, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ========== Comments ==========

func (c *Client) ListTaskComments(ctx context.Context, taskID string) ([]dto.CommentResponse, error) {
	var comments []dto.CommentResponse
	err := c.do(ctx, http.MethodGet, "/api/comments/task/"+url.PathEscape(taskID), nil, &comments)
	return comments, err
}

func (c *Client) CreateComment(ctx context.Context, taskID, content string) (*dto.CommentResponse, error) {
	var comment dto.CommentResponse
	req := dto.CreateCommentRequest{TaskID: taskID, Content: content}
	if err := c.do(ctx, http.MethodPost, "/api/comments", req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) UpdateComment(ctx context.Context, id, content string) (*dto.CommentResponse, error) {
	var comment dto.CommentResponse
	req := dto.UpdateCommentRequest{Content: content}
	if err := c.do(ctx, http.MethodPut, "/api/comments/"+url.PathEscape(id), req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/comments/"+url.PathEscape(id), nil, nil)
}

// ========== Dashboard ==========

func (c *Client) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	var stats dto.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) ProjectOverview(ctx context.Context) ([]dto.ProjectOverview, error) {
	var overview []dto.ProjectOverview
	err := c.do(ctx, http.MethodGet, "/api/dashboard/project-overview", nil, &overview)
	return overview, err
}

// do sends body as JSON and decodes a 2xx response into result when result is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		} else {
			apiErr.Message = fmt.Sprintf("%s %s failed with status %d", method, path, resp.StatusCode)
		}
		return apiErr
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("decoding response from %s %s: %w", method, path, err)
	}
	return nil
}
