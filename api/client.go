package api

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

	"go.uber.org/zap"
)

// DefaultBaseURL is the production project backend.
const DefaultBaseURL = "https://app.asetta.xyz"

// Client talks to the Asetta project REST backend.
type Client struct {
	baseURL   string
	accessKey string
	http      *http.Client
	log       *zap.Logger
}

// NewClient builds a backend client. An empty baseURL selects the default
// host.
func NewClient(baseURL, accessKey string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		http:      &http.Client{Timeout: 30 * time.Second},
		log:       log,
	}
}

// apiError is the backend's error body shape.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessKey != "" {
		req.Header.Set("X-Access-Key", c.accessKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil {
			msg := apiErr.Message
			if msg == "" {
				msg = apiErr.Error
			}
			if msg != "" {
				return fmt.Errorf("backend returned %d: %s", resp.StatusCode, msg)
			}
		}
		return fmt.Errorf("backend returned %d for %s %s", resp.StatusCode, method, path)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// CreateProject registers a new RWA project record.
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodPost, "/api/project", nil, req, &project); err != nil {
		return nil, err
	}
	c.log.Info("project created", zap.String("id", project.ID), zap.String("name", project.Name))
	return &project, nil
}

// ListProjects fetches the caller's projects, optionally filtered by status.
func (c *Client) ListProjects(ctx context.Context, status string) ([]Project, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/api/project", query, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches a single project by ID.
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("project id is empty")
	}
	var project Project
	if err := c.do(ctx, http.MethodGet, "/api/project/"+url.PathEscape(id), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject patches a project record.
func (c *Client) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("project id is empty")
	}
	if req.Status != "" && !ValidStatus(req.Status) {
		return nil, fmt.Errorf("invalid status %q (accepted: %s)", req.Status, strings.Join(Statuses(), ", "))
	}
	var project Project
	if err := c.do(ctx, http.MethodPut, "/api/project/"+url.PathEscape(id), nil, req, &project); err != nil {
		return nil, err
	}
	c.log.Info("project updated", zap.String("id", id))
	return &project, nil
}

// GetProfile fetches the profile tied to the access key.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	if c.accessKey == "" {
		return nil, fmt.Errorf("access key not configured")
	}
	query := url.Values{"access_key": {c.accessKey}}
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", query, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
