package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bugtrack/internal/bootstrap/config"
	"bugtrack/internal/domain/bug"
	"bugtrack/internal/errs"
)

// APIError is a structured failure returned by the server. Transport
// failures (server unreachable, malformed body) are reported as plain
// wrapped errors instead, so callers can distinguish the two and fall
// back to a generic message.
type APIError struct {
	StatusCode  int
	Message     string
	FieldErrors map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Message extracts the user-facing error text: the server-supplied
// message when one exists, the fallback otherwise.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Client talks to the bug service. The base URL is the single
// configuration point every operation goes through.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(cfg config.ClientConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type CreateBugRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority,omitempty"`
}

type UpdateBugRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (c *Client) ListBugs(ctx context.Context) ([]bug.Bug, error) {
	var items []bug.Bug
	if err := c.do(ctx, http.MethodGet, "/api/bugs", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetBug(ctx context.Context, id string) (bug.Bug, error) {
	var item bug.Bug
	if err := c.do(ctx, http.MethodGet, "/api/bugs/"+id, nil, &item); err != nil {
		return bug.Bug{}, err
	}
	return item, nil
}

func (c *Client) CreateBug(ctx context.Context, req CreateBugRequest) (bug.Bug, error) {
	var item bug.Bug
	if err := c.do(ctx, http.MethodPost, "/api/bugs", req, &item); err != nil {
		return bug.Bug{}, err
	}
	return item, nil
}

func (c *Client) UpdateBug(ctx context.Context, id string, req UpdateBugRequest) (bug.Bug, error) {
	var item bug.Bug
	if err := c.do(ctx, http.MethodPut, "/api/bugs/"+id, req, &item); err != nil {
		return bug.Bug{}, err
	}
	return item, nil
}

func (c *Client) DeleteBug(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/bugs/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errs.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errs.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.Wrapf(err, "%s %s", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Wrap(err, "read response body")
	}

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp.StatusCode, payload)
	}

	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return errs.Wrap(err, "decode response body")
		}
	}
	return nil
}

// decodeAPIError reads the server's failure bodies: `{error, errors}`
// for validation, `{message}` for not-found, `{success, message}` for
// unexpected errors. An undecodable body still yields an APIError
// carrying the status code.
func decodeAPIError(status int, payload []byte) error {
	var body struct {
		Error   string            `json:"error"`
		Errors  map[string]string `json:"errors"`
		Message string            `json:"message"`
	}
	_ = json.Unmarshal(payload, &body)

	message := body.Error
	if message == "" {
		message = body.Message
	}

	return &APIError{
		StatusCode:  status,
		Message:     message,
		FieldErrors: body.Errors,
	}
}
