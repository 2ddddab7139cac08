// Package api talks to the interior project endpoints.
package api

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

	"interior-cli/internal/config"
	"interior-cli/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxResponseBytes = 8 << 20

var (
	ErrMissingID = errors.New("api: missing project id")
	ErrNoData    = errors.New("api: response has no data")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			// Copy so a shared client (http.DefaultClient) is never modified.
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a client for baseURL (e.g. https://host/api). An empty baseURL falls back
// to the default API origin.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: config.DefaultTimeout},
		log:     zap.NewNop(),
	}
	if c.baseURL == "" {
		c.baseURL = config.DefaultBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// Get fetches one project: GET {base}/interior/interior/{id}.
func (c *Client) Get(ctx context.Context, id string) (model.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Project{}, ErrMissingID
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/interior/interior/"+url.PathEscape(id), nil)
	if err != nil {
		return model.Project{}, fmt.Errorf("create request: %w", err)
	}
	body, err := c.do(req)
	if err != nil {
		return model.Project{}, err
	}
	p, ok, err := decodeData(body)
	if err != nil {
		return model.Project{}, err
	}
	if !ok {
		return model.Project{}, ErrNoData
	}
	return p, nil
}

// Update sends the draft and replacement files as one multipart request:
// PUT {base}/interior/update/interiors/{id}. The returned project holds only the keys
// the server echoed back; a response without data yields an empty project.
func (c *Client) Update(ctx context.Context, id string, draft model.Project, files map[model.Slot]model.PendingFile) (model.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Project{}, ErrMissingID
	}

	var buf bytes.Buffer
	contentType, err := EncodeUpdate(&buf, draft, files)
	if err != nil {
		return model.Project{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/interior/update/interiors/"+url.PathEscape(id), &buf)
	if err != nil {
		return model.Project{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	body, err := c.do(req)
	if err != nil {
		return model.Project{}, err
	}
	p, _, err := decodeData(body)
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)
	req.Header.Set("Accept", "application/json")

	log := c.log.With(
		zap.String("requestId", reqID),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("request failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Error("read response", zap.Error(err), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%s %s: read response: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("unexpected status", zap.Int("status", resp.StatusCode), zap.Duration("duration", time.Since(start)))
		return nil, &StatusError{
			Method: req.Method,
			Path:   req.URL.Path,
			Code:   resp.StatusCode,
			Body:   truncate(string(body), 512),
		}
	}
	log.Info("request done", zap.Int("status", resp.StatusCode), zap.Duration("duration", time.Since(start)))
	return body, nil
}

// decodeData unwraps {"data": {...}}. ok is false when data is missing or null.
func decodeData(body []byte) (model.Project, bool, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return model.Project{}, false, fmt.Errorf("decode response: %w", err)
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return model.Project{}, false, nil
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, false, fmt.Errorf("decode project: %w", err)
	}
	return p, true, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
