package gateway

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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sadopc/studydesk/internal/model"
)

const maxErrorBody = 512

// Client is the REST/JSON Gateway implementation.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Gateway = (*Client)(nil)

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, nil, &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, t model.Task) error {
	if err := c.do(ctx, http.MethodPost, "/api/tasks", nil, t, nil); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (c *Client) UpdateTask(ctx context.Context, t model.Task) error {
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(t.ID.String()), nil, t, nil); err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	return nil
}

func (c *Client) DeleteTask(ctx context.Context, id model.ID) error {
	if err := c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id.String()), nil, nil, nil); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

func (c *Client) ListNotes(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, nil, &notes); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (c *Client) SearchNotes(ctx context.Context, query string) ([]model.Note, error) {
	var notes []model.Note
	q := url.Values{"search": {query}}
	if err := c.do(ctx, http.MethodGet, "/api/notes", q, nil, &notes); err != nil {
		return nil, fmt.Errorf("search notes %q: %w", query, err)
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, n model.Note) error {
	if err := c.do(ctx, http.MethodPost, "/api/notes", nil, notePayload(n), nil); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (c *Client) UpdateNote(ctx context.Context, n model.Note) error {
	if err := c.do(ctx, http.MethodPut, "/api/notes/"+url.PathEscape(n.ID.String()), nil, notePayload(n), nil); err != nil {
		return fmt.Errorf("update note %s: %w", n.ID, err)
	}
	return nil
}

func (c *Client) DeleteNote(ctx context.Context, id model.ID) error {
	if err := c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id.String()), nil, nil, nil); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}

// GetTimerConfig returns 25/5 when the gateway has nothing stored.
func (c *Client) GetTimerConfig(ctx context.Context) (model.TimerConfig, error) {
	var cfg *model.TimerConfig
	if err := c.do(ctx, http.MethodGet, "/api/timer/settings", nil, nil, &cfg); err != nil {
		return model.TimerConfig{}, fmt.Errorf("get timer settings: %w", err)
	}
	if cfg == nil {
		return model.DefaultTimerConfig(), nil
	}
	return cfg.WithDefaults(), nil
}

func (c *Client) UpdateTimerConfig(ctx context.Context, cfg model.TimerConfig) error {
	if err := c.do(ctx, http.MethodPut, "/api/timer/settings", nil, cfg, nil); err != nil {
		return fmt.Errorf("update timer settings: %w", err)
	}
	return nil
}

func (c *Client) CreateSession(ctx context.Context, s model.TimerSession) error {
	if err := c.do(ctx, http.MethodPost, "/api/timer/sessions", nil, s, nil); err != nil {
		return fmt.Errorf("create timer session: %w", err)
	}
	return nil
}

func (c *Client) ListSessions(ctx context.Context, date string) ([]model.TimerSession, error) {
	var sessions []model.TimerSession
	var q url.Values
	if date != "" {
		q = url.Values{"date": {date}}
	}
	if err := c.do(ctx, http.MethodGet, "/api/timer/sessions", q, nil, &sessions); err != nil {
		return nil, fmt.Errorf("list timer sessions: %w", err)
	}
	return sessions, nil
}

// notePayload strips server-owned timestamps from writes.
func notePayload(n model.Note) any {
	return struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}{n.Title, n.Content}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("gateway request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("gateway request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %w", ErrNetwork, method, path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %w", ErrNetwork, method, path, err)
	}
	return nil
}
