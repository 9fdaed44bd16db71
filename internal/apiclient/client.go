package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/brk3/streaks/internal/server"
	"github.com/brk3/streaks/internal/tracker"
	"github.com/brk3/streaks/pkg/habit"
	"github.com/brk3/streaks/pkg/versioninfo"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(base, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Op      string
	Status  string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

func (c *Client) Snapshot(ctx context.Context) (habit.Snapshot, error) {
	var out habit.Snapshot
	err := c.do(ctx, "list habits", http.MethodGet, "/habits/", nil, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, name string) (habit.Snapshot, error) {
	var out habit.Snapshot
	err := c.do(ctx, "create habit", http.MethodPost, "/habits/", server.CreateHabitRequest{Name: name}, &out)
	return out, err
}

func (c *Client) ToggleToday(ctx context.Context, id int64) (habit.Snapshot, error) {
	var out habit.Snapshot
	path := "/habits/" + strconv.FormatInt(id, 10) + "/toggle"
	err := c.do(ctx, fmt.Sprintf("toggle %d", id), http.MethodPost, path, nil, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, id int64) (habit.Snapshot, error) {
	var out habit.Snapshot
	path := "/habits/" + strconv.FormatInt(id, 10)
	err := c.do(ctx, fmt.Sprintf("delete %d", id), http.MethodDelete, path, nil, &out)
	return out, err
}

func (c *Client) Version(ctx context.Context) (versioninfo.VersionInfo, error) {
	var out versioninfo.VersionInfo
	err := c.do(ctx, "version", http.MethodGet, "/version", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		se := &StatusError{Op: op, Status: res.Status, Code: res.StatusCode}
		var e server.ErrorResponse
		if json.NewDecoder(res.Body).Decode(&e) == nil {
			se.Message = e.Error
		}
		return se
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

var _ tracker.Service = (*Client)(nil)
