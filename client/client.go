// Package client is a Go consumer of the momentum API: a thin HTTP wrapper
// plus the pieces the dashboard needs locally: session state, an optimistic
// habit store, and the reminder scheduler.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIError is a non-2xx response from the backend. Transport failures come
// back as ordinary wrapped errors, so callers can tell "the server said no"
// from "the network ate it".
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Task struct {
	ID         int     `json:"id"`
	Text       string  `json:"text"`
	Completed  bool    `json:"completed"`
	Date       string  `json:"date,omitempty"`
	Time       string  `json:"time,omitempty"`
	Category   string  `json:"category"`
	CustomList *string `json:"customList"`
}

type Journal struct {
	ID      int    `json:"id"`
	Date    string `json:"date"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type FocusDay struct {
	Date         string `json:"date"`
	TotalMinutes int    `json:"totalMinutes"`
	Sessions     int    `json:"sessions"`
}

type Habit struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Color          string   `json:"color"`
	CompletedDates []string `json:"completedDates"`
}

type Heatmap struct {
	Mode   string          `json:"mode"`
	Total  int             `json:"total"`
	Label  string          `json:"label"`
	Months json.RawMessage `json:"months"`
}

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return &APIError{Status: res.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ----- AUTH -----

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var res struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &res)
	if err != nil {
		return "", err
	}
	c.Token = res.Token
	return res.Token, nil
}

func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var res struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"username": username,
		"password": password,
	}, &res)
	if err != nil {
		return "", err
	}
	c.Token = res.Token
	return res.Token, nil
}

// ----- TASKS -----

func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	var out []Task
	err := c.do(ctx, http.MethodGet, "/tasks", nil, &out)
	return out, err
}

func (c *Client) CreateTask(ctx context.Context, t Task) (Task, error) {
	var out Task
	err := c.do(ctx, http.MethodPost, "/tasks", t, &out)
	return out, err
}

func (c *Client) UpdateTask(ctx context.Context, id int, patch map[string]any) (Task, error) {
	var out Task
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), patch, &out)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

// CopyTaskToToday duplicates a task onto today's date through the store, so
// the copy has a real server id.
func (c *Client) CopyTaskToToday(ctx context.Context, id int) (Task, error) {
	var out Task
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/copy", id), nil, &out)
	return out, err
}

// ----- JOURNALS -----

func (c *Client) Journals(ctx context.Context) ([]Journal, error) {
	var out []Journal
	err := c.do(ctx, http.MethodGet, "/journals", nil, &out)
	return out, err
}

func (c *Client) ImportJournals(ctx context.Context, entries []Journal) (int, error) {
	var res struct {
		Imported int `json:"imported"`
	}
	err := c.do(ctx, http.MethodPost, "/journals/bulk", entries, &res)
	return res.Imported, err
}

// ----- FOCUS -----

func (c *Client) FocusStats(ctx context.Context) ([]FocusDay, error) {
	var out []FocusDay
	err := c.do(ctx, http.MethodGet, "/focus", nil, &out)
	return out, err
}

func (c *Client) LogFocus(ctx context.Context, duration int, mode, date string) error {
	return c.do(ctx, http.MethodPost, "/focus", map[string]any{
		"duration": duration,
		"mode":     mode,
		"date":     date,
	}, nil)
}

// ----- HABITS -----

func (c *Client) Habits(ctx context.Context) ([]Habit, error) {
	var out []Habit
	err := c.do(ctx, http.MethodGet, "/habits", nil, &out)
	return out, err
}

func (c *Client) CreateHabit(ctx context.Context, name string) (Habit, error) {
	var out Habit
	err := c.do(ctx, http.MethodPost, "/habits", map[string]string{"name": name}, &out)
	return out, err
}

func (c *Client) ToggleHabit(ctx context.Context, id int, date string) (Habit, error) {
	var out Habit
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/habits/%d/toggle", id), map[string]string{"date": date}, &out)
	return out, err
}

func (c *Client) DeleteHabit(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/habits/%d", id), nil, nil)
}

// ----- HEATMAP -----

func (c *Client) Heatmap(ctx context.Context, mode string) (Heatmap, error) {
	var out Heatmap
	err := c.do(ctx, http.MethodGet, "/heatmap?mode="+mode, nil, &out)
	return out, err
}
