// Package client talks to the scheduling backend that owns shifts, counselors
// and the duty rotation. Every call takes a context and sends the bearer token
// the client was configured with (or obtained through Login).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"shift-scheduler/errors"
	"shift-scheduler/metrics"
	"shift-scheduler/models"
	"shift-scheduler/parser"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger

	mu    sync.RWMutex
	token string
}

// New returns a client for the backend rooted at baseURL (for example "https://host/api").
func New(baseURL, token string, httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = DefaultHTTPClient(10 * time.Second)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.With().Str("component", "backend").Logger(),
		token:      token,
	}
}

// DefaultHTTPClient returns an http.Client with the given request timeout.
func DefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// flexID decodes ids the backend sends either as numbers or as strings.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type order struct {
	ID        flexID `json:"id"`
	Order     int    `json:"order"`
	Day       string `json:"day"`
	Time      string `json:"time"`
	AccountID flexID `json:"account_id"`
}

type orderUpdate struct {
	AccountID string `json:"account_id"`
	Day       string `json:"day"`
	Time      string `json:"time"`
}

type counselor struct {
	AccountID   flexID `json:"account_id"`
	AccountName string `json:"account_name"`
}

type rotationEntry struct {
	ID    flexID `json:"id"`
	Name  string `json:"name"`
	Dirty bool   `json:"isDirty"`
}

type rotationStatus struct {
	Current  *rotationEntry `json:"currentCounselor"`
	Next     *rotationEntry `json:"nextCounselor"`
	Selected *rotationEntry `json:"selectedCounselor"`
}

func (e *rotationEntry) model() *models.RotationEntry {
	if e == nil {
		return nil
	}
	return &models.RotationEntry{ID: string(e.ID), Name: e.Name, Dirty: e.Dirty}
}

type errorBody struct {
	Message string `json:"message"`
}

// ListShifts fetches the stored weekly schedule. Times are read with
// parser.ParseTimeRange, so a malformed time loads as-is for the editor to fix.
// Orders without an id are keyed by their order number, or by their position
// in the response when that is missing too.
func (c *Client) ListShifts(ctx context.Context) ([]models.ShiftSlot, error) {
	var orders []order
	if err := c.do(ctx, http.MethodGet, "/orders/all", nil, &orders); err != nil {
		return nil, err
	}

	slots := make([]models.ShiftSlot, 0, len(orders))
	for i, o := range orders {
		start, end := parser.ParseTimeRange(o.Time)
		id := string(o.ID)
		if id == "" {
			n := o.Order
			if n == 0 {
				n = i + 1
			}
			id = "order-" + strconv.Itoa(n)
		}
		day := models.Day(o.Day)
		if d, ok := models.ParseDay(o.Day); ok {
			day = d
		}
		slots = append(slots, models.ShiftSlot{
			ID:      id,
			Order:   o.Order,
			Day:     day,
			Start:   start,
			End:     end,
			AgentID: string(o.AccountID),
		})
	}
	return slots, nil
}

// ListAgents fetches the counselors eligible for assignment.
func (c *Client) ListAgents(ctx context.Context) ([]models.Agent, error) {
	var counselors []counselor
	if err := c.do(ctx, http.MethodGet, "/current/counselors", nil, &counselors); err != nil {
		return nil, err
	}
	agents := make([]models.Agent, 0, len(counselors))
	for _, co := range counselors {
		agents = append(agents, models.Agent{ID: string(co.AccountID), DisplayName: co.AccountName})
	}
	return agents, nil
}

// ReplaceShifts overwrites the stored schedule with slots. The backend keeps
// the previous schedule as a backup that Restore brings back.
func (c *Client) ReplaceShifts(ctx context.Context, slots []models.ShiftSlot) error {
	payload := make([]orderUpdate, 0, len(slots))
	for _, s := range slots {
		payload = append(payload, orderUpdate{
			AccountID: s.AgentID,
			Day:       string(s.Day),
			Time:      s.TimeRange(),
		})
	}
	if err := c.do(ctx, http.MethodPost, "/orders/bulk-update", payload, nil); err != nil {
		return err
	}
	metrics.ShiftsAppliedTotal.Add(float64(len(slots)))
	return nil
}

// Restore reinstates the schedule that was in place before the last ReplaceShifts.
func (c *Client) Restore(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/orders/restore", nil, nil)
}

// Status fetches the current duty rotation.
func (c *Client) Status(ctx context.Context) (*models.RotationStatus, error) {
	var status rotationStatus
	if err := c.do(ctx, http.MethodGet, "/current/status", nil, &status); err != nil {
		return nil, err
	}
	return &models.RotationStatus{
		Current:  status.Current.model(),
		Next:     status.Next.model(),
		Selected: status.Selected.model(),
	}, nil
}

// SelectNext manually picks the counselor who takes over after the current one.
func (c *Client) SelectNext(ctx context.Context, agentID string) error {
	return c.do(ctx, http.MethodPatch, "/current/select", map[string]string{"selectedId": agentID}, nil)
}

// ForceCurrent replaces the counselor currently on duty.
func (c *Client) ForceCurrent(ctx context.Context, agentID string) error {
	return c.do(ctx, http.MethodPost, "/current/force-change-current", map[string]string{"targetId": agentID}, nil)
}

// Login exchanges operator credentials for a token and uses it for later calls.
func (c *Client) Login(ctx context.Context, id, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"id": id, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login response missing token")
	}
	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()
	return resp.Token, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.baseURL == "" {
		return errors.ErrMissingBaseURL
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	metrics.BackendRequestDurationSeconds.WithLabelValues(path).Observe(elapsed.Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(path, "error").Inc()
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	metrics.BackendRequestsTotal.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func newAPIError(method, path string, resp *http.Response) error {
	apiErr := &errors.APIError{Method: method, Path: path, Status: resp.StatusCode}
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		apiErr.Err = errors.ErrUnauthorized
	case http.StatusNotFound:
		apiErr.Err = errors.ErrNotFound
	default:
		apiErr.Err = errors.ErrUnexpectedStatus
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		apiErr.Message = eb.Message
	}
	return apiErr
}
