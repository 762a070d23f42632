// Package client talks to the picks server over HTTP.
//
// It implements the three calls the sync controller needs: fetch an event,
// fetch the caller's picks for it, and save a new set of winners. Transport
// failures and non-2xx answers are mapped to the sentinel errors in errors.go.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/fightpicks/internal/domain/model"
	"github.com/okian/fightpicks/pkg/logger"
	"github.com/okian/fightpicks/pkg/metrics"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultCookieName = "session"
	maxErrorBody      = 512

	requestIDHeader = "X-Request-ID"
)

// Client is a picks server client. It is safe for concurrent use.
type Client struct {
	base        *url.URL
	http        *http.Client
	timeout     time.Duration
	cookieName  string
	cookieValue string
	logger      logger.Logger
}

// New builds a client for the server rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must be absolute", baseURL)
	}

	c := &Client{
		base:       u,
		http:       &http.Client{},
		timeout:    defaultTimeout,
		cookieName: defaultCookieName,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get()
	}
	c.logger = c.logger.Named("client")
	return c, nil
}

// FetchEvent returns the event card. The id "latest" is resolved by the server.
func (c *Client) FetchEvent(ctx context.Context, eventID string) (*model.Event, error) {
	var ev model.Event
	status, err := c.do(ctx, "event", http.MethodGet, c.eventPath(eventID), nil, &ev)
	switch {
	case status == http.StatusNotFound:
		metrics.RecordFetch("event", "not_found")
		return nil, fmt.Errorf("%w: %s", ErrNotFound, eventID)
	case err != nil:
		metrics.RecordFetch("event", "error")
		return nil, err
	}
	if err := ev.Validate(); err != nil {
		metrics.RecordFetch("event", "error")
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	metrics.RecordFetch("event", "ok")
	return &ev, nil
}

// FetchPicks returns the caller's saved picks for an event.
// A server answer with no winners and no score is reported as ErrNoPicksYet.
func (c *Client) FetchPicks(ctx context.Context, eventID string) (*model.Picks, error) {
	var picks *model.Picks
	status, err := c.do(ctx, "picks", http.MethodGet, c.eventPath(eventID)+"/picks", nil, &picks)
	switch {
	case status == http.StatusUnauthorized:
		metrics.RecordFetch("picks", "unauthenticated")
		return nil, ErrUnauthenticated
	case status == http.StatusNotFound:
		metrics.RecordFetch("picks", "not_found")
		return nil, fmt.Errorf("%w: %s", ErrNotFound, eventID)
	case err != nil:
		metrics.RecordFetch("picks", "error")
		return nil, err
	}
	if picks.IsEmpty() {
		metrics.RecordFetch("picks", "no_picks")
		return nil, ErrNoPicksYet
	}
	if picks.EventID == "" {
		picks.EventID = eventID
	}
	metrics.RecordFetch("picks", "ok")
	return picks, nil
}

type saveRequest struct {
	Winners []string `json:"winners"`
}

// SavePicks replaces the caller's winners for an event.
func (c *Client) SavePicks(ctx context.Context, eventID string, winners []string) error {
	if winners == nil {
		winners = []string{}
	}
	status, err := c.do(ctx, "save", http.MethodPost, c.eventPath(eventID)+"/picks", saveRequest{Winners: winners}, nil)
	if status == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	return err
}

func (c *Client) eventPath(eventID string) string {
	return "/events/" + url.PathEscape(eventID)
}

// do sends one request and decodes a 2xx JSON body into out when out is
// non-nil. It returns the HTTP status (0 when no response arrived).
func (c *Client) do(ctx context.Context, endpoint, method, path string, body, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.cookieValue})
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := float64(time.Since(start).Nanoseconds()) / 1e6
	if err != nil {
		metrics.RecordClientRequest(endpoint, method, "error", elapsed)
		c.logger.Warn(ctx, "request failed",
			logger.String("request_id", reqID),
			logger.String("endpoint", endpoint),
			logger.Error(err),
		)
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RecordClientRequest(endpoint, method, strconv.Itoa(resp.StatusCode), elapsed)
	c.logger.Debug(ctx, "request done",
		logger.String("request_id", reqID),
		logger.String("endpoint", endpoint),
		logger.Int("status", resp.StatusCode),
		logger.Float64("elapsed_ms", elapsed),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readMessage(resp.Body)
		if endpoint == "save" {
			return resp.StatusCode, fmt.Errorf("%w: %d %s", ErrSaveRejected, resp.StatusCode, msg)
		}
		return resp.StatusCode, fmt.Errorf("%w: %s %s: %d %s", ErrUnexpected, method, path, resp.StatusCode, msg)
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return resp.StatusCode, nil
}

func readMessage(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	msg := strings.TrimSpace(string(data))
	if msg == "" {
		return "no message"
	}
	return msg
}
