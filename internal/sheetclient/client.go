// Package sheetclient talks to the spreadsheet-backed web endpoint that stores
// introductions. Every failure is returned as a *Error carrying a Kind, so
// callers classify by type rather than by message text.
package sheetclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"introboard/internal/intro"
	"introboard/internal/logger"

	"go.uber.org/zap"
)

const (
	// DefaultReadAction is the discriminator value selecting the read behaviour.
	DefaultReadAction = "get"

	DefaultTimeout = 10 * time.Second

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 4 << 20
)

// DefaultAllowedRedirectHosts covers Apps Script web apps, which answer from
// script.google.com with a redirect to googleusercontent.
var DefaultAllowedRedirectHosts = []string{"script.googleusercontent.com"}

// Envelope is the single response schema the endpoint is expected to use for
// both reads and writes. All keys are optional.
type Envelope struct {
	Result string          `json:"result,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// SubmitResult is the decoded acknowledgement of a successful submission.
type SubmitResult struct {
	Result string          `json:"result,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type Client struct {
	// BaseURL is the endpoint URL, e.g. "https://script.google.com/macros/s/<id>/exec".
	BaseURL string

	// ReadAction is sent as ?action= on list requests.
	ReadAction string

	// AllowedRedirectHosts are hosts, besides BaseURL's own, that redirects may target.
	AllowedRedirectHosts []string

	HTTPClient *http.Client
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.HTTPClient.Timeout = timeout
	}
}

func WithReadAction(action string) Option {
	return func(c *Client) {
		if action != "" {
			c.ReadAction = action
		}
	}
}

func WithAllowedRedirectHosts(hosts ...string) Option {
	return func(c *Client) {
		c.AllowedRedirectHosts = hosts
	}
}

// WithTransport swaps the round tripper, mostly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.HTTPClient.Transport = rt
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:              baseURL,
		ReadAction:           DefaultReadAction,
		AllowedRedirectHosts: slices.Clone(DefaultAllowedRedirectHosts),
		HTTPClient:           &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.HTTPClient.CheckRedirect = c.checkRedirect
	return c
}

// Submit posts a record as JSON.
func (c *Client) Submit(ctx context.Context, rec intro.Record) (*SubmitResult, error) {
	const op = "submit"

	body, err := json.Marshal(rec)
	if err != nil {
		return nil, &Error{Kind: KindDecode, Op: op, Message: "failed to encode record", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: op, Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	env, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	logger.Debug("introduction submitted", zap.String("result", env.Result))
	return &SubmitResult{Result: env.Result, Data: env.Data}, nil
}

// List fetches every record. The result is never nil.
func (c *Client) List(ctx context.Context) ([]intro.Record, error) {
	const op = "list"

	endpoint, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: op, Message: "invalid endpoint URL", Err: err}
	}
	query := endpoint.Query()
	query.Set("action", c.ReadAction)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: op, Message: "failed to create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	env, err := c.do(op, req)
	if err != nil {
		return nil, err
	}

	records := []intro.Record{}
	if len(env.Data) > 0 && !bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		if err := json.Unmarshal(env.Data, &records); err != nil {
			return nil, &Error{Kind: KindDecode, Op: op, Message: "data is not a list of records", Err: err}
		}
	}

	logger.Debug("introductions fetched", zap.Int("count", len(records)))
	return records, nil
}

func (c *Client) do(op string, req *http.Request) (*Envelope, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, transportError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: op, Message: "failed to read response body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:       KindHTTPStatus,
			Op:         op,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Message:    fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
		}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &Error{Kind: KindDecode, Op: op, Message: "response is not a JSON object", Err: err}
	}
	if env.Error != "" {
		return nil, &Error{Kind: KindServerReported, Op: op, Message: env.Error}
	}
	return &env, nil
}

func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 10 {
		return fmt.Errorf("stopped after %d redirects", len(via))
	}
	if !c.redirectAllowed(req.URL.Hostname()) {
		return errCrossOrigin
	}
	return nil
}

func (c *Client) redirectAllowed(host string) bool {
	if base, err := url.Parse(c.BaseURL); err == nil && strings.EqualFold(base.Hostname(), host) {
		return true
	}
	return slices.ContainsFunc(c.AllowedRedirectHosts, func(h string) bool {
		return strings.EqualFold(h, host)
	})
}
