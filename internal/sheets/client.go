// Package sheets talks to the spreadsheet web endpoint that collects public
// radio registrations. Read pulls the pending submissions; Submit posts one
// registration the way the public form does.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/manav03panchal/controleplus/internal/config"
	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/logging"
	"github.com/manav03panchal/controleplus/internal/model"
)

// maxBody caps how much of a response is read.
const maxBody = 10 << 20

// Client reads and submits radio registrations.
type Client struct {
	http      *http.Client
	userAgent string
	timeout   time.Duration
}

// Options configures a Client.
type Options struct {
	// HTTPClient defaults to a client with the configured transport timeout.
	HTTPClient *http.Client
	// UserAgent is sent with every request.
	UserAgent string
	// Timeout bounds each Read or Submit call. Zero means no per-call limit.
	Timeout time.Duration
}

// NewClient creates a client.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{http: hc, userAgent: opts.UserAgent, timeout: opts.Timeout}
}

// NewClientFromConfig creates a client from the runtime configuration.
func NewClientFromConfig(cfg *config.RuntimeConfig) *Client {
	return NewClient(Options{
		HTTPClient: &http.Client{Timeout: cfg.HTTP.Timeout},
		UserAgent:  cfg.HTTP.UserAgent,
		Timeout:    cfg.Sync.Timeout,
	})
}

// StatusError is a non-success HTTP response.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, e.Body)
}

// Is matches errors.ErrSubmissionRejected for failed submissions.
func (e *StatusError) Is(target error) bool {
	return target == errors.ErrSubmissionRejected && e.Op == "submit"
}

type readResponse struct {
	Data json.RawMessage `json:"data"`
}

// Read fetches the submissions listed by the endpoint. A response whose data
// member is not an array yields no submissions. Array elements that are not
// objects of the submission shape are skipped.
func (c *Client) Read(ctx context.Context, endpoint string) ([]model.RadioSubmission, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if endpoint == "" {
		return nil, notConfigured()
	}
	target, err := readURL(endpoint)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	body, err := c.do(req, "read", statusOK)
	if err != nil {
		return nil, err
	}

	var resp readResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.NewRecoverableError("endpoint returned invalid JSON", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(resp.Data, &items); err != nil {
		return nil, nil
	}
	out := make([]model.RadioSubmission, 0, len(items))
	for i, raw := range items {
		var sub model.RadioSubmission
		if err := json.Unmarshal(raw, &sub); err != nil {
			logging.DebugContext(ctx, "skipping malformed submission", "index", i, logging.KeyError, err)
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

// submitPayload always carries crowleyMarkets, as an empty list for
// stations that are not audited.
type submitPayload struct {
	model.StationInfo
	CrowleyMarkets []string `json:"crowleyMarkets"`
}

// Submit posts one registration. The body is JSON sent as text/plain, which
// the spreadsheet script accepts without a preflight. Any non-2xx response
// is an error matching errors.ErrSubmissionRejected.
func (c *Client) Submit(ctx context.Context, endpoint string, station model.StationInfo) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if endpoint == "" {
		return notConfigured()
	}

	payload := submitPayload{StationInfo: station, CrowleyMarkets: []string{}}
	if station.IsCrowleyAudited && len(station.CrowleyMarkets) > 0 {
		payload.CrowleyMarkets = station.CrowleyMarkets
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	_, err = c.do(req, "submit", status2xx)
	return err
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// Reads only trust a plain 200; the write-back accepts any 2xx.
func statusOK(code int) bool  { return code == http.StatusOK }
func status2xx(code int) bool { return code >= 200 && code < 300 }

// do sends req and returns the body of a response whose status accept allows.
func (c *Client) do(req *http.Request, op string, accept func(int) bool) ([]byte, error) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(req.Context(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, transportError(req.Context(), err)
	}
	logging.DebugContext(req.Context(), "sheets request",
		logging.KeyOperation, op,
		logging.KeyURL, req.URL.String(),
		logging.KeyStatus, resp.StatusCode,
		logging.KeyDuration, time.Since(start).Milliseconds())

	if !accept(resp.StatusCode) {
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: snippet(body)}
	}
	return body, nil
}

func transportError(ctx context.Context, err error) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewRecoverableError("spreadsheet endpoint timed out", fmt.Errorf("%w: %w", errors.ErrTimeout, err))
	}
	if stderrors.Is(err, context.Canceled) {
		return err
	}
	return errors.NewRecoverableError("spreadsheet endpoint unreachable", fmt.Errorf("%w: %w", errors.ErrNetworkUnavailable, err))
}

func notConfigured() error {
	return errors.NewUserError(errors.ErrSheetsNotConfigured.Error(),
		errors.GetSuggestion(errors.ErrSheetsNotConfigured)).
		WithCause(errors.ErrSheetsNotConfigured)
}

// readURL appends action=read to the endpoint's query.
func readURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "", errors.NewUserErrorWithField("url", logging.MaskURL(endpoint),
			"invalid spreadsheet URL", errors.GetSuggestion(errors.ErrInvalidURL)).
			WithCause(errors.ErrInvalidURL)
	}
	q := u.Query()
	q.Add("action", "read")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func snippet(body []byte) string {
	const limit = 200
	s := string(bytes.TrimSpace(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
