package btcmarkets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KNICEX/btcmarkets-cli/internal/service/exchange"
)

var _ exchange.Client = (*Client)(nil)

// Client signs and sends requests to the BTC Markets v3 REST API. It keeps no
// per-call state, so one Client may serve concurrent invocations.
type Client struct {
	baseURL   string
	creds     Credentials
	httpCli   *http.Client
	timeout   time.Duration
	signQuery bool
}

type Option func(c *Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout bounds every request. Zero keeps the default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithHTTPClient(cli *http.Client) Option {
	return func(c *Client) {
		if cli != nil {
			c.httpCli = cli
		}
	}
}

// WithSignedQuery makes the signature cover path?query instead of the bare
// path. BTC Markets v3 signs the bare path.
func WithSignedQuery(signQuery bool) Option {
	return func(c *Client) {
		c.signQuery = signQuery
	}
}

func NewClient(creds Credentials, opts ...Option) *Client {
	cli := &Client{
		baseURL: BaseURL,
		creds:   creds,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(cli)
	}
	if cli.httpCli == nil {
		cli.httpCli = &http.Client{Timeout: cli.timeout}
	}
	return cli
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SignsQuery() bool {
	return c.signQuery
}

// Do performs the HTTP exchange synchronously. Every failure is returned as an
// *exchange.APIError inside the result, never as a panic.
func (c *Client) Do(ctx context.Context, req *exchange.Request) exchange.Result {
	headers := NewSignedHeaders(c.creds, req, c.signQuery)

	var body io.Reader
	if req.Method.CarriesBody() && req.HasBody() {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method.ToString(), c.baseURL+req.Target(), body)
	if err != nil {
		return exchange.Result{Err: exchange.NewTransportError(fmt.Errorf("build request: %w", err))}
	}
	headers.Apply(httpReq.Header)

	start := time.Now()
	resp, err := c.httpCli.Do(httpReq)
	if err != nil {
		slog.Error("btcmarkets request failed", "request", req.ToString(), "error", err)
		return exchange.Result{Err: exchange.NewTransportError(err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return exchange.Result{Err: &exchange.APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("read response body: %s", err),
		}}
	}

	slog.Debug("btcmarkets request done",
		"request", req.ToString(),
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return exchange.Result{Err: exchange.NewHTTPError(resp.StatusCode, raw)}
	}

	payload, err := decodePayload(raw)
	if err != nil {
		return exchange.Result{Err: &exchange.APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("decode response body: %s", err),
		}}
	}
	return exchange.Result{Payload: payload}
}

// decodePayload keeps numbers as json.Number so ids and amounts survive
// untouched. An empty body decodes to nil.
func decodePayload(raw []byte) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}
