package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/nopianhadi/adminkit/core/store"
	"github.com/nopianhadi/adminkit/pkg/logger"
)

// Client is a store.Client over a PostgREST HTTP endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Intended for tests
// and callers with custom transport requirements.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger configures structured logging. Logging is discarded by default.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New validates the configuration and creates a client. It does not touch
// the network; the first request does.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	if cfg.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Capabilities implements store.Client. PostgREST applies one PATCH to every
// row matched by the filter, so multi-row updates are a single call.
func (c *Client) Capabilities() store.Capabilities {
	return store.Capabilities{BulkUpdate: true}
}

// From implements store.Client.
func (c *Client) From(table string) store.Query {
	return &query{client: c, table: table, params: url.Values{}}
}

// Healthcheck returns a function that verifies the endpoint answers at all.
// Any HTTP response counts as healthy; only transport failures do not.
func Healthcheck(c *Client) func(context.Context) error {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		c.authorize(req)
		resp, err := c.http.Do(req)
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		resp.Body.Close()
		return nil
	}
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

type query struct {
	client *Client
	table  string
	params url.Values
}

func (q *query) Select(columns ...string) store.Query {
	q.params.Set("select", strings.Join(columns, ","))
	return q
}

func (q *query) Eq(column string, value any) store.Query {
	q.params.Add(column, "eq."+fmt.Sprintf("%v", value))
	return q
}

func (q *query) In(column string, values ...any) store.Query {
	q.params.Add(column, "in.("+joinValues(values)+")")
	return q
}

func (q *query) Or(filters ...store.Filter) store.Query {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		switch f.Op {
		case store.OpIn:
			values, _ := f.Value.([]any)
			parts = append(parts, fmt.Sprintf("%s.in.(%s)", f.Column, joinValues(values)))
		default:
			parts = append(parts, fmt.Sprintf("%s.eq.%s", f.Column, quoteValue(f.Value)))
		}
	}
	q.params.Add("or", "("+strings.Join(parts, ",")+")")
	return q
}

func (q *query) Order(column string, descending bool) store.Query {
	direction := "asc"
	if descending {
		direction = "desc"
	}
	q.params.Set("order", column+"."+direction)
	return q
}

func (q *query) Limit(n int) store.Query {
	q.params.Set("limit", fmt.Sprintf("%d", n))
	return q
}

func (q *query) Get(ctx context.Context) ([]store.Row, error) {
	body, err := q.do(ctx, http.MethodGet, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRows(body)
}

// Single asks PostgREST for exactly one row via the object media type. The
// endpoint answers 406 when the filter matches zero or multiple rows; the
// error body distinguishes the two cases.
func (q *query) Single(ctx context.Context) (store.Row, error) {
	headers := map[string]string{"Accept": "application/vnd.pgrst.object+json"}
	body, err := q.do(ctx, http.MethodGet, nil, headers)
	if err != nil {
		return nil, err
	}
	var row store.Row
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, errors.Join(ErrUnexpectedResponse, err)
	}
	return row, nil
}

func (q *query) Insert(ctx context.Context, rows ...store.Row) ([]store.Row, error) {
	var payload any = rows
	if len(rows) == 1 {
		payload = rows[0]
	}
	body, err := q.do(ctx, http.MethodPost, payload, nil)
	if err != nil {
		return nil, err
	}
	return decodeRows(body)
}

func (q *query) Update(ctx context.Context, patch store.Row) ([]store.Row, error) {
	body, err := q.do(ctx, http.MethodPatch, patch, nil)
	if err != nil {
		return nil, err
	}
	return decodeRows(body)
}

func (q *query) Delete(ctx context.Context) error {
	_, err := q.do(ctx, http.MethodDelete, nil, nil)
	return err
}

func (q *query) do(ctx context.Context, method string, payload any, headers map[string]string) ([]byte, error) {
	endpoint := q.client.baseURL + "/" + url.PathEscape(q.table)
	if encoded := q.params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("postgrest: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, errors.Join(store.ErrUnavailable, err)
	}
	q.client.authorize(req)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := q.client.http.Do(req)
	if err != nil {
		return nil, errors.Join(store.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(store.ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		q.client.log.Debug("request rejected",
			logger.Component("postgrest"),
			logger.Table(q.table),
			slog.Int("status", resp.StatusCode))
		return nil, q.statusError(resp.StatusCode, data)
	}
	return data, nil
}

// statusError maps HTTP failures onto the store error taxonomy.
func (q *query) statusError(status int, body []byte) error {
	var remote struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	}
	_ = json.Unmarshal(body, &remote)
	cause := fmt.Errorf("postgrest: %s %s: status %d: %s", q.table, remote.Code, status, remote.Message)

	switch {
	case status == http.StatusNotAcceptable:
		// Object media type with a filter matching != 1 row.
		if strings.Contains(remote.Details, "0 rows") {
			return errors.Join(store.ErrNotFound, cause)
		}
		return errors.Join(store.ErrMultipleRows, cause)
	case status == http.StatusNotFound:
		return errors.Join(store.ErrNotFound, cause)
	case status == http.StatusConflict:
		return errors.Join(store.ErrRejected, cause)
	case status >= 500:
		return errors.Join(store.ErrUnavailable, cause)
	default:
		return errors.Join(store.ErrRejected, cause)
	}
}

func decodeRows(body []byte) ([]store.Row, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var rows []store.Row
	if err := json.Unmarshal(body, &rows); err != nil {
		var single store.Row
		if err2 := json.Unmarshal(body, &single); err2 == nil {
			return []store.Row{single}, nil
		}
		return nil, errors.Join(ErrUnexpectedResponse, err)
	}
	return rows, nil
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = quoteValue(v)
	}
	return strings.Join(parts, ",")
}

// quoteValue renders a filter operand for list and logic-tree positions,
// where PostgREST treats commas, dots, and parentheses as syntax. Plain
// vertical filters take their value verbatim and never go through here.
func quoteValue(v any) string {
	s := fmt.Sprintf("%v", v)
	if strings.ContainsAny(s, ",.()\" ") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}
