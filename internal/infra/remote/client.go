// Package remote implements the adapter to the remote employee-record service.
//
// Every method issues exactly one HTTP request and returns either a value or a
// *domain.Error classified as not-found, rate-limited or external-service
// failure. Retrying is left to the caller.
package remote

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
	"strconv"
	"strings"
	"time"

	"github.com/vietddude/employees/internal/core/domain"
	"github.com/vietddude/employees/internal/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	msgInvalidResponse = "invalid response from external service"
	msgCreateFailed    = "failed to create employee"
	msgDeleteFailed    = "failed to delete employee"

	// maxErrorBody bounds how much of a failed response is kept in the cause.
	maxErrorBody = 512
)

// Config holds remote service connection settings.
type Config struct {
	Name    string        `yaml:"name"`
	BaseURL string        `yaml:"base_url"` // e.g. http://localhost:8112/api/v1/employee
	Timeout time.Duration `yaml:"timeout"`
}

// operation describes one HTTP exchange with the remote service.
type operation struct {
	name   string // metric/log label
	method string
	path   string // appended to the base URL, empty for collection calls
	body   any
	id     string // set for single-employee lookups so 404 maps to not-found
}

// Client talks to the remote employee service over HTTP.
type Client struct {
	name       string
	endpoint   string
	httpClient *http.Client
	log        *slog.Logger

	Monitor *Monitor
}

// NewClient creates a new remote client.
func NewClient(cfg Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	name := cfg.Name
	if name == "" {
		name = "employee-service"
	}
	return &Client{
		name:     name,
		endpoint: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: otelhttp.NewTransport(&http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			}),
		},
		log:     log.With("component", "remote", "remote", name),
		Monitor: NewMonitor(),
	}
}

// Name returns the configured remote name.
func (c *Client) Name() string {
	return c.name
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// FetchAll returns every employee. An absent payload is an empty collection.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Employee, error) {
	env, err := exchange[[]domain.Employee](ctx, c, operation{name: "fetch_all", method: http.MethodGet})
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		c.log.Warn("External service returned null employee data")
		return []domain.Employee{}, nil
	}
	return *env.Data, nil
}

// FetchOne returns the employee with the given id.
func (c *Client) FetchOne(ctx context.Context, id string) (domain.Employee, error) {
	op := operation{name: "fetch_one", method: http.MethodGet, path: url.PathEscape(id), id: id}
	env, err := exchange[domain.Employee](ctx, c, op)
	if err != nil {
		return domain.Employee{}, err
	}
	if env.Data == nil {
		return domain.Employee{}, domain.NewExternalService(op.name, msgInvalidResponse, nil)
	}
	return *env.Data, nil
}

// Create asks the remote service to create an employee and returns it.
func (c *Client) Create(ctx context.Context, req domain.CreateEmployeeRequest) (domain.Employee, error) {
	op := operation{name: "create", method: http.MethodPost, body: req}
	env, err := exchange[domain.Employee](ctx, c, op)
	if err != nil {
		return domain.Employee{}, err
	}
	if env.Data == nil {
		return domain.Employee{}, domain.NewExternalService(op.name, msgCreateFailed, nil)
	}
	return *env.Data, nil
}

// DeleteByName deletes the employee with the given name. The remote API keys
// deletion on name, so callers resolve the name first.
func (c *Client) DeleteByName(ctx context.Context, name string) error {
	op := operation{name: "delete", method: http.MethodDelete, body: domain.DeleteEmployeeRequest{Name: name}}
	env, err := exchange[bool](ctx, c, op)
	if err != nil {
		return err
	}
	if env.Data == nil || !*env.Data {
		return domain.NewExternalService(op.name, msgDeleteFailed, nil)
	}
	return nil
}

func (c *Client) url(path string) string {
	if path == "" {
		return c.endpoint
	}
	return c.endpoint + "/" + path
}

// exchange performs one request and decodes the envelope.
func exchange[T any](ctx context.Context, c *Client, op operation) (*domain.Envelope[T], error) {
	start := time.Now()
	body, err := c.do(ctx, op)
	latency := time.Since(start)
	metrics.RemoteLatency.WithLabelValues(op.name).Observe(latency.Seconds())

	var env domain.Envelope[T]
	if err == nil {
		if jsonErr := json.Unmarshal(body, &env); jsonErr != nil {
			err = domain.NewExternalService(op.name, "parse response", jsonErr)
		}
	}
	if err != nil {
		c.observeFailure(op, latency, err)
		return nil, err
	}

	c.Monitor.RecordRequest(latency)
	metrics.RemoteCallsTotal.WithLabelValues(op.name, "success").Inc()
	return &env, nil
}

// do sends the request and classifies the response, returning the body of a
// 2xx response that is not empty.
func (c *Client) do(ctx context.Context, op operation) ([]byte, error) {
	var reqBody io.Reader
	if op.body != nil {
		jsonData, err := json.Marshal(op.body)
		if err != nil {
			return nil, domain.NewExternalService(op.name, "marshal request", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, op.method, c.url(op.path), reqBody)
	if err != nil {
		return nil, domain.NewExternalService(op.name, "create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewExternalService(op.name, "failed to communicate with external service", err)
	}
	defer resp.Body.Close()

	// Rate limit detection
	if resp.StatusCode == http.StatusTooManyRequests {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, domain.NewRateLimited(op.name, parseRetryAfter(resp.Header.Get("Retry-After")))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewExternalService(op.name, "read response", err)
	}

	if resp.StatusCode == http.StatusNotFound && op.id != "" {
		return nil, domain.NewNotFound(op.name, op.id)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		cause := fmt.Errorf("http %d: %s", resp.StatusCode, truncate(body, maxErrorBody))
		return nil, domain.NewExternalService(op.name, "external service returned an error", cause)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, domain.NewExternalService(op.name, msgInvalidResponse, nil)
	}
	return body, nil
}

func (c *Client) observeFailure(op operation, latency time.Duration, err error) {
	kind := domain.KindOf(err)
	metrics.RemoteCallsTotal.WithLabelValues(op.name, kind.String()).Inc()

	switch kind {
	case domain.KindRateLimited:
		var de *domain.Error
		if errors.As(err, &de) {
			c.Monitor.RecordThrottle(de.RetryAfter)
		}
		c.log.Info("Rate limited by external service", "operation", op.name)
	case domain.KindNotFound:
		c.Monitor.RecordRequest(latency)
		c.log.Warn("Employee not found", "operation", op.name, "id", op.id)
	default:
		c.Monitor.RecordFailure()
		c.log.Error("External service call failed", "operation", op.name, "error", err)
	}
}

// parseRetryAfter accepts the delta-seconds form of Retry-After.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func truncate(b []byte, limit int) string {
	if len(b) <= limit {
		return string(b)
	}
	return string(b[:limit]) + "..."
}
