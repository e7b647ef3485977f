package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vzahanych/brightsky/pkg/brightsky"
	"github.com/vzahanych/brightsky/pkg/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "brightsky-go"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches Bright Sky queries over HTTP and decodes the responses.
type Client struct {
	baseURL   string
	userAgent string
	http      Doer
	logger    *zap.Logger
	tele      *telemetry.Telemetry
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithTelemetry(tele *telemetry.Telemetry) Option {
	return func(c *Client) { c.tele = tele }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout replaces the HTTP client with one that gives up after d.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   brightsky.DefaultBaseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: defaultTimeout},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch sends q and returns the raw response body. Non-2xx answers are
// returned as *StatusError.
func (c *Client) Fetch(ctx context.Context, q brightsky.Query) ([]byte, error) {
	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "brightsky.Fetch")
	defer span.End()

	errAttrs := map[string]interface{}{"brightsky.endpoint": q.Path()}

	u, err := brightsky.URL(c.baseURL, q)
	if err != nil {
		c.tele.RecordError(err, ctx, errAttrs)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("brightsky.endpoint", q.Path()),
		attribute.String("http.url", u.String()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	c.logger.Debug("Fetching from Bright Sky",
		zap.String("endpoint", q.Path()),
		zap.String("url", u.String()))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.tele.RecordError(err, ctx, errAttrs)
		c.logger.Warn("Bright Sky request failed",
			zap.String("endpoint", q.Path()),
			zap.Error(err))
		return nil, fmt.Errorf("request %s: %w", q.Path(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.tele.RecordError(err, ctx, errAttrs)
		return nil, fmt.Errorf("read %s response: %w", q.Path(), err)
	}

	span.SetAttributes(
		attribute.Int("http.status_code", resp.StatusCode),
		attribute.Int("http.response_size", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := newStatusError(resp.StatusCode, body)
		c.tele.RecordError(statusErr, ctx, errAttrs)
		c.logger.Warn("Bright Sky returned an error status",
			zap.String("endpoint", q.Path()),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", statusErr.Detail))
		return nil, statusErr
	}

	c.logger.Debug("Bright Sky request completed",
		zap.String("endpoint", q.Path()),
		zap.Int("status", resp.StatusCode),
		zap.Int("body_size", len(body)),
		zap.Duration("latency", time.Since(start)))

	return body, nil
}

// Get fetches q and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, q brightsky.Query, out any) error {
	body, err := c.Fetch(ctx, q)
	if err != nil {
		return err
	}

	ctx, end := c.tele.StartSpanWithAttributes(ctx, "brightsky.Decode", map[string]interface{}{
		"brightsky.endpoint": q.Path(),
		"body_size":          len(body),
	})
	defer end()

	if err := json.Unmarshal(body, out); err != nil {
		err = fmt.Errorf("decode %s response: %w", q.Path(), err)
		c.tele.RecordError(err, ctx, nil)
		return err
	}
	return nil
}

func (c *Client) CurrentWeather(ctx context.Context, q *brightsky.CurrentWeatherQuery) (*brightsky.CurrentWeatherResponse, error) {
	var resp brightsky.CurrentWeatherResponse
	if err := c.Get(ctx, q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Weather(ctx context.Context, q *brightsky.WeatherQuery) (*brightsky.WeatherResponse, error) {
	var resp brightsky.WeatherResponse
	if err := c.Get(ctx, q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Radar(ctx context.Context, q *brightsky.RadarQuery) (*brightsky.RadarResponse, error) {
	var resp brightsky.RadarResponse
	if err := c.Get(ctx, q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Alerts(ctx context.Context, q *brightsky.AlertsQuery) (*brightsky.AlertsResponse, error) {
	var resp brightsky.AlertsResponse
	if err := c.Get(ctx, q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
