package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"intraday-simulator/internal/model"
)

// DefaultRESTPath is where the PostgREST gateway is mounted on the backend host.
const DefaultRESTPath = "/rest/v1"

// ErrInvalidBody is wrapped by a TransportError when a 2xx reply is not JSON.
var ErrInvalidBody = errors.New("response is not valid JSON")

// ErrMissingAPIKey is returned before any request when no credential is configured.
var ErrMissingAPIKey = errors.New("postgrest: api key is required")

// PostgRESTClient reads scenarios through a PostgREST gateway.
type PostgRESTClient struct {
	APIKey   string
	BaseURL  string
	RESTPath string
	Schema   Schema
	Client   *http.Client
	Logger   *zap.Logger
}

// Option configures a PostgRESTClient.
type Option func(*PostgRESTClient)

// WithHTTPClient sets a custom HTTP client (timeouts belong there).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *PostgRESTClient) {
		c.Client = hc
	}
}

// WithSchema overrides DefaultSchema.
func WithSchema(s Schema) Option {
	return func(c *PostgRESTClient) {
		c.Schema = s
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *PostgRESTClient) {
		c.Logger = l
	}
}

// WithRESTPath overrides DefaultRESTPath.
func WithRESTPath(p string) Option {
	return func(c *PostgRESTClient) {
		c.RESTPath = p
	}
}

// NewPostgRESTClient creates a client for the gateway at baseURL.
func NewPostgRESTClient(apiKey, baseURL string, opts ...Option) *PostgRESTClient {
	c := &PostgRESTClient{
		APIKey:   apiKey,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		RESTPath: DefaultRESTPath,
		Schema:   DefaultSchema,
		Client:   &http.Client{Timeout: 30 * time.Second},
		Logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	c.Logger = c.Logger.With(zap.String("component", "postgrest"))
	return c
}

var _ Repository = (*PostgRESTClient)(nil)

// CapitalsQuery is the query string listing capitals: select=<capital>.
func (c *PostgRESTClient) CapitalsQuery() string {
	return "select=" + c.Schema.CapitalColumn
}

// ScenariosQuery is the query string listing one capital's scenarios:
// select=*&<capital>=eq.<capital>&<drawdown>=lte.<drawdownMax>.
func (c *PostgRESTClient) ScenariosQuery(capital, drawdownMax float64) string {
	return fmt.Sprintf("select=*&%s=eq.%s&%s=lte.%s",
		c.Schema.CapitalColumn, formatNumber(capital),
		c.Schema.DrawdownColumn, formatNumber(drawdownMax))
}

// ListDistinctCapitals fetches every capital value and returns them deduplicated and sorted.
func (c *PostgRESTClient) ListDistinctCapitals(ctx context.Context) ([]float64, error) {
	body, err := c.get(ctx, "list capitals", c.CapitalsQuery())
	if err != nil {
		return nil, err
	}
	records, err := DecodeRecords(body, Schema{CapitalColumn: c.Schema.CapitalColumn})
	if err != nil {
		return nil, fmt.Errorf("list capitals: %w", err)
	}
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := model.Value(r.Capital); ok {
			values = append(values, v)
		}
	}
	capitals := uniqueSorted(values)
	c.Logger.Info("capitals loaded", zap.Int("rows", len(records)), zap.Int("distinct", len(capitals)))
	return capitals, nil
}

// ListScenarios fetches every row for capital with a drawdown at or below drawdownMax.
func (c *PostgRESTClient) ListScenarios(ctx context.Context, capital, drawdownMax float64) ([]model.ScenarioRecord, error) {
	body, err := c.get(ctx, "list scenarios", c.ScenariosQuery(capital, drawdownMax))
	if err != nil {
		return nil, err
	}
	records, err := DecodeRecords(body, c.Schema)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	c.Logger.Info("scenarios loaded",
		zap.Float64("capital", capital),
		zap.Float64("drawdown_max", drawdownMax),
		zap.Int("rows", len(records)))
	return records, nil
}

func (c *PostgRESTClient) get(ctx context.Context, op, rawQuery string) ([]byte, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	u, err := url.Parse(c.BaseURL + c.RESTPath + "/" + url.PathEscape(c.Schema.Table))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	// Built by hand: url.Values would reorder keys and escape "*".
	u.RawQuery = rawQuery

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.Logger.Warn("request failed", zap.String("op", op), zap.Duration("duration", duration), zap.Error(err))
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	c.Logger.Debug("response",
		zap.String("op", op),
		zap.String("path", u.Path),
		zap.String("query", u.RawQuery),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.Logger.Warn("backend error", zap.String("op", op), zap.Int("status", resp.StatusCode))
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if !json.Valid(body) {
		c.Logger.Warn("backend returned non-JSON body", zap.String("op", op), zap.Int("status", resp.StatusCode))
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Body: string(body), Err: ErrInvalidBody}
	}
	return body, nil
}
