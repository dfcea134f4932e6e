// Package communication is the storefront's client for the weblarek product
// API. It fetches the catalog and posts orders; every failure comes back as a
// wrapped error value and is logged here, at the boundary.
package communication

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/0wem/weblarek/modules/shared/types"
)

const (
	productPath = "/product/"
	orderPath   = "/order/"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 10 * time.Second

	maxErrorBody = 4 << 10
)

// ProductList is the GET /product/ response body.
type ProductList struct {
	Total int             `json:"total"`
	Items []types.Product `json:"items"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Client talks to the product API rooted at origin.
type Client struct {
	origin  string
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
	tracer  trace.Tracer
	fetch   singleflight.Group
}

type Option func(*Client)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout bounds each request. A client passed with WithHTTPClient is
// copied, never changed.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func NewClient(origin string, opts ...Option) *Client {
	c := &Client{
		origin: strings.TrimRight(origin, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   DefaultTimeout,
		},
		logger: slog.Default(),
		tracer: otel.Tracer("github.com/0wem/weblarek/modules/communication"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.http.Timeout != c.timeout {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// ProductList fetches the catalog. Concurrent calls share one request.
func (c *Client) ProductList(ctx context.Context) ([]types.Product, error) {
	v, err, _ := c.fetch.Do(productPath, func() (any, error) {
		return c.productList(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]types.Product), nil
}

func (c *Client) productList(ctx context.Context) ([]types.Product, error) {
	ctx, span := c.tracer.Start(ctx, "communication.ProductList")
	defer span.End()

	var list ProductList
	if err := c.do(ctx, http.MethodGet, productPath, nil, &list); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("failed to fetch product list", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if list.Items == nil {
		list.Items = []types.Product{}
	}

	span.SetAttributes(attribute.Int("product.count", len(list.Items)))
	c.logger.Debug("product list fetched", slog.Int("count", len(list.Items)))
	return list.Items, nil
}

// SendOrder posts order and returns the API's confirmation.
func (c *Client) SendOrder(ctx context.Context, order types.Order) (types.OrderResult, error) {
	ctx, span := c.tracer.Start(ctx, "communication.SendOrder",
		trace.WithAttributes(attribute.Int("order.items", len(order.Items))),
	)
	defer span.End()

	var result types.OrderResult
	if err := c.do(ctx, http.MethodPost, orderPath, order.Payload(), &result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("failed to send order", slog.Int("items", len(order.Items)), slog.Any("error", err))
		return types.OrderResult{}, fmt.Errorf("%w: %w", ErrNotSent, err)
	}

	span.SetAttributes(attribute.String("order.id", result.ID))
	c.logger.Info("order sent", slog.String("order_id", result.ID), slog.String("total", result.Total.String()))
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.origin+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); readErr == nil && json.Unmarshal(data, &eb) == nil {
			apiErr.Message = eb.Error
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
