package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/de-tools/irevolution/pkg/adapters"
	"github.com/de-tools/irevolution/pkg/models/api"
	"github.com/de-tools/irevolution/pkg/models/domain"
)

const (
	KPIsPath     = "/api/kpis"
	ProductsPath = "/api/apple-products"

	defaultTimeout = 10 * time.Second
)

// ErrSourceUnavailable covers every way a data source can fail: the request
// did not complete, the status was not 2xx, or the body was not valid JSON.
var ErrSourceUnavailable = errors.New("data source unavailable or malformed")

// Client reads dashboard data from the iRevolution API
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout bounds every request. A client passed with WithHTTPClient is
// copied, never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(cl *Client) {
		cl.timeout = timeout
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		httpClient := *c.httpClient
		httpClient.Timeout = c.timeout
		c.httpClient = &httpClient
	}
	return c
}

func (c *Client) KPIs(ctx context.Context) (domain.KPIs, error) {
	var resp api.KPIs
	if err := c.getJSON(ctx, KPIsPath, &resp); err != nil {
		return domain.KPIs{}, err
	}
	return adapters.MapKPIsApiToDomain(resp), nil
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var resp []api.Product
	if err := c.getJSON(ctx, ProductsPath, &resp); err != nil {
		return nil, err
	}
	return adapters.MapProductsApiToDomain(resp), nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request for %s: %v", ErrSourceUnavailable, url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrSourceUnavailable, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: GET %s: status %d: %s",
			ErrSourceUnavailable, url, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrSourceUnavailable, url, err)
	}
	return nil
}
