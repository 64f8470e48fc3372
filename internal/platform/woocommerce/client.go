package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shopsync/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from the storefront API (1MB)
const maxResponseSize = 1 * 1024 * 1024

const productsPath = "/wp-json/wc/v3/products"

var ErrInvalidConfig = errors.New("woocommerce: base URL and consumer credentials are required")

type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
}

func (c Config) Validate() error {
	if c.BaseURL == "" || c.ConsumerKey == "" || c.ConsumerSecret == "" {
		return ErrInvalidConfig
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("woocommerce: invalid base URL: %w", err)
	}
	return nil
}

// Client implements integration.Catalog against the WooCommerce REST API v3.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}, nil
}

type imagePayload struct {
	Src string `json:"src"`
}

type productPayload struct {
	Name         string         `json:"name"`
	Slug         string         `json:"slug,omitempty"`
	Description  string         `json:"description"`
	RegularPrice string         `json:"regular_price"`
	Images       []imagePayload `json:"images,omitempty"`
}

type productResponse struct {
	ID int64 `json:"id"`
}

func toPayload(p integration.RemoteProduct) productPayload {
	payload := productPayload{
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		RegularPrice: p.RegularPrice,
	}
	if p.ImageURL != "" {
		payload.Images = []imagePayload{{Src: p.ImageURL}}
	}
	return payload
}

func (c *Client) CreateProduct(ctx context.Context, p integration.RemoteProduct) (int64, error) {
	var resp productResponse
	err := c.doRequest(ctx, http.MethodPost, productsPath, nil, toPayload(p), &resp)
	if err != nil {
		return 0, err
	}
	if resp.ID == 0 {
		return 0, fmt.Errorf("%w: missing product id", integration.ErrRemoteInvalidResponse)
	}
	return resp.ID, nil
}

func (c *Client) UpdateProduct(ctx context.Context, remoteID int64, p integration.RemoteProduct) error {
	path := productsPath + "/" + strconv.FormatInt(remoteID, 10)
	return c.doRequest(ctx, http.MethodPut, path, nil, toPayload(p), nil)
}

func (c *Client) DeleteProduct(ctx context.Context, remoteID int64) error {
	path := productsPath + "/" + strconv.FormatInt(remoteID, 10)
	// force=true skips WooCommerce's trash bin and removes the product outright.
	query := url.Values{"force": []string{"true"}}
	return c.doRequest(ctx, http.MethodDelete, path, query, nil, nil)
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("woocommerce: encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("woocommerce: building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(c.config.ConsumerKey, c.config.ConsumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", integration.ErrRemoteRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", integration.ErrRemoteInvalidResponse, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s returned %d: %s",
			integration.ErrRemoteRequestFailed, method, path, resp.StatusCode, truncate(respBody, 200))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", integration.ErrRemoteInvalidResponse, err)
		}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
