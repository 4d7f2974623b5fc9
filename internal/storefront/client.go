package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL   = "http://127.0.0.1:5000"
	defaultUserAgent = "shopwatch/0.1"
	requestTimeout   = 10 * time.Second
)

// Client talks to the storefront HTTP API. Credentials are never held
// here; endpoints that need a bearer token take it as an argument.
type Client struct {
	rc *resty.Client
}

// NewClient builds a Client for the given base URL. An empty value
// falls back to the local development server.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	rc := resty.New().
		SetBaseURL(base.String()).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", defaultUserAgent)
	return &Client{rc: rc}, nil
}

// ListProducts retrieves the raw product catalogue.
func (c *Client) ListProducts(ctx context.Context) ([]map[string]any, error) {
	return c.fetchCollection(ctx, "/products", "")
}

// ListWishlist retrieves the raw wishlist entries for the token's user.
func (c *Client) ListWishlist(ctx context.Context, token string) ([]map[string]any, error) {
	return c.fetchCollection(ctx, "/wishlist", token)
}

// ListAlerts retrieves the raw price-alert records for the token's user.
func (c *Client) ListAlerts(ctx context.Context, token string) ([]map[string]any, error) {
	return c.fetchCollection(ctx, "/notifications", token)
}

// AddWishlistItem submits a product to the wishlist.
func (c *Client) AddWishlistItem(ctx context.Context, token string, item WishlistPayload) error {
	resp, err := c.request(ctx, token).SetBody(item).Post("/wishlist")
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

// RemoveWishlistItem deletes a wishlist entry by its canonical id.
func (c *Client) RemoveWishlistItem(ctx context.Context, token, canonicalID string) error {
	if strings.TrimSpace(canonicalID) == "" {
		return fmt.Errorf("canonical id required")
	}
	resp, err := c.request(ctx, token).Delete("/wishlist/" + url.PathEscape(canonicalID))
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

// CreateAlert submits a price alert and returns the created raw record.
func (c *Client) CreateAlert(ctx context.Context, token string, payload AlertPayload) (map[string]any, error) {
	resp, err := c.request(ctx, token).SetBody(payload).Post("/notifications")
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	var created map[string]any
	if err := json.Unmarshal(resp.Body(), &created); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return created, nil
}

// Login exchanges credentials for a bearer token. The identifier may
// be a username or an email address.
func (c *Client) Login(ctx context.Context, identifier, password string) (LoginResponse, error) {
	body := map[string]string{"identifier": identifier, "password": password}
	resp, err := c.request(ctx, "").SetBody(body).Post("/login")
	if err != nil {
		return LoginResponse{}, fmt.Errorf("execute request: %w", err)
	}
	if resp.IsError() {
		return LoginResponse{}, apiError(resp)
	}
	var out LoginResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return LoginResponse{}, fmt.Errorf("decode response: %w", err)
	}
	if out.Token == "" {
		return LoginResponse{}, fmt.Errorf("login response carried no token")
	}
	return out, nil
}

// Register creates a new account. The caller logs in separately.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	resp, err := c.request(ctx, "").SetBody(body).Post("/register")
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

func (c *Client) fetchCollection(ctx context.Context, path, token string) ([]map[string]any, error) {
	resp, err := c.request(ctx, token).Get(path)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	var records []map[string]any
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return records, nil
}

func (c *Client) request(ctx context.Context, token string) *resty.Request {
	req := c.rc.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// apiError extracts the server's own message from a non-2xx payload.
// The backend is inconsistent about the field name.
func apiError(resp *resty.Response) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(resp.Body(), &payload); err == nil {
		msg = payload.Message
		if msg == "" {
			msg = payload.Error
		}
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", baseURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
