/*
Package remote is the HTTP client for the reservation service.

PURPOSE:
  Implements engine.API over plain JSON/HTTP. Every outbound request
  carries "Authorization: Bearer <token>" when a token is held; the token
  is read from the durable KV on each request, so the client always sees
  the engine's latest session state without holding a reference to it.

ERROR MAPPING:
  - transport failure (no response, timeout) -> wraps engine.ErrNetwork
  - 4xx/5xx with a structured body           -> *engine.RemoteError
    (401 unwraps to engine.ErrUnauthorized, which the engine escalates)

TIMEOUT:
  A fixed per-request bound on the underlying http.Client. A timeout
  surfaces as a network failure, never as a hung operation.
*/
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/warp/reservation-engine/engine"
)

const defaultTimeout = 10 * time.Second

// Client talks to the reservation service. Safe for concurrent use.
type Client struct {
	base string
	http *http.Client
	kv   engine.KV
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client (tests, custom
// transports).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the fixed per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a client for the service at baseURL. kv is the durable
// store the session token is read from.
func New(baseURL string, kv engine.KV, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: defaultTimeout},
		kv:   kv,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// AUTH
// =============================================================================

func (c *Client) Login(ctx context.Context, username, password string) (engine.LoginResult, error) {
	var out engine.LoginResult
	body := map[string]string{"username": username, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &out)
	return out, err
}

func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/refresh-token", nil, nil, &out)
	return out.Token, err
}

// =============================================================================
// RESOURCES AND REFERENCE DATA
// =============================================================================

func (c *Client) ListResources(ctx context.Context, criteria engine.FilterCriteria) ([]engine.Resource, error) {
	q := url.Values{}
	if criteria.Type != "" {
		q.Set("type", criteria.Type)
	}
	if len(criteria.Features) > 0 {
		ids := make([]string, len(criteria.Features))
		for i, f := range criteria.Features {
			ids[i] = string(f)
		}
		q.Set("features", strings.Join(ids, ","))
	}
	if criteria.MinCapacity > 0 {
		q.Set("capacity", fmt.Sprint(criteria.MinCapacity))
	}
	if criteria.Location != "" {
		q.Set("location", criteria.Location)
	}
	if criteria.Query != "" {
		q.Set("query", criteria.Query)
	}

	var out []engine.Resource
	err := c.do(ctx, http.MethodGet, "/exchange/resources", q, nil, &out)
	return out, err
}

func (c *Client) GetResource(ctx context.Context, id engine.ResourceID) (engine.Resource, error) {
	var out engine.Resource
	err := c.do(ctx, http.MethodGet, "/exchange/resources/"+url.PathEscape(string(id)), nil, nil, &out)
	return out, err
}

func (c *Client) ListFeatures(ctx context.Context) ([]engine.Feature, error) {
	var out []engine.Feature
	err := c.do(ctx, http.MethodGet, "/exchange/features", nil, nil, &out)
	return out, err
}

func (c *Client) ListResourceTypes(ctx context.Context) ([]engine.ResourceType, error) {
	var out []engine.ResourceType
	err := c.do(ctx, http.MethodGet, "/resource-types", nil, nil, &out)
	return out, err
}

func (c *Client) CreateResourceType(ctx context.Context, input engine.ResourceTypeInput) (engine.ResourceType, error) {
	var out engine.ResourceType
	err := c.do(ctx, http.MethodPost, "/resource-types", nil, input, &out)
	return out, err
}

func (c *Client) UpdateResourceType(ctx context.Context, id int, input engine.ResourceTypeInput) (engine.ResourceType, error) {
	var out engine.ResourceType
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/resource-types/%d", id), nil, input, &out)
	return out, err
}

func (c *Client) DeleteResourceType(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/resource-types/%d", id), nil, nil, nil)
}

// =============================================================================
// BOOKINGS
// =============================================================================

func (c *Client) ListBookings(ctx context.Context, query engine.BookingQuery) ([]engine.Booking, error) {
	q := url.Values{}
	if query.UserID != "" {
		q.Set("user_id", string(query.UserID))
	}
	if query.ResourceID != "" {
		q.Set("resource_id", string(query.ResourceID))
	}
	if !query.StartDate.IsZero() {
		q.Set("start_date", query.StartDate.UTC().Format(time.RFC3339))
	}
	if !query.EndDate.IsZero() {
		q.Set("end_date", query.EndDate.UTC().Format(time.RFC3339))
	}
	if query.Status != "" {
		q.Set("status", string(query.Status))
	}

	var out []engine.Booking
	err := c.do(ctx, http.MethodGet, "/exchange/bookings", q, nil, &out)
	return out, err
}

func (c *Client) GetBooking(ctx context.Context, id engine.BookingID) (engine.Booking, error) {
	var out engine.Booking
	err := c.do(ctx, http.MethodGet, "/exchange/bookings/"+url.PathEscape(string(id)), nil, nil, &out)
	return out, err
}

func (c *Client) CreateBooking(ctx context.Context, req engine.BookingRequest) (engine.Booking, error) {
	var out engine.Booking
	err := c.do(ctx, http.MethodPost, "/exchange/bookings", nil, req, &out)
	return out, err
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id engine.BookingID, status engine.BookingStatus) (engine.Booking, error) {
	var out engine.Booking
	body := map[string]string{"status": string(status)}
	err := c.do(ctx, http.MethodPut, "/exchange/bookings/"+url.PathEscape(string(id))+"/status", nil, body, &out)
	return out, err
}

func (c *Client) CheckAvailability(ctx context.Context, id engine.ResourceID, start, end time.Time) (engine.AvailabilityResult, error) {
	var out engine.AvailabilityResult
	body := map[string]string{
		"resource_id": string(id),
		"start_time":  start.UTC().Format(time.RFC3339),
		"end_time":    end.UTC().Format(time.RFC3339),
	}
	err := c.do(ctx, http.MethodPost, "/exchange/availability", nil, body, &out)
	return out, err
}

// =============================================================================
// TRANSPORT
// =============================================================================

// errorBody is the structured error shape the service returns. Some
// endpoints use "message", others "detail"; the first non-empty wins.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.kv.Get(engine.KeySessionToken); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		json.Unmarshal(raw, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Detail
		}
		return &engine.RemoteError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}
