// Package apiclient talks to the hotel backend REST API on behalf of the walk-in flow.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"hotel-frontdesk/models"
)

// Error is a failed backend call. Status 0 means the request never got an HTTP answer.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.IsNetwork() {
		return "backend unreachable: " + e.Message
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// IsNetwork reports whether the failure happened below HTTP.
func (e *Error) IsNetwork() bool { return e.Status == 0 }

// Config points the client at a backend. Timeout 0 disables the client-side deadline.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  zerolog.Logger
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func New(cfg Config, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "apiclient").Logger()
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "hotel-backend",
		Timeout: 30 * time.Second,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		logger:  logger,
	}
}

// AvailableNow lists every room with its current status and the per-type summary.
func (c *Client) AvailableNow(ctx context.Context) (models.AvailableRooms, error) {
	var out models.AvailableRooms
	if err := c.do(ctx, http.MethodGet, "/api/rooms/available-now", nil, &out); err != nil {
		return models.AvailableRooms{}, err
	}
	return out, nil
}

// CreateBooking submits a walk-in check-in and returns the server-confirmed booking.
func (c *Client) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (models.BookingConfirmation, error) {
	var out models.BookingResponse
	if err := c.do(ctx, http.MethodPost, "/api/walkin/checkin", req, &out); err != nil {
		return models.BookingConfirmation{}, err
	}
	return out.Booking, nil
}

// GetBooking fetches a confirmed walk-in booking by reference code.
func (c *Client) GetBooking(ctx context.Context, reference string) (models.BookingConfirmation, error) {
	var out models.BookingResponse
	path := "/api/walkin/booking/" + url.PathEscape(strings.TrimSpace(reference))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return models.BookingConfirmation{}, err
	}
	return out.Booking, nil
}

// Health checks the backend's /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: fmt.Sprintf("read response: %v", err)}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.logger.Warn().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Str("error", msg).Msg("backend call failed")
		return &Error{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return &Error{Status: resp.StatusCode, Message: "invalid response body"}
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "request was not successful"
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Status: resp.StatusCode, Message: "invalid response data"}
	}
	return nil
}

// send runs the request through the breaker. Only transport failures count against it;
// HTTP error statuses are the backend answering.
func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.http.Do(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn().Str("path", path).Msg("backend circuit open")
			return nil, &Error{Message: "backend is temporarily unavailable"}
		}
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return nil, &Error{Message: err.Error()}
	}
	return result.(*http.Response), nil
}
