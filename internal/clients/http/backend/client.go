package backend

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

	"github.com/oapi-codegen/runtime"
)

// ErrNotConfigured is returned when a nil client is used.
var ErrNotConfigured = errors.New("backend client not configured")

// APIError describes a non-successful backend response.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if len(e.Errors) > 0 {
		msg += ": " + strings.Join(e.Errors, "; ")
	}
	return fmt.Sprintf("backend API error (%d): %s", e.StatusCode, msg)
}

// StatusCode extracts the HTTP status of an APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// envelope is the response wrapper every backend endpoint uses.
type envelope[T any] struct {
	Success bool     `json:"success"`
	Data    T        `json:"data"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// RequestOption configures a single call.
type RequestOption func(*requestOptions)

type requestOptions struct {
	token    string
	language string
}

// WithToken authenticates the call with a bearer token.
func WithToken(token string) RequestOption {
	return func(opts *requestOptions) {
		opts.token = strings.TrimSpace(token)
	}
}

// WithLanguage sets the lang query parameter for localized endpoints.
func WithLanguage(lang string) RequestOption {
	return func(opts *requestOptions) {
		opts.language = strings.TrimSpace(lang)
	}
}

// Client talks to the storefront REST backend.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient instantiates the backend client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("backend base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("backend base URL must be absolute: %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func pathParam(name string, value any) (string, error) {
	styled, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		return "", fmt.Errorf("style path parameter %s: %w", name, err)
	}
	return styled, nil
}

func addQueryParam(values url.Values, name string, value any) error {
	fragment, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		return fmt.Errorf("style query parameter %s: %w", name, err)
	}
	parsed, err := url.ParseQuery(fragment)
	if err != nil {
		return fmt.Errorf("parse query parameter %s: %w", name, err)
	}
	for k, vs := range parsed {
		for _, v := range vs {
			values.Add(k, v)
		}
	}
	return nil
}

func collect(optFns []RequestOption) requestOptions {
	var opts requestOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	return opts
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, query url.Values, body any, opts requestOptions) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := c.newRequest(ctx, method, path, query, reader, opts)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, opts requestOptions) (*http.Request, error) {
	if opts.language != "" {
		if query == nil {
			query = url.Values{}
		}
		if err := addQueryParam(query, "lang", opts.language); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("build backend request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	return req, nil
}

// do executes req and unwraps the response envelope.
func do[T any](c *Client, req *http.Request) (T, error) {
	var zero T
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, fmt.Errorf("call backend API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return zero, fmt.Errorf("read backend response: %w", err)
	}
	var body envelope[T]
	decodeErr := json.Unmarshal(raw, &body)
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		if decodeErr == nil {
			if body.Message != "" {
				apiErr.Message = body.Message
			}
			apiErr.Errors = body.Errors
		}
		return zero, apiErr
	}
	if decodeErr != nil {
		return zero, fmt.Errorf("decode backend response: %w", decodeErr)
	}
	if !body.Success {
		return zero, &APIError{StatusCode: resp.StatusCode, Message: body.Message, Errors: body.Errors}
	}
	return body.Data, nil
}
