package genai

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

	"creatorstudio/internal/infra"
)

// DefaultBaseURL is the public Gemini API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrMissingAPIKey indicates the client could not resolve credentials for a call.
var ErrMissingAPIKey = errors.New("genai: api key is required")

// KeySource resolves the API key for each call so that a newly selected key
// takes effect without rebuilding the client.
type KeySource func(ctx context.Context) (string, error)

// StaticKey returns a KeySource that always yields key.
func StaticKey(key string) KeySource {
	key = strings.TrimSpace(key)
	return func(context.Context) (string, error) {
		if key == "" {
			return "", ErrMissingAPIKey
		}
		return key, nil
	}
}

// Options controls how the Gemini client is configured.
type Options struct {
	Keys           KeySource
	BaseURL        string
	HTTPClient     *http.Client
	DownloadClient *http.Client
	Logger         *infra.Logger
}

// Client is a thin REST facade over the Gemini API: content generation,
// long-running video predictions, operation polling and file download.
type Client struct {
	keys           KeySource
	baseURL        string
	httpClient     *http.Client
	downloadClient *http.Client
	logger         *infra.Logger
}

// APIError is a non-2xx answer from the provider.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gemini status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("gemini status %d", e.Status)
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
		Status  string `json:"status,omitempty"`
	} `json:"error"`
}

// NewClient constructs a Gemini client with sane defaults. Callers may provide
// nil HTTP clients; reusable ones with sensible timeouts will be created.
func NewClient(opts Options) (*Client, error) {
	if opts.Keys == nil {
		return nil, errors.New("genai: key source is required")
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	download := opts.DownloadClient
	if download == nil {
		download = &http.Client{Timeout: 5 * time.Minute}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}

	return &Client{
		keys:           opts.Keys,
		baseURL:        baseURL,
		httpClient:     client,
		downloadClient: download,
		logger:         logger,
	}, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GenerateContent calls models/{model}:generateContent.
func (c *Client) GenerateContent(ctx context.Context, model string, req GenerateContentRequest) (*GenerateContentResponse, error) {
	var out GenerateContentResponse
	path := fmt.Sprintf("/models/%s:generateContent", url.PathEscape(model))
	start := time.Now()
	if err := c.invoke(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	c.logger.Debug().
		Str("model", model).
		Int("candidates", len(out.Candidates)).
		Dur("elapsed", time.Since(start)).
		Msg("genai: generate content")
	return &out, nil
}

// PredictLongRunning submits an asynchronous video job and returns its operation.
func (c *Client) PredictLongRunning(ctx context.Context, model string, req PredictLongRunningRequest) (*Operation, error) {
	var op Operation
	path := fmt.Sprintf("/models/%s:predictLongRunning", url.PathEscape(model))
	if err := c.invoke(ctx, http.MethodPost, path, req, &op); err != nil {
		return nil, err
	}
	if strings.TrimSpace(op.Name) == "" {
		return nil, errors.New("genai: operation name missing from response")
	}
	c.logger.Debug().Str("model", model).Str("operation", op.Name).Msg("genai: submitted long-running job")
	return &op, nil
}

// GetOperation re-fetches the state of a long-running operation.
func (c *Client) GetOperation(ctx context.Context, name string) (*Operation, error) {
	name = strings.Trim(strings.TrimSpace(name), "/")
	if name == "" {
		return nil, errors.New("genai: operation name is required")
	}
	var op Operation
	if err := c.invoke(ctx, http.MethodGet, "/"+name, nil, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

func (c *Client) invoke(ctx context.Context, method, path string, payload any, out any) error {
	key, err := c.keys(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return ErrMissingAPIKey
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", key)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoke gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gemini response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{Status: resp.StatusCode}
	var detail errorResponse
	if err := json.Unmarshal(data, &detail); err == nil && detail.Error.Message != "" {
		apiErr.Code = detail.Error.Code
		apiErr.Message = detail.Error.Message
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(data))
	return apiErr
}
