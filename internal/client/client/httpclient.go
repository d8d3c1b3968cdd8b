package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/nexuspost/internal/client/models"
	"github.com/dmitrijs2005/nexuspost/internal/logging"
)

const (
	requestIDHeader = "X-Request-ID"
	// The backend is commonly exposed through ngrok, whose interstitial page
	// is skipped when this header is present.
	ngrokSkipHeader = "ngrok-skip-browser-warning"
	ngrokSkipValue  = "69420"
)

// HTTPClient talks to the backend over REST/JSON.
type HTTPClient struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for baseURL. tokens may be nil, in which
// case no Authorization header is ever sent. httpClient may be nil; the
// default client has no timeout.
func NewHTTPClient(baseURL string, tokens TokenSource, httpClient *http.Client, log logging.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    httpClient,
		log:     log,
	}
}

// BaseURL returns the normalised backend base URL.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) token(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", nil
	}
	return c.tokens.Token(ctx)
}

// requireToken fails with ErrNoToken before any I/O when logged out.
func (c *HTTPClient) requireToken(ctx context.Context) error {
	t, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}
	if t == "" {
		return ErrNoToken
	}
	return nil
}

// do performs one request. body is JSON-encoded when non-nil; on a 2xx
// response with a non-empty body the result is decoded into out when out is
// non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(ngrokSkipHeader, ngrokSkipValue)
	req.Header.Set(requestIDHeader, requestID)

	token, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.log.With("request_id", requestID, "method", method, "path", path)
	log.Debug(ctx, "api request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "api request failed", "error", err)
		return &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "api response read failed", "status", resp.StatusCode, "error", err)
		return &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
		log.Warn(ctx, "api request rejected", "status", resp.StatusCode, "message", reqErr.Message)
		return reqErr
	}

	log.Debug(ctx, "api response", "status", resp.StatusCode, "bytes", len(respBody))

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the server-supplied message from an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if s, ok := payload.Error.(string); ok && s != "" {
			return s
		}
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}
	return GenericErrorMessage
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*RegisterResponse, error) {
	var resp RegisterResponse
	body := registerRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Initialize(ctx context.Context, keys models.ProviderKeys) error {
	if err := c.requireToken(ctx); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/initialize", keys, nil)
}

func (c *HTTPClient) GeneratePost(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	if err := c.requireToken(ctx); err != nil {
		return nil, err
	}
	var res models.GenerationResult
	if err := c.do(ctx, http.MethodPost, "/generate_post", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]models.HistoryPost, error) {
	if err := c.requireToken(ctx); err != nil {
		return nil, err
	}
	var resp postsResponse
	if err := c.do(ctx, http.MethodGet, "/user/posts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, id models.PostID) error {
	if err := c.requireToken(ctx); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/user/posts/"+url.PathEscape(id.String()), nil, nil)
}
