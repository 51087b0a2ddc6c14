// Package source retrieves hierarchy documents and screenshots.
//
// Locations may be plain URLs, data: URLs, or UIAutomator2-style
// endpoints (/source, /screenshot) that wrap the payload in a
// {"value": ...} envelope.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/core"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/logger"
)

// Options controls a Fetcher.
type Options struct {
	Timeout       time.Duration // Per-request timeout (default 30s)
	MaxRetries    int           // Retries after the first attempt
	MaxBodySize   int64         // Response body cap (default 20MB)
	RetryInterval time.Duration // Initial backoff interval (default 200ms)
}

// Fetcher downloads documents and images over HTTP.
type Fetcher struct {
	http          *http.Client
	maxRetries    int
	maxBodySize   int64
	retryInterval time.Duration
}

// Response is the envelope returned by UIAutomator2 endpoints.
type Response struct {
	SessionID string      `json:"sessionId,omitempty"`
	Value     interface{} `json:"value"`
}

// statusError is an HTTP response with a failing status code.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("server error %d", e.code)
	}
	return fmt.Sprintf("server error %d: %s", e.code, e.body)
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = 20 << 20
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 200 * time.Millisecond
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &Fetcher{
		http:          &http.Client{Timeout: opts.Timeout},
		maxRetries:    opts.MaxRetries,
		maxBodySize:   opts.MaxBodySize,
		retryInterval: opts.RetryInterval,
	}
}

// FetchDocument returns the hierarchy XML found at location.
func (f *Fetcher) FetchDocument(ctx context.Context, location string) (string, error) {
	text, err := f.fetchDocument(ctx, location)
	if err != nil {
		return "", core.ErrFetchFailed.WithMessage("Could not fetch XML").WithCause(err)
	}
	return text, nil
}

func (f *Fetcher) fetchDocument(ctx context.Context, location string) (string, error) {
	if IsDataURL(location) {
		data, err := DecodeDataURL(location)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	body, err := f.get(ctx, location)
	if err != nil {
		return "", err
	}

	if strings.Contains(location, "/source") {
		return unwrapValue(body)
	}
	return string(body), nil
}

// FetchImage returns the validated screenshot bytes found at location.
// Transport failures return core.ErrFetchFailed; payloads that are not a
// recognized image return core.ErrInvalidImage.
func (f *Fetcher) FetchImage(ctx context.Context, location string) ([]byte, error) {
	if IsDataURL(location) {
		return DecodeImage(location)
	}

	body, err := f.get(ctx, location)
	if err != nil {
		return nil, core.ErrFetchFailed.WithMessage("Could not fetch image").WithCause(err)
	}

	if strings.Contains(location, "/screenshot") {
		encoded, err := unwrapValue(body)
		if err != nil {
			return nil, core.ErrInvalidImage.WithCause(err)
		}
		return DecodeImage(encoded)
	}

	if !IsImage(body) {
		return nil, core.ErrInvalidImage
	}
	return body, nil
}

// get performs a GET with exponential backoff. 4xx responses are not
// retried.
func (f *Fetcher) get(ctx context.Context, location string) ([]byte, error) {
	var body []byte
	attempt := 0

	operation := func() error {
		attempt++
		data, err := f.request(ctx, location)
		if err != nil {
			if se, ok := err.(*statusError); ok && se.code < 500 {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			logger.Debug("GET %s attempt %d failed: %v", location, attempt, err)
			return err
		}
		body = data
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.retryInterval
	b.MaxElapsedTime = 0 // bounded by retry count
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(f.maxRetries)), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

// request makes a single HTTP GET and logs its timing.
func (f *Fetcher) request(ctx context.Context, location string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		logger.Debug("GET %s [%v] ERROR: %v", location, elapsed, err)
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(respBody)) > f.maxBodySize {
		return nil, fmt.Errorf("response exceeds %d bytes", f.maxBodySize)
	}

	status := "OK"
	if resp.StatusCode >= 400 {
		status = fmt.Sprintf("ERR:%d", resp.StatusCode)
	}
	logger.Debug("GET %s [%v] %s size=%d", location, elapsed, status, len(respBody))

	if resp.StatusCode >= 400 {
		return nil, &statusError{code: resp.StatusCode, body: errorMessage(respBody)}
	}

	return respBody, nil
}

// errorMessage extracts "error: message" from a UIAutomator2 error
// envelope, falling back to the truncated raw body.
func errorMessage(body []byte) string {
	var errResp Response
	if json.Unmarshal(body, &errResp) == nil {
		if errVal, ok := errResp.Value.(map[string]interface{}); ok {
			errMsg, _ := errVal["message"].(string)
			errType, _ := errVal["error"].(string)
			if errMsg != "" || errType != "" {
				return fmt.Sprintf("%s: %s", errType, errMsg)
			}
		}
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

// unwrapValue returns the string payload of a {"value": "..."} envelope.
func unwrapValue(body []byte) (string, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	value, ok := resp.Value.(string)
	if !ok || value == "" {
		return "", fmt.Errorf("response has no string value")
	}
	return value, nil
}
