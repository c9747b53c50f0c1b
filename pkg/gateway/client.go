// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"k8s.io/klog/v2"

	"github.com/yoctoalex/xcctl/pkg/object"
)

const (
	// DefaultTimeout bounds every single call.
	DefaultTimeout = 120 * time.Second

	defaultUserAgent = "xcctl"
	requestIDHeader  = "X-Request-Id"
)

// Config contains the settings of a Client.
type Config struct {
	// Tenant is the API host, e.g. acme.console.ves.volterra.io. A value
	// that already carries a scheme is used as the base URL verbatim.
	Tenant   string
	APIToken string

	// Timeout bounds each call. Zero means DefaultTimeout.
	Timeout time.Duration

	// RetryMax is the number of retries after a connection-level
	// failure. HTTP error statuses are never retried.
	RetryMax int

	InsecureSkipVerify bool
	UserAgent          string

	// HTTPClient replaces the default HTTP client.
	HTTPClient *http.Client
}

// Client talks to the tenant API.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	retry     *retryablehttp.Client
}

var _ Interface = &Client{}

// NewClient returns a Client for the given configuration.
func NewClient(cfg Config) (*Client, error) {
	tenant := strings.TrimSpace(cfg.Tenant)
	if tenant == "" {
		return nil, fmt.Errorf("tenant must not be empty")
	}
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("api token must not be empty")
	}
	baseURL := tenant
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}

	var httpClient *http.Client
	if cfg.HTTPClient != nil {
		// The caller may share its client; the timeout goes on a copy.
		c := *cfg.HTTPClient
		httpClient = &c
	} else {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.InsecureSkipVerify {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		}
		httpClient = &http.Client{Transport: transport}
	}
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	} else if httpClient.Timeout == 0 {
		httpClient.Timeout = DefaultTimeout
	}

	retry := retryablehttp.NewClient()
	retry.HTTPClient = httpClient
	retry.RetryMax = cfg.RetryMax
	retry.RetryWaitMin = 1 * time.Second
	retry.RetryWaitMax = 5 * time.Second
	retry.Logger = klogRetryLogger{}
	retry.CheckRetry = retryConnectionErrors
	retry.ErrorHandler = retryablehttp.PassthroughErrorHandler

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     cfg.APIToken,
		userAgent: userAgent,
		retry:     retry,
	}, nil
}

// BaseURL returns the URL every path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do issues one call. A nil body sends no payload.
func (c *Client) Do(ctx context.Context, method, path string, body object.Document) *Response {
	var payload interface{}
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return TransportFailure(fmt.Errorf("encoding request body: %w", err))
		}
		payload = b
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return TransportFailure(err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Authorization", "APIToken "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	klog.V(4).Infof("%s %s (request %s)", method, path, requestID)
	if body != nil {
		klog.V(6).Infof("%s %s request body:\n%s", method, path, object.YamlStringer{D: body})
	}
	resp, err := c.retry.Do(req)
	if err != nil {
		klog.V(4).Infof("%s %s failed: %v", method, path, err)
		return TransportFailure(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       []byte(err.Error()),
			Err:        fmt.Errorf("reading response body: %w", err),
		}
	}
	klog.V(4).Infof("%s %s -> %d (%d bytes)", method, path, resp.StatusCode, len(respBody))
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}
}

func (c *Client) Get(ctx context.Context, path string) *Response {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body object.Document) *Response {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body object.Document) *Response {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body object.Document) *Response {
	return c.Do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) *Response {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// retryConnectionErrors retries failures that happened below HTTP, except
// certificate errors which will not go away on their own.
func retryConnectionErrors(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err == nil {
		return false, nil
	}
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return false, nil
	}
	return true, nil
}

// klogRetryLogger routes retryablehttp logging to klog.
type klogRetryLogger struct{}

func (klogRetryLogger) Error(msg string, keysAndValues ...interface{}) {
	klog.ErrorS(nil, msg, keysAndValues...)
}

func (klogRetryLogger) Info(msg string, keysAndValues ...interface{}) {
	klog.V(4).InfoS(msg, keysAndValues...)
}

func (klogRetryLogger) Debug(msg string, keysAndValues ...interface{}) {
	klog.V(6).InfoS(msg, keysAndValues...)
}

func (klogRetryLogger) Warn(msg string, keysAndValues ...interface{}) {
	klog.V(2).InfoS(msg, keysAndValues...)
}
