// SPDX-FileCopyrightText: Copyright 2023 Prasad Tengse
// SPDX-License-Identifier: MIT

package ghmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/tprasadtp/go-ghmodel/internal/api"
)

// DefaultEndpoint is default GitHub REST API endpoint.
const DefaultEndpoint = api.DefaultEndpoint

// defaultTimeout is the default per request timeout.
const defaultTimeout = time.Minute

// Client is an API session for the GitHub REST API (v3).
//
// Client makes a single request for every operation. It does not retry,
// paginate or cache responses. Models returned by the client keep a
// reference to it for making further requests.
type Client struct {
	baseURL *url.URL          // REST API v3 base URL
	ua      string            // user agent
	next    http.RoundTripper // next round tripper
	timeout time.Duration     // per request timeout
	logger  *slog.Logger      // logger
	client  *http.Client      // authenticated http client
}

// NewClient returns a new [Client] which authenticates requests with a
// static bearer token, like a personal access token or an installation
// access token. If token is empty, requests are made anonymously.
func NewClient(token string, opts ...Option) (*Client, error) {
	c := &Client{}

	var err error
	for i := range opts {
		if opts[i] != nil {
			err = errors.Join(err, opts[i].apply(c))
		}
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOptions, err)
	}

	// If there is no existing round tripper, use DefaultTransport.
	if c.next == nil {
		c.next = http.DefaultTransport
	}

	// If there is not custom user agent specified, use default.
	if c.ua == "" {
		c.ua = api.UAHeaderValue
	}

	// If endpoint is not configured, use default endpoint.
	if c.baseURL == nil {
		c.baseURL, _ = url.Parse(api.DefaultEndpoint)
	}

	if c.timeout == 0 {
		c.timeout = defaultTimeout
	}

	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	rt := c.next
	if token != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   c.next,
		}
	}

	c.client = &http.Client{
		Transport: rt,
		Timeout:   c.timeout,
	}
	return c, nil
}

// Endpoint returns the REST API endpoint used by the client.
func (c *Client) Endpoint() string {
	return c.baseURL.String()
}

// response is a fully read HTTP response.
type response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// ok reports whether response has a 2xx status.
func (r *response) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// do performs a single request. If body is not nil, it is encoded as JSON.
// Only transport errors are returned, callers must check response status.
func (c *Client) do(ctx context.Context, method, path string, body any) (*response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	u := c.baseURL.JoinPath(path)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ghmodel: failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	r, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("ghmodel: failed to build request: %w", err)
	}

	r.Header.Set(api.AcceptHeader, api.AcceptHeaderValue)
	r.Header.Set(api.VersionHeader, api.VersionHeaderValue)
	r.Header.Set(api.UAHeader, c.ua)
	if body != nil {
		r.Header.Set(api.ContentTypeHeader, api.ContentTypeJSON)
	}

	start := time.Now()
	resp, err := c.client.Do(r)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelDebug, "request failed",
			slog.String("method", method),
			slog.String("url", u.String()),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("ghmodel: %s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ghmodel: failed to read response: %w", err)
	}

	c.logger.LogAttrs(ctx, slog.LevelDebug, "request",
		slog.String("method", method),
		slog.String("url", u.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	return &response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       data,
	}, nil
}

// get performs a GET request. Non 2xx responses are returned as [ResponseError].
func (c *Client) get(ctx context.Context, path string) (*response, error) {
	return c.checked(c.do(ctx, http.MethodGet, path, nil))
}

// put performs a PUT request. Non 2xx responses are returned as [ResponseError].
func (c *Client) put(ctx context.Context, path string, body any) (*response, error) {
	return c.checked(c.do(ctx, http.MethodPut, path, body))
}

// patch performs a PATCH request. Non 2xx responses are returned as [ResponseError].
func (c *Client) patch(ctx context.Context, path string, body any) (*response, error) {
	return c.checked(c.do(ctx, http.MethodPatch, path, body))
}

// lookup performs a GET request like get, but 404 is not an error.
// found is false if resource was not found.
func (c *Client) lookup(ctx context.Context, path string) (resp *response, found bool, err error) {
	resp, err = c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, false, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if !resp.ok() {
		return nil, false, newResponseError(resp)
	}
	return resp, true, nil
}

func (c *Client) checked(resp *response, err error) (*response, error) {
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newResponseError(resp)
	}
	return resp, nil
}

// decodeJSON unmarshals data into v.
func decodeJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("ghmodel: failed to unmarshal response: %w", err)
	}
	return nil
}
