// Package remote fetches the survey file from its published URL.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"lonnstall/internal/core"
	"lonnstall/internal/source"
)

// DefaultURL is the 2025 edition of the kode24 salary survey.
const DefaultURL = "https://www.kode24.no/files/2025/09/01/kode24s%20l%C3%B8nnstall%202025.json"

const maxBodyBytes = 64 << 20

// Client performs a single unauthenticated GET per fetch. Concurrent fetches
// share one request. There is no retry.
type Client struct {
	url   string
	http  *http.Client
	group singleflight.Group
}

var (
	_ source.DatasetReader = (*Client)(nil)
	_ source.RawFetcher    = (*Client)(nil)
)

// New returns a client for url with the given overall timeout.
func New(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return NewWithHTTPClient(url, newHTTPClient(timeout))
}

// NewWithHTTPClient lets tests and callers supply their own transport.
func NewWithHTTPClient(url string, hc *http.Client) *Client {
	return &Client{url: url, http: hc}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}

// URL returns the upstream address.
func (c *Client) URL() string { return c.url }

// FetchRaw returns the upstream body. It fails with source.ErrUpstreamStatus
// on a non-2xx answer and source.ErrInvalidPayload when the body is not JSON.
func (c *Client) FetchRaw(ctx context.Context) ([]byte, error) {
	ch := c.group.DoChan(c.url, func() (any, error) {
		return c.fetch(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		body := res.Val.([]byte)
		if res.Shared {
			body = append([]byte(nil), body...)
		}
		return body, nil
	}
}

func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %d", source.ErrUpstreamStatus, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	if !json.Valid(body) {
		return nil, source.ErrInvalidPayload
	}
	return body, nil
}

// ReadDataset fetches and decodes the upstream file.
func (c *Client) ReadDataset(ctx context.Context) (source.Result, error) {
	body, err := c.FetchRaw(ctx)
	if err != nil {
		return source.Result{}, err
	}
	ds, skipped, err := core.DecodeDataset(body)
	if err != nil {
		return source.Result{}, fmt.Errorf("%w: %v", source.ErrInvalidPayload, err)
	}
	return source.Result{Dataset: ds, Skipped: skipped, Source: c.url}, nil
}
