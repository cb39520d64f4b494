// internal/common/http/client.go

// Package http provides the timeout-bearing client used for outbound
// provider calls.
package http

import (
	"context"
	"net/http"
	"time"
)

type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// DoWithContext issues the request bound to ctx, so capability timeouts
// cancel in-flight provider calls.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req.WithContext(ctx))
}
