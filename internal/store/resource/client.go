// Package resource talks to the REST resource server that holds the /users
// and /products collections.
package resource

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

	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/store"
)

type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("resource base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("resource base url %q: scheme and host are required", baseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout

	return &Client{baseURL: u, http: hc, logger: logger}, nil
}

func (c *Client) Users() store.Users       { return users{c} }
func (c *Client) Products() store.Products { return products{c} }

func (c *Client) Close(ctx context.Context) error {
	c.http.CloseIdleConnections()
	return nil
}

// Get issues GET path and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("resource request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return store.ErrUnavailable.Wrap(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("resource request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return store.ErrNotFound.Wrap(fmt.Errorf("%s %s", method, path))
	case resp.StatusCode >= 300:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return store.ErrUnavailable.Wrap(fmt.Errorf("%s %s: status %d: %s",
			method, path, resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return store.ErrUnavailable.Wrap(fmt.Errorf("decode %s %s: %w", method, path, err))
	}
	return nil
}

func itemPath(collection string, id fmt.Stringer) string {
	return "/" + collection + "/" + url.PathEscape(id.String())
}
