package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"
)

// NetworkError describes a failed fetch: either a transport-level failure
// (StatusCode 0) or a non-2xx response from the origin.
type NetworkError struct {
	// URL is the requested URL.
	URL string

	// StatusCode is the HTTP status of the response, or 0 when the
	// request never produced one.
	StatusCode int

	// Err is the underlying transport error, if any.
	Err error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is worth a single retry.
// Server errors (5xx) and timeouts qualify; client errors (4xx) and
// malformed responses do not.
func (e *NetworkError) Retryable() bool {
	if e.StatusCode >= 500 {
		return true
	}
	if e.StatusCode != 0 {
		return false
	}
	var nerr net.Error
	return errors.As(e.Err, &nerr) && nerr.Timeout()
}

// Client wraps HTTP operations with the headers the origin expects.
//
// Client provides:
//   - Configured User-Agent and Referer headers
//   - Timeout handling
//   - Whole-body fetches for small payloads (API responses, images)
//   - Streaming file downloads through a temp file with atomic rename
type Client struct {
	httpClient *http.Client
	userAgent  string
	referer    string
}

// NewClient creates a new HTTP client with the given identification
// headers and a 60 second timeout.
func NewClient(userAgent, referer string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: userAgent,
		referer:   referer,
	}
}

func (c *Client) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.referer != "" {
		req.Header.Set("Referer", c.referer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &NetworkError{URL: url, StatusCode: resp.StatusCode}
	}

	return resp, nil
}

// Get performs a GET request and returns the response body as bytes.
//
// Use this for small payloads like API responses and cover images. For
// audio files, use DownloadFile to stream directly to disk.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	return body, nil
}

// GetFileSize returns the size of a file at the given URL via HEAD request.
//
// Returns an error if the request fails or the server doesn't send a
// Content-Length header.
func (c *Client) GetFileSize(ctx context.Context, url string) (int64, error) {
	resp, err := c.do(ctx, http.MethodHead, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("no Content-Length header for %s", url)
	}
	return resp.ContentLength, nil
}

// DownloadFile downloads a file to the specified path and returns the
// number of bytes written.
//
// The content is streamed to "<destPath>.part" and renamed into place on
// success, so a crash mid-write never leaves a half-written file at the
// final name. The parent directory must already exist.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string) (int64, error) {
	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	tmp := destPath + ".part"
	file, err := os.Create(tmp)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(file, resp.Body)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return 0, &NetworkError{URL: url, Err: err}
	}

	if err := os.Rename(tmp, destPath); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	return written, nil
}
