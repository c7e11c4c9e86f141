// Package content opens the chapter document from disk, over HTTP, or from
// memory.
package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/five82/tao/internal/library"
)

// Ensure the sources satisfy library.Source at compile time.
var (
	_ library.Source = (*FileSource)(nil)
	_ library.Source = (*HTTPSource)(nil)
	_ library.Source = (*ReaderSource)(nil)
)

const (
	defaultUserAgent = "tao/0.1"
	defaultTimeout   = 5 * time.Second
)

// New returns the source for location. http and https URLs are fetched over
// the network; anything else is treated as a file path.
func New(location string, timeout time.Duration) (library.Source, error) {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return nil, fmt.Errorf("content location is empty")
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return NewHTTPSource(trimmed, timeout)
	}
	return &FileSource{Path: trimmed}, nil
}

// FileSource reads the document from a local file.
type FileSource struct {
	Path string
}

// Open opens the file. The context is only checked before opening.
func (f *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open content: %w", err)
	}
	return file, nil
}

func (f *FileSource) String() string {
	return f.Path
}

// HTTPSource fetches the document with a single GET request.
type HTTPSource struct {
	url       *url.URL
	http      *http.Client
	userAgent string
}

// NewHTTPSource builds an HTTPSource for rawURL. A non-positive timeout uses
// the default of five seconds.
func NewHTTPSource(rawURL string, timeout time.Duration) (*HTTPSource, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse content url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse content url %q: unsupported scheme %q", rawURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse content url %q: missing host", rawURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPSource{
		url: u,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Open performs the request and returns the response body.
func (h *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if h == nil {
		return nil, fmt.Errorf("source is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode >= 400 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("content %s returned status %d", h.url.Redacted(), resp.StatusCode)
	}
	return resp.Body, nil
}

func (h *HTTPSource) String() string {
	return h.url.Redacted()
}

// ReaderSource serves a document held in memory.
type ReaderSource struct {
	Name string
	Data []byte
}

// Open returns a fresh reader over Data.
func (r *ReaderSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(r.Data)), nil
}

func (r *ReaderSource) String() string {
	if r.Name == "" {
		return "memory"
	}
	return r.Name
}
