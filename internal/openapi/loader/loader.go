// Package loader reads OpenAPI documents from disk, an fs.FS or HTTP.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const maxDocumentBytes = 8 << 20

var (
	ErrHTTPDisabled = errors.New("openapi loader: http support disabled")
	ErrNoFS         = errors.New("openapi loader: fs is nil")
)

type Options struct {
	// FileSystem backs SourceKindFS sources.
	FileSystem fs.FS
	// AllowHTTP enables URL sources.
	AllowHTTP bool
	Timeout   time.Duration
	RetryMax  int
}

// Loader fetches raw document bytes.
type Loader struct {
	fs   fs.FS
	http *http.Client
}

func New(opts Options) *Loader {
	l := &Loader{fs: opts.FileSystem}
	if opts.AllowHTTP {
		client := retryablehttp.NewClient()
		client.RetryMax = opts.RetryMax
		client.Logger = nil
		if opts.Timeout > 0 {
			client.HTTPClient.Timeout = opts.Timeout
		}
		l.http = client.StandardClient()
	}
	return l
}

// Load returns the document bytes for src.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src.Location == "" {
		return nil, errors.New("openapi loader: location is required")
	}

	switch src.Kind {
	case SourceKindFile:
		return os.ReadFile(src.Location)
	case SourceKindFS:
		if l.fs == nil {
			return nil, ErrNoFS
		}
		return fs.ReadFile(l.fs, src.Location)
	case SourceKindURL:
		if l.http == nil {
			return nil, ErrHTTPDisabled
		}
		return l.loadHTTP(ctx, src.Location)
	default:
		return nil, fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind)
	}
}

func (l *Loader) loadHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openapi loader: unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
}
