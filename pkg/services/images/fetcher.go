package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

const maxImageBytes = 32 << 20

// FetcherSettings control how output images are retrieved from the
// analysis backend.
type FetcherSettings struct {
	BaseURL    string
	PathPrefix string // e.g. "/outputs"
	Timeout    time.Duration
	RetryMax   int
}

// Fetcher acquires images produced by the analysis backend, which
// serves them by bare filename under a fixed path prefix.
type Fetcher struct {
	client  *retryablehttp.Client
	baseURL string
	prefix  string
	timeout time.Duration
}

func NewFetcher(settings FetcherSettings) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = settings.RetryMax
	client.Logger = nil
	if settings.Timeout > 0 {
		client.HTTPClient.Timeout = settings.Timeout
	}
	return &Fetcher{
		client:  client,
		baseURL: strings.TrimRight(settings.BaseURL, "/"),
		prefix:  "/" + strings.Trim(settings.PathPrefix, "/"),
		timeout: settings.Timeout,
	}
}

// Acquire fetches one image by filename and reads back its native
// dimensions. Network and decode failures are returned as plain
// errors for the caller to contain.
func (f *Fetcher) Acquire(ctx context.Context, ref string) (*Bitmap, error) {
	if ref == "" {
		return nil, fmt.Errorf("empty image reference")
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	imageURL := fmt.Sprintf("%s%s/%s", f.baseURL, f.prefix, url.PathEscape(ref))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %q: %w", ref, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image %q: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching image %q", resp.StatusCode, ref)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image %q: %w", ref, err)
	}

	bmp, err := FromBytes(ref, data)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("ref", ref).
		Int("width", bmp.Width).
		Int("height", bmp.Height).
		Msg("image acquired")
	return bmp, nil
}
