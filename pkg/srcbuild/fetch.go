package srcbuild

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/riceup/riceup/pkg/errors"
)

// fetchTimeout bounds patch downloads so an unreachable mirror cannot
// hang the run.
const fetchTimeout = 30 * time.Second

// Fetcher retrieves patch content over the network.
type Fetcher interface {
	// Fetch downloads the resource at url.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Reachable reports whether url currently answers, used for the
	// advisory check before a patch step runs.
	Reachable(ctx context.Context, url string) bool
}

// HTTPFetcher is the real Fetcher backed by net/http.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a Fetcher with a bounded timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "bad patch URL %s", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrAdvisory, "patch fetch failed: %s", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.ErrAdvisory, "patch fetch failed: %s returned %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (f *HTTPFetcher) Reachable(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()

	return resp.StatusCode < 400
}
