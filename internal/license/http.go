package license

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aboutkit/aboutkit/internal/retry"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// ClientOption configures the HTTP transport shared by remote libraries.
type ClientOption func(*httpGetter)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(g *httpGetter) { g.client = c }
}

// WithRetry replaces the default retry strategy.
func WithRetry(strategy retry.BackoffStrategy) ClientOption {
	return func(g *httpGetter) {
		g.executor = retry.NewExecutor(retry.NewHTTPErrorClassifier(), strategy)
	}
}

// WithLogger reports retries through logger.
func WithLogger(logger about.Logger) ClientOption {
	return func(g *httpGetter) { g.logger = logger }
}

type httpGetter struct {
	client   *http.Client
	executor *retry.Executor
	logger   about.Logger
}

func newHTTPGetter(opts ...ClientOption) *httpGetter {
	g := &httpGetter{
		client: &http.Client{Timeout: about.DefaultHTTPTimeout},
		executor: retry.NewExecutor(
			retry.NewHTTPErrorClassifier(),
			retry.NewExponentialBackoff(about.DefaultRetryMaxAttempts,
				retry.WithInitialDelay(about.DefaultRetryInitialDelay),
				retry.WithMaxDelay(about.DefaultRetryMaxDelay),
			),
		),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger != nil {
		logger := g.logger
		g.executor = g.executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("retrying license request (attempt %d) in %v: %v", attempt+1, delay, err)
		})
	}
	return g
}

// get performs a GET with retries and returns the body of a 2xx response.
// Non-2xx responses are returned as *retry.StatusError.
func (g *httpGetter) get(ctx context.Context, url string, header http.Header) ([]byte, error) {
	var body []byte
	err := g.executor.Execute(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		for k, v := range header {
			req.Header[k] = v
		}
		req.Header.Set("Accept", "application/json, text/plain")

		resp, err := g.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			io.Copy(io.Discard, resp.Body)
			return &retry.StatusError{URL: url, StatusCode: resp.StatusCode}
		}
		body, err = io.ReadAll(resp.Body)
		return err
	})
	return body, err
}
