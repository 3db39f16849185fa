package service

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/go-resty/resty/v2"
)

const (
	pageUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	feedUserAgent = "Mozilla/5.0 job-bot RSS reader"
)

// FetcherInterface retrieves remote documents. One attempt per call; the
// pipelines decide whether a failure aborts or is recorded and skipped.
type FetcherInterface interface {
	FetchPage(ctx context.Context, url string) (string, error)
	FetchFeed(ctx context.Context, url string) (string, error)
}

// FetcherService issues plain HTTP GETs with a hard per-call timeout.
// No retries.
type FetcherService struct {
	client      *resty.Client
	pageTimeout time.Duration
	feedTimeout time.Duration
}

func NewFetcherService() *FetcherService {
	return &FetcherService{
		client:      resty.New(),
		pageTimeout: 15 * time.Second,
		feedTimeout: 12 * time.Second,
	}
}

// FetchPage retrieves a job posting page with a browser user-agent; some job
// boards refuse obvious bots.
func (f *FetcherService) FetchPage(ctx context.Context, url string) (string, error) {
	return f.fetch(ctx, url, pageUserAgent, f.pageTimeout, "text/html,application/xhtml+xml")
}

// FetchFeed retrieves an RSS/XML feed.
func (f *FetcherService) FetchFeed(ctx context.Context, url string) (string, error) {
	return f.fetch(ctx, url, feedUserAgent, f.feedTimeout, "")
}

func (f *FetcherService) fetch(ctx context.Context, url, userAgent string, timeout time.Duration, accept string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := f.client.R().SetContext(ctx).SetHeader("User-Agent", userAgent)
	if accept != "" {
		req.SetHeader("Accept", accept)
	}

	resp, err := req.Get(url)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return "", &apperror.TimeoutError{URL: url, Cause: err}
		}
		return "", &apperror.TransportError{URL: url, Cause: err}
	}
	if resp.IsError() {
		return "", &apperror.TransportError{URL: url, Status: resp.StatusCode()}
	}
	return resp.String(), nil
}
