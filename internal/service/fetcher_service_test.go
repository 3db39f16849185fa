package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dhealy/applytrack/internal/apperror"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPageSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("<html>job page</html>"))
	}))
	defer srv.Close()

	body, err := NewFetcherService().FetchPage(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "<html>job page</html>", body)
	assert.Equal(t, pageUserAgent, gotUA)
	assert.Equal(t, "text/html,application/xhtml+xml", gotAccept)
}

func TestFetchFeedSendsFeedUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<rss/>"))
	}))
	defer srv.Close()

	body, err := NewFetcherService().FetchFeed(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "<rss/>", body)
	assert.Equal(t, feedUserAgent, gotUA)
}

func TestFetchPageHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewFetcherService().FetchPage(context.Background(), srv.URL)

	var transport *apperror.TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, http.StatusForbidden, transport.Status)
}

func TestFetchPageTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	fetcher := &FetcherService{
		client:      resty.New(),
		pageTimeout: 30 * time.Millisecond,
		feedTimeout: 30 * time.Millisecond,
	}
	_, err := fetcher.FetchPage(context.Background(), srv.URL)

	var timeout *apperror.TimeoutError
	assert.ErrorAs(t, err, &timeout)
}

func TestFetchPageConnectionRefused(t *testing.T) {
	_, err := NewFetcherService().FetchPage(context.Background(), "http://127.0.0.1:1")

	var transport *apperror.TransportError
	assert.ErrorAs(t, err, &transport)
}
