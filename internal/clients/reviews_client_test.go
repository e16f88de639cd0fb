package clients

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string, maxRetries int) ReviewsClient {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReviewsHTTPClient(baseURL, 2*time.Second, maxRetries, logger)
}

func TestGetMoviesStatisticsParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stats", r.URL.Path)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`[{"id":"1","totalReviews":100,"averageRating":7.5}]`))
	}))
	defer server.Close()

	result := newTestClient(server.URL, 0).GetMoviesStatistics(context.Background(), []string{"1"})

	assert.False(t, result.Degraded)
	require.Len(t, result.Statistics, 1)
	assert.Equal(t, "1", result.Statistics[0].ID)
	assert.Equal(t, 100, result.Statistics[0].TotalReviews)
	assert.Equal(t, 7.5, result.Statistics[0].AverageRating)
}

func TestMovieIDsSerializeAsRepeatedArrayParams(t *testing.T) {
	tests := []struct {
		name     string
		movieIDs []string
		wantRaw  string
	}{
		{name: "zero ids", movieIDs: nil, wantRaw: ""},
		{name: "one id", movieIDs: []string{"1"}, wantRaw: "movieId%5B%5D=1"},
		{name: "multiple ids", movieIDs: []string{"1", "2", "3"}, wantRaw: "movieId%5B%5D=1&movieId%5B%5D=2&movieId%5B%5D=3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRaw string
			var gotValues []string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotRaw = r.URL.RawQuery
				gotValues = r.URL.Query()["movieId[]"]
				_, _ = w.Write([]byte(`[]`))
			}))
			defer server.Close()

			result := newTestClient(server.URL, 0).GetMoviesStatistics(context.Background(), tt.movieIDs)

			assert.False(t, result.Degraded)
			assert.Equal(t, tt.wantRaw, gotRaw)
			assert.Equal(t, tt.movieIDs, gotValues)
			// Never a comma-joined single value.
			for _, v := range gotValues {
				assert.NotContains(t, v, ",")
			}
		})
	}
}

func TestNotFoundDegradesToEmptyWithoutRetry(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)

	stats := client.GetAllMoviesStatistics(context.Background())
	assert.Empty(t, stats.Statistics)
	assert.False(t, stats.Degraded, "404 is a legitimate empty dataset, not a degradation")

	reviews := client.GetMoviesReviews(context.Background(), []string{"1"})
	assert.Empty(t, reviews.Reviews)
	assert.False(t, reviews.Degraded)

	// One request per operation: 404 must not be retried.
	assert.Equal(t, int32(2), requests.Load())
}

func TestServerErrorDegradesAfterBoundedRetries(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	result := newTestClient(server.URL, 2).GetMoviesStatistics(context.Background(), []string{"1"})

	assert.True(t, result.Degraded)
	assert.Empty(t, result.Statistics)
	assert.Equal(t, int32(3), requests.Load(), "initial attempt plus two retries")
}

func TestRetrySucceedsAfterTransientFailure(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"id":"1","totalReviews":1,"averageRating":9.0}]`))
	}))
	defer server.Close()

	result := newTestClient(server.URL, 2).GetMoviesStatistics(context.Background(), []string{"1"})

	assert.False(t, result.Degraded)
	require.Len(t, result.Statistics, 1)
	assert.Equal(t, int32(2), requests.Load())
}

func TestTransportErrorDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	result := newTestClient(server.URL, 0).GetMoviesReviews(context.Background(), []string{"1"})

	assert.True(t, result.Degraded)
	assert.Empty(t, result.Reviews)
}

func TestTimeoutDegradesToEmpty(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		server.Close()
	}()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewReviewsHTTPClient(server.URL, 50*time.Millisecond, 0, logger)

	result := client.GetMoviesStatistics(context.Background(), []string{"1"})

	assert.True(t, result.Degraded)
	assert.Empty(t, result.Statistics)
}

func TestMalformedPayloadDegradesToEmptyWithoutRetry(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = io.Copy(w, strings.NewReader(`{"not":"an array"`))
	}))
	defer server.Close()

	result := newTestClient(server.URL, 3).GetMoviesReviews(context.Background(), []string{"1"})

	assert.True(t, result.Degraded)
	assert.Empty(t, result.Reviews)
	// A broken payload is a contract violation, not a transient fault:
	// retrying the same request cannot fix it.
	assert.Equal(t, int32(1), requests.Load())
}

func TestReviewsPayloadParsesProviderMetadata(t *testing.T) {
	body := `[{"movieId":"1","id":"r1","headline":"a clickbait headline","message":"hopefully a positive review",` +
		`"ipAddress":"127.0.0.1","gender":"F","anonymous":true,"createdAt":"2015-08-06T16:53:10.123+01:00"}]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	result := newTestClient(server.URL, 0).GetMoviesReviews(context.Background(), []string{"1"})

	assert.False(t, result.Degraded)
	require.Len(t, result.Reviews, 1)
	review := result.Reviews[0]
	assert.Equal(t, "1", review.MovieID)
	assert.Equal(t, "r1", review.ID)
	assert.Equal(t, "a clickbait headline", review.Headline)
	assert.Equal(t, "F", review.Gender)
	assert.True(t, review.Anonymous)
	assert.Equal(t, 123000000, review.CreatedAt.Nanosecond())
}
