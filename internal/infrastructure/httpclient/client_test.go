package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"commerce-adapter-layer/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	return New(domain.PlatformBigCommerce, Options{
		MinInterval: time.Millisecond,
		Logger:      zerolog.Nop(),
	})
}

func TestRetriesOnceOn429ThenSucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	_, err := testClient(t).DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, 2, calls)
}

func TestSecond429PropagatesRateLimitErrorWithoutThirdAttempt(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(t).DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, nil)
	var rle *domain.RateLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, 2, calls, "must not attempt a third time")
	assert.Equal(t, float64(1), rle.RetryAfter)
}

func TestNon429ClientErrorIsNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"sku already exists"}`))
	}))
	defer srv.Close()

	_, err := testClient(t).DoJSON(context.Background(), http.MethodPost, srv.URL, nil, map[string]string{"sku": "A"}, nil)
	var pe *domain.PlatformAPIError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, calls)
	assert.False(t, pe.Retryable)
	assert.Contains(t, pe.Message, "sku already exists")
}

func TestServerErrorIsRetryableByCallerPolicyOnly(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(t).DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, nil)
	var pe *domain.PlatformAPIError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, calls, "middleware itself never retries 5xx")
	assert.True(t, pe.Retryable)
	assert.True(t, domain.IsRetryable(err))
}

func TestUnauthorizedMapsToAuthenticationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(t).DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, nil)
	var ae *domain.AuthenticationError
	assert.True(t, errors.As(err, &ae))
}

func TestTimeoutSurfacesAsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := testClient(t).DoJSON(ctx, http.MethodGet, srv.URL, nil, nil, nil)
	var ne *domain.NetworkError
	require.True(t, errors.As(err, &ne))
	assert.True(t, domain.IsRetryable(err))
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, float64(3), parseRetryAfter("3"))
	assert.Equal(t, float64(0), parseRetryAfter(""))
	assert.Equal(t, float64(0), parseRetryAfter("soon"))
	// HTTP-date in the past clamps to zero
	assert.Equal(t, float64(0), parseRetryAfter("Mon, 02 Jan 2006 15:04:05 GMT"))
}
