package notion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *[]time.Duration) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var waits []time.Duration
	c := NewClient("secret-token", zap.NewNop(),
		WithBaseURL(srv.URL),
		WithSleep(func(d time.Duration) { waits = append(waits, d) }),
	)
	return c, &waits
}

func TestQueryDatabaseRetryExhaustion(t *testing.T) {
	calls := 0
	c, waits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := c.QueryDatabase(context.Background(), "db1", QueryRequest{PageSize: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 5 attempts")

	assert.Equal(t, 5, calls)
	assert.Equal(t, []time.Duration{
		2000 * time.Millisecond,
		4000 * time.Millisecond,
		8000 * time.Millisecond,
		16000 * time.Millisecond,
	}, *waits)
}

func TestQueryDatabaseRecoversAfterTransientFailure(t *testing.T) {
	calls := 0
	c, waits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [], "has_more": false, "next_cursor": null}`))
	}))

	resp, err := c.QueryDatabase(context.Background(), "db1", QueryRequest{PageSize: 100})
	require.NoError(t, err)
	assert.False(t, resp.HasMore)

	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *waits)
}

func TestQueryDatabasePermanentErrorNotRetried(t *testing.T) {
	calls := 0
	c, waits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "body does not match schema"}`))
	}))

	_, err := c.QueryDatabase(context.Background(), "db1", QueryRequest{PageSize: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body does not match schema")

	assert.Equal(t, 1, calls)
	assert.Empty(t, *waits)
}

func TestQueryDatabaseSendsAuthHeaders(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, apiVersion, r.Header.Get("Notion-Version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"results": [], "has_more": false}`))
	}))

	_, err := c.QueryDatabase(context.Background(), "db1", QueryRequest{PageSize: 100})
	require.NoError(t, err)
}
