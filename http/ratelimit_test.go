package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	nphttp "github.com/fwojciec/newsparse/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows immediate request when under limit", func(t *testing.T) {
		t.Parallel()

		limiter := nphttp.NewDomainLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "www.irna.ir")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("rate limits requests to same domain", func(t *testing.T) {
		t.Parallel()

		limiter := nphttp.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "www.irna.ir"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "www.irna.ir"))

		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("domains are independent", func(t *testing.T) {
		t.Parallel()

		limiter := nphttp.NewDomainLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "www.irna.ir"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "www.isna.ir"))

		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("hosts of one site share a bucket", func(t *testing.T) {
		t.Parallel()

		limiter := nphttp.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "www.zoomit.ir"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "api2.zoomit.ir"))

		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("per-site rate overrides the default", func(t *testing.T) {
		t.Parallel()

		limiter := nphttp.NewDomainLimiter(0.1)
		limiter.SetRate("www.varzesh3.com", 100)
		require.NoError(t, limiter.Wait(context.Background(), "varzesh3.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "www.varzesh3.com"))

		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("ip hosts are keyed as is", func(t *testing.T) {
		t.Parallel()

		limiter := nphttp.NewDomainLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "10.0.0.1"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "192.168.0.1"))

		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("returns error when context is canceled", func(t *testing.T) {
		t.Parallel()

		limiter := nphttp.NewDomainLimiter(0.1)
		require.NoError(t, limiter.Wait(context.Background(), "www.irna.ir"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "www.irna.ir"))
	})

	t.Run("client waits on the limiter", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		client := nphttp.NewClient(nphttp.WithLimiter(nphttp.NewDomainLimiter(10)))

		start := time.Now()
		_, err := client.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		_, err = client.Fetch(context.Background(), server.URL)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})
}
