package rates_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotewise/internal/config"
	"quotewise/internal/infrastructure/rates"
)

func newTestConfig(baseURL string) config.Rates {
	return config.Rates{
		BaseURL:      baseURL,
		BaseCurrency: "USD",
		Timeout:      time.Second,
		CacheTTL:     time.Minute,
	}
}

func TestConvert_BaseCurrencyPassThrough(t *testing.T) {
	client := rates.NewClient(newTestConfig("http://localhost:0"))

	got, err := client.Convert(context.Background(), 42, "usd")
	require.NoError(t, err)
	assert.InDelta(t, 42, got, 1e-9)
}

func TestConvert_FetchesAndCachesRate(t *testing.T) {
	var calls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "EUR", r.URL.Query().Get("base"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rates": {"USD": 1.1}}`))
	}))
	defer server.Close()

	client := rates.NewClient(newTestConfig(server.URL))

	got, err := client.Convert(context.Background(), 100, "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 110, got, 1e-9)

	_, err = client.Convert(context.Background(), 50, "EUR")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestConvert_FallsBackWhenAPIUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := rates.NewClient(newTestConfig(server.URL))

	got, err := client.Convert(context.Background(), 100, "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 109, got, 1e-9)
}

func TestConvert_UnknownCurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := rates.NewClient(newTestConfig(server.URL))

	_, err := client.Convert(context.Background(), 100, "XXX")
	require.Error(t, err)

	assert.False(t, client.Supports("XXX"))
	assert.True(t, client.Supports("gbp"))
}
