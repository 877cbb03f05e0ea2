package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const tickerFixture = `[
  {"symbol":"BTCUSDT","lastPrice":"64123.45000000","priceChangePercent":"1.250"},
  {"symbol":"ETHUSDT","lastPrice":"3100.10000000","priceChangePercent":"-0.420"}
]`

func TestBinanceFetchQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/ticker/24hr", r.URL.Path)
		require.Contains(t, r.URL.Query().Get("symbols"), "BTCUSDT")
		w.Write([]byte(tickerFixture))
	}))
	defer srv.Close()

	f := NewBinanceFetcher(srv.URL, "")
	quotes, err := f.FetchQuotes(context.Background(), []string{"BTCUSDT", "ETHUSDT"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	require.Equal(t, "BTCUSDT", quotes[0].Symbol)
	require.InDelta(t, 64123.45, quotes[0].Price, 1e-9)
	require.InDelta(t, 1.25, quotes[0].Change24h, 1e-9)
	require.InDelta(t, -0.42, quotes[1].Change24h, 1e-9)
}

func TestBinanceFetchQuotesEmptySymbols(t *testing.T) {
	f := NewBinanceFetcher("http://unused", "")
	quotes, err := f.FetchQuotes(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, quotes)
}

func TestBinanceFetchQuotesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":-1121,"msg":"Invalid symbol."}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	f := NewBinanceFetcher(srv.URL, "")
	_, err := f.FetchQuotes(context.Background(), []string{"NOPE"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 400")
}

func TestBinanceFetchQuotesBadPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"symbol":"BTCUSDT","lastPrice":"garbage","priceChangePercent":"0"}]`))
	}))
	defer srv.Close()

	f := NewBinanceFetcher(srv.URL, "")
	_, err := f.FetchQuotes(context.Background(), []string{"BTCUSDT"})
	require.Error(t, err)
}
