package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/presstab/coinboard/internal/pricedb"
)

// BinanceFetcher implements Fetcher using the Binance public 24h ticker API.
type BinanceFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBinanceFetcher creates a fetcher against baseURL, optionally through a proxy.
func NewBinanceFetcher(baseURL, proxyURL string) *BinanceFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BinanceFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// binanceTicker is one element of the /api/v3/ticker/24hr response.
// Binance serves numeric fields as strings.
type binanceTicker struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
}

func (f *BinanceFetcher) FetchQuotes(ctx context.Context, symbols []string) ([]pricedb.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	// symbols parameter is a JSON array: ["BTCUSDT","ETHUSDT"]
	list, err := json.Marshal(symbols)
	if err != nil {
		return nil, fmt.Errorf("encode symbols: %w", err)
	}
	u := fmt.Sprintf("%s/api/v3/ticker/24hr?symbols=%s", f.BaseURL, url.QueryEscape(string(list)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("binance fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("binance read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance: status %d, body: %s", resp.StatusCode, string(body))
	}

	var tickers []binanceTicker
	if err := json.Unmarshal(body, &tickers); err != nil {
		return nil, fmt.Errorf("binance decode: %w", err)
	}

	now := time.Now()
	quotes := make([]pricedb.Quote, 0, len(tickers))
	for _, t := range tickers {
		price, err := decimal.NewFromString(strings.TrimSpace(t.LastPrice))
		if err != nil {
			return nil, fmt.Errorf("binance: bad price %q for %s: %w", t.LastPrice, t.Symbol, err)
		}
		var change float64
		if c, err := decimal.NewFromString(strings.TrimSpace(t.PriceChangePercent)); err == nil {
			change = c.InexactFloat64()
		}
		quotes = append(quotes, pricedb.Quote{
			Symbol:    t.Symbol,
			Price:     price.InexactFloat64(),
			Change24h: change,
			UpdatedAt: now,
		})
	}
	return quotes, nil
}
