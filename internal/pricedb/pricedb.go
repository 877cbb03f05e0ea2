package pricedb

import (
	"context"
	"time"
)

// Quote is the current state of one tracked asset as served to the UI.
type Quote struct {
	Symbol    string
	Name      string
	Price     float64
	Change24h float64
	// ColorHex is the display color ("#RRGGBB") assigned by the collector
	// from the latest price direction.
	ColorHex  string
	UpdatedAt time.Time
}

// PricePoint is one historical sample for an asset.
type PricePoint struct {
	Time  time.Time
	Price float64
}

// Database is the price store consumed by the chart container. The container
// borrows it: whoever constructed the store owns it and calls Close.
type Database interface {
	// Quotes returns the current asset set, one quote per symbol.
	Quotes(ctx context.Context) ([]Quote, error)
	// History returns samples for symbol within the trailing day window,
	// oldest first.
	History(ctx context.Context, symbol string, days int) ([]PricePoint, error)
	// UpsertQuote inserts or replaces the quote for its symbol.
	UpsertQuote(ctx context.Context, q Quote) error
	// RecordPrice appends one history sample.
	RecordPrice(ctx context.Context, symbol string, price float64, at time.Time) error
	Close() error
}
