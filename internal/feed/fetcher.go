package feed

import (
	"context"

	"github.com/presstab/coinboard/internal/pricedb"
)

// Fetcher retrieves current quotes for a set of exchange symbols.
type Fetcher interface {
	Name() string
	FetchQuotes(ctx context.Context, symbols []string) ([]pricedb.Quote, error)
}
