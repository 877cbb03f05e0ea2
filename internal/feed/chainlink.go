package feed

import (
	"context"
	"fmt"
	"math/big"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"

	"github.com/presstab/coinboard/internal/pricedb"
)

// ChainlinkFetcher reads prices from on-chain Chainlink aggregator contracts.
// Feeds maps exchange symbol to the aggregator address on the connected chain.
type ChainlinkFetcher struct {
	ec    *ethclient.Client
	feeds map[string]common.Address
}

// NewChainlinkFetcher dials the RPC endpoint and resolves the feed addresses.
// Entries with an invalid address are rejected.
func NewChainlinkFetcher(rpcURL string, feeds map[string]string) (*ChainlinkFetcher, error) {
	ec, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("rpc dial: %w", err)
	}
	resolved := make(map[string]common.Address, len(feeds))
	for sym, addr := range feeds {
		if !common.IsHexAddress(addr) {
			ec.Close()
			return nil, fmt.Errorf("chainlink: bad aggregator address %q for %s", addr, sym)
		}
		resolved[sym] = common.HexToAddress(addr)
	}
	return &ChainlinkFetcher{ec: ec, feeds: resolved}, nil
}

func (f *ChainlinkFetcher) Name() string { return "chainlink" }

func (f *ChainlinkFetcher) Close() { f.ec.Close() }

func selector(sig string) []byte {
	return crypto.Keccak256([]byte(sig))[:4]
}

var int256Offset = new(big.Int).Lsh(big.NewInt(1), 256)

// decodeInt256 interprets a 32-byte ABI word as a signed two's-complement
// integer.
func decodeInt256(word []byte) *big.Int {
	v := new(big.Int).SetBytes(word)
	if v.Bit(255) == 1 {
		v.Sub(v, int256Offset)
	}
	return v
}

// latestAnswer calls latestRoundData() and returns the answer field.
func (f *ChainlinkFetcher) latestAnswer(ctx context.Context, agg common.Address) (*big.Int, error) {
	out, err := f.ec.CallContract(ctx, ethereum.CallMsg{To: &agg, Data: selector("latestRoundData()")}, nil)
	if err != nil {
		return nil, fmt.Errorf("latestRoundData: %w", err)
	}
	// (uint80 roundId, int256 answer, uint256 startedAt, uint256 updatedAt, uint80 answeredInRound)
	if len(out) < 64 {
		return nil, fmt.Errorf("latestRoundData: short response (%d bytes)", len(out))
	}
	ans := decodeInt256(out[32:64])
	if ans.Sign() < 0 {
		return nil, fmt.Errorf("latestRoundData: negative answer %s", ans)
	}
	return ans, nil
}

func (f *ChainlinkFetcher) feedDecimals(ctx context.Context, agg common.Address) (int, error) {
	out, err := f.ec.CallContract(ctx, ethereum.CallMsg{To: &agg, Data: selector("decimals()")}, nil)
	if err != nil {
		return 0, fmt.Errorf("decimals: %w", err)
	}
	if len(out) < 32 {
		return 8, nil
	}
	return int(new(big.Int).SetBytes(out[:32]).Int64()), nil
}

func (f *ChainlinkFetcher) FetchQuotes(ctx context.Context, symbols []string) ([]pricedb.Quote, error) {
	now := time.Now()
	var quotes []pricedb.Quote
	for _, sym := range symbols {
		agg, ok := f.feeds[sym]
		if !ok {
			continue
		}
		ans, err := f.latestAnswer(ctx, agg)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", sym, err)
		}
		dec, err := f.feedDecimals(ctx, agg)
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", sym, err)
		}
		price := decimal.NewFromBigInt(ans, -int32(dec))
		quotes = append(quotes, pricedb.Quote{
			Symbol:    sym,
			Price:     price.InexactFloat64(),
			UpdatedAt: now,
		})
	}
	return quotes, nil
}
