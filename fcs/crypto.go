package fcs

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/lukehollenback/fcsapi/constants"
	"github.com/lukehollenback/fcsapi/exchange"
)

const (
	CryptoType            = "crypto"
	CoinType              = "coin"
	DefaultCryptoExchange = "BINANCE"
	DefaultCoinLimit      = 100

	RankAscending       = "perf.rank_asc"
	MarketCapDescending = "perf.market_cap_desc"
)

// Crypto builds queries against the cryptocurrency endpoints.
type Crypto struct {
	market
}

func newCrypto(client exchange.Client) *Crypto {
	return &Crypto{market{client: client, base: CryptoBase}}
}

// SymbolsList lists crypto pairs ("crypto" type unless opts.Type says otherwise).
func (o *Crypto) SymbolsList(ctx context.Context, opts ListOptions) (exchange.Response, error) {
	params := url.Values{"type": {or(opts.Type, CryptoType)}}
	set(params, "sub_type", opts.SubType)
	set(params, "exchange", opts.Exchange)

	return o.request(ctx, "list", params)
}

// CoinsList lists coins rather than trading pairs.
func (o *Crypto) CoinsList(ctx context.Context) (exchange.Response, error) {
	return o.request(ctx, "list", url.Values{"type": {CoinType}})
}

// AllPrices fetches every quote of an exchange ("BINANCE" when empty).
func (o *Crypto) AllPrices(ctx context.Context, exch string, opts LatestOptions) (exchange.Response, error) {
	params := url.Values{
		"exchange": {or(exch, DefaultCryptoExchange)},
		"type":     {or(opts.Type, CryptoType)},
	}
	setPeriod(params, opts.Period)

	return o.request(ctx, "latest", params)
}

// CoinData fetches market cap, rank, and supply data sorted by sortBy ("perf.rank_asc" when
// empty). An empty symbol covers every coin.
func (o *Crypto) CoinData(ctx context.Context, symbol string, limit int, sortBy string) (exchange.Response, error) {
	if limit <= 0 {
		limit = DefaultCoinLimit
	}

	params := url.Values{
		"type":     {CoinType},
		"sort_by":  {or(sortBy, RankAscending)},
		"per_page": {strconv.Itoa(limit)},
		"merge":    {"latest,perf"},
	}
	set(params, "symbol", symbol)

	return o.request(ctx, "advance", params)
}

func (o *Crypto) TopByMarketCap(ctx context.Context, limit int) (exchange.Response, error) {
	return o.CoinData(ctx, "", limit, MarketCapDescending)
}

func (o *Crypto) TopByRank(ctx context.Context, limit int) (exchange.Response, error) {
	return o.CoinData(ctx, "", limit, RankAscending)
}

// Convert converts amount of pair1 into pair2. A zero amount converts one unit.
func (o *Crypto) Convert(ctx context.Context, pair1 string, pair2 string, amount decimal.Decimal) (exchange.Response, error) {
	if amount.IsZero() {
		amount = constants.One()
	}

	return o.request(ctx, "converter", url.Values{
		"pair1":  {pair1},
		"pair2":  {pair2},
		"amount": {amount.String()},
	})
}

func (o *Crypto) BasePrices(ctx context.Context, symbol string, opts RateOptions) (exchange.Response, error) {
	params := url.Values{"symbol": {symbol}}
	set(params, "exchange", opts.Exchange)
	set(params, "fallback", opts.Fallback)

	return o.request(ctx, "base_latest", params)
}

func (o *Crypto) CrossRates(ctx context.Context, symbol string, opts RateOptions) (exchange.Response, error) {
	params := url.Values{
		"symbol": {symbol},
		"type":   {or(opts.Type, CryptoType)},
		"period": {opts.Period.Or(exchange.OneDay).String()},
	}
	set(params, "exchange", opts.Exchange)
	set(params, "crossrates", opts.CrossRates)
	set(params, "fallback", opts.Fallback)

	return o.request(ctx, "crossrate", params)
}

func (o *Crypto) TopGainers(ctx context.Context, opts SortOptions) (exchange.Response, error) {
	return o.SortedData(ctx, ChangePercentColumn, SortDescending, opts)
}

func (o *Crypto) TopLosers(ctx context.Context, opts SortOptions) (exchange.Response, error) {
	return o.SortedData(ctx, ChangePercentColumn, SortAscending, opts)
}

func (o *Crypto) HighestVolume(ctx context.Context, opts SortOptions) (exchange.Response, error) {
	return o.SortedData(ctx, VolumeColumn, SortDescending, opts)
}

func (o *Crypto) SortedData(ctx context.Context, column string, direction string, opts SortOptions) (exchange.Response, error) {
	return o.sortedData(ctx, column, direction, CryptoType, opts)
}
