package fcs

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/lukehollenback/fcsapi/exchange"
)

const (
	DefaultHistoryLength = 300
	DefaultMoversLimit   = 20

	SortAscending  = "asc"
	SortDescending = "desc"

	ChangePercentColumn = "active.chp"
	VolumeColumn        = "active.v"
)

// ListOptions narrows symbol list, exchange list, and search calls. Markets ignore the fields
// their endpoints do not take.
type ListOptions struct {
	Type     string
	SubType  string
	Exchange string
	Country  string
	Sector   string
	Indices  string
}

// LatestOptions narrows latest price calls.
type LatestOptions struct {
	Period   exchange.Period
	Type     string
	Exchange string
	Profile  bool // Merge the instrument profile into each quote.
}

// HistoryOptions narrows history calls. Zero values select a daily period and 300 candles.
type HistoryOptions struct {
	Period exchange.Period
	Length int
	From   string // YYYY-MM-DD
	To     string // YYYY-MM-DD
	Page   int
	Chart  bool // Ask for the compact chart candle format.
}

// SortOptions narrows top mover and sorted data calls. Zero values select 20 results over a
// daily period.
type SortOptions struct {
	Limit    int
	Period   exchange.Period
	Type     string
	Exchange string
	Country  string
}

// RateOptions narrows base price and cross rate calls.
type RateOptions struct {
	Type       string
	Period     exchange.Period
	Exchange   string
	CrossRates string
	Fallback   string
}

// market holds the query builders every market (forex, crypto, stock) shares. Each builder maps
// its arguments onto request parameters and delegates to the client under the market's base path.
type market struct {
	client exchange.Client
	base   string
}

func (o *market) request(ctx context.Context, endpoint string, params url.Values) (exchange.Response, error) {
	return o.client.Request(ctx, o.base+endpoint, params)
}

// LatestPrice fetches the latest quote of a symbol such as "EURUSD" or "FX:EURUSD".
func (o *market) LatestPrice(ctx context.Context, symbol string, opts LatestOptions) (exchange.Response, error) {
	params := url.Values{"symbol": {symbol}}
	setPeriod(params, opts.Period)
	set(params, "type", opts.Type)
	set(params, "exchange", opts.Exchange)

	if opts.Profile {
		params.Set("merge", "profile")
	}

	return o.request(ctx, "latest", params)
}

// History fetches historical candles of a symbol. Decode them with Response.Candles.
func (o *market) History(ctx context.Context, symbol string, opts HistoryOptions) (exchange.Response, error) {
	length := opts.Length
	if length <= 0 {
		length = DefaultHistoryLength
	}

	params := url.Values{
		"symbol": {symbol},
		"period": {opts.Period.Or(exchange.OneDay).String()},
		"length": {strconv.Itoa(length)},
	}
	set(params, "from", opts.From)
	set(params, "to", opts.To)
	setInt(params, "page", opts.Page)

	if opts.Chart {
		params.Set("candle", "chart")
	}

	return o.request(ctx, "history", params)
}

func (o *market) Profile(ctx context.Context, symbol string) (exchange.Response, error) {
	return o.request(ctx, "profile", url.Values{"symbol": {symbol}})
}

func (o *market) Exchanges(ctx context.Context, opts ListOptions) (exchange.Response, error) {
	params := url.Values{}
	set(params, "type", opts.Type)
	set(params, "sub_type", opts.SubType)

	return o.request(ctx, "exchanges", params)
}

// MovingAverages fetches EMA and SMA readings. The exchange is optional.
func (o *market) MovingAverages(ctx context.Context, symbol string, period exchange.Period, exch string) (exchange.Response, error) {
	return o.technical(ctx, "ma", symbol, period, exch)
}

// Indicators fetches RSI, MACD, and the other oscillators. The exchange is optional.
func (o *market) Indicators(ctx context.Context, symbol string, period exchange.Period, exch string) (exchange.Response, error) {
	return o.technical(ctx, "indicators", symbol, period, exch)
}

// PivotPoints fetches classic, Fibonacci, Camarilla, Woodie, and DeMark pivots. The exchange is
// optional.
func (o *market) PivotPoints(ctx context.Context, symbol string, period exchange.Period, exch string) (exchange.Response, error) {
	return o.technical(ctx, "pivot_points", symbol, period, exch)
}

func (o *market) technical(ctx context.Context, endpoint string, symbol string, period exchange.Period, exch string) (exchange.Response, error) {
	params := url.Values{
		"symbol": {symbol},
		"period": {period.Or(exchange.OneDay).String()},
	}
	set(params, "exchange", exch)

	return o.request(ctx, endpoint, params)
}

// Performance fetches highs, lows, and volatility over standard horizons.
func (o *market) Performance(ctx context.Context, symbol string, exch string) (exchange.Response, error) {
	params := url.Values{"symbol": {symbol}}
	set(params, "exchange", exch)

	return o.request(ctx, "performance", params)
}

func (o *market) Search(ctx context.Context, query string, opts ListOptions) (exchange.Response, error) {
	params := url.Values{"search": {query}}
	set(params, "type", opts.Type)
	set(params, "exchange", opts.Exchange)
	set(params, "country", opts.Country)

	return o.request(ctx, "search", params)
}

// Advanced passes caller-built parameters straight to the advance endpoint.
func (o *market) Advanced(ctx context.Context, params url.Values) (exchange.Response, error) {
	return o.request(ctx, "advance", params)
}

// MultiURL bundles several endpoint calls into one request.
func (o *market) MultiURL(ctx context.Context, urls []string, base string) (exchange.Response, error) {
	params := url.Values{"url": {strings.Join(urls, ",")}}
	set(params, "base", base)

	return o.request(ctx, "multi_url", params)
}

// sortedData fetches instruments sorted by column ("active.chp", "active.v", ...) in direction
// ("asc" or "desc") with their latest quotes merged in. defaultType is used when opts.Type is empty;
// markets without instrument types pass "".
func (o *market) sortedData(ctx context.Context, column string, direction string, defaultType string, opts SortOptions) (exchange.Response, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultMoversLimit
	}

	typ := opts.Type
	if typ == "" {
		typ = defaultType
	}

	params := url.Values{
		"period":   {opts.Period.Or(exchange.OneDay).String()},
		"sort_by":  {column + "_" + direction},
		"per_page": {strconv.Itoa(limit)},
		"merge":    {"latest"},
	}
	set(params, "type", typ)
	set(params, "exchange", opts.Exchange)
	set(params, "country", opts.Country)

	return o.request(ctx, "advance", params)
}

func set(params url.Values, key string, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

func setInt(params url.Values, key string, value int) {
	if value > 0 {
		params.Set(key, strconv.Itoa(value))
	}
}

func setPeriod(params url.Values, period exchange.Period) {
	set(params, "period", period.String())
}

func or(value string, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
