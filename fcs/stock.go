package fcs

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/lukehollenback/fcsapi/exchange"
)

const (
	IndexType = "index"

	DefaultFilterLimit = 50

	DurationAnnual    = "annual"
	DurationQuarterly = "interim"
	DurationBoth      = "both"
	FormatPlain       = "plain"
)

var DefaultStockDataColumns = []string{"profile", "earnings", "dividends"}

// Stock builds queries against the stock and index endpoints.
type Stock struct {
	market
}

func newStock(client exchange.Client) *Stock {
	return &Stock{market{client: client, base: StockBase}}
}

// FinancialOptions narrows financial statement calls. Zero values select annual, plain data.
type FinancialOptions struct {
	Duration string
	Format   string
}

func (o *Stock) SymbolsList(ctx context.Context, opts ListOptions) (exchange.Response, error) {
	params := url.Values{}
	set(params, "exchange", opts.Exchange)
	set(params, "country", opts.Country)
	set(params, "sector", opts.Sector)
	set(params, "indices", opts.Indices)

	return o.request(ctx, "list", params)
}

func (o *Stock) IndicesList(ctx context.Context, country string, exch string) (exchange.Response, error) {
	params := url.Values{"type": {IndexType}}
	set(params, "country", country)
	set(params, "exchange", exch)

	return o.request(ctx, "list", params)
}

// IndicesLatest fetches index quotes; an empty symbol covers every index that matches.
func (o *Stock) IndicesLatest(ctx context.Context, symbol string, country string, exch string) (exchange.Response, error) {
	params := url.Values{"type": {IndexType}}
	set(params, "symbol", symbol)
	set(params, "country", country)
	set(params, "exchange", exch)

	return o.request(ctx, "latest", params)
}

func (o *Stock) AllPrices(ctx context.Context, exch string, period exchange.Period) (exchange.Response, error) {
	params := url.Values{"exchange": {exch}}
	setPeriod(params, period)

	return o.request(ctx, "latest", params)
}

func (o *Stock) LatestByCountry(ctx context.Context, country string, sector string, period exchange.Period) (exchange.Response, error) {
	params := url.Values{"country": {country}}
	set(params, "sector", sector)
	setPeriod(params, period)

	return o.request(ctx, "latest", params)
}

func (o *Stock) LatestByIndices(ctx context.Context, indices string, period exchange.Period) (exchange.Response, error) {
	params := url.Values{"indices": {indices}}
	setPeriod(params, period)

	return o.request(ctx, "latest", params)
}

// Earnings fetches earnings for a duration of "annual", "interim", or "both" (the default).
func (o *Stock) Earnings(ctx context.Context, symbol string, duration string) (exchange.Response, error) {
	return o.request(ctx, "earnings", url.Values{
		"symbol":   {symbol},
		"duration": {or(duration, DurationBoth)},
	})
}

func (o *Stock) Revenue(ctx context.Context, symbol string) (exchange.Response, error) {
	return o.request(ctx, "revenue", url.Values{"symbol": {symbol}})
}

func (o *Stock) Dividends(ctx context.Context, symbol string, format string) (exchange.Response, error) {
	return o.request(ctx, "dividend", url.Values{
		"symbol": {symbol},
		"format": {or(format, FormatPlain)},
	})
}

func (o *Stock) BalanceSheet(ctx context.Context, symbol string, opts FinancialOptions) (exchange.Response, error) {
	return o.statement(ctx, "balance_sheet", symbol, opts)
}

func (o *Stock) IncomeStatements(ctx context.Context, symbol string, opts FinancialOptions) (exchange.Response, error) {
	return o.statement(ctx, "income_statements", symbol, opts)
}

func (o *Stock) CashFlow(ctx context.Context, symbol string, opts FinancialOptions) (exchange.Response, error) {
	return o.statement(ctx, "cash_flow", symbol, opts)
}

func (o *Stock) statement(ctx context.Context, endpoint string, symbol string, opts FinancialOptions) (exchange.Response, error) {
	return o.request(ctx, endpoint, url.Values{
		"symbol":   {symbol},
		"duration": {or(opts.Duration, DurationAnnual)},
		"format":   {or(opts.Format, FormatPlain)},
	})
}

func (o *Stock) Statistics(ctx context.Context, symbol string, duration string) (exchange.Response, error) {
	return o.request(ctx, "statistics", url.Values{
		"symbol":   {symbol},
		"duration": {or(duration, DurationAnnual)},
	})
}

func (o *Stock) Forecast(ctx context.Context, symbol string) (exchange.Response, error) {
	return o.request(ctx, "forecast", url.Values{"symbol": {symbol}})
}

// StockData fetches several data sets of a stock in one call. No columns selects profile,
// earnings, and dividends.
func (o *Stock) StockData(ctx context.Context, symbol string, columns []string, opts FinancialOptions) (exchange.Response, error) {
	if len(columns) == 0 {
		columns = DefaultStockDataColumns
	}

	return o.request(ctx, "stock_data", url.Values{
		"symbol":      {symbol},
		"data_column": {strings.Join(columns, ",")},
		"duration":    {or(opts.Duration, DurationAnnual)},
		"format":      {or(opts.Format, FormatPlain)},
	})
}

func (o *Stock) TopGainers(ctx context.Context, opts SortOptions) (exchange.Response, error) {
	return o.SortedData(ctx, ChangePercentColumn, SortDescending, opts)
}

func (o *Stock) TopLosers(ctx context.Context, opts SortOptions) (exchange.Response, error) {
	return o.SortedData(ctx, ChangePercentColumn, SortAscending, opts)
}

func (o *Stock) MostActive(ctx context.Context, opts SortOptions) (exchange.Response, error) {
	return o.SortedData(ctx, VolumeColumn, SortDescending, opts)
}

// SortedData sorts stocks by column. Stocks have no instrument type, so opts.Type is sent only if
// the caller sets it.
func (o *Stock) SortedData(ctx context.Context, column string, direction string, opts SortOptions) (exchange.Response, error) {
	return o.sortedData(ctx, column, direction, "", opts)
}

func (o *Stock) BySector(ctx context.Context, sector string, limit int, exch string) (exchange.Response, error) {
	return o.filter(ctx, "sector", sector, limit, exch)
}

func (o *Stock) ByCountry(ctx context.Context, country string, limit int, exch string) (exchange.Response, error) {
	return o.filter(ctx, "country", country, limit, exch)
}

func (o *Stock) filter(ctx context.Context, key string, value string, limit int, exch string) (exchange.Response, error) {
	if limit <= 0 {
		limit = DefaultFilterLimit
	}

	params := url.Values{
		key:        {value},
		"per_page": {strconv.Itoa(limit)},
		"merge":    {"latest"},
	}
	set(params, "exchange", exch)

	return o.request(ctx, "advance", params)
}
