package fcs

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/lukehollenback/fcsapi/constants"
	"github.com/lukehollenback/fcsapi/exchange"
)

const (
	ForexType            = "forex"
	CommodityType        = "commodity"
	DefaultForexExchange = "FX"
)

// Forex builds queries against the forex and commodity endpoints.
type Forex struct {
	market
}

func newForex(client exchange.Client) *Forex {
	return &Forex{market{client: client, base: ForexBase}}
}

// SymbolsList lists forex or commodity symbols, optionally narrowed by type ("forex",
// "commodity"), sub type ("spot", "synthetic"), and exchange.
func (o *Forex) SymbolsList(ctx context.Context, opts ListOptions) (exchange.Response, error) {
	params := url.Values{}
	set(params, "type", opts.Type)
	set(params, "sub_type", opts.SubType)
	set(params, "exchange", opts.Exchange)

	return o.request(ctx, "list", params)
}

// AllPrices fetches every quote of an exchange ("FX" when empty).
func (o *Forex) AllPrices(ctx context.Context, exch string, opts LatestOptions) (exchange.Response, error) {
	params := url.Values{"exchange": {or(exch, DefaultForexExchange)}}
	setPeriod(params, opts.Period)
	set(params, "type", opts.Type)

	return o.request(ctx, "latest", params)
}

// Commodities fetches commodity quotes; an empty symbol returns all of them.
func (o *Forex) Commodities(ctx context.Context, symbol string, period exchange.Period) (exchange.Response, error) {
	params := url.Values{"type": {CommodityType}}
	set(params, "symbol", symbol)
	setPeriod(params, period)

	return o.request(ctx, "latest", params)
}

func (o *Forex) CommoditySymbols(ctx context.Context) (exchange.Response, error) {
	return o.request(ctx, "list", url.Values{"type": {CommodityType}})
}

// Convert converts amount of pair1 into pair2. A zero amount converts one unit.
func (o *Forex) Convert(ctx context.Context, pair1 string, pair2 string, amount decimal.Decimal) (exchange.Response, error) {
	if amount.IsZero() {
		amount = constants.One()
	}

	return o.request(ctx, "converter", url.Values{
		"pair1":  {pair1},
		"pair2":  {pair2},
		"amount": {amount.String()},
		"type":   {ForexType},
	})
}

// BasePrices fetches the price of one currency against every other.
func (o *Forex) BasePrices(ctx context.Context, symbol string, opts RateOptions) (exchange.Response, error) {
	params := url.Values{
		"symbol": {symbol},
		"type":   {or(opts.Type, ForexType)},
	}
	set(params, "exchange", opts.Exchange)
	set(params, "fallback", opts.Fallback)

	return o.request(ctx, "base_latest", params)
}

func (o *Forex) CrossRates(ctx context.Context, symbol string, opts RateOptions) (exchange.Response, error) {
	params := url.Values{
		"symbol": {symbol},
		"type":   {or(opts.Type, ForexType)},
		"period": {opts.Period.Or(exchange.OneDay).String()},
	}
	set(params, "exchange", opts.Exchange)
	set(params, "crossrates", opts.CrossRates)
	set(params, "fallback", opts.Fallback)

	return o.request(ctx, "crossrate", params)
}

// CalendarOptions narrows economy calendar calls. Dates are YYYY-MM-DD.
type CalendarOptions struct {
	Symbol  string
	Country string
	From    string
	To      string
}

func (o *Forex) EconomyCalendar(ctx context.Context, opts CalendarOptions) (exchange.Response, error) {
	params := url.Values{}
	set(params, "symbol", opts.Symbol)
	set(params, "country", opts.Country)
	set(params, "from", opts.From)
	set(params, "to", opts.To)

	return o.request(ctx, "economy_cal", params)
}

func (o *Forex) TopGainers(ctx context.Context, opts SortOptions) (exchange.Response, error) {
	return o.SortedData(ctx, ChangePercentColumn, SortDescending, opts)
}

func (o *Forex) TopLosers(ctx context.Context, opts SortOptions) (exchange.Response, error) {
	return o.SortedData(ctx, ChangePercentColumn, SortAscending, opts)
}

func (o *Forex) MostActive(ctx context.Context, opts SortOptions) (exchange.Response, error) {
	return o.SortedData(ctx, VolumeColumn, SortDescending, opts)
}

func (o *Forex) SortedData(ctx context.Context, column string, direction string, opts SortOptions) (exchange.Response, error) {
	return o.sortedData(ctx, column, direction, ForexType, opts)
}
