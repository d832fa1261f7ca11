package fcs

import (
	"context"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukehollenback/fcsapi/auth"
	"github.com/lukehollenback/fcsapi/exchange"
)

// fakeClient records the last call made through it instead of talking to an API.
type fakeClient struct {
	endpoint string
	params   url.Values
}

func (o *fakeClient) Request(_ context.Context, endpoint string, params url.Values) (exchange.Response, error) {
	o.endpoint = endpoint
	o.params = params

	return responseWith("[]"), nil
}

func markets() (*fakeClient, *Forex, *Crypto, *Stock) {
	c := &fakeClient{}

	return c, newForex(c), newCrypto(c), newStock(c)
}

func TestSharedBuildersUseMarketBase(t *testing.T) {
	c, forex, crypto, stock := markets()
	ctx := context.Background()

	_, err := forex.LatestPrice(ctx, "EURUSD", LatestOptions{})
	require.NoError(t, err)
	assert.Equal(t, "forex/latest", c.endpoint)
	assert.Equal(t, url.Values{"symbol": {"EURUSD"}}, c.params)

	_, err = crypto.Profile(ctx, "BTC")
	require.NoError(t, err)
	assert.Equal(t, "crypto/profile", c.endpoint)

	_, err = stock.Performance(ctx, "AAPL", "NASDAQ")
	require.NoError(t, err)
	assert.Equal(t, "stock/performance", c.endpoint)
	assert.Equal(t, url.Values{"symbol": {"AAPL"}, "exchange": {"NASDAQ"}}, c.params)
}

func TestLatestPriceOptions(t *testing.T) {
	c, forex, _, _ := markets()

	_, _ = forex.LatestPrice(context.Background(), "FX:EURUSD", LatestOptions{
		Period:   exchange.OneHour,
		Type:     ForexType,
		Exchange: "FX",
		Profile:  true,
	})

	assert.Equal(t, url.Values{
		"symbol":   {"FX:EURUSD"},
		"period":   {"1h"},
		"type":     {"forex"},
		"exchange": {"FX"},
		"merge":    {"profile"},
	}, c.params)
}

func TestHistoryDefaults(t *testing.T) {
	c, _, crypto, _ := markets()

	_, _ = crypto.History(context.Background(), "BTCUSDT", HistoryOptions{})
	assert.Equal(t, "crypto/history", c.endpoint)
	assert.Equal(t, url.Values{"symbol": {"BTCUSDT"}, "period": {"1D"}, "length": {"300"}}, c.params)

	_, _ = crypto.History(context.Background(), "BTCUSDT", HistoryOptions{
		Period: exchange.FifteenMinute,
		Length: 50,
		From:   "2024-01-01",
		To:     "2024-02-01",
		Page:   2,
		Chart:  true,
	})
	assert.Equal(t, url.Values{
		"symbol": {"BTCUSDT"},
		"period": {"15m"},
		"length": {"50"},
		"from":   {"2024-01-01"},
		"to":     {"2024-02-01"},
		"page":   {"2"},
		"candle": {"chart"},
	}, c.params)
}

func TestTechnicalDefaults(t *testing.T) {
	c, _, _, stock := markets()
	ctx := context.Background()

	_, _ = stock.MovingAverages(ctx, "AAPL", exchange.NoPeriod, "")
	assert.Equal(t, "stock/ma", c.endpoint)
	assert.Equal(t, url.Values{"symbol": {"AAPL"}, "period": {"1D"}}, c.params)

	_, _ = stock.Indicators(ctx, "AAPL", exchange.OneWeek, "")
	assert.Equal(t, "stock/indicators", c.endpoint)
	assert.Equal(t, "1W", c.params.Get("period"))

	_, _ = stock.PivotPoints(ctx, "AAPL", exchange.NoPeriod, "NASDAQ")
	assert.Equal(t, "stock/pivot_points", c.endpoint)
	assert.Equal(t, "NASDAQ", c.params.Get("exchange"))
}

func TestMultiURLJoinsURLs(t *testing.T) {
	c, forex, _, _ := markets()

	_, _ = forex.MultiURL(context.Background(), []string{"latest?symbol=EURUSD", "profile?symbol=EUR"}, "https://api-v4.fcsapi.com/forex/")

	assert.Equal(t, "forex/multi_url", c.endpoint)
	assert.Equal(t, "latest?symbol=EURUSD,profile?symbol=EUR", c.params.Get("url"))
	assert.Equal(t, "https://api-v4.fcsapi.com/forex/", c.params.Get("base"))
}

func TestSortedDataDefaults(t *testing.T) {
	c, forex, crypto, stock := markets()
	ctx := context.Background()

	_, _ = forex.TopGainers(ctx, SortOptions{})
	assert.Equal(t, "forex/advance", c.endpoint)
	assert.Equal(t, url.Values{
		"period":   {"1D"},
		"sort_by":  {"active.chp_desc"},
		"per_page": {"20"},
		"merge":    {"latest"},
		"type":     {"forex"},
	}, c.params)

	_, _ = crypto.TopLosers(ctx, SortOptions{Limit: 5, Exchange: "BINANCE"})
	assert.Equal(t, "active.chp_asc", c.params.Get("sort_by"))
	assert.Equal(t, "5", c.params.Get("per_page"))
	assert.Equal(t, "crypto", c.params.Get("type"))
	assert.Equal(t, "BINANCE", c.params.Get("exchange"))

	_, _ = crypto.HighestVolume(ctx, SortOptions{})
	assert.Equal(t, "active.v_desc", c.params.Get("sort_by"))

	_, _ = stock.MostActive(ctx, SortOptions{Country: "united-states"})
	assert.Equal(t, "stock/advance", c.endpoint)
	assert.Equal(t, "active.v_desc", c.params.Get("sort_by"))
	assert.Equal(t, "united-states", c.params.Get("country"))
	assert.NotContains(t, c.params, "type")
}

func TestForexBuilders(t *testing.T) {
	c, forex, _, _ := markets()
	ctx := context.Background()

	_, _ = forex.AllPrices(ctx, "", LatestOptions{})
	assert.Equal(t, "forex/latest", c.endpoint)
	assert.Equal(t, url.Values{"exchange": {"FX"}}, c.params)

	_, _ = forex.Convert(ctx, "EUR", "USD", decimal.Zero)
	assert.Equal(t, "forex/converter", c.endpoint)
	assert.Equal(t, url.Values{"pair1": {"EUR"}, "pair2": {"USD"}, "amount": {"1"}, "type": {"forex"}}, c.params)

	_, _ = forex.Convert(ctx, "EUR", "USD", decimal.RequireFromString("250.5"))
	assert.Equal(t, "250.5", c.params.Get("amount"))

	_, _ = forex.Commodities(ctx, "", exchange.NoPeriod)
	assert.Equal(t, url.Values{"type": {"commodity"}}, c.params)

	_, _ = forex.CommoditySymbols(ctx)
	assert.Equal(t, "forex/list", c.endpoint)

	_, _ = forex.BasePrices(ctx, "USD", RateOptions{})
	assert.Equal(t, "forex/base_latest", c.endpoint)
	assert.Equal(t, url.Values{"symbol": {"USD"}, "type": {"forex"}}, c.params)

	_, _ = forex.CrossRates(ctx, "USD", RateOptions{CrossRates: "EUR,GBP"})
	assert.Equal(t, "forex/crossrate", c.endpoint)
	assert.Equal(t, url.Values{"symbol": {"USD"}, "type": {"forex"}, "period": {"1D"}, "crossrates": {"EUR,GBP"}}, c.params)

	_, _ = forex.EconomyCalendar(ctx, CalendarOptions{Country: "US", From: "2024-01-01"})
	assert.Equal(t, "forex/economy_cal", c.endpoint)
	assert.Equal(t, url.Values{"country": {"US"}, "from": {"2024-01-01"}}, c.params)

	_, _ = forex.Search(ctx, "euro", ListOptions{Type: ForexType})
	assert.Equal(t, "forex/search", c.endpoint)
	assert.Equal(t, url.Values{"search": {"euro"}, "type": {"forex"}}, c.params)
}

func TestCryptoBuilders(t *testing.T) {
	c, _, crypto, _ := markets()
	ctx := context.Background()

	_, _ = crypto.SymbolsList(ctx, ListOptions{})
	assert.Equal(t, url.Values{"type": {"crypto"}}, c.params)

	_, _ = crypto.CoinsList(ctx)
	assert.Equal(t, url.Values{"type": {"coin"}}, c.params)

	_, _ = crypto.AllPrices(ctx, "", LatestOptions{})
	assert.Equal(t, url.Values{"exchange": {"BINANCE"}, "type": {"crypto"}}, c.params)

	_, _ = crypto.TopByMarketCap(ctx, 0)
	assert.Equal(t, "crypto/advance", c.endpoint)
	assert.Equal(t, url.Values{
		"type":     {"coin"},
		"sort_by":  {"perf.market_cap_desc"},
		"per_page": {"100"},
		"merge":    {"latest,perf"},
	}, c.params)

	_, _ = crypto.CoinData(ctx, "BTC", 10, "")
	assert.Equal(t, "perf.rank_asc", c.params.Get("sort_by"))
	assert.Equal(t, "BTC", c.params.Get("symbol"))
	assert.Equal(t, "10", c.params.Get("per_page"))

	_, _ = crypto.Convert(ctx, "BTC", "USD", decimal.NewFromInt(2))
	assert.Equal(t, url.Values{"pair1": {"BTC"}, "pair2": {"USD"}, "amount": {"2"}}, c.params)

	_, _ = crypto.BasePrices(ctx, "BTC", RateOptions{Exchange: "BINANCE"})
	assert.Equal(t, url.Values{"symbol": {"BTC"}, "exchange": {"BINANCE"}}, c.params)

	_, _ = crypto.CrossRates(ctx, "BTC", RateOptions{})
	assert.Equal(t, url.Values{"symbol": {"BTC"}, "type": {"crypto"}, "period": {"1D"}}, c.params)
}

func TestStockBuilders(t *testing.T) {
	c, _, _, stock := markets()
	ctx := context.Background()

	_, _ = stock.IndicesList(ctx, "united-states", "")
	assert.Equal(t, "stock/list", c.endpoint)
	assert.Equal(t, url.Values{"type": {"index"}, "country": {"united-states"}}, c.params)

	_, _ = stock.IndicesLatest(ctx, "NASDAQ:NDX", "", "")
	assert.Equal(t, "stock/latest", c.endpoint)
	assert.Equal(t, url.Values{"type": {"index"}, "symbol": {"NASDAQ:NDX"}}, c.params)

	_, _ = stock.Earnings(ctx, "AAPL", "")
	assert.Equal(t, url.Values{"symbol": {"AAPL"}, "duration": {"both"}}, c.params)

	_, _ = stock.Dividends(ctx, "AAPL", "")
	assert.Equal(t, "stock/dividend", c.endpoint)
	assert.Equal(t, "plain", c.params.Get("format"))

	_, _ = stock.BalanceSheet(ctx, "AAPL", FinancialOptions{Duration: DurationQuarterly})
	assert.Equal(t, "stock/balance_sheet", c.endpoint)
	assert.Equal(t, url.Values{"symbol": {"AAPL"}, "duration": {"interim"}, "format": {"plain"}}, c.params)

	_, _ = stock.IncomeStatements(ctx, "AAPL", FinancialOptions{})
	assert.Equal(t, "stock/income_statements", c.endpoint)

	_, _ = stock.CashFlow(ctx, "AAPL", FinancialOptions{})
	assert.Equal(t, "stock/cash_flow", c.endpoint)

	_, _ = stock.Statistics(ctx, "AAPL", "")
	assert.Equal(t, url.Values{"symbol": {"AAPL"}, "duration": {"annual"}}, c.params)

	_, _ = stock.StockData(ctx, "AAPL", nil, FinancialOptions{})
	assert.Equal(t, "stock/stock_data", c.endpoint)
	assert.Equal(t, "profile,earnings,dividends", c.params.Get("data_column"))

	_, _ = stock.BySector(ctx, "Technology", 0, "")
	assert.Equal(t, "stock/advance", c.endpoint)
	assert.Equal(t, url.Values{"sector": {"Technology"}, "per_page": {"50"}, "merge": {"latest"}}, c.params)

	_, _ = stock.ByCountry(ctx, "japan", 5, "TSE")
	assert.Equal(t, url.Values{"country": {"japan"}, "per_page": {"5"}, "merge": {"latest"}, "exchange": {"TSE"}}, c.params)

	_, _ = stock.SymbolsList(ctx, ListOptions{Exchange: "NASDAQ", Sector: "Technology"})
	assert.Equal(t, url.Values{"exchange": {"NASDAQ"}, "sector": {"Technology"}}, c.params)
}

func TestBuildersOverHTTP(t *testing.T) {
	rec := &recorder{body: okBody}
	client := newTestClient(t, auth.WithAccessKey("K"), rec)

	_, err := client.Stock.LatestPrice(context.Background(), "AAPL", LatestOptions{})
	require.NoError(t, err)

	assert.Equal(t, "/stock/latest", rec.lastPath())
	assert.Equal(t, url.Values{"symbol": {"AAPL"}, "access_key": {"K"}}, rec.lastForm())
}
