package exchange

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle generically provides an interface to objects that represent candlesticks provided in a
// response from a call to a market data API's history endpoint.
type Candle interface {

	// StartTime returns the opening instant of the candle.
	StartTime() time.Time

	Open() decimal.Decimal
	High() decimal.Decimal
	Low() decimal.Decimal
	Close() decimal.Decimal

	// Volume returns the traded volume of the candle. Providers that do not report volume for an
	// instrument (most spot forex) yield zero.
	Volume() decimal.Decimal
}
