package constants

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// BaseURL is the root of the FCS API v4 REST service. Every endpoint path is appended to it.
	BaseURL = "https://api-v4.fcsapi.com/"

	// DefaultTimeout is how long a single outbound request may take before it is abandoned.
	DefaultTimeout = 30 * time.Second

	// DefaultTokenWindow is how long (in seconds) a freshly generated token remains valid.
	DefaultTokenWindow int64 = 3600

	// TokenExpiryMargin is how close to its expiry a token may get before it is considered unusable
	// on the client side.
	TokenExpiryMargin int64 = 60

	// DefaultHistorySize is the number of responses a client remembers.
	DefaultHistorySize = 16

	ComponentKey = "component"
)

var (
	one = decimal.NewFromInt(1)
)

// One returns the decimal representation of 1. It is the default amount for currency conversions.
func One() decimal.Decimal {
	return one
}
