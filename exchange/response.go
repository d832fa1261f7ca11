package exchange

import (
	"encoding/json"
	"net/http"
)

// Response generically provides an interface to an object that represents a response from a call to
// a market data API endpoint.
type Response interface {

	// Raw provides the raw HTTP response from the endpoint call that was made. It is nil when the
	// request never received a response.
	Raw() *http.Response

	// Body provides the raw bytes of the response payload.
	Body() []byte

	// Success returns whether or not the API reported the call as successful.
	Success() bool

	Code() int
	Message() string

	// Data provides the undecoded payload of the response (if there was one).
	Data() json.RawMessage

	// Decode unmarshals the payload of the response into v.
	Decode(v interface{}) error

	// Candles decodes the payload of a history call into candles ordered by start time.
	Candles() ([]Candle, error)
}
