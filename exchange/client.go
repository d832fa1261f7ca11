package exchange

import (
	"context"
	"net/url"
)

// Client generically provides an interface to an object that can be used to interact with a market
// data provider's REST API. Implementations attach their own authentication parameters to every
// call.
//
// Whenever an endpoint fails (a system failure, an HTTP error, or an API error), the error
// component of the response will be non-nil and, if at all possible, the response payload
// that was received will be returned.
type Client interface {

	// Request calls the specified endpoint (a path relative to the API's base URL) with the provided
	// parameters.
	Request(ctx context.Context, endpoint string, params url.Values) (Response, error)
}
