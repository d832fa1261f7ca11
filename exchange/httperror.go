package exchange

import "fmt"

// HTTPError represents a non-2xx response whose body could not be understood as an API envelope.
// Authentication failures usually do carry an envelope, so this almost always means something
// between the client and the API (a proxy, a gateway, an outage) answered instead.
type HTTPError struct {
	statusCode int
	endpoint   string
}

func NewHTTPError(endpoint string, statusCode int) *HTTPError {
	return &HTTPError{
		statusCode: statusCode,
		endpoint:   endpoint,
	}
}

func (o *HTTPError) StatusCode() int {
	return o.statusCode
}

func (o *HTTPError) Endpoint() string {
	return o.endpoint
}

func (o *HTTPError) Error() string {
	return fmt.Sprintf("%s: server responded with a %d status code", o.endpoint, o.statusCode)
}
