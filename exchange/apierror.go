package exchange

// APIError generically provides an interface to objects that represent a first-class error provided
// in the response envelope of a market data API (as opposed to a transport or HTTP failure).
type APIError interface {
	error

	// ErrorCode returns the actual error code provided by the API (if there was one).
	ErrorCode() int

	// ErrorMessage returns the actual error message provided by the API (if there was one).
	ErrorMessage() string
}
