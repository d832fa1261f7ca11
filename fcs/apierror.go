package fcs

import "fmt"

// APIError implements the exchange.APIError interface for envelopes the FCS API returns with a
// false status (bad credentials, exhausted credits, unknown symbols, and so on).
type APIError struct {
	Code     int    `json:"code"`
	Message  string `json:"msg"`
	Endpoint string `json:"-"`
}

func (o *APIError) ErrorCode() int {
	return o.Code
}

func (o *APIError) ErrorMessage() string {
	return o.Message
}

func (o *APIError) Error() string {
	return fmt.Sprintf(
		"the FCS API endpoint %s returned an API error (code: %d, message: %s)",
		o.Endpoint, o.ErrorCode(), o.ErrorMessage(),
	)
}
