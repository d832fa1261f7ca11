package fcs

const (
	ContentTypeHeader = "Content-Type"
	AcceptHeader      = "Accept"
	FormContentType   = "application/x-www-form-urlencoded"
	JSONContentType   = "application/json"

	ForexBase  = "forex/"
	CryptoBase = "crypto/"
	StockBase  = "stock/"

	UnknownErrorMessage = "Unknown error"
	RequestFailedPrefix = "Request failed: "
)
