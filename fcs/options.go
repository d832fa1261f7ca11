package fcs

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// Option customizes a Client at construction time.
type Option func(*Client)

// WithBaseURL points the client at a different API root. A trailing slash is added if missing.
func WithBaseURL(baseURL string) Option {
	return func(o *Client) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}

		o.baseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *Client) {
		o.httpClient = httpClient
	}
}

func WithLogger(logger *logrus.Entry) Option {
	return func(o *Client) {
		o.logger = logger
	}
}

// WithHistorySize sets how many responses the client remembers for LastResponse and History.
func WithHistorySize(size int) Option {
	return func(o *Client) {
		o.historySize = size
	}
}
