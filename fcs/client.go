package fcs

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lukehollenback/fcsapi/auth"
	"github.com/lukehollenback/fcsapi/constants"
	"github.com/lukehollenback/fcsapi/exchange"
	"github.com/lukehollenback/fcsapi/metrics"
	"github.com/lukehollenback/fcsapi/structs/evictingqueue"
)

var logger = logrus.WithField(constants.ComponentKey, "fcs")

// Client implements the exchange.Client interface for the FCS API. Every request is a form-encoded
// POST whose parameters are the caller's domain parameters merged with the authentication
// parameters derived from the client's auth.Config.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	auth        *auth.Config
	logger      *logrus.Entry
	historySize int
	history     *evictingqueue.EvictingQueue[*Response]

	Forex  *Forex
	Crypto *Crypto
	Stock  *Stock
}

// NewClient instantiates a client that authenticates with the provided configuration. A nil
// configuration is replaced by auth.NewConfig's defaults.
func NewClient(cfg *auth.Config, opts ...Option) *Client {
	if cfg == nil {
		cfg = auth.NewConfig(auth.Options{})
	}

	o := &Client{
		baseURL:     constants.BaseURL,
		httpClient:  &http.Client{},
		auth:        cfg,
		logger:      logger,
		historySize: constants.DefaultHistorySize,
	}

	for _, opt := range opts {
		opt(o)
	}

	o.history = evictingqueue.New[*Response](o.historySize)

	o.Forex = newForex(o)
	o.Crypto = newCrypto(o)
	o.Stock = newStock(o)

	return o
}

// Auth returns the configuration the client derives its authentication parameters from.
func (o *Client) Auth() *auth.Config {
	return o.auth
}

// SetToken switches the client to token authentication with a token minted by a backend.
func (o *Client) SetToken(t auth.TokenData) *Client {
	o.auth.SetToken(t)
	return o
}

// SetAccessKey switches the client to access key authentication.
func (o *Client) SetAccessKey(accessKey string) *Client {
	o.auth.SetAccessKey(accessKey)
	return o
}

// UseIPWhitelist switches the client to IP whitelist authentication.
func (o *Client) UseIPWhitelist() *Client {
	o.auth.UseIPWhitelist()
	return o
}

func (o *Client) IsTokenValid() bool {
	return o.auth.IsTokenValid()
}

func (o *Client) AuthParams() map[string]string {
	return o.auth.Params()
}

// Request implements the exchange.Client interface's described method. The returned response is
// never nil: a request that failed before the API answered yields a stand-in response whose message
// describes the failure.
func (o *Client) Request(ctx context.Context, endpoint string, params url.Values) (exchange.Response, error) {
	resp, err := o.request(ctx, endpoint, params)
	if resp == nil {
		resp = failedResponse(err)
	}

	o.history.Add(resp)

	return resp, err
}

// request makes the specified request to the FCS API and returns a wrapped response (parsed as much
// as generically possible) and/or an error if something went wrong.
func (o *Client) request(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	start := time.Now()
	log := o.logger.WithField("endpoint", endpoint)

	//
	// Merge the domain parameters with the authentication parameters. Authentication parameters win
	// on collision.
	//
	form := url.Values{}

	for k, v := range params {
		form[k] = append([]string(nil), v...)
	}

	for k, v := range o.auth.Params() {
		form.Set(k, v)
	}

	//
	// Make a request to the endpoint.
	//
	ctx, cancel := context.WithTimeout(ctx, o.auth.Timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	req.Header.Set(ContentTypeHeader, FormContentType)
	req.Header.Set(AcceptHeader, JSONContentType)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		metrics.RecordRequest(endpoint, 0, time.Since(start).Seconds(), true)
		log.WithError(err).Warn("Request failed.")

		return nil, err
	}
	defer resp.Body.Close()

	//
	// Begin wrapping the response in the standard response structure and read the payload.
	//
	wrappedResp := &Response{
		response: resp,
	}

	wrappedResp.body, err = io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordRequest(endpoint, resp.StatusCode, time.Since(start).Seconds(), true)
		log.WithError(err).Warn("Failed to read response.")

		return nil, err
	}

	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	})

	//
	// Decode the envelope. A body that is not an envelope is reported as an HTTP error when the
	// status code already says something went wrong.
	//
	failed := resp.StatusCode < 200 || resp.StatusCode > 299

	if err = json.Unmarshal(wrappedResp.body, &wrappedResp.envelope); err != nil {
		metrics.RecordRequest(endpoint, resp.StatusCode, time.Since(start).Seconds(), true)
		log.WithError(err).Warn("Response is not an API envelope.")

		wrappedResp.envelope = envelope{Msg: RequestFailedPrefix + err.Error()}

		if failed {
			return wrappedResp, exchange.NewHTTPError(endpoint, resp.StatusCode)
		}

		return wrappedResp, err
	}

	//
	// Check the envelope for API errors.
	//
	if !wrappedResp.envelope.Status {
		metrics.RecordRequest(endpoint, resp.StatusCode, time.Since(start).Seconds(), true)
		log.WithFields(logrus.Fields{
			"code": wrappedResp.envelope.Code,
			"msg":  wrappedResp.envelope.Msg,
		}).Warn("API reported an error.")

		return wrappedResp, &APIError{
			Code:     wrappedResp.envelope.Code,
			Message:  wrappedResp.envelope.Msg,
			Endpoint: endpoint,
		}
	}

	if failed {
		metrics.RecordRequest(endpoint, resp.StatusCode, time.Since(start).Seconds(), true)

		return wrappedResp, exchange.NewHTTPError(endpoint, resp.StatusCode)
	}

	metrics.RecordRequest(endpoint, resp.StatusCode, time.Since(start).Seconds(), false)
	log.Debug("Request completed.")

	return wrappedResp, nil
}

// LastResponse returns the most recent response, or nil if no request has been made yet.
func (o *Client) LastResponse() exchange.Response {
	if resp, ok := o.history.Last(); ok {
		return resp
	}

	return nil
}

// History returns the remembered responses from oldest to newest.
func (o *Client) History() []exchange.Response {
	resps := o.history.Slice()

	ret := make([]exchange.Response, len(resps))
	for i, v := range resps {
		ret[i] = v
	}

	return ret
}

// IsSuccess returns whether or not the most recent request succeeded.
func (o *Client) IsSuccess() bool {
	resp, ok := o.history.Last()

	return ok && resp.Success()
}

// LastError returns the message of the most recent request if it failed, or "" if it succeeded.
func (o *Client) LastError() string {
	if o.IsSuccess() {
		return ""
	}

	if resp, ok := o.history.Last(); ok && resp.Message() != "" {
		return resp.Message()
	}

	return UnknownErrorMessage
}

// ResponseData returns the payload of the most recent response, or nil if there was none.
func (o *Client) ResponseData() json.RawMessage {
	if resp, ok := o.history.Last(); ok {
		return resp.Data()
	}

	return nil
}
