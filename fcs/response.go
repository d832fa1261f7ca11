package fcs

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/lukehollenback/fcsapi/exchange"
)

// envelope is the JSON object every FCS API endpoint answers with.
type envelope struct {
	Status   bool            `json:"status"`
	Code     int             `json:"code"`
	Msg      string          `json:"msg"`
	Response json.RawMessage `json:"response"`
	Info     json.RawMessage `json:"info,omitempty"`
}

// Response implements the exchange.Response interface for wrapped responses from the FCS API.
type Response struct {
	response *http.Response
	body     []byte
	envelope envelope
}

// failedResponse builds the stand-in envelope recorded when a request never produced a usable
// answer, so that success checks on the client keep working after a transport failure.
func failedResponse(err error) *Response {
	return &Response{
		envelope: envelope{
			Status: false,
			Code:   0,
			Msg:    RequestFailedPrefix + err.Error(),
		},
	}
}

func (o *Response) Raw() *http.Response {
	return o.response
}

func (o *Response) Body() []byte {
	return o.body
}

func (o *Response) Success() bool {
	return o.envelope.Status
}

func (o *Response) Code() int {
	return o.envelope.Code
}

func (o *Response) Message() string {
	return o.envelope.Msg
}

// Data provides the undecoded payload, or nil if the envelope carried none (absent or null).
func (o *Response) Data() json.RawMessage {
	data := bytes.TrimSpace(o.envelope.Response)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	return o.envelope.Response
}

// Info provides the undecoded "info" block of the envelope (server time, credit usage) if the API
// sent one.
func (o *Response) Info() json.RawMessage {
	return o.envelope.Info
}

func (o *Response) Decode(v interface{}) error {
	if o.Data() == nil {
		return errors.New("response carries no payload")
	}

	return json.Unmarshal(o.envelope.Response, v)
}

// Candles decodes the payload of a history call. The API returns either an array of candles or an
// object of candles keyed by timestamp; both come back sorted by start time.
func (o *Response) Candles() ([]exchange.Candle, error) {
	data := bytes.TrimSpace(o.envelope.Response)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []exchange.Candle{}, nil
	}

	var candles []*Candle

	if data[0] == '{' {
		var keyed map[string]*Candle

		if err := json.Unmarshal(data, &keyed); err != nil {
			return nil, err
		}

		candles = make([]*Candle, 0, len(keyed))
		for _, v := range keyed {
			candles = append(candles, v)
		}
	} else if err := json.Unmarshal(data, &candles); err != nil {
		return nil, err
	}

	// null entries carry no candle
	kept := candles[:0]
	for _, v := range candles {
		if v != nil {
			kept = append(kept, v)
		}
	}
	candles = kept

	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].start.Before(candles[j].start)
	})

	ret := make([]exchange.Candle, len(candles))
	for i, v := range candles {
		ret[i] = v
	}

	return ret, nil
}
