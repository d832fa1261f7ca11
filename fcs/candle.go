package fcs

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NOTE ~> Candles in a history payload look like the following. Prices and volume may arrive as
//  strings or numbers, the epoch as either, and volume is empty for most spot forex pairs.
//
//  {
//    "o":  "1.08410",               // Open
//    "h":  "1.08533",               // High
//    "l":  "1.08355",               // Low
//    "c":  "1.08470",               // Close
//    "v":  "1203",                  // Volume
//    "t":  1700000000,              // Open time (Unix seconds)
//    "tm": "2023-11-14 22:13:20"    // Open time (UTC)
//  }

const (
	CandleTimeLayout = "2006-01-02 15:04:05"
)

// Candle implements the exchange.Candle interface for candlesticks provided by the FCS API.
type Candle struct {
	start  time.Time
	open   decimal.Decimal
	high   decimal.Decimal
	low    decimal.Decimal
	close  decimal.Decimal
	volume decimal.Decimal
}

func (o *Candle) StartTime() time.Time    { return o.start }
func (o *Candle) Open() decimal.Decimal   { return o.open }
func (o *Candle) High() decimal.Decimal   { return o.high }
func (o *Candle) Low() decimal.Decimal    { return o.low }
func (o *Candle) Close() decimal.Decimal  { return o.close }
func (o *Candle) Volume() decimal.Decimal { return o.volume }

// UnmarshalJSON implements the json.Unmarshaler interface for Candle structures so that the loosely
// typed candle objects provided by the FCS API can be properly unmarshalled.
func (o *Candle) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	//
	// Parse the open, high, low, close, and volume values of the candle.
	//
	fields := []struct {
		key string
		dst *decimal.Decimal
	}{
		{"o", &o.open},
		{"h", &o.high},
		{"l", &o.low},
		{"c", &o.close},
		{"v", &o.volume},
	}

	for _, f := range fields {
		*f.dst, err = looseDecimal(raw[f.key])
		if err != nil {
			return fmt.Errorf("failed to parse candle field %q (%s)", f.key, err)
		}
	}

	//
	// Parse the start time of the candle, preferring the epoch over the formatted timestamp.
	//
	epoch, err := looseString(raw["t"])
	if err != nil {
		return fmt.Errorf("failed to parse candle field \"t\" (%s)", err)
	}

	if epoch != "" {
		sec, err := strconv.ParseInt(epoch, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse candle field \"t\" (%s)", err)
		}

		o.start = time.Unix(sec, 0).UTC()

		return nil
	}

	stamp, err := looseString(raw["tm"])
	if err != nil || stamp == "" {
		return fmt.Errorf("candle carries no start time (%s)", string(data))
	}

	o.start, err = time.ParseInLocation(CandleTimeLayout, stamp, time.UTC)

	return err
}

// looseString returns the textual form of a JSON string or number, or "" for null and absent
// values.
func looseString(v json.RawMessage) (string, error) {
	s := strings.TrimSpace(string(v))

	if s == "" || s == "null" {
		return "", nil
	}

	if strings.HasPrefix(s, "\"") {
		var unquoted string
		if err := json.Unmarshal(v, &unquoted); err != nil {
			return "", err
		}

		return strings.TrimSpace(unquoted), nil
	}

	return s, nil
}

func looseDecimal(v json.RawMessage) (decimal.Decimal, error) {
	s, err := looseString(v)
	if err != nil || s == "" {
		return decimal.Zero, err
	}

	return decimal.NewFromString(s)
}
