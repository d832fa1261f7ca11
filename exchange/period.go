package exchange

import (
	"fmt"
	"strings"
)

// Period is an enum that represents the candle resolutions a market data API understands. NoPeriod
// means "let the API decide" and is never sent.
type Period int

const (
	NoPeriod Period = iota
	OneMinute
	FiveMinute
	FifteenMinute
	ThirtyMinute
	OneHour
	FourHour
	OneDay
	OneWeek
	OneMonth
)

var periodNames = [...]string{"", "1m", "5m", "15m", "30m", "1h", "4h", "1D", "1W", "1M"}

func (o Period) String() string {
	if o < 0 || int(o) >= len(periodNames) {
		return ""
	}

	return periodNames[o]
}

// ParsePeriod converts a wire period name such as "15m" or "1D" into its enum value. Minute and
// month share a letter, so only the day and week suffixes are matched case-insensitively.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)

	for i, v := range periodNames {
		if v == s {
			return Period(i), nil
		}
	}

	switch strings.ToLower(s) {
	case "1d":
		return OneDay, nil
	case "1w":
		return OneWeek, nil
	}

	return NoPeriod, fmt.Errorf("unknown period %q", s)
}

// Or returns the period itself, or fallback if no period was chosen.
func (o Period) Or(fallback Period) Period {
	if o == NoPeriod {
		return fallback
	}

	return o
}
