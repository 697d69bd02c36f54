package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimeframe is returned when a timeframe name is not recognized.
var ErrInvalidTimeframe = errors.New("invalid timeframe")

// Timeframe is a predefined filter window over Expense.Date.
type Timeframe string

// Supported timeframes. The zero value behaves like TimeframeAll.
const (
	TimeframeAll   Timeframe = "all"
	TimeframeToday Timeframe = "today"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
)

// Timeframes lists every timeframe in the order the UI cycles through them.
var Timeframes = []Timeframe{TimeframeAll, TimeframeToday, TimeframeWeek, TimeframeMonth}

// ParseTimeframe converts user input into a Timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(strings.ToLower(strings.TrimSpace(s)))
	switch tf {
	case "":
		return TimeframeAll, nil
	case TimeframeAll, TimeframeToday, TimeframeWeek, TimeframeMonth:
		return tf, nil
	default:
		return "", fmt.Errorf("%w: %q (expected all, today, week or month)", ErrInvalidTimeframe, s)
	}
}

// Label is the human-readable name shown in the UI.
func (tf Timeframe) Label() string {
	switch tf {
	case TimeframeToday:
		return "Today"
	case TimeframeWeek:
		return "This Week"
	case TimeframeMonth:
		return "This Month"
	default:
		return "All"
	}
}

// Next returns the timeframe after tf in Timeframes, wrapping around.
func (tf Timeframe) Next() Timeframe {
	for i, candidate := range Timeframes {
		if candidate == tf {
			return Timeframes[(i+1)%len(Timeframes)]
		}
	}
	return TimeframeAll
}

// Bound returns the date string a record is compared against, relative to now.
// For today the comparison is equality; for week and month it is a lower bound
// computed by calendar subtraction. ok is false for all.
func (tf Timeframe) Bound(now time.Time) (date string, exact bool, ok bool) {
	switch tf {
	case TimeframeToday:
		return FormatDay(now), true, true
	case TimeframeWeek:
		return FormatDay(now.AddDate(0, 0, -7)), false, true
	case TimeframeMonth:
		return FormatDay(now.AddDate(0, 0, -30)), false, true
	default:
		return "", false, false
	}
}
