package exchange

import (
	"errors"
	"fmt"
	"time"
)

//
// Interval is an enum that represents various kline/candlestick intervals that can be retrieved
// from an exchange's historical data endpoints.
//
type Interval int

const (
	OneMinute Interval = iota
	FiveMinute
	FifteenMinute
	ThirtyMinute
	OneHour
	FourHour
	OneDay
	OneWeek
	FifteenDay
)

//
// ErrInvalidInterval is returned when historical data is requested at an interval that is not one
// of the defined constants.
//
var ErrInvalidInterval = errors.New("exchange: invalid candle interval")

var (
	intervalMinutes = [...]int{1, 5, 15, 30, 60, 240, 1440, 10080, 21600}
	intervalNames   = [...]string{"1m", "5m", "15m", "30m", "1h", "4h", "1d", "1w", "15d"}
)

//
// Valid returns whether or not the interval is one of the defined constants.
//
func (o Interval) Valid() bool {
	return o >= OneMinute && o <= FifteenDay
}

func (o Interval) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Interval(%d)", int(o))
	}

	return intervalNames[o]
}

//
// Minutes returns the length of the interval in minutes, which is how most exchanges expect the
// granularity of historical data to be requested. Invalid intervals span zero minutes.
//
func (o Interval) Minutes() int {
	if !o.Valid() {
		return 0
	}

	return intervalMinutes[o]
}

//
// Duration returns the length of the interval.
//
func (o Interval) Duration() time.Duration {
	return time.Duration(o.Minutes()) * time.Minute
}

//
// ParseInterval returns the interval whose string form matches the provided value, or false if
// there is no such interval.
//
func ParseInterval(s string) (Interval, bool) {
	for i := OneMinute; i <= FifteenDay; i++ {
		if i.String() == s {
			return i, true
		}
	}

	return OneMinute, false
}
