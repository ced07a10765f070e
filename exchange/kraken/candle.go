package kraken

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lukehollenback/kraken/exchange"
	"github.com/shopspring/decimal"
)

// NOTE ~> According to https://docs.kraken.com/api/docs/rest-api/get-ohlc-data, the structure of
//  the arrays returned from the Kraken OHLC endpoint are as follows:
//
//  [0] 1688671200,     // Open time (seconds)
//  [1] "30306.1",      // Open
//  [2] "30306.2",      // High
//  [3] "30305.7",      // Low
//  [4] "30305.7",      // Close
//  [5] "30306.1",      // Volume-weighted average price
//  [6] "3.39243896",   // Volume
//  [7] 23              // Number of trades

const (
	StartTimeIndex = 0
	OpenIndex      = 1
	HighIndex      = 2
	LowIndex       = 3
	CloseIndex     = 4
	VWAPIndex      = 5
	VolumeIndex    = 6
	CountIndex     = 7

	candleFields = 8
)

var _ exchange.Candle = (*Candle)(nil)

//
// Candle implements the exchange.Candle interface for the OHLC rows provided by the Kraken API.
//
type Candle struct {
	start  time.Time
	end    time.Time
	open   decimal.Decimal
	high   decimal.Decimal
	low    decimal.Decimal
	close  decimal.Decimal
	vwap   decimal.Decimal
	volume decimal.Decimal
	count  int
}

//
// UnmarshalJSON implements the json.Unmarshaler interface for Candle structures so that the JSON
// arrays provided by the Kraken API that represent them can be properly unmarshalled. The end time
// of the candle is not part of the row and is filled in once the interval is known.
//
func (o *Candle) UnmarshalJSON(data []byte) error {
	//
	// Unmarshall the provided JSON string into a raw interface array.
	//
	// NOTE ~> Unknown numbers always come in as float64 types when unmarshalled. Thus, we are going
	//  to need to expect such values and cast them accordingly.
	//
	var raw []interface{}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	if len(raw) < candleFields {
		return fmt.Errorf("expected %d fields in ohlc row but found %d", candleFields, len(raw))
	}

	//
	// Parse the start time of the candle.
	//
	startRaw, ok := raw[StartTimeIndex].(float64)
	if !ok {
		return fmt.Errorf("failed to assert type of start (open) time (%+v)", raw[StartTimeIndex])
	}

	o.start = time.Unix(int64(startRaw), 0).UTC()

	//
	// Parse the price and volume values of the candle, all of which arrive as strings.
	//
	fields := []struct {
		name  string
		index int
		dst   *decimal.Decimal
	}{
		{"open", OpenIndex, &o.open},
		{"high", HighIndex, &o.high},
		{"low", LowIndex, &o.low},
		{"close", CloseIndex, &o.close},
		{"vwap", VWAPIndex, &o.vwap},
		{"volume", VolumeIndex, &o.volume},
	}

	for _, f := range fields {
		s, ok := raw[f.index].(string)
		if !ok {
			return fmt.Errorf("failed to assert type of %s (%+v)", f.name, raw[f.index])
		}

		*f.dst, err = decimal.NewFromString(s)
		if err != nil {
			return err
		}
	}

	//
	// Parse the count value of the candle.
	//
	countRaw, ok := raw[CountIndex].(float64)
	if !ok {
		return fmt.Errorf("failed to assert type of count (%+v)", raw[CountIndex])
	}

	o.count = int(countRaw)

	return nil
}

//
// setInterval fills in the end time of the candle as the last instant of the provided interval.
//
func (o *Candle) setInterval(interval exchange.Interval) {
	o.end = o.start.Add(interval.Duration() - time.Nanosecond)
}

func (o *Candle) StartTime() *time.Time {
	return &o.start
}

func (o *Candle) EndTime() *time.Time {
	return &o.end
}

func (o *Candle) Open() *decimal.Decimal {
	return &o.open
}

func (o *Candle) High() *decimal.Decimal {
	return &o.high
}

func (o *Candle) Low() *decimal.Decimal {
	return &o.low
}

func (o *Candle) Close() *decimal.Decimal {
	return &o.close
}

//
// VWAP returns a pointer to the volume-weighted average price of the candle. It is specific to
// Kraken and thus not part of the exchange.Candle interface.
//
func (o *Candle) VWAP() *decimal.Decimal {
	return &o.vwap
}

func (o *Candle) Volume() *decimal.Decimal {
	return &o.volume
}

func (o *Candle) Count() *int {
	return &o.count
}

func (o *Candle) String() string {
	return fmt.Sprintf(
		"%s O: %s H: %s L: %s C: %s V: %s (%d trades)",
		o.start.Format(time.RFC3339), o.open, o.high, o.low, o.close, o.volume, o.count,
	)
}
