package kraken

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/lukehollenback/kraken/exchange"
)

//
// OHLCResponse is the result of the OHLC endpoint: candles keyed by Kraken's canonical pair name
// (which may differ from the name that was asked for, e.g. "XXBTZUSD" for "XBTUSD"), plus the id
// to pass as "since" when polling for newer data.
//
type OHLCResponse struct {
	Candles map[string][]*Candle
	Last    int64
}

func (o *OHLCResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	o.Candles = make(map[string][]*Candle, len(raw))

	for k, v := range raw {
		if k == "last" {
			if err := json.Unmarshal(v, &o.Last); err != nil {
				return err
			}

			continue
		}

		var rows []*Candle

		if err := json.Unmarshal(v, &rows); err != nil {
			return err
		}

		o.Candles[k] = rows
	}

	return nil
}

//
// OHLC retrieves candles of the specified interval for the specified pair. A zero since returns the
// most recent candles Kraken is willing to provide.
//
func (o *Client) OHLC(
	ctx context.Context,
	pair string,
	interval exchange.Interval,
	since time.Time,
) (*Envelope[OHLCResponse], error) {
	if !interval.Valid() {
		return nil, fmt.Errorf("kraken: cannot request %s candles: %w", interval, exchange.ErrInvalidInterval)
	}

	params := url.Values{}
	params.Set("pair", pair)
	params.Set("interval", strconv.Itoa(interval.Minutes()))

	if !since.IsZero() {
		params.Set("since", strconv.FormatInt(since.Unix(), 10))
	}

	envelope, err := GetPublic[OHLCResponse](ctx, o, OHLCPath+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	if result, ok := envelope.Result(); ok {
		for _, rows := range result.Candles {
			for _, c := range rows {
				c.setInterval(interval)
			}
		}
	}

	return envelope, nil
}
