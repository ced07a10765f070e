package kraken

import (
	"context"
	"fmt"
	"time"

	"github.com/lukehollenback/kraken/exchange"
	"github.com/shopspring/decimal"
)

var _ exchange.Client = (*Client)(nil)

//
// RetrieveCandles implements the exchange.Client interface. Kraken keys the returned candles by its
// canonical pair name, so when the requested symbol is not found verbatim the only pair in the
// result is used instead.
//
func (o *Client) RetrieveCandles(
	ctx context.Context,
	symbol string,
	interval exchange.Interval,
	since time.Time,
) ([]exchange.Candle, error) {
	envelope, err := o.OHLC(ctx, symbol, interval, since)
	if err != nil {
		return nil, err
	}

	if err := envelope.Err(); err != nil {
		return nil, err
	}

	result, _ := envelope.Result()

	rows, ok := result.Candles[symbol]
	if !ok {
		if len(result.Candles) != 1 {
			return nil, fmt.Errorf("kraken: no candles were returned for %s", symbol)
		}

		for _, v := range result.Candles {
			rows = v
		}
	}

	ret := make([]exchange.Candle, len(rows))

	for i, v := range rows {
		ret[i] = v
	}

	return ret, nil
}

//
// RetrieveBalances implements the exchange.Client interface.
//
func (o *Client) RetrieveBalances(ctx context.Context) (map[string]decimal.Decimal, error) {
	envelope, err := o.AccountBalance(ctx)
	if err != nil {
		return nil, err
	}

	if err := envelope.Err(); err != nil {
		return nil, err
	}

	result, _ := envelope.Result()

	balances := make(map[string]decimal.Decimal, len(result))

	for asset, amount := range result {
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("kraken: failed to parse balance of %s (%q): %w", asset, amount, err)
		}

		balances[asset] = d
	}

	return balances, nil
}
