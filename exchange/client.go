package exchange

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

//
// Client generically provides an interface to an object that can be used to interact with a
// cryptocurrency exchange's regular REST API. Normally, this is the client used to do things
// like check balances and retrieve historical trade data.
//
// Whenever an endpoint fails – whether due to a system failure, an HTTP error, or an API error –
// the returned error will be non-nil. API errors implement the APIError interface so that they can
// be told apart from transport failures with errors.As.
//
type Client interface {

	//
	// RetrieveCandles retrieves candles of the specified interval for the specified ticker symbol
	// that started at or after the provided instant. Exchanges usually cap how many candles a single
	// call can return (Kraken, for example, returns at most 720).
	//
	RetrieveCandles(ctx context.Context, symbol string, interval Interval, since time.Time) ([]Candle, error)

	//
	// RetrieveBalances retrieves the balance of every asset held by the authenticated account, keyed
	// by the exchange's own asset code.
	//
	RetrieveBalances(ctx context.Context) (map[string]decimal.Decimal, error)
}
