package kraken

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"
)

//
// AccountBalanceResponse maps Kraken asset codes to the amount held, exactly as Kraken formats it.
//
type AccountBalanceResponse map[string]string

//
// TradeBalance summarises the margin position of the account, valued in a single asset.
//
type TradeBalance struct {
	EquivalentBalance decimal.Decimal     `json:"eb"`
	TradeBalance      decimal.Decimal     `json:"tb"`
	MarginAmount      decimal.Decimal     `json:"m"`
	UnrealizedNetPL   decimal.Decimal     `json:"n"`
	CostBasis         decimal.Decimal     `json:"c"`
	FloatingValuation decimal.Decimal     `json:"v"`
	Equity            decimal.Decimal     `json:"e"`
	FreeMargin        decimal.Decimal     `json:"mf"`
	MarginLevel       decimal.NullDecimal `json:"ml"`
	UnexecutedValue   decimal.NullDecimal `json:"uv"`
}

func (o *Client) AccountBalance(ctx context.Context) (*Envelope[AccountBalanceResponse], error) {
	return GetPrivate[AccountBalanceResponse](ctx, o, BalancePath)
}

//
// TradeBalance retrieves the trade balance valued in the provided asset. An empty asset leaves the
// choice to Kraken, which defaults to "ZUSD".
//
func (o *Client) TradeBalance(ctx context.Context, asset string) (*Envelope[TradeBalance], error) {
	params := url.Values{}
	if asset != "" {
		params.Set("asset", asset)
	}

	return PostPrivate[TradeBalance](ctx, o, TradeBalancePath, params)
}
