package kraken

import (
	"context"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

type AssetInfo struct {
	AssetClass      string           `json:"aclass"`
	AltName         string           `json:"altname"`
	Decimals        int              `json:"decimals"`
	DisplayDecimals int              `json:"display_decimals"`
	CollateralValue *decimal.Decimal `json:"collateral_value,omitempty"`
	Status          string           `json:"status"`
}

//
// AssetInfoResponse maps Kraken asset codes (e.g. "XXBT") to their details.
//
type AssetInfoResponse map[string]AssetInfo

func (o *Client) AllAssetInfo(ctx context.Context) (*Envelope[AssetInfoResponse], error) {
	return GetPublic[AssetInfoResponse](ctx, o, AssetsPath)
}

//
// AssetInfo retrieves details of the provided assets, which may be given by either their Kraken
// code or their alternate name (e.g. "XBT" or "XXBT").
//
func (o *Client) AssetInfo(ctx context.Context, assets ...string) (*Envelope[AssetInfoResponse], error) {
	params := url.Values{}
	params.Set("asset", strings.Join(assets, ","))

	return GetPublic[AssetInfoResponse](ctx, o, AssetsPath+"?"+params.Encode())
}

//
// AssetClassInfo retrieves details of every asset in the provided class (e.g. "currency").
//
func (o *Client) AssetClassInfo(ctx context.Context, class string) (*Envelope[AssetInfoResponse], error) {
	params := url.Values{}
	params.Set("aclass", class)

	return GetPublic[AssetInfoResponse](ctx, o, AssetsPath+"?"+params.Encode())
}
