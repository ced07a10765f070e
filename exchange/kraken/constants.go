package kraken

import "time"

const (
	BaseURL    = "https://api.kraken.com"
	APIVersion = 0

	APIKeyHeader      = "API-Key"
	APISignHeader     = "API-Sign"
	ContentTypeHeader = "Content-Type"
	FormURLEncoded    = "application/x-www-form-urlencoded; charset=utf-8"

	DefaultTimeout = 30 * time.Second

	AssetsPath       = "Assets"
	TimePath         = "Time"
	SystemStatusPath = "SystemStatus"
	OHLCPath         = "OHLC"
	BalancePath      = "Balance"
	TradeBalancePath = "TradeBalance"
)
