package kraken

import (
	"context"
	"time"
)

type ServerTime struct {
	UnixTime int64  `json:"unixtime"`
	RFC1123  string `json:"rfc1123"`
}

func (o ServerTime) Time() time.Time {
	return time.Unix(o.UnixTime, 0).UTC()
}

//
// SystemStatus describes whether the exchange is accepting requests. Status is one of "online",
// "maintenance", "cancel_only", or "post_only".
//
type SystemStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (o *Client) ServerTime(ctx context.Context) (*Envelope[ServerTime], error) {
	return GetPublic[ServerTime](ctx, o, TimePath)
}

func (o *Client) SystemStatus(ctx context.Context) (*Envelope[SystemStatus], error) {
	return GetPublic[SystemStatus](ctx, o, SystemStatusPath)
}
