package kraken

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

//
// NewHTTPClient builds an HTTP client suitable for sharing between Kraken clients. If a proxy
// address (host:port) is provided, every connection is tunnelled through that SOCKS5 proxy, with
// host names resolved on the proxy's side.
//
func NewHTTPClient(proxyAddr string, timeout time.Duration) (*http.Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if proxyAddr == "" {
		return &http.Client{Timeout: timeout}, nil
	}

	dialer, err := proxy.FromURL(&url.URL{Scheme: "socks5h", Host: proxyAddr}, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create socks5 dialer for %s: %w", proxyAddr, err)
	}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}

			return dialer.Dial(network, addr)
		},
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}
