package kraken

import (
	"strings"

	"github.com/lukehollenback/kraken/exchange"
)

var _ exchange.APIError = (*APIError)(nil)

//
// APIError implements the exchange.APIError interface for the error strings that Kraken returns in
// the "error" member of a response envelope (e.g. "EAPI:Invalid nonce"). The strings are kept
// verbatim.
//
type APIError struct {
	messages []string
}

func (o *APIError) Messages() []string {
	return append([]string(nil), o.messages...)
}

func (o *APIError) Error() string {
	return "kraken: the endpoint returned an api error (" + strings.Join(o.messages, "; ") + ")"
}
