package kraken

import (
	"errors"
	"fmt"
	"time"
)

var (
	//
	// ErrUnauthorized is returned, without any request being made, when a private endpoint is called
	// on a client that was not given both an API key and an API secret.
	//
	ErrUnauthorized = errors.New("kraken: private endpoints require both an api key and an api secret")

	//
	// ErrMissingResult is reported by Envelope.Err for a response that carried neither errors nor a
	// result.
	//
	ErrMissingResult = errors.New("kraken: response carried neither errors nor a result")
)

//
// ClockError represents a system clock that reported an instant prior to the Unix epoch, making it
// impossible to produce a valid nonce.
//
type ClockError struct {
	Time time.Time
}

func (o *ClockError) Error() string {
	return fmt.Sprintf("kraken: system clock reports %s, which is before the unix epoch", o.Time)
}

//
// SecretEncodingError represents an API secret that is not valid standard base64.
//
type SecretEncodingError struct {
	Err error
}

func (o *SecretEncodingError) Error() string {
	return fmt.Sprintf("kraken: api secret is not valid base64: %s", o.Err)
}

func (o *SecretEncodingError) Unwrap() error {
	return o.Err
}
