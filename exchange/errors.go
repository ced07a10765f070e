package exchange

import "fmt"

//
// TransportError represents a failure to complete an HTTP exchange with an API endpoint – a refused
// connection, a timeout, or a non-success HTTP status whose body could not be understood. The
// status code is zero when no response was received at all.
//
type TransportError struct {
	StatusCode int
	Err        error
}

func NewTransportError(statusCode int, err error) *TransportError {
	return &TransportError{
		StatusCode: statusCode,
		Err:        err,
	}
}

func (o *TransportError) Error() string {
	if o.StatusCode == 0 {
		return fmt.Sprintf("http request failed: %s", o.Err)
	}

	return fmt.Sprintf("http request failed with a %d status code: %s", o.StatusCode, o.Err)
}

func (o *TransportError) Unwrap() error {
	return o.Err
}

//
// DecodeError represents a response body that did not match the schema that the caller expected.
// The status code of the response that carried the body is kept when it is known.
//
type DecodeError struct {
	StatusCode int
	Err        error
}

func NewDecodeError(statusCode int, err error) *DecodeError {
	return &DecodeError{
		StatusCode: statusCode,
		Err:        err,
	}
}

func (o *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response body (status: %d): %s", o.StatusCode, o.Err)
}

func (o *DecodeError) Unwrap() error {
	return o.Err
}
