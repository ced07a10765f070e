package kraken

import (
	"encoding/json"

	"github.com/lukehollenback/kraken/exchange"
)

//
// Envelope is the generic wrapper that every Kraken REST response arrives in. It either holds a
// result of the endpoint-specific type T, a list of error strings, or (in odd cases) both or
// neither. An envelope cannot be modified once it has been constructed.
//
type Envelope[T any] struct {
	errors []string
	result *T
}

//
// NewEnvelope constructs an envelope from its parts. A nil result means that no result was present.
//
func NewEnvelope[T any](errs []string, result *T) *Envelope[T] {
	return &Envelope[T]{
		errors: append([]string(nil), errs...),
		result: result,
	}
}

//
// DecodeEnvelope decodes a raw response body into an envelope. If the body is not valid JSON or does
// not fit the expected schema, an exchange.DecodeError carrying the provided HTTP status code is
// returned.
//
func DecodeEnvelope[T any](body []byte, statusCode int) (*Envelope[T], error) {
	o := &Envelope[T]{}

	if err := json.Unmarshal(body, o); err != nil {
		return nil, exchange.NewDecodeError(statusCode, err)
	}

	return o, nil
}

//
// UnmarshalJSON implements the json.Unmarshaler interface so that the unexported members of the
// envelope can be populated from the {"error": [...], "result": ...} wire form.
//
func (o *Envelope[T]) UnmarshalJSON(data []byte) error {
	var raw struct {
		Error  []string `json:"error"`
		Result *T       `json:"result"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	o.errors = raw.Error
	o.result = raw.Result

	return nil
}

//
// Errors returns a copy of the error strings provided by the exchange.
//
func (o *Envelope[T]) Errors() []string {
	return append([]string(nil), o.errors...)
}

//
// Result returns the decoded result and a true sentinel, or the zero value of T and a false
// sentinel if no result was present.
//
func (o *Envelope[T]) Result() (T, bool) {
	if o.result == nil {
		var zero T

		return zero, false
	}

	return *o.result, true
}

//
// Success returns whether or not the envelope holds a result and no errors.
//
func (o *Envelope[T]) Success() bool {
	return len(o.errors) == 0 && o.result != nil
}

//
// Err returns nil for a successful envelope. Otherwise it returns an *APIError holding the
// exchange's error strings, or ErrMissingResult if there were none.
//
func (o *Envelope[T]) Err() error {
	if o.Success() {
		return nil
	}

	if len(o.errors) == 0 {
		return ErrMissingResult
	}

	return &APIError{messages: o.Errors()}
}
