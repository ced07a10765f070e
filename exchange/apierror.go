package exchange

//
// APIError generically provides an interface to objects that represent first-class errors provided
// in the body of an otherwise well-formed response from a cryptocurrency exchange's API. These are
// business errors (e.g. an invalid nonce or insufficient funds) rather than transport failures.
//
type APIError interface {
	error

	//
	// Messages returns the error strings exactly as the exchange provided them.
	//
	Messages() []string
}
