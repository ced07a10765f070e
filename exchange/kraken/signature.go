package kraken

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"strconv"
)

//
// Sign computes the value of the API-Sign header for a private request: the base64-encoded
// HMAC-SHA512 of the URI path followed by SHA256(nonce + POST body), keyed with the base64-decoded
// API secret. The order of concatenation and the choice of hashes must match Kraken's exactly.
//
func Sign(urlPath string, body string, nonce uint64, secret string) (string, error) {
	digest := sha256.Sum256([]byte(strconv.FormatUint(nonce, 10) + body))

	input := make([]byte, 0, len(urlPath)+len(digest))
	input = append(input, urlPath...)
	input = append(input, digest[:]...)

	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return "", &SecretEncodingError{Err: err}
	}

	mac := hmac.New(sha512.New, key)
	mac.Write(input)

	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}
