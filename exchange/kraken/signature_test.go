package kraken

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// Example credentials and request published in Kraken's REST authentication guide.
	docsSecret    = "kQH5HW/8p1uGOVjbgWA7FunAmGO8lsSUXNsu3eow76sz84Q18fWxnyRzBHCd3pd5nE9qa99HAZtuZuj6F1huXg=="
	docsNonce     = uint64(1616492376594)
	docsPath      = "/0/private/AddOrder"
	docsBody      = "nonce=1616492376594&ordertype=limit&pair=XBTUSD&price=37500&type=buy&volume=1.25"
	docsSignature = "4/dpxb3iT4tp/ZCVEwSnEsLxx0bqyhLpdfOpc6fn7OR8+UClSV5n9E6aSS8MPtnRfp32bAb0nmbRn6H8ndwLUQ=="
)

func TestSignKnownAnswer(t *testing.T) {
	signature, err := Sign(docsPath, docsBody, docsNonce, docsSecret)
	require.NoError(t, err)
	assert.Equal(t, docsSignature, signature)
}

func TestSignBalanceFixture(t *testing.T) {
	signature, err := Sign("/0/private/Balance", "nonce=1700000000000", 1700000000000, docsSecret)
	require.NoError(t, err)
	assert.Equal(t, "czhu1TvpTUkVtUbRiqwKniRXzZlg53wZmCdUIPWVLRoRMbTDwnq4frkWOdPSH9Q5YwHV5wqsA77JHXvM+XqHVQ==", signature)
}

func TestSignIsDeterministic(t *testing.T) {
	first, err := Sign(docsPath, docsBody, docsNonce, docsSecret)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Sign(docsPath, docsBody, docsNonce, docsSecret)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSignChangesWithEveryInput(t *testing.T) {
	base, err := Sign(docsPath, docsBody, docsNonce, docsSecret)
	require.NoError(t, err)

	flip := func(s string, i int) string {
		b := []byte(s)
		b[i] ^= 0x01

		return string(b)
	}

	for i := range docsPath {
		signature, err := Sign(flip(docsPath, i), docsBody, docsNonce, docsSecret)
		require.NoError(t, err)
		assert.NotEqual(t, base, signature, "path byte %d", i)
	}

	for i := range docsBody {
		signature, err := Sign(docsPath, flip(docsBody, i), docsNonce, docsSecret)
		require.NoError(t, err)
		assert.NotEqual(t, base, signature, "body byte %d", i)
	}

	digits := strconv.FormatUint(docsNonce, 10)
	for i := range digits {
		b := []byte(digits)
		b[i] = '0' + (b[i]-'0'+1)%10

		nonce, err := strconv.ParseUint(string(b), 10, 64)
		require.NoError(t, err)

		signature, err := Sign(docsPath, docsBody, nonce, docsSecret)
		require.NoError(t, err)
		assert.NotEqual(t, base, signature, "nonce digit %d", i)
	}
}

func TestSignAcceptsEmptyInputs(t *testing.T) {
	signature, err := Sign("", "", 0, docsSecret)
	require.NoError(t, err)
	assert.NotEmpty(t, signature)
}

func TestSignRejectsInvalidSecret(t *testing.T) {
	_, err := Sign(docsPath, docsBody, docsNonce, "not base64!")
	require.Error(t, err)

	var secretErr *SecretEncodingError
	assert.True(t, errors.As(err, &secretErr))
}
