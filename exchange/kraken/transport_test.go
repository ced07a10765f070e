package kraken

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClientWithoutProxy(t *testing.T) {
	client, err := NewHTTPClient("", 5*time.Second)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, client.Timeout)
	assert.Nil(t, client.Transport)

	NewClient(WithHTTPClient(client))
	assert.Nil(t, client.Transport)
}

func TestNewHTTPClientDefaultsTimeout(t *testing.T) {
	client, err := NewHTTPClient("", 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultTimeout, client.Timeout)
}

func TestNewHTTPClientWithProxy(t *testing.T) {
	client, err := NewHTTPClient("127.0.0.1:1080", time.Second)
	require.NoError(t, err)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.NotNil(t, transport.DialContext)
}
