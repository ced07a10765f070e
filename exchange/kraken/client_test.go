package kraken

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lukehollenback/kraken/exchange"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// countingTransport fails every request it sees and counts them, so that tests can assert that no
// request was attempted at all.
//
type countingTransport struct {
	calls atomic.Int32
}

func (o *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	o.calls.Add(1)

	return nil, errors.New("no request should have been made")
}

func fixedNonces(ms int64) *NonceGenerator {
	return newNonceGenerator(func() time.Time { return time.UnixMilli(ms) })
}

func TestGetPrivateWithoutCredentials(t *testing.T) {
	cases := map[string]Credentials{
		"no credentials": {},
		"key only":       {APIKey: "key"},
		"secret only":    {APISecret: docsSecret},
	}

	for name, credentials := range cases {
		t.Run(name, func(t *testing.T) {
			transport := &countingTransport{}
			client := NewClient(
				WithCredentials(credentials),
				WithHTTPClient(&http.Client{Transport: transport}),
			)

			envelope, err := GetPrivate[AccountBalanceResponse](context.Background(), client, BalancePath)
			assert.Nil(t, envelope)
			assert.ErrorIs(t, err, ErrUnauthorized)
			assert.Zero(t, transport.calls.Load())
			assert.False(t, client.HasCredentials())
		})
	}
}

func TestGetPublic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/0/public/Assets", r.URL.Path)
		assert.Equal(t, "XBT,ETH", r.URL.Query().Get("asset"))
		assert.Empty(t, r.Header.Get(APIKeyHeader))
		assert.Empty(t, r.Header.Get(APISignHeader))

		_, _ = io.WriteString(w, `{"error":[],"result":{"XXBT":{"aclass":"currency","altname":"XBT","decimals":10,"display_decimals":5,"collateral_value":1.0,"status":"enabled"}}}`)
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL+"/"),
		WithCredentials(Credentials{APIKey: "key", APISecret: docsSecret}),
	)

	envelope, err := client.AssetInfo(context.Background(), "XBT", "ETH")
	require.NoError(t, err)
	require.True(t, envelope.Success())

	assets, _ := envelope.Result()
	require.Contains(t, assets, "XXBT")
	assert.Equal(t, "XBT", assets["XXBT"].AltName)
	assert.Equal(t, 10, assets["XXBT"].Decimals)
	require.NotNil(t, assets["XXBT"].CollateralValue)
	assert.Equal(t, "1", assets["XXBT"].CollateralValue.String())
}

func TestGetPrivateSignsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/0/private/Balance", r.URL.Path)
		assert.Equal(t, "nonce=1700000000000", string(body))
		assert.Equal(t, "key", r.Header.Get(APIKeyHeader))
		assert.Equal(t, FormURLEncoded, r.Header.Get(ContentTypeHeader))
		assert.Equal(t, "czhu1TvpTUkVtUbRiqwKniRXzZlg53wZmCdUIPWVLRoRMbTDwnq4frkWOdPSH9Q5YwHV5wqsA77JHXvM+XqHVQ==", r.Header.Get(APISignHeader))

		_, _ = io.WriteString(w, `{"error":[],"result":{"XXBT":"1.0000","ZUSD":"250.5000"}}`)
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithCredentials(Credentials{APIKey: "key", APISecret: docsSecret}),
		WithNonceGenerator(fixedNonces(1700000000000)),
	)

	envelope, err := client.AccountBalance(context.Background())
	require.NoError(t, err)
	require.True(t, envelope.Success())

	balances, _ := envelope.Result()
	assert.Equal(t, "1.0000", balances["XXBT"])
}

func TestPostPrivateSendsParamsAfterNonce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		assert.Equal(t, "/0/private/TradeBalance", r.URL.Path)
		assert.True(t, strings.HasPrefix(string(body), "nonce="))

		form, err := url.ParseQuery(string(body))
		assert.NoError(t, err)
		assert.Equal(t, "XBT", form.Get("asset"))
		assert.Len(t, form["nonce"], 1)

		//
		// Verify the signature the way the exchange would: from the path, the raw body, and the nonce
		// found in it.
		//
		nonce, err := strconv.ParseUint(form.Get("nonce"), 10, 64)
		assert.NoError(t, err)

		expected, err := Sign(r.URL.Path, string(body), nonce, docsSecret)
		assert.NoError(t, err)
		assert.Equal(t, expected, r.Header.Get(APISignHeader))

		_, _ = io.WriteString(w, `{"error":[],"result":{"eb":"1.5","tb":"1.2","m":"0","n":"0","c":"0","v":"0","e":"1.2","mf":"1.2"}}`)
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithCredentials(Credentials{APIKey: "key", APISecret: docsSecret}),
	)

	envelope, err := client.TradeBalance(context.Background(), "XBT")
	require.NoError(t, err)
	require.True(t, envelope.Success())

	balance, _ := envelope.Result()
	assert.Equal(t, "1.5", balance.EquivalentBalance.String())
	assert.False(t, balance.MarginLevel.Valid)

	_, err = PostPrivate[TradeBalance](context.Background(), client, TradeBalancePath, url.Values{"nonce": {"1"}, "asset": {"XBT"}})
	require.NoError(t, err)
}

func TestGetPrivateInvalidSecret(t *testing.T) {
	transport := &countingTransport{}
	client := NewClient(
		WithCredentials(Credentials{APIKey: "key", APISecret: "%%%"}),
		WithHTTPClient(&http.Client{Transport: transport}),
	)

	_, err := client.AccountBalance(context.Background())

	var secretErr *SecretEncodingError
	assert.True(t, errors.As(err, &secretErr))
	assert.Zero(t, transport.calls.Load())
}

func TestEnvelopeErrorsAreNotGoErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error":["EAPI:Invalid nonce"]}`)
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithCredentials(Credentials{APIKey: "key", APISecret: docsSecret}),
	)

	envelope, err := client.AccountBalance(context.Background())
	require.NoError(t, err)
	assert.False(t, envelope.Success())
	assert.Equal(t, []string{"EAPI:Invalid nonce"}, envelope.Errors())

	_, err = client.RetrieveBalances(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, []string{"EAPI:Invalid nonce"}, apiErr.Messages())
}

func TestTransportErrorOnConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := NewClient(WithBaseURL(baseURL))

	_, err := client.ServerTime(context.Background())

	var transportErr *exchange.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Zero(t, transportErr.StatusCode)
}

func TestUndecodableBodies(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		transport bool
	}{
		{"ok status", http.StatusOK, false},
		{"error status", http.StatusBadGateway, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				_, _ = io.WriteString(w, `<html>gateway</html>`)
			}))
			defer server.Close()

			_, err := NewClient(WithBaseURL(server.URL)).ServerTime(context.Background())

			var decodeErr *exchange.DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, c.status, decodeErr.StatusCode)

			var transportErr *exchange.TransportError
			assert.Equal(t, c.transport, errors.As(err, &transportErr))
		})
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(WithBaseURL(server.URL)).ServerTime(ctx)

	var transportErr *exchange.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAPIVersionAndLogger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/public/Time", r.URL.Path)

		_, _ = io.WriteString(w, `{"error":[],"result":{"unixtime":1688669448,"rfc1123":"Thu, 06 Jul 23 18:50:48 +0000"}}`)
	}))
	defer server.Close()

	var buf bytes.Buffer

	client := NewClient(
		WithBaseURL(server.URL),
		WithAPIVersion(1),
		WithLogger(log.New(&buf, "", 0)),
	)

	envelope, err := client.ServerTime(context.Background())
	require.NoError(t, err)

	serverTime, ok := envelope.Result()
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 7, 6, 18, 50, 48, 0, time.UTC), serverTime.Time())
	assert.Contains(t, buf.String(), "GET "+server.URL+"/1/public/Time")
}

func TestLoggerNeverSeesSecrets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error":[],"result":{}}`)
	}))
	defer server.Close()

	var buf bytes.Buffer

	client := NewClient(
		WithBaseURL(server.URL),
		WithCredentials(Credentials{APIKey: "public-key", APISecret: docsSecret}),
		WithLogger(log.New(&buf, "", 0)),
	)

	_, err := client.AccountBalance(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "/0/private/Balance")
	assert.NotContains(t, buf.String(), docsSecret)
	assert.NotContains(t, buf.String(), "public-key")
}

func TestMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error":[],"result":{"status":"online","timestamp":"2023-07-06T18:52:00Z"}}`)
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	client := NewClient(WithBaseURL(server.URL), WithMetrics(metrics))

	envelope, err := client.SystemStatus(context.Background())
	require.NoError(t, err)

	status, _ := envelope.Result()
	assert.Equal(t, "online", status.Status)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues("200", "get")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.inFlight))
}

func TestNewClientLeavesSharedHTTPClientAlone(t *testing.T) {
	shared, err := NewHTTPClient("", time.Second)
	require.NoError(t, err)

	var wg sync.WaitGroup

	for i := 0; i < 2; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			NewClient(WithHTTPClient(shared))
		}()
	}

	wg.Wait()

	assert.Nil(t, shared.Transport)
	assert.Equal(t, time.Second, shared.Timeout)
}

func TestNewClientWithMetricsLeavesTransportAlone(t *testing.T) {
	transport := &countingTransport{}
	shared := &http.Client{Transport: transport}

	NewClient(WithHTTPClient(shared), WithMetrics(NewMetrics(prometheus.NewRegistry())))

	assert.Same(t, transport, shared.Transport)
}
