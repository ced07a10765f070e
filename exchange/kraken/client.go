package kraken

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/lukehollenback/kraken/exchange"
)

//
// Credentials holds the API key and base64-encoded API secret used to sign private requests.
//
type Credentials struct {
	APIKey    string
	APISecret string
}

//
// Complete returns whether or not both the key and the secret have been provided.
//
func (o Credentials) Complete() bool {
	return o.APIKey != "" && o.APISecret != ""
}

//
// Client is a client for the Kraken REST API. It is safe for concurrent use; the only state shared
// between calls is the nonce generator.
//
type Client struct {
	baseURL     string
	apiVersion  int
	credentials Credentials
	nonces      *NonceGenerator
	logger      *log.Logger
	http        *resty.Client
}

//
// Option configures a Client at construction time.
//
type Option func(*options)

type options struct {
	baseURL     string
	apiVersion  int
	credentials Credentials
	httpClient  *http.Client
	nonces      *NonceGenerator
	logger      *log.Logger
	metrics     *Metrics
}

//
// WithBaseURL points the client at a different API host (e.g. a test server).
//
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

func WithAPIVersion(version int) Option {
	return func(o *options) {
		o.apiVersion = version
	}
}

//
// WithCredentials provides the API key and secret needed by private endpoints. Clients without
// them can still use every public endpoint.
//
func WithCredentials(credentials Credentials) Option {
	return func(o *options) {
		o.credentials = credentials
	}
}

//
// WithHTTPClient makes the client send its requests through the provided HTTP client, which may be
// shared with other clients.
//
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

//
// WithNonceGenerator makes the client draw nonces from the provided generator. Clients that share
// an API key must share a generator, or their nonces may collide.
//
func WithNonceGenerator(nonces *NonceGenerator) Option {
	return func(o *options) {
		o.nonces = nonces
	}
}

//
// WithLogger makes the client log a line for every request it sends. Secrets are never logged.
//
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

//
// WithMetrics instruments the client's HTTP transport with the provided Prometheus collectors.
//
func WithMetrics(metrics *Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

//
// NewClient instantiates a new client. Without any options it talks to the production version 0
// API, has no credentials, and uses a private HTTP client with a thirty second timeout.
//
func NewClient(opts ...Option) *Client {
	cfg := &options{
		baseURL:    BaseURL,
		apiVersion: APIVersion,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	// resty fills in a missing transport on the client it is handed, so it only ever sees a copy.
	hc := *cfg.httpClient
	if hc.Transport == nil {
		hc.Transport = http.DefaultTransport
	}

	if cfg.metrics != nil {
		hc.Transport = cfg.metrics.InstrumentRoundTripper(hc.Transport)
	}

	if cfg.nonces == nil {
		cfg.nonces = NewNonceGenerator()
	}

	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard, "", 0)
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.baseURL, "/"),
		apiVersion:  cfg.apiVersion,
		credentials: cfg.credentials,
		nonces:      cfg.nonces,
		logger:      cfg.logger,
		http:        resty.NewWithClient(&hc).SetLogger(restyLogger{cfg.logger}),
	}
}

//
// restyLogger sends resty's own diagnostics to the client's logger instead of standard error.
//
type restyLogger struct {
	*log.Logger
}

func (o restyLogger) Errorf(format string, v ...interface{}) {
	o.Printf("ERROR "+format, v...)
}

func (o restyLogger) Warnf(format string, v ...interface{}) {
	o.Printf("WARN "+format, v...)
}

func (o restyLogger) Debugf(format string, v ...interface{}) {
	o.Printf("DEBUG "+format, v...)
}

//
// HasCredentials returns whether or not the client is able to call private endpoints.
//
func (o *Client) HasCredentials() bool {
	return o.credentials.Complete()
}

//
// GetPublic calls the public endpoint at the provided path (which may carry a query string) and
// decodes the response into an envelope holding a T.
//
func GetPublic[T any](ctx context.Context, c *Client, pathQuery string) (*Envelope[T], error) {
	endpoint := fmt.Sprintf("%s/%d/public/%s", c.baseURL, c.apiVersion, pathQuery)

	body, statusCode, err := c.request(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}

	return decode[T](body, statusCode)
}

//
// GetPrivate calls the private endpoint at the provided path with a body that holds nothing but the
// nonce, and decodes the response into an envelope holding a T. ErrUnauthorized is returned,
// without any request being made, if the client lacks credentials.
//
func GetPrivate[T any](ctx context.Context, c *Client, pathQuery string) (*Envelope[T], error) {
	return PostPrivate[T](ctx, c, pathQuery, nil)
}

//
// PostPrivate is like GetPrivate, but also sends the provided form fields after the nonce. Any
// "nonce" field in params is ignored.
//
func PostPrivate[T any](ctx context.Context, c *Client, path string, params url.Values) (*Envelope[T], error) {
	if !c.credentials.Complete() {
		return nil, ErrUnauthorized
	}

	nonce, err := c.nonces.Next()
	if err != nil {
		return nil, err
	}

	//
	// Build the form body. The nonce always leads so that the body can be reproduced by anyone
	// verifying the signature.
	//
	data := "nonce=" + strconv.FormatUint(nonce, 10)

	extra := url.Values{}
	for k, v := range params {
		if k != "nonce" {
			extra[k] = v
		}
	}

	if len(extra) > 0 {
		data += "&" + extra.Encode()
	}

	//
	// Sign the request and send it off.
	//
	urlPath := fmt.Sprintf("/%d/private/%s", c.apiVersion, path)

	signature, err := Sign(urlPath, data, nonce, c.credentials.APISecret)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		APIKeyHeader:      c.credentials.APIKey,
		APISignHeader:     signature,
		ContentTypeHeader: FormURLEncoded,
	}

	c.logger.Printf("Signed private request. (Path: %s, Nonce: %d)", urlPath, nonce)

	body, statusCode, err := c.request(ctx, http.MethodPost, c.baseURL+urlPath, headers, []byte(data))
	if err != nil {
		return nil, err
	}

	return decode[T](body, statusCode)
}

//
// request makes the specified request against the Kraken API and returns the raw response body and
// status code, or a transport error if no response could be obtained.
//
func (o *Client) request(
	ctx context.Context,
	method string,
	endpoint string,
	headers map[string]string,
	body []byte,
) ([]byte, int, error) {
	req := o.http.R().
		SetContext(ctx).
		SetHeaders(headers)

	if body != nil {
		req.SetBody(body)
	}

	o.logger.Printf("%s %s", method, endpoint)

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		return nil, 0, exchange.NewTransportError(0, err)
	}

	return resp.Body(), resp.StatusCode(), nil
}

//
// decode turns a raw response body into an envelope. A body that cannot be decoded is reported as a
// transport error when the status code already indicated failure.
//
func decode[T any](body []byte, statusCode int) (*Envelope[T], error) {
	envelope, err := DecodeEnvelope[T](body, statusCode)
	if err != nil {
		if statusCode >= http.StatusBadRequest {
			return nil, exchange.NewTransportError(statusCode, err)
		}

		return nil, err
	}

	return envelope, nil
}
