package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/lukehollenback/kraken/exchange/kraken"
)

const (
	EnvPrefix = "KRAKEN"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

//
// Config holds everything needed to construct a Kraken client. Both credentials are optional;
// without them only public endpoints can be used.
//
type Config struct {
	APIKey     string        `envconfig:"API_KEY"`
	APISecret  string        `envconfig:"API_SECRET" validate:"omitempty,base64"`
	BaseURL    string        `envconfig:"BASE_URL" default:"https://api.kraken.com" validate:"required,url"`
	APIVersion int           `envconfig:"API_VERSION" default:"0" validate:"gte=0"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"30s" validate:"gt=0"`
	Proxy      string        `envconfig:"PROXY" validate:"omitempty,hostname_port"`
}

//
// Load reads the configuration from KRAKEN_* environment variables, after first loading any .env
// files provided (or ".env" in the working directory if none are). Missing .env files are not an
// error.
//
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	return nil
}

func (c *Config) Credentials() kraken.Credentials {
	return kraken.Credentials{
		APIKey:    c.APIKey,
		APISecret: c.APISecret,
	}
}

//
// ClientOptions turns the configuration into the options for kraken.NewClient, building the HTTP
// client (and its proxy dialer) along the way.
//
func (c *Config) ClientOptions() ([]kraken.Option, error) {
	httpClient, err := kraken.NewHTTPClient(c.Proxy, c.Timeout)
	if err != nil {
		return nil, err
	}

	return []kraken.Option{
		kraken.WithBaseURL(c.BaseURL),
		kraken.WithAPIVersion(c.APIVersion),
		kraken.WithCredentials(c.Credentials()),
		kraken.WithHTTPClient(httpClient),
	}, nil
}
