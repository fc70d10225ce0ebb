package config

import (
	"os"
	"strings"

	"github.com/Tap30/conversions-go"
	"github.com/Tap30/conversions-go/adapters"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables that override values from the config file.
const (
	EnvAccessToken = "CAPI_ACCESS_TOKEN"
	EnvPixelID     = "CAPI_PIXEL_ID"
	EnvBaseURL     = "CAPI_BASE_URL"
	EnvAPIVersion  = "CAPI_API_VERSION"
	EnvLogLevel    = "CAPI_LOG_LEVEL"
)

// Config holds what the CLI needs to build an EventClient.
type Config struct {
	AccessToken     string `yaml:"access_token"`
	PixelID         string `yaml:"pixel_id"`
	GraphAPIBaseURL string `yaml:"graph_api_base_url"`
	APIVersion      string `yaml:"api_version"`
	Debug           bool   `yaml:"debug"`
	LogLevel        string `yaml:"log_level"`

	User User `yaml:"user"`
}

// User is the identity attached to every event.
type User struct {
	Emails          []string `yaml:"emails"`
	Phones          []string `yaml:"phones"`
	ClientIPAddress string   `yaml:"client_ip_address"`
	ClientUserAgent string   `yaml:"client_user_agent"`
	ClickID         string   `yaml:"fbc"`
	BrowserID       string   `yaml:"fbp"`
}

// Load reads the YAML file at path (optional), then the env file, then the
// environment. Later sources win. An explicit envFile must exist; the default
// .env is skipped when missing.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, "load env file %s", envFile)
		}
	} else if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	cfg.AccessToken = getEnvOrDefault(EnvAccessToken, cfg.AccessToken)
	cfg.PixelID = getEnvOrDefault(EnvPixelID, cfg.PixelID)
	cfg.GraphAPIBaseURL = getEnvOrDefault(EnvBaseURL, cfg.GraphAPIBaseURL)
	cfg.APIVersion = getEnvOrDefault(EnvAPIVersion, cfg.APIVersion)
	cfg.LogLevel = getEnvOrDefault(EnvLogLevel, cfg.LogLevel)

	return cfg, nil
}

// Validate checks that credentials are present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AccessToken) == "" {
		return errors.Errorf("access token is required (set access_token or %s)", EnvAccessToken)
	}
	if strings.TrimSpace(c.PixelID) == "" {
		return errors.Errorf("pixel id is required (set pixel_id or %s)", EnvPixelID)
	}
	return nil
}

// ClientConfig converts to the library configuration with a logrus logger at LogLevel.
func (c *Config) ClientConfig() conversions.ClientConfig {
	return conversions.ClientConfig{
		AccessToken:     c.AccessToken,
		PixelID:         c.PixelID,
		Emails:          c.User.Emails,
		Phones:          c.User.Phones,
		ClientIPAddress: c.User.ClientIPAddress,
		ClientUserAgent: c.User.ClientUserAgent,
		ClickID:         c.User.ClickID,
		BrowserID:       c.User.BrowserID,
		Debug:           c.Debug,
		GraphAPIBaseURL: c.GraphAPIBaseURL,
		APIVersion:      c.APIVersion,
		LoggerAdapter:   adapters.NewLogrusLoggerAdapter(adapters.ParseLogLevel(c.LogLevel)),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
