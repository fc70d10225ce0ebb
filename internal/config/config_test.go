package config

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"
)

const sampleConfig = `
access_token: file-token
pixel_id: "123456"
api_version: v20.0
debug: true
log_level: debug
user:
  emails:
    - a@example.com
  client_ip_address: 1.2.3.4
  client_user_agent: UA
  fbp: fb.1.1558571054389.1098115397
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAccessToken, EnvPixelID, EnvBaseURL, EnvAPIVersion, EnvLogLevel} {
		// registers a restore, then unsets so godotenv is free to set the key
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	envFile := writeFile(t, "empty.env", "")
	path := writeFile(t, "capi.yaml", sampleConfig)

	cfg, err := Load(path, envFile)
	assert.NilError(t, err)

	assert.Equal(t, cfg.AccessToken, "file-token")
	assert.Equal(t, cfg.PixelID, "123456")
	assert.Equal(t, cfg.APIVersion, "v20.0")
	assert.Equal(t, cfg.Debug, true)
	assert.DeepEqual(t, cfg.User.Emails, []string{"a@example.com"})
	assert.Assert(t, cfg.User.Phones == nil)
	assert.Equal(t, cfg.User.BrowserID, "fb.1.1558571054389.1098115397")
	assert.NilError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	envFile := writeFile(t, "test.env", "CAPI_PIXEL_ID=from-env-file\n")
	path := writeFile(t, "capi.yaml", sampleConfig)
	t.Setenv(EnvAccessToken, "env-token")

	cfg, err := Load(path, envFile)
	assert.NilError(t, err)

	assert.Equal(t, cfg.AccessToken, "env-token")
	assert.Equal(t, cfg.PixelID, "from-env-file")
}

func TestLoad_MissingFiles(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), writeFile(t, "empty.env", ""))
	assert.ErrorContains(t, err, "read config")

	_, err = Load("", filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "load env file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "bad.yaml", "access_token: [unterminated")

	_, err := Load(path, writeFile(t, "empty.env", ""))
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	assert.ErrorContains(t, (&Config{PixelID: "1"}).Validate(), "access token is required")
	assert.ErrorContains(t, (&Config{AccessToken: "t"}).Validate(), "pixel id is required")
	assert.NilError(t, (&Config{AccessToken: "t", PixelID: "1"}).Validate())
}

func TestClientConfig(t *testing.T) {
	cfg := &Config{
		AccessToken: "t",
		PixelID:     "1",
		Debug:       true,
		User: User{
			Emails:          []string{"a@example.com"},
			ClientIPAddress: "1.2.3.4",
			ClickID:         "fbc",
		},
	}

	clientConfig := cfg.ClientConfig()
	assert.Equal(t, clientConfig.AccessToken, "t")
	assert.Equal(t, clientConfig.PixelID, "1")
	assert.Equal(t, clientConfig.Debug, true)
	assert.Equal(t, clientConfig.ClickID, "fbc")
	assert.DeepEqual(t, clientConfig.Emails, []string{"a@example.com"})
	assert.Assert(t, clientConfig.LoggerAdapter != nil)
}
