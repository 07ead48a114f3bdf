package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricewatch/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "price_data.json", cfg.DataFile)
	assert.Equal(t, config.StoreFile, cfg.Store)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, "*/30 * * * *", cfg.Schedule)
	assert.Equal(t, config.LogLevelInfo, cfg.LogLevel)
	assert.Equal(t, config.LogFormatText, cfg.LogFormat)
	assert.False(t, cfg.EmailEnabled())
}

func TestLoadLegacyEnvVars(t *testing.T) {
	t.Setenv("EMAIL_USER", "watcher@example.com")
	t.Setenv("EMAIL_PASS", "app-password")
	t.Setenv("ALERT_TO", "alerts@example.com")

	cfg, err := config.Load(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "watcher@example.com", cfg.EmailUser)
	assert.Equal(t, "app-password", cfg.EmailPass)
	assert.Equal(t, "alerts@example.com", cfg.AlertTo)
	assert.True(t, cfg.EmailEnabled())
}

func TestLoadPrefixedEnvVars(t *testing.T) {
	t.Setenv("PRICEWATCH_DATA_FILE", "/tmp/custom.json")
	t.Setenv("PRICEWATCH_LOG_FORMAT", "json")

	cfg, err := config.Load(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.json", cfg.DataFile)
	assert.Equal(t, config.LogFormatJSON, cfg.LogFormat)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricewatch.yaml")
	content := []byte("store: s3\ns3-bucket: my-bucket\nschedule: \"0 * * * *\"\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := config.Load(nil, path)
	require.NoError(t, err)

	assert.Equal(t, config.StoreS3, cfg.Store)
	assert.Equal(t, "my-bucket", cfg.S3Bucket)
	assert.Equal(t, "0 * * * *", cfg.Schedule)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := config.Load(nil, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *config.Config) {},
		},
		{
			name:    "unknown store",
			mutate:  func(c *config.Config) { c.Store = "redis" },
			wantErr: "invalid store",
		},
		{
			name:    "s3 store without bucket",
			mutate:  func(c *config.Config) { c.Store = config.StoreS3 },
			wantErr: "requires an s3-bucket",
		},
		{
			name:    "dynamodb store without table",
			mutate:  func(c *config.Config) { c.Store = config.StoreDynamoDB },
			wantErr: "requires a dynamodb-table",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *config.Config) { c.LogLevel = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:    "bad alert address",
			mutate:  func(c *config.Config) { c.AlertTo = "not-an-email" },
			wantErr: "invalid configuration",
		},
		{
			name:    "bad smtp port",
			mutate:  func(c *config.Config) { c.SMTPPort = 0 },
			wantErr: "invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
