// Package config provides configuration for pricewatch.
//
// Values are loaded with the following precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (EMAIL_USER, EMAIL_PASS, ALERT_TO, plus
//     PRICEWATCH_-prefixed variables for everything else)
//  3. Config file (.pricewatch.yaml)
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Supported store backends.
const (
	StoreFile     = "file"
	StoreS3       = "s3"
	StoreDynamoDB = "dynamodb"
)

// Supported log levels and formats.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the resolved runtime configuration.
type Config struct {
	// DataFile is the JSON state file used by the file store.
	DataFile string `mapstructure:"data-file"`

	// Store selects the persistence backend: file, s3, or dynamodb.
	Store string `mapstructure:"store"`

	// S3Bucket and S3Key locate the state document for the s3 store.
	S3Bucket string `mapstructure:"s3-bucket"`
	S3Key    string `mapstructure:"s3-key"`

	// DynamoDBTable is the table used by the dynamodb store.
	DynamoDBTable string `mapstructure:"dynamodb-table"`

	// SMTP server used for alert emails.
	SMTPHost string `mapstructure:"smtp-host"`
	SMTPPort int    `mapstructure:"smtp-port" validate:"gt=0,lte=65535"`

	// EmailUser and EmailPass are the SMTP credentials; EmailUser is also
	// the sender address. AlertTo is the alert recipient. All three must be
	// set for notifications to be enabled.
	EmailUser string `mapstructure:"email-user" validate:"omitempty,email"`
	EmailPass string `mapstructure:"email-pass"`
	AlertTo   string `mapstructure:"alert-to" validate:"omitempty,email"`

	// Schedule is the cron expression used by the watch command.
	Schedule string `mapstructure:"schedule"`

	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`

	// ConfigFile is the resolved path of the config file used, if any.
	ConfigFile string `mapstructure:"-"`
}

// Default returns a Config with the defaults applied.
func Default() *Config {
	return &Config{
		DataFile:  "price_data.json",
		Store:     StoreFile,
		S3Key:     "price_data.json",
		SMTPHost:  "smtp.gmail.com",
		SMTPPort:  465,
		Schedule:  "*/30 * * * *",
		LogLevel:  LogLevelInfo,
		LogFormat: LogFormatText,
	}
}

// EmailEnabled reports whether enough email settings are present to send
// notifications.
func (c *Config) EmailEnabled() bool {
	return c.EmailUser != "" && c.EmailPass != "" && c.AlertTo != ""
}

// Validate checks that all config values are usable.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreS3, StoreDynamoDB:
	default:
		return fmt.Errorf("invalid store %q: must be one of file, s3, dynamodb", c.Store)
	}

	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: must be one of text, json", c.LogFormat)
	}

	if c.Store == StoreS3 && c.S3Bucket == "" {
		return fmt.Errorf("s3 store requires an s3-bucket")
	}
	if c.Store == StoreDynamoDB && c.DynamoDBTable == "" {
		return fmt.Errorf("dynamodb store requires a dynamodb-table")
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load initialises configuration from flags, environment variables, and an
// optional config file. A fresh viper instance is used on every call so that
// Load is safe for concurrent tests.
func Load(cmd *cobra.Command, configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	configureEnv(v)

	if err := configureFile(v, configFile); err != nil {
		return nil, err
	}

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
		// Subcommands inherit the root's persistent flags; bind those too.
		if root := cmd.Root(); root != nil {
			if err := v.BindPFlags(root.PersistentFlags()); err != nil {
				return nil, fmt.Errorf("binding persistent flags: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("data-file", d.DataFile)
	v.SetDefault("store", d.Store)
	v.SetDefault("s3-key", d.S3Key)
	v.SetDefault("smtp-host", d.SMTPHost)
	v.SetDefault("smtp-port", d.SMTPPort)
	v.SetDefault("schedule", d.Schedule)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-format", d.LogFormat)
}

func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("PRICEWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// The CI contract passes the email settings under their historical,
	// unprefixed names.
	_ = v.BindEnv("email-user", "PRICEWATCH_EMAIL_USER", "EMAIL_USER")
	_ = v.BindEnv("email-pass", "PRICEWATCH_EMAIL_PASS", "EMAIL_PASS")
	_ = v.BindEnv("alert-to", "PRICEWATCH_ALERT_TO", "ALERT_TO")
}

func configureFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
		return nil
	}

	v.SetConfigName(".pricewatch")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}
