package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvPrefix namespaces every runtime setting in the environment.
const EnvPrefix = "PUSHCRON"

// Config contains runtime configuration values.
type Config struct {
	JobsFile          string        `mapstructure:"jobs_file" default:"jobs.yaml"`
	EnvFile           string        `mapstructure:"env_file" default:".env"`
	OneSignalEndpoint string        `mapstructure:"onesignal_endpoint" default:"https://onesignal.com/api/v1/notifications"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout" default:"30s"`
	JobTimeout        time.Duration `mapstructure:"job_timeout" default:"2m"`
	Timezone          string        `mapstructure:"timezone" default:"UTC"`
	HistoryDB         string        `mapstructure:"history_db" default:"pushcron.db"`
	HeartbeatFile     string        `mapstructure:"heartbeat_file" default:"keep_live.txt"`
	ListenAddr        string        `mapstructure:"listen_addr"`
	DiscordWebhookURL string        `mapstructure:"discord_webhook_url"`
	LogLevel          string        `mapstructure:"log_level" default:"info"`
	LogFormat         string        `mapstructure:"log_format" default:"json"`
	RunNow            bool          `mapstructure:"run_now"`
}

// flagKeys maps persistent CLI flag names onto configuration keys.
var flagKeys = map[string]string{
	"jobs":       "jobs_file",
	"env-file":   "env_file",
	"log-level":  "log_level",
	"log-format": "log_format",
	"history-db": "history_db",
}

// BindFlags wires the root command's persistent flags into v.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var errs []error
	for flag, key := range flagKeys {
		if f := flags.Lookup(flag); f != nil {
			errs = append(errs, v.BindPFlag(key, f))
		}
	}
	return errors.Join(errs...)
}

// Load builds a Config from flags, the environment, an optional .env file and defaults.
// Variables from the .env file never override the real environment.
func Load(v *viper.Viper) (*Config, error) {
	base := &Config{}
	if err := defaults.Set(base); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	setDefaults(v, base)

	if envFile := v.GetString("env_file"); envFile != "" {
		if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = base.RequestTimeout
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = base.JobTimeout
	}
	if cfg.JobsFile == "" {
		cfg.JobsFile = base.JobsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, base *Config) {
	v.SetDefault("jobs_file", base.JobsFile)
	v.SetDefault("env_file", base.EnvFile)
	v.SetDefault("onesignal_endpoint", base.OneSignalEndpoint)
	v.SetDefault("request_timeout", base.RequestTimeout)
	v.SetDefault("job_timeout", base.JobTimeout)
	v.SetDefault("timezone", base.Timezone)
	v.SetDefault("history_db", base.HistoryDB)
	v.SetDefault("heartbeat_file", base.HeartbeatFile)
	v.SetDefault("listen_addr", base.ListenAddr)
	v.SetDefault("discord_webhook_url", base.DiscordWebhookURL)
	v.SetDefault("log_level", base.LogLevel)
	v.SetDefault("log_format", base.LogFormat)
	v.SetDefault("run_now", base.RunNow)
}

// Validate checks values that cannot be repaired with a default.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q (want json or text)", c.LogFormat))
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err))
		}
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
