// Package config loads the service configuration from defaults, an optional
// YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/jonathan/studentjobs/internal/server/ratelimit"
	"github.com/jonathan/studentjobs/internal/types"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. STUDENTJOBS_SERVER_PORT.
const EnvPrefix = "STUDENTJOBS"

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Site      types.Site      `mapstructure:"site"`
	Email     EmailConfig     `mapstructure:"email"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
	Export    ExportConfig    `mapstructure:"export"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// EmailConfig configures lead notifications. Email is skipped when the API key
// or the recipient is empty.
type EmailConfig struct {
	ResendAPIKey string        `mapstructure:"resend_api_key"`
	From         string        `mapstructure:"from"`
	LeadsTo      string        `mapstructure:"leads_to"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether notifications can be emailed.
func (e EmailConfig) Enabled() bool {
	return e.ResendAPIKey != "" && e.LeadsTo != ""
}

// RateLimitConfig configures per-client request limits.
type RateLimitConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	DefaultLimit  int           `mapstructure:"default_limit"`
	DefaultWindow time.Duration `mapstructure:"default_window"`
	LeadLimit     int           `mapstructure:"lead_limit"`
	LeadWindow    time.Duration `mapstructure:"lead_window"`
	LeadBurst     int           `mapstructure:"lead_burst"`
	Whitelist     []string      `mapstructure:"whitelist"`
	Blacklist     []string      `mapstructure:"blacklist"`
}

// LimiterConfig converts the settings to the limiter's configuration.
func (r RateLimitConfig) LimiterConfig() *ratelimit.Config {
	cfg := ratelimit.DefaultConfig()
	cfg.Enabled = r.Enabled
	cfg.DefaultLimit = r.DefaultLimit
	cfg.DefaultWindow = r.DefaultWindow
	cfg.Whitelist = ratelimit.ParseIPList(r.Whitelist)
	cfg.Blacklist = ratelimit.ParseIPList(r.Blacklist)
	cfg.EndpointConfigs = ratelimit.LeadEndpointConfigs(r.LeadLimit, r.LeadWindow, r.LeadBurst)
	return cfg
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// ExportConfig configures the S3 destination of the static export.
type ExportConfig struct {
	S3Region    string `mapstructure:"s3_region"`
	S3Endpoint  string `mapstructure:"s3_endpoint"`
	S3PathStyle bool   `mapstructure:"s3_path_style"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("site.name", "Student Jobs Rotterdam")
	v.SetDefault("site.base_url", "https://studentjobsrotterdam.nl")
	v.SetDefault("site.locale", "en_NL")

	v.SetDefault("email.resend_api_key", "")
	v.SetDefault("email.from", "Leads <noreply@domakin.nl>")
	v.SetDefault("email.leads_to", "")
	v.SetDefault("email.timeout", "10s")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.default_limit", 600)
	v.SetDefault("ratelimit.default_window", "1m")
	v.SetDefault("ratelimit.lead_limit", 10)
	v.SetDefault("ratelimit.lead_window", "1h")
	v.SetDefault("ratelimit.lead_burst", 3)
	v.SetDefault("ratelimit.whitelist", []string{})
	v.SetDefault("ratelimit.blacklist", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("export.s3_region", "eu-central-1")
	v.SetDefault("export.s3_endpoint", "")
	v.SetDefault("export.s3_path_style", false)
}

// Load reads the configuration. configFile may be empty, in which case
// studentjobs.yaml is looked up in the working directory and in
// $HOME/.config/studentjobs; a missing file is not an error then.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Names used by the deployment before the prefix existed.
	if err := v.BindEnv("email.resend_api_key", EnvPrefix+"_EMAIL_RESEND_API_KEY", "RESEND_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}
	if err := v.BindEnv("email.leads_to", EnvPrefix+"_EMAIL_LEADS_TO", "LEADS_TO_EMAIL"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("studentjobs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studentjobs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 0 and 65535, got %d", c.Server.Port)
	}
	for name, d := range map[string]time.Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.idle_timeout":     c.Server.IdleTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"email.timeout":           c.Email.Timeout,
	} {
		if d < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", name)
		}
	}

	u, err := url.Parse(c.Site.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config error: 'site.base_url' must be an absolute http(s) URL, got %q", c.Site.BaseURL)
	}
	if c.Site.Name == "" {
		return fmt.Errorf("config error: 'site.name' is required")
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.DefaultLimit <= 0 || c.RateLimit.DefaultWindow <= 0 {
			return fmt.Errorf("config error: 'ratelimit.default_limit' and 'ratelimit.default_window' must be positive")
		}
		if c.RateLimit.LeadLimit <= 0 || c.RateLimit.LeadWindow <= 0 || c.RateLimit.LeadBurst < 0 {
			return fmt.Errorf("config error: lead rate limit must be positive")
		}
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config error: 'log.format' must be json or console, got %q", c.Log.Format)
	}

	return nil
}
