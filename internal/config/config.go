package config

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/hamed0406/healthmon/internal/domain"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

type MonitorConfig struct {
	Interval    string `mapstructure:"interval"`    // cadence between cycle starts
	Timeout     string `mapstructure:"timeout"`     // per-probe deadline
	Concurrency int    `mapstructure:"concurrency"` // 0 = one goroutine per endpoint
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LoggingConfig struct {
	Dir   string `mapstructure:"dir"`
	Level string `mapstructure:"level"`
}

type Config struct {
	Monitor   MonitorConfig     `mapstructure:"monitor"`
	Server    ServerConfig      `mapstructure:"server"`
	Logging   LoggingConfig     `mapstructure:"logging"`
	Endpoints []domain.Endpoint `mapstructure:"endpoints"`
}

// Load reads the YAML config at path, applies defaults and HEALTHMON_*
// environment overrides, and validates the result. A config that fails
// validation never reaches the monitor.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("monitor.interval", "15s")
	v.SetDefault("monitor.timeout", "500ms")
	v.SetDefault("monitor.concurrency", 0)
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("logging.dir", "logs")
	v.SetDefault("logging.level", LogLevelInfo)

	v.SetConfigFile(path)
	v.SetEnvPrefix("HEALTHMON")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Monitor, validation.By(func(value interface{}) error {
			mc, ok := value.(MonitorConfig)
			if !ok {
				return validation.NewError("validation_invalid_type", "must be a MonitorConfig")
			}
			return validation.ValidateStruct(&mc,
				validation.Field(&mc.Interval, validation.Required, validation.By(validateDuration)),
				validation.Field(&mc.Timeout, validation.Required, validation.By(validateDuration)),
				validation.Field(&mc.Concurrency, validation.Min(0)),
			)
		})),
		validation.Field(&c.Logging, validation.By(func(value interface{}) error {
			lc, ok := value.(LoggingConfig)
			if !ok {
				return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
			}
			return validation.ValidateStruct(&lc,
				validation.Field(&lc.Dir, validation.Required),
				validation.Field(&lc.Level,
					validation.Required,
					validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
				),
			)
		})),
		validation.Field(&c.Endpoints,
			validation.Required.Error("at least one endpoint must be configured"),
			validation.Length(1, 0),
			validation.Each(validation.By(validateEndpoint)),
		),
	)
}

var knownMethods = []interface{}{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

func validateEndpoint(value interface{}) error {
	ep, ok := value.(domain.Endpoint)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be an endpoint")
	}
	return validation.ValidateStruct(&ep,
		validation.Field(&ep.URL, validation.Required, validation.By(validateURL)),
		validation.Field(&ep.Method, validation.In(knownMethods...)),
	)
}

func validateURL(value interface{}) error {
	raw, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return validation.NewError("validation_invalid_url", "must be an absolute http(s) URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "scheme must be http or https")
	}
	return nil
}

func validateDuration(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if _, err := time.ParseDuration(s); err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 500ms, 15s)")
	}
	return nil
}

// IntervalDuration is valid after Validate has passed.
func (m MonitorConfig) IntervalDuration() time.Duration {
	d, _ := time.ParseDuration(m.Interval)
	return d
}

func (m MonitorConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(m.Timeout)
	return d
}
