package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Case policies for normalizing test input before simulation.
const (
	CaseLower = "lower"
	CaseUpper = "upper"
	CaseNone  = "none"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REGEXVIZ_"

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ServerConfig struct {
	Addr     string        `mapstructure:"addr"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// MaxPatternLength caps request patterns in characters; 0 disables it.
	MaxPatternLength int           `mapstructure:"max_pattern_length"`
	Timeout          time.Duration `mapstructure:"timeout"`
	// Redis is used for the compile cache when Addr is set; otherwise the
	// cache lives in memory.
	Redis RedisConfig `mapstructure:"redis"`
}

// Config is the CLI and server configuration.
type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Case     string       `mapstructure:"case"`
	Format   string       `mapstructure:"format"`
	Server   ServerConfig `mapstructure:"server"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Case:     CaseLower,
		Format:   "text",
		Server: ServerConfig{
			Addr:             ":8080",
			CacheTTL:         10 * time.Minute,
			MaxPatternLength: 64,
			Timeout:          10 * time.Second,
		},
	}
}

// env variable -> dotted key
var envKeys = map[string]string{
	"LOG_LEVEL":             "log_level",
	"CASE":                  "case",
	"FORMAT":                "format",
	"SERVER_ADDR":           "server.addr",
	"SERVER_CACHE_TTL":      "server.cache_ttl",
	"SERVER_MAX_PATTERN":    "server.max_pattern_length",
	"SERVER_TIMEOUT":        "server.timeout",
	"SERVER_REDIS_ADDR":     "server.redis.addr",
	"SERVER_REDIS_PASSWORD": "server.redis.password",
	"SERVER_REDIS_DB":       "server.redis.db",
}

// Load reads the YAML file at path (a missing file or empty path means
// defaults), applies REGEXVIZ_* environment overrides and validates.
func Load(path string) (Config, error) {
	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
			if raw == nil {
				raw = map[string]any{}
			}
		}
	}

	for env, key := range envKeys {
		if v, ok := os.LookupEnv(EnvPrefix + env); ok {
			setPath(raw, strings.Split(key, "."), v)
		}
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setPath(m map[string]any, path []string, v string) {
	for _, k := range path[:len(path)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[k] = next
		}
		m = next
	}
	m[path[len(path)-1]] = v
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Case {
	case CaseLower, CaseUpper, CaseNone:
	default:
		return fmt.Errorf("config: case must be lower, upper or none, got %q", c.Case)
	}
	switch c.Format {
	case "text", "dot", "json":
	default:
		return fmt.Errorf("config: format must be text, dot or json, got %q", c.Format)
	}
	if c.Server.CacheTTL < 0 {
		return fmt.Errorf("config: server.cache_ttl must not be negative")
	}
	if c.Server.MaxPatternLength < 0 {
		return fmt.Errorf("config: server.max_pattern_length must not be negative")
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("config: server.timeout must not be negative")
	}
	return nil
}

// Normalize applies the case policy to simulator input.
func (c Config) Normalize(s string) string {
	switch c.Case {
	case CaseLower:
		return strings.ToLower(s)
	case CaseUpper:
		return strings.ToUpper(s)
	}
	return s
}
