// Package config provides configuration loading for the picbot CLI.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the complete picbot configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Redis   RedisConfig   `yaml:"redis"`
	NLU     NLUConfig     `yaml:"nlu"`
	Search  SearchConfig  `yaml:"search"`
	Channel ChannelConfig `yaml:"channel"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	// Addr is the listen address for `picbot serve`.
	Addr string `yaml:"addr"`
}

// StoreConfig selects the conversation store backend.
type StoreConfig struct {
	// Backend is one of "memory", "file" or "redis".
	Backend string `yaml:"backend"`
	// Path is the base directory for the file backend.
	Path string `yaml:"path"`

	// EncryptionKey is a base64-encoded 32-byte key. When set, records are
	// sealed with AES-GCM before they reach the backend.
	EncryptionKey string `yaml:"encryption_key"`
	// EncryptionFallbackKeys holds rotated-out keys, base64-encoded, tried
	// in order when the active key cannot decrypt a record.
	EncryptionFallbackKeys []string `yaml:"encryption_fallback_keys"`

	// PIIPatterns are regular expressions masked out of persisted user
	// text (search terms, captured prompt answers).
	PIIPatterns []string `yaml:"pii_patterns"`
}

// RedisConfig configures the Redis connection (store backend "redis").
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// Lock enables the distributed per-conversation lock, for multi-replica
	// deployments sharing one Redis.
	Lock bool `yaml:"lock"`
}

// NLUConfig configures the intent classifier adapter. Credentials are passed
// explicitly into the adapter constructor at process start.
type NLUConfig struct {
	Endpoint string `yaml:"endpoint"`
	Key      string `yaml:"key"`
}

// SearchConfig configures the picture search adapter.
type SearchConfig struct {
	Endpoint string `yaml:"endpoint"`
	Key      string `yaml:"key"`
}

// ChannelConfig configures outbound reply delivery for `picbot serve`.
type ChannelConfig struct {
	// WebhookURL receives outbound replies as JSON POSTs.
	WebhookURL string `yaml:"webhook_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of "debug", "info", "warn" or "error".
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":3978"},
		Store:  StoreConfig{Backend: StoreMemory},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		Log:    LogConfig{Level: "info"},
	}
}

// LoadFromFile reads a YAML config file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load builds the effective configuration: defaults, then the optional file,
// then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with PICBOT_* environment variables.
// Secrets in particular are expected to arrive this way.
func (c *Config) applyEnv() {
	setString(&c.Server.Addr, "PICBOT_SERVER_ADDR")
	setString(&c.Store.Backend, "PICBOT_STORE_BACKEND")
	setString(&c.Store.Path, "PICBOT_STORE_PATH")
	setString(&c.Store.EncryptionKey, "PICBOT_STORE_ENCRYPTION_KEY")
	setString(&c.Redis.Addr, "PICBOT_REDIS_ADDR")
	setString(&c.Redis.Password, "PICBOT_REDIS_PASSWORD")
	setString(&c.NLU.Endpoint, "PICBOT_NLU_ENDPOINT")
	setString(&c.NLU.Key, "PICBOT_NLU_KEY")
	setString(&c.Search.Endpoint, "PICBOT_SEARCH_ENDPOINT")
	setString(&c.Search.Key, "PICBOT_SEARCH_KEY")
	setString(&c.Channel.WebhookURL, "PICBOT_CHANNEL_WEBHOOK_URL")
	setString(&c.Log.Level, "PICBOT_LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Backend == StoreRedis && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis store requires redis.addr")
	}
	if c.Store.EncryptionKey != "" {
		if _, err := c.Store.ActiveEncryptionKey(); err != nil {
			return err
		}
		if _, err := c.Store.FallbackEncryptionKeys(); err != nil {
			return err
		}
	}
	for _, p := range c.Store.PIIPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("config: invalid pii pattern %q: %w", p, err)
		}
	}
	return nil
}

// ActiveEncryptionKey decodes the configured encryption key.
func (s *StoreConfig) ActiveEncryptionKey() ([]byte, error) {
	return decodeKey(s.EncryptionKey)
}

// FallbackEncryptionKeys decodes the rotated-out keys, in order.
func (s *StoreConfig) FallbackEncryptionKeys() ([][]byte, error) {
	keys := make([][]byte, 0, len(s.EncryptionFallbackKeys))
	for _, k := range s.EncryptionFallbackKeys {
		decoded, err := decodeKey(k)
		if err != nil {
			return nil, err
		}
		keys = append(keys, decoded)
	}
	return keys, nil
}

func decodeKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("config: encryption key is not valid base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("config: encryption key must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}
