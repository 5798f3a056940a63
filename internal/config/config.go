// Package config loads the unabs configuration file.
package config

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when --config is unset.
const DefaultPath = "unabs.yaml"

// Store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the full configuration. Zero values are replaced by defaults.
type Config struct {
	// MaxSteps bounds a single run; 0 means unbounded.
	MaxSteps uint64 `yaml:"max_steps" json:"max_steps"`

	// CheckpointEvery persists the session every N steps during `run --session`.
	CheckpointEvery uint64 `yaml:"checkpoint_every" json:"checkpoint_every"`

	Log     LogConfig     `yaml:"log" json:"log"`
	Store   StoreConfig   `yaml:"store" json:"store"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Library LibraryConfig `yaml:"library" json:"library"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level"`
}

type StoreConfig struct {
	Backend string `yaml:"backend" json:"backend"`
	Path    string `yaml:"path" json:"path"`

	// EncryptionKey is a base64 AES-256 key. When set, sessions are stored encrypted.
	EncryptionKey string `yaml:"encryption_key" json:"encryption_key"`

	// FallbackKeys are previous keys still accepted for decryption.
	FallbackKeys []string `yaml:"fallback_keys" json:"fallback_keys"`

	Redis RedisConfig `yaml:"redis" json:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`

	// TTL is a Go duration ("24h"); empty keeps sessions forever.
	TTL string `yaml:"ttl" json:"ttl"`
}

type ServerConfig struct {
	Port int `yaml:"port" json:"port"`
}

type LibraryConfig struct {
	Path string `yaml:"path" json:"path"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		MaxSteps:        0,
		CheckpointEvery: 100_000,
		Log:             LogConfig{Level: "info"},
		Store: StoreConfig{
			Backend: BackendFile,
			Path:    filepath.Join(".unabs", "sessions"),
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "unabs:session:",
			},
		},
		Server:  ServerConfig{Port: 8080},
		Library: LibraryConfig{Path: "programs"},
	}
}

// Load reads path (YAML, or JSON by extension) over the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Validate checks values that cannot be checked by the decoder.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: out of range: %d", c.Server.Port)
	}
	if _, err := c.Store.Redis.TTLDuration(); err != nil {
		return err
	}
	if _, _, err := c.Store.Keys(); err != nil {
		return err
	}
	return nil
}

// TTLDuration parses TTL.
func (r RedisConfig) TTLDuration() (time.Duration, error) {
	if r.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.TTL)
	if err != nil {
		return 0, fmt.Errorf("store.redis.ttl: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("store.redis.ttl: negative duration %s", r.TTL)
	}
	return d, nil
}

// Keys decodes the encryption keys. Both results are nil when encryption is off.
func (s StoreConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if s.EncryptionKey == "" {
		if len(s.FallbackKeys) > 0 {
			return nil, nil, errors.New("store.fallback_keys: set without store.encryption_key")
		}
		return nil, nil, nil
	}
	if active, err = decodeKey("store.encryption_key", s.EncryptionKey); err != nil {
		return nil, nil, err
	}
	for i, k := range s.FallbackKeys {
		key, err := decodeKey(fmt.Sprintf("store.fallback_keys[%d]", i), k)
		if err != nil {
			return nil, nil, err
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(field, s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%s: want 32 bytes, got %d", field, len(key))
	}
	return key, nil
}
