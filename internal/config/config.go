// Package config loads reddisetgo settings from a YAML file and the environment.
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

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "reddisetgo.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REDDISETGO_"

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

var ErrInvalid = errors.New("invalid configuration")

// Config is the full application configuration.
type Config struct {
	Network  NetworkConfig  `mapstructure:"network" yaml:"network"`
	Commands CommandsConfig `mapstructure:"commands" yaml:"commands"`
	Process  ProcessConfig  `mapstructure:"process" yaml:"process"`
	Install  InstallConfig  `mapstructure:"install" yaml:"install"`
	Login    LoginConfig    `mapstructure:"login" yaml:"login"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	UI       UIConfig       `mapstructure:"ui" yaml:"ui"`
}

type NetworkConfig struct {
	// Variable is the environment variable the blockchain CLI reads its network from.
	Variable string `mapstructure:"variable" yaml:"variable"`
	Required string `mapstructure:"required" yaml:"required"`
	// Initial seeds the session network. Empty means "read Variable".
	Initial  string `mapstructure:"initial" yaml:"initial"`
}

type CommandsConfig struct {
	Version string `mapstructure:"version" yaml:"version"`
	Install string `mapstructure:"install" yaml:"install"`
	Login   string `mapstructure:"login" yaml:"login"`
	// Keys must contain the {account} placeholder.
	Keys    string `mapstructure:"keys" yaml:"keys"`
}

type ProcessConfig struct {
	Shell   string        `mapstructure:"shell" yaml:"shell"`
	WorkDir string        `mapstructure:"work_dir" yaml:"work_dir"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type InstallConfig struct {
	FatalMarkers []string      `mapstructure:"fatal_markers" yaml:"fatal_markers"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type LoginConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	JSON  bool   `mapstructure:"json" yaml:"json"`
}

type StoreConfig struct {
	Kind    string        `mapstructure:"kind" yaml:"kind"`
	Session string        `mapstructure:"session" yaml:"session"`
	Dir     string        `mapstructure:"dir" yaml:"dir"`
	Redis   RedisConfig   `mapstructure:"redis" yaml:"redis"`
	LockTTL time.Duration `mapstructure:"lock_ttl" yaml:"lock_ttl"`

	// EncryptionKey is a base64 AES-256 key. When set, snapshots are encrypted at rest.
	EncryptionKey string   `mapstructure:"encryption_key" yaml:"encryption_key"`
	// FallbackKeys decrypt snapshots written before a key rotation.
	FallbackKeys  []string `mapstructure:"fallback_keys" yaml:"fallback_keys"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

type ServerConfig struct {
	// Addr enables the status server when set, e.g. ":2112".
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type UIConfig struct {
	Banner bool   `mapstructure:"banner" yaml:"banner"`
	// Color is one of auto, always, never.
	Color  string `mapstructure:"color" yaml:"color"`
	Width  int    `mapstructure:"width" yaml:"width"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Network: NetworkConfig{Variable: "NEAR_ENV", Required: "testnet"},
		Commands: CommandsConfig{
			Version: "near --version",
			Install: "npm install -g near-cli",
			Login:   "near login",
			Keys:    "near keys {account}",
		},
		Process: ProcessConfig{Timeout: 5 * time.Minute},
		Install: InstallConfig{FatalMarkers: []string{"ERR!"}, Timeout: 10 * time.Minute},
		Login:   LoginConfig{Timeout: 10 * time.Minute},
		Log:     LogConfig{},
		Store:   StoreConfig{Kind: StoreFile, Session: "default", LockTTL: 30 * time.Second},
		UI:      UIConfig{Banner: true, Color: "auto", Width: 80},
	}
}

// envKeys maps environment overrides to configuration keys.
var envKeys = map[string]string{
	"NETWORK_VARIABLE":      "network.variable",
	"NETWORK_REQUIRED":      "network.required",
	"NETWORK":               "network.initial",
	"COMMAND_VERSION":       "commands.version",
	"COMMAND_INSTALL":       "commands.install",
	"COMMAND_LOGIN":         "commands.login",
	"COMMAND_KEYS":          "commands.keys",
	"SHELL":                 "process.shell",
	"WORK_DIR":              "process.work_dir",
	"PROCESS_TIMEOUT":       "process.timeout",
	"INSTALL_FATAL_MARKERS": "install.fatal_markers",
	"INSTALL_TIMEOUT":       "install.timeout",
	"LOGIN_TIMEOUT":         "login.timeout",
	"LOG_LEVEL":             "log.level",
	"LOG_JSON":              "log.json",
	"STORE":                 "store.kind",
	"SESSION":               "store.session",
	"STORE_DIR":             "store.dir",
	"STORE_KEY":             "store.encryption_key",
	"REDIS_ADDR":            "store.redis.addr",
	"REDIS_PASSWORD":        "store.redis.password",
	"REDIS_DB":              "store.redis.db",
	"REDIS_PREFIX":          "store.redis.prefix",
	"REDIS_TTL":             "store.redis.ttl",
	"SERVER_ADDR":           "server.addr",
	"BANNER":                "ui.banner",
	"COLOR":                 "ui.color",
}

// LookupFunc reads an environment variable.
type LookupFunc func(key string) (string, bool)

// Load reads path (a missing file yields the defaults), applies REDDISETGO_* overrides from
// lookup, and seeds the initial network from the network variable when it is not configured.
// A nil lookup uses the process environment.
func Load(path string, lookup LookupFunc) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
			}
			if raw == nil {
				raw = map[string]any{}
			}
		}
	}

	for suffix, key := range envKeys {
		if v, ok := lookup(EnvPrefix + suffix); ok {
			setPath(raw, key, v)
		}
	}

	cfg := Default()
	if err := decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if cfg.Network.Initial == "" {
		if v, ok := lookup(cfg.Network.Variable); ok {
			cfg.Network.Initial = v
		}
	}
	return cfg, nil
}

func decode(input map[string]any, out *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		ZeroFields:       true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// setPath stores value under a dotted key, creating intermediate maps.
func setPath(m map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

// Validate reports every problem found, joined.
func (c Config) Validate() error {
	var errs []error
	if c.Network.Variable == "" {
		errs = append(errs, errors.New("network.variable is required"))
	}
	if c.Network.Required == "" {
		errs = append(errs, errors.New("network.required is required"))
	}
	for name, cmd := range map[string]string{
		"commands.version": c.Commands.Version,
		"commands.install": c.Commands.Install,
		"commands.login":   c.Commands.Login,
		"commands.keys":    c.Commands.Keys,
	} {
		if strings.TrimSpace(cmd) == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}
	if c.Commands.Keys != "" && !strings.Contains(c.Commands.Keys, "{account}") {
		errs = append(errs, errors.New("commands.keys must contain {account}"))
	}
	switch c.Store.Kind {
	case StoreMemory, StoreFile:
	case StoreRedis:
		if c.Store.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr is required for the redis store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store.kind %q", c.Store.Kind))
	}
	if c.Store.Session == "" {
		errs = append(errs, errors.New("store.session is required"))
	}
	switch c.UI.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("unknown ui.color %q", c.UI.Color))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
