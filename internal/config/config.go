package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Auth    AuthConfig    `yaml:"auth"`
	Storage StorageConfig `yaml:"storage"`
	Content ContentConfig `yaml:"content"`
	Stream  StreamConfig  `yaml:"stream"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type AuthConfig struct {
	// LoginLatency simulates the round trip of a real authentication
	// call; the client renders its loading state for this long.
	LoginLatency time.Duration `yaml:"login_latency"`
	Users        []UserConfig  `yaml:"users"`
}

// UserConfig is a credential-set entry overriding the built-in users.
type UserConfig struct {
	ID          string `yaml:"id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	DisplayName string `yaml:"display_name"`
}

type StorageConfig struct {
	// Backend selects the progression repository: "file" (JSON state
	// file) or "sqlite".
	Backend string `yaml:"backend"`
	// Dir is the state directory; empty means the XDG default.
	Dir string `yaml:"dir"`
}

type ContentConfig struct {
	// Optional YAML files overriding the built-in tables.
	Levels       string `yaml:"levels"`
	Achievements string `yaml:"achievements"`
	Games        string `yaml:"games"`
}

type StreamConfig struct {
	SnapshotInterval time.Duration `yaml:"snapshot_interval"`
}

// Load reads the config at path over the built-in defaults. A missing
// file is not an error: the defaults are a complete working config.
// VKR_PORT and VKR_STATE_DIR environment variables override the file.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Auth: AuthConfig{
			LoginLatency: time.Second,
		},
		Storage: StorageConfig{
			Backend: "file",
		},
		Stream: StreamConfig{
			SnapshotInterval: 5 * time.Second,
		},
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("VKR_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid VKR_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("VKR_STATE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}

	if cfg.Storage.Backend != "file" && cfg.Storage.Backend != "sqlite" {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return cfg, nil
}
