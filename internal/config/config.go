package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// Values holds the configuration loaded by the binary.
var Values *Config

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	User struct {
		Nick     string `yaml:"nick"`
		Username string `yaml:"username"`
		Realname string `yaml:"realname"`
		Password string `yaml:"password"`
	} `yaml:"user"`
	Client struct {
		Encoding        string `yaml:"encoding"`
		TimestampFormat string `yaml:"timestamp_format"`
		Debug           bool   `yaml:"debug"`
		LogFile         string `yaml:"log_file"`
		HistoryFile     string `yaml:"history_file"`
	} `yaml:"client"`
	Redis struct {
		Enabled     bool   `yaml:"enabled"`
		URL         string `yaml:"url"`
		HistorySize int64  `yaml:"history_size"`
	} `yaml:"redis"`
}

const defaultConfig = `server:
    host: "localhost"
    port: 6667
user:
    nick: "girc"
    username: "girc"
    realname: "girc user"
    password: ""
client:
    encoding: "utf-8"
    timestamp_format: "15:04"
    debug: false
    log_file: ""
    history_file: ""
redis:
    enabled: false
    url: "redis://localhost:6379/0"
    history_size: 500
`

// Default returns the configuration written to a fresh config file.
func Default() *Config {
	c := &Config{}
	if err := yaml.Unmarshal([]byte(defaultConfig), c); err != nil {
		panic(err)
	}
	return c
}

// Dir returns ~/.girc, the directory holding the config, log and history files.
func Dir() (string, error) {
	osUser, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("looking up current user: %w", err)
	}
	return filepath.Join(osUser.HomeDir, ".girc"), nil
}

// DefaultPath returns ~/.girc/client.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "client.yaml"), nil
}

// Load reads the config at path, writing the defaults first when the file does
// not exist yet. Settings missing from the file keep their default value.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfig), 0o600); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}
	}

	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(yamlFile, c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the settings the client cannot start without.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("config: server.host is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range", c.Server.Port)
	}
	if c.User.Nick == "" {
		return errors.New("config: user.nick is required")
	}
	if c.Redis.Enabled && c.Redis.URL == "" {
		return errors.New("config: redis.url is required when redis is enabled")
	}
	return nil
}
