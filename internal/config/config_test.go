package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".girc", "client.yaml")

	c, err := Load(path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	assert.Equal(t, "localhost", c.Server.Host)
	assert.Equal(t, 6667, c.Server.Port)
	assert.Equal(t, "girc", c.User.Nick)
	assert.Equal(t, "utf-8", c.Client.Encoding)
	assert.Equal(t, "15:04", c.Client.TimestampFormat)
	assert.False(t, c.Redis.Enabled)
	assert.EqualValues(t, 500, c.Redis.HistorySize)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n    host: irc.libera.chat\nuser:\n    nick: gopher\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "irc.libera.chat", c.Server.Host)
	assert.Equal(t, 6667, c.Server.Port)
	assert.Equal(t, "gopher", c.User.Nick)
	assert.Equal(t, "girc", c.User.Username)
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"no host", func(c *Config) { c.Server.Host = "" }, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, false},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, false},
		{"no nick", func(c *Config) { c.User.Nick = "" }, false},
		{"redis without url", func(c *Config) { c.Redis.Enabled = true; c.Redis.URL = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			if tt.ok {
				assert.NoError(t, c.Validate())
			} else {
				assert.Error(t, c.Validate())
			}
		})
	}
}
