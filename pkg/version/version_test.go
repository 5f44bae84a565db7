package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubBuild replaces the build info for the duration of the test.
func stubBuild(t *testing.T, revision string) {
	t.Helper()
	old := buildInfo
	t.Cleanup(func() { buildInfo = old })

	buildInfo = func() (*debug.BuildInfo, bool) {
		if revision == "" {
			return nil, false
		}
		return &debug.BuildInfo{Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: revision},
		}}, true
	}
}

func TestGetVersion(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		revision string
		expected string
	}{
		{"defaults", "", "", "", "v0.1.0"},
		{"ldflags version", "v1.2.3", "", "", "v1.2.3"},
		{"long commit is truncated", "v1.2.3", "0123456789abcdef", "", "v1.2.3-0123456"},
		{"short commit", "", "abc", "", "v0.1.0-abc"},
		{"vcs revision", "v1.2.3", "", "fedcba9876543210", "v1.2.3-fedcba9"},
		{"ldflags commit wins over vcs", "", "abc", "fedcba9876543210", "v0.1.0-abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldVersion, oldCommit := Version, GitCommit
			t.Cleanup(func() { Version, GitCommit = oldVersion, oldCommit })
			stubBuild(t, tt.revision)

			Version, GitCommit = tt.version, tt.commit
			assert.Equal(t, tt.expected, GetVersion())
		})
	}
}

func TestUserAgent(t *testing.T) {
	oldVersion, oldCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = oldVersion, oldCommit })
	stubBuild(t, "")

	Version, GitCommit = "v2.0.0", ""
	assert.Equal(t, "girc-client v2.0.0", UserAgent())
}
