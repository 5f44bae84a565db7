package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set with -ldflags "-X github.com/tehcyx/girc-client/pkg/version.Version=v1.2.3".
var Version string

// GitCommit is set the same way. Without it the VCS revision stamped by
// go build is used.
var GitCommit string

const defaultVersion = "v0.1.0"

// shortCommitLen is the length of the abbreviated commit in the version.
const shortCommitLen = 7

var buildInfo = debug.ReadBuildInfo

// GetVersion returns Version, or v0.1.0 when unset, followed by the short
// commit when one is known, e.g. "v1.2.3-0123456".
func GetVersion() string {
	v := Version
	if v == "" {
		v = defaultVersion
	}
	if commit := commit(); commit != "" {
		return v + "-" + commit
	}
	return v
}

func commit() string {
	rev := GitCommit
	if rev == "" {
		rev = vcsRevision()
	}
	if len(rev) > shortCommitLen {
		rev = rev[:shortCommitLen]
	}
	return rev
}

func vcsRevision() string {
	info, ok := buildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			return setting.Value
		}
	}
	return ""
}

// UserAgent names the client, e.g. "girc-client v0.1.0".
func UserAgent() string {
	return fmt.Sprintf("girc-client %s", GetVersion())
}
