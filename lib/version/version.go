// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// build describes the running binary, preferring values injected with
// -ldflags over the VCS stamp the go tool records.
type build struct {
	version string
	commit  string
	dirty   bool
	time    string
}

func current() build {
	b := build{
		version: Version,
		commit:  GitCommit,
		dirty:   GitDirty == "true",
		time:    BuildTime,
	}
	info, ok := readBuildInfo()
	if !ok {
		return b
	}
	if b.version == "0.1.0-dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if b.commit == "unknown" {
				b.commit = setting.Value
				if len(b.commit) > 7 {
					b.commit = b.commit[:7]
				}
			}
		case "vcs.modified":
			if GitDirty == "false" && setting.Value == "true" {
				b.dirty = true
			}
		case "vcs.time":
			if b.time == "unknown" {
				b.time = setting.Value
			}
		}
	}
	return b
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	b := current()
	dirty := ""
	if b.dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", b.version, b.commit, dirty, b.time)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return current().version
}
