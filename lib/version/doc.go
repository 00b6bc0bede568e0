// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build version of the hex binary.
//
// Four package-level variables can be injected at build time via
// -ldflags -X:
//
//	go build -ldflags "-X github.com/trejkaz/hex-components/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Values left at their defaults fall back to the VCS stamp recorded by
// the go tool (vcs.revision, vcs.modified, vcs.time) and to the main
// module version for binaries built with go install.
//
//   - [Info] -- "0.1.0-dev (abc1234, 2026-02-10T...)" for --version
//   - [Full] -- Info plus Go version and GOOS/GOARCH
//   - [Short] -- just the version number
package version
