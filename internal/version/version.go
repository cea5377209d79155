// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package version reports what build of llm-sanitizer is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unknown = "unknown"

// Set at release time with -ldflags "-X llm-sanitizer/internal/version.Version=...".
// Empty or default values are filled from the module build info when the
// binary was built with `go install` or from a checkout.
var (
	Version   = "0.0.0-development"
	GitCommit = unknown
	BuildDate = unknown
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Current returns the build info of the running binary
func Current() BuildInfo {
	info, _ := debug.ReadBuildInfo()
	return resolve(info)
}

// resolve merges the ldflags values with what the toolchain recorded.
// Values injected at link time win.
func resolve(info *debug.BuildInfo) BuildInfo {
	b := BuildInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info == nil {
		return b
	}

	if b.Version == "0.0.0-development" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if b.Commit == unknown {
				b.Commit = shortCommit(setting.Value)
			}
		case "vcs.time":
			if b.BuildDate == unknown {
				b.BuildDate = setting.Value
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if dirty && b.Commit != unknown && GitCommit == unknown {
		b.Commit += "-dirty"
	}
	return b
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// Info returns the one-line version banner
func Info() string {
	b := Current()
	return fmt.Sprintf("llm-sanitizer %s (commit: %s, built: %s, go: %s, platform: %s)",
		b.Version, b.Commit, b.BuildDate, b.GoVersion, b.Platform)
}

// Short returns just the version number
func Short() string {
	return Current().Version
}
