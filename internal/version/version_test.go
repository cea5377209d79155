// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	info := Info()
	assert.True(t, strings.HasPrefix(info, "llm-sanitizer "+Short()), info)
	assert.Contains(t, info, Current().Platform)
}

func TestResolveWithoutBuildInfo(t *testing.T) {
	b := resolve(nil)
	assert.Equal(t, Version, b.Version)
	assert.Equal(t, unknown, b.Commit)
	assert.NotEmpty(t, b.GoVersion)
}

func TestResolveFromVCSSettings(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	b := resolve(info)
	assert.Equal(t, "v1.4.0", b.Version)
	assert.Equal(t, "0123456789ab-dirty", b.Commit)
	assert.Equal(t, "2026-10-01T12:00:00Z", b.BuildDate)
}

func TestResolvePrefersLinkerValues(t *testing.T) {
	defer func(v, c, d string) { Version, GitCommit, BuildDate = v, c, d }(Version, GitCommit, BuildDate)
	Version, GitCommit, BuildDate = "2.0.0", "feedface", "2026-09-30"

	b := resolve(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}, {Key: "vcs.modified", Value: "true"}},
	})
	assert.Equal(t, BuildInfo{
		Version:   "2.0.0",
		Commit:    "feedface",
		BuildDate: "2026-09-30",
		GoVersion: b.GoVersion,
		Platform:  b.Platform,
	}, b)
}
