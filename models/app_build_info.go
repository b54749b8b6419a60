// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// notAvailable is printed by the binaries for build fields the linker did
// not set.
const notAvailable = "N/A"

// AppBuildInfo carries the build metadata injected into the server binary
// with -ldflags. Unset fields are empty.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo treats "" and "N/A" alike, so the values printed at startup
// can be passed in directly.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: known(buildVersion),
		buildDate:    known(buildDate),
		buildCommit:  known(buildCommit),
	}
}

func known(v string) string {
	if v == notAvailable {
		return ""
	}
	return v
}

func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// VersionResponse describes the build under the given public version.
func (a AppBuildInfo) VersionResponse(version string) VersionResponse {
	return VersionResponse{
		Version: version,
		Date:    a.buildDate,
		Commit:  a.buildCommit,
	}
}
