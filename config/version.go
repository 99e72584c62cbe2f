package config

import "strings"

// Build information, set with -ldflags by the dev build command.
var (
	AppVersion = "latest"
	GitCommit  string
	GitBranch  string
	BuildTime  string
	Arch       string
)

// VersionString joins the build information that was injected.
func VersionString() string {
	parts := []string{AppVersion}
	for _, p := range []string{GitBranch, GitCommit, BuildTime} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}
