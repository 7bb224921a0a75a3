// Package version holds the build version of the slade binaries.
// Version, GitCommit and BuildDate can be injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Build information that can be set at compile time via -ldflags
var (
	// Version is the semantic version of the application
	Version = "1.0.0"

	// GitCommit is the git commit hash when the binary was built
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built
	BuildDate = "unknown"
)

const unknown = "unknown"

// buildDateFormats are the accepted layouts of BuildDate.
var buildDateFormats = []string{time.RFC3339, "2006-01-02"}

// Info is the version information reported by the version command.
type Info struct {
	Application string     `json:"application" yaml:"application"`
	Version     string     `json:"version" yaml:"version"`
	BaseVersion string     `json:"baseVersion" yaml:"base_version"`
	Metadata    string     `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Prerelease  bool       `json:"prerelease" yaml:"prerelease"`
	Development bool       `json:"development" yaml:"development"`
	GitCommit   string     `json:"gitCommit" yaml:"git_commit"`
	BuildDate   string     `json:"buildDate" yaml:"build_date"`
	BuildTime   *time.Time `json:"buildTime,omitempty" yaml:"build_time,omitempty"`
	GoVersion   string     `json:"goVersion" yaml:"go_version"`
	Platform    string     `json:"platform" yaml:"platform"`
}

// GetVersion returns the current version string
func GetVersion() string {
	return Version
}

// GetInfo returns the version information of application. It fails when
// Version is not a semantic version.
func GetInfo(application string) (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}

	info := &Info{
		Application: application,
		Version:     Version,
		BaseVersion: fmt.Sprintf("%d.%d.%d", sv.Major(), sv.Minor(), sv.Patch()),
		Metadata:    sv.Metadata(),
		Prerelease:  sv.Prerelease() != "",
		Development: isUnset(GitCommit) || isUnset(BuildDate),
		GitCommit:   GitCommit,
		BuildDate:   BuildDate,
		GoVersion:   runtime.Version(),
		Platform:    fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if built, ok := parseBuildDate(BuildDate); ok {
		info.BuildTime = &built
	}
	return info, nil
}

func isUnset(value string) bool {
	return value == "" || value == unknown
}

func parseBuildDate(date string) (time.Time, bool) {
	if isUnset(date) {
		return time.Time{}, false
	}
	for _, format := range buildDateFormats {
		if t, err := time.Parse(format, date); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// GetFormattedVersion returns a one-line version string such as
// "run v1.0.0, commit abc1234, built 2025-01-01".
func GetFormattedVersion(application string) string {
	info, err := GetInfo(application)
	if err != nil {
		return fmt.Sprintf("%s v%s (invalid version)", application, Version)
	}

	parts := []string{fmt.Sprintf("%s v%s", info.Application, info.Version)}

	if !isUnset(info.GitCommit) {
		// Show short commit hash (7 characters)
		shortCommit := info.GitCommit
		if len(shortCommit) > 7 {
			shortCommit = shortCommit[:7]
		}
		parts = append(parts, fmt.Sprintf("commit %s", shortCommit))
	}

	if !isUnset(info.BuildDate) {
		parts = append(parts, fmt.Sprintf("built %s", info.BuildDate))
	}

	if info.Development {
		parts = append(parts, "development build")
	}

	return strings.Join(parts, ", ")
}

// GetDetailedVersion returns the version information as a YAML document.
func GetDetailedVersion(application string) (string, error) {
	info, err := GetInfo(application)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("failed to encode version info: %w", err)
	}
	return string(data), nil
}
