package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultBuildDir is used when the caller supplies no build directory.
const DefaultBuildDir = "build"

// reportPrefix and reportSuffix describe the report files test runners drop
// into the results directory.
const (
	reportPrefix = "TEST-"
	reportSuffix = ".xml"
)

// Manager handles report file location and access checks.
type Manager struct{}

// NewManager creates a new filesystem manager.
func NewManager() *Manager {
	return &Manager{}
}

// FileExists checks if a regular file exists at path.
func (f *Manager) FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsReadable checks if the file at path can be opened for reading.
func (f *Manager) IsReadable(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// DefaultReportPath returns the conventional report location under the build
// directory: <build-dir>/test-results/test/TEST-junit-jupiter.xml.
func (f *Manager) DefaultReportPath(buildDir string) string {
	if buildDir == "" {
		buildDir = DefaultBuildDir
	}
	return filepath.Join(buildDir, "test-results", "test", "TEST-junit-jupiter.xml")
}

// FindLatestReport returns the most recently modified readable TEST-*.xml
// file in dir.
func (f *Manager) FindLatestReport(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read results directory: %w", err)
	}

	var latest string
	var latestMod int64
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, reportPrefix) || !strings.HasSuffix(name, reportSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidate := filepath.Join(dir, name)
		if !f.IsReadable(candidate) {
			continue
		}
		if latest == "" || info.ModTime().UnixNano() > latestMod {
			latest = candidate
			latestMod = info.ModTime().UnixNano()
		}
	}

	if latest == "" {
		return "", fmt.Errorf("no test reports found in %s", dir)
	}
	return latest, nil
}
