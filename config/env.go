package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names recognized as overrides. A .env file in the
// working directory is honored when present, matching CI plugin conventions.
const (
	EnvReportFile    = "JUNIT_REPORTER_REPORT"
	EnvBuildDir      = "JUNIT_REPORTER_BUILD_DIR"
	EnvFailOnSummary = "JUNIT_REPORTER_FAIL_ON_SUMMARY"
	EnvTracing       = "JUNIT_REPORTER_TRACING"
)

// applyEnvOverrides layers environment values over cfg. Unset variables leave
// the existing value untouched.
func applyEnvOverrides(cfg Config) Config {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	if v := os.Getenv(EnvReportFile); v != "" {
		cfg.ReportFile = v
	}
	if v := os.Getenv(EnvBuildDir); v != "" {
		cfg.BuildDir = v
	}
	if v := os.Getenv(EnvFailOnSummary); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.FailOnSummary = parsed
		}
	}
	if v := os.Getenv(EnvTracing); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.TracingEnabled = parsed
		}
	}
	return cfg
}
