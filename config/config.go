package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic("Unable to determine user home directory")
	}

	err = os.MkdirAll(fmt.Sprintf("%s/.junitreporter", homeDir), os.ModePerm)
	if err != nil {
		panic("Unable to create .junitreporter directory")
	}

	ConfigFilePath = fmt.Sprintf("%s/.junitreporter/config.yml", homeDir)
}

var ConfigFilePath string

// Config represents the persisted reporter configuration
type Config struct {
	ReportFile     string `yaml:"report_file"`
	BuildDir       string `yaml:"build_dir"`
	FailOnSummary  bool   `yaml:"fail_on_summary"`
	TracingEnabled bool   `yaml:"tracing_enabled"`
}

// readConfig reads the configuration from the config file
// This is private - use Manager methods instead
func readConfig() (Config, error) {
	var config Config
	data, err := os.ReadFile(ConfigFilePath)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(data, &config)
	return config, err
}

// writeConfig writes the configuration to the config file
// This is private - use Manager methods instead
func writeConfig(config Config) error {
	data, err := yaml.Marshal(&config)
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigFilePath, data, 0600)
}
