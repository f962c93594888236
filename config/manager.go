package config

// Manager handles configuration operations
type Manager struct{}

// NewManager creates a new config manager
func NewManager() *Manager {
	return &Manager{}
}

// Load reads the persisted configuration and layers environment overrides on
// top. A missing config file yields the zero configuration, not an error.
func (m *Manager) Load() Config {
	cfg, err := readConfig()
	if err != nil {
		cfg = Config{}
	}
	return applyEnvOverrides(cfg)
}

// UpdateReportFile persists a new default report file while preserving other
// settings.
func (m *Manager) UpdateReportFile(path string) error {
	cfg, err := readConfig()
	if err != nil {
		cfg = Config{}
	}
	cfg.ReportFile = path
	return writeConfig(cfg)
}

// UpdateBuildDir persists a new default build directory while preserving
// other settings.
func (m *Manager) UpdateBuildDir(dir string) error {
	cfg, err := readConfig()
	if err != nil {
		cfg = Config{}
	}
	cfg.BuildDir = dir
	return writeConfig(cfg)
}

// SetTracingEnabled persists the tracing toggle while preserving other
// settings.
func (m *Manager) SetTracingEnabled(enabled bool) error {
	cfg, err := readConfig()
	if err != nil {
		cfg = Config{}
	}
	cfg.TracingEnabled = enabled
	return writeConfig(cfg)
}
