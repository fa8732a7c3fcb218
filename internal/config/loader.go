package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".routinely"
	configFileName = "config.yaml"
)

// Loader loads and merges configuration files. Project config
// overrides global config, which overrides the defaults.
type Loader struct {
	globalPath  string
	projectPath string
}

// NewLoader creates a loader rooted at projectDir (the working
// directory when empty).
func NewLoader(projectDir string) (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	if projectDir == "" {
		projectDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	return &Loader{
		globalPath:  filepath.Join(homeDir, configDirName, configFileName),
		projectPath: filepath.Join(projectDir, configDirName, configFileName),
	}, nil
}

// Load merges defaults, the global file and the project file, in that
// order. Missing files are fine; malformed ones are not.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range []string{l.globalPath, l.projectPath} {
		layer, err := loadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		if layer != nil {
			cfg = mergeConfigs(cfg, layer)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads a single explicit config file over the defaults.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	layer, err := loadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	cfg := mergeConfigs(DefaultConfig(), layer)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfigs overlays override on base. Scalars use the override
// when set; lists replace wholesale when non-empty so a project file
// can narrow the tracked domains.
func mergeConfigs(base, override *Config) *Config {
	return &Config{
		Version: coalesce(override.Version, base.Version),
		Settings: Settings{
			LogLevel: coalesce(override.Settings.LogLevel, base.Settings.LogLevel),
			LogFile:  coalesce(override.Settings.LogFile, base.Settings.LogFile),
		},
		Analysis: Analysis{
			LookbackDays:         coalesceInt(override.Analysis.LookbackDays, base.Analysis.LookbackDays),
			IntervalHours:        coalesceInt(override.Analysis.IntervalHours, base.Analysis.IntervalHours),
			WindowMinutes:        coalesceInt(override.Analysis.WindowMinutes, base.Analysis.WindowMinutes),
			MinOccurrences:       coalesceInt(override.Analysis.MinOccurrences, base.Analysis.MinOccurrences),
			ConsistencyThreshold: coalesceFloat(override.Analysis.ConsistencyThreshold, base.Analysis.ConsistencyThreshold),
			TrackedDomains:       coalesceList(override.Analysis.TrackedDomains, base.Analysis.TrackedDomains),
		},
		Filters: Filters{
			UserMode:   coalesce(override.Filters.UserMode, base.Filters.UserMode),
			Users:      coalesceList(override.Filters.Users, base.Filters.Users),
			DomainMode: coalesce(override.Filters.DomainMode, base.Filters.DomainMode),
			Domains:    coalesceList(override.Filters.Domains, base.Filters.Domains),
		},
		Stale: Stale{
			ThresholdDays:  coalesceInt(override.Stale.ThresholdDays, base.Stale.ThresholdDays),
			IgnorePatterns: coalesceList(override.Stale.IgnorePatterns, base.Stale.IgnorePatterns),
		},
		Store: Store{
			Path: coalesce(override.Store.Path, base.Store.Path),
		},
		Server: Server{
			Port: coalesceInt(override.Server.Port, base.Server.Port),
		},
	}
}

func coalesce(override, base string) string {
	if override != "" {
		return override
	}
	return base
}

func coalesceInt(override, base int) int {
	if override != 0 {
		return override
	}
	return base
}

func coalesceFloat(override, base float64) float64 {
	if override != 0 {
		return override
	}
	return base
}

func coalesceList(override, base []string) []string {
	if len(override) > 0 {
		return override
	}
	return base
}
