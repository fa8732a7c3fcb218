// Package config defines the routinely configuration and its layered
// yaml loader.
package config

import (
	"fmt"

	"github.com/routinely/routinely/internal/pattern"
)

// Filter modes for user and trigger-domain filtering.
const (
	FilterModeExclude = "exclude"
	FilterModeInclude = "include"
)

// Config is the complete routinely configuration.
type Config struct {
	Version  string   `yaml:"version"`
	Settings Settings `yaml:"settings"`
	Analysis Analysis `yaml:"analysis"`
	Filters  Filters  `yaml:"filters"`
	Stale    Stale    `yaml:"stale"`
	Store    Store    `yaml:"store"`
	Server   Server   `yaml:"server"`
}

// Settings contains global settings.
type Settings struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file,omitempty"`
}

// Analysis tunes the suggestion pipeline.
type Analysis struct {
	LookbackDays         int      `yaml:"lookback_days"`
	IntervalHours        int      `yaml:"interval_hours"`
	WindowMinutes        int      `yaml:"window_minutes"`
	MinOccurrences       int      `yaml:"min_occurrences"`
	ConsistencyThreshold float64  `yaml:"consistency_threshold"`
	TrackedDomains       []string `yaml:"tracked_domains,omitempty"`
}

// Filters selects which acting users and trigger domains count as
// manual. Mode is "exclude" (listed values rejected) or "include"
// (only listed values accepted).
type Filters struct {
	UserMode   string   `yaml:"user_mode,omitempty"`
	Users      []string `yaml:"users,omitempty"`
	DomainMode string   `yaml:"domain_mode,omitempty"`
	Domains    []string `yaml:"domains,omitempty"`
}

// Stale tunes dormant-automation detection.
type Stale struct {
	ThresholdDays  int      `yaml:"threshold_days"`
	IgnorePatterns []string `yaml:"ignore_patterns,omitempty"`
}

// Store locates the dismissal database.
type Store struct {
	Path string `yaml:"path,omitempty"`
}

// Server configures the local results API.
type Server struct {
	Port int `yaml:"port"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Settings: Settings{
			LogLevel: "info",
		},
		Analysis: Analysis{
			LookbackDays:         14,
			IntervalHours:        24,
			WindowMinutes:        pattern.DefaultWindowMinutes,
			MinOccurrences:       pattern.DefaultMinOccurrences,
			ConsistencyThreshold: pattern.DefaultConsistencyThreshold,
			TrackedDomains:       pattern.TrackedDomains(),
		},
		Filters: Filters{
			UserMode:   FilterModeExclude,
			DomainMode: FilterModeExclude,
		},
		Stale: Stale{
			ThresholdDays: pattern.DefaultStaleThresholdDays,
		},
		Server: Server{
			Port: 8742,
		},
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	a := c.Analysis
	if a.WindowMinutes < 1 || a.WindowMinutes > 60 {
		return fmt.Errorf("analysis.window_minutes must be between 1 and 60, got %d", a.WindowMinutes)
	}
	if a.MinOccurrences < 1 {
		return fmt.Errorf("analysis.min_occurrences must be at least 1, got %d", a.MinOccurrences)
	}
	if a.ConsistencyThreshold < 0 || a.ConsistencyThreshold > 1 {
		return fmt.Errorf("analysis.consistency_threshold must be in [0, 1], got %g", a.ConsistencyThreshold)
	}
	if a.LookbackDays < 1 {
		return fmt.Errorf("analysis.lookback_days must be at least 1, got %d", a.LookbackDays)
	}
	if err := validateMode("filters.user_mode", c.Filters.UserMode); err != nil {
		return err
	}
	if err := validateMode("filters.domain_mode", c.Filters.DomainMode); err != nil {
		return err
	}
	if c.Stale.ThresholdDays < 1 {
		return fmt.Errorf("stale.threshold_days must be at least 1, got %d", c.Stale.ThresholdDays)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port, got %d", c.Server.Port)
	}
	return nil
}

func validateMode(field, mode string) error {
	if mode != FilterModeExclude && mode != FilterModeInclude {
		return fmt.Errorf("%s must be %q or %q, got %q", field, FilterModeExclude, FilterModeInclude, mode)
	}
	return nil
}

// PatternFilters converts the configured filter lists into the
// classifier's filter sets.
func (f Filters) PatternFilters() pattern.Filters {
	var pf pattern.Filters
	if f.UserMode == FilterModeInclude {
		pf.IncludedUsers = pattern.NewFilterSet(f.Users)
	} else {
		pf.ExcludedUsers = pattern.NewFilterSet(f.Users)
	}
	if f.DomainMode == FilterModeInclude {
		pf.IncludedDomains = pattern.NewFilterSet(f.Domains)
	} else {
		pf.ExcludedDomains = pattern.NewFilterSet(f.Domains)
	}
	return pf
}

// AnalyzeOptions converts the analysis section into pipeline options.
func (c *Config) AnalyzeOptions() pattern.Options {
	return pattern.Options{
		TrackedDomains:       c.Analysis.TrackedDomains,
		MinOccurrences:       c.Analysis.MinOccurrences,
		ConsistencyThreshold: c.Analysis.ConsistencyThreshold,
		WindowMinutes:        c.Analysis.WindowMinutes,
		Filters:              c.Filters.PatternFilters(),
	}
}
