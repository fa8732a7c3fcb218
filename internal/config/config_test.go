package config

import (
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Analysis.LookbackDays != 14 {
		t.Errorf("lookback = %d, want 14", cfg.Analysis.LookbackDays)
	}
	if cfg.Analysis.IntervalHours != 24 {
		t.Errorf("interval = %d, want 24", cfg.Analysis.IntervalHours)
	}
	if cfg.Analysis.WindowMinutes != 30 {
		t.Errorf("window = %d, want 30", cfg.Analysis.WindowMinutes)
	}
	if cfg.Analysis.MinOccurrences != 3 {
		t.Errorf("min occurrences = %d, want 3", cfg.Analysis.MinOccurrences)
	}
	if cfg.Analysis.ConsistencyThreshold != 0.70 {
		t.Errorf("consistency threshold = %v, want 0.70", cfg.Analysis.ConsistencyThreshold)
	}
	if cfg.Stale.ThresholdDays != 30 {
		t.Errorf("stale threshold = %d, want 30", cfg.Stale.ThresholdDays)
	}
	if cfg.Server.Port != 8742 {
		t.Errorf("port = %d, want 8742", cfg.Server.Port)
	}
	if cfg.Filters.UserMode != FilterModeExclude || cfg.Filters.DomainMode != FilterModeExclude {
		t.Errorf("filter modes = %q/%q, want exclude/exclude", cfg.Filters.UserMode, cfg.Filters.DomainMode)
	}
	if len(cfg.Analysis.TrackedDomains) == 0 {
		t.Error("tracked domains should have defaults")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"window too small", func(c *Config) { c.Analysis.WindowMinutes = 0 }, "window_minutes"},
		{"window too large", func(c *Config) { c.Analysis.WindowMinutes = 61 }, "window_minutes"},
		{"min occurrences zero", func(c *Config) { c.Analysis.MinOccurrences = 0 }, "min_occurrences"},
		{"threshold negative", func(c *Config) { c.Analysis.ConsistencyThreshold = -0.1 }, "consistency_threshold"},
		{"threshold above one", func(c *Config) { c.Analysis.ConsistencyThreshold = 1.1 }, "consistency_threshold"},
		{"lookback zero", func(c *Config) { c.Analysis.LookbackDays = 0 }, "lookback_days"},
		{"bad user mode", func(c *Config) { c.Filters.UserMode = "deny" }, "user_mode"},
		{"bad domain mode", func(c *Config) { c.Filters.DomainMode = "allow" }, "domain_mode"},
		{"stale threshold zero", func(c *Config) { c.Stale.ThresholdDays = 0 }, "threshold_days"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestPatternFilters(t *testing.T) {
	f := Filters{
		UserMode:   FilterModeExclude,
		Users:      []string{"user-abc"},
		DomainMode: FilterModeInclude,
		Domains:    []string{"mobile_app"},
	}

	pf := f.PatternFilters()
	if !pf.ExcludedUsers["user-abc"] {
		t.Error("excluded users not populated")
	}
	if pf.IncludedUsers != nil {
		t.Error("include set should be empty in exclude mode")
	}
	if !pf.IncludedDomains["mobile_app"] {
		t.Error("included domains not populated")
	}
	if pf.ExcludedDomains != nil {
		t.Error("exclude set should be empty in include mode")
	}
}

func TestAnalyzeOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analysis.MinOccurrences = 5
	cfg.Analysis.ConsistencyThreshold = 0.9

	opts := cfg.AnalyzeOptions()
	if opts.MinOccurrences != 5 || opts.ConsistencyThreshold != 0.9 {
		t.Errorf("options = %d/%v, want 5/0.9", opts.MinOccurrences, opts.ConsistencyThreshold)
	}
	if len(opts.TrackedDomains) != len(cfg.Analysis.TrackedDomains) {
		t.Error("tracked domains not carried over")
	}
}
