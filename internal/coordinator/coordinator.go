// Package coordinator schedules analysis passes and caches the latest
// results for the CLI and the results API.
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/routinely/routinely/internal/config"
	"github.com/routinely/routinely/internal/logger"
	"github.com/routinely/routinely/internal/pattern"
	"github.com/routinely/routinely/internal/store"
)

// Source supplies the raw inputs for one analysis pass.
type Source interface {
	Entries(ctx context.Context) ([]pattern.LogEntry, error)
	AutomationStates(ctx context.Context) ([]pattern.AutomationState, error)
}

// Coordinator composes the source, the dismissal store and the core
// pipeline. All result accessors are safe for concurrent use with a
// running Refresh.
type Coordinator struct {
	cfg    *config.Config
	source Source
	store  store.DismissalStore

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time

	mu          sync.RWMutex
	suggestions []pattern.Suggestion
	stale       []pattern.StaleAutomation
	lastRun     time.Time
}

// New creates a coordinator. The store may be nil, in which case no
// dismissal filtering happens.
func New(cfg *config.Config, source Source, st store.DismissalStore) *Coordinator {
	return &Coordinator{
		cfg:    cfg,
		source: source,
		store:  st,
		now:    time.Now,
	}
}

// Refresh runs one full pass: suggestion mining plus stale-automation
// detection. Stale detection is best-effort; a bad snapshot degrades
// to an empty stale list with a warning, as a dormant-automation
// report should never block fresh suggestions.
func (c *Coordinator) Refresh(ctx context.Context) error {
	entries, err := c.source.Entries(ctx)
	if err != nil {
		return fmt.Errorf("loading log entries: %w", err)
	}

	dismissed, err := c.dismissed(store.KindSuggestion)
	if err != nil {
		return err
	}

	opts := c.cfg.AnalyzeOptions()
	opts.Dismissed = dismissed
	suggestions := pattern.Analyze(entries, opts)

	stales := c.detectStale(ctx)

	c.mu.Lock()
	c.suggestions = suggestions
	c.stale = stales
	c.lastRun = c.now()
	c.mu.Unlock()

	logger.Info().
		Int("suggestions", len(suggestions)).
		Int("stale_automations", len(stales)).
		Msg("Analysis pass complete")

	return nil
}

func (c *Coordinator) detectStale(ctx context.Context) []pattern.StaleAutomation {
	states, err := c.source.AutomationStates(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Skipping stale automation detection")
		return nil
	}
	if len(states) == 0 {
		return nil
	}

	dismissed, err := c.dismissed(store.KindStale)
	if err != nil {
		logger.Warn().Err(err).Msg("Skipping stale automation detection")
		return nil
	}

	all := pattern.DetectStale(states, c.cfg.Stale.ThresholdDays, c.cfg.Stale.IgnorePatterns, c.now().UTC())
	kept := make([]pattern.StaleAutomation, 0, len(all))
	for _, s := range all {
		if !dismissed[s.AutomationID] {
			kept = append(kept, s)
		}
	}
	return kept
}

func (c *Coordinator) dismissed(kind string) (map[string]bool, error) {
	if c.store == nil {
		return nil, nil
	}
	dismissed, err := c.store.Dismissed(kind)
	if err != nil {
		return nil, fmt.Errorf("loading dismissed %s ids: %w", kind, err)
	}
	return dismissed, nil
}

// Run refreshes immediately and then on the configured interval until
// the context ends.
func (c *Coordinator) Run(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		logger.Error().Err(err).Msg("Initial analysis pass failed")
	}

	interval := time.Duration(c.cfg.Analysis.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				logger.Error().Err(err).Msg("Analysis pass failed")
			}
		}
	}
}

// Suggestions returns a copy of the latest dismissal-filtered
// suggestions, in rank order.
func (c *Coordinator) Suggestions() []pattern.Suggestion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]pattern.Suggestion, len(c.suggestions))
	copy(out, c.suggestions)
	return out
}

// Stale returns a copy of the latest stale-automation report.
func (c *Coordinator) Stale() []pattern.StaleAutomation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]pattern.StaleAutomation, len(c.stale))
	copy(out, c.stale)
	return out
}

// LastRun returns when the last successful pass finished, or the zero
// time before the first one.
func (c *Coordinator) LastRun() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRun
}

// Dismiss records a dismissal and drops the item from the cached
// results so the change is visible without waiting for the next pass.
func (c *Coordinator) Dismiss(id, kind string) error {
	if c.store == nil {
		return fmt.Errorf("no dismissal store configured")
	}
	if err := c.store.Dismiss(id, kind); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	switch kind {
	case store.KindSuggestion:
		kept := c.suggestions[:0]
		for _, s := range c.suggestions {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		c.suggestions = kept
	case store.KindStale:
		kept := c.stale[:0]
		for _, s := range c.stale {
			if s.AutomationID != id {
				kept = append(kept, s)
			}
		}
		c.stale = kept
	}

	logger.Info().Str("id", id).Str("kind", kind).Msg("Dismissed item")
	return nil
}

// Restore removes a dismissal; the item reappears on the next pass.
func (c *Coordinator) Restore(id string) error {
	if c.store == nil {
		return fmt.Errorf("no dismissal store configured")
	}
	return c.store.Restore(id)
}

// ClearDismissals forgets every dismissal of both kinds.
func (c *Coordinator) ClearDismissals() error {
	if c.store == nil {
		return fmt.Errorf("no dismissal store configured")
	}
	return c.store.Clear()
}
