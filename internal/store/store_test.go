package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "routinely.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, dbPath
}

func TestDismissAndQuery(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Dismiss("light_kitchen_turn_on_07_00", KindSuggestion); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if err := s.Dismiss("automation.morning_lights", KindStale); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}

	suggestions, err := s.Dismissed(KindSuggestion)
	if err != nil {
		t.Fatalf("Dismissed: %v", err)
	}
	if len(suggestions) != 1 || !suggestions["light_kitchen_turn_on_07_00"] {
		t.Errorf("suggestion dismissals = %v", suggestions)
	}

	// Kinds are separate namespaces.
	stale, err := s.Dismissed(KindStale)
	if err != nil {
		t.Fatalf("Dismissed: %v", err)
	}
	if len(stale) != 1 || !stale["automation.morning_lights"] {
		t.Errorf("stale dismissals = %v", stale)
	}
	if suggestions["automation.morning_lights"] {
		t.Error("stale dismissal leaked into suggestion kind")
	}
}

func TestDismissDuplicate(t *testing.T) {
	s, _ := newTestStore(t)

	for i := 0; i < 3; i++ {
		if err := s.Dismiss("some_id", KindSuggestion); err != nil {
			t.Fatalf("Dismiss #%d: %v", i, err)
		}
	}

	dismissed, err := s.Dismissed(KindSuggestion)
	if err != nil {
		t.Fatalf("Dismissed: %v", err)
	}
	if len(dismissed) != 1 {
		t.Errorf("got %d dismissals, want 1", len(dismissed))
	}
}

func TestDismissValidation(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Dismiss("", KindSuggestion); err == nil {
		t.Error("empty id should be rejected")
	}
	if err := s.Dismiss("some_id", "bogus"); err == nil {
		t.Error("unknown kind should be rejected")
	}
}

func TestRestore(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Dismiss("some_id", KindSuggestion); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if err := s.Restore("some_id"); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	dismissed, err := s.Dismissed(KindSuggestion)
	if err != nil {
		t.Fatalf("Dismissed: %v", err)
	}
	if len(dismissed) != 0 {
		t.Errorf("restored id still present: %v", dismissed)
	}

	// Restoring an unknown id is fine.
	if err := s.Restore("never_dismissed"); err != nil {
		t.Errorf("Restore of unknown id: %v", err)
	}
}

func TestClear(t *testing.T) {
	s, _ := newTestStore(t)

	_ = s.Dismiss("a", KindSuggestion)
	_ = s.Dismiss("b", KindStale)

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	for _, kind := range []string{KindSuggestion, KindStale} {
		dismissed, err := s.Dismissed(kind)
		if err != nil {
			t.Fatalf("Dismissed(%s): %v", kind, err)
		}
		if len(dismissed) != 0 {
			t.Errorf("%s dismissals survived clear: %v", kind, dismissed)
		}
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "routinely.db")

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.Dismiss("some_id", KindSuggestion); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	dismissed, err := reopened.Dismissed(KindSuggestion)
	if err != nil {
		t.Fatalf("Dismissed: %v", err)
	}
	if !dismissed["some_id"] {
		t.Errorf("dismissal lost across reopen: %v", dismissed)
	}
}

func TestCreatesParentDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "deeper", "routinely.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	_ = s.Close()
}
