package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/routinely/routinely/internal/config"
	"github.com/routinely/routinely/internal/logbook"
	"github.com/routinely/routinely/internal/pattern"
	"github.com/routinely/routinely/internal/store"
)

var (
	analyzeEntriesPath string
	analyzeJSON        bool
	analyzeAll         bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Mine a logbook export for automation candidates",
	Long: `Analyze a logbook export (JSON array or JSON-Lines) and print
ranked automation suggestions.

Example:
  routinely analyze --entries logbook.json
  routinely analyze --entries logbook.jsonl --json`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeEntriesPath, "entries", "", "Path to the logbook export (required)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Emit suggestions as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeAll, "all", false, "Include dismissed suggestions")
	_ = analyzeCmd.MarkFlagRequired("entries")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, analyzeJSON); err != nil {
		return err
	}

	entries, err := logbook.ReadEntries(analyzeEntriesPath)
	if err != nil {
		return err
	}

	opts := cfg.AnalyzeOptions()
	if !analyzeAll {
		dismissed, err := loadDismissed(cfg, store.KindSuggestion)
		if err != nil {
			return err
		}
		opts.Dismissed = dismissed
	}

	suggestions := pattern.Analyze(entries, opts)

	if analyzeJSON {
		return json.NewEncoder(os.Stdout).Encode(suggestions)
	}

	if len(suggestions) == 0 {
		fmt.Println("No automation candidates found.")
		return nil
	}

	for _, s := range suggestions {
		fmt.Println(s.Description())
		fmt.Printf("    id: %s  window: %s-%s  last seen: %s\n",
			s.ID, s.TimeWindowStart, s.TimeWindowEnd, s.LastOccurrence)
	}
	return nil
}

// loadDismissed fetches one dismissal set from the configured store.
func loadDismissed(cfg *config.Config, kind string) (map[string]bool, error) {
	st, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = st.Close() }()
	return st.Dismissed(kind)
}
