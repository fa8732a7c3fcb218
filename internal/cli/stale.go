package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/routinely/routinely/internal/logbook"
	"github.com/routinely/routinely/internal/pattern"
	"github.com/routinely/routinely/internal/store"
)

var (
	staleStatesPath string
	staleThreshold  int
	staleJSON       bool
	staleAll        bool
)

var staleCmd = &cobra.Command{
	Use:   "stale",
	Short: "Report automations that have gone dormant",
	Long: `Scan an automation state snapshot and report automations that
have not fired within the staleness threshold. Automations that never
fired are always reported unless an ignore pattern matches them.

Example:
  routinely stale --states states.json
  routinely stale --states states.json --threshold 60`,
	RunE: runStale,
}

func init() {
	staleCmd.Flags().StringVar(&staleStatesPath, "states", "", "Path to the automation state snapshot (required)")
	staleCmd.Flags().IntVar(&staleThreshold, "threshold", 0, "Staleness threshold in days (0 uses config)")
	staleCmd.Flags().BoolVar(&staleJSON, "json", false, "Emit the report as JSON")
	staleCmd.Flags().BoolVar(&staleAll, "all", false, "Include dismissed stale automations")
	_ = staleCmd.MarkFlagRequired("states")

	rootCmd.AddCommand(staleCmd)
}

func runStale(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, staleJSON); err != nil {
		return err
	}

	states, err := logbook.ReadAutomationStates(staleStatesPath)
	if err != nil {
		return err
	}

	threshold := cfg.Stale.ThresholdDays
	if staleThreshold > 0 {
		threshold = staleThreshold
	}

	report := pattern.DetectStale(states, threshold, cfg.Stale.IgnorePatterns, time.Now().UTC())

	if !staleAll {
		dismissed, err := loadDismissed(cfg, store.KindStale)
		if err != nil {
			return err
		}
		kept := report[:0]
		for _, s := range report {
			if !dismissed[s.AutomationID] {
				kept = append(kept, s)
			}
		}
		report = kept
	}

	if staleJSON {
		return json.NewEncoder(os.Stdout).Encode(report)
	}

	if len(report) == 0 {
		fmt.Println("No stale automations found.")
		return nil
	}

	for _, s := range report {
		state := "enabled"
		if s.IsDisabled {
			state = "disabled"
		}
		if s.LastTriggered == "" {
			fmt.Printf("%s (%s): never triggered [%s]\n", s.FriendlyName, s.AutomationID, state)
			continue
		}
		fmt.Printf("%s (%s): idle %d days, last %s [%s]\n",
			s.FriendlyName, s.AutomationID, s.DaysSinceTriggered, s.LastTriggered, state)
	}
	return nil
}
