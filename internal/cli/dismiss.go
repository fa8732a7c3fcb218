package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/routinely/routinely/internal/store"
)

var dismissStale bool

var dismissCmd = &cobra.Command{
	Use:   "dismiss <id>",
	Short: "Dismiss a suggestion or stale automation",
	Long: `Dismiss a suggestion (or, with --stale, a stale automation) by its
identifier so future runs stop reporting it.

Example:
  routinely dismiss light_kitchen_turn_on_07_00
  routinely dismiss --stale automation.old_backup`,
	Args: cobra.ExactArgs(1),
	RunE: runDismiss,
}

var dismissListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dismissed identifiers",
	RunE:  runDismissList,
}

var dismissClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all dismissals",
	RunE:  runDismissClear,
}

func init() {
	dismissCmd.Flags().BoolVar(&dismissStale, "stale", false, "Treat the id as a stale automation")
	dismissCmd.AddCommand(dismissListCmd)
	dismissCmd.AddCommand(dismissClearCmd)

	rootCmd.AddCommand(dismissCmd)
}

func openStore() (*store.SQLiteStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := setupLogging(cfg, false); err != nil {
		return nil, err
	}
	return store.NewSQLiteStore(cfg.Store.Path)
}

func runDismiss(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	kind := store.KindSuggestion
	if dismissStale {
		kind = store.KindStale
	}
	if err := st.Dismiss(args[0], kind); err != nil {
		return err
	}
	fmt.Printf("Dismissed %s (%s)\n", args[0], kind)
	return nil
}

func runDismissList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	for _, kind := range []string{store.KindSuggestion, store.KindStale} {
		dismissed, err := st.Dismissed(kind)
		if err != nil {
			return err
		}
		if len(dismissed) == 0 {
			continue
		}

		ids := make([]string, 0, len(dismissed))
		for id := range dismissed {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Printf("%s:\n", kind)
		for _, id := range ids {
			fmt.Printf("  %s\n", id)
		}
	}
	return nil
}

func runDismissClear(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Clear(); err != nil {
		return err
	}
	fmt.Println("Cleared all dismissals")
	return nil
}
