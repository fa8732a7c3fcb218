// Package cli implements the routinely command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/routinely/routinely/internal/config"
	"github.com/routinely/routinely/internal/logger"
)

// Version information set via ldflags
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	configFile string
	logLevel   string
	logFile    string
	projectDir string
)

var rootCmd = &cobra.Command{
	Use:   "routinely",
	Short: "Mine smart-home logs for automation candidates",
	Long: `Routinely analyzes logbook exports of device state changes,
separates manual actions from automated ones, and surfaces recurring
daily routines as ranked automation suggestions. It also reports
existing automations that have gone dormant.

Configure thresholds in:
  - ~/.routinely/config.yaml (global)
  - .routinely/config.yaml (project-specific)`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("routinely %s\n", Version)
		fmt.Printf("  commit: %s\n", Commit)
		fmt.Printf("  built:  %s\n", Date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Override config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Override log file path")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "p", "", "Override project directory")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the layered configuration, honoring the
// --config override.
func loadConfig() (*config.Config, error) {
	loader, err := config.NewLoader(projectDir)
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		return loader.LoadFromFile(configFile)
	}
	return loader.Load()
}

// setupLogging initializes the global logger from config plus flag
// overrides; quiet forces all output off for machine-readable modes.
func setupLogging(cfg *config.Config, quiet bool) error {
	if quiet {
		logger.InitQuiet()
		return nil
	}
	level := cfg.Settings.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	file := cfg.Settings.LogFile
	if logFile != "" {
		file = logFile
	}
	return logger.Init(level, file)
}
