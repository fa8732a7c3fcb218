package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/routinely/routinely/internal/api"
	"github.com/routinely/routinely/internal/coordinator"
	"github.com/routinely/routinely/internal/logbook"
	"github.com/routinely/routinely/internal/logger"
	"github.com/routinely/routinely/internal/store"
)

var (
	serveEntriesPath string
	serveStatesPath  string
	servePort        int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run periodic analysis and serve results over HTTP",
	Long: `Run the analysis on the configured interval and expose the latest
suggestions and stale automations over a local REST API.

Example:
  routinely serve --entries logbook.json --states states.json`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveEntriesPath, "entries", "", "Path to the logbook export (required)")
	serveCmd.Flags().StringVar(&serveStatesPath, "states", "", "Path to the automation state snapshot")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (0 uses config)")
	_ = serveCmd.MarkFlagRequired("entries")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, false); err != nil {
		return err
	}

	st, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	source := logbook.FileSource{
		EntriesPath: serveEntriesPath,
		StatesPath:  serveStatesPath,
	}
	coord := coordinator.New(cfg, source, st)

	port := cfg.Server.Port
	if servePort > 0 {
		port = servePort
	}
	server := api.NewServer(coord, port, Version)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := coord.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("Analysis loop stopped")
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
