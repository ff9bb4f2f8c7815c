package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/san-kum/memsim/internal/config"
	"github.com/san-kum/memsim/internal/sim"
	"github.com/san-kum/memsim/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	backend  string
	logLevel string
	envFile  string

	logger   *slog.Logger
	settings config.Settings
)

// main registers the memsim commands and exits with status 1 if the
// selected command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "memsim",
		Short:         "memristor device simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default $"+config.EnvDataDir+" or "+config.DefaultDataDir+")")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "storage backend: file or sqlite")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with MEMSIM_* settings")

	rootCmd.AddCommand(
		newRunCmd(),
		newPresetsCmd(),
		newModelsCmd(),
		newListCmd(),
		newPlotCmd(),
		newViewCmd(),
		newAnalyzeCmd(),
		newExportCmd(),
		newDeleteCmd(),
		newSweepCmd(),
		newCompareCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup resolves settings with flags over environment over defaults and
// installs the logger.
func setup(cmd *cobra.Command) error {
	s, err := config.LoadSettings(envFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		s.DataDir = dataDir
	}
	if flags.Changed("backend") {
		s.Backend = backend
	}
	if flags.Changed("log-level") {
		s.LogLevel = logLevel
	}
	settings = s

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: s.Level()}))
	slog.SetDefault(logger)
	return nil
}

func newSimulator() *sim.Simulator {
	return sim.New(sim.NewRegistry(), sim.WithLogger(logger))
}

func openStore() (storage.Store, error) {
	return storage.Open(settings.Backend, settings.DataDir, logger)
}
