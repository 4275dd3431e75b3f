package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/hermes/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Environment variable overriding the configured bus URL.
const envBusURL = "HERMES_BUS_URL"

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		busURL     string
		envFile    string
	}
	logger   *slog.Logger
	logLevel = new(slog.LevelVar)
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hermesctl",
	Short: "Command line client for the hermes bus",
	Long: `hermesctl inspects and drives a hermes bus.

It lists the functions exported by libhermes, publishes and streams raw
bus messages, runs an interactive monitor and can act as the audio server
of a site.

The bus is taken from --bus, then $HERMES_BUS_URL (also read from .env),
then the config file.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadDotEnv(globalOpts.envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", globalOpts.envFile, err)
		}

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if url := resolveBusURL(globalOpts.busURL, os.Getenv(envBusURL), cfg.Bus.URL); url != cfg.Bus.URL {
			cfg.Bus.URL = url
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		setupLogger()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/hermes/hermes.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.busURL, "bus", "",
		"Bus URL (mem://name, dbus://session, redis://host:port/db, kafka://brokers/topic)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.envFile, "env-file", ".env",
		"Environment file loaded before the config")
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// resolveBusURL returns the first non-empty candidate.
func resolveBusURL(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return config.DefaultBusURL
}

// setupLogger builds the logger from the config. Logs go to stderr so
// stdout is clean for output.
func setupLogger() {
	logger = cfg.Log.NewLogger(os.Stderr, logLevel)
	if globalOpts.verbose {
		logLevel.Set(slog.LevelDebug)
	}
	slog.SetDefault(logger)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
