// Package main provides a CLI for the Firstbeat Sports Cloud API.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/firstbeat/firstbeat-go/firstbeat"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Global flags
	apiURL       string
	consumerID   string
	sharedSecret string
	configFile   string
	jsonOutput   bool
	verbose      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "firstbeat",
	Short: "Firstbeat Sports Cloud API CLI",
	Long: `A command-line client for the Firstbeat Sports Cloud API.

This tool allows you to:
  - Register a new API consumer
  - Generate bearer tokens for external tooling
  - List accounts, coaches, teams, athletes, and measurements
  - Fetch analysis results for a measurement

Environment variables:
  FIRSTBEAT_API           - API base URL (default: https://api.firstbeat.com)
  FIRSTBEAT_CONSUMER_ID   - Consumer ID from registration
  FIRSTBEAT_SHARED_SECRET - Shared secret from registration`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (or FIRSTBEAT_API env)")
	rootCmd.PersistentFlags().StringVar(&consumerID, "consumer-id", "", "Consumer ID (or FIRSTBEAT_CONSUMER_ID env)")
	rootCmd.PersistentFlags().StringVar(&sharedSecret, "shared-secret", "", "Shared secret (or FIRSTBEAT_SHARED_SECRET env)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file (default: ~/.firstbeat.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(coachesCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(athletesCmd)
	rootCmd.AddCommand(measurementsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(quickstartCmd)
}

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// newClient resolves credentials from flags, environment, and config file,
// prompting for a missing shared secret when stdin is a terminal.
func newClient() (*firstbeat.Client, error) {
	creds, err := resolveCredentials()
	if err != nil {
		return nil, err
	}

	if creds.SharedSecret == "" && term.IsTerminal(int(syscall.Stdin)) {
		fmt.Fprint(os.Stderr, "Shared secret: ")
		secretBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("failed to read shared secret: %w", err)
		}
		creds.SharedSecret = string(secretBytes)
	}

	if creds.ConsumerID == "" || creds.SharedSecret == "" {
		return nil, fmt.Errorf("missing credentials: provide --consumer-id and --shared-secret, " +
			"set FIRSTBEAT_CONSUMER_ID and FIRSTBEAT_SHARED_SECRET, or use a config file")
	}

	return firstbeat.NewClient(creds.ConsumerID, creds.SharedSecret,
		firstbeat.WithBaseURL(creds.API),
		firstbeat.WithLogger(newLogger()),
	), nil
}

// newAnonymousClient creates a client without credentials, for registration.
func newAnonymousClient() (*firstbeat.Client, error) {
	creds, err := resolveCredentials()
	if err != nil {
		return nil, err
	}
	return firstbeat.NewClient("", "",
		firstbeat.WithBaseURL(creds.API),
		firstbeat.WithLogger(newLogger()),
	), nil
}
