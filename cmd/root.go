package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chanctl/internal/apply"
	"chanctl/internal/config"
	"chanctl/internal/orchestrator"
	"chanctl/internal/plan"
	"chanctl/pkg/logging"
)

// Exit codes, chosen so scripts can tell "wrong config" from "the gateway
// rejected some of the updates".
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error.
	ExitCodeError = 1
	// ExitCodeConfigError indicates an invalid configuration document.
	ExitCodeConfigError = 2
	// ExitCodePartialApply indicates some, but not all, updates failed.
	ExitCodePartialApply = 3
)

var (
	flagConfigDir string
	flagLogLevel  string
	flagLogFile   string
	flagQuiet     bool

	// logFile stays open for the process lifetime when --log-file is set.
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "chanctl",
	Short: "Filter, update and reconcile channels on LLM gateway instances",
	Long: `chanctl manages upstream channel configurations on one-api family
gateway instances (newapi and voapi dialects). It filters channels by
name, group, model, tag or type, applies mode-aware field updates, copies
or compares configuration across instances, and snapshots every touched
channel before mutating it so any operation can be undone.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logging.ParseLevel(flagLogLevel)
		if flagLogFile != "" {
			f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			logFile = f
			logging.InitWithFile(level, cmd.ErrOrStderr(), f)
			return nil
		}
		logging.InitForCLI(level, cmd.ErrOrStderr())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
}

// SetVersion injects the build version from the main package.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the injected build version.
func GetVersion() string {
	return rootCmd.Version
}

// Execute runs the root command and exits with a semantic exit code.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "chanctl version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps error types onto the documented exit codes.
func getExitCode(err error) int {
	var configErr *plan.ConfigError
	if errors.As(err, &configErr) {
		return ExitCodeConfigError
	}
	var validationErr *config.ValidationError
	if errors.As(err, &validationErr) {
		return ExitCodeConfigError
	}
	if errors.Is(err, config.ErrNotFound) {
		return ExitCodeConfigError
	}
	var partial *apply.PartialError
	if errors.As(err, &partial) {
		return ExitCodePartialApply
	}
	return ExitCodeError
}

// newOrchestrator loads the application settings and wires the operation
// layer against the shared CLI flags.
func newOrchestrator(cmd *cobra.Command) (*orchestrator.Orchestrator, error) {
	app, err := config.LoadAppConfig(flagConfigDir)
	if err != nil {
		return nil, err
	}
	o := orchestrator.New(flagConfigDir, app)
	o.Out = cmd.OutOrStdout()
	o.In = cmd.InOrStdin()
	o.Quiet = flagQuiet
	return o, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", config.DefaultConfigPathOrPanic(),
		"directory holding chanctl.yaml and connections/")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "",
		"duplicate log output into this file")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false,
		"suppress progress output")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newFindKeyCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newCrossSiteCmd())
	rootCmd.AddCommand(newTestCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newMenuCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
