// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the llm-sanitizer command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"llm-sanitizer/internal/config"
	"llm-sanitizer/internal/observability"
	"llm-sanitizer/internal/profiles"
	"llm-sanitizer/internal/sanitizer"
	"llm-sanitizer/internal/session"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
)

// globalFlags holds the persistent flag values shared by every command
type globalFlags struct {
	configFile  string
	vaultFile   string
	sessionFile string
	noColor     bool
	debug       bool
	quiet       bool
}

// app is the state resolved once per invocation in PersistentPreRunE
type app struct {
	flags    globalFlags
	cfg      *config.Config
	observer *observability.DebugObserver
	engine   *sanitizer.Engine
}

// NewRootCommand builds a fresh command tree. Each call returns independent
// state so tests can run commands side by side.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "llm-sanitizer",
		Short: "Replace sensitive terms and numbers before text goes to an LLM",
		Long: "llm-sanitizer swaps registered terms and numeric values for opaque placeholders " +
			"before text is sent to a language model, and puts the originals back in the response.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.flags.configFile, "config", "", "Path to configuration file (YAML)")
	flags.StringVar(&a.flags.vaultFile, "vault", "", "Path to the profile vault (.json or .yaml)")
	flags.StringVar(&a.flags.sessionFile, "session-file", "", "Path to the current numeric session")
	flags.BoolVar(&a.flags.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&a.flags.debug, "debug", false, "Log operation timings to stderr (never the text itself)")
	flags.BoolVar(&a.flags.quiet, "quiet", false, "Suppress summaries and hints")

	rootCmd.AddCommand(
		newSanitizeCommand(a),
		newRestoreCommand(a),
		newTermsCommand(a),
		newProfilesCommand(a),
		newSessionCommand(a),
		newUnitsCommand(a),
		newServeCommand(a),
		newVersionCommand(),
	)

	return rootCmd
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "%s %v\n", color.RedString("Error:"), err)
		return ExitError
	}
	return ExitSuccess
}

// setup loads .env and configuration, then applies the global flags on top
func (a *app) setup(cmd *cobra.Command) error {
	stderr := cmd.ErrOrStderr()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}

	a.cfg = loadConfiguration(a.flags.configFile, stderr)

	// Flags override config
	if !cmd.Flags().Changed("no-color") {
		a.flags.noColor = a.cfg.Defaults.NoColor
	}
	if !cmd.Flags().Changed("debug") {
		a.flags.debug = a.cfg.Defaults.Debug
	}
	if !cmd.Flags().Changed("quiet") {
		a.flags.quiet = a.cfg.Defaults.Quiet
	}
	if a.flags.noColor || !isTerminal(cmd.OutOrStdout()) {
		color.NoColor = true
	}

	var opts []sanitizer.Option
	if a.flags.debug {
		a.observer = observability.NewDebugObserver(stderr)
		opts = append(opts, sanitizer.WithObserver(a.observer.StandardObserver))
	}
	a.engine = sanitizer.New(opts...)
	return nil
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string, stderr io.Writer) *config.Config {
	cfg, err := config.LoadConfigOrDefault(configFile)
	if err != nil {
		fmt.Fprintf(stderr, "%s Error loading config file: %v\n", color.YellowString("Warning:"), err)
		fmt.Fprintf(stderr, "Using default configuration\n")
	}
	return cfg
}

// vaultStore opens the profile vault named by --vault or the configuration
func (a *app) vaultStore() *profiles.Store {
	if a.flags.vaultFile != "" {
		return profiles.NewStore(a.flags.vaultFile)
	}
	return profiles.NewStore(a.cfg.VaultFile())
}

// sessionStore opens the current-session slot
func (a *app) sessionStore() *session.Store {
	if a.flags.sessionFile != "" {
		return session.NewStore(a.flags.sessionFile)
	}
	return session.NewStore(a.cfg.SessionFile())
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
