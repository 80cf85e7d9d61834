// Package main is the entry point for the rnotebook-cli application.
// It registers the offline notebook commands (analyze, package, diff) and
// executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/chumaana/reproducible-notebook-app-sub000/cmd/rnotebook-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "rnotebook-cli",
		Short: "Reproducibility tooling for R notebooks",
		Long: `rnotebook-cli works on local R Markdown notebooks and R scripts without the REST service.
It reports reproducibility risks, builds reproducibility packages (Dockerfile, Makefile,
dependency manifest) and compares two rendered HTML outputs.`,
		SilenceUsage: true,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitAnalyzeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize analyze commands: %w", err)
	}

	if err := commands.InitPackageCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize package commands: %w", err)
	}

	if err := commands.InitDiffCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize diff commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
