package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/htmldiff"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// DiffCommandHandler encapsulates logic for comparing rendered outputs via CLI.
type DiffCommandHandler struct {
	differ reproducibility.OutputDiffer
	logger logger.Logger
}

// NewDiffCommandHandler initializes and returns a DiffCommandHandler instance
func NewDiffCommandHandler() (*DiffCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	differ, err := htmldiff.NewOutputDiffer(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create output differ: %w", err)
	}

	return &DiffCommandHandler{
		differ: differ,
		logger: loggerInstance,
	}, nil
}

// DiffCmd compares two rendered HTML files and prints a summary, optionally
// writing the rendered diff page
func (commandHandler *DiffCommandHandler) DiffCmd(cmd *cobra.Command, _ []string) error {
	basePath, err := cmd.Flags().GetString("base")
	if err != nil {
		return fmt.Errorf("invalid base flag: %w", err)
	}
	headPath, err := cmd.Flags().GetString("head")
	if err != nil {
		return fmt.Errorf("invalid head flag: %w", err)
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("invalid output flag: %w", err)
	}
	if basePath == "" || headPath == "" {
		return fmt.Errorf("--base and --head are required")
	}

	base, err := os.ReadFile(filepath.Clean(basePath))
	if err != nil {
		return fmt.Errorf("failed to read base output: %w", err)
	}
	head, err := os.ReadFile(filepath.Clean(headPath))
	if err != nil {
		return fmt.Errorf("failed to read head output: %w", err)
	}

	diff, err := commandHandler.differ.Diff(base, head)
	if err != nil {
		return fmt.Errorf("failed to compare outputs: %w", err)
	}

	out := cmd.OutOrStdout()
	if diff.Identical {
		fmt.Fprintln(out, "Outputs are identical")
	} else {
		fmt.Fprintf(out, "%d blocks added, %d removed in %d hunks\n", diff.Added, diff.Removed, len(diff.Hunks))
	}

	if outputPath == "" {
		return nil
	}

	page, err := commandHandler.differ.RenderHTML(diff, filepath.Base(basePath)+" vs "+filepath.Base(headPath))
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, page, 0600); err != nil {
		return fmt.Errorf("failed to write diff page: %w", err)
	}
	fmt.Fprintln(out, "Diff saved to", outputPath)
	return nil
}

// InitDiffCommands registers diff-related commands
func InitDiffCommands(rootCmd *cobra.Command) error {
	handler, err := NewDiffCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create diff command handler: %w", err)
	}

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare two rendered HTML outputs of a notebook",
		RunE:  handler.DiffCmd,
	}
	diffCmd.Flags().StringP("base", "", "", "Path to the older HTML output")
	diffCmd.Flags().StringP("head", "", "", "Path to the newer HTML output")
	diffCmd.Flags().StringP("output", "", "", "Optional path of the rendered HTML diff page")
	rootCmd.AddCommand(diffCmd)

	return nil
}
