package commands

import (
	"fmt"
	"os"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/packages"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/analyzer"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/packager"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// Default image of generated packages
const (
	DefaultImage    = "rocker/verse"
	DefaultRVersion = "4.3.1"
)

// PackageCommandHandler encapsulates logic for building reproducibility packages via CLI.
type PackageCommandHandler struct {
	analyzer reproducibility.StaticAnalyzer
	builder  packages.Builder
	logger   logger.Logger
}

// NewPackageCommandHandler initializes and returns a PackageCommandHandler instance
func NewPackageCommandHandler() (*PackageCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	staticAnalyzer, err := analyzer.NewStaticAnalyzer(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create static analyzer: %w", err)
	}

	builder, err := packager.NewBuilder(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create package builder: %w", err)
	}

	return &PackageCommandHandler{
		analyzer: staticAnalyzer,
		builder:  builder,
		logger:   loggerInstance,
	}, nil
}

// PackageCmd builds the package of a notebook file from its statically detected dependencies
func (commandHandler *PackageCommandHandler) PackageCmd(cmd *cobra.Command, _ []string) error {
	filePath, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("invalid file flag: %w", err)
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("invalid output flag: %w", err)
	}
	image, err := cmd.Flags().GetString("image")
	if err != nil {
		return fmt.Errorf("invalid image flag: %w", err)
	}
	rVersion, err := cmd.Flags().GetString("r-version")
	if err != nil {
		return fmt.Errorf("invalid r-version flag: %w", err)
	}
	if outputPath == "" {
		return fmt.Errorf("--output is required")
	}

	content, title, err := readNotebook(filePath)
	if err != nil {
		return err
	}

	contentHash := notebooks.ContentHash(content, image+":"+rVersion)
	archive, err := commandHandler.builder.Build(&packages.BuildSpec{
		Title:        title,
		Content:      content,
		Image:        image,
		RVersion:     rVersion,
		ContentHash:  contentHash,
		Dependencies: commandHandler.analyzer.Dependencies(content),
	})
	if err != nil {
		return fmt.Errorf("failed to build package: %w", err)
	}

	if err := os.WriteFile(outputPath, archive, 0600); err != nil {
		return fmt.Errorf("failed to write package: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Package saved to %s (%d bytes, content hash %s)\n", outputPath, len(archive), contentHash)
	return err
}

// InitPackageCommands registers package-related commands
func InitPackageCommands(rootCmd *cobra.Command) error {
	handler, err := NewPackageCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create package command handler: %w", err)
	}

	packageCmd := &cobra.Command{
		Use:   "package",
		Short: "Build a reproducibility package (Dockerfile, Makefile, manifest) for a notebook",
		RunE:  handler.PackageCmd,
	}
	packageCmd.Flags().StringP("file", "", "", "Path to the .Rmd or .R file")
	packageCmd.Flags().StringP("output", "", "", "Path of the zip archive to write")
	packageCmd.Flags().StringP("image", "", DefaultImage, "Base image of the generated Dockerfile")
	packageCmd.Flags().StringP("r-version", "", DefaultRVersion, "R version tag of the base image")
	rootCmd.AddCommand(packageCmd)

	return nil
}
