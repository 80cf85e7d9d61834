package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/rmd"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/config"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"
)

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelWarning,
		LogType:  config.LogTypeConsole,
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// readNotebook reads a notebook file and returns its content and title. The
// title comes from the front matter, or from the file name when there is none.
func readNotebook(path string) (string, string, error) {
	if path == "" {
		return "", "", fmt.Errorf("--file is required")
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", "", fmt.Errorf("failed to read notebook: %w", err)
	}
	content := string(data)

	title := rmd.Parse(content).Title()
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return content, title, nil
}
