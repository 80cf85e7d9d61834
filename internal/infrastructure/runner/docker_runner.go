package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/rmd"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/config"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/executor"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"
)

// DockerRunner renders notebooks in the configured R image. It implements
// executions.Runner and reproducibility.DependencyTracer.
type DockerRunner struct {
	executor executor.Executor
	settings *config.DockerSettings
	logger   logger.Logger
}

// NewDockerRunner creates a new instance of DockerRunner
func NewDockerRunner(cmdExecutor executor.Executor, settings *config.DockerSettings, logger logger.Logger) (*DockerRunner, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid docker settings: %w", err)
	}

	return &DockerRunner{
		executor: cmdExecutor,
		settings: settings,
		logger:   logger,
	}, nil
}

// Render knits content to HTML inside a container.
func (r *DockerRunner) Render(ctx context.Context, title, content string) (*executions.RenderResult, error) {
	dir, err := r.prepare(title, content)
	if err != nil {
		return nil, err
	}
	defer r.cleanup(dir)

	r.logger.Info("Rendering notebook in ", r.settings.ImageRef())
	res, err := r.run(ctx, dir, "Rscript", "-e", renderScript)
	result := &executions.RenderResult{Log: combinedLog(res)}
	if err != nil {
		return result, err
	}

	html, err := os.ReadFile(filepath.Join(dir, outputFile))
	if err != nil {
		return result, apperr.Wrap(apperr.CodeExecutionFailed, err, "render produced no output")
	}
	result.HTML = html

	return result, nil
}

// Trace runs content in a fresh R session and returns the packages it loaded with their versions.
func (r *DockerRunner) Trace(ctx context.Context, title, content string) ([]reproducibility.Dependency, error) {
	dir, err := r.prepare(title, content)
	if err != nil {
		return nil, err
	}
	defer r.cleanup(dir)

	if err := os.WriteFile(filepath.Join(dir, captureFile), []byte(captureScript), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write capture script: %w", err)
	}

	r.logger.Info("Tracing notebook dependencies in ", r.settings.ImageRef())
	script := fmt.Sprintf("Rscript -e %q && Rscript %s", purlScript, captureFile)
	if _, err := r.run(ctx, dir, "sh", "-c", script); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, dependenciesFile))
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeExecutionFailed, err, "dependency trace produced no output")
	}
	defer f.Close()

	deps, err := ParseDependencies(f)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeExecutionFailed, err, "invalid dependency trace")
	}

	r.logger.Info("Traced ", len(deps), " dependencies")
	return deps, nil
}

// prepare creates a work directory holding the renderable notebook.
func (r *DockerRunner) prepare(title, content string) (string, error) {
	doc, _, err := rmd.Renderable(title, content)
	if err != nil {
		return "", fmt.Errorf("failed to prepare notebook: %w", err)
	}

	dir, err := os.MkdirTemp(r.settings.WorkDir, "rnb-")
	if err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	// The container user is not necessarily the service user.
	if err := os.Chmod(dir, 0o777); err != nil {
		r.cleanup(dir)
		return "", fmt.Errorf("failed to open work directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, notebookFile), []byte(doc), 0o644); err != nil {
		r.cleanup(dir)
		return "", fmt.Errorf("failed to write notebook: %w", err)
	}
	return dir, nil
}

func (r *DockerRunner) cleanup(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		r.logger.Warn("Failed to remove work directory ", dir, ": ", err)
	}
}

// run executes command in a container with dir mounted as the work directory.
func (r *DockerRunner) run(ctx context.Context, dir string, command ...string) (*executor.Result, error) {
	args := r.dockerArgs(dir, command...)

	res, err := r.executor.Execute(ctx, r.settings.Binary, args, r.executeOptions()...)
	switch {
	case err == nil:
		r.logger.Debug("Container finished in ", res.Duration)
		return res, nil
	case errors.Is(err, executor.ErrTimeout):
		r.logger.Warn("Container timed out after ", r.settings.Timeout)
		return res, apperr.Wrap(apperr.CodeExecutionFailed, err, "execution timed out")
	case errors.Is(err, exec.ErrNotFound):
		return res, apperr.Wrap(apperr.CodeUnavailable, err, "docker is not available")
	case ctx.Err() != nil:
		return res, fmt.Errorf("execution cancelled: %w", err)
	case daemonUnreachable(res, err):
		r.logger.Warn("Docker daemon is not reachable: ", err)
		return res, apperr.Wrap(apperr.CodeUnavailable, err, "docker daemon is not reachable")
	default:
		r.logger.Warn("Container failed: ", err)
		return res, apperr.Wrap(apperr.CodeExecutionFailed, err, "render failed")
	}
}

func (r *DockerRunner) executeOptions() []executor.Option {
	opts := []executor.Option{executor.WithTimeout(r.settings.Timeout)}
	if r.settings.Host != "" {
		opts = append(opts, executor.WithEnv("DOCKER_HOST", r.settings.Host))
	}
	if r.settings.Retries > 0 {
		opts = append(opts,
			executor.WithRetry(r.settings.Retries, r.settings.RetryDelay),
			executor.WithRetryOn(daemonUnreachable))
	}
	return opts
}

// dockerErrorExitCode is the exit code of the docker client for errors of its own.
const dockerErrorExitCode = 125

var daemonErrorMarkers = []string{
	"Cannot connect to the Docker daemon",
	"error during connect",
	"connection refused",
	"i/o timeout",
	"TLS handshake timeout",
}

// daemonUnreachable reports whether a failed docker call never got to run the container.
func daemonUnreachable(res *executor.Result, err error) bool {
	if err == nil || res == nil || res.ExitCode != dockerErrorExitCode {
		return false
	}
	for _, marker := range daemonErrorMarkers {
		if strings.Contains(res.Stderr, marker) {
			return true
		}
	}
	return false
}

func (r *DockerRunner) dockerArgs(dir string, command ...string) []string {
	args := []string{"run", "--rm"}

	network := r.settings.Network
	if network == "" {
		network = config.DockerNetworkNone
	}
	args = append(args, "--network", network)

	if r.settings.Memory != "" {
		args = append(args, "--memory", r.settings.Memory)
	}
	if r.settings.CPUs != "" {
		args = append(args, "--cpus", r.settings.CPUs)
	}

	args = append(args,
		"--volume", dir+":"+containerWorkDir,
		"--workdir", containerWorkDir,
		r.settings.ImageRef(),
	)
	return append(args, command...)
}

func combinedLog(res *executor.Result) string {
	if res == nil {
		return ""
	}
	log := strings.TrimSpace(res.Stdout)
	if stderr := strings.TrimSpace(res.Stderr); stderr != "" {
		if log != "" {
			log += "\n"
		}
		log += stderr
	}
	return executor.Tail(log, executions.MaxLogSize)
}
