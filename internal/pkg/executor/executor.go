// Package executor runs external programs (docker, Rscript) with output
// capture, environment handling, retries and context cancellation.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"
)

// ErrTimeout is returned when a command exceeds its timeout.
var ErrTimeout = errors.New("command timed out")

// Result holds the output and exit status of a command execution
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Executor runs a program with arguments.
type Executor interface {
	// Execute runs program with args and returns the captured result.
	// A non-zero exit status is reported as an error together with the result.
	Execute(ctx context.Context, program string, args []string, opts ...Option) (*Result, error)
}

// Options configures command execution behavior
type Options struct {
	// Env is appended to the current environment
	Env     map[string]string
	Timeout time.Duration

	MaxRetries int
	RetryDelay time.Duration
	RetryOn    func(*Result, error) bool
}

// Option is a function that modifies Options
type Option func(*Options)

// WithEnv adds an environment variable.
func WithEnv(key, value string) Option {
	return func(o *Options) { o.Env[key] = value }
}

// WithTimeout bounds the execution time of a single attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) { o.Timeout = timeout }
}

// WithRetry retries failed attempts up to maxRetries times.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(o *Options) {
		o.MaxRetries = maxRetries
		o.RetryDelay = delay
	}
}

// WithRetryOn restricts retries to failures accepted by fn.
func WithRetryOn(fn func(*Result, error) bool) Option {
	return func(o *Options) { o.RetryOn = fn }
}

// DefaultOptions returns default execution options
func DefaultOptions() *Options {
	return &Options{
		Env:        make(map[string]string),
		RetryDelay: time.Second,
	}
}

// CommandExecutor implements Executor on top of os/exec.
type CommandExecutor struct{}

// New creates a new CommandExecutor
func New() *CommandExecutor {
	return &CommandExecutor{}
}

// Execute implements the Executor interface
func (c *CommandExecutor) Execute(ctx context.Context, program string, args []string, opts ...Option) (*Result, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	maxAttempts := options.MaxRetries + 1
	var (
		result *Result
		err    error
	)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err = c.executeOnce(ctx, program, args, options)
		if err == nil || attempt == maxAttempts {
			break
		}
		if errors.Is(err, context.Canceled) {
			break
		}
		if options.RetryOn != nil && !options.RetryOn(result, err) {
			break
		}

		select {
		case <-ctx.Done():
			return result, fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		case <-time.After(options.RetryDelay):
		}
	}

	return result, err
}

func (c *CommandExecutor) executeOnce(ctx context.Context, program string, args []string, options *Options) (*Result, error) {
	runCtx := ctx
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, program, args...)
	if len(options.Env) > 0 {
		cmd.Env = append(os.Environ(), envPairs(options.Env)...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(cmd, runErr),
		Duration: time.Since(start),
	}

	switch {
	case runErr == nil:
		return result, nil
	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		return result, fmt.Errorf("%s after %s: %w", program, options.Timeout, ErrTimeout)
	case ctx.Err() != nil:
		return result, fmt.Errorf("%s: %w", program, ctx.Err())
	default:
		return result, fmt.Errorf("%s exited with code %d: %w", program, result.ExitCode, runErr)
	}
}

func exitCode(cmd *exec.Cmd, err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if err != nil {
		return -1
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return 0
}

func envPairs(env map[string]string) []string {
	pairs := make([]string, 0, len(env))
	for k, v := range env {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}

// Tail returns at most max bytes from the end of s, cut at a line boundary when possible.
func Tail(s string, max int) string {
	if len(s) <= max {
		return s
	}
	tail := s[len(s)-max:]
	if i := strings.IndexByte(tail, '\n'); i >= 0 && i < len(tail)-1 {
		tail = tail[i+1:]
	}
	return tail
}
