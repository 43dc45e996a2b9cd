package process

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// ErrNotRegistered is returned when running a program missing from the allow-list.
var ErrNotRegistered = errors.New("process not registered")

// Runner executes local programs.
// It follows a Strict Registry pattern for security (Allow-Listing): only
// registered programs run, and arguments are passed as argv, never through a shell.
type Runner struct {
	mu       sync.RWMutex
	registry map[string]Config
	baseDir  string
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRegistry populates the allow-list.
func WithRegistry(configs ...Config) RunnerOption {
	return func(r *Runner) {
		for _, c := range configs {
			r.registry[c.Name] = c
		}
	}
}

// WithBaseDir sets the default working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]Config),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted program to the allow-list, replacing any entry with the same name.
func (r *Runner) Register(cfg Config) {
	r.mu.Lock()
	r.registry[cfg.Name] = cfg
	r.mu.Unlock()
}

// Run executes the program registered as name with its configured args
// followed by extra. Every stdout line is passed to onLine as it is read.
// A non-zero exit is returned as an error carrying stderr.
func (r *Runner) Run(ctx context.Context, name string, extra []string, onLine func(string)) error {
	r.mu.RLock()
	cfg, ok := r.registry[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}

	args := append(append([]string(nil), cfg.Args...), extra...)
	cmd := exec.CommandContext(ctx, cfg.Command, args...)
	cmd.Dir = r.baseDir
	if cfg.Dir != "" {
		cmd.Dir = cfg.Dir
	}

	env := make([]string, 0, len(cfg.Environment))
	for k, v := range cfg.Environment {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Env = append(cmd.Environ(), env...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to attach stdout of %s: %w", name, err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if onLine != nil {
			onLine(scanner.Text())
		}
	}
	scanErr := scanner.Err()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("execution of %s failed: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	if scanErr != nil {
		return fmt.Errorf("failed to read output of %s: %w", name, scanErr)
	}
	return nil
}
