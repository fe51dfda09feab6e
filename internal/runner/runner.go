// Package runner launches the external AVL solver with generated
// geometry and pipes command scripts to its stdin. AVL is a black box
// here: this package owns process lifecycle and I/O plumbing only, never
// the interpretation of solver results (with the single exception of the
// neutral-point capture helper).
package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner locates and drives AVL processes.
type Runner struct {
	// Executable is an explicit AVL path; when empty, SearchPaths and
	// then $PATH are consulted.
	Executable  string
	SearchPaths []string

	// WorkDir is the directory AVL runs in. Generated artifacts are
	// referenced relative to it.
	WorkDir string

	// Timeout bounds a single AVL invocation.
	Timeout time.Duration

	Log *zap.Logger
}

func (r *Runner) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

// ResolveExecutable returns the AVL executable path: the explicit
// override first, then the configured candidate paths, then $PATH.
func (r *Runner) ResolveExecutable() (string, error) {
	if r.Executable != "" {
		if _, err := os.Stat(r.Executable); err != nil {
			return "", fmt.Errorf("avl executable %s: %w", r.Executable, err)
		}
		return r.Executable, nil
	}

	for _, candidate := range r.SearchPaths {
		path := candidate
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.WorkDir, candidate)
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("avl"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("could not locate the avl executable; set solver.executable or AVLGEN_AVL_EXE")
}

// Run launches one AVL instance on geometryFile and pipes commandInput
// to its stdin, waiting for the process to exit or the timeout to
// expire.
func (r *Runner) Run(ctx context.Context, geometryFile, commandInput string) error {
	exe, err := r.ResolveExecutable()
	if err != nil {
		return err
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	runID := uuid.NewString()
	log := r.logger().With(zap.String("run_id", runID))
	log.Info("launching avl",
		zap.String("executable", exe),
		zap.String("geometry", geometryFile))

	cmd := exec.CommandContext(ctx, exe, geometryFile)
	cmd.Dir = r.WorkDir
	cmd.Stdin = strings.NewReader(commandInput)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("avl run %s failed: %w (output: %s)", runID, err, truncate(string(output), 500))
	}

	log.Info("avl run complete", zap.Int("output_bytes", len(output)))
	return nil
}

// RunDual launches two AVL instances on the same geometry concurrently:
// one driven to the geometry view, one to the Trefftz plot. Either
// failure cancels the other.
func (r *Runner) RunDual(ctx context.Context, geometryFile, geometryScript, trefftzScript string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := r.Run(ctx, geometryFile, geometryScript); err != nil {
			return fmt.Errorf("geometry instance: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := r.Run(ctx, geometryFile, trefftzScript); err != nil {
			return fmt.Errorf("trefftz instance: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
