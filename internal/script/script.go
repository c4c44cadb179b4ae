package script

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"tradeterm/internal/logger"
)

// ErrNotFound reports a missing script directory or target script.
var ErrNotFound = errors.New("not found")

// Runner launches the configured helper script as a detached process. The
// terminal does not wait for it or capture its output.
type Runner struct {
	scriptDir string
	target    string
	log       *logger.Logger
}

func NewRunner(scriptDir, target string, log *logger.Logger) *Runner {
	return &Runner{scriptDir: scriptDir, target: target, log: log}
}

// Run starts the target script and returns as soon as the process is spawned.
// The process is deliberately not bound to any caller context: it must outlive
// the request that triggered it.
func (r *Runner) Run() (string, error) {
	if info, err := os.Stat(r.scriptDir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("script directory %s: %w", r.scriptDir, ErrNotFound)
	}

	path := filepath.Join(r.scriptDir, r.target)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("target script %s: %w", path, ErrNotFound)
	}

	cmd := exec.Command(path)
	cmd.Dir = r.scriptDir
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start script %s: %w", r.target, err)
	}

	// Reap the process in the background so it does not linger as a zombie.
	go func() {
		if err := cmd.Wait(); err != nil {
			r.log.WithComponent("script").WithError(err).Warn("Script exited with error.")
		}
	}()

	r.log.WithComponent("script").WithFields(map[string]interface{}{
		"target": r.target,
		"pid":    cmd.Process.Pid,
	}).Info("Script started.")
	return fmt.Sprintf("%s started successfully.", r.target), nil
}
