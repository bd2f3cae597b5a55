package outputs

import (
	"context"
	"errors"
	"os"
	"os/exec"
)

// App is the runnable view over the package: a wrapper around the
// package's main executable.
type App struct {
	Type    string
	Program string
}

// App resolves the runnable wrapper for the built package.
func (c *Composer) App(ctx context.Context) (*App, error) {
	art, err := c.Package(ctx)
	if err != nil {
		return nil, err
	}
	return &App{Type: "app", Program: art.Bin}, nil
}

// Run executes the program with the given arguments, passing through the
// process's standard streams, and returns the child's exit code unchanged.
func (a *App) Run(ctx context.Context, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, a.Program, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
