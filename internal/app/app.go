package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/crateforge/internal/toolchain"
)

// App encapsulates the pipeline's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	errW      io.Writer
	logger    *slog.Logger
	toolchain toolchain.Toolchain
}

// NewApp is the constructor for the main application. Results are written
// to outW; logs go to errW so that machine-readable output stays clean.
// A toolchain may be injected for tests; the external build tool is used
// otherwise.
func NewApp(outW, errW io.Writer, cfg *Config, tc ...toolchain.Toolchain) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	a := &App{outW: outW, errW: errW, logger: logger, toolchain: toolchain.NewCargo()}
	if len(tc) > 0 {
		a.toolchain = tc[0]
	}
	return a
}

// ExitCodeError propagates a wrapped program's exit code unchanged through
// the app output path.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("program exited with code %d", e.Code)
}
