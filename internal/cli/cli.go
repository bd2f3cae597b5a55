package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/crateforge/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("crateforge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
crateforge - A declarative build pipeline for crate workspaces.

Usage:
  crateforge [options] [PIPELINE_PATH] [-- PROGRAM_ARGS...]

Arguments:
  PIPELINE_PATH
    Path to the pipeline descriptor (.hcl file).
  PROGRAM_ARGS
    With '-output app', arguments passed through to the built program.

Options:
`)
		flagSet.PrintDefaults()
	}

	pipelineFlag := flagSet.String("pipeline", "", "Path to the pipeline descriptor.")
	pFlag := flagSet.String("p", "", "Path to the pipeline descriptor (shorthand).")
	outputFlag := flagSet.String("output", "package", "Output view to resolve. Options: 'package', 'app', 'devshell', or 'overlay'.")
	prefixFlag := flagSet.String("prefix", "", "Install prefix for the built package. Defaults to <root>/.crateforge/prefix.")
	storeFlag := flagSet.String("store", "", "Cache store directory. Defaults to <root>/.crateforge/cache.")
	platformFlag := flagSet.String("platform", "", "Target platform tag, e.g. 'aarch64-darwin'. Defaults to the host.")
	revisionFlag := flagSet.String("revision", "", "Explicit revision identifier. Detected from version control when empty.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	rest := flagSet.Args()
	if *pipelineFlag != "" {
		path = *pipelineFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if len(rest) > 0 {
		path = rest[0]
		rest = rest[1:]
	}

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}
	if len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		DescriptorPath: path,
		Output:         strings.ToLower(*outputFlag),
		Prefix:         *prefixFlag,
		Store:          *storeFlag,
		Platform:       *platformFlag,
		Revision:       *revisionFlag,
		AppArgs:        rest,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
