package app

import (
	"errors"
	"fmt"
)

// Output names for the four consumable views.
const (
	OutputPackage  = "package"
	OutputApp      = "app"
	OutputDevShell = "devshell"
	OutputOverlay  = "overlay"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DescriptorPath string // pipeline descriptor (.hcl)

	Output   string // which view to resolve
	Prefix   string // install prefix for the package build
	Store    string // cache store directory
	Platform string // target platform tag, host when empty
	Revision string // explicit revision, detected when empty
	AppArgs  []string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DescriptorPath == "" {
		return nil, errors.New("DescriptorPath is a required configuration field and cannot be empty")
	}
	switch cfg.Output {
	case OutputPackage, OutputApp, OutputDevShell, OutputOverlay:
	default:
		return nil, fmt.Errorf("invalid output %q: must be 'package', 'app', 'devshell', or 'overlay'", cfg.Output)
	}
	return &cfg, nil
}
