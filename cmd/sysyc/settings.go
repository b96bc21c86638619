package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sysyc/internal/project"
)

// loadManifest resolves sysyc.toml from --config or by searching upward from
// the working directory. Without a config file the defaults apply.
func loadManifest(cmd *cobra.Command) (*project.Manifest, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath == "" {
		manifest, _, err := project.LoadManifest(".")
		return manifest, err
	}
	cfg, err := project.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", configPath, err)
	}
	return &project.Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// colorEnabled applies --color to f: auto means "only on a terminal".
func colorEnabled(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(mode) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected: auto|on|off)", mode)
}

func boolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Root().PersistentFlags().GetBool(name)
	return err == nil && v
}
