package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"sysyc/internal/diag"
	"sysyc/internal/trace"
)

// Config is the decoded sysyc.toml.
type Config struct {
	Dump  DumpConfig  `toml:"dump"`
	Trace TraceConfig `toml:"trace"`
}

type DumpConfig struct {
	// Output is "-" for stdout or a file path.
	Output string `toml:"output"`
	// Jobs limits parallel units; 0 means GOMAXPROCS.
	Jobs int `toml:"jobs"`
	// Units are snapshot paths dumped when none are given on the command line.
	Units []string `toml:"units"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Format string `toml:"format"`
}

// Manifest is a located and validated config.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Defaults returns the configuration used when no sysyc.toml exists.
func Defaults() Config {
	return Config{
		Dump:  DumpConfig{Output: "-"},
		Trace: TraceConfig{Level: "off", Output: "-", Format: "text"},
	}
}

// LoadManifest finds sysyc.toml above startDir and decodes it.
// ok is false when there is no config; the returned manifest then holds Defaults.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &Manifest{Config: Defaults()}, false, nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes path over Defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, diag.Errorf(diag.IOConfig, "%s: failed to parse TOML: %v", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, diag.Errorf(diag.IOConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("dump", "output") && strings.TrimSpace(cfg.Dump.Output) == "" {
		return Config{}, diag.Errorf(diag.IOConfig, "%s: [dump].output is empty", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, diag.Errorf(diag.IOConfig, "%s: %v", path, err)
	}
	return cfg, nil
}

// Validate checks values that can be wrong independently of the file syntax.
func (c Config) Validate() error {
	if c.Dump.Jobs < 0 {
		return fmt.Errorf("[dump].jobs must not be negative, got %d", c.Dump.Jobs)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return fmt.Errorf("[trace].format: %w", err)
	}
	return nil
}

// UnitPaths resolves [dump].units against the manifest directory.
func (m *Manifest) UnitPaths() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.Config.Dump.Units))
	for _, u := range m.Config.Dump.Units {
		p := filepath.FromSlash(strings.TrimSpace(u))
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) && m.Root != "" {
			p = filepath.Join(m.Root, p)
		}
		out = append(out, p)
	}
	return out
}
