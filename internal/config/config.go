// Package config loads the small YAML document that selects a compile
// target and diagnostics verbosity for a binder run.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tsstack/binder/internal/types"
)

// FileName is the default config file name looked up by Find.
const FileName = "tsbindcheck.yaml"

// Options is the parsed configuration. Target and StrictMode both have
// sensible zero-value defaults (WASM32, non-strict) so a missing config file
// is never an error.
type Options struct {
	// Target selects the pointer width of the stack-machine runtime: "wasm32"
	// or "wasm64". Defaults to "wasm32".
	Target string `yaml:"target,omitempty"`
	// StrictMode, when true, treats every reported diagnostic as fatal for
	// the CLI's exit code instead of only parse/internal errors.
	StrictMode bool `yaml:"strict,omitempty"`
}

// Default returns the zero-config Options: wasm32, non-strict.
func Default() Options {
	return Options{Target: "wasm32"}
}

// TargetValue maps the YAML Target string to a types.Target, defaulting to
// WASM32 for an empty or unrecognized value.
func (o Options) TargetValue() types.Target {
	if o.Target == "wasm64" {
		return types.WASM64
	}
	return types.WASM32
}

// Load reads and parses a config file at path.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses config content from bytes. path is used only in error
// messages.
func Parse(data []byte, path string) (Options, error) {
	opts := Default()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if opts.Target != "" && opts.Target != "wasm32" && opts.Target != "wasm64" {
		return Options{}, fmt.Errorf("%s: target must be \"wasm32\" or \"wasm64\", got %q", path, opts.Target)
	}
	return opts, nil
}

// Find searches for FileName starting from dir and walking up to parent
// directories, the same way a VCS ignore file is discovered. Returns an
// empty path and nil error if no config file is found anywhere above dir.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadFromDir finds and loads the nearest config file above dir, or returns
// Default() if none exists.
func LoadFromDir(dir string) (Options, error) {
	path, err := Find(dir)
	if err != nil {
		return Options{}, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
