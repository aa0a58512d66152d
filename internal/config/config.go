// Package config parses kiwi.yaml, the driver configuration
// SPEC_FULL.md's ambient stack assigns to the CLI (indent width, which
// execution backend to run, which native modules to link in).
//
// Grounded on funvibe-funxy/internal/ext/config.go's Config/LoadConfig/
// FindConfig shape, trimmed to the smaller surface Kiwi actually needs:
// the teacher's Config drives a Go-binding code generator (Dep/BindSpec,
// one entry per external Go package to wrap), which Kiwi has no use for
// — internal/native's registry is fixed, not generated — so only the
// indent width, backend choice, and native-module allow-list survive.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backend selects which of the two execution backends (spec.md §4.9/
// §4.10) the CLI driver runs a parsed Module through.
type Backend string

const (
	BackendTree Backend = "tree"
	BackendVM   Backend = "vm"
)

// Config is the top-level kiwi.yaml shape.
type Config struct {
	// IndentWidth is the number of spaces one lexer INDENT level
	// represents (spec.md §4.2 fixes this at 4). It is read from
	// kiwi.yaml, but the lexer uses its fixed lexer.LythonIndent and
	// does not consult this field.
	IndentWidth int `yaml:"indent_width"`

	// Backend chooses the execution strategy; defaults to BackendVM
	// when omitted (set by Default).
	Backend Backend `yaml:"backend"`

	// Natives lists which internal/native registry entries this
	// program is allowed to bind to via a `native` FunctionDef. An
	// empty list links every registered native (the common case for a
	// trusted local script); a non-empty list is a sandboxing
	// allow-list.
	Natives []string `yaml:"natives,omitempty"`
}

// Default returns the configuration used when no kiwi.yaml is found.
func Default() *Config {
	return &Config{IndentWidth: 4, Backend: BackendVM}
}

// Load reads and parses path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses kiwi.yaml content from bytes. path is used only for
// error messages.
func Parse(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find searches for kiwi.yaml starting at dir and walking up to parent
// directories, the way the teacher's FindConfig locates funxy.yaml.
// Returns "" with a nil error if no config file is found anywhere above
// dir, in which case the caller should fall back to Default().
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "kiwi.yaml")
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

// LinksNative reports whether name is permitted by Natives. An empty
// allow-list links everything internal/native registers.
func (c *Config) LinksNative(name string) bool {
	if len(c.Natives) == 0 {
		return true
	}
	for _, n := range c.Natives {
		if n == name {
			return true
		}
	}
	return false
}

func (c *Config) validate(path string) error {
	if c.IndentWidth <= 0 {
		return fmt.Errorf("%s: indent_width must be positive, got %d", path, c.IndentWidth)
	}
	switch c.Backend {
	case "":
		c.Backend = BackendVM
	case BackendTree, BackendVM:
	default:
		return fmt.Errorf("%s: backend must be %q or %q, got %q", path, BackendTree, BackendVM, c.Backend)
	}
	return nil
}
