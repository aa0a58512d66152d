// Package modules defines the module-loading collaborator Import/
// ImportFrom statements depend on. The filesystem search itself is out
// of scope (spec.md §6/§14): Loader is an interface only, so the CLI
// driver can wire in a real search path later without Sema or the
// evaluator depending on `os`/`io/fs` directly.
package modules

// Source is a single resolved module: its import path and the raw text a
// parser would need to re-lex it.
type Source struct {
	Path string
	Text string
}

// Loader resolves an import path to its Source. A zero-value Loader
// (nil) means no loader is configured at all. No pass calls FindModule
// yet: Sema and the evaluator skip Import/ImportFrom statements, so a
// missing module is not reported.
type Loader interface {
	FindModule(path string) (Source, bool)
}

// MapLoader is a trivial in-memory Loader, useful for embedding a small
// standard-module set or for tests that don't need real filesystem
// access.
type MapLoader map[string]Source

func (m MapLoader) FindModule(path string) (Source, bool) {
	src, ok := m[path]
	return src, ok
}
