// Command kiwi is the CLI driver: source file -> Buffer -> Lexer ->
// Parser -> Module -> Sema -> (tree evaluator | VM), per spec.md §6/§7.
// Grounded on funvibe-funxy/cmd/funxy/main.go's runPipeline/main shape,
// trimmed to a single-file "run" entry point — the teacher's test
// runner, REPL, embedded-bundle and LSP launch modes are out of scope
// (see DESIGN.md).
package main

import (
	"fmt"
	"os"

	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/buffer"
	"github.com/kiwi-lang/kiwi/internal/config"
	"github.com/kiwi-lang/kiwi/internal/diagnostics"
	"github.com/kiwi-lang/kiwi/internal/evaluator"
	"github.com/kiwi-lang/kiwi/internal/lexer"
	"github.com/kiwi-lang/kiwi/internal/native"
	"github.com/kiwi-lang/kiwi/internal/parser"
	"github.com/kiwi-lang/kiwi/internal/sema"
	"github.com/kiwi-lang/kiwi/internal/vm"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("KIWI_DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	backendFlag, path := parseArgs(os.Args[1:])
	if path == "" {
		fmt.Fprintf(os.Stderr, "usage: %s [-backend tree|vm] <file.kiwi>\n", os.Args[0])
		os.Exit(2)
	}

	cfg := loadConfig(path)
	if backendFlag != "" {
		cfg.Backend = config.Backend(backendFlag)
	}

	buf, err := buffer.NewFileBuffer(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	lex := lexer.New(buf)
	p := parser.New(path, lex)
	mod := p.ParseModule()

	bag := p.Errors()
	if bag.HasErrors() {
		report(bag, path)
		os.Exit(1)
	}

	analyzer := sema.New(mod.Arena)
	analyzer.Analyze(mod)
	if analyzer.Errors().HasErrors() {
		report(analyzer.Errors(), path)
		os.Exit(1)
	}

	natives := linkedNatives(cfg)

	var runErr error
	switch cfg.Backend {
	case config.BackendTree:
		ev := evaluator.New(os.Stdout, analyzer.Types(), natives)
		runErr = ev.Eval(mod)
	default:
		ev := evaluator.New(os.Stdout, analyzer.Types(), natives)
		prog, err := vm.Compile(mod)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
		runErr = vm.NewExec(prog, ev).Execute()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "%s\n", runErr)
		os.Exit(1)
	}
}

// parseArgs pulls an optional "-backend tree|vm" pair out of args,
// returning the first non-flag argument as the source path.
func parseArgs(args []string) (backend, path string) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-backend", "--backend":
			if i+1 < len(args) {
				backend = args[i+1]
				i++
			}
		default:
			if path == "" {
				path = args[i]
			}
		}
	}
	return backend, path
}

// loadConfig walks up from the source file's directory looking for
// kiwi.yaml (internal/config.Find), falling back to config.Default
// when none is found.
func loadConfig(sourcePath string) *config.Config {
	dir := "."
	if idx := lastSlash(sourcePath); idx >= 0 {
		dir = sourcePath[:idx]
	}
	found, err := config.Find(dir)
	if err != nil || found == "" {
		return config.Default()
	}
	cfg, err := config.Load(found)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	return cfg
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

// linkedNatives filters internal/native's full registry down to cfg's
// allow-list (spec.md §2's sandboxing knob; empty list links all).
func linkedNatives(cfg *config.Config) map[string]ast.NativeFunc {
	all := native.Registry()
	if len(cfg.Natives) == 0 {
		return all
	}
	out := make(map[string]ast.NativeFunc, len(cfg.Natives))
	for _, name := range cfg.Natives {
		if fn, ok := all[name]; ok {
			out[name] = fn
		}
	}
	return out
}

func report(bag *diagnostics.Bag, path string) {
	for _, e := range bag.Entries() {
		if e.File == "" {
			e.File = path
		}
	}
	printer := diagnostics.NewPrinter(os.Stderr, os.Stderr.Fd(), sourceLine)
	printer.Print(bag)
}

func sourceLine(file string, line int) (string, bool) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", false
	}
	n := 1
	start := 0
	for i, c := range data {
		if n == line {
			end := i
			for end < len(data) && data[end] != '\n' {
				end++
			}
			return string(data[start:end]), true
		}
		if c == '\n' {
			n++
			start = i + 1
		}
	}
	return "", false
}
