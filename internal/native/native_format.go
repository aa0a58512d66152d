package native

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/kiwi-lang/kiwi/internal/ast"
)

// formatFuncs implements the two go-humanize-backed diagnostics helpers
// SPEC_FULL.md's domain stack assigns to lib/format, grounded on the
// same "native wraps one library call" shape as native_data.go's
// yamlEncode/yamlDecode — there is no funvibe-funxy equivalent to model
// these on since go-humanize isn't one of its domain deps, so the
// wrapping follows the house style native_data.go already sets.
func formatFuncs() map[string]ast.NativeFunc {
	return map[string]ast.NativeFunc{
		"humanizeBytes": humanizeBytes,
		"humanizeInt":   humanizeInt,
	}
}

func humanizeBytes(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("humanizeBytes(n) takes 1 argument, got %d", len(args))
	}
	n, err := toUint64(args[0])
	if err != nil {
		return nil, fmt.Errorf("humanizeBytes: %w", err)
	}
	return humanize.Bytes(n), nil
}

func humanizeInt(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("humanizeInt(n) takes 1 argument, got %d", len(args))
	}
	n, err := toInt64(args[0])
	if err != nil {
		return nil, fmt.Errorf("humanizeInt: %w", err)
	}
	return humanize.Comma(n), nil
}

func toUint64(v any) (uint64, error) {
	switch x := v.(type) {
	case int64:
		return uint64(x), nil
	case int32:
		return uint64(x), nil
	case int16:
		return uint64(x), nil
	case int8:
		return uint64(x), nil
	case int:
		return uint64(x), nil
	case uint64:
		return x, nil
	case uint32:
		return uint64(x), nil
	case uint16:
		return uint64(x), nil
	case uint8:
		return uint64(x), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}

func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int32:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int:
		return int64(x), nil
	case uint64:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}
