package native

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kiwi-lang/kiwi/internal/ast"
)

// dataFuncs implements the yaml.v3-backed encode/decode pair SPEC_FULL.md's
// domain stack assigns to lib/data, grounded on
// funvibe-funxy/internal/evaluator/builtins_yaml.go's yamlDecode/yamlEncode
// pair, trimmed to the two calls a Kiwi program actually binds natively —
// file IO (yamlRead/yamlWrite there) is an ordinary Kiwi-level wrapper over
// these plus the language's own file-handling, not a second native.
func dataFuncs() map[string]ast.NativeFunc {
	return map[string]ast.NativeFunc{
		"yamlEncode": yamlEncode,
		"yamlDecode": yamlDecode,
	}
}

func yamlEncode(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("yamlEncode(value) takes 1 argument, got %d", len(args))
	}
	out, err := yaml.Marshal(args[0])
	if err != nil {
		return nil, fmt.Errorf("yamlEncode: %w", err)
	}
	return string(out), nil
}

func yamlDecode(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("yamlDecode(text) takes 1 argument, got %d", len(args))
	}
	text, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("yamlDecode: argument must be a string")
	}
	var data any
	if err := yaml.Unmarshal([]byte(text), &data); err != nil {
		return nil, fmt.Errorf("yamlDecode: %w", err)
	}
	return normalizeYaml(data), nil
}

// normalizeYaml rewrites the map[string]interface{}/[]interface{} tree
// yaml.v3 produces into the map[string]any/[]any shapes
// internal/values.FromAny already knows how to box, and flattens
// yaml.v3's map[any]any (non-string-keyed mapping) into string keys the
// same way spec.md's dict values are always string/scalar keyed.
func normalizeYaml(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalizeYaml(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprintf("%v", k)] = normalizeYaml(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalizeYaml(val)
		}
		return out
	default:
		return x
	}
}
