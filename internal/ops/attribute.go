package ops

import "github.com/kiwi-lang/kiwi/internal/ast"

// GetAttr searches cls.Attributes (populated by Sema's record_attributes
// pass, spec.md §4.8) for name, walking the base-class chain when the
// base itself resolves to a ClassType. Returns nil if not found.
func GetAttr(cls *ast.ClassDef, name string) ast.Node {
	if cls == nil {
		return nil
	}
	for _, at := range cls.Attributes {
		if at.Name == name {
			return at.Stmt
		}
	}
	for _, base := range cls.Bases {
		if ct, ok := base.(*ast.ClassType); ok {
			if found := GetAttr(ct.Def, name); found != nil {
				return found
			}
		}
	}
	return nil
}

// HasAttr reports whether GetAttr would find name.
func HasAttr(cls *ast.ClassDef, name string) bool {
	return GetAttr(cls, name) != nil
}
