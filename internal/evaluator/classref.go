package evaluator

import (
	"github.com/kiwi-lang/kiwi/internal/ast"
	"github.com/kiwi-lang/kiwi/internal/values"
)

// ClassRef is the runtime value a ClassDef statement binds its own name
// to: the thing a Call whose Func resolves here constructs an Instance
// from (spec.md §4.9's class-constructor call semantics).
type ClassRef struct {
	Def *ast.ClassDef
}

func (*ClassRef) Fields() map[string]values.Value { return nil }
func (*ClassRef) Class() *ast.ClassDef             { return nil }

// construct builds a new Instance of def: class-body field defaults run
// first (an Assign/AnnAssign at class scope, evaluated once per
// instantiation since Kiwi has no notion of shared class-level storage
// distinct from per-instance defaults), then `__init__` runs bound to
// the new instance, receiving args positionally.
func (e *Evaluator) construct(def *ast.ClassDef, args []values.Value) values.Value {
	inst := values.NewInstance(def)
	instVal := values.FromObject(0, inst)

	defaultFrame := NewFrame(e.global)
	for _, s := range def.Body {
		switch stmt := s.(type) {
		case *ast.Assign:
			for _, t := range stmt.Targets {
				if name, ok := t.(*ast.Name); ok {
					inst.Attrs[name.ID_] = e.eval(stmt.Value, defaultFrame)
				}
			}
		case *ast.AnnAssign:
			if name, ok := stmt.Target.(*ast.Name); ok && stmt.Value != nil {
				inst.Attrs[name.ID_] = e.eval(stmt.Value, defaultFrame)
			}
		}
	}

	ctor := e.findMethod(def, "__init__")
	if ctor == nil {
		ctor = e.findMethod(def, "__new__")
	}
	if ctor != nil {
		e.callFunctionDef(ctor, append([]values.Value{instVal}, args...))
	}
	return instVal
}

// findMethod walks def's own body, then its base classes. Bases are
// still raw Name expressions at this point (Sema only resolves them for
// type-checking, via its own TypeRegistry — see internal/sema/functions.go's
// analyzeClassDef), so a base is resolved here by looking its name up
// in the global frame, where a ClassDef statement always binds a
// ClassRef.
func (e *Evaluator) findMethod(def *ast.ClassDef, name string) *ast.FunctionDef {
	for _, s := range def.Body {
		if fn, ok := s.(*ast.FunctionDef); ok && fn.Name == name {
			return fn
		}
	}
	for _, base := range def.Bases {
		baseDef := e.resolveBase(base)
		if baseDef == nil || baseDef == def {
			continue
		}
		if fn := e.findMethod(baseDef, name); fn != nil {
			return fn
		}
	}
	return nil
}

func (e *Evaluator) resolveBase(base ast.Expression) *ast.ClassDef {
	switch b := base.(type) {
	case *ast.ClassType:
		return b.Def
	case *ast.Name:
		if v, ok := e.global.Get(b.ID_); ok {
			if ref, ok2 := v.Obj.(*ClassRef); ok2 {
				return ref.Def
			}
		}
	}
	return nil
}
