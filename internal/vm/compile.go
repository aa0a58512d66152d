package vm

import "github.com/kiwi-lang/kiwi/internal/ast"

// Compile lowers mod's Init+Body into a flat Program. Simple statements
// become VMStmt leaves; If/While are flattened into Jump/CondJump pairs
// so Exec drives them with a plain instruction counter instead of Go
// call-stack recursion (spec.md §4.10). Break/Continue inside a
// flattened While become Jump instructions backpatched once the loop's
// bounds are known, the classic two-pass label/backpatch scheme spec.md
// §4.10 describes for Call's JumpID.
//
// For/Try/With/Match keep their nested bodies structured (wrapped whole
// inside one VMStmt, executed by internal/evaluator's own ExecStmt):
// flattening iterator state and exception unwinding across tape jumps
// is not attempted here — see DESIGN.md's Open Questions for why this
// is a deliberate, bounded scope cut rather than an oversight.
func Compile(mod *ast.Module) (*Program, error) {
	c := &compiler{arena: mod.Arena, prog: &Program{FuncStarts: map[string]int{}}}
	for _, s := range mod.Init {
		c.lower(s)
	}
	for _, s := range mod.Body {
		c.lower(s)
	}
	c.recordFuncStarts()
	return c.prog, nil
}

type loopCtx struct {
	breakJumps    []int
	continueJumps []int
}

type compiler struct {
	arena *ast.Arena
	prog  *Program
	loops []*loopCtx
}

func (c *compiler) emit(n ast.Node) int {
	c.prog.Instructions = append(c.prog.Instructions, n)
	return len(c.prog.Instructions) - 1
}

func (c *compiler) here() int { return len(c.prog.Instructions) }

func (c *compiler) lower(s ast.Statement) {
	switch n := s.(type) {
	case *ast.If:
		c.lowerIf(n)
	case *ast.While:
		c.lowerWhile(n)
	case *ast.Break:
		if len(c.loops) == 0 {
			c.emit(ast.NewVMStmt(c.arena, s))
			return
		}
		top := c.loops[len(c.loops)-1]
		top.breakJumps = append(top.breakJumps, c.emit(ast.NewJump(c.arena, -1)))
	case *ast.Continue:
		if len(c.loops) == 0 {
			c.emit(ast.NewVMStmt(c.arena, s))
			return
		}
		top := c.loops[len(c.loops)-1]
		top.continueJumps = append(top.continueJumps, c.emit(ast.NewJump(c.arena, -1)))
	default:
		c.emit(ast.NewVMStmt(c.arena, s))
	}
}

func (c *compiler) lowerBody(body []ast.Statement) {
	for _, s := range body {
		c.lower(s)
	}
}

func (c *compiler) patchCondJump(idx, thenDest, elseDest int) {
	cj := c.prog.Instructions[idx].(*ast.CondJump)
	cj.ThenJump = thenDest
	cj.ElseJump = elseDest
}

func (c *compiler) patchJump(idx, dest int) {
	j := c.prog.Instructions[idx].(*ast.Jump)
	j.Destination = dest
}

// lowerIf flattens the if/elif-chain/else into a series of CondJumps,
// each false-branch falling through to the next test and each
// true-branch jumping past the whole chain once its body is done.
func (c *compiler) lowerIf(n *ast.If) {
	tests := append([]ast.Expression{n.Test}, n.Tests...)
	bodies := append([][]ast.Statement{n.Body}, n.Bodies...)
	var endJumps []int
	for i, test := range tests {
		cjIdx := c.emit(ast.NewCondJump(c.arena, test))
		thenStart := c.here()
		c.lowerBody(bodies[i])
		endJumps = append(endJumps, c.emit(ast.NewJump(c.arena, -1)))
		elseStart := c.here()
		c.patchCondJump(cjIdx, thenStart, elseStart)
	}
	c.lowerBody(n.OrElse)
	end := c.here()
	for _, idx := range endJumps {
		c.patchJump(idx, end)
	}
}

// lowerWhile flattens test/body/back-edge into CondJump+Jump, patching
// any Break inside the body to land after the loop (skipping OrElse,
// which spec.md's while/for-else rule only runs on a natural exit) and
// any Continue to land back at the condition recheck.
func (c *compiler) lowerWhile(n *ast.While) {
	c.loops = append(c.loops, &loopCtx{})
	loopStart := c.here()
	cjIdx := c.emit(ast.NewCondJump(c.arena, n.Test))
	bodyStart := c.here()
	c.lowerBody(n.Body)
	c.emit(ast.NewJump(c.arena, loopStart))
	afterLoop := c.here()
	c.patchCondJump(cjIdx, bodyStart, afterLoop)

	ctx := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]
	for _, idx := range ctx.continueJumps {
		c.patchJump(idx, loopStart)
	}

	c.lowerBody(n.OrElse)
	final := c.here()
	for _, idx := range ctx.breakJumps {
		c.patchJump(idx, final)
	}
}

// recordFuncStarts walks the top-level body (module scope only, per
// spec.md §4.10's lowering rules) noting where each FunctionDef's own
// VMStmt landed, for tooling that wants to print the tape with function
// entry points labeled. See Program.FuncStarts's doc comment for why
// this is informational rather than a real call/return jump target.
func (c *compiler) recordFuncStarts() {
	for i, instr := range c.prog.Instructions {
		vs, ok := instr.(*ast.VMStmt)
		if !ok {
			continue
		}
		if fn, ok := vs.Stmt.(*ast.FunctionDef); ok {
			c.prog.FuncStarts[fn.Name] = i
		}
	}
}
