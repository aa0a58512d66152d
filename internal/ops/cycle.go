package ops

import "github.com/kiwi-lang/kiwi/internal/ast"

// HasCircle walks n's Parent() chain looking for a repeated node id,
// guarding against the misuse Attach's non-owning back-pointer makes
// possible (spec.md §3, §9): a node accidentally attached as its own
// ancestor. Pure diagnostic tool, never called on the hot path.
func HasCircle(n ast.Node) bool {
	seen := map[ast.Node]bool{}
	cur := n
	for cur != nil {
		if seen[cur] {
			return true
		}
		seen[cur] = true
		cur = cur.Parent()
	}
	return false
}
