package ast

import "iter"

// Preorder returns a depth-first, source-order sequence over node and all of
// its children. The sequence is lazy and can be ranged over repeatedly;
// breaking out of the range stops the traversal.
func Preorder(node Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		ok := true
		Walk(node, func(n Node) bool {
			ok = ok && yield(n)
			return ok
		})
	}
}
