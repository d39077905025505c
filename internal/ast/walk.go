package ast

// Walk visits n and every descendant in pre-order, calling visit on each.
// It underlies both the hook runtime's dispatch (spec.md §4.4: "the
// driver walks the AST in pre-order") and any debug dump of a parsed
// file.
func Walk(n Node, visit func(Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children() {
		Walk(c, visit)
	}
}
