package sexp

// S-expression navigation helpers. All queries are pure reads over the
// immutable tree; results are ordered by source position.

// ChildrenOfKind returns the list children of parent whose head symbol
// equals head. The head atom itself is never returned.
func ChildrenOfKind(parent *Node, head string) []*Node {
	var results []*Node
	if parent == nil || !parent.IsList() {
		return results
	}
	for _, child := range parent.children {
		if child.IsList() && child.Head() == head {
			results = append(results, child)
		}
	}
	return results
}

// FindChild returns the first list child of parent with the given head.
// Example: FindChild(symbol, "at") finds (at 100 50 0).
func FindChild(parent *Node, head string) (*Node, bool) {
	if parent == nil || !parent.IsList() {
		return nil, false
	}
	for _, child := range parent.children {
		if child.IsList() && child.Head() == head {
			return child, true
		}
	}
	return nil, false
}

// HasChildSymbol reports whether a list contains the bare symbol atom sym
// among its direct children. KiCad 6 uses bare flags like `hide` this way.
func HasChildSymbol(parent *Node, sym string) bool {
	if parent == nil || !parent.IsList() {
		return false
	}
	for _, child := range parent.children {
		if child.kind == KindSymbol && child.text == sym {
			return true
		}
	}
	return false
}

// ChildSymbol returns the bare symbol atom child equal to sym, if present.
func ChildSymbol(parent *Node, sym string) (*Node, bool) {
	if parent == nil || !parent.IsList() {
		return nil, false
	}
	for _, child := range parent.children {
		if child.kind == KindSymbol && child.text == sym {
			return child, true
		}
	}
	return nil, false
}

// TextAt returns the logical text of the atom at index i in a list (index 0
// is the head atom). Works for both symbol and string atoms.
func TextAt(parent *Node, i int) (string, bool) {
	child := parent.Child(i)
	if child == nil || !child.IsAtom() {
		return "", false
	}
	return child.text, true
}

// StringAt returns the decoded value of the quoted-string atom at index i.
// Unlike TextAt it fails on symbol atoms.
func StringAt(parent *Node, i int) (string, bool) {
	child := parent.Child(i)
	if child == nil || child.kind != KindString {
		return "", false
	}
	return child.text, true
}

// FieldOf locates single-valued fields like (title "..."), (rev "...") by
// head. For indexed fields like (comment N "...") use IndexedFieldOf.
func FieldOf(parent *Node, head string) (*Node, bool) {
	return FindChild(parent, head)
}

// IndexedFieldOf locates a field carrying a positional integer index as its
// first argument, e.g. (comment 1 "author"). The index is compared textually
// against the symbol atom at position 1.
func IndexedFieldOf(parent *Node, head, index string) (*Node, bool) {
	for _, child := range ChildrenOfKind(parent, head) {
		if idx, ok := TextAt(child, 1); ok && idx == index {
			return child, true
		}
	}
	return nil, false
}
