package schematic

import (
	"github.com/OpenTraceLab/OpenTraceSchEdit/pkg/kicad/sexp"
)

// Net label node kinds whose first positional string is the net name.
var (
	// LabelKinds are the kinds renamed by RenameNet.
	LabelKinds = []string{"label", "global_label", "hierarchical_label"}
	// AllLabelKinds additionally includes netclass directive flags.
	AllLabelKinds = []string{"label", "global_label", "hierarchical_label", "netclass_flag"}
)

// Symbols returns the schematic's symbol instances in source order.
// Library definitions inside lib_symbols are not root children and symbol
// instances always carry a lib_id, so both filters apply.
func (s *Schematic) Symbols() []*sexp.Node {
	var results []*sexp.Node
	for _, sym := range sexp.ChildrenOfKind(s.root, "symbol") {
		if _, ok := sexp.FindChild(sym, "lib_id"); ok {
			results = append(results, sym)
		}
	}
	return results
}

// FindSymbol locates the first symbol instance whose Reference property
// equals reference.
func (s *Schematic) FindSymbol(reference string) (*sexp.Node, bool) {
	for _, sym := range s.Symbols() {
		if propertyValue(sym, "Reference") == reference {
			return sym, true
		}
	}
	return nil, false
}

// GetProperty returns the (property "Name" ...) child of a symbol by name.
func GetProperty(symbol *sexp.Node, name string) (*sexp.Node, bool) {
	for _, prop := range sexp.ChildrenOfKind(symbol, "property") {
		if n, ok := sexp.StringAt(prop, 1); ok && n == name {
			return prop, true
		}
	}
	return nil, false
}

// PropertyValueAtom returns the value token of a property node so callers
// can edit just that span.
func PropertyValueAtom(prop *sexp.Node) (*sexp.Node, bool) {
	atom := prop.Child(2)
	if atom == nil || atom.Kind() != sexp.KindString {
		return nil, false
	}
	return atom, true
}

// propertyValue returns the value of a symbol's property, or "".
func propertyValue(symbol *sexp.Node, name string) string {
	prop, ok := GetProperty(symbol, name)
	if !ok {
		return ""
	}
	atom, ok := PropertyValueAtom(prop)
	if !ok {
		return ""
	}
	return atom.Text()
}

// IsPropertyHidden reports whether a property carries a hide flag. Both the
// KiCad 6 bare `hide` symbol and the KiCad 7+ (hide yes) list inside the
// effects form are recognized; absence of either means visible.
func IsPropertyHidden(prop *sexp.Node) bool {
	effects, ok := sexp.FindChild(prop, "effects")
	if !ok {
		return false
	}
	if sexp.HasChildSymbol(effects, "hide") {
		return true
	}
	hide, ok := sexp.FindChild(effects, "hide")
	if !ok {
		return false
	}
	if hide.NumChildren() == 1 {
		return true // bare (hide)
	}
	val, _ := sexp.TextAt(hide, 1)
	return val == "yes" || val == "true"
}

// FindLabels returns label nodes of the given kinds, optionally filtered by
// net name (text == "" matches all). Kinds must come from AllLabelKinds.
func (s *Schematic) FindLabels(kinds []string, text string) []*sexp.Node {
	var results []*sexp.Node
	want := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	for _, child := range s.root.Children() {
		if !child.IsList() || !want[child.Head()] {
			continue
		}
		name, ok := sexp.StringAt(child, 1)
		if !ok {
			continue
		}
		if text == "" || name == text {
			results = append(results, child)
		}
	}
	return results
}

// TitleBlock returns the first title_block child of the root.
func (s *Schematic) TitleBlock() (*sexp.Node, bool) {
	return sexp.FindChild(s.root, "title_block")
}
