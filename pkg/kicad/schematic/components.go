package schematic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSchEdit/pkg/kicad/sexp"
)

// ComponentSummary is one row of ListComponents.
type ComponentSummary struct {
	Reference string `json:"reference"`
	Value     string `json:"value"`
	Footprint string `json:"footprint"`
}

// PropertyInfo describes a single symbol property.
type PropertyInfo struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Visible bool   `json:"visible"`
}

// Component is the full property view of one symbol instance.
type Component struct {
	Reference  string         `json:"reference"`
	Properties []PropertyInfo `json:"properties"`
}

// PropertyEdit describes one entry of an UpdateComponent request. Exactly
// one of Remove or a Value/Visible change applies:
//
//   - Remove deletes the property list node.
//   - Value replaces just the value token; visibility is preserved.
//   - Visible toggles the hide flag surgically, leaving sibling effects
//     untouched. For a property that does not exist yet, Value is required
//     and Visible controls whether the synthesized skeleton carries a hide
//     flag.
type PropertyEdit struct {
	Value   *string
	Visible *bool
	Remove  bool
}

// SetValue is shorthand for a value-only edit.
func SetValue(v string) PropertyEdit {
	return PropertyEdit{Value: &v}
}

// UpdateResult reports what UpdateComponent changed.
type UpdateResult struct {
	Affected int      `json:"affected"`
	Changes  []string `json:"changes"`
}

// ListComponents enumerates symbol instances, returning Reference, Value and
// Footprint for each (missing property yields ""). A non-empty prefix keeps
// only references starting with it, e.g. "C" for capacitors.
func (s *Schematic) ListComponents(prefix string) []ComponentSummary {
	var results []ComponentSummary
	for _, sym := range s.Symbols() {
		ref := propertyValue(sym, "Reference")
		if prefix != "" && !strings.HasPrefix(ref, prefix) {
			continue
		}
		results = append(results, ComponentSummary{
			Reference: ref,
			Value:     propertyValue(sym, "Value"),
			Footprint: propertyValue(sym, "Footprint"),
		})
	}
	return results
}

// GetComponent returns all properties of the symbol with the given
// reference designator.
func (s *Schematic) GetComponent(reference string) (*Component, error) {
	sym, ok := s.FindSymbol(reference)
	if !ok {
		return nil, &sexp.NotFoundError{What: "symbol", Name: reference}
	}
	comp := &Component{Reference: reference}
	for _, prop := range sexp.ChildrenOfKind(sym, "property") {
		name, ok := sexp.StringAt(prop, 1)
		if !ok {
			continue
		}
		value := ""
		if atom, ok := PropertyValueAtom(prop); ok {
			value = atom.Text()
		}
		comp.Properties = append(comp.Properties, PropertyInfo{
			Name:    name,
			Value:   value,
			Visible: !IsPropertyHidden(prop),
		})
	}
	return comp, nil
}

// UpdateComponent applies property edits to the symbol with the given
// reference. Edits touching distinct properties are queued together and
// land in one commit.
func (s *Schematic) UpdateComponent(reference string, edits map[string]PropertyEdit) (*UpdateResult, error) {
	// DNP is the symbol-level (dnp yes) flag, not a property; a
	// (property "dnp" ...) node would be dead data KiCad never reads.
	if _, ok := edits["dnp"]; ok {
		return nil, fmt.Errorf("%q is not a property: use in_bom/on_board or a custom property instead", "dnp")
	}

	sym, ok := s.FindSymbol(reference)
	if !ok {
		return nil, &sexp.NotFoundError{What: "symbol", Name: reference}
	}

	// Deterministic application order.
	names := make([]string, 0, len(edits))
	for name := range edits {
		names = append(names, name)
	}
	sort.Strings(names)

	result := &UpdateResult{}
	for _, name := range names {
		edit := edits[name]
		prop, exists := GetProperty(sym, name)

		switch {
		case edit.Remove:
			if !exists {
				result.Changes = append(result.Changes, fmt.Sprintf("%q not present (no-op)", name))
				continue
			}
			if err := s.doc.DeleteNode(prop); err != nil {
				return nil, err
			}
			result.Affected++
			result.Changes = append(result.Changes, fmt.Sprintf("removed %q", name))

		case exists:
			changed := false
			if edit.Value != nil {
				atom, ok := PropertyValueAtom(prop)
				if !ok {
					return nil, fmt.Errorf("property %q has no value token", name)
				}
				if atom.Text() != *edit.Value {
					if err := s.doc.ReplaceAtom(atom, sexp.EncodeString(*edit.Value)); err != nil {
						return nil, err
					}
					result.Changes = append(result.Changes,
						fmt.Sprintf("%q: %q -> %q", name, atom.Text(), *edit.Value))
					changed = true
				}
			}
			if edit.Visible != nil {
				toggled, err := s.setPropertyHidden(prop, !*edit.Visible)
				if err != nil {
					return nil, err
				}
				if toggled {
					result.Changes = append(result.Changes,
						fmt.Sprintf("%q: visible=%v", name, *edit.Visible))
					changed = true
				}
			}
			if changed {
				result.Affected++
			}

		default:
			if edit.Value == nil {
				return nil, &sexp.NotFoundError{What: "property", Name: name}
			}
			if err := s.insertProperty(sym, name, *edit.Value, edit.Visible); err != nil {
				return nil, err
			}
			result.Affected++
			result.Changes = append(result.Changes,
				fmt.Sprintf("added %q=%q", name, *edit.Value))
		}
	}
	return result, nil
}

// insertProperty synthesizes a minimal (property "Name" "Value") skeleton
// before the symbol's closing paren, indented like the existing children.
// An explicit hidden request adds the version-appropriate effects form.
func (s *Schematic) insertProperty(sym *sexp.Node, name, value string, visible *bool) error {
	text := fmt.Sprintf("(property %s %s", sexp.EncodeString(name), sexp.EncodeString(value))
	if visible != nil && !*visible {
		if s.hideAsList() {
			text += " (effects (hide yes))"
		} else {
			text += " (effects hide)"
		}
	}
	text += ")"
	return s.insertIntoList(sym, text)
}

// setPropertyHidden reconciles a property's hide flag with the desired
// state, touching only the hide token itself. Returns whether anything was
// queued.
func (s *Schematic) setPropertyHidden(prop *sexp.Node, hidden bool) (bool, error) {
	if IsPropertyHidden(prop) == hidden {
		return false, nil
	}

	effects, ok := sexp.FindChild(prop, "effects")
	if !ok {
		// No effects form at all; only hiding needs one.
		if !hidden {
			return false, nil
		}
		form := "(effects hide)"
		if s.hideAsList() {
			form = "(effects (hide yes))"
		}
		if err := s.insertIntoList(prop, form); err != nil {
			return false, err
		}
		return true, nil
	}

	if hide, ok := sexp.FindChild(effects, "hide"); ok {
		if hide.NumChildren() >= 2 {
			// (hide yes|no): flip just the flag atom.
			if err := s.doc.ReplaceAtom(hide.Child(1), sexp.FormatBool(hidden)); err != nil {
				return false, err
			}
			return true, nil
		}
		// Bare (hide): showing means dropping the form.
		if !hidden {
			if err := s.doc.DeleteNode(hide); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, nil
	}

	if atom, ok := sexp.ChildSymbol(effects, "hide"); ok {
		if !hidden {
			if err := s.doc.DeleteNode(atom); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, nil
	}

	if !hidden {
		return false, nil
	}
	form := "hide"
	if s.hideAsList() {
		form = "(hide yes)"
	}
	if err := s.insertIntoList(effects, form); err != nil {
		return false, err
	}
	return true, nil
}

// insertIntoList appends text before a list's closing paren, on its own
// line when any of the list's children starts its own line, inline otherwise.
func (s *Schematic) insertIntoList(parent *sexp.Node, text string) error {
	if s.doc.ChildOnOwnLine(parent) {
		return s.doc.InsertBeforeClose(parent, "\n"+s.doc.Indent(parent)+text)
	}
	return s.doc.InsertBeforeClose(parent, " "+text)
}
