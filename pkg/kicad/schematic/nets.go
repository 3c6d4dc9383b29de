package schematic

import (
	"github.com/OpenTraceLab/OpenTraceSchEdit/pkg/kicad/sexp"
)

// RenameNet replaces the net name on every label, global_label, and
// hierarchical_label whose text equals old. Only the name tokens change;
// shapes, positions, effects, and uuids keep their original bytes. Returns
// the number of labels renamed (zero is not an error).
func (s *Schematic) RenameNet(old, new string) (int, error) {
	count := 0
	for _, label := range s.FindLabels(LabelKinds, old) {
		atom := label.Child(1)
		if atom.Text() != old {
			continue
		}
		if err := s.doc.ReplaceAtom(atom, sexp.EncodeString(new)); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// NetNames returns the distinct net names across all label kinds, in first-
// appearance order.
func (s *Schematic) NetNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, label := range s.FindLabels(AllLabelKinds, "") {
		name, ok := sexp.StringAt(label, 1)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
