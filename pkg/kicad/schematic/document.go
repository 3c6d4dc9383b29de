// Package schematic edits KiCad schematic files (.kicad_sch) surgically:
// symbols, properties, net labels, and the title block are located through
// the span-tracked s-expression tree and modified in place, leaving every
// byte outside the edit untouched. Both KiCad 6 (space-indented, bare hide
// flags) and KiCad 9 (tab-indented, (hide yes) lists) conventions are
// accepted without reformatting.
package schematic

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceSchEdit/pkg/kicad/sexp"
)

// KiCad 7 switched boolean flags from bare symbols to (flag yes|no) lists.
// Files at or above this version number get the list form when a new hide
// flag has to be synthesized; older files get the bare symbol.
const hideListMinVersion = 20230000

// Schematic is a loaded .kicad_sch document. It wraps the surgery core with
// schematic-aware accessors; all edits accumulate on the underlying document
// and are written out by Commit.
type Schematic struct {
	doc     *sexp.Document
	root    *sexp.Node
	version int
}

// Load parses the schematic file at path.
func Load(path string) (*Schematic, error) {
	doc, err := sexp.Load(path)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

// New parses schematic source bytes.
func New(src []byte) (*Schematic, error) {
	doc, err := sexp.New(src)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func fromDocument(doc *sexp.Document) (*Schematic, error) {
	root := doc.Root()
	if root.Head() != "kicad_sch" {
		return nil, fmt.Errorf("not a schematic file: root node is '%s'", root.Head())
	}

	s := &Schematic{doc: doc, root: root}
	if v, ok := sexp.FindChild(root, "version"); ok {
		if text, ok := sexp.TextAt(v, 1); ok {
			s.version, _ = strconv.Atoi(text)
		}
	}
	return s, nil
}

// Doc exposes the underlying span-tracked document.
func (s *Schematic) Doc() *sexp.Document { return s.doc }

// Root returns the kicad_sch list node.
func (s *Schematic) Root() *sexp.Node { return s.root }

// Version returns the file format version from the (version N) form, or 0.
func (s *Schematic) Version() int { return s.version }

// UUID returns the schematic's top-level uuid string, or "".
func (s *Schematic) UUID() string {
	n, ok := sexp.FindChild(s.root, "uuid")
	if !ok {
		return ""
	}
	text, _ := sexp.TextAt(n, 1)
	return text
}

// Generator returns the generator name from the (generator ...) form, or "".
func (s *Schematic) Generator() string {
	n, ok := sexp.FindChild(s.root, "generator")
	if !ok {
		return ""
	}
	text, _ := sexp.TextAt(n, 1)
	return text
}

// Paper returns the paper size string, or "".
func (s *Schematic) Paper() string {
	n, ok := sexp.FindChild(s.root, "paper")
	if !ok {
		return ""
	}
	text, _ := sexp.TextAt(n, 1)
	return text
}

// hideAsList reports whether newly synthesized hide flags should use the
// (hide yes) list form rather than the bare hide symbol.
func (s *Schematic) hideAsList() bool {
	return s.version >= hideListMinVersion
}

// Commit applies all queued edits and atomically writes the result to path
// (which may equal the source path). The schematic is single-use afterwards.
func (s *Schematic) Commit(path string) error {
	return s.doc.Commit(path)
}

// Path returns the path the schematic was loaded from, or "".
func (s *Schematic) Path() string { return s.doc.Path() }
