package sexp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Document is a parsed s-expression file bound to its original source bytes.
// The tree and span index are built once at load and are read-only; edits
// accumulate in a queue and are applied on Commit. A document is single-use:
// after a successful commit, further edits require reloading.
type Document struct {
	path      string
	src       []byte
	tops      []*Node
	root      *Node
	queue     editQueue
	committed bool
}

// Load reads and parses the file at path.
func Load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := New(src)
	if err != nil {
		return nil, err
	}
	doc.path = path
	return doc, nil
}

// New parses source bytes into a document. The byte slice must not be
// modified by the caller afterwards.
func New(src []byte) (*Document, error) {
	tops, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return &Document{
		src:  src,
		tops: tops,
		root: firstList(tops),
	}, nil
}

// Root returns the first top-level list (the kicad_sch form).
func (d *Document) Root() *Node { return d.root }

// Source returns the original source bytes. Callers must not modify them.
func (d *Document) Source() []byte { return d.src }

// Path returns the path the document was loaded from, or "".
func (d *Document) Path() string { return d.path }

// PendingEdits reports the number of queued edits.
func (d *Document) PendingEdits() int { return d.queue.len() }

// ReplaceAtom queues replacement of an atom's exact span with encoded bytes
// produced by the caller (see EncodeString, FormatBool, FormatNumber). This
// is the preferred operation for value-only edits: the surrounding list's
// whitespace, ordering, and unrelated children are untouched.
func (d *Document) ReplaceAtom(n *Node, encoded string) error {
	if d.committed {
		return ErrCommitted
	}
	if n == nil || !n.IsAtom() {
		return fmt.Errorf("replace target is not an atom")
	}
	return d.queue.add(n.start, n.end, []byte(encoded), editReplace)
}

// ReplaceList queues replacement of a list's full '(' … ')' span. The caller
// supplies formatted bytes; nothing is reflowed.
func (d *Document) ReplaceList(n *Node, formatted string) error {
	if d.committed {
		return ErrCommitted
	}
	if n == nil || !n.IsList() {
		return fmt.Errorf("replace target is not a list")
	}
	return d.queue.add(n.start, n.end, []byte(formatted), editReplace)
}

// InsertBeforeClose queues insertion of bytes immediately before a list's
// closing ')'. The caller is responsible for a leading newline/indent that
// matches sibling style; see Indent.
func (d *Document) InsertBeforeClose(n *Node, text string) error {
	if d.committed {
		return ErrCommitted
	}
	if n == nil || !n.IsList() {
		return fmt.Errorf("insertion parent is not a list")
	}
	pos := n.end - 1
	return d.queue.add(pos, pos, []byte(text), editInsert)
}

// InsertAfter queues insertion of bytes immediately after a node, inside the
// same parent list.
func (d *Document) InsertAfter(n *Node, text string) error {
	if d.committed {
		return ErrCommitted
	}
	if n == nil {
		return fmt.Errorf("insertion anchor is nil")
	}
	return d.queue.add(n.end, n.end, []byte(text), editInsert)
}

// DeleteNode queues deletion of a node's span plus leading whitespace back
// to the previous non-whitespace byte or newline, whichever is nearer, so
// removing a child does not strand a blank line.
func (d *Document) DeleteNode(n *Node) error {
	if d.committed {
		return ErrCommitted
	}
	if n == nil {
		return fmt.Errorf("delete target is nil")
	}
	start := n.start
	for start > 0 && (d.src[start-1] == ' ' || d.src[start-1] == '\t') {
		start--
	}
	if start > 0 && d.src[start-1] == '\n' {
		start--
		if start > 0 && d.src[start-1] == '\r' {
			start--
		}
	}
	return d.queue.add(start, n.end, nil, editDelete)
}

// Indent infers the indentation for a new child of list n from the leading
// whitespace of n's first existing child. A list with no children (or whose
// children share the head's line) yields a single tab.
func (d *Document) Indent(n *Node) string {
	if n == nil || !n.IsList() {
		return "\t"
	}
	// Walk children after the head atom; the first one that starts its own
	// line determines sibling indentation.
	for i := 1; i < len(n.children); i++ {
		if ws, ok := d.indentBefore(n.children[i]); ok {
			return ws
		}
	}
	return "\t"
}

// ChildOnOwnLine reports whether any element of list n after the head atom
// starts its own line. Callers use this to decide between newline-indented
// and inline insertion.
func (d *Document) ChildOnOwnLine(n *Node) bool {
	if n == nil || !n.IsList() {
		return false
	}
	for i := 1; i < len(n.children); i++ {
		if _, ok := d.indentBefore(n.children[i]); ok {
			return true
		}
	}
	return false
}

// indentBefore returns the run of spaces/tabs between the preceding newline
// and the node, or ok=false if the node does not start its own line.
func (d *Document) indentBefore(n *Node) (string, bool) {
	i := n.start
	for i > 0 && (d.src[i-1] == ' ' || d.src[i-1] == '\t') {
		i--
	}
	if i == 0 || d.src[i-1] != '\n' {
		return "", false
	}
	return string(d.src[i:n.start]), true
}

// Bytes applies all pending edits to a copy of the source and returns the
// result without touching the queue or the filesystem.
func (d *Document) Bytes() []byte {
	return d.queue.apply(d.src)
}

// Commit applies the queued edits and writes the result to path atomically:
// a sibling temp file is written and fsynced, then renamed over the target.
// On any failure the temp file is removed and the target is untouched. The
// document is single-use after a successful commit.
func (d *Document) Commit(path string) error {
	if d.committed {
		return ErrCommitted
	}
	out := d.queue.apply(d.src)

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", filepath.Base(path), uuid.NewString()))

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.Write(out); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	d.queue.reset()
	d.committed = true
	return nil
}
