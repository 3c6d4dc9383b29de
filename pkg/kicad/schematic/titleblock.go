package schematic

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSchEdit/pkg/kicad/sexp"
)

// Single-valued title block fields, in KiCad's canonical write order.
var titleBlockFields = []string{"title", "date", "rev", "company"}

// TitleBlockInfo is the decoded title block content.
type TitleBlockInfo struct {
	Title    string         `json:"title"`
	Date     string         `json:"date"`
	Revision string         `json:"revision"`
	Company  string         `json:"company"`
	Comments map[int]string `json:"comments,omitempty"`
}

// TitleBlockInfo reads the current title block; a missing title block
// yields zero values.
func (s *Schematic) TitleBlockInfo() TitleBlockInfo {
	info := TitleBlockInfo{Comments: make(map[int]string)}
	tb, ok := s.TitleBlock()
	if !ok {
		return info
	}
	get := func(head string) string {
		n, ok := sexp.FieldOf(tb, head)
		if !ok {
			return ""
		}
		v, _ := sexp.StringAt(n, 1)
		return v
	}
	info.Title = get("title")
	info.Date = get("date")
	info.Revision = get("rev")
	info.Company = get("company")
	for _, c := range sexp.ChildrenOfKind(tb, "comment") {
		idxText, ok := sexp.TextAt(c, 1)
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(idxText)
		if err != nil {
			continue
		}
		if v, ok := sexp.StringAt(c, 2); ok {
			info.Comments[idx] = v
		}
	}
	return info
}

// UpdateTitleBlock sets title block fields. Keys are "title", "date",
// "rev", "company", and "comment1".."commentN". Existing fields have just
// their value token replaced; absent fields are inserted before the title
// block's closing paren. A schematic without a title block gets one
// synthesized after the file header forms. Returns the number of fields
// that actually changed.
func (s *Schematic) UpdateTitleBlock(fields map[string]string) (int, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, err := titleBlockField(name); err != nil {
			return 0, err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	tb, ok := s.TitleBlock()
	if !ok {
		if len(fields) == 0 {
			return 0, nil
		}
		if err := s.insertTitleBlock(fields); err != nil {
			return 0, err
		}
		return len(fields), nil
	}

	count := 0
	for _, name := range names {
		value := fields[name]
		head, index := splitTitleBlockField(name)

		var node *sexp.Node
		var found bool
		if index == 0 {
			node, found = sexp.FieldOf(tb, head)
		} else {
			node, found = sexp.IndexedFieldOf(tb, head, strconv.Itoa(index))
		}

		if found {
			valuePos := 1
			if index != 0 {
				valuePos = 2
			}
			atom := node.Child(valuePos)
			if atom == nil || atom.Kind() != sexp.KindString {
				return count, fmt.Errorf("title block field %q has no value token", name)
			}
			if atom.Text() == value {
				continue
			}
			if err := s.doc.ReplaceAtom(atom, sexp.EncodeString(value)); err != nil {
				return count, err
			}
			count++
			continue
		}

		if err := s.insertIntoList(tb, titleBlockFieldText(head, index, value)); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// insertTitleBlock synthesizes a complete title block after the last header
// form (paper, uuid, generator, version — whichever appears last).
func (s *Schematic) insertTitleBlock(fields map[string]string) error {
	var anchor *sexp.Node
	for _, head := range []string{"version", "generator", "generator_version", "uuid", "paper"} {
		if n, ok := sexp.FindChild(s.root, head); ok {
			if anchor == nil || n.Start() > anchor.Start() {
				anchor = n
			}
		}
	}
	if anchor == nil {
		anchor = s.root.Child(0)
	}

	outer := s.doc.Indent(s.root)
	inner := outer + outer

	var b strings.Builder
	b.WriteString("\n" + outer + "(title_block")
	for _, head := range titleBlockFields {
		if v, ok := fields[head]; ok {
			b.WriteString("\n" + inner + titleBlockFieldText(head, 0, v))
		}
	}
	var commentIdx []int
	for name := range fields {
		if _, idx := splitTitleBlockField(name); idx != 0 {
			commentIdx = append(commentIdx, idx)
		}
	}
	sort.Ints(commentIdx)
	for _, idx := range commentIdx {
		b.WriteString("\n" + inner + titleBlockFieldText("comment", idx, fields[fmt.Sprintf("comment%d", idx)]))
	}
	b.WriteString("\n" + outer + ")")

	return s.doc.InsertAfter(anchor, b.String())
}

// titleBlockField validates a field key and reports its kind.
func titleBlockField(name string) (string, error) {
	head, index := splitTitleBlockField(name)
	if head == "" {
		return "", fmt.Errorf("unknown title block field %q", name)
	}
	if head == "comment" && index < 1 {
		return "", fmt.Errorf("comment field needs a positive index, got %q", name)
	}
	return head, nil
}

// splitTitleBlockField maps "rev" → ("rev", 0) and "comment3" →
// ("comment", 3). Unknown names yield ("", 0).
func splitTitleBlockField(name string) (string, int) {
	for _, head := range titleBlockFields {
		if name == head {
			return head, 0
		}
	}
	if rest, ok := strings.CutPrefix(name, "comment"); ok {
		if idx, err := strconv.Atoi(rest); err == nil && idx >= 1 {
			return "comment", idx
		}
	}
	return "", 0
}

func titleBlockFieldText(head string, index int, value string) string {
	if index != 0 {
		return fmt.Sprintf("(%s %d %s)", head, index, sexp.EncodeString(value))
	}
	return fmt.Sprintf("(%s %s)", head, sexp.EncodeString(value))
}
