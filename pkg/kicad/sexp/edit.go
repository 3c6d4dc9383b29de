package sexp

import "sort"

type editKind int

const (
	editReplace editKind = iota
	editInsert
	editDelete
)

// edit is a pending byte-range operation in original-source coordinates.
// Insertions have start == end.
type edit struct {
	start       int
	end         int
	replacement []byte
	kind        editKind
	seq         int // enqueue order, for same-offset insertions
}

// editQueue accumulates pending edits against the original byte offsets and
// rejects conflicts at enqueue time.
type editQueue struct {
	edits []edit
	seq   int
}

// add enqueues an edit unless it intersects a pending one. Two zero-width
// insertions at the same offset are allowed and applied in enqueue order.
func (q *editQueue) add(start, end int, replacement []byte, kind editKind) error {
	for _, e := range q.edits {
		if editsOverlap(e.start, e.end, start, end) {
			return &OverlappingEditError{Start: start, End: end}
		}
	}
	q.edits = append(q.edits, edit{
		start:       start,
		end:         end,
		replacement: replacement,
		kind:        kind,
		seq:         q.seq,
	})
	q.seq++
	return nil
}

// editsOverlap reports whether two pending ranges conflict. Non-empty ranges
// conflict when they intersect. A zero-width insertion conflicts only when
// it falls strictly inside a non-empty range; insertions at a range boundary
// or at the same offset as another insertion are fine.
func editsOverlap(s1, e1, s2, e2 int) bool {
	if s1 == e1 && s2 == e2 {
		return false
	}
	if s1 == e1 {
		return s2 < s1 && s1 < e2
	}
	if s2 == e2 {
		return s1 < s2 && s2 < e1
	}
	return s1 < e2 && s2 < e1
}

// apply splices all pending edits into a copy of src and returns the result.
// Edits are applied from the highest offset downward so earlier spans'
// offsets stay valid. At a shared start offset a non-empty range is applied
// before any insertion there, so the insertion lands in front of it.
// Same-offset insertions are applied latest-enqueued first, which leaves
// them in enqueue order in the output.
func (q *editQueue) apply(src []byte) []byte {
	ordered := make([]edit, len(q.edits))
	copy(ordered, q.edits)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].start != ordered[j].start {
			return ordered[i].start > ordered[j].start
		}
		if ordered[i].end != ordered[j].end {
			return ordered[i].end > ordered[j].end
		}
		return ordered[i].seq > ordered[j].seq
	})

	out := make([]byte, len(src))
	copy(out, src)
	for _, e := range ordered {
		spliced := make([]byte, 0, len(out)-(e.end-e.start)+len(e.replacement))
		spliced = append(spliced, out[:e.start]...)
		spliced = append(spliced, e.replacement...)
		spliced = append(spliced, out[e.end:]...)
		out = spliced
	}
	return out
}

// len reports the number of pending edits.
func (q *editQueue) len() int { return len(q.edits) }

// reset discards all pending edits.
func (q *editQueue) reset() {
	q.edits = nil
	q.seq = 0
}
