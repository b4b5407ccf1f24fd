package markdown

import (
	"errors"
	"fmt"
	"sort"
)

// Edit is a byte-range replacement of source[Start:End] (End exclusive).
type Edit struct {
	Start       int
	End         int
	Replacement []byte
}

// ApplyEdits applies non-overlapping edits expressed in offsets of the
// original source. Edits are applied back to front so earlier offsets stay
// valid.
func ApplyEdits(source []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End > sorted[j].End
		}
		return sorted[i].Start > sorted[j].Start
	})

	for i, e := range sorted {
		switch {
		case e.Start < 0 || e.End < 0:
			return nil, fmt.Errorf("invalid edit[%d]: negative range", i)
		case e.End < e.Start:
			return nil, fmt.Errorf("invalid edit[%d]: end before start", i)
		case e.End > len(source):
			return nil, fmt.Errorf("invalid edit[%d]: range out of bounds", i)
		case i > 0 && e.End > sorted[i-1].Start:
			return nil, errors.New("invalid edits: overlapping ranges")
		}
	}

	out := append([]byte(nil), source...)
	for _, e := range sorted {
		next := make([]byte, 0, len(out)-(e.End-e.Start)+len(e.Replacement))
		next = append(next, out[:e.Start]...)
		next = append(next, e.Replacement...)
		next = append(next, out[e.End:]...)
		out = next
	}
	return out, nil
}

// RewriteDestinations locates every destination in source and replaces the
// ones fn returns a new value for. It returns the updated source and the
// number of destinations changed.
func RewriteDestinations(source []byte, opts Options, fn func(Destination) (string, bool)) ([]byte, int, error) {
	dests, err := Destinations(source, opts)
	if err != nil {
		return nil, 0, err
	}
	edits := make([]Edit, 0, len(dests))
	for _, d := range dests {
		href, ok := fn(d)
		if !ok || href == d.Value {
			continue
		}
		edits = append(edits, d.Edit(href))
	}
	out, err := ApplyEdits(source, edits)
	if err != nil {
		return nil, 0, err
	}
	return out, len(edits), nil
}
