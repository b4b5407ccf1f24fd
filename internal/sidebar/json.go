package sidebar

import (
	"bytes"
	"encoding/json"
	"math"
)

// MarshalJSON renders the tree as an object keyed by node key, with keys
// emitted in sibling order:
//
//	{"guide": {"label": "guide", "subEntry": {"intro": {"label": "Introduction", "href": "/docs/guide/intro"}}}}
//
// position is omitted while it is the +Inf default.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeEntries(&buf, t.Entries()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeEntries(buf *bytes.Buffer, nodes []*Node) error {
	buf.WriteByte('{')
	for i, n := range nodes {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(buf, n.Key); err != nil {
			return err
		}
		if err := writeNode(buf, n); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

type field struct {
	name  string
	value any
	omit  bool
}

func writeNode(buf *bytes.Buffer, n *Node) error {
	fields := []field{
		{"label", n.Label, false},
		{"href", n.Href, n.Href == ""},
		{"position", n.Position, math.IsInf(n.Position, 0) || math.IsNaN(n.Position)},
		{"className", n.ClassName, n.ClassName == ""},
		{"customProps", n.CustomProps, len(n.CustomProps) == 0},
		{"collapsible", n.Collapsible, n.Collapsible == nil || !n.HasChildren()},
		{"collapsed", n.Collapsed, n.Collapsed == nil || !n.HasChildren()},
	}

	buf.WriteByte('{')
	first := true
	for _, f := range fields {
		if f.omit {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeKey(buf, f.name); err != nil {
			return err
		}
		v, err := json.Marshal(f.value)
		if err != nil {
			return err
		}
		buf.Write(v)
	}
	if n.HasChildren() {
		if !first {
			buf.WriteByte(',')
		}
		if err := writeKey(buf, "subEntry"); err != nil {
			return err
		}
		if err := writeEntries(buf, n.Children); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}
