// Package sidebar compiles a flat document list into an ordered navigation tree.
package sidebar

import (
	"math"
	"strings"
)

// Node is one entry of the navigation tree. Children are ordered; sibling
// keys are unique.
type Node struct {
	Key         string
	Label       string
	Href        string
	Position    float64
	ClassName   string
	CustomProps map[string]any
	// Collapsible and Collapsed are only kept on nodes with children.
	Collapsible *bool
	Collapsed   *bool
	Children    []*Node

	byKey       map[string]*Node
	dir         bool
	positionSet bool
}

func newPlaceholder(key string) *Node {
	return &Node{Key: key, Label: key, Position: math.Inf(1), dir: true}
}

// HasChildren reports whether the node is a category with entries below it.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// Child returns the direct child with key.
func (n *Node) Child(key string) *Node {
	for _, c := range n.Children {
		if c.Key == key {
			return c
		}
	}
	return nil
}

func (n *Node) child(key string) *Node {
	if n.byKey == nil {
		return nil
	}
	return n.byKey[key]
}

func (n *Node) addChild(c *Node) {
	if n.byKey == nil {
		n.byKey = make(map[string]*Node)
	}
	n.byKey[c.Key] = c
	n.Children = append(n.Children, c)
}

// Tree is the navigation tree. Its root is synthetic and never rendered.
type Tree struct {
	root *Node
}

func newTree() *Tree {
	return &Tree{root: &Node{Position: math.Inf(1)}}
}

// Entries returns the top-level nodes in order.
func (t *Tree) Entries() []*Node {
	if t == nil || t.root == nil {
		return nil
	}
	return t.root.Children
}

// Find returns the node at the given key path.
func (t *Tree) Find(keys ...string) *Node {
	if t == nil || t.root == nil || len(keys) == 0 {
		return nil
	}
	n := t.root
	for _, k := range keys {
		if n = n.Child(k); n == nil {
			return nil
		}
	}
	return n
}

// FindPath is Find with a slash-separated key path.
func (t *Tree) FindPath(p string) *Node {
	return t.Find(strings.Split(strings.Trim(p, "/"), "/")...)
}

// Walk visits nodes depth-first in sibling order. keys is the node's key
// path; it must not be retained. Returning false skips the node's children.
func (t *Tree) Walk(fn func(keys []string, n *Node) bool) {
	if t == nil || t.root == nil {
		return
	}
	var visit func(prefix []string, nodes []*Node)
	visit = func(prefix []string, nodes []*Node) {
		for _, n := range nodes {
			keys := append(prefix, n.Key)
			if fn(keys, n) {
				visit(keys, n.Children)
			}
		}
	}
	visit(make([]string, 0, 8), t.root.Children)
}

// Count returns the number of nodes in the tree.
func (t *Tree) Count() int {
	count := 0
	t.Walk(func([]string, *Node) bool {
		count++
		return true
	})
	return count
}

// Hrefs returns every href in reading order.
func (t *Tree) Hrefs() []string {
	var out []string
	t.Walk(func(_ []string, n *Node) bool {
		if n.Href != "" {
			out = append(out, n.Href)
		}
		return true
	})
	return out
}
