package laast

import (
	"encoding/json"
	"sort"
)

// PropertyType is the property key holding a node's canonical kind
const PropertyType = "type"

// Node is one node of a language-agnostic syntax tree. A node owns its
// children by value; there are no parent links and no sharing, so a Node
// is always a finite, rooted tree. Fields are unexported to keep trees
// immutable once built.
type Node struct {
	properties map[string]string
	children   []Node
}

// NewNode creates a node of the given type with the given children
func NewNode(nodeType string, children ...Node) Node {
	n := Node{properties: map[string]string{PropertyType: nodeType}}
	if len(children) > 0 {
		n.children = append([]Node(nil), children...)
	}
	return n
}

// Type returns the canonical kind of the node
func (n Node) Type() string {
	return n.properties[PropertyType]
}

// Property returns an auxiliary property
func (n Node) Property(key string) (string, bool) {
	v, ok := n.properties[key]
	return v, ok
}

// Properties returns a copy of all properties, including the type
func (n Node) Properties() map[string]string {
	out := make(map[string]string, len(n.properties))
	for k, v := range n.properties {
		out[k] = v
	}
	return out
}

// PropertyKeys returns the property keys in sorted order
func (n Node) PropertyKeys() []string {
	keys := make([]string, 0, len(n.properties))
	for k := range n.properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithProperty returns a copy of n with the auxiliary property key set to
// value. The type is fixed at construction: a PropertyType key leaves the
// copy's type unchanged. Children are shared with n; neither copy can
// mutate them.
func (n Node) WithProperty(key, value string) Node {
	props := n.Properties()
	if key == PropertyType {
		return Node{properties: props, children: n.children}
	}
	props[key] = value
	return Node{properties: props, children: n.children}
}

// ChildCount returns the number of children
func (n Node) ChildCount() int {
	return len(n.children)
}

// Child returns the i-th child
func (n Node) Child(i int) Node {
	return n.children[i]
}

// Children returns the children in source order
func (n Node) Children() []Node {
	return append([]Node(nil), n.children...)
}

// IsLeaf returns true if this node has no children
func (n Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Size returns the number of nodes in the tree rooted at n
func (n Node) Size() int {
	size := 1
	for _, child := range n.children {
		size += child.Size()
	}
	return size
}

// Height returns the height of the tree rooted at n; a leaf has height 0
func (n Node) Height() int {
	maxHeight := -1
	for _, child := range n.children {
		if h := child.Height(); h > maxHeight {
			maxHeight = h
		}
	}
	return maxHeight + 1
}

// Equal reports whether two trees have the same shape, types and properties
func (n Node) Equal(other Node) bool {
	if len(n.properties) != len(other.properties) || len(n.children) != len(other.children) {
		return false
	}
	for k, v := range n.properties {
		if ov, ok := other.properties[k]; !ok || ov != v {
			return false
		}
	}
	for i := range n.children {
		if !n.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}

// nodeView is the serialized shape of a Node
type nodeView struct {
	Type       string            `json:"type" yaml:"type"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
	Children   []nodeView        `json:"children,omitempty" yaml:"children,omitempty"`
}

func (n Node) view() nodeView {
	v := nodeView{Type: n.Type()}
	for k, val := range n.properties {
		if k == PropertyType {
			continue
		}
		if v.Properties == nil {
			v.Properties = make(map[string]string)
		}
		v.Properties[k] = val
	}
	for _, child := range n.children {
		v.Children = append(v.Children, child.view())
	}
	return v
}

// MarshalJSON encodes the tree as nested objects
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.view())
}

// MarshalYAML encodes the tree as nested mappings
func (n Node) MarshalYAML() (interface{}, error) {
	return n.view(), nil
}
