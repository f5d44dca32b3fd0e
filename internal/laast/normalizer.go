package laast

import (
	"strconv"
	"strings"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/parser"
)

// Auxiliary property keys recorded when positions are enabled
const (
	PropertyStartLine   = "start_line"
	PropertyStartColumn = "start_column"
)

// Normalizer converts concrete syntax trees into LAAST nodes
type Normalizer struct {
	blacklist       Blacklist
	types           TypeMap
	recordPositions bool
}

// NormalizerOption configures a Normalizer
type NormalizerOption func(*Normalizer)

// WithTypeMap sets the canonical kind mapping. The default is the identity.
func WithTypeMap(types TypeMap) NormalizerOption {
	return func(n *Normalizer) {
		n.types = types
	}
}

// WithPositions records one-based start line and column as properties
func WithPositions(enabled bool) NormalizerOption {
	return func(n *Normalizer) {
		n.recordPositions = enabled
	}
}

// NewNormalizer creates a normalizer dropping the kinds in blacklist
func NewNormalizer(blacklist Blacklist, opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		blacklist: blacklist,
		types:     IdentityTypeMap(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Blacklist returns the blacklist the normalizer filters with
func (n *Normalizer) Blacklist() Blacklist {
	return n.blacklist
}

// Normalize walks root depth-first and builds the LAAST tree. Blacklisted
// and blank kinds are dropped together with their subtrees; the remaining
// children keep their relative order. It fails only when the root itself
// cannot become a node.
func (n *Normalizer) Normalize(root parser.Node) (Node, error) {
	if root == nil {
		return Node{}, domain.NewNormalizeError("concrete tree has no root", nil)
	}

	node, ok := n.convert(root)
	if !ok {
		return Node{}, domain.NewNormalizeError(
			"root kind "+strconv.Quote(root.Kind())+" cannot be represented", nil)
	}
	return node, nil
}

func (n *Normalizer) convert(cn parser.Node) (Node, bool) {
	// Some grammars pad anonymous token kinds with whitespace
	kind := strings.TrimSpace(cn.Kind())
	if kind == "" || n.blacklist.Contains(kind) {
		return Node{}, false
	}

	node := Node{properties: map[string]string{PropertyType: n.types.Canonical(kind)}}
	if n.recordPositions {
		row, col := cn.StartPosition()
		node.properties[PropertyStartLine] = strconv.Itoa(row + 1)
		node.properties[PropertyStartColumn] = strconv.Itoa(col + 1)
	}

	count := cn.ChildCount()
	if count > 0 {
		node.children = make([]Node, 0, count)
	}
	for i := 0; i < count; i++ {
		child := cn.Child(i)
		if child == nil {
			continue
		}
		if converted, ok := n.convert(child); ok {
			node.children = append(node.children, converted)
		}
	}
	if len(node.children) == 0 {
		node.children = nil
	}

	return node, true
}
