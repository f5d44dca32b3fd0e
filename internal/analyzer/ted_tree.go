package analyzer

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/laast"
)

// TreeNode is the edit distance view of a LAAST node.
// Only Label participates in costs.
type TreeNode struct {
	ID       int
	Label    string
	Children []*TreeNode

	// Post-order indices filled in by PrepareTreeForTED
	PostOrderID  int
	LeftMostLeaf int
	KeyRoot      bool
}

// NewTreeNode creates a new tree node
func NewTreeNode(id int, label string) *TreeNode {
	return &TreeNode{
		ID:           id,
		Label:        label,
		Children:     []*TreeNode{},
		PostOrderID:  -1,
		LeftMostLeaf: -1,
	}
}

// AddChild appends a child node
func (t *TreeNode) AddChild(child *TreeNode) {
	t.Children = append(t.Children, child)
}

// IsLeaf returns true if the node has no children
func (t *TreeNode) IsLeaf() bool {
	return len(t.Children) == 0
}

// Size returns the number of nodes in the subtree rooted at t
func (t *TreeNode) Size() int {
	size := 1
	for _, child := range t.Children {
		size += child.Size()
	}
	return size
}

// String returns a bracket rendering of the subtree
func (t *TreeNode) String() string {
	var sb strings.Builder
	t.writeBracket(&sb)
	return sb.String()
}

func (t *TreeNode) writeBracket(sb *strings.Builder) {
	sb.WriteByte('{')
	sb.WriteString(t.Label)
	for _, child := range t.Children {
		child.writeBracket(sb)
	}
	sb.WriteByte('}')
}

// TreeConverter converts LAAST nodes into TreeNodes
type TreeConverter struct {
	nextID int
}

// NewTreeConverter creates a new tree converter
func NewTreeConverter() *TreeConverter {
	return &TreeConverter{}
}

// Convert builds a TreeNode tree mirroring root. A node with a blank type
// is malformed and yields a COMPUTATION_FATAL error.
func (tc *TreeConverter) Convert(root laast.Node) (*TreeNode, error) {
	tc.nextID = 0
	return tc.convert(root)
}

func (tc *TreeConverter) convert(n laast.Node) (*TreeNode, error) {
	if strings.TrimSpace(n.Type()) == "" {
		return nil, domain.NewComputationFatalError("tree node has no type", nil)
	}
	node := NewTreeNode(tc.nextID, n.Type())
	tc.nextID++
	for i := 0; i < n.ChildCount(); i++ {
		child, err := tc.convert(n.Child(i))
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	return node, nil
}

// postOrderTree is the flattened form consumed by the Zhang-Shasha recurrence.
// It is read-only after construction and safe to share between goroutines.
type postOrderTree struct {
	nodes    []*TreeNode
	lml      []int
	keyRoots []int
}

func (p *postOrderTree) size() int {
	return len(p.nodes)
}

// PrepareTreeForTED assigns post-order ids and leftmost leaves and marks
// keyroots. Cyclic or shared subtrees, nil nodes and blank labels are
// rejected with COMPUTATION_FATAL.
func PrepareTreeForTED(root *TreeNode) (*postOrderTree, error) {
	if root == nil {
		return nil, domain.NewComputationFatalError("tree is nil", nil)
	}

	p := &postOrderTree{}
	visiting := make(map[*TreeNode]bool)
	if err := p.visit(root, visiting); err != nil {
		return nil, err
	}

	// A node is a keyroot when no later node in post-order shares its
	// leftmost leaf. Iterating in post-order keeps keyRoots ascending.
	lastWithLeaf := make(map[int]int, len(p.nodes))
	for i, l := range p.lml {
		lastWithLeaf[l] = i
	}
	for i, l := range p.lml {
		if lastWithLeaf[l] == i {
			p.nodes[i].KeyRoot = true
			p.keyRoots = append(p.keyRoots, i)
		} else {
			p.nodes[i].KeyRoot = false
		}
	}
	return p, nil
}

func (p *postOrderTree) visit(node *TreeNode, visiting map[*TreeNode]bool) error {
	if node == nil {
		return domain.NewComputationFatalError("tree contains a nil node", nil)
	}
	if strings.TrimSpace(node.Label) == "" {
		return domain.NewComputationFatalError(fmt.Sprintf("tree node %d has no type", node.ID), nil)
	}
	if visiting[node] {
		return domain.NewComputationFatalError(fmt.Sprintf("tree node %d is reachable twice", node.ID), nil)
	}
	visiting[node] = true

	leftmost := -1
	for i, child := range node.Children {
		if err := p.visit(child, visiting); err != nil {
			return err
		}
		if i == 0 {
			leftmost = child.LeftMostLeaf
		}
	}

	node.PostOrderID = len(p.nodes)
	if leftmost < 0 {
		leftmost = node.PostOrderID
	}
	node.LeftMostLeaf = leftmost
	p.nodes = append(p.nodes, node)
	p.lml = append(p.lml, leftmost)
	return nil
}
