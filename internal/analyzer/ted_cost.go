package analyzer

// CostModel defines the interface for calculating edit operation costs
type CostModel interface {
	// Insert returns the cost of inserting a node
	Insert(node *TreeNode) int

	// Delete returns the cost of deleting a node
	Delete(node *TreeNode) int

	// Rename returns the cost of renaming node1 to node2
	Rename(node1, node2 *TreeNode) int
}

// DefaultCostModel charges 1 for insertions and deletions and 1 for a rename
// between different types. Renaming to the same type is free.
type DefaultCostModel struct{}

// NewDefaultCostModel creates a new default cost model
func NewDefaultCostModel() *DefaultCostModel {
	return &DefaultCostModel{}
}

// Insert returns the cost of inserting a node (always 1)
func (c *DefaultCostModel) Insert(node *TreeNode) int {
	return 1
}

// Delete returns the cost of deleting a node (always 1)
func (c *DefaultCostModel) Delete(node *TreeNode) int {
	return 1
}

// Rename returns 0 when both nodes carry the same type and 1 otherwise
func (c *DefaultCostModel) Rename(node1, node2 *TreeNode) int {
	if node1.Label == node2.Label {
		return 0
	}
	return 1
}
