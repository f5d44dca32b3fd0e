package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/laast"
)

func leaf(t string) laast.Node { return laast.NewNode(t) }

func TestTEDAnalyzer_SingleNodes(t *testing.T) {
	a := NewTEDAnalyzer(nil)

	d, err := a.Distance(leaf("a"), leaf("a"))
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	d, err = a.Distance(leaf("a"), leaf("b"))
	require.NoError(t, err)
	assert.Equal(t, 1, d)
}

func TestTEDAnalyzer_IdenticalTrees(t *testing.T) {
	tree := laast.NewNode("unit",
		laast.NewNode("function_definition", leaf("identifier"), laast.NewNode("parameters"), laast.NewNode("block", leaf("return"))),
		leaf("comment"),
	)
	d, err := NewTEDAnalyzer(nil).Distance(tree, tree)
	require.NoError(t, err)
	assert.Equal(t, 0, d)
}

func TestTEDAnalyzer_InsertedLeaf(t *testing.T) {
	left := laast.NewNode("unit", leaf("a"), leaf("b"))
	right := laast.NewNode("unit", leaf("a"), leaf("x"), leaf("b"))

	a := NewTEDAnalyzer(nil)
	d, err := a.Distance(left, right)
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	d, err = a.Distance(right, left)
	require.NoError(t, err)
	assert.Equal(t, 1, d)
}

func TestTEDAnalyzer_KnownDistances(t *testing.T) {
	tests := []struct {
		name     string
		left     laast.Node
		right    laast.Node
		expected int
	}{
		{
			name:     "rename root",
			left:     laast.NewNode("a", leaf("b")),
			right:    laast.NewNode("x", leaf("b")),
			expected: 1,
		},
		{
			name:     "delete inner node promotes children",
			left:     laast.NewNode("a", laast.NewNode("b", leaf("c"), leaf("d"))),
			right:    laast.NewNode("a", leaf("c"), leaf("d")),
			expected: 1,
		},
		{
			name:     "leaf against deep chain",
			left:     leaf("a"),
			right:    laast.NewNode("a", laast.NewNode("b", leaf("c"))),
			expected: 2,
		},
		{
			// Classic Zhang-Shasha example: f(d(a c(b)) e) vs f(c(d(a b)) e)
			name: "zhang shasha paper example",
			left: laast.NewNode("f",
				laast.NewNode("d", leaf("a"), laast.NewNode("c", leaf("b"))),
				leaf("e"),
			),
			right: laast.NewNode("f",
				laast.NewNode("c", laast.NewNode("d", leaf("a"), leaf("b"))),
				leaf("e"),
			),
			expected: 2,
		},
		{
			name:     "swapped siblings",
			left:     laast.NewNode("r", leaf("a"), leaf("b")),
			right:    laast.NewNode("r", leaf("b"), leaf("a")),
			expected: 2,
		},
	}

	a := NewTEDAnalyzer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := a.Distance(tt.left, tt.right)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestTEDAnalyzer_MetricProperties(t *testing.T) {
	trees := []laast.Node{
		leaf("a"),
		laast.NewNode("a", leaf("b"), leaf("c")),
		laast.NewNode("a", laast.NewNode("b", leaf("c"))),
		laast.NewNode("x", leaf("b"), laast.NewNode("c", leaf("d"), leaf("e"))),
		laast.NewNode("a", leaf("c"), leaf("b"), leaf("b")),
	}
	a := NewTEDAnalyzer(nil)

	dist := make([][]int, len(trees))
	for i := range trees {
		dist[i] = make([]int, len(trees))
		for j := range trees {
			d, err := a.Distance(trees[i], trees[j])
			require.NoError(t, err)
			dist[i][j] = d
		}
	}

	for i := range trees {
		assert.Equal(t, 0, dist[i][i], "identity for tree %d", i)
		for j := range trees {
			assert.Equal(t, dist[i][j], dist[j][i], "symmetry for %d,%d", i, j)
			if i != j && !trees[i].Equal(trees[j]) {
				assert.Positive(t, dist[i][j])
			}
			for k := range trees {
				assert.LessOrEqual(t, dist[i][k], dist[i][j]+dist[j][k], "triangle %d,%d,%d", i, j, k)
			}
		}
	}
}

func TestTEDAnalyzer_UpperBoundedBySizes(t *testing.T) {
	left := laast.NewNode("a", leaf("b"), leaf("c"), leaf("d"))
	right := laast.NewNode("x", laast.NewNode("y", leaf("z")))

	d, err := NewTEDAnalyzer(nil).Distance(left, right)
	require.NoError(t, err)
	assert.LessOrEqual(t, d, left.Size()+right.Size())
	assert.Equal(t, 5, d)
}

func TestTEDAnalyzer_PropertiesIgnored(t *testing.T) {
	left := laast.NewNode("unit", leaf("a").WithProperty(laast.PropertyStartLine, "1"))
	right := laast.NewNode("unit", leaf("a").WithProperty(laast.PropertyStartLine, "9"))

	d, err := NewTEDAnalyzer(nil).Distance(left, right)
	require.NoError(t, err)
	assert.Equal(t, 0, d)
}

func TestTEDAnalyzer_MalformedTrees(t *testing.T) {
	a := NewTEDAnalyzer(nil)

	t.Run("blank type", func(t *testing.T) {
		_, err := a.Distance(laast.NewNode("unit", laast.NewNode("  ")), leaf("unit"))
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.ErrCodeComputationFatal))
	})

	t.Run("nil tree", func(t *testing.T) {
		_, err := a.ComputeDistance(nil, NewTreeNode(0, "a"))
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.ErrCodeComputationFatal))
	})

	t.Run("nil child", func(t *testing.T) {
		root := NewTreeNode(0, "a")
		root.AddChild(nil)
		_, err := a.ComputeDistance(root, NewTreeNode(1, "a"))
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.ErrCodeComputationFatal))
	})

	t.Run("cycle", func(t *testing.T) {
		root := NewTreeNode(0, "a")
		child := NewTreeNode(1, "b")
		root.AddChild(child)
		child.AddChild(root)
		_, err := a.ComputeDistance(root, NewTreeNode(2, "a"))
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.ErrCodeComputationFatal))
	})
}

type renameOnlyCostModel struct{ *DefaultCostModel }

func (renameOnlyCostModel) Rename(a, b *TreeNode) int {
	if a.Label == b.Label {
		return 0
	}
	return 5
}

func TestTEDAnalyzer_CustomCostModel(t *testing.T) {
	// A rename costing 5 is beaten by delete + insert
	d, err := NewTEDAnalyzer(renameOnlyCostModel{NewDefaultCostModel()}).Distance(leaf("a"), leaf("b"))
	require.NoError(t, err)
	assert.Equal(t, 2, d)
}
