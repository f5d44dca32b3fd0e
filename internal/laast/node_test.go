package laast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNode_Basics(t *testing.T) {
	tree := NewNode("A", NewNode("B", NewNode("D")), NewNode("C"))

	assert.Equal(t, "A", tree.Type())
	assert.Equal(t, 4, tree.Size())
	assert.Equal(t, 2, tree.Height())
	assert.Equal(t, 2, tree.ChildCount())
	assert.Equal(t, "B", tree.Child(0).Type())
	assert.True(t, tree.Child(1).IsLeaf())
}

func TestNode_ChildrenIsACopy(t *testing.T) {
	tree := NewNode("A", NewNode("B"))

	children := tree.Children()
	children[0] = NewNode("X")

	assert.Equal(t, "B", tree.Child(0).Type())
}

func TestNode_WithPropertyDoesNotMutate(t *testing.T) {
	n := NewNode("A")
	m := n.WithProperty("text", "hello")

	_, ok := n.Property("text")
	assert.False(t, ok)
	v, ok := m.Property("text")
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
	assert.Equal(t, "A", m.Type())
	assert.False(t, n.Equal(m))
}

func TestNode_WithPropertyKeepsType(t *testing.T) {
	n := NewNode("A", NewNode("B"))

	for _, value := range []string{"", ";", "C"} {
		m := n.WithProperty(PropertyType, value)
		assert.Equal(t, "A", m.Type())
		assert.True(t, n.Equal(m))
		assert.Equal(t, 2, m.Size())
	}
}

func TestNode_Equal(t *testing.T) {
	a := NewNode("A", NewNode("B"), NewNode("C"))
	b := NewNode("A", NewNode("B"), NewNode("C"))
	c := NewNode("A", NewNode("C"), NewNode("B"))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestNode_MarshalJSON(t *testing.T) {
	tree := NewNode("A", NewNode("B").WithProperty("start_line", "1"))

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"A","children":[{"type":"B","properties":{"start_line":"1"}}]}`, string(data))
}

func TestNode_MarshalYAML(t *testing.T) {
	tree := NewNode("A", NewNode("B"))

	data, err := yaml.Marshal(tree)
	require.NoError(t, err)
	assert.Contains(t, string(data), "type: A")
	assert.Contains(t, string(data), "- type: B")
}
