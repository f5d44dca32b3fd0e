package laast

import (
	"testing"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNode is an in-memory concrete tree used to drive the normalizer
type fakeNode struct {
	kind     string
	row, col int
	children []*fakeNode
}

func fn(kind string, children ...*fakeNode) *fakeNode {
	return &fakeNode{kind: kind, children: children}
}

func (f *fakeNode) Kind() string    { return f.kind }
func (f *fakeNode) ChildCount() int { return len(f.children) }
func (f *fakeNode) Child(i int) parser.Node {
	return f.children[i]
}
func (f *fakeNode) StartPosition() (int, int) { return f.row, f.col }

func types(n Node) []string {
	out := []string{n.Type()}
	for _, c := range n.children {
		out = append(out, types(c)...)
	}
	return out
}

func TestNormalizer_DropsBlacklistedLeaves(t *testing.T) {
	n := NewNormalizer(DefaultBlacklist())

	root := fn("call",
		fn("identifier"),
		fn("argument_list", fn("("), fn("string", fn("\""), fn("string_content"), fn("\"")), fn(")")),
		fn(";"),
	)

	got, err := n.Normalize(root)
	require.NoError(t, err)

	expected := NewNode("call",
		NewNode("identifier"),
		NewNode("argument_list", NewNode("string", NewNode("string_content"))),
	)
	assert.True(t, expected.Equal(got), "got %s", Bracket(got))
}

func TestNormalizer_DropsWholeBlacklistedSubtree(t *testing.T) {
	n := NewNormalizer(DefaultBlacklist())

	root := fn("block",
		fn("{", fn("}"), fn(":")),
		fn("statement"),
		fn("[", fn("]")),
	)

	got, err := n.Normalize(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"block", "statement"}, types(got))
}

func TestNormalizer_PreservesChildOrder(t *testing.T) {
	n := NewNormalizer(DefaultBlacklist())

	root := fn("root", fn("a"), fn("."), fn("b"), fn("("), fn("c"), fn(")"), fn("d"))

	got, err := n.Normalize(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "a", "b", "c", "d"}, types(got))
}

func TestNormalizer_TrimsKinds(t *testing.T) {
	n := NewNormalizer(DefaultBlacklist())

	root := fn(" module ", fn(" ; "), fn("\tcall\n"), fn("   "))

	got, err := n.Normalize(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"module", "call"}, types(got))
}

func TestNormalizer_NamedAndAnonymousAreTreatedAlike(t *testing.T) {
	n := NewNormalizer(DefaultBlacklist())

	// "=" and "def" are anonymous tokens in most grammars
	root := fn("assignment", fn("identifier"), fn("="), fn("integer"))

	got, err := n.Normalize(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"assignment", "identifier", "=", "integer"}, types(got))
}

func TestNormalizer_TypeMap(t *testing.T) {
	n := NewNormalizer(DefaultBlacklist(), WithTypeMap(DefaultTypeMap()))

	root := fn("source_file", fn("function_item", fn("parameters"), fn("block")))

	got, err := n.Normalize(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"unit", "function_definition", "parameters", "block"}, types(got))
}

func TestNormalizer_Positions(t *testing.T) {
	n := NewNormalizer(DefaultBlacklist(), WithPositions(true))

	root := &fakeNode{kind: "module", children: []*fakeNode{{kind: "expr", row: 2, col: 4}}}

	got, err := n.Normalize(root)
	require.NoError(t, err)

	line, ok := got.Child(0).Property(PropertyStartLine)
	require.True(t, ok)
	assert.Equal(t, "3", line)
	col, _ := got.Child(0).Property(PropertyStartColumn)
	assert.Equal(t, "5", col)
}

func TestNormalizer_RootFailures(t *testing.T) {
	n := NewNormalizer(DefaultBlacklist())

	tests := []struct {
		name string
		root parser.Node
	}{
		{name: "nil root", root: nil},
		{name: "blacklisted root", root: fn(";")},
		{name: "blank root", root: fn("  ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.root)
			require.Error(t, err)
			assert.True(t, domain.IsCode(err, domain.ErrCodeNormalizeError))
		})
	}
}

func TestNormalizer_EmptyChildrenRoot(t *testing.T) {
	n := NewNormalizer(DefaultBlacklist())

	got, err := n.Normalize(fn("program", fn("("), fn(")")))
	require.NoError(t, err)
	assert.Equal(t, "program", got.Type())
	assert.True(t, got.IsLeaf())
}

func TestBlacklist(t *testing.T) {
	b := DefaultBlacklist()
	for _, kind := range []string{"(", ")", ".", ";", "!", "[", "]", "{", "}", "\"", "'", "\\", ":"} {
		assert.True(t, b.Contains(kind), kind)
	}
	assert.False(t, b.Contains("identifier"))
	assert.False(t, b.Contains(","))

	extended := b.With(",", " ")
	assert.True(t, extended.Contains(","))
	assert.Equal(t, b.Len()+1, extended.Len())
	assert.False(t, b.Contains(","), "With must not mutate the receiver")
}

func TestTypeMap(t *testing.T) {
	tm := DefaultTypeMap()
	assert.Equal(t, "unit", tm.Canonical("compilation_unit"))
	assert.Equal(t, "parameters", tm.Canonical("formal_parameters"))
	assert.Equal(t, "block", tm.Canonical("statement_block"))
	assert.Equal(t, "function_definition", tm.Canonical("method_declaration"))
	assert.Equal(t, "identifier", tm.Canonical("identifier"))

	custom := tm.With(map[string]string{"identifier": "name"})
	assert.Equal(t, "name", custom.Canonical("identifier"))
	assert.Equal(t, "identifier", tm.Canonical("identifier"))

	assert.Equal(t, "module", IdentityTypeMap().Canonical("module"))
}
