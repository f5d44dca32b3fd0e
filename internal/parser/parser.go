package parser

import (
	"context"
	"errors"
	"fmt"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/ludo-technologies/laast/domain"
)

// Node is a read-only view of one concrete syntax tree node
type Node interface {
	// Kind returns the grammar's node type, possibly padded with whitespace
	Kind() string

	// ChildCount returns the number of children, named and anonymous
	ChildCount() int

	// Child returns the i-th child or nil
	Child(i int) Node

	// StartPosition returns the zero-based row and column of the node
	StartPosition() (row, column int)
}

// ConcreteTree is a parse tree produced by one grammar
type ConcreteTree struct {
	tree     *sitter.Tree
	language domain.Language
}

// Root returns the root node, or nil if the grammar produced an empty tree
func (t *ConcreteTree) Root() Node {
	if t == nil || t.tree == nil {
		return nil
	}
	return wrap(t.tree.RootNode())
}

// Language returns the grammar language the tree was built with
func (t *ConcreteTree) Language() domain.Language {
	return t.language
}

// HasError reports whether the grammar had to recover from syntax errors
// while building the tree
func (t *ConcreteTree) HasError() bool {
	if t == nil || t.tree == nil {
		return false
	}
	root := t.tree.RootNode()
	return root != nil && root.HasError()
}

// Close releases the underlying tree-sitter tree. Nodes obtained from the
// tree must not be used afterwards.
func (t *ConcreteTree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// grammars holds one tree-sitter grammar per supported language
var grammars = map[domain.Language]func() *sitter.Language{
	domain.LanguageCSharp:     csharp.GetLanguage,
	domain.LanguageGo:         golang.GetLanguage,
	domain.LanguageJava:       java.GetLanguage,
	domain.LanguageJavascript: javascript.GetLanguage,
	domain.LanguagePython:     python.GetLanguage,
	domain.LanguageRuby:       ruby.GetLanguage,
	domain.LanguageRust:       rust.GetLanguage,
}

// Adapter turns source text into concrete syntax trees. A fresh tree-sitter
// parser is created per call, so one Adapter may be shared by goroutines.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter creates an adapter that bounds each parse by timeout.
// A zero timeout disables the bound.
func NewAdapter(timeout time.Duration) *Adapter {
	return &Adapter{timeout: timeout}
}

// Supports reports whether a grammar is registered for lang
func (a *Adapter) Supports(lang domain.Language) bool {
	_, ok := grammars[lang]
	return ok
}

// ParseConcrete parses source with the grammar for lang. It fails only when
// no tree is produced; a tree with error nodes is returned as is.
func (a *Adapter) ParseConcrete(ctx context.Context, lang domain.Language, source []byte) (*ConcreteTree, error) {
	grammar, ok := grammars[lang]
	if !ok {
		return nil, fmt.Errorf("no grammar registered for language %s", lang)
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(grammar())

	tree, err := p.ParseCtx(ctx, nil, source)
	if err != nil {
		if errors.Is(err, sitter.ErrOperationLimit) && ctx.Err() != nil {
			return nil, fmt.Errorf("parse of %s source aborted: %w", lang, ctx.Err())
		}
		return nil, fmt.Errorf("failed to parse %s source: %w", lang, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("grammar for %s returned no tree", lang)
	}

	return &ConcreteTree{tree: tree, language: lang}, nil
}

// Walk visits node and its descendants in pre-order. Returning an error
// from visit stops the walk.
func Walk(node Node, visit func(Node) error) error {
	if node == nil {
		return nil
	}
	if err := visit(node); err != nil {
		return err
	}
	for i := 0; i < node.ChildCount(); i++ {
		if err := Walk(node.Child(i), visit); err != nil {
			return err
		}
	}
	return nil
}

// sitterNode adapts *sitter.Node to Node
type sitterNode struct {
	n *sitter.Node
}

func wrap(n *sitter.Node) Node {
	if n == nil || n.IsNull() {
		return nil
	}
	return sitterNode{n: n}
}

func (s sitterNode) Kind() string {
	return s.n.Type()
}

func (s sitterNode) ChildCount() int {
	return int(s.n.ChildCount())
}

func (s sitterNode) Child(i int) Node {
	return wrap(s.n.Child(i))
}

func (s sitterNode) StartPosition() (int, int) {
	p := s.n.StartPoint()
	return int(p.Row), int(p.Column)
}
