// Package parser wraps the tree-sitter grammars used to build concrete
// syntax trees for every supported language.
//
// The package deliberately does no interpretation of the tree: it exposes
// node kinds, children and positions through the Node interface and leaves
// normalization to the laast package.
//
// Basic usage:
//
//	a := parser.NewAdapter(10 * time.Second)
//	tree, err := a.ParseConcrete(ctx, domain.LanguageGo, source)
//	if err != nil {
//	    // no tree was produced at all
//	}
//	defer tree.Close()
//	if tree.HasError() {
//	    // the grammar recovered from syntax errors
//	}
package parser
