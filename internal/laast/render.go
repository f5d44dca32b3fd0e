package laast

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var bracketEscaper = strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`)

// Bracket encodes the tree in bracket notation, {label{child}...}, the
// input format of common tree edit distance tools. Braces and backslashes
// in labels are escaped with a backslash.
func Bracket(n Node) string {
	var sb strings.Builder
	writeBracket(&sb, n)
	return sb.String()
}

func writeBracket(sb *strings.Builder, n Node) {
	sb.WriteByte('{')
	sb.WriteString(bracketEscaper.Replace(n.Type()))
	for _, child := range n.children {
		writeBracket(sb, child)
	}
	sb.WriteByte('}')
}

// WriteDOT renders l as a Graphviz digraph. Nodes are numbered in
// breadth-first order starting at 1 and labelled with their type.
func WriteDOT(w io.Writer, l *Laast) error {
	bw := bufio.NewWriter(w)

	name := fmt.Sprintf("AST-%s-%s", l.Language(), l.ContentHash())
	fmt.Fprintf(bw, "digraph %s {\n", strconv.Quote(name))
	fmt.Fprintf(bw, "  node [shape=box];\n")

	type queued struct {
		parent int
		node   Node
	}

	queue := []queued{{parent: 0, node: l.Root()}}
	nextID := 1
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		id := nextID
		nextID++

		fmt.Fprintf(bw, "  n%d [label=%s];\n", id, strconv.Quote(item.node.Type()))
		if item.parent != 0 {
			fmt.Fprintf(bw, "  n%d -> n%d;\n", item.parent, id)
		}

		for _, child := range item.node.children {
			queue = append(queue, queued{parent: id, node: child})
		}
	}

	fmt.Fprintf(bw, "}\n")
	return bw.Flush()
}

// WriteText renders the tree as an indented outline, one node per line
func WriteText(w io.Writer, n Node) error {
	bw := bufio.NewWriter(w)
	writeTextNode(bw, n, 0)
	return bw.Flush()
}

func writeTextNode(w *bufio.Writer, n Node, depth int) {
	w.WriteString(strings.Repeat("  ", depth))
	w.WriteString(n.Type())
	for _, key := range n.PropertyKeys() {
		if key == PropertyType {
			continue
		}
		fmt.Fprintf(w, " %s=%s", key, n.properties[key])
	}
	w.WriteByte('\n')
	for _, child := range n.children {
		writeTextNode(w, child, depth+1)
	}
}
