package service

import (
	"fmt"
	"io"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/laast"
)

// TreeDocument is the serialized form of a single LAAST
type TreeDocument struct {
	Name     string          `json:"name" yaml:"name"`
	Language domain.Language `json:"language" yaml:"language"`
	Hash     string          `json:"hash" yaml:"hash"`
	Nodes    int             `json:"nodes" yaml:"nodes"`
	Height   int             `json:"height" yaml:"height"`
	Root     laast.Node      `json:"root" yaml:"root"`
}

// NewTreeDocument describes l for JSON and YAML output
func NewTreeDocument(l *laast.Laast) *TreeDocument {
	return &TreeDocument{
		Name:     l.Name(),
		Language: l.Language(),
		Hash:     l.ContentHash().String(),
		Nodes:    l.Root().Size(),
		Height:   l.Root().Height(),
		Root:     l.Root(),
	}
}

// TreeFormatter renders a single LAAST
type TreeFormatter struct{}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter() *TreeFormatter {
	return &TreeFormatter{}
}

// FormatTree writes l to writer in the requested format
func (f *TreeFormatter) FormatTree(l *laast.Laast, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText, "":
		if _, err := fmt.Fprintf(writer, "%s (%s, %d nodes, %s)\n",
			l.Name(), l.Language(), l.Root().Size(), l.ContentHash()); err != nil {
			return domain.NewOutputError("failed to write tree", err)
		}
		if err := laast.WriteText(writer, l.Root()); err != nil {
			return domain.NewOutputError("failed to write tree", err)
		}
		return nil
	case domain.OutputFormatJSON:
		return WriteJSON(writer, NewTreeDocument(l))
	case domain.OutputFormatYAML:
		return WriteYAML(writer, NewTreeDocument(l))
	case domain.OutputFormatBracket:
		if _, err := fmt.Fprintln(writer, laast.Bracket(l.Root())); err != nil {
			return domain.NewOutputError("failed to write tree", err)
		}
		return nil
	case domain.OutputFormatDOT:
		if err := laast.WriteDOT(writer, l); err != nil {
			return domain.NewOutputError("failed to write DOT graph", err)
		}
		return nil
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}
