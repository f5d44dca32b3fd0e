package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/laast/domain"
)

// CompareOutputFormatterImpl implements the domain.CompareOutputFormatter interface
type CompareOutputFormatterImpl struct {
	utils *FormatUtils
}

// NewCompareOutputFormatter creates a new compare output formatter
func NewCompareOutputFormatter() *CompareOutputFormatterImpl {
	return &CompareOutputFormatterImpl{utils: NewFormatUtils()}
}

// FormatCompareResponse formats a compare response according to the specified format
func (f *CompareOutputFormatterImpl) FormatCompareResponse(response *domain.CompareResponse, format domain.OutputFormat, showDetails bool, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText, "":
		return f.formatAsText(response, showDetails, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *CompareOutputFormatterImpl) formatAsText(response *domain.CompareResponse, showDetails bool, writer io.Writer) error {
	var b strings.Builder

	b.WriteString(f.utils.FormatMainHeader("Structural Similarity Report"))
	b.WriteString(f.utils.FormatLabel("Corpus", response.Corpus))
	b.WriteString(f.utils.FormatLabel("Files parsed", len(response.Files)))
	b.WriteString(f.utils.FormatLabel("Entries dropped", len(response.Warnings)))
	b.WriteString(f.utils.FormatLabel("Duration", f.utils.FormatDuration(response.Duration)))
	b.WriteString("\n")

	b.WriteString(f.utils.FormatSectionHeader("Edit distance"))
	if response.InsufficientInput || response.Report == nil {
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Result",
			"insufficient input (at least two parsed files are required)"))
	} else {
		r := response.Report
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Pairs", r.Pairs))
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Min", r.Min))
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Max", r.Max))
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Average", r.Average))
	}
	b.WriteString("\n")

	if showDetails {
		if len(response.Files) > 0 {
			b.WriteString(f.utils.FormatSectionHeader("Files"))
			for _, file := range response.Files {
				b.WriteString(fmt.Sprintf("  %-30s %-10s %6d nodes  %s\n",
					file.Name, file.Language, file.Nodes, shortHash(file.Hash)))
			}
			b.WriteString("\n")
		}

		if response.Report != nil && len(response.Report.Distances) > 0 {
			b.WriteString(f.utils.FormatSectionHeader("Pairs"))
			b.WriteString(f.utils.FormatTableHeader(
				fmt.Sprintf("%-30s", "Left"), fmt.Sprintf("%-30s", "Right"), "Distance"))
			for _, p := range response.Report.Distances {
				b.WriteString(fmt.Sprintf("%-30s  %-30s  %8d\n", p.Left, p.Right, p.Distance))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(f.utils.FormatWarningsSection(response.Warnings))

	if _, err := io.WriteString(writer, b.String()); err != nil {
		return domain.NewOutputError("failed to write report", err)
	}
	return nil
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
