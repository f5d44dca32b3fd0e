package domain

import (
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText    OutputFormat = "text"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatYAML    OutputFormat = "yaml"
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatBracket OutputFormat = "bracket"
)

// ParseOutputFormat converts a user supplied name into an OutputFormat
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch OutputFormat(name) {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatDOT, OutputFormatBracket:
		return OutputFormat(name), nil
	case "":
		return OutputFormatText, nil
	default:
		return "", NewUnsupportedFormatError(name)
	}
}

// ReportWriter sends formatted output to a file at outputPath, or to writer
// when outputPath is empty
type ReportWriter interface {
	Write(writer io.Writer, outputPath string, format OutputFormat, writeFunc func(io.Writer) error) error
}

// ProgressManager tracks corpus entries as ingestion settles them
type ProgressManager interface {
	// Initialize sets the number of entries selected for ingestion
	Initialize(entries int)

	// Start starts the progress bar
	Start()

	// EntryDone records one settled entry; dropped is true when the entry
	// became a warning instead of a tree
	EntryDone(entry string, dropped bool)

	// Complete finishes the bar; success is false when the batch was cancelled
	Complete(success bool)

	// SetWriter sets the output writer for progress bars
	SetWriter(writer io.Writer)

	// IsInteractive returns true if progress bars should be shown
	IsInteractive() bool

	// Close cleans up any resources
	Close()
}
