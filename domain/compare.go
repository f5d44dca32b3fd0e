package domain

import (
	"context"
	"fmt"
	"io"
	"time"
)

// FileSummary describes one successfully normalized corpus file
type FileSummary struct {
	Name     string   `json:"name" yaml:"name"`
	Language Language `json:"language" yaml:"language"`
	Nodes    int      `json:"nodes" yaml:"nodes"`
	Hash     string   `json:"hash" yaml:"hash"`
}

// EntryWarning records a corpus entry that was dropped from the batch
type EntryWarning struct {
	Entry   string `json:"entry" yaml:"entry"`
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// String returns string representation of EntryWarning
func (w EntryWarning) String() string {
	return fmt.Sprintf("%s: %s", w.Entry, w.Message)
}

// PairDistance is the edit distance between two corpus files
type PairDistance struct {
	Left     string `json:"left" yaml:"left"`
	Right    string `json:"right" yaml:"right"`
	Distance int    `json:"distance" yaml:"distance"`
}

// SimilarityReport aggregates pairwise edit distances over a batch.
// Average is floor(sum / pairs).
type SimilarityReport struct {
	Min       int            `json:"min" yaml:"min"`
	Max       int            `json:"max" yaml:"max"`
	Average   int            `json:"average" yaml:"average"`
	Pairs     int            `json:"pairs" yaml:"pairs"`
	Distances []PairDistance `json:"distances,omitempty" yaml:"distances,omitempty"`
}

// CompareRequest represents a request to compare every file of a corpus directory
type CompareRequest struct {
	// Input parameters
	Path            string   `json:"path"`
	ExcludePatterns []string `json:"exclude_patterns"`

	// Ingestion configuration
	Workers           int           `json:"workers"`
	ParseTimeout      time.Duration `json:"parse_timeout"`
	AllowPartialParse bool          `json:"allow_partial_parse"`

	// Normalization configuration
	CanonicalTypes  bool              `json:"canonical_types"`
	TypeMap         map[string]string `json:"type_map"`
	ExtraBlacklist  []string          `json:"extra_blacklist"`
	RecordPositions bool              `json:"record_positions"`

	// Fingerprinting
	HashAlgorithm string `json:"hash_algorithm"`

	// Similarity configuration
	SimilarityWorkers int `json:"similarity_workers"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	OutputPath   string       `json:"output_path"`
	ShowDetails  bool         `json:"show_details"`

	// Configuration file
	ConfigPath string `json:"config_path"`
}

// CompareResponse represents the result of comparing a corpus
type CompareResponse struct {
	Corpus   string         `json:"corpus" yaml:"corpus"`
	Files    []FileSummary  `json:"files" yaml:"files"`
	Warnings []EntryWarning `json:"warnings" yaml:"warnings"`

	// Report is nil when InsufficientInput is set
	Report            *SimilarityReport `json:"edit_distance,omitempty" yaml:"edit_distance,omitempty"`
	InsufficientInput bool              `json:"insufficient_input" yaml:"insufficient_input"`

	// Metadata
	Duration    int64  `json:"duration_ms" yaml:"duration_ms"`
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// CompareService ingests a corpus and measures its structural similarity
type CompareService interface {
	// Compare ingests req.Path and computes pairwise edit distances
	Compare(ctx context.Context, req *CompareRequest) (*CompareResponse, error)
}

// CompareOutputFormatter formats comparison results
type CompareOutputFormatter interface {
	// FormatCompareResponse formats a response according to the specified format
	FormatCompareResponse(response *CompareResponse, format OutputFormat, showDetails bool, writer io.Writer) error
}

// CompareConfigurationLoader loads comparison settings from configuration files
type CompareConfigurationLoader interface {
	// LoadCompareConfig loads configuration from configPath, or discovers a
	// config file starting at corpusDir when configPath is empty
	LoadCompareConfig(configPath, corpusDir string) (*CompareRequest, error)

	// GetDefaultCompareConfig returns the built-in defaults
	GetDefaultCompareConfig() *CompareRequest
}

// Validate validates a compare request
func (req *CompareRequest) Validate() error {
	if req.Path == "" {
		return NewValidationError("path cannot be empty")
	}

	if req.Workers < 0 {
		return NewValidationError("workers must be >= 0")
	}

	if req.SimilarityWorkers < 0 {
		return NewValidationError("similarity_workers must be >= 0")
	}

	if req.ParseTimeout < 0 {
		return NewValidationError("parse_timeout must be >= 0")
	}

	switch req.HashAlgorithm {
	case "", HashAlgorithmSHA256, HashAlgorithmBLAKE3:
	default:
		return NewValidationError(fmt.Sprintf("unsupported hash algorithm: %s", req.HashAlgorithm))
	}

	if req.OutputWriter == nil && req.OutputPath == "" {
		return NewValidationError("output writer or output path is required")
	}

	switch req.OutputFormat {
	case "", OutputFormatText, OutputFormatJSON, OutputFormatYAML:
	default:
		return NewUnsupportedFormatError(string(req.OutputFormat))
	}

	return nil
}
