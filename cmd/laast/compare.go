package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/laast/app"
	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/service"
)

// CompareCommand handles the compare CLI command
type CompareCommand struct {
	// Input parameters
	configFile      string
	excludePatterns []string

	// Ingestion
	workers      int
	parseTimeout time.Duration
	allowPartial bool

	// Normalization
	rawTypes  bool
	positions bool
	blacklist []string

	// Similarity
	similarityWorkers int
	hash              string

	// Output format flags (only one should be true)
	format string
	json   bool
	yaml   bool

	// Output options
	showDetails bool
	outputPath  string
	noProgress  bool
}

// NewCompareCommand creates a new compare command
func NewCompareCommand() *CompareCommand {
	return &CompareCommand{
		parseTimeout: domain.DefaultParseTimeout,
		hash:         domain.DefaultHashAlgorithm,
	}
}

// CreateCobraCommand creates the Cobra command for corpus comparison
func (c *CompareCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [directory]",
		Short: "Measure structural similarity across a directory of source files",
		Long: `Parse every file directly inside a directory and report the minimum,
maximum and average tree edit distance over all pairs of files.

Files whose extension is not recognized, or that fail to parse, are
dropped with a warning. At least two files must parse for a result.

Examples:
  # Compare the files of a corpus
  laast compare testdata/hello_world

  # Show per-pair distances as JSON
  laast compare --details --json testdata/hello_world

  # Accept error-recovered trees and skip markdown files
  laast compare --allow-partial --exclude '*.md' corpus/`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.runCompare,
	}

	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil, "Entry name patterns to skip")

	cmd.Flags().IntVarP(&c.workers, "workers", "w", 0, "Parser workers (0 = all CPUs)")
	cmd.Flags().DurationVar(&c.parseTimeout, "parse-timeout", c.parseTimeout, "Upper bound for parsing a single file")
	cmd.Flags().BoolVar(&c.allowPartial, "allow-partial", false, "Keep trees recovered from syntax errors")

	cmd.Flags().BoolVar(&c.rawTypes, "raw-types", false, "Keep grammar-specific node kinds")
	cmd.Flags().BoolVar(&c.positions, "positions", false, "Record start positions on every node")
	cmd.Flags().StringSliceVar(&c.blacklist, "blacklist", nil, "Additional node kinds to drop")

	cmd.Flags().IntVar(&c.similarityWorkers, "similarity-workers", 0, "Concurrent pair computations (0 = all CPUs)")
	cmd.Flags().StringVar(&c.hash, "hash", c.hash, "Content hash: sha256 or blake3")

	cmd.Flags().StringVarP(&c.format, "format", "f", "", "Output format: text, json, yaml")
	cmd.Flags().BoolVar(&c.json, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Output YAML")

	cmd.Flags().BoolVarP(&c.showDetails, "details", "d", false, "List every file and pair distance")
	cmd.Flags().StringVarP(&c.outputPath, "output", "o", "", "Write the report to a file")
	cmd.Flags().BoolVar(&c.noProgress, "no-progress", false, "Disable the progress bar")

	_ = cmd.Flags().MarkHidden("similarity-workers")
	_ = cmd.Flags().MarkHidden("hash")

	return cmd
}

func (c *CompareCommand) runCompare(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	request, err := c.createCompareRequest(cmd, path)
	if err != nil {
		return err
	}

	compareService := service.NewCompareService(slog.Default())
	if !c.noProgress {
		compareService.SetProgressManager(service.NewProgressManager())
	}

	useCase, err := app.NewCompareUseCaseBuilder().
		WithService(compareService).
		WithFormatter(service.NewCompareOutputFormatter()).
		WithConfigLoader(service.NewCompareConfigurationLoaderWithFlags(GetExplicitFlags(cmd))).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create compare use case: %w", err)
	}

	if _, err := useCase.Execute(cmd.Context(), *request); err != nil {
		printRecoveryHints(cmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

func (c *CompareCommand) createCompareRequest(cmd *cobra.Command, path string) (*domain.CompareRequest, error) {
	var fallback domain.OutputFormat
	if c.format != "" {
		parsed, err := domain.ParseOutputFormat(c.format)
		if err != nil {
			return nil, err
		}
		fallback = parsed
	}

	outputFormat, err := service.NewOutputFormatResolver().Determine(fallback, map[domain.OutputFormat]bool{
		domain.OutputFormatJSON: c.json,
		domain.OutputFormatYAML: c.yaml,
	})
	if err != nil {
		return nil, err
	}

	return &domain.CompareRequest{
		Path:              path,
		ExcludePatterns:   c.excludePatterns,
		Workers:           c.workers,
		ParseTimeout:      c.parseTimeout,
		AllowPartialParse: c.allowPartial,
		CanonicalTypes:    !c.rawTypes,
		ExtraBlacklist:    c.blacklist,
		RecordPositions:   c.positions,
		HashAlgorithm:     c.hash,
		SimilarityWorkers: c.similarityWorkers,
		OutputFormat:      outputFormat,
		OutputWriter:      cmd.OutOrStdout(),
		OutputPath:        c.outputPath,
		ShowDetails:       c.showDetails,
		ConfigPath:        c.configFile,
	}, nil
}

// NewCompareCmd creates and returns the compare cobra command
func NewCompareCmd() *cobra.Command {
	return NewCompareCommand().CreateCobraCommand()
}
