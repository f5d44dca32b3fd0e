package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/laast/app"
	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/config"
	"github.com/ludo-technologies/laast/service"
)

// TreeCommand prints the LAAST of a single file
type TreeCommand struct {
	configFile string
	lang       string

	rawTypes     bool
	positions    bool
	allowPartial bool
	blacklist    []string

	format  string
	json    bool
	yaml    bool
	dot     bool
	bracket bool

	outputPath string
}

// NewTreeCommand creates a new tree command
func NewTreeCommand() *TreeCommand {
	return &TreeCommand{}
}

// CreateCobraCommand creates the cobra command for tree display
func (t *TreeCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the normalized syntax tree of a file",
		Long: `Parse one source file and print its language-agnostic syntax tree.

Normalization settings are read from the nearest .laast.toml, the same
way compare does, and may be overridden with flags.

Examples:
  # Indented tree
  laast tree main.go

  # Graphviz rendering
  laast tree --dot main.go | dot -Tsvg > main.svg

  # Treat a file without extension as Ruby
  laast tree --lang ruby Rakefile`,
		Args: cobra.ExactArgs(1),
		RunE: t.runTree,
	}

	cmd.Flags().StringVarP(&t.configFile, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVarP(&t.lang, "lang", "l", "", "Source language (default: infer from extension)")

	cmd.Flags().BoolVar(&t.rawTypes, "raw-types", false, "Keep grammar-specific node kinds")
	cmd.Flags().BoolVar(&t.positions, "positions", false, "Record start positions on every node")
	cmd.Flags().BoolVar(&t.allowPartial, "allow-partial", false, "Keep trees recovered from syntax errors")
	cmd.Flags().StringSliceVar(&t.blacklist, "blacklist", nil, "Additional node kinds to drop")

	cmd.Flags().StringVarP(&t.format, "format", "f", "", "Output format: text, json, yaml, dot, bracket")
	cmd.Flags().BoolVar(&t.json, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&t.yaml, "yaml", false, "Output YAML")
	cmd.Flags().BoolVar(&t.dot, "dot", false, "Output Graphviz DOT")
	cmd.Flags().BoolVar(&t.bracket, "bracket", false, "Output bracket notation")

	cmd.Flags().StringVarP(&t.outputPath, "output", "o", "", "Write the tree to a file")

	return cmd
}

func (t *TreeCommand) runTree(cmd *cobra.Command, args []string) error {
	path := args[0]

	var fallback domain.OutputFormat
	if t.format != "" {
		parsed, err := domain.ParseOutputFormat(t.format)
		if err != nil {
			return err
		}
		fallback = parsed
	}
	format, err := service.NewOutputFormatResolver().Determine(fallback, map[domain.OutputFormat]bool{
		domain.OutputFormatJSON:    t.json,
		domain.OutputFormatYAML:    t.yaml,
		domain.OutputFormatDOT:     t.dot,
		domain.OutputFormatBracket: t.bracket,
	})
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(t.configFile, filepath.Dir(path))
	if err != nil {
		return err
	}
	base, err := service.ConfigToCompareRequest(cfg)
	if err != nil {
		return err
	}

	flags := config.NewFlagTrackerWithFlags(GetExplicitFlags(cmd))
	base.CanonicalTypes = flags.MergeBool(base.CanonicalTypes, !t.rawTypes, "raw-types")
	base.RecordPositions = flags.MergeBool(base.RecordPositions, t.positions, "positions")
	base.AllowPartialParse = flags.MergeBool(base.AllowPartialParse, t.allowPartial, "allow-partial")
	base.ExtraBlacklist = flags.MergeStringSlice(base.ExtraBlacklist, t.blacklist, "blacklist")

	err = app.NewTreeUseCase().Execute(cmd.Context(), app.TreeRequest{
		Path:         path,
		Language:     t.lang,
		Builder:      service.BuilderConfigFromRequest(base),
		OutputFormat: format,
		OutputWriter: cmd.OutOrStdout(),
		OutputPath:   t.outputPath,
	})
	if err != nil {
		printRecoveryHints(cmd.ErrOrStderr(), err)
	}
	return err
}

// NewTreeCmd creates and returns the tree cobra command
func NewTreeCmd() *cobra.Command {
	return NewTreeCommand().CreateCobraCommand()
}
