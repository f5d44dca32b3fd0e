package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/laast/internal/version"
)

// NewRootCmd assembles the laast command tree
func NewRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "laast",
		Short: "Language-agnostic structural similarity for source code",
		Long: `laast parses source files written in C#, Go, Java, JavaScript, Python,
Ruby and Rust into a language-agnostic abstract syntax tree (LAAST) and
measures how structurally similar a set of files is using the exact
tree edit distance.

Features:
  • One normalized tree shape for seven languages
  • Exact Zhang-Shasha tree edit distance
  • Fault-isolated concurrent ingestion of whole corpora`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), verbose))
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(NewCompareCmd())
	rootCmd.AddCommand(NewTreeCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// newLogger logs warnings by default so dropped corpus entries are visible
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
