package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/laast/internal/config"
)

// InitCommand represents the init command
type InitCommand struct {
	force bool
	dir   string
}

// NewInitCommand creates a new init command
func NewInitCommand() *InitCommand {
	return &InitCommand{dir: "."}
}

// CreateCobraCommand creates the cobra command for configuration initialization
func (i *InitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize laast configuration file",
		Long: `Write a .laast.toml holding every default setting.

compare and tree discover the file by walking up from the corpus
directory, so placing it at a project root applies it to every corpus
below.

Examples:
  # Create .laast.toml in current directory
  laast init

  # Overwrite an existing configuration file
  laast init --force`,
		Args: cobra.NoArgs,
		RunE: i.runInit,
	}

	cmd.Flags().BoolVarP(&i.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVar(&i.dir, "dir", i.dir, "Directory to write the configuration file into")

	return cmd
}

func (i *InitCommand) runInit(cmd *cobra.Command, args []string) error {
	path, err := config.WriteDefaultConfig(i.dir, i.force)
	if err != nil {
		return err
	}

	relPath, err := filepath.Rel(".", path)
	if err != nil {
		relPath = path
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", relPath)
	return nil
}

// NewInitCmd creates and returns the init cobra command
func NewInitCmd() *cobra.Command {
	return NewInitCommand().CreateCobraCommand()
}
