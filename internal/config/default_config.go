package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ludo-technologies/laast/domain"
)

const defaultConfigHeader = `# laast configuration
#
# Every value below is the built-in default. Delete a key to keep tracking
# the default, or add a [normalize.type_map] table to rename node kinds:
#
#   [normalize.type_map]
#   method_declaration = "function_definition"

`

// GenerateDefaultConfigTOML marshals DefaultConfig into a commented TOML document
func GenerateDefaultConfigTOML() (string, error) {
	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to marshal default config: %w", err)
	}
	return defaultConfigHeader + string(data), nil
}

// WriteDefaultConfig writes the default configuration into dir. It refuses
// to overwrite an existing file unless force is set.
func WriteDefaultConfig(dir string, force bool) (string, error) {
	path := filepath.Join(dir, domain.DefaultConfigFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", domain.NewConfigError(fmt.Sprintf("%s already exists (use --force to overwrite)", path), nil)
	}

	content, err := GenerateDefaultConfigTOML()
	if err != nil {
		return "", domain.NewConfigError("failed to generate default config", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", domain.NewConfigError(fmt.Sprintf("failed to write %s", path), err)
	}
	return path, nil
}
