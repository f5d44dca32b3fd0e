package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"

	"github.com/ludo-technologies/laast/domain"
)

// Config represents the contents of a .laast.toml file
type Config struct {
	// Ingest controls how a corpus directory is read and parsed
	Ingest IngestConfig `mapstructure:"ingest" toml:"ingest"`

	// Normalize controls the concrete tree to LAAST conversion
	Normalize NormalizeConfig `mapstructure:"normalize" toml:"normalize"`

	// Similarity controls pairwise edit distance computation
	Similarity SimilarityConfig `mapstructure:"similarity" toml:"similarity"`

	// Fingerprint selects the content hash
	Fingerprint FingerprintConfig `mapstructure:"fingerprint" toml:"fingerprint"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" toml:"output"`
}

// IngestConfig is the [ingest] section
type IngestConfig struct {
	Workers           int      `mapstructure:"workers" toml:"workers" comment:"Normalization workers; 0 uses every available CPU"`
	ParseTimeout      string   `mapstructure:"parse_timeout" toml:"parse_timeout" comment:"Upper bound for a single grammar invocation"`
	AllowPartialParse bool     `mapstructure:"allow_partial_parse" toml:"allow_partial_parse" comment:"Accept trees the grammar recovered from syntax errors"`
	Exclude           []string `mapstructure:"exclude" toml:"exclude" comment:"Glob patterns of corpus entries to skip"`
}

// NormalizeConfig is the [normalize] section
type NormalizeConfig struct {
	CanonicalTypes  bool              `mapstructure:"canonical_types" toml:"canonical_types" comment:"Map per-language node kinds onto shared names such as function_definition"`
	ExtraBlacklist  []string          `mapstructure:"extra_blacklist" toml:"extra_blacklist" comment:"Additional node kinds to drop together with their subtrees"`
	RecordPositions bool              `mapstructure:"record_positions" toml:"record_positions" comment:"Attach start_line and start_column to every node"`
	TypeMap         map[string]string `mapstructure:"type_map" toml:"type_map,omitempty"`
}

// SimilarityConfig is the [similarity] section
type SimilarityConfig struct {
	Workers int `mapstructure:"workers" toml:"workers" comment:"Concurrent pair computations; 0 uses every available CPU"`
}

// FingerprintConfig is the [fingerprint] section
type FingerprintConfig struct {
	Algorithm string `mapstructure:"algorithm" toml:"algorithm" comment:"sha256 or blake3"`
}

// OutputConfig is the [output] section
type OutputConfig struct {
	Format      string `mapstructure:"format" toml:"format" comment:"text, json or yaml"`
	ShowDetails bool   `mapstructure:"show_details" toml:"show_details" comment:"List the distance of every pair"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			Workers:           0,
			ParseTimeout:      domain.DefaultParseTimeout.String(),
			AllowPartialParse: domain.DefaultAllowPartialParse,
			Exclude:           []string{},
		},
		Normalize: NormalizeConfig{
			CanonicalTypes:  domain.DefaultCanonicalTypes,
			ExtraBlacklist:  []string{},
			RecordPositions: domain.DefaultRecordPositions,
		},
		Similarity: SimilarityConfig{
			Workers: 0,
		},
		Fingerprint: FingerprintConfig{
			Algorithm: domain.DefaultHashAlgorithm,
		},
		Output: OutputConfig{
			Format:      string(domain.OutputFormatText),
			ShowDetails: false,
		},
	}
}

// LoadConfig loads configPath, or the nearest .laast.toml found by walking up
// from startDir when configPath is empty. Defaults are returned when no file
// is found. Values missing from the file keep their defaults.
func LoadConfig(configPath, startDir string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" && startDir != "" {
		configPath = FindConfigFile(startDir)
	}
	if configPath == "" {
		return config, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", configPath), err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, domain.NewConfigError("failed to unmarshal config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("invalid configuration in %s", configPath), err)
	}

	return config, nil
}

// FindConfigFile walks up the directory tree from startDir looking for
// .laast.toml. It returns "" when none exists.
func FindConfigFile(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		dir = startDir
	}
	for {
		configPath := filepath.Join(dir, domain.DefaultConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			return ""
		}
		dir = parent
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Ingest.Workers < 0 {
		return fmt.Errorf("ingest.workers must be >= 0, got %d", c.Ingest.Workers)
	}

	if _, err := c.ParseTimeout(); err != nil {
		return err
	}

	for _, pattern := range c.Ingest.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("ingest.exclude contains an invalid pattern: %q", pattern)
		}
	}

	for _, kind := range c.Normalize.ExtraBlacklist {
		if strings.TrimSpace(kind) == "" {
			return fmt.Errorf("normalize.extra_blacklist must not contain blank kinds")
		}
	}

	for from, to := range c.Normalize.TypeMap {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return fmt.Errorf("normalize.type_map must not contain blank kinds (%q = %q)", from, to)
		}
	}

	if c.Similarity.Workers < 0 {
		return fmt.Errorf("similarity.workers must be >= 0, got %d", c.Similarity.Workers)
	}

	switch c.Fingerprint.Algorithm {
	case domain.HashAlgorithmSHA256, domain.HashAlgorithmBLAKE3:
	default:
		return fmt.Errorf("fingerprint.algorithm must be %q or %q, got %q",
			domain.HashAlgorithmSHA256, domain.HashAlgorithmBLAKE3, c.Fingerprint.Algorithm)
	}

	switch domain.OutputFormat(c.Output.Format) {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML:
	default:
		return fmt.Errorf("output.format must be text, json or yaml, got %q", c.Output.Format)
	}

	return nil
}

// ParseTimeout returns ingest.parse_timeout as a duration. An empty value
// selects the default.
func (c *Config) ParseTimeout() (time.Duration, error) {
	if c.Ingest.ParseTimeout == "" {
		return domain.DefaultParseTimeout, nil
	}
	d, err := time.ParseDuration(c.Ingest.ParseTimeout)
	if err != nil {
		return 0, fmt.Errorf("ingest.parse_timeout is not a duration: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("ingest.parse_timeout must be positive, got %s", d)
	}
	return d, nil
}
