package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ludo-technologies/laast/domain"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.DefaultConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Ingest.Workers != 0 {
		t.Errorf("Expected ingest workers 0, got %d", config.Ingest.Workers)
	}
	if config.Ingest.AllowPartialParse {
		t.Error("Expected allow_partial_parse to be false by default")
	}
	if !config.Normalize.CanonicalTypes {
		t.Error("Expected canonical_types to be true by default")
	}
	if config.Normalize.RecordPositions {
		t.Error("Expected record_positions to be false by default")
	}
	if config.Fingerprint.Algorithm != "sha256" {
		t.Errorf("Expected sha256, got %s", config.Fingerprint.Algorithm)
	}
	if config.Output.Format != "text" {
		t.Errorf("Expected format 'text', got %s", config.Output.Format)
	}

	timeout, err := config.ParseTimeout()
	if err != nil {
		t.Fatalf("default parse timeout should parse: %v", err)
	}
	if timeout != 10*time.Second {
		t.Errorf("Expected 10s parse timeout, got %s", timeout)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"negative ingest workers", func(c *Config) { c.Ingest.Workers = -1 }, "ingest.workers"},
		{"bad timeout", func(c *Config) { c.Ingest.ParseTimeout = "soon" }, "parse_timeout"},
		{"zero timeout", func(c *Config) { c.Ingest.ParseTimeout = "0s" }, "parse_timeout"},
		{"bad exclude pattern", func(c *Config) { c.Ingest.Exclude = []string{"[a-"} }, "ingest.exclude"},
		{"blank blacklist kind", func(c *Config) { c.Normalize.ExtraBlacklist = []string{" "} }, "extra_blacklist"},
		{"blank type map target", func(c *Config) { c.Normalize.TypeMap = map[string]string{"a": ""} }, "type_map"},
		{"negative similarity workers", func(c *Config) { c.Similarity.Workers = -2 }, "similarity.workers"},
		{"unknown algorithm", func(c *Config) { c.Fingerprint.Algorithm = "md5" }, "fingerprint.algorithm"},
		{"unknown format", func(c *Config) { c.Output.Format = "html" }, "output.format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)

			err := config.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[ingest]
workers = 3
parse_timeout = "250ms"
allow_partial_parse = true
exclude = ["README*"]

[normalize]
canonical_types = false
extra_blacklist = ["comment"]

[normalize.type_map]
method_declaration = "function_definition"

[fingerprint]
algorithm = "blake3"
`)

	config, err := LoadConfig(path, "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Ingest.Workers != 3 {
		t.Errorf("Expected 3 workers, got %d", config.Ingest.Workers)
	}
	if timeout, _ := config.ParseTimeout(); timeout != 250*time.Millisecond {
		t.Errorf("Expected 250ms timeout, got %s", timeout)
	}
	if !config.Ingest.AllowPartialParse {
		t.Error("Expected allow_partial_parse to be loaded")
	}
	if len(config.Ingest.Exclude) != 1 || config.Ingest.Exclude[0] != "README*" {
		t.Errorf("unexpected exclude patterns: %v", config.Ingest.Exclude)
	}
	if config.Normalize.CanonicalTypes {
		t.Error("Expected canonical_types=false to override the default")
	}
	if got := config.Normalize.TypeMap["method_declaration"]; got != "function_definition" {
		t.Errorf("unexpected type map entry: %q", got)
	}
	if config.Fingerprint.Algorithm != "blake3" {
		t.Errorf("Expected blake3, got %s", config.Fingerprint.Algorithm)
	}

	// Untouched sections keep their defaults
	if config.Output.Format != "text" {
		t.Errorf("Expected default output format, got %s", config.Output.Format)
	}
}

func TestLoadConfig_DiscoversParentFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[similarity]\nworkers = 5\n")

	corpus := filepath.Join(root, "corpus", "nested")
	if err := os.MkdirAll(corpus, 0o755); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig("", corpus)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Similarity.Workers != 5 {
		t.Errorf("Expected discovered similarity workers 5, got %d", config.Similarity.Workers)
	}
}

func TestLoadConfig_NoFileReturnsDefaults(t *testing.T) {
	config, err := LoadConfig("", "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Fingerprint.Algorithm != domain.DefaultHashAlgorithm {
		t.Errorf("expected defaults, got %+v", config)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml"), ""); !domain.IsCode(err, domain.ErrCodeConfigError) {
		t.Errorf("expected CONFIG_ERROR for a missing file, got %v", err)
	}

	invalid := writeConfig(t, dir, "[fingerprint]\nalgorithm = \"crc32\"\n")
	if _, err := LoadConfig(invalid, ""); !domain.IsCode(err, domain.ErrCodeConfigError) {
		t.Errorf("expected CONFIG_ERROR for an invalid value, got %v", err)
	}

	broken := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(broken, []byte("[ingest\nworkers = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(broken, ""); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	if got := FindConfigFile(dir); got != "" && strings.HasPrefix(got, dir) {
		t.Errorf("expected no config inside %s, got %s", dir, got)
	}

	path := writeConfig(t, dir, "")
	if got := FindConfigFile(dir); got != path {
		t.Errorf("expected %s, got %s", path, got)
	}
}
