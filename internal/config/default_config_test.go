package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/laast/domain"
)

func TestGenerateDefaultConfigTOML(t *testing.T) {
	content, err := GenerateDefaultConfigTOML()
	if err != nil {
		t.Fatalf("GenerateDefaultConfigTOML failed: %v", err)
	}

	for _, section := range []string{"[ingest]", "[normalize]", "[similarity]", "[fingerprint]", "[output]"} {
		if !strings.Contains(content, section) {
			t.Errorf("generated config is missing %s", section)
		}
	}
	if !strings.HasPrefix(content, "# laast configuration") {
		t.Error("generated config should start with the header comment")
	}
}

func TestWriteDefaultConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDefaultConfig(dir, false)
	if err != nil {
		t.Fatalf("WriteDefaultConfig failed: %v", err)
	}
	if path != filepath.Join(dir, domain.DefaultConfigFileName) {
		t.Errorf("unexpected path %s", path)
	}

	loaded, err := LoadConfig(path, "")
	if err != nil {
		t.Fatalf("generated config should load: %v", err)
	}

	defaults := DefaultConfig()
	if loaded.Ingest.ParseTimeout != defaults.Ingest.ParseTimeout {
		t.Errorf("parse_timeout changed: %s vs %s", loaded.Ingest.ParseTimeout, defaults.Ingest.ParseTimeout)
	}
	if loaded.Normalize.CanonicalTypes != defaults.Normalize.CanonicalTypes {
		t.Error("canonical_types changed through round trip")
	}
	if loaded.Fingerprint.Algorithm != defaults.Fingerprint.Algorithm {
		t.Error("algorithm changed through round trip")
	}
}

func TestWriteDefaultConfig_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, domain.DefaultConfigFileName)
	if err := os.WriteFile(path, []byte("# mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteDefaultConfig(dir, false); !domain.IsCode(err, domain.ErrCodeConfigError) {
		t.Errorf("expected CONFIG_ERROR, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "# mine\n" {
		t.Error("existing config must not be modified")
	}

	if _, err := WriteDefaultConfig(dir, true); err != nil {
		t.Errorf("force should overwrite: %v", err)
	}
}
