package domain

import (
	"encoding/json"
	"testing"
)

func TestLanguage_String(t *testing.T) {
	want := []string{"csharp", "go", "java", "javascript", "python", "ruby", "rust"}
	if len(AllLanguages) != len(want) {
		t.Fatalf("expected %d languages, got %d", len(want), len(AllLanguages))
	}
	for i, lang := range AllLanguages {
		if lang.String() != want[i] {
			t.Errorf("AllLanguages[%d] = %s, want %s", i, lang, want[i])
		}
		if !lang.IsValid() {
			t.Errorf("%s should be valid", lang)
		}
	}

	if Language(0).IsValid() || Language(0).String() != "unknown" {
		t.Error("the zero language should be invalid")
	}
}

func TestLanguage_TextRoundTrip(t *testing.T) {
	data, err := json.Marshal(map[string]Language{"lang": LanguageRust})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"lang":"rust"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var decoded map[string]Language
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["lang"] != LanguageRust {
		t.Errorf("expected rust, got %v", decoded["lang"])
	}
}

func TestLanguage_InvalidText(t *testing.T) {
	if _, err := Language(99).MarshalText(); err == nil {
		t.Error("expected an error marshaling an invalid language")
	}

	var l Language
	if err := l.UnmarshalText([]byte("cobol")); err == nil {
		t.Error("expected an error for an unknown language name")
	}
}
