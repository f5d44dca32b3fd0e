package domain

import (
	"fmt"
)

// Language is the closed set of source languages a corpus may contain
type Language int

const (
	LanguageCSharp Language = iota + 1
	LanguageGo
	LanguageJava
	LanguageJavascript
	LanguagePython
	LanguageRuby
	LanguageRust
)

// AllLanguages lists every supported language in declaration order
var AllLanguages = []Language{
	LanguageCSharp,
	LanguageGo,
	LanguageJava,
	LanguageJavascript,
	LanguagePython,
	LanguageRuby,
	LanguageRust,
}

var languageNames = map[Language]string{
	LanguageCSharp:     "csharp",
	LanguageGo:         "go",
	LanguageJava:       "java",
	LanguageJavascript: "javascript",
	LanguagePython:     "python",
	LanguageRuby:       "ruby",
	LanguageRust:       "rust",
}

// String returns the lowercase language name
func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return "unknown"
}

// IsValid reports whether l is one of the supported languages
func (l Language) IsValid() bool {
	_, ok := languageNames[l]
	return ok
}

// MarshalText encodes the language by name for JSON and YAML output
func (l Language) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("invalid language: %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a language name
func (l *Language) UnmarshalText(text []byte) error {
	for lang, name := range languageNames {
		if name == string(text) {
			*l = lang
			return nil
		}
	}
	return fmt.Errorf("unknown language: %q", string(text))
}
