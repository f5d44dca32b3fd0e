package language

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/ludo-technologies/laast/domain"
)

// extensionTable maps a filename suffix (without the dot) to its language.
// Matching is case-sensitive.
var extensionTable = map[string]domain.Language{
	"cs":   domain.LanguageCSharp,
	"go":   domain.LanguageGo,
	"java": domain.LanguageJava,
	"js":   domain.LanguageJavascript,
	"py":   domain.LanguagePython,
	"rb":   domain.LanguageRuby,
	"rs":   domain.LanguageRust,
}

// aliases accepted by ParseLanguage in addition to the canonical names
var aliases = map[string]domain.Language{
	"c_sharp":    domain.LanguageCSharp,
	"c#":         domain.LanguageCSharp,
	"golang":     domain.LanguageGo,
	"node":       domain.LanguageJavascript,
	"javascript": domain.LanguageJavascript,
}

// Infer determines the language of a file from the final suffix of its name.
// A name without an extension is reported as an unrecognized extension.
func Infer(filename string) (domain.Language, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if lang, ok := extensionTable[ext]; ok {
		return lang, nil
	}
	return 0, domain.NewUnrecognizedExtensionError(filepath.Base(filename))
}

// Extension returns the file extension registered for lang, without the dot
func Extension(lang domain.Language) string {
	for ext, l := range extensionTable {
		if l == lang {
			return ext
		}
	}
	return ""
}

// Extensions returns all recognized extensions in sorted order
func Extensions() []string {
	exts := make([]string, 0, len(extensionTable))
	for ext := range extensionTable {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ParseLanguage resolves a language from its name, an alias, or one of its
// extensions. Lookup is case-insensitive since names come from users.
func ParseLanguage(name string) (domain.Language, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, lang := range domain.AllLanguages {
		if lang.String() == key {
			return lang, nil
		}
	}
	if lang, ok := aliases[key]; ok {
		return lang, nil
	}
	if lang, ok := extensionTable[strings.TrimPrefix(key, ".")]; ok {
		return lang, nil
	}
	return 0, domain.NewInvalidInputError("unknown language: "+name, nil)
}
