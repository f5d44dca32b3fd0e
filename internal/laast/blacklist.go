package laast

import (
	"sort"
	"strings"
)

// defaultNoiseKinds are punctuation tokens whose spelling varies between
// languages and carries no structure of its own.
var defaultNoiseKinds = []string{
	"(", ")", ".", ";", "!", "[", "]", "{", "}", "\"", "'", "\\", ":",
}

// Blacklist is an immutable set of node kinds dropped during normalization
type Blacklist struct {
	kinds map[string]struct{}
}

// NewBlacklist builds a blacklist from the given kinds. Kinds are trimmed;
// blank entries are ignored.
func NewBlacklist(kinds ...string) Blacklist {
	b := Blacklist{kinds: make(map[string]struct{}, len(kinds))}
	for _, k := range kinds {
		if k = strings.TrimSpace(k); k != "" {
			b.kinds[k] = struct{}{}
		}
	}
	return b
}

// DefaultBlacklist returns the punctuation noise set
func DefaultBlacklist() Blacklist {
	return NewBlacklist(defaultNoiseKinds...)
}

// Contains reports whether kind is blacklisted
func (b Blacklist) Contains(kind string) bool {
	_, ok := b.kinds[kind]
	return ok
}

// With returns a new blacklist holding b's kinds plus extra
func (b Blacklist) With(extra ...string) Blacklist {
	return NewBlacklist(append(b.Kinds(), extra...)...)
}

// Kinds returns the blacklisted kinds in sorted order
func (b Blacklist) Kinds() []string {
	kinds := make([]string, 0, len(b.kinds))
	for k := range b.kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Len returns the number of blacklisted kinds
func (b Blacklist) Len() int {
	return len(b.kinds)
}

// defaultTypeMap folds grammar-specific spellings of the same construct
// into one canonical kind.
var defaultTypeMap = map[string]string{
	"compilation_unit": "unit",
	"module":           "unit",
	"program":          "unit",
	"source_file":      "unit",

	"formal_parameters": "parameters",
	"method_parameters": "parameters",
	"parameter_list":    "parameters",

	"body_statement":  "block",
	"statement_block": "block",

	"function_declaration":     "function_definition",
	"function_item":            "function_definition",
	"local_function_statement": "function_definition",
	"method":                   "function_definition",
	"method_declaration":       "function_definition",
}

// TypeMap is an immutable mapping from grammar kinds to canonical kinds.
// Kinds without an entry map to themselves.
type TypeMap struct {
	m map[string]string
}

// NewTypeMap copies mapping into a TypeMap
func NewTypeMap(mapping map[string]string) TypeMap {
	t := TypeMap{m: make(map[string]string, len(mapping))}
	for k, v := range mapping {
		t.m[k] = v
	}
	return t
}

// DefaultTypeMap returns the built-in cross-language canonicalization
func DefaultTypeMap() TypeMap {
	return NewTypeMap(defaultTypeMap)
}

// IdentityTypeMap returns a map that leaves every kind unchanged
func IdentityTypeMap() TypeMap {
	return TypeMap{}
}

// Canonical returns the canonical kind for kind
func (t TypeMap) Canonical(kind string) string {
	if c, ok := t.m[kind]; ok {
		return c
	}
	return kind
}

// With returns a new TypeMap with extra entries overriding t's
func (t TypeMap) With(extra map[string]string) TypeMap {
	merged := NewTypeMap(t.m)
	for k, v := range extra {
		merged.m[k] = v
	}
	return merged
}

// Len returns the number of explicit mappings
func (t TypeMap) Len() int {
	return len(t.m)
}
