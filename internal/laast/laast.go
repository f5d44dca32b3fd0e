package laast

import (
	"context"
	"fmt"
	"time"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/fingerprint"
	"github.com/ludo-technologies/laast/internal/parser"
)

// Laast is one normalized source file. It is immutable once built and
// can only be obtained from a Builder.
type Laast struct {
	name     string
	language domain.Language
	root     Node
	hash     fingerprint.Digest
}

// Name returns the file name the tree was built from, if any
func (l *Laast) Name() string {
	return l.name
}

// Language returns the source language
func (l *Laast) Language() domain.Language {
	return l.language
}

// Root returns the root node
func (l *Laast) Root() Node {
	return l.root
}

// ContentHash returns the digest of the original source bytes. It
// identifies the source and is never compared structurally.
func (l *Laast) ContentHash() fingerprint.Digest {
	return l.hash
}

// WithName returns a copy of l recorded under a different file name. The
// tree itself is shared since nodes are never mutated.
func (l *Laast) WithName(name string) *Laast {
	c := *l
	c.name = name
	return &c
}

// String returns string representation of Laast
func (l *Laast) String() string {
	return fmt.Sprintf("Laast{Name: %s, Language: %s, Nodes: %d, Hash: %s}",
		l.name, l.language, l.root.Size(), l.hash.String()[:12])
}

// Builder parses, normalizes and fingerprints source files. It holds no
// mutable state and is safe for concurrent use.
type Builder struct {
	adapter      *parser.Adapter
	normalizer   *Normalizer
	hasher       *fingerprint.Hasher
	allowPartial bool
}

// BuilderConfig configures NewBuilder
type BuilderConfig struct {
	ParseTimeout      time.Duration
	AllowPartialParse bool
	CanonicalTypes    bool
	TypeMap           map[string]string
	ExtraBlacklist    []string
	RecordPositions   bool
	HashAlgorithm     string
}

// DefaultBuilderConfig returns the built-in settings
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		ParseTimeout:      domain.DefaultParseTimeout,
		AllowPartialParse: domain.DefaultAllowPartialParse,
		CanonicalTypes:    domain.DefaultCanonicalTypes,
		RecordPositions:   domain.DefaultRecordPositions,
		HashAlgorithm:     domain.DefaultHashAlgorithm,
	}
}

// NewBuilder assembles the parsing pipeline for cfg
func NewBuilder(cfg BuilderConfig) (*Builder, error) {
	hasher, err := fingerprint.NewHasher(cfg.HashAlgorithm)
	if err != nil {
		return nil, err
	}

	types := IdentityTypeMap()
	if cfg.CanonicalTypes {
		types = DefaultTypeMap()
	}
	if len(cfg.TypeMap) > 0 {
		types = types.With(cfg.TypeMap)
	}

	normalizer := NewNormalizer(
		DefaultBlacklist().With(cfg.ExtraBlacklist...),
		WithTypeMap(types),
		WithPositions(cfg.RecordPositions),
	)

	return &Builder{
		adapter:      parser.NewAdapter(cfg.ParseTimeout),
		normalizer:   normalizer,
		hasher:       hasher,
		allowPartial: cfg.AllowPartialParse,
	}, nil
}

// Fingerprint returns the digest Parse would record for source
func (b *Builder) Fingerprint(source []byte) fingerprint.Digest {
	return b.hasher.Digest(source)
}

// Parse builds the Laast for source written in lang. name is recorded for
// reporting only. Either a complete Laast or an error is returned.
func (b *Builder) Parse(ctx context.Context, name string, lang domain.Language, source []byte) (*Laast, error) {
	tree, err := b.adapter.ParseConcrete(ctx, lang, source)
	if err != nil {
		return nil, domain.NewParseError(name, err)
	}
	defer tree.Close()

	if tree.HasError() && !b.allowPartial {
		return nil, domain.NewParseError(name, fmt.Errorf("syntax errors found in %s source", lang))
	}

	root, err := b.normalizer.Normalize(tree.Root())
	if err != nil {
		return nil, err
	}

	return &Laast{
		name:     name,
		language: lang,
		root:     root,
		hash:     b.hasher.Digest(source),
	}, nil
}

// Parse builds a Laast with the default settings
func Parse(ctx context.Context, lang domain.Language, source []byte) (*Laast, error) {
	b, err := NewBuilder(DefaultBuilderConfig())
	if err != nil {
		return nil, err
	}
	return b.Parse(ctx, "", lang, source)
}
