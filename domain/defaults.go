package domain

import "time"

// Ingestion defaults
const (
	// DefaultParseTimeout bounds a single grammar invocation. Grammars run on
	// untrusted input, so every parse gets a deadline.
	DefaultParseTimeout = 10 * time.Second

	// DefaultAllowPartialParse keeps error-recovered trees out of the batch.
	DefaultAllowPartialParse = false
)

// Normalization defaults
const (
	DefaultCanonicalTypes  = true
	DefaultRecordPositions = false
)

// Hash algorithms accepted by the fingerprint service
const (
	HashAlgorithmSHA256 = "sha256"
	HashAlgorithmBLAKE3 = "blake3"

	DefaultHashAlgorithm = HashAlgorithmSHA256
)

// DefaultConfigFileName is the file discovered when no --config is given
const DefaultConfigFileName = ".laast.toml"
