package service

import (
	"fmt"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/config"
)

// CompareConfigurationLoader implements the domain.CompareConfigurationLoader interface
type CompareConfigurationLoader struct{}

// NewCompareConfigurationLoader creates a new compare configuration loader
func NewCompareConfigurationLoader() *CompareConfigurationLoader {
	return &CompareConfigurationLoader{}
}

// LoadCompareConfig loads configPath, or discovers .laast.toml upward from
// corpusDir when configPath is empty
func (c *CompareConfigurationLoader) LoadCompareConfig(configPath, corpusDir string) (*domain.CompareRequest, error) {
	cfg, err := config.LoadConfig(configPath, corpusDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return ConfigToCompareRequest(cfg)
}

// GetDefaultCompareConfig returns the built-in defaults
func (c *CompareConfigurationLoader) GetDefaultCompareConfig() *domain.CompareRequest {
	req, _ := ConfigToCompareRequest(config.DefaultConfig())
	return req
}

// ConfigToCompareRequest converts a validated config into a request. Path and
// writer are left for the caller.
func ConfigToCompareRequest(cfg *config.Config) (*domain.CompareRequest, error) {
	timeout, err := cfg.ParseTimeout()
	if err != nil {
		return nil, domain.NewConfigError("invalid parse timeout", err)
	}

	format, err := domain.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	return &domain.CompareRequest{
		ExcludePatterns:   append([]string(nil), cfg.Ingest.Exclude...),
		Workers:           cfg.Ingest.Workers,
		ParseTimeout:      timeout,
		AllowPartialParse: cfg.Ingest.AllowPartialParse,
		CanonicalTypes:    cfg.Normalize.CanonicalTypes,
		TypeMap:           cfg.Normalize.TypeMap,
		ExtraBlacklist:    append([]string(nil), cfg.Normalize.ExtraBlacklist...),
		RecordPositions:   cfg.Normalize.RecordPositions,
		HashAlgorithm:     cfg.Fingerprint.Algorithm,
		SimilarityWorkers: cfg.Similarity.Workers,
		OutputFormat:      format,
		ShowDetails:       cfg.Output.ShowDetails,
	}, nil
}

// CompareConfigurationLoaderWithFlags lets explicitly set CLI flags win over
// configuration file values
type CompareConfigurationLoaderWithFlags struct {
	*CompareConfigurationLoader
	flagTracker *config.FlagTracker
}

// NewCompareConfigurationLoaderWithFlags creates a loader that tracks explicit flags
func NewCompareConfigurationLoaderWithFlags(explicitFlags map[string]bool) *CompareConfigurationLoaderWithFlags {
	return &CompareConfigurationLoaderWithFlags{
		CompareConfigurationLoader: NewCompareConfigurationLoader(),
		flagTracker:                config.NewFlagTrackerWithFlags(explicitFlags),
	}
}

// MergeConfig overlays override onto base, field by field, for flags the
// user actually set
func (cl *CompareConfigurationLoaderWithFlags) MergeConfig(base, override *domain.CompareRequest) *domain.CompareRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base

	// Always taken from the command line
	merged.Path = override.Path
	merged.OutputWriter = override.OutputWriter
	merged.OutputPath = override.OutputPath
	merged.ConfigPath = override.ConfigPath

	merged.Workers = cl.flagTracker.MergeInt(merged.Workers, override.Workers, "workers")
	merged.SimilarityWorkers = cl.flagTracker.MergeInt(merged.SimilarityWorkers, override.SimilarityWorkers, "similarity-workers")
	merged.ParseTimeout = cl.flagTracker.MergeDuration(merged.ParseTimeout, override.ParseTimeout, "parse-timeout")
	merged.AllowPartialParse = cl.flagTracker.MergeBool(merged.AllowPartialParse, override.AllowPartialParse, "allow-partial")
	merged.RecordPositions = cl.flagTracker.MergeBool(merged.RecordPositions, override.RecordPositions, "positions")
	merged.CanonicalTypes = !cl.flagTracker.MergeBool(!merged.CanonicalTypes, !override.CanonicalTypes, "raw-types")
	merged.ExcludePatterns = cl.flagTracker.MergeStringSlice(merged.ExcludePatterns, override.ExcludePatterns, "exclude")
	merged.ExtraBlacklist = cl.flagTracker.MergeStringSlice(merged.ExtraBlacklist, override.ExtraBlacklist, "blacklist")
	merged.HashAlgorithm = cl.flagTracker.MergeString(merged.HashAlgorithm, override.HashAlgorithm, "hash")
	merged.ShowDetails = cl.flagTracker.MergeBool(merged.ShowDetails, override.ShowDetails, "details")

	if cl.flagTracker.WasSet("format") || cl.flagTracker.WasSet("json") || cl.flagTracker.WasSet("yaml") {
		merged.OutputFormat = override.OutputFormat
	}

	return &merged
}
