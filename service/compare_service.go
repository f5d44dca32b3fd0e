package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/laast"
	"github.com/ludo-technologies/laast/internal/version"
)

// CompareServiceImpl implements the domain.CompareService interface
type CompareServiceImpl struct {
	logger   *slog.Logger
	progress domain.ProgressManager
}

// NewCompareService creates a new compare service. logger may be nil.
func NewCompareService(logger *slog.Logger) *CompareServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompareServiceImpl{logger: logger}
}

// SetProgressManager reports ingestion progress to pm
func (s *CompareServiceImpl) SetProgressManager(pm domain.ProgressManager) {
	s.progress = pm
}

// Compare ingests req.Path and summarizes the pairwise edit distances of
// every file that could be parsed. Fewer than two such files is reported
// through CompareResponse.InsufficientInput, not as an error.
func (s *CompareServiceImpl) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.CompareResponse, error) {
	startTime := time.Now()

	builder, err := laast.NewBuilder(BuilderConfigFromRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to configure parser: %w", err)
	}

	ingestion := NewIngestionService(builder, req.Workers, req.ExcludePatterns, s.logger)
	if s.progress != nil {
		ingestion.SetProgressManager(s.progress)
	}

	ingested, err := ingestion.Ingest(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("corpus ingested",
		"parsed", len(ingested.Laasts),
		"dropped", len(ingested.Warnings),
		"skipped", len(ingested.Skipped),
		"cache_hits", ingested.CacheHits)

	response := &domain.CompareResponse{
		Corpus:   req.Path,
		Files:    make([]domain.FileSummary, 0, len(ingested.Laasts)),
		Warnings: ingested.Warnings,
		Version:  version.Version,
	}
	for _, l := range ingested.Laasts {
		response.Files = append(response.Files, domain.FileSummary{
			Name:     l.Name(),
			Language: l.Language(),
			Nodes:    l.Root().Size(),
			Hash:     l.ContentHash().String(),
		})
	}

	report, err := NewSimilarityService(req.SimilarityWorkers).Compute(ctx, ingested.Laasts, req.ShowDetails)
	switch {
	case errors.Is(err, domain.ErrInsufficientInput):
		response.InsufficientInput = true
	case err != nil:
		return nil, err
	default:
		response.Report = report
	}

	response.Duration = time.Since(startTime).Milliseconds()
	response.GeneratedAt = time.Now().Format(time.RFC3339)
	return response, nil
}

// BuilderConfigFromRequest extracts the parsing settings of req
func BuilderConfigFromRequest(req *domain.CompareRequest) laast.BuilderConfig {
	cfg := laast.DefaultBuilderConfig()
	if req.ParseTimeout > 0 {
		cfg.ParseTimeout = req.ParseTimeout
	}
	cfg.AllowPartialParse = req.AllowPartialParse
	cfg.CanonicalTypes = req.CanonicalTypes
	cfg.TypeMap = req.TypeMap
	cfg.ExtraBlacklist = req.ExtraBlacklist
	cfg.RecordPositions = req.RecordPositions
	if req.HashAlgorithm != "" {
		cfg.HashAlgorithm = req.HashAlgorithm
	}
	return cfg
}
