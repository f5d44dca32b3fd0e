package service

import (
	"context"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/analyzer"
	"github.com/ludo-technologies/laast/internal/laast"
)

// SimilarityService measures how far apart the trees of a batch are
type SimilarityService struct {
	analyzer *analyzer.SimilarityAnalyzer
}

// NewSimilarityService creates a service running up to workers pairs at once
func NewSimilarityService(workers int) *SimilarityService {
	return &SimilarityService{
		analyzer: analyzer.NewSimilarityAnalyzer(analyzer.NewDefaultCostModel(), workers),
	}
}

// Compute returns the min, max and floored average distance over every
// unordered pair. Fewer than two trees yields domain.ErrInsufficientInput.
// Per-pair distances are included when withPairs is set.
func (s *SimilarityService) Compute(ctx context.Context, laasts []*laast.Laast, withPairs bool) (*domain.SimilarityReport, error) {
	roots := make([]laast.Node, len(laasts))
	for i, l := range laasts {
		if l == nil {
			return nil, domain.NewComputationFatalError("batch contains a nil tree", nil)
		}
		roots[i] = l.Root()
	}

	stats, err := s.analyzer.Analyze(ctx, roots)
	if err != nil {
		return nil, err
	}

	report := &domain.SimilarityReport{
		Min:     stats.Min,
		Max:     stats.Max,
		Average: stats.Average,
		Pairs:   stats.Pairs,
	}
	if withPairs {
		report.Distances = make([]domain.PairDistance, len(stats.Results))
		for i, r := range stats.Results {
			report.Distances[i] = domain.PairDistance{
				Left:     laasts[r.Left].Name(),
				Right:    laasts[r.Right].Name(),
				Distance: r.Distance,
			}
		}
	}
	return report, nil
}
