package analyzer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/laast"
)

// PairResult is the distance between trees[Left] and trees[Right]
type PairResult struct {
	Left     int
	Right    int
	Distance int
}

// Statistics summarizes every unordered pair of a batch.
// Average is the floor of the mean.
type Statistics struct {
	Min     int
	Max     int
	Average int
	Pairs   int
	Results []PairResult
}

// SimilarityAnalyzer computes batch edit distance statistics
type SimilarityAnalyzer struct {
	ted     *TEDAnalyzer
	workers int
}

// NewSimilarityAnalyzer creates an analyzer running up to workers pair
// computations at once. workers <= 0 selects runtime.GOMAXPROCS(0).
func NewSimilarityAnalyzer(costModel CostModel, workers int) *SimilarityAnalyzer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &SimilarityAnalyzer{
		ted:     NewTEDAnalyzer(costModel),
		workers: workers,
	}
}

// Analyze computes the distance of every unordered pair of trees. Fewer
// than two trees yields domain.ErrInsufficientInput. The first malformed
// tree aborts the whole batch.
func (s *SimilarityAnalyzer) Analyze(ctx context.Context, trees []laast.Node) (*Statistics, error) {
	if len(trees) < 2 {
		return nil, domain.ErrInsufficientInput
	}

	prepared := make([]*postOrderTree, len(trees))
	for i, root := range trees {
		node, err := NewTreeConverter().Convert(root)
		if err != nil {
			return nil, err
		}
		if prepared[i], err = PrepareTreeForTED(node); err != nil {
			return nil, err
		}
	}

	results := make([]PairResult, 0, len(trees)*(len(trees)-1)/2)
	for i := 0; i < len(trees); i++ {
		for j := i + 1; j < len(trees); j++ {
			results = append(results, PairResult{Left: i, Right: j})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for k := range results {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := &results[k]
			r.Distance = s.ted.distance(prepared[r.Left], prepared[r.Right])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summarize(results), nil
}

func summarize(results []PairResult) *Statistics {
	stats := &Statistics{
		Min:     results[0].Distance,
		Max:     results[0].Distance,
		Pairs:   len(results),
		Results: results,
	}
	sum := 0
	for _, r := range results {
		stats.Min = min(stats.Min, r.Distance)
		stats.Max = max(stats.Max, r.Distance)
		sum += r.Distance
	}
	stats.Average = sum / len(results)
	return stats
}

// ComputeStatistics computes batch statistics with the default cost model
func ComputeStatistics(ctx context.Context, trees []laast.Node, workers int) (*Statistics, error) {
	return NewSimilarityAnalyzer(nil, workers).Analyze(ctx, trees)
}
