package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/laast"
	"github.com/ludo-technologies/laast/internal/language"
)

// IngestResult is the outcome of ingesting one corpus directory. Laasts may
// be empty; that is not an error.
type IngestResult struct {
	Laasts   []*laast.Laast
	Warnings []domain.EntryWarning

	// Skipped lists entries matched by an exclude pattern
	Skipped []string

	// CacheHits counts entries whose tree was reused from an identical file
	CacheHits int
}

// entryResult carries one entry's outcome to the collector
type entryResult struct {
	name  string
	laast *laast.Laast
	err   error
}

// IngestionService turns a directory of source files into a batch of LAASTs.
// Failures of individual entries are isolated and reported as warnings.
type IngestionService struct {
	builder  *laast.Builder
	workers  int
	exclude  []string
	logger   *slog.Logger
	progress domain.ProgressManager
}

// NewIngestionService creates an ingestion service. workers bounds the
// normalize pool; logger may be nil.
func NewIngestionService(builder *laast.Builder, workers int, exclude []string, logger *slog.Logger) *IngestionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestionService{
		builder: builder,
		workers: workers,
		exclude: exclude,
		logger:  logger,
	}
}

// SetProgressManager reports per-entry progress to pm
func (s *IngestionService) SetProgressManager(pm domain.ProgressManager) {
	s.progress = pm
}

// Ingest reads the immediate entries of dir. A missing or unreadable
// directory is BATCH_FATAL, as is cancellation of ctx. Every other failure
// only drops the entry concerned.
func (s *IngestionService) Ingest(ctx context.Context, dir string) (*IngestResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, domain.NewBatchFatalError(fmt.Sprintf("cannot access corpus directory: %s", dir), err)
	}
	if !info.IsDir() {
		return nil, domain.NewBatchFatalError(fmt.Sprintf("corpus path is not a directory: %s", dir), nil)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, domain.NewBatchFatalError(fmt.Sprintf("failed to enumerate corpus directory: %s", dir), err)
	}

	result := &IngestResult{
		Laasts:   []*laast.Laast{},
		Warnings: []domain.EntryWarning{},
	}

	selected := make([]fs.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if s.isExcluded(entry.Name()) {
			s.logger.Debug("skipping excluded corpus entry", "entry", entry.Name())
			result.Skipped = append(result.Skipped, entry.Name())
			continue
		}
		selected = append(selected, entry)
	}

	s.logger.Debug("ingesting corpus", "dir", dir, "entries", len(selected), "workers", s.workers)

	if s.progress != nil {
		s.progress.Initialize(len(selected))
		s.progress.Start()
	}

	cache := NewParseCache()
	pool := NewNormalizePool(s.builder, s.workers, cache)
	defer pool.Close()

	results := make(chan entryResult)
	var g errgroup.Group
	for _, entry := range selected {
		g.Go(func() error {
			l, err := s.processEntry(ctx, dir, entry, pool)
			results <- entryResult{name: entry.Name(), laast: l, err: err}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	for r := range results {
		if s.progress != nil {
			s.progress.EntryDone(r.name, r.err != nil)
		}

		if r.err != nil {
			failure := domain.NewEntryFailureError(r.name, r.err)
			s.logger.Warn("dropping corpus entry", "entry", r.name, "error", r.err)
			result.Warnings = append(result.Warnings, domain.EntryWarning{
				Entry:   r.name,
				Code:    entryFailureCode(r.err),
				Message: failure.Error(),
			})
			continue
		}
		result.Laasts = append(result.Laasts, r.laast)
	}

	if s.progress != nil {
		s.progress.Complete(ctx.Err() == nil)
	}

	if err := ctx.Err(); err != nil {
		return nil, domain.NewBatchFatalError("ingestion cancelled", err)
	}

	sort.Slice(result.Laasts, func(i, j int) bool {
		return result.Laasts[i].Name() < result.Laasts[j].Name()
	})
	sort.Slice(result.Warnings, func(i, j int) bool {
		return result.Warnings[i].Entry < result.Warnings[j].Entry
	})
	result.CacheHits = cache.Hits()

	return result, nil
}

// processEntry runs on the entry's own goroutine. Parsing is handed to the
// pool; file system work stays here.
func (s *IngestionService) processEntry(ctx context.Context, dir string, entry fs.DirEntry, pool *NormalizePool) (*laast.Laast, error) {
	path := filepath.Join(dir, entry.Name())

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot stat entry: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file (%s)", info.Mode().Type())
	}

	lang, err := language.Infer(entry.Name())
	if err != nil {
		return nil, err
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return pool.Submit(ctx, entry.Name(), lang, source)
}

func (s *IngestionService) isExcluded(name string) bool {
	for _, pattern := range s.exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// entryFailureCode reports the first domain error code in err's chain
func entryFailureCode(err error) string {
	var de domain.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return domain.ErrCodeEntryFailure
}
