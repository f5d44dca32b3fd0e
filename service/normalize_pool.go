package service

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ludo-technologies/laast/domain"
	"github.com/ludo-technologies/laast/internal/laast"
)

type normalizeJob struct {
	ctx    context.Context
	name   string
	lang   domain.Language
	source []byte
	reply  chan<- normalizeResult
}

type normalizeResult struct {
	laast *laast.Laast
	err   error
}

// NormalizePool runs parsing and normalization on a fixed number of
// goroutines, separate from the goroutines doing file I/O. Callers block
// only on their own result.
type NormalizePool struct {
	builder *laast.Builder
	cache   *ParseCache
	jobs    chan normalizeJob
	wg      sync.WaitGroup
	once    sync.Once

	active atomic.Int32
	peak   atomic.Int32
}

// NewNormalizePool starts workers goroutines. workers <= 0 selects
// runtime.GOMAXPROCS(0). cache may be nil.
func NewNormalizePool(builder *laast.Builder, workers int, cache *ParseCache) *NormalizePool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &NormalizePool{
		builder: builder,
		cache:   cache,
		jobs:    make(chan normalizeJob),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *NormalizePool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		job.reply <- p.run(job)
	}
}

func (p *NormalizePool) run(job normalizeJob) normalizeResult {
	if err := job.ctx.Err(); err != nil {
		return normalizeResult{err: err}
	}

	n := p.active.Add(1)
	defer p.active.Add(-1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	digest := p.builder.Fingerprint(job.source)
	if p.cache != nil {
		if l, ok := p.cache.Get(job.name, job.lang, digest); ok {
			return normalizeResult{laast: l}
		}
	}

	l, err := p.builder.Parse(job.ctx, job.name, job.lang, job.source)
	if err != nil {
		return normalizeResult{err: err}
	}
	if p.cache != nil {
		p.cache.Put(l)
	}
	return normalizeResult{laast: l}
}

// Submit parses and normalizes source on the pool and waits for the result.
// It returns early with ctx.Err() when ctx is cancelled.
func (p *NormalizePool) Submit(ctx context.Context, name string, lang domain.Language, source []byte) (*laast.Laast, error) {
	reply := make(chan normalizeResult, 1)
	job := normalizeJob{ctx: ctx, name: name, lang: lang, source: source, reply: reply}

	select {
	case p.jobs <- job:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case r := <-reply:
		return r.laast, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Peak returns the highest number of jobs that ran at the same time.
func (p *NormalizePool) Peak() int {
	return int(p.peak.Load())
}

// Close stops the workers once queued jobs finish. Submit must not be
// called after Close.
func (p *NormalizePool) Close() {
	p.once.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
}
