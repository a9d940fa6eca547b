package collection

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pipeline normalizes whole collections. A Pipeline holds no run state and can be reused;
// every Run creates its own Sequencer and EntityIndex.
type Pipeline struct {
	concurrency int
	logger      *zap.Logger
	hook        AttemptHook
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConcurrency prefetches up to n detail records in parallel. Values below 2 keep the
// run strictly sequential. Ids and output order do not depend on this setting.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets the logger used for per-item diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithAttemptHook registers a hook called after each detail fetch attempt.
func WithAttemptHook(hook AttemptHook) Option {
	return func(p *Pipeline) {
		p.hook = hook
	}
}

// NewPipeline creates a pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		concurrency: 1,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run normalizes items in input order. Games and relationships follow input order and
// entities follow first-encounter order. On a *ConflictError, ErrMissingExternalID or
// context cancellation the run stops and no Result is returned.
func (p *Pipeline) Run(ctx context.Context, items []RawCollectionItem, fetcher DetailFetcher) (*Result, error) {
	seq := NewSequencer()
	index := NewEntityIndex(seq)
	n := NewNormalizer(seq, index, p.logger)
	n.hook = p.hook

	var pf *prefetcher
	if p.concurrency > 1 && len(items) > 1 {
		pf = p.startPrefetch(ctx, n, items, fetcher)
		defer pf.stop()
	}

	result := &Result{
		Games:         []GameRecord{},
		Relationships: []RelationshipRecord{},
		Skipped:       []Skip{},
	}

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			p.abort(result.Counters, err)
			return nil, err
		}

		var (
			out Outcome
			err error
		)
		if pf != nil {
			var acq acquisition
			if acq, err = pf.wait(ctx, i); err == nil {
				out, err = n.apply(item, acq)
			}
		} else {
			out, err = n.Process(ctx, item, fetcher)
		}
		if err != nil {
			p.abort(result.Counters, err)
			return nil, err
		}

		switch {
		case out.Kept:
			result.Counters.Kept++
			result.Games = append(result.Games, out.Game)
			result.Relationships = append(result.Relationships, out.Relationships...)
		case out.Reason == SkipNotOwned:
			result.Counters.SkippedNotOwned++
		case out.Reason == SkipFetchFailed:
			result.Counters.SkippedFetchFailed++
			result.Skipped = append(result.Skipped, Skip{
				ExternalID: item.ExternalID,
				Title:      item.Title,
				Reason:     out.Reason,
				Err:        out.FetchErr,
			})
		}
	}

	result.Entities = index.Snapshot()

	p.logger.Info("Collection normalized",
		zap.Int("kept", result.Counters.Kept),
		zap.Int("skipped_not_owned", result.Counters.SkippedNotOwned),
		zap.Int("skipped_fetch_failed", result.Counters.SkippedFetchFailed),
		zap.Int("entities", len(result.Entities)),
		zap.Int("relationships", len(result.Relationships)),
	)

	return result, nil
}

// prefetcher runs the acquisition phase of items on a bounded worker pool while Run
// applies finished items in input order. stop cancels fetches that are still queued or in
// flight, so a run that aborts early does not keep talking to the catalog.
type prefetcher struct {
	acqs   []acquisition
	errs   []error
	ready  []chan struct{}
	cancel context.CancelFunc
	fed    chan struct{}
	group  *errgroup.Group
}

func (p *Pipeline) startPrefetch(ctx context.Context, n *Normalizer, items []RawCollectionItem, fetcher DetailFetcher) *prefetcher {
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	pf := &prefetcher{
		acqs:   make([]acquisition, len(items)),
		errs:   make([]error, len(items)),
		ready:  make([]chan struct{}, len(items)),
		cancel: cancel,
		fed:    make(chan struct{}),
		group:  g,
	}
	for i := range pf.ready {
		pf.ready[i] = make(chan struct{})
	}

	go func() {
		defer close(pf.fed)
		for i := range items {
			if gctx.Err() != nil {
				return
			}
			g.Go(func() error {
				defer close(pf.ready[i])
				if err := gctx.Err(); err != nil {
					pf.errs[i] = err
					return nil
				}
				pf.acqs[i], pf.errs[i] = n.acquire(gctx, items[i], fetcher)
				return nil
			})
		}
	}()

	return pf
}

// wait blocks until item i has been acquired or ctx is done.
func (pf *prefetcher) wait(ctx context.Context, i int) (acquisition, error) {
	select {
	case <-pf.ready[i]:
		return pf.acqs[i], pf.errs[i]
	case <-ctx.Done():
		return acquisition{}, ctx.Err()
	}
}

// stop cancels outstanding work and waits for every worker to return.
func (pf *prefetcher) stop() {
	pf.cancel()
	<-pf.fed
	_ = pf.group.Wait()
}

func (p *Pipeline) abort(counters Counters, err error) {
	p.logger.Error("Collection normalization aborted",
		zap.Int("kept", counters.Kept),
		zap.Int("skipped_not_owned", counters.SkippedNotOwned),
		zap.Int("skipped_fetch_failed", counters.SkippedFetchFailed),
		zap.Error(err),
	)
}
