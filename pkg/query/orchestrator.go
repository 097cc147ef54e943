package query

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ollo-ai/ollo/pkg/cache"
	"github.com/ollo-ai/ollo/pkg/client"
	"github.com/ollo-ai/ollo/pkg/history"
	"github.com/ollo-ai/ollo/pkg/models"
)

// Options control a single query.
type Options struct {
	// Preset selects sampling options and the request timeout. The
	// zero value resolves to the normal preset.
	Preset client.Preset
	// NoCache skips both the cache lookup and the store.
	NoCache bool
	// Timeout overrides the preset timeout when positive.
	Timeout time.Duration
}

func (o Options) preset() client.Preset {
	if o.Preset.Name == "" {
		return client.PresetNormal
	}
	return o.Preset
}

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return o.preset().Timeout
}

// Result is a completed query.
type Result struct {
	Response *models.GenerateResponse
	Cached   bool
	Elapsed  time.Duration
}

// Outcome is one element of a concurrent batch: a result or an error,
// never both.
type Outcome struct {
	Result *Result
	Err    error
}

// Orchestrator coordinates validation, the response cache, and the
// request executor. The cache and tracker are optional.
type Orchestrator struct {
	client  *client.Client
	cache   *cache.ResponseCache
	tracker *history.Tracker
}

// New creates an Orchestrator. cache and tracker may be nil to disable
// caching or history recording.
func New(c *client.Client, rc *cache.ResponseCache, tr *history.Tracker) *Orchestrator {
	return &Orchestrator{client: c, cache: rc, tracker: tr}
}

// Ask runs one query to completion: validate, check the cache, execute
// on a miss, store on success. Failed or timed-out requests never write
// to the cache.
func (o *Orchestrator) Ask(ctx context.Context, question, model string, opts Options) (*Result, error) {
	if err := validateQuestion(question); err != nil {
		return nil, err
	}
	if err := validateModel(model); err != nil {
		return nil, err
	}

	start := time.Now()
	key := cache.Key(question, model)

	if o.cache != nil && !opts.NoCache {
		if resp, ok := o.cache.Get(key); ok {
			res := &Result{Response: resp, Cached: true, Elapsed: time.Since(start)}
			o.record(key, model, res, nil)
			return res, nil
		}
	}

	preset := opts.preset()
	resp, err := o.client.Generate(ctx, models.GenerateRequest{
		Model:   model,
		Prompt:  question,
		Options: preset.Options,
	}, opts.timeout())
	if err != nil {
		o.record(key, model, &Result{Elapsed: time.Since(start)}, err)
		return nil, err
	}

	if o.cache != nil && !opts.NoCache {
		o.cache.Put(key, resp)
	}

	res := &Result{Response: resp, Elapsed: time.Since(start)}
	o.record(key, model, res, nil)
	return res, nil
}

// AskAsync checks the cache synchronously; on a miss the request is
// dispatched to a goroutine and a Future is returned immediately.
func (o *Orchestrator) AskAsync(ctx context.Context, question, model string, opts Options) *Future {
	if err := validateQuestion(question); err != nil {
		return resolvedFuture(nil, err)
	}
	if err := validateModel(model); err != nil {
		return resolvedFuture(nil, err)
	}

	if o.cache != nil && !opts.NoCache {
		start := time.Now()
		if resp, ok := o.cache.Get(cache.Key(question, model)); ok {
			res := &Result{Response: resp, Cached: true, Elapsed: time.Since(start)}
			o.record(cache.Key(question, model), model, res, nil)
			return resolvedFuture(res, nil)
		}
	}

	f := newFuture()
	go func() {
		res, err := o.Ask(ctx, question, model, opts)
		f.resolve(res, err)
	}()
	return f
}

// AskConcurrent runs the questions through a bounded worker pool. The
// i-th outcome always corresponds to the i-th question, whatever the
// completion order; a failed question does not cancel its siblings.
func (o *Orchestrator) AskConcurrent(ctx context.Context, questions []string, model string, opts Options, maxParallel int) []Outcome {
	if maxParallel <= 0 {
		maxParallel = 1
	}

	outcomes := make([]Outcome, len(questions))

	var g errgroup.Group
	g.SetLimit(maxParallel)
	for i, q := range questions {
		i, q := i, q
		g.Go(func() error {
			res, err := o.Ask(ctx, q, model, opts)
			outcomes[i] = Outcome{Result: res, Err: err}
			return nil
		})
	}
	g.Wait()

	return outcomes
}

// ClearCache empties the response cache.
func (o *Orchestrator) ClearCache() {
	if o.cache != nil {
		o.cache.Clear()
	}
}

// SweepCache removes expired cache entries.
func (o *Orchestrator) SweepCache() {
	if o.cache != nil {
		o.cache.SweepExpired()
	}
}

// CacheStats reports the response cache state.
func (o *Orchestrator) CacheStats() models.CacheStats {
	if o.cache == nil {
		return models.CacheStats{}
	}
	return o.cache.Stats()
}

// record stores the query in history. Recording never fails a query.
func (o *Orchestrator) record(key, model string, res *Result, qerr error) {
	if o.tracker == nil {
		return
	}

	rec := models.QueryRecord{
		PromptHash: key,
		Model:      model,
		Outcome:    outcomeLabel(qerr),
		CreatedAt:  time.Now().UTC(),
	}
	if res != nil {
		rec.Cached = res.Cached
		rec.LatencyMs = res.Elapsed.Milliseconds()
		if res.Response != nil {
			rec.PromptEvalCount = res.Response.PromptEvalCount
			rec.EvalCount = res.Response.EvalCount
		}
	}

	if err := o.tracker.Record(context.Background(), rec); err != nil {
		log.Printf("history record error: %v", err)
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, client.ErrTimeout):
		return "timeout"
	default:
		return "error"
	}
}
