package gate

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/document"
)

// DefaultWorkers is the default size of the evaluation worker pool.
const DefaultWorkers = 4

// Validator evaluates gate modules against documents.
//
// Each gate is document-pure and side-effect-free, so evaluation fans out
// across a bounded worker pool for latency. The aggregated result list is
// consumed as a set downstream; it is sorted by gate key before returning
// so the same input always yields the same slice.
type Validator struct {
	registry *Registry
	workers  int
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithWorkers sets the worker pool size. Values below 1 are treated as 1.
func WithWorkers(n int) ValidatorOption {
	return func(v *Validator) {
		if n < 1 {
			n = 1
		}
		v.workers = n
	}
}

// NewValidator creates a Validator over the given registry.
func NewValidator(reg *Registry, opts ...ValidatorOption) *Validator {
	v := &Validator{registry: reg, workers: DefaultWorkers}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Evaluate runs every gate in the requested modules against the document.
//
// An empty module set means all registered modules. Results come back in
// gate-key order regardless of worker scheduling.
func (v *Validator) Evaluate(ctx context.Context, doc document.Document, modules []string) ([]Result, error) {
	defs, err := v.registry.Gates(modules)
	if err != nil {
		return nil, err
	}

	text := doc.Text()
	results := make([]Result, len(defs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := v.workers
	if workers > len(defs) {
		workers = len(defs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// Index-partitioned writes: no two workers touch the
				// same slot, so no lock is needed.
				results[i] = defs[i].Evaluate(text)
			}
		}()
	}

	for i := range defs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].GateKey < results[j].GateKey
	})

	slog.Debug("gates evaluated",
		"modules", modules,
		"gates", len(results),
		"failing", CountFailing(results),
	)
	return results, nil
}
