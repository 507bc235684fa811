package sim

import (
	"context"
	"sync"

	"github.com/san-kum/pendlab/internal/dynamo"
)

// Ensemble runs several simulations from slightly perturbed initial
// conditions to expose trajectory divergence. Each run gets its own system
// and integrator from the factory, so runs never share mutable state.
type Ensemble struct {
	factory func() (dynamo.System, dynamo.Integrator)
	numRuns int
	perturb dynamo.Real
}

func NewEnsemble(factory func() (dynamo.System, dynamo.Integrator), numRuns int, perturb dynamo.Real) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, perturb: perturb}
}

// Run launches the runs concurrently; run i offsets the first angle by
// i*perturb. Results are indexed by run.
func (e *Ensemble) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			dyn, integ := e.factory()
			s := New(dyn, integ)

			start := x0.Clone()
			start[0] += dynamo.Real(idx) * e.perturb

			results[idx], errs[idx] = s.Run(ctx, start, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
