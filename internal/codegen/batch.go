package codegen

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome for one fixture of a batch run
type BatchResult struct {
	Fixture string  `json:"fixture" yaml:"fixture"`
	Result  *Result `json:"result,omitempty" yaml:"result,omitempty"`
	Err     error   `json:"-" yaml:"-"`
	Error   string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunBatch generates code for every fixture using up to jobs goroutines.
// Each fixture is parsed independently; a failing fixture is reported in its
// result and does not stop the others. Results keep the order of fixtures.
func (g *Generator) RunBatch(ctx context.Context, fixtures []Fixture, jobs int) ([]BatchResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]BatchResult, len(fixtures))
	if len(fixtures) == 0 {
		return results, nil
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(min(jobs, len(fixtures)))
	for i, f := range fixtures {
		i, f := i, f
		eg.Go(func() error {
			select {
			case <-egctx.Done():
				return egctx.Err()
			default:
			}
			res, err := g.Generate(egctx, f.Original, f.Expected)
			results[i] = BatchResult{Fixture: f.Name, Result: res, Err: err}
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
