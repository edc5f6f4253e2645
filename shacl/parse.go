package shacl

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/geoknoesis/shacl-go/rdf"
)

// Failure is a root shape skipped because of a structural error.
type Failure struct {
	Root rdf.Term
	Err  error
}

// Result is the outcome of Parse. The embedded Registry exposes the
// shapes and their conflicts.
type Result struct {
	*Registry

	// Roots are the shapes parsing started from, in graph order.
	Roots []rdf.Term
	// Failures lists roots skipped under SkipMalformed.
	Failures []Failure
}

// Parse builds every shape reachable from the roots of g. By default the
// first structural error aborts the parse; see SkipMalformed. Conflicts
// never abort it.
func Parse(ctx context.Context, g *rdf.Graph, opts ...Option) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	reg := NewRegistry(g, opts...)
	o := reg.opts
	start := time.Now()

	roots := DiscoverRoots(g, o.roots)
	o.metrics.recordRoots(len(roots))
	o.logger.Debug("parse started",
		"triples", g.Len(),
		"roots", len(roots),
		"root_mode", o.roots.String(),
		"concurrency", o.concurrency)

	failed := make([]error, len(roots))
	resolve := func(ctx context.Context, i int) error {
		_, err := reg.Resolve(ctx, roots[i])
		if err == nil {
			return nil
		}
		var shapeErr *ShapeError
		if o.skipMalformed && errors.As(err, &shapeErr) {
			failed[i] = err
			o.logger.Warn("skipping malformed shape",
				"root", rdf.RenderTerm(roots[i]),
				"code", shapeErr.Code,
				"error", err)
			return nil
		}
		return err
	}

	if o.concurrency <= 1 {
		for i := range roots {
			if err := resolve(ctx, i); err != nil {
				return nil, err
			}
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(o.concurrency)
		for i := range roots {
			eg.Go(func() error { return resolve(egCtx, i) })
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	result := &Result{Registry: reg, Roots: roots}
	for i, err := range failed {
		if err != nil {
			result.Failures = append(result.Failures, Failure{Root: roots[i], Err: err})
		}
	}

	elapsed := time.Since(start)
	o.metrics.observeParse(elapsed)
	o.logger.Debug("parse finished",
		"shapes", reg.Len(),
		"conflicts", len(reg.Conflicts()),
		"failures", len(result.Failures),
		"duration", elapsed)
	return result, nil
}
