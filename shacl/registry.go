package shacl

import (
	"context"
	"fmt"
	"sync"

	"github.com/geoknoesis/shacl-go/rdf"
)

type entry struct {
	id        rdf.Term
	done      chan struct{}
	shape     Shape
	conflicts []Conflict
	err       error
}

// Registry owns the shapes built from one graph, keyed by identity. Each
// identity is built once; concurrent callers share the result.
type Registry struct {
	g    *rdf.Graph
	opts options

	mu      sync.Mutex
	entries map[rdf.Term]*entry
	order   []*entry
}

// NewRegistry returns an empty registry over g.
func NewRegistry(g *rdf.Graph, opts ...Option) *Registry {
	return &Registry{
		g:       g,
		opts:    buildOptions(opts),
		entries: make(map[rdf.Term]*entry),
	}
}

// Graph returns the graph shapes are read from.
func (r *Registry) Graph() *rdf.Graph { return r.g }

// claim registers id and reports whether the caller must build it.
func (r *Registry) claim(id rdf.Term) (*entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[id]; ok {
		return e, false
	}
	e := &entry{id: id, done: make(chan struct{})}
	r.entries[id] = e
	r.order = append(r.order, e)
	return e, true
}

func (r *Registry) complete(e *entry, shape Shape, conflicts []Conflict, err error) {
	r.mu.Lock()
	e.shape, e.conflicts, e.err = shape, conflicts, err
	r.mu.Unlock()
	close(e.done)
}

// Resolve returns the shape for id, building it and everything it
// references on first access. Later calls return the same Shape.
func (r *Registry) Resolve(ctx context.Context, id rdf.Term) (Shape, error) {
	if !rdf.IsResource(id) {
		return nil, fmt.Errorf("shacl: shape identity %s is not an IRI or blank node", rdf.RenderTerm(id))
	}
	if err := r.build(ctx, id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	e := r.entries[id]
	r.mu.Unlock()

	select {
	case <-e.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return e.shape, e.err
}

// Lookup returns the completed shape for id.
func (r *Registry) Lookup(id rdf.Term) (Shape, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.shape == nil {
		return nil, false
	}
	return e.shape, true
}

// Len returns the number of successfully built shapes.
func (r *Registry) Len() int {
	return len(r.Shapes())
}

// Shapes returns every built shape in discovery order.
func (r *Registry) Shapes() []Shape {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Shape, 0, len(r.order))
	for _, e := range r.order {
		if e.shape != nil {
			out = append(out, e.shape)
		}
	}
	return out
}

// NodeShapes returns the built node shapes in discovery order.
func (r *Registry) NodeShapes() []*NodeShape {
	var out []*NodeShape
	for _, s := range r.Shapes() {
		if ns, ok := s.(*NodeShape); ok {
			out = append(out, ns)
		}
	}
	return out
}

// PropertyShapes returns the built property shapes in discovery order.
func (r *Registry) PropertyShapes() []*PropertyShape {
	var out []*PropertyShape
	for _, s := range r.Shapes() {
		if ps, ok := s.(*PropertyShape); ok {
			out = append(out, ps)
		}
	}
	return out
}

// GenericShapes returns the built generic shapes in discovery order.
func (r *Registry) GenericShapes() []*GenericShape {
	var out []*GenericShape
	for _, s := range r.Shapes() {
		if gs, ok := s.(*GenericShape); ok {
			out = append(out, gs)
		}
	}
	return out
}

// Conflicts returns the conflicts of every built shape in discovery order.
func (r *Registry) Conflicts() []Conflict {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Conflict
	for _, e := range r.order {
		out = append(out, e.conflicts...)
	}
	return out
}

// ConflictsFor returns the conflicts found on shape id.
func (r *Registry) ConflictsFor(id rdf.Term) []Conflict {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || len(e.conflicts) == 0 {
		return nil
	}
	out := make([]Conflict, len(e.conflicts))
	copy(out, e.conflicts)
	return out
}
