package rdf

// Graph is an in-memory set of triples indexed for the probes a shapes
// parser performs. Duplicate triples are stored once. Every accessor
// returns results in insertion order, so parsing the same input twice
// yields the same traversal.
//
// A Graph is not safe for concurrent mutation. Once loading has finished
// it may be read from any number of goroutines.
type Graph struct {
	triples  []Triple
	seen     map[Triple]struct{}
	spo      map[Term]*subjectIndex
	subjects []Term
	pos      map[IRI][]Triple
	incoming map[Term]int
}

type subjectIndex struct {
	predicates []IRI
	objects    map[IRI][]Term
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		seen:     make(map[Triple]struct{}),
		spo:      make(map[Term]*subjectIndex),
		pos:      make(map[IRI][]Triple),
		incoming: make(map[Term]int),
	}
}

// NewGraphFromTriples returns a graph holding the given triples.
func NewGraphFromTriples(triples ...Triple) *Graph {
	g := NewGraph()
	for _, t := range triples {
		g.Add(t)
	}
	return g
}

// Add inserts a triple and reports whether it was new.
// Triples with a missing component are ignored.
func (g *Graph) Add(t Triple) bool {
	if t.S == nil || t.P.Value == "" || t.O == nil {
		return false
	}
	if _, ok := g.seen[t]; ok {
		return false
	}
	g.seen[t] = struct{}{}
	g.triples = append(g.triples, t)

	idx, ok := g.spo[t.S]
	if !ok {
		idx = &subjectIndex{objects: make(map[IRI][]Term)}
		g.spo[t.S] = idx
		g.subjects = append(g.subjects, t.S)
	}
	if _, ok := idx.objects[t.P]; !ok {
		idx.predicates = append(idx.predicates, t.P)
	}
	idx.objects[t.P] = append(idx.objects[t.P], t.O)

	g.pos[t.P] = append(g.pos[t.P], t)
	g.incoming[t.O]++
	return true
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns all triples in insertion order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Has reports whether the graph contains the triple.
func (g *Graph) Has(t Triple) bool {
	_, ok := g.seen[t]
	return ok
}

// Subjects returns every distinct subject in insertion order.
func (g *Graph) Subjects() []Term {
	out := make([]Term, len(g.subjects))
	copy(out, g.subjects)
	return out
}

// HasSubject reports whether t appears as the subject of any triple.
func (g *Graph) HasSubject(t Term) bool {
	_, ok := g.spo[t]
	return ok
}

// Predicates returns the distinct predicates used with subject s.
func (g *Graph) Predicates(s Term) []IRI {
	idx, ok := g.spo[s]
	if !ok {
		return nil
	}
	out := make([]IRI, len(idx.predicates))
	copy(out, idx.predicates)
	return out
}

// Objects returns every object of subject s and predicate p.
func (g *Graph) Objects(s Term, p IRI) []Term {
	idx, ok := g.spo[s]
	if !ok {
		return nil
	}
	objs := idx.objects[p]
	if len(objs) == 0 {
		return nil
	}
	out := make([]Term, len(objs))
	copy(out, objs)
	return out
}

// Object returns the single object of subject s and predicate p.
// It returns (nil, nil) when there is none and an *AmbiguousValueError
// when there is more than one.
func (g *Graph) Object(s Term, p IRI) (Term, error) {
	idx, ok := g.spo[s]
	if !ok {
		return nil, nil
	}
	objs := idx.objects[p]
	switch len(objs) {
	case 0:
		return nil, nil
	case 1:
		return objs[0], nil
	default:
		values := make([]Term, len(objs))
		copy(values, objs)
		return nil, &AmbiguousValueError{Subject: s, Predicate: p, Values: values}
	}
}

// SubjectsWith returns the distinct subjects having predicate p. When o is
// non-nil only subjects with that exact object are returned.
func (g *Graph) SubjectsWith(p IRI, o Term) []Term {
	var out []Term
	seen := make(map[Term]struct{})
	for _, t := range g.pos[p] {
		if o != nil && t.O != o {
			continue
		}
		if _, ok := seen[t.S]; ok {
			continue
		}
		seen[t.S] = struct{}{}
		out = append(out, t.S)
	}
	return out
}

// HasIncoming reports whether t is the object of any triple.
func (g *Graph) HasIncoming(t Term) bool {
	return g.incoming[t] > 0
}

// HasIncomingVia reports whether t is the object of a triple whose
// predicate is one of preds.
func (g *Graph) HasIncomingVia(t Term, preds ...IRI) bool {
	if g.incoming[t] == 0 {
		return false
	}
	for _, p := range preds {
		for _, tr := range g.pos[p] {
			if tr.O == t {
				return true
			}
		}
	}
	return false
}
