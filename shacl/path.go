package shacl

import (
	"strings"

	"github.com/geoknoesis/shacl-go/rdf"
)

// Path is a SHACL property path. Implementations are PredicatePath,
// SequencePath, AlternativePath, InversePath, ZeroOrMorePath,
// OneOrMorePath and ZeroOrOnePath. String renders SPARQL property path
// syntax.
type Path interface {
	String() string
	path()
}

// PredicatePath is a single predicate IRI.
type PredicatePath struct {
	Predicate rdf.IRI
}

// SequencePath follows each step in order.
type SequencePath struct {
	Steps []Path
}

// AlternativePath follows any one of at least two alternatives.
type AlternativePath struct {
	Alternatives []Path
}

// InversePath follows Path backwards.
type InversePath struct {
	Path Path
}

// ZeroOrMorePath follows Path any number of times.
type ZeroOrMorePath struct {
	Path Path
}

// OneOrMorePath follows Path at least once.
type OneOrMorePath struct {
	Path Path
}

// ZeroOrOnePath follows Path at most once.
type ZeroOrOnePath struct {
	Path Path
}

func (PredicatePath) path()   {}
func (SequencePath) path()    {}
func (AlternativePath) path() {}
func (InversePath) path()     {}
func (ZeroOrMorePath) path()  {}
func (OneOrMorePath) path()   {}
func (ZeroOrOnePath) path()   {}

func (p PredicatePath) String() string { return "<" + p.Predicate.Value + ">" }

func (p SequencePath) String() string {
	parts := make([]string, len(p.Steps))
	for i, step := range p.Steps {
		switch step.(type) {
		case SequencePath, AlternativePath:
			parts[i] = "(" + step.String() + ")"
		default:
			parts[i] = step.String()
		}
	}
	return strings.Join(parts, "/")
}

func (p AlternativePath) String() string {
	parts := make([]string, len(p.Alternatives))
	for i, alt := range p.Alternatives {
		parts[i] = alt.String()
	}
	return strings.Join(parts, "|")
}

func (p InversePath) String() string {
	switch p.Path.(type) {
	case SequencePath, AlternativePath, InversePath:
		return "^(" + p.Path.String() + ")"
	default:
		return "^" + p.Path.String()
	}
}

func (p ZeroOrMorePath) String() string { return modified(p.Path, "*") }
func (p OneOrMorePath) String() string  { return modified(p.Path, "+") }
func (p ZeroOrOnePath) String() string  { return modified(p.Path, "?") }

func modified(p Path, mod string) string {
	if _, ok := p.(PredicatePath); ok {
		return p.String() + mod
	}
	return "(" + p.String() + ")" + mod
}

// pathOperators are probed in this order; the first present wins.
var pathOperators = []rdf.IRI{
	SHAlternativePath,
	SHInversePath,
	SHZeroOrMorePath,
	SHOneOrMorePath,
	SHZeroOrOnePath,
}

// ResolvePath builds the Path described by term, the object of sh:path on
// shape.
func ResolvePath(g *rdf.Graph, shape rdf.Term, term rdf.Term) (Path, error) {
	r := &pathResolver{g: g, shape: shape, visiting: make(map[rdf.Term]struct{})}
	return r.resolve(term)
}

type pathResolver struct {
	g        *rdf.Graph
	shape    rdf.Term
	visiting map[rdf.Term]struct{}
}

func (r *pathResolver) invalid(format string, args ...any) error {
	return newShapeError(ErrCodeInvalidPath, r.shape, SHPath, format, args...)
}

func (r *pathResolver) resolve(term rdf.Term) (Path, error) {
	if !rdf.IsResource(term) {
		return nil, r.invalid("%s is not an IRI or blank node", rdf.RenderTerm(term))
	}
	if term == rdf.RDFNil {
		return nil, r.invalid("empty sequence path")
	}
	if _, ok := r.visiting[term]; ok {
		return nil, r.invalid("path node %s is revisited", rdf.RenderTerm(term))
	}
	r.visiting[term] = struct{}{}
	defer delete(r.visiting, term)

	if len(r.g.Objects(term, rdf.RDFFirst)) > 0 {
		return r.sequence(term)
	}

	for _, op := range pathOperators {
		operand, err := r.g.Object(term, op)
		if err != nil {
			return nil, &ShapeError{Code: ErrCodeMultipleValues, Shape: r.shape, Predicate: op, Err: err}
		}
		if operand == nil {
			continue
		}
		if op == SHAlternativePath {
			return r.alternative(operand)
		}
		inner, err := r.resolve(operand)
		if err != nil {
			return nil, err
		}
		switch op {
		case SHInversePath:
			return InversePath{Path: inner}, nil
		case SHZeroOrMorePath:
			return ZeroOrMorePath{Path: inner}, nil
		case SHOneOrMorePath:
			return OneOrMorePath{Path: inner}, nil
		default:
			return ZeroOrOnePath{Path: inner}, nil
		}
	}

	if iri, ok := term.(rdf.IRI); ok {
		return PredicatePath{Predicate: iri}, nil
	}
	return nil, r.invalid("blank node %s matches no path form", rdf.RenderTerm(term))
}

// members resolves every element of the list at head.
func (r *pathResolver) members(head rdf.Term) ([]Path, error) {
	list, _, err := DecodeList(r.g, r.shape, SHPath, head, ElementCheck{})
	if err != nil {
		return nil, err
	}
	paths := make([]Path, 0, len(list.Items))
	for _, item := range list.Items {
		p, err := r.resolve(item)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (r *pathResolver) sequence(head rdf.Term) (Path, error) {
	steps, err := r.members(head)
	if err != nil {
		return nil, err
	}
	return SequencePath{Steps: steps}, nil
}

func (r *pathResolver) alternative(head rdf.Term) (Path, error) {
	if !rdf.IsResource(head) || head == rdf.RDFNil || len(r.g.Objects(head, rdf.RDFFirst)) == 0 {
		return nil, r.invalid("sh:alternativePath value %s is not a list", rdf.RenderTerm(head))
	}
	if _, ok := r.visiting[head]; ok {
		return nil, r.invalid("path node %s is revisited", rdf.RenderTerm(head))
	}
	r.visiting[head] = struct{}{}
	defer delete(r.visiting, head)

	alts, err := r.members(head)
	if err != nil {
		return nil, err
	}
	if len(alts) < 2 {
		return nil, r.invalid("sh:alternativePath needs at least two alternatives, got %d", len(alts))
	}
	return AlternativePath{Alternatives: alts}, nil
}
