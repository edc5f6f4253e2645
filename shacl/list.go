package shacl

import (
	"fmt"

	"github.com/geoknoesis/shacl-go/rdf"
)

// ElementCheck restricts the members of a decoded list. The zero value
// accepts anything.
type ElementCheck struct {
	Kinds     []rdf.TermKind // Allowed term kinds; empty allows all
	Datatypes []rdf.IRI      // Allowed literal datatypes; empty allows all
}

// conflicts returns one conflict per rule the value breaks.
func (c ElementCheck) conflicts(shape rdf.Term, predicate rdf.IRI, value rdf.Term) []Conflict {
	if value == nil {
		return nil
	}
	if len(c.Kinds) > 0 && !kindAllowed(value, c.Kinds) {
		return []Conflict{{
			Code:      ErrCodeWrongTermKind,
			Shape:     shape,
			Predicate: predicate,
			Value:     value,
			Message:   fmt.Sprintf("%s is a %s, expected %s", rdf.RenderTerm(value), value.Kind(), kindList(c.Kinds)),
		}}
	}
	if len(c.Datatypes) > 0 {
		lit, ok := value.(rdf.Literal)
		if !ok {
			return nil
		}
		dt := lit.EffectiveDatatype()
		for _, want := range c.Datatypes {
			if dt == want {
				return nil
			}
		}
		return []Conflict{{
			Code:      ErrCodeWrongDatatype,
			Shape:     shape,
			Predicate: predicate,
			Value:     value,
			Message:   fmt.Sprintf("%s has datatype %s, expected %s", rdf.RenderTerm(value), Prefixed(dt), datatypeList(c.Datatypes)),
		}}
	}
	return nil
}

// DecodeList walks the rdf:first/rdf:rest chain starting at head. rdf:nil
// is the empty list. Structural problems abort with a MALFORMED_LIST
// *ShapeError naming shape and predicate; each member failing check is
// reported as a separate conflict.
func DecodeList(g *rdf.Graph, shape rdf.Term, predicate rdf.IRI, head rdf.Term, check ElementCheck) (*List, []Conflict, error) {
	list := &List{Head: head}
	var conflicts []Conflict
	seen := make(map[rdf.Term]struct{})

	node := head
	for node != rdf.RDFNil {
		if !rdf.IsResource(node) {
			return nil, nil, newShapeError(ErrCodeMalformedList, shape, predicate,
				"list node %s is not an IRI or blank node", rdf.RenderTerm(node))
		}
		if _, ok := seen[node]; ok {
			return nil, nil, newShapeError(ErrCodeMalformedList, shape, predicate,
				"list node %s is revisited", rdf.RenderTerm(node))
		}
		seen[node] = struct{}{}

		first, err := g.Object(node, rdf.RDFFirst)
		if err != nil {
			return nil, nil, &ShapeError{Code: ErrCodeMalformedList, Shape: shape, Predicate: predicate, Err: err}
		}
		if first == nil {
			return nil, nil, newShapeError(ErrCodeMalformedList, shape, predicate,
				"list node %s has no rdf:first", rdf.RenderTerm(node))
		}
		rest, err := g.Object(node, rdf.RDFRest)
		if err != nil {
			return nil, nil, &ShapeError{Code: ErrCodeMalformedList, Shape: shape, Predicate: predicate, Err: err}
		}
		if rest == nil {
			return nil, nil, newShapeError(ErrCodeMalformedList, shape, predicate,
				"list node %s has no rdf:rest", rdf.RenderTerm(node))
		}

		list.Items = append(list.Items, first)
		conflicts = append(conflicts, check.conflicts(shape, predicate, first)...)
		node = rest
	}
	return list, conflicts, nil
}
