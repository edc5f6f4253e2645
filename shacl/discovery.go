package shacl

import "github.com/geoknoesis/shacl-go/rdf"

// shapeReferences are the predicates through which one shape refers to
// another.
var shapeReferences = []rdf.IRI{SHProperty, SHNode, SHQualifiedValueShape, SHNot, rdf.RDFFirst}

var targets = []rdf.IRI{SHTargetClass, SHTargetNode, SHTargetSubjectsOf, SHTargetObjectsOf}

// DiscoverRoots returns the subjects Parse starts from, in graph order.
func DiscoverRoots(g *rdf.Graph, mode RootMode) []rdf.Term {
	var roots []rdf.Term
	for _, s := range g.Subjects() {
		switch mode {
		case RootsDeclared:
			if declared(g, s) && !g.HasIncomingVia(s, shapeReferences...) {
				roots = append(roots, s)
			}
		default:
			if !g.HasIncoming(s) {
				roots = append(roots, s)
			}
		}
	}
	return roots
}

func declared(g *rdf.Graph, s rdf.Term) bool {
	for _, t := range g.Objects(s, rdf.RDFType) {
		if t == SHNodeShape || t == SHPropertyShape {
			return true
		}
	}
	for _, p := range targets {
		if len(g.Objects(s, p)) > 0 {
			return true
		}
	}
	return false
}

// PropertyShapeCandidates returns the subjects of sh:path that are not the
// object of sh:property, rdf:first or sh:not: property shapes standing on
// their own rather than nested in another shape.
func PropertyShapeCandidates(g *rdf.Graph) []rdf.Term {
	var out []rdf.Term
	for _, s := range g.SubjectsWith(SHPath, nil) {
		if !g.HasIncomingVia(s, SHProperty, rdf.RDFFirst, SHNot) {
			out = append(out, s)
		}
	}
	return out
}
