// Package shacl parses SHACL shapes graphs into typed shapes and checks
// that the shapes themselves are well formed. It does not validate data.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// Parse walks a graph loaded with the rdf package:
//
//	g, err := rdf.LoadFile(ctx, "shapes.ttl")
//	if err != nil {
//	    // handle error
//	}
//	res, err := shacl.Parse(ctx, g)
//	if err != nil {
//	    // a structural error, see Code(err)
//	}
//	for _, ps := range res.PropertyShapes() {
//	    fmt.Println(ps.URI, ps.Path)
//	}
//	for _, c := range res.Conflicts() {
//	    fmt.Println(c)
//	}
//
// Every shape resource becomes a Record that the builder fills from the
// recognised sh: predicates. Check reports problems that do not prevent
// building (wrong term kinds, wrong datatypes, lower bounds above upper
// bounds) as Conflicts. Structural problems (several values for a
// functional predicate, broken RDF lists, invalid paths, non-string
// messages) abort the shape with a *ShapeError. Classify then turns the
// record into a *NodeShape, *PropertyShape or *GenericShape.
//
// Shapes are stored in a Registry keyed by their IRI or blank node.
// Nested shapes (sh:property, sh:node, sh:qualifiedValueShape, sh:group)
// are referenced by identity and resolved through the registry, so a
// shape is built once however often it is referenced, and reference
// cycles terminate.
package shacl
