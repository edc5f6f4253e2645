// Package rdf provides the RDF term model and the in-memory graph that the
// shacl package reads shapes from.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// The package is deliberately small:
//   - Terms: IRI, BlankNode and Literal implement Term and are comparable,
//     so any Term can be used as a map key.
//   - Graph: an indexed, de-duplicated set of triples answering the probes a
//     shapes parser needs (Objects, Object, SubjectsWith, HasIncoming).
//   - Load / LoadFile: decode Turtle, N-Triples, RDF/XML or JSON-LD into a
//     Graph. Syntax decoding is delegated to github.com/knakk/rdf and
//     github.com/piprate/json-gold; this package only maps their terms.
//
// Example:
//
//	g, err := rdf.Load(ctx, strings.NewReader(input), rdf.FormatTurtle)
//	if err != nil {
//	    // handle error
//	}
//	for _, o := range g.Objects(rdf.IRI{Value: "http://example.org/s"}, rdf.IRI{Value: "http://example.org/p"}) {
//	    // use o
//	}
//
// Object is the functional probe: it returns (nil, nil) when there is no
// value and an error wrapping ErrAmbiguousValue when there is more than one.
//
// Decoding limits can be set with OptMaxTriples and OptMaxInputBytes; OptSafeLimits applies
// conservative limits for untrusted input.
package rdf
