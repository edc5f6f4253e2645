package shacl

import (
	"strings"

	"github.com/agext/levenshtein"
	"github.com/geoknoesis/shacl-go/rdf"
)

// Namespace is the SHACL vocabulary namespace.
const Namespace = "http://www.w3.org/ns/shacl#"

func sh(local string) rdf.IRI { return rdf.IRI{Value: Namespace + local} }

// Shape classes.
var (
	SHNodeShape     = sh("NodeShape")
	SHPropertyShape = sh("PropertyShape")
	SHShape         = sh("Shape")
)

// Targets.
var (
	SHTargetClass      = sh("targetClass")
	SHTargetNode       = sh("targetNode")
	SHTargetSubjectsOf = sh("targetSubjectsOf")
	SHTargetObjectsOf  = sh("targetObjectsOf")
)

// Structural and non-validating parameters.
var (
	SHNodeKind          = sh("nodeKind")
	SHClosed            = sh("closed")
	SHIgnoredProperties = sh("ignoredProperties")
	SHProperty          = sh("property")
	SHPath              = sh("path")
	SHOrder             = sh("order")
	SHGroup             = sh("group")
	SHMessage           = sh("message")
	SHSeverity          = sh("severity")
	SHName              = sh("name")
	SHDescription       = sh("description")
)

// Value constraint parameters.
var (
	SHClass                        = sh("class")
	SHDatatype                     = sh("datatype")
	SHMinCount                     = sh("minCount")
	SHMaxCount                     = sh("maxCount")
	SHMinExclusive                 = sh("minExclusive")
	SHMaxExclusive                 = sh("maxExclusive")
	SHMinInclusive                 = sh("minInclusive")
	SHMaxInclusive                 = sh("maxInclusive")
	SHMinLength                    = sh("minLength")
	SHMaxLength                    = sh("maxLength")
	SHPattern                      = sh("pattern")
	SHFlags                        = sh("flags")
	SHLanguageIn                   = sh("languageIn")
	SHUniqueLang                   = sh("uniqueLang")
	SHEquals                       = sh("equals")
	SHDisjoint                     = sh("disjoint")
	SHLessThan                     = sh("lessThan")
	SHLessThanOrEquals             = sh("lessThanOrEquals")
	SHNode                         = sh("node")
	SHHasValue                     = sh("hasValue")
	SHIn                           = sh("in")
	SHQualifiedValueShape          = sh("qualifiedValueShape")
	SHQualifiedValueShapesDisjoint = sh("qualifiedValueShapesDisjoint")
	SHQualifiedMinCount            = sh("qualifiedMinCount")
	SHQualifiedMaxCount            = sh("qualifiedMaxCount")
)

// Property path operators.
var (
	SHAlternativePath = sh("alternativePath")
	SHInversePath     = sh("inversePath")
	SHZeroOrMorePath  = sh("zeroOrMorePath")
	SHOneOrMorePath   = sh("oneOrMorePath")
	SHZeroOrOnePath   = sh("zeroOrOnePath")
)

// Node kinds.
var (
	SHIRI                = sh("IRI")
	SHBlankNode          = sh("BlankNode")
	SHLiteral            = sh("Literal")
	SHBlankNodeOrIRI     = sh("BlankNodeOrIRI")
	SHBlankNodeOrLiteral = sh("BlankNodeOrLiteral")
	SHIRIOrLiteral       = sh("IRIOrLiteral")
)

// Severities.
var (
	SHViolation = sh("Violation")
	SHWarning   = sh("Warning")
	SHInfo      = sh("Info")
)

// Logical constraint components. They are recognised but not built.
var (
	SHNot         = sh("not")
	SHAnd         = sh("and")
	SHOr          = sh("or")
	SHXone        = sh("xone")
	SHDeactivated = sh("deactivated")
	SHSPARQL      = sh("sparql")
)

// nodeKinds holds the six values sh:nodeKind accepts.
var nodeKinds = map[rdf.Term]struct{}{
	SHIRI:                {},
	SHBlankNode:          {},
	SHLiteral:            {},
	SHBlankNodeOrIRI:     {},
	SHBlankNodeOrLiteral: {},
	SHIRIOrLiteral:       {},
}

// unsupported predicates are known SHACL terms the builder skips silently.
var unsupported = []rdf.IRI{
	SHNot, SHAnd, SHOr, SHXone, SHDeactivated, SHSPARQL,
	sh("targetShape"), sh("defaultValue"), sh("shapesGraph"), sh("prefixes"),
	sh("declare"), sh("select"), sh("ask"), sh("construct"), sh("labelTemplate"),
}

// known is every predicate the builder reads, in vocabulary order.
var known = []rdf.IRI{
	SHTargetClass, SHTargetNode, SHTargetSubjectsOf, SHTargetObjectsOf,
	SHNodeKind, SHClosed, SHIgnoredProperties, SHProperty, SHPath, SHOrder,
	SHGroup, SHMessage, SHSeverity, SHName, SHDescription,
	SHClass, SHDatatype, SHMinCount, SHMaxCount, SHMinExclusive, SHMaxExclusive,
	SHMinInclusive, SHMaxInclusive, SHMinLength, SHMaxLength, SHPattern, SHFlags,
	SHLanguageIn, SHUniqueLang, SHEquals, SHDisjoint, SHLessThan, SHLessThanOrEquals,
	SHNode, SHHasValue, SHIn, SHQualifiedValueShape, SHQualifiedValueShapesDisjoint,
	SHQualifiedMinCount, SHQualifiedMaxCount,
}

var (
	knownSet       = toSet(known)
	unsupportedSet = toSet(unsupported)
)

func toSet(iris []rdf.IRI) map[rdf.IRI]struct{} {
	set := make(map[rdf.IRI]struct{}, len(iris))
	for _, iri := range iris {
		set[iri] = struct{}{}
	}
	return set
}

// IsKnown reports whether the builder reads predicate p.
func IsKnown(p rdf.IRI) bool {
	_, ok := knownSet[p]
	return ok
}

// InNamespace reports whether p belongs to the SHACL vocabulary.
func InNamespace(p rdf.IRI) bool {
	return strings.HasPrefix(p.Value, Namespace)
}

// maxSuggestionDistance bounds how different a suggestion may be.
const maxSuggestionDistance = 3

// Suggest returns the known SHACL predicate closest to p by edit distance,
// or false when nothing is close enough.
func Suggest(p rdf.IRI) (rdf.IRI, bool) {
	local := strings.TrimPrefix(p.Value, Namespace)
	best := rdf.IRI{}
	bestDist := maxSuggestionDistance + 1
	for _, candidate := range known {
		d := levenshtein.Distance(local, strings.TrimPrefix(candidate.Value, Namespace), nil)
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, bestDist <= maxSuggestionDistance
}

// Prefixed renders a SHACL IRI as "sh:local" and any other term in
// N-Triples syntax.
func Prefixed(t rdf.Term) string {
	if iri, ok := t.(rdf.IRI); ok && InNamespace(iri) {
		return "sh:" + strings.TrimPrefix(iri.Value, Namespace)
	}
	return rdf.RenderTerm(t)
}
