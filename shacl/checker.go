package shacl

import (
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/geoknoesis/shacl-go/rdf"
)

var (
	iriOnly          = []rdf.TermKind{rdf.TermIRI}
	literalOnly      = []rdf.TermKind{rdf.TermLiteral}
	resourceKinds    = []rdf.TermKind{rdf.TermIRI, rdf.TermBlankNode}
	iriOrLiteral     = []rdf.TermKind{rdf.TermIRI, rdf.TermLiteral}
	integerOnly      = []rdf.IRI{rdf.XSDInteger}
	stringOnly       = []rdf.IRI{rdf.XSDString}
	booleanOnly      = []rdf.IRI{rdf.XSDBoolean}
	decimalOrInteger = []rdf.IRI{rdf.XSDDecimal, rdf.XSDInteger}
)

// Element checks applied while decoding list-valued parameters.
var (
	ignoredPropertiesCheck = ElementCheck{Kinds: iriOnly}
	languageInCheck        = ElementCheck{Kinds: literalOnly, Datatypes: stringOnly}
)

// rule checks every value a record holds for one predicate.
type rule struct {
	predicate rdf.IRI
	check     ElementCheck
	values    func(*Record) []rdf.Term
}

func terms(t rdf.Term) []rdf.Term {
	if t == nil {
		return nil
	}
	return []rdf.Term{t}
}

func boundTerms(b *Bound) []rdf.Term {
	if b == nil {
		return nil
	}
	return terms(b.Term)
}

func flagTerms(f *Flag) []rdf.Term {
	if f == nil {
		return nil
	}
	return terms(f.Term)
}

var rules = []rule{
	{SHTargetNode, ElementCheck{Kinds: iriOrLiteral}, func(r *Record) []rdf.Term { return r.TargetNode }},
	{SHTargetClass, ElementCheck{Kinds: iriOnly}, func(r *Record) []rdf.Term { return r.TargetClass }},
	{SHTargetSubjectsOf, ElementCheck{Kinds: iriOnly}, func(r *Record) []rdf.Term { return r.TargetSubjectsOf }},
	{SHTargetObjectsOf, ElementCheck{Kinds: iriOnly}, func(r *Record) []rdf.Term { return r.TargetObjectsOf }},

	{SHClass, ElementCheck{Kinds: iriOnly}, func(r *Record) []rdf.Term { return r.Class }},
	{SHDatatype, ElementCheck{Kinds: iriOnly}, func(r *Record) []rdf.Term { return terms(r.Datatype) }},
	{SHEquals, ElementCheck{Kinds: iriOnly}, func(r *Record) []rdf.Term { return r.Equals }},
	{SHDisjoint, ElementCheck{Kinds: iriOnly}, func(r *Record) []rdf.Term { return r.Disjoint }},
	{SHLessThan, ElementCheck{Kinds: iriOnly}, func(r *Record) []rdf.Term { return r.LessThan }},
	{SHLessThanOrEquals, ElementCheck{Kinds: iriOnly}, func(r *Record) []rdf.Term { return r.LessThanOrEquals }},
	{SHNodeKind, ElementCheck{Kinds: iriOnly}, func(r *Record) []rdf.Term { return terms(r.NodeKind) }},
	{SHSeverity, ElementCheck{Kinds: iriOnly}, func(r *Record) []rdf.Term { return terms(r.Severity) }},

	{SHNode, ElementCheck{Kinds: resourceKinds}, func(r *Record) []rdf.Term { return r.Node }},
	{SHQualifiedValueShape, ElementCheck{Kinds: resourceKinds}, func(r *Record) []rdf.Term { return terms(r.QualifiedValueShape) }},
	{SHGroup, ElementCheck{Kinds: resourceKinds}, func(r *Record) []rdf.Term { return terms(r.Group) }},
	{SHProperty, ElementCheck{Kinds: resourceKinds}, func(r *Record) []rdf.Term { return r.Properties }},

	{SHMinCount, ElementCheck{Kinds: literalOnly, Datatypes: integerOnly}, func(r *Record) []rdf.Term { return boundTerms(r.MinCount) }},
	{SHMaxCount, ElementCheck{Kinds: literalOnly, Datatypes: integerOnly}, func(r *Record) []rdf.Term { return boundTerms(r.MaxCount) }},
	{SHMinLength, ElementCheck{Kinds: literalOnly, Datatypes: integerOnly}, func(r *Record) []rdf.Term { return boundTerms(r.MinLength) }},
	{SHMaxLength, ElementCheck{Kinds: literalOnly, Datatypes: integerOnly}, func(r *Record) []rdf.Term { return boundTerms(r.MaxLength) }},
	{SHQualifiedMinCount, ElementCheck{Kinds: literalOnly, Datatypes: integerOnly}, func(r *Record) []rdf.Term { return boundTerms(r.QualifiedMinCount) }},
	{SHQualifiedMaxCount, ElementCheck{Kinds: literalOnly, Datatypes: integerOnly}, func(r *Record) []rdf.Term { return boundTerms(r.QualifiedMaxCount) }},

	{SHMinExclusive, ElementCheck{Kinds: literalOnly}, func(r *Record) []rdf.Term { return boundTerms(r.MinExclusive) }},
	{SHMaxExclusive, ElementCheck{Kinds: literalOnly}, func(r *Record) []rdf.Term { return boundTerms(r.MaxExclusive) }},
	{SHMinInclusive, ElementCheck{Kinds: literalOnly}, func(r *Record) []rdf.Term { return boundTerms(r.MinInclusive) }},
	{SHMaxInclusive, ElementCheck{Kinds: literalOnly}, func(r *Record) []rdf.Term { return boundTerms(r.MaxInclusive) }},

	{SHOrder, ElementCheck{Kinds: literalOnly, Datatypes: decimalOrInteger}, func(r *Record) []rdf.Term { return boundTerms(r.Order) }},
	{SHPattern, ElementCheck{Kinds: literalOnly, Datatypes: stringOnly}, func(r *Record) []rdf.Term { return terms(r.Pattern) }},
	{SHFlags, ElementCheck{Kinds: literalOnly, Datatypes: stringOnly}, func(r *Record) []rdf.Term { return terms(r.Flags) }},

	{SHClosed, ElementCheck{Kinds: literalOnly, Datatypes: booleanOnly}, func(r *Record) []rdf.Term { return flagTerms(r.Closed) }},
	{SHUniqueLang, ElementCheck{Kinds: literalOnly, Datatypes: booleanOnly}, func(r *Record) []rdf.Term { return flagTerms(r.UniqueLang) }},
	{SHQualifiedValueShapesDisjoint, ElementCheck{Kinds: literalOnly, Datatypes: booleanOnly}, func(r *Record) []rdf.Term { return flagTerms(r.QualifiedValueShapesDisjoint) }},
}

// Check returns every kind, datatype, node kind and pattern problem in
// rec. It never modifies rec. Members of list-valued parameters are
// checked when the list is decoded.
func Check(rec *Record) []Conflict {
	var out []Conflict
	for _, r := range rules {
		for _, value := range r.values(rec) {
			out = append(out, r.check.conflicts(rec.ID, r.predicate, value)...)
		}
	}
	if rec.NodeKind != nil && rec.NodeKind.Kind() == rdf.TermIRI {
		if _, ok := nodeKinds[rec.NodeKind]; !ok {
			out = append(out, Conflict{
				Code:      ErrCodeInvalidNodeKind,
				Shape:     rec.ID,
				Predicate: SHNodeKind,
				Value:     rec.NodeKind,
				Message:   fmt.Sprintf("%s is not a SHACL node kind", rdf.RenderTerm(rec.NodeKind)),
			})
		}
	}
	if c := checkPattern(rec); c != nil {
		out = append(out, *c)
	}
	return out
}

func checkPattern(rec *Record) *Conflict {
	pattern, ok := rec.Pattern.(rdf.Literal)
	if !ok {
		if flags, ok := rec.Flags.(rdf.Literal); ok {
			if err := validFlags(flags.Lexical); err != nil {
				return &Conflict{Code: ErrCodeInvalidPattern, Shape: rec.ID, Predicate: SHFlags, Value: flags, Message: err.Error()}
			}
		}
		return nil
	}
	var flags string
	if lit, ok := rec.Flags.(rdf.Literal); ok {
		flags = lit.Lexical
	}
	if _, err := CompilePattern(pattern.Lexical, flags); err != nil {
		predicate, value := SHPattern, rdf.Term(pattern)
		if validFlags(flags) != nil {
			predicate, value = SHFlags, rec.Flags
		}
		return &Conflict{Code: ErrCodeInvalidPattern, Shape: rec.ID, Predicate: predicate, Value: value, Message: err.Error()}
	}
	return nil
}

const patternCacheSize = 256

var patternCache *lru.Cache[string, *regexp.Regexp]

func init() {
	var err error
	patternCache, err = lru.New[string, *regexp.Regexp](patternCacheSize)
	if err != nil {
		panic(fmt.Sprintf("shacl: pattern cache: %v", err))
	}
}

func validFlags(flags string) error {
	for _, f := range flags {
		if !strings.ContainsRune("smixq", f) {
			return fmt.Errorf("unknown regular expression flag %q", f)
		}
	}
	return nil
}

// CompilePattern compiles an sh:pattern with its sh:flags. The flags s, m
// and i map to the RE2 flags of the same name, x removes whitespace from
// the pattern and q matches the pattern literally. Compiled patterns are
// cached.
func CompilePattern(pattern, flags string) (*regexp.Regexp, error) {
	key := flags + "\x00" + pattern
	if re, ok := patternCache.Get(key); ok {
		return re, nil
	}
	if err := validFlags(flags); err != nil {
		return nil, err
	}

	expr := pattern
	if strings.ContainsRune(flags, 'q') {
		expr = regexp.QuoteMeta(expr)
	} else if strings.ContainsRune(flags, 'x') {
		expr = strings.Join(strings.Fields(expr), "")
	}
	var mods strings.Builder
	for _, f := range "ims" {
		if strings.ContainsRune(flags, f) {
			mods.WriteRune(f)
		}
	}
	if mods.Len() > 0 {
		expr = "(?" + mods.String() + ")" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	patternCache.Add(key, re)
	return re, nil
}

func kindAllowed(value rdf.Term, kinds []rdf.TermKind) bool {
	if value == nil {
		return false
	}
	for _, k := range kinds {
		if value.Kind() == k {
			return true
		}
	}
	return false
}

func kindList(kinds []rdf.TermKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, " or ")
}

func datatypeList(dts []rdf.IRI) string {
	names := make([]string, len(dts))
	for i, dt := range dts {
		names[i] = Prefixed(dt)
	}
	return strings.Join(names, " or ")
}
