package shacl

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/geoknoesis/shacl-go/rdf"
)

// integerTypes are xsd:integer and the datatypes derived from it.
var integerTypes = toSet([]rdf.IRI{
	rdf.XSDInteger,
	xsd("nonNegativeInteger"), xsd("positiveInteger"),
	xsd("nonPositiveInteger"), xsd("negativeInteger"),
	xsd("long"), xsd("int"), xsd("short"), xsd("byte"),
	xsd("unsignedLong"), xsd("unsignedInt"), xsd("unsignedShort"), xsd("unsignedByte"),
})

// numericTypes are the other datatypes whose lexical forms parse as rationals.
var numericTypes = toSet([]rdf.IRI{rdf.XSDDecimal, rdf.XSDDouble, rdf.XSDFloat})

// temporalLayouts are the time.Parse layouts of the ordered XSD types,
// without a time zone. Fractional seconds are accepted after the seconds.
var temporalLayouts = map[rdf.IRI]string{
	rdf.XSDDate:     "2006-01-02",
	rdf.XSDDateTime: "2006-01-02T15:04:05",
	rdf.XSDTime:     "15:04:05",
}

// hasZone reports whether an XSD date or time lexical form ends with a
// time zone: Z or an offset like +05:00.
func hasZone(lexical string) bool {
	if strings.HasSuffix(lexical, "Z") {
		return true
	}
	n := len(lexical)
	return n >= 6 && (lexical[n-6] == '+' || lexical[n-6] == '-') && lexical[n-3] == ':'
}

// parseTemporal parses an xsd:date, xsd:dateTime or xsd:time literal.
// Forms without a time zone are read as UTC.
func parseTemporal(dt rdf.IRI, lexical string) (t time.Time, zoned, ok bool) {
	layout, ordered := temporalLayouts[dt]
	if !ordered {
		return time.Time{}, false, false
	}
	lexical = strings.TrimSpace(lexical)
	zoned = hasZone(lexical)
	if zoned {
		layout += "Z07:00"
	}
	t, err := time.Parse(layout, lexical)
	if err != nil {
		return time.Time{}, false, false
	}
	return t, zoned, true
}

func xsd(local string) rdf.IRI { return rdf.IRI{Value: rdf.XSDNamespace + local} }

func isInteger(dt rdf.IRI) bool {
	_, ok := integerTypes[dt]
	return ok
}

func isNumeric(dt rdf.IRI) bool {
	if isInteger(dt) {
		return true
	}
	_, ok := numericTypes[dt]
	return ok
}

// parseRat parses a decimal or scientific lexical form exactly.
func parseRat(lexical string) (*big.Rat, bool) {
	lexical = strings.TrimSpace(lexical)
	if lexical == "" || strings.Trim(lexical, "0123456789+-.eE") != "" {
		return nil, false
	}
	r, ok := new(big.Rat).SetString(lexical)
	return r, ok
}

// isSpecialFloat reports the non-finite xsd:double and xsd:float forms.
func isSpecialFloat(lexical string) bool {
	switch strings.TrimSpace(lexical) {
	case "INF", "+INF", "-INF", "NaN":
		return true
	}
	return false
}

// newBound wraps term and parses its numeric value when the datatype is
// numeric. The returned conflict is set when a numeric literal has an
// invalid lexical form, or when integer is true and the value is not a
// whole number.
func newBound(shape rdf.Term, predicate rdf.IRI, term rdf.Term, integer bool) (*Bound, *Conflict) {
	b := &Bound{Term: term}
	lit, ok := term.(rdf.Literal)
	if !ok {
		return b, nil
	}
	dt := lit.EffectiveDatatype()
	if !isNumeric(dt) {
		return b, nil
	}
	if (dt == rdf.XSDDouble || dt == rdf.XSDFloat) && isSpecialFloat(lit.Lexical) {
		return b, nil
	}
	num, ok := parseRat(lit.Lexical)
	if !ok || (isInteger(dt) && !num.IsInt()) {
		return b, &Conflict{
			Code:      ErrCodeInvalidLiteral,
			Shape:     shape,
			Predicate: predicate,
			Value:     term,
			Message:   fmt.Sprintf("%q is not a valid %s", lit.Lexical, Prefixed(dt)),
		}
	}
	b.Num = num
	if integer && !num.IsInt() {
		return b, &Conflict{
			Code:      ErrCodeInvalidLiteral,
			Shape:     shape,
			Predicate: predicate,
			Value:     term,
			Message:   fmt.Sprintf("%q is not an integer", lit.Lexical),
		}
	}
	return b, nil
}

// newFlag parses an xsd:boolean parameter. A boolean literal with an
// invalid lexical form yields a conflict; other terms keep Value false.
func newFlag(shape rdf.Term, predicate rdf.IRI, term rdf.Term) (*Flag, *Conflict) {
	f := &Flag{Term: term}
	lit, ok := term.(rdf.Literal)
	if !ok || lit.EffectiveDatatype() != rdf.XSDBoolean {
		return f, nil
	}
	switch strings.TrimSpace(lit.Lexical) {
	case "true", "1":
		f.Value = true
	case "false", "0":
	default:
		return f, &Conflict{
			Code:      ErrCodeInvalidLiteral,
			Shape:     shape,
			Predicate: predicate,
			Value:     term,
			Message:   fmt.Sprintf("%q is not a valid xsd:boolean", lit.Lexical),
		}
	}
	return f, nil
}

// compareBounds orders two bounds. ok is false when they are not
// comparable: non-numeric values of different or unordered datatypes.
func compareBounds(lo, hi *Bound) (cmp int, ok bool) {
	if lo.Num != nil && hi.Num != nil {
		return lo.Num.Cmp(hi.Num), true
	}
	loLit, ok1 := lo.Term.(rdf.Literal)
	hiLit, ok2 := hi.Term.(rdf.Literal)
	if !ok1 || !ok2 {
		return 0, false
	}
	dt := loLit.EffectiveDatatype()
	if dt != hiLit.EffectiveDatatype() {
		return 0, false
	}
	loTime, loZoned, ok1 := parseTemporal(dt, loLit.Lexical)
	hiTime, hiZoned, ok2 := parseTemporal(dt, hiLit.Lexical)
	if !ok1 || !ok2 || loZoned != hiZoned {
		return 0, false
	}
	return loTime.Compare(hiTime), true
}

// boundPair names a lower and upper bound that must satisfy lo <= hi.
type boundPair struct {
	lo, hi rdf.IRI
	get    func(*Record) (lo, hi *Bound)
}

var boundPairs = []boundPair{
	{SHMinCount, SHMaxCount, func(r *Record) (*Bound, *Bound) { return r.MinCount, r.MaxCount }},
	{SHMinLength, SHMaxLength, func(r *Record) (*Bound, *Bound) { return r.MinLength, r.MaxLength }},
	{SHMinExclusive, SHMaxExclusive, func(r *Record) (*Bound, *Bound) { return r.MinExclusive, r.MaxExclusive }},
	{SHMinInclusive, SHMaxInclusive, func(r *Record) (*Bound, *Bound) { return r.MinInclusive, r.MaxInclusive }},
	{SHQualifiedMinCount, SHQualifiedMaxCount, func(r *Record) (*Bound, *Bound) { return r.QualifiedMinCount, r.QualifiedMaxCount }},
}

// boundConflicts returns one BOUND_CONFLICT per pair whose lower bound
// exceeds its upper bound.
func boundConflicts(rec *Record) []Conflict {
	var out []Conflict
	for _, pair := range boundPairs {
		lo, hi := pair.get(rec)
		if lo == nil || hi == nil {
			continue
		}
		cmp, ok := compareBounds(lo, hi)
		if !ok || cmp <= 0 {
			continue
		}
		out = append(out, Conflict{
			Code:      ErrCodeBoundConflict,
			Shape:     rec.ID,
			Predicate: pair.hi,
			Min:       lo.Term,
			Max:       hi.Term,
			Message: fmt.Sprintf("%s %s is greater than %s %s",
				Prefixed(pair.lo), rdf.RenderTerm(lo.Term), Prefixed(pair.hi), rdf.RenderTerm(hi.Term)),
		})
	}
	return out
}
