package shacl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/shacl-go/rdf"
)

func TestCheckCleanRecord(t *testing.T) {
	rec := &Record{
		Common: Common{
			ID:          ex("S"),
			TargetClass: []rdf.Term{ex("Person")},
			TargetNode:  []rdf.Term{ex("alice"), str("bob")},
			NodeKind:    SHIRI,
			Severity:    SHViolation,
			Properties:  []rdf.Term{ex("P"), blank("b0")},
		},
		Constraints: Constraints{
			Class:    []rdf.Term{ex("Agent")},
			Datatype: rdf.XSDString,
			MinCount: &Bound{Term: integer("1")},
			Order:    &Bound{Term: rdf.NewLiteral("1.5", rdf.XSDDecimal)},
			Pattern:  str("^[A-Z]"),
			Flags:    str("i"),
			MinInclusive: &Bound{
				Term: rdf.NewLiteral("2020-01-01", rdf.XSDDate),
			},
			UniqueLang: &Flag{Term: rdf.NewLiteral("true", rdf.XSDBoolean), Value: true},
		},
	}
	assert.Empty(t, Check(rec))
}

func TestCheckConflicts(t *testing.T) {
	tests := []struct {
		name      string
		rec       Record
		code      ErrorCode
		predicate rdf.IRI
	}{
		{
			name:      "literal target class",
			rec:       Record{Common: Common{TargetClass: []rdf.Term{str("Person")}}},
			code:      ErrCodeWrongTermKind,
			predicate: SHTargetClass,
		},
		{
			name:      "blank target node",
			rec:       Record{Common: Common{TargetNode: []rdf.Term{blank("n")}}},
			code:      ErrCodeWrongTermKind,
			predicate: SHTargetNode,
		},
		{
			name:      "literal datatype",
			rec:       Record{Constraints: Constraints{Datatype: str("xsd:string")}},
			code:      ErrCodeWrongTermKind,
			predicate: SHDatatype,
		},
		{
			name:      "string min count",
			rec:       Record{Constraints: Constraints{MinCount: &Bound{Term: str("1")}}},
			code:      ErrCodeWrongDatatype,
			predicate: SHMinCount,
		},
		{
			name:      "iri max length",
			rec:       Record{Constraints: Constraints{MaxLength: &Bound{Term: ex("ten")}}},
			code:      ErrCodeWrongTermKind,
			predicate: SHMaxLength,
		},
		{
			name:      "iri min exclusive",
			rec:       Record{Constraints: Constraints{MinExclusive: &Bound{Term: ex("zero")}}},
			code:      ErrCodeWrongTermKind,
			predicate: SHMinExclusive,
		},
		{
			name:      "string order",
			rec:       Record{Constraints: Constraints{Order: &Bound{Term: str("first")}}},
			code:      ErrCodeWrongDatatype,
			predicate: SHOrder,
		},
		{
			name:      "integer closed",
			rec:       Record{Closed: &Flag{Term: integer("1")}},
			code:      ErrCodeWrongDatatype,
			predicate: SHClosed,
		},
		{
			name:      "literal node",
			rec:       Record{Constraints: Constraints{Node: []rdf.Term{str("ex:Other")}}},
			code:      ErrCodeWrongTermKind,
			predicate: SHNode,
		},
		{
			name:      "literal property",
			rec:       Record{Common: Common{Properties: []rdf.Term{integer("1")}}},
			code:      ErrCodeWrongTermKind,
			predicate: SHProperty,
		},
		{
			name:      "blank less than",
			rec:       Record{Constraints: Constraints{LessThan: []rdf.Term{blank("x")}}},
			code:      ErrCodeWrongTermKind,
			predicate: SHLessThan,
		},
		{
			name:      "unknown node kind",
			rec:       Record{Common: Common{NodeKind: sh("Resource")}},
			code:      ErrCodeInvalidNodeKind,
			predicate: SHNodeKind,
		},
		{
			name:      "unbalanced pattern",
			rec:       Record{Constraints: Constraints{Pattern: str("([a-z]")}},
			code:      ErrCodeInvalidPattern,
			predicate: SHPattern,
		},
		{
			name:      "unknown flag",
			rec:       Record{Constraints: Constraints{Pattern: str("^a"), Flags: str("g")}},
			code:      ErrCodeInvalidPattern,
			predicate: SHFlags,
		},
		{
			name:      "unknown flag without pattern",
			rec:       Record{Constraints: Constraints{Flags: str("z")}},
			code:      ErrCodeInvalidPattern,
			predicate: SHFlags,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.rec.ID = ex("S")
			conflicts := Check(&tt.rec)
			require.Len(t, conflicts, 1, "conflicts: %v", conflicts)
			assert.Equal(t, tt.code, conflicts[0].Code)
			assert.Equal(t, tt.predicate, conflicts[0].Predicate)
			assert.Equal(t, ex("S"), conflicts[0].Shape)
			assert.NotEmpty(t, conflicts[0].Message)
		})
	}
}

func TestCheckReportsEachValue(t *testing.T) {
	rec := &Record{
		Common:      Common{ID: ex("S")},
		Constraints: Constraints{Class: []rdf.Term{str("A"), ex("B"), integer("3")}},
	}
	conflicts := Check(rec)
	require.Len(t, conflicts, 2)
	assert.Equal(t, str("A"), conflicts[0].Value)
	assert.Equal(t, integer("3"), conflicts[1].Value)
}

func TestCheckDoesNotModifyRecord(t *testing.T) {
	rec := &Record{
		Common:      Common{ID: ex("S"), NodeKind: str("IRI")},
		Constraints: Constraints{Class: []rdf.Term{str("A")}},
	}
	before := *rec
	_ = Check(rec)
	assert.Equal(t, before, *rec)
}

func TestCompilePattern(t *testing.T) {
	tests := []struct {
		pattern, flags string
		input          string
		match          bool
	}{
		{"^abc$", "", "abc", true},
		{"^abc$", "", "ABC", false},
		{"^abc$", "i", "ABC", true},
		{"a.c", "", "a\nc", false},
		{"a.c", "s", "a\nc", true},
		{"^b$", "m", "a\nb", true},
		{"a b c", "x", "abc", true},
		{"a.c", "q", "abc", false},
		{"a.c", "q", "a.c", true},
		{"A.C", "qi", "xa.cx", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.flags, func(t *testing.T) {
			re, err := CompilePattern(tt.pattern, tt.flags)
			require.NoError(t, err)
			assert.Equal(t, tt.match, re.MatchString(tt.input))
		})
	}
}

func TestCompilePatternCaches(t *testing.T) {
	first, err := CompilePattern("^cached[0-9]+$", "i")
	require.NoError(t, err)
	second, err := CompilePattern("^cached[0-9]+$", "i")
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := CompilePattern("^cached[0-9]+$", "")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestCompilePatternErrors(t *testing.T) {
	_, err := CompilePattern("(", "")
	assert.Error(t, err)
	_, err = CompilePattern("a", "u")
	assert.Error(t, err)
}
