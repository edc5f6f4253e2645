package shacl

import (
	"math/big"

	"github.com/geoknoesis/shacl-go/rdf"
)

// Bound is a numeric or ordered parameter such as sh:minCount or
// sh:maxInclusive. Num is set when the lexical form is numeric.
type Bound struct {
	Term rdf.Term
	Num  *big.Rat
}

// Int returns the bound as an int64 when it is an integer that fits.
func (b *Bound) Int() (int64, bool) {
	if b == nil || b.Num == nil || !b.Num.IsInt() {
		return 0, false
	}
	n := b.Num.Num()
	if !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

// Flag is a boolean parameter such as sh:closed.
type Flag struct {
	Term  rdf.Term
	Value bool
}

// List is a decoded RDF collection.
type List struct {
	Head  rdf.Term
	Items []rdf.Term
}

// Len returns the number of items; a nil list has none.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Items)
}

// Common holds the fields every kind of shape carries.
type Common struct {
	ID  rdf.Term
	URI string // Set only when ID is an IRI

	TargetClass      []rdf.Term
	TargetNode       []rdf.Term
	TargetSubjectsOf []rdf.Term
	TargetObjectsOf  []rdf.Term

	NodeKind rdf.Term
	Severity rdf.Term
	Message  map[string]string // Keyed by language tag, "default" when untagged

	// Properties lists nested property shapes by identity.
	Properties []rdf.Term
}

// Identity returns the IRI or blank node naming the shape.
func (c *Common) Identity() rdf.Term { return c.ID }

// DefaultMessageKey is the Message key of an untagged sh:message.
const DefaultMessageKey = "default"

// Constraints holds the value, pair and shape-valued constraint parameters
// together with the non-validating characteristics of property shapes.
type Constraints struct {
	Class    []rdf.Term
	Datatype rdf.Term

	MinCount     *Bound
	MaxCount     *Bound
	MinExclusive *Bound
	MaxExclusive *Bound
	MinInclusive *Bound
	MaxInclusive *Bound
	MinLength    *Bound
	MaxLength    *Bound

	Pattern    rdf.Term
	Flags      rdf.Term
	LanguageIn *List
	UniqueLang *Flag

	Equals           []rdf.Term
	Disjoint         []rdf.Term
	LessThan         []rdf.Term
	LessThanOrEquals []rdf.Term

	Node     []rdf.Term
	HasValue []rdf.Term
	In       *List

	QualifiedValueShape          rdf.Term
	QualifiedValueShapesDisjoint *Flag
	QualifiedMinCount            *Bound
	QualifiedMaxCount            *Bound

	Group       rdf.Term
	Order       *Bound
	Name        map[string]string
	Description map[string]string
}

// IsZero reports whether no constraint parameter is set.
func (c *Constraints) IsZero() bool {
	return len(c.Class) == 0 && c.Datatype == nil &&
		c.MinCount == nil && c.MaxCount == nil &&
		c.MinExclusive == nil && c.MaxExclusive == nil &&
		c.MinInclusive == nil && c.MaxInclusive == nil &&
		c.MinLength == nil && c.MaxLength == nil &&
		c.Pattern == nil && c.Flags == nil && c.LanguageIn == nil && c.UniqueLang == nil &&
		len(c.Equals) == 0 && len(c.Disjoint) == 0 && len(c.LessThan) == 0 && len(c.LessThanOrEquals) == 0 &&
		len(c.Node) == 0 && len(c.HasValue) == 0 && c.In == nil &&
		c.QualifiedValueShape == nil && c.QualifiedValueShapesDisjoint == nil &&
		c.QualifiedMinCount == nil && c.QualifiedMaxCount == nil &&
		c.Group == nil && c.Order == nil && len(c.Name) == 0 && len(c.Description) == 0
}

// Record is the intermediate representation of a shape: every recognised
// parameter found on the shape resource. A nil field was absent from the
// graph; an explicit "false" flag is a non-nil Flag.
type Record struct {
	Common

	Closed            *Flag
	IgnoredProperties *List

	Path     Path
	PathTerm rdf.Term

	Constraints
}

// ShapeKind distinguishes the variants of Shape.
type ShapeKind uint8

const (
	// KindNode is a shape without a path and without constraints.
	KindNode ShapeKind = iota + 1
	// KindProperty is a shape with a path.
	KindProperty
	// KindGeneric is a shape with constraints but no path.
	KindGeneric
)

func (k ShapeKind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindProperty:
		return "property"
	case KindGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Shape is a classified, well-formedness-checked shape. Implementations
// are *NodeShape, *PropertyShape and *GenericShape.
type Shape interface {
	Kind() ShapeKind
	Identity() rdf.Term
	shape()
}

// NodeShape is a shape with no path and no constraint parameters.
type NodeShape struct {
	Common
	Closed            *Flag
	IgnoredProperties *List
}

// Kind returns KindNode.
func (*NodeShape) Kind() ShapeKind { return KindNode }
func (*NodeShape) shape()          {}

// PropertyShape is a shape with a property path.
type PropertyShape struct {
	Common
	Closed            *Flag
	IgnoredProperties *List
	Path              Path
	PathTerm          rdf.Term
	Constraints
}

// Kind returns KindProperty.
func (*PropertyShape) Kind() ShapeKind { return KindProperty }
func (*PropertyShape) shape()          {}

// GenericShape carries constraints but no path. It keeps the record as
// built.
type GenericShape struct {
	*Record
}

// Kind returns KindGeneric.
func (*GenericShape) Kind() ShapeKind { return KindGeneric }
func (*GenericShape) shape()          {}
