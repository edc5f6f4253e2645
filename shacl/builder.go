package shacl

import (
	"context"
	"errors"
	"fmt"

	"github.com/geoknoesis/shacl-go/rdf"
)

// build builds id unless another caller already claimed it. A claimed
// identity that is still being built stands in as a placeholder, which is
// how reference cycles terminate. A claimed identity whose build already
// failed fails again.
func (r *Registry) build(ctx context.Context, id rdf.Term) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e, claimed := r.claim(id)
	if !claimed {
		select {
		case <-e.done:
			return e.err
		default:
			return nil
		}
	}

	b := &shapeBuilder{reg: r, ctx: ctx, id: id, rec: &Record{}}
	err := b.populate()
	if err != nil {
		r.complete(e, nil, nil, err)
		var shapeErr *ShapeError
		if errors.As(err, &shapeErr) && shapeErr.Shape == id {
			r.opts.metrics.recordError(err)
			r.opts.logger.Debug("shape rejected", "shape", rdf.RenderTerm(id), "code", shapeErr.Code, "error", err)
		}
		return err
	}

	shape := Classify(b.rec)
	r.complete(e, shape, b.conflicts, nil)
	r.opts.metrics.recordShape(shape.Kind())
	r.opts.metrics.recordConflicts(b.conflicts)
	r.opts.logger.Debug("shape built",
		"shape", rdf.RenderTerm(id),
		"kind", shape.Kind().String(),
		"conflicts", len(b.conflicts))
	return nil
}

// shapeBuilder populates the record of one shape.
type shapeBuilder struct {
	reg       *Registry
	ctx       context.Context
	id        rdf.Term
	rec       *Record
	conflicts []Conflict
}

func (b *shapeBuilder) graph() *rdf.Graph { return b.reg.g }

func (b *shapeBuilder) conflict(c *Conflict) {
	if c != nil {
		b.conflicts = append(b.conflicts, *c)
	}
}

// one reads a functional predicate.
func (b *shapeBuilder) one(p rdf.IRI) (rdf.Term, error) {
	value, err := b.graph().Object(b.id, p)
	if err != nil {
		return nil, &ShapeError{Code: ErrCodeMultipleValues, Shape: b.id, Predicate: p, Err: err}
	}
	return value, nil
}

func (b *shapeBuilder) all(p rdf.IRI) []rdf.Term {
	return b.graph().Objects(b.id, p)
}

func (b *shapeBuilder) bound(p rdf.IRI, integer bool) (*Bound, error) {
	value, err := b.one(p)
	if err != nil || value == nil {
		return nil, err
	}
	bound, c := newBound(b.id, p, value, integer)
	b.conflict(c)
	return bound, nil
}

func (b *shapeBuilder) flag(p rdf.IRI) (*Flag, error) {
	value, err := b.one(p)
	if err != nil || value == nil {
		return nil, err
	}
	flag, c := newFlag(b.id, p, value)
	b.conflict(c)
	return flag, nil
}

func (b *shapeBuilder) list(p rdf.IRI, check ElementCheck) (*List, error) {
	head, err := b.one(p)
	if err != nil || head == nil {
		return nil, err
	}
	list, conflicts, err := DecodeList(b.graph(), b.id, p, head, check)
	if err != nil {
		return nil, err
	}
	b.conflicts = append(b.conflicts, conflicts...)
	return list, nil
}

// langMap collects language-keyed strings. Untagged values must be
// xsd:string; strict turns any other value into MALFORMED_MESSAGE,
// otherwise it is reported as a conflict and skipped.
func (b *shapeBuilder) langMap(p rdf.IRI, strict bool) (map[string]string, error) {
	values := b.all(p)
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(values))
	for _, value := range values {
		lit, ok := value.(rdf.Literal)
		var key string
		switch {
		case ok && lit.Lang != "":
			key = lit.Lang
		case ok && lit.EffectiveDatatype() == rdf.XSDString:
			key = DefaultMessageKey
		case strict:
			return nil, newShapeError(ErrCodeMalformedMessage, b.id, p,
				"%s is not a string or language-tagged literal", rdf.RenderTerm(value))
		case !ok:
			b.conflicts = append(b.conflicts, Conflict{
				Code: ErrCodeWrongTermKind, Shape: b.id, Predicate: p, Value: value,
				Message: fmt.Sprintf("%s is a %s, expected literal", rdf.RenderTerm(value), value.Kind()),
			})
			continue
		default:
			b.conflicts = append(b.conflicts, Conflict{
				Code: ErrCodeWrongDatatype, Shape: b.id, Predicate: p, Value: value,
				Message: fmt.Sprintf("%s has datatype %s, expected xsd:string or rdf:langString",
					rdf.RenderTerm(value), Prefixed(lit.EffectiveDatatype())),
			})
			continue
		}
		if _, dup := out[key]; dup {
			b.reg.opts.logger.Debug("duplicate language tag ignored",
				"shape", rdf.RenderTerm(b.id), "predicate", Prefixed(p), "lang", key)
			continue
		}
		out[key] = lit.Lexical
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// nested builds a referenced shape. Literals are left to the checker.
func (b *shapeBuilder) nested(ref rdf.Term) error {
	if !rdf.IsResource(ref) {
		return nil
	}
	return b.reg.build(b.ctx, ref)
}

func (b *shapeBuilder) populate() error {
	rec := b.rec
	rec.ID = b.id
	if iri, ok := b.id.(rdf.IRI); ok {
		rec.URI = iri.Value
	}

	rec.TargetClass = b.all(SHTargetClass)
	rec.TargetNode = b.all(SHTargetNode)
	rec.TargetSubjectsOf = b.all(SHTargetSubjectsOf)
	rec.TargetObjectsOf = b.all(SHTargetObjectsOf)

	var err error
	if rec.NodeKind, err = b.one(SHNodeKind); err != nil {
		return err
	}
	if rec.Severity, err = b.one(SHSeverity); err != nil {
		return err
	}
	if rec.Message, err = b.langMap(SHMessage, true); err != nil {
		return err
	}
	if rec.Name, err = b.langMap(SHName, false); err != nil {
		return err
	}
	if rec.Description, err = b.langMap(SHDescription, false); err != nil {
		return err
	}

	if rec.Closed, err = b.flag(SHClosed); err != nil {
		return err
	}
	if rec.IgnoredProperties, err = b.list(SHIgnoredProperties, ignoredPropertiesCheck); err != nil {
		return err
	}
	if rec.PathTerm, err = b.one(SHPath); err != nil {
		return err
	}
	if rec.PathTerm != nil {
		if rec.Path, err = ResolvePath(b.graph(), b.id, rec.PathTerm); err != nil {
			return err
		}
	}

	rec.Class = b.all(SHClass)
	if rec.Datatype, err = b.one(SHDatatype); err != nil {
		return err
	}

	counts := []struct {
		p    rdf.IRI
		dest **Bound
	}{
		{SHMinCount, &rec.MinCount},
		{SHMaxCount, &rec.MaxCount},
		{SHMinLength, &rec.MinLength},
		{SHMaxLength, &rec.MaxLength},
		{SHQualifiedMinCount, &rec.QualifiedMinCount},
		{SHQualifiedMaxCount, &rec.QualifiedMaxCount},
	}
	for _, c := range counts {
		if *c.dest, err = b.bound(c.p, true); err != nil {
			return err
		}
	}
	ranges := []struct {
		p    rdf.IRI
		dest **Bound
	}{
		{SHMinExclusive, &rec.MinExclusive},
		{SHMaxExclusive, &rec.MaxExclusive},
		{SHMinInclusive, &rec.MinInclusive},
		{SHMaxInclusive, &rec.MaxInclusive},
		{SHOrder, &rec.Order},
	}
	for _, r := range ranges {
		if *r.dest, err = b.bound(r.p, false); err != nil {
			return err
		}
	}

	if rec.Pattern, err = b.one(SHPattern); err != nil {
		return err
	}
	if rec.Flags, err = b.one(SHFlags); err != nil {
		return err
	}
	if rec.LanguageIn, err = b.list(SHLanguageIn, languageInCheck); err != nil {
		return err
	}
	if rec.UniqueLang, err = b.flag(SHUniqueLang); err != nil {
		return err
	}

	rec.Equals = b.all(SHEquals)
	rec.Disjoint = b.all(SHDisjoint)
	rec.LessThan = b.all(SHLessThan)
	rec.LessThanOrEquals = b.all(SHLessThanOrEquals)

	rec.HasValue = b.all(SHHasValue)
	if rec.In, err = b.list(SHIn, ElementCheck{}); err != nil {
		return err
	}
	if rec.QualifiedValueShape, err = b.one(SHQualifiedValueShape); err != nil {
		return err
	}
	if rec.QualifiedValueShapesDisjoint, err = b.flag(SHQualifiedValueShapesDisjoint); err != nil {
		return err
	}
	if rec.Group, err = b.one(SHGroup); err != nil {
		return err
	}
	rec.Properties = b.all(SHProperty)
	rec.Node = b.all(SHNode)

	b.reportUnknown()

	bounds := boundConflicts(rec)
	if len(bounds) > 0 && b.reg.opts.strictBounds {
		first := bounds[0]
		return &ShapeError{Code: ErrCodeBoundConflict, Shape: b.id, Predicate: first.Predicate, Err: errors.New(first.Message)}
	}
	b.conflicts = append(b.conflicts, bounds...)
	b.conflicts = append(b.conflicts, Check(rec)...)

	// Referenced shapes. A reference back to a shape still being built
	// resolves to its identity.
	for _, p := range rec.Properties {
		if err := b.nested(p); err != nil {
			return err
		}
	}
	if err := b.nested(rec.QualifiedValueShape); err != nil {
		return err
	}
	if err := b.nested(rec.Group); err != nil {
		return err
	}
	for _, n := range rec.Node {
		if b.graph().HasSubject(n) {
			if err := b.nested(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// reportUnknown logs SHACL predicates on the shape that the builder does
// not read.
func (b *shapeBuilder) reportUnknown() {
	logger := b.reg.opts.logger
	for _, p := range b.graph().Predicates(b.id) {
		if !InNamespace(p) || IsKnown(p) {
			continue
		}
		if _, ok := unsupportedSet[p]; ok {
			logger.Debug("unsupported SHACL predicate ignored",
				"shape", rdf.RenderTerm(b.id), "predicate", Prefixed(p))
			continue
		}
		if suggestion, ok := Suggest(p); ok {
			logger.Debug("unknown SHACL predicate ignored",
				"shape", rdf.RenderTerm(b.id), "predicate", Prefixed(p), "did_you_mean", Prefixed(suggestion))
			continue
		}
		logger.Debug("unknown SHACL predicate ignored",
			"shape", rdf.RenderTerm(b.id), "predicate", Prefixed(p))
	}
}
