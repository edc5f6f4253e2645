package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	knakk "github.com/knakk/rdf"
	ld "github.com/piprate/json-gold/ld"
)

// ctxCheckInterval is how many triples are accepted between context checks.
const ctxCheckInterval = 1024

// Load reads RDF in the given format and returns the resulting graph.
// FormatAuto detects the format from the first bytes of r.
// If ctx is nil, context.Background() is used.
func Load(ctx context.Context, r io.Reader, format Format, opts ...Option) (*Graph, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	options := buildOptions(opts)

	tracked := &trackingReader{r: r, limit: options.MaxInputBytes}
	var input io.Reader = tracked

	if format == FormatAuto {
		detected, replay, ok := DetectFormat(input)
		if !ok {
			return nil, wrapLoadError(format, options.Source, 0, ErrUnsupportedFormat)
		}
		format = detected
		input = replay
	}

	l := &loader{ctx: ctx, graph: NewGraph(), opts: options}
	var err error
	switch format {
	case FormatTurtle:
		err = l.decodeTriples(input, knakk.Turtle)
	case FormatNTriples:
		err = l.decodeTriples(input, knakk.NTriples)
	case FormatRDFXML:
		err = l.decodeTriples(input, knakk.RDFXML)
	case FormatJSONLD:
		err = l.decodeJSONLD(input)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err == nil && tracked.err != nil {
		// Some decoders treat a failed read as end of input.
		err = tracked.err
	}
	if err != nil {
		if tracked.err != nil && !errors.Is(err, tracked.err) {
			err = fmt.Errorf("%w: %v", tracked.err, err)
		}
		loadErr := &LoadError{Format: format, Source: options.Source, Triples: l.graph.Len(), Err: err}
		loadErr.IO = tracked.err != nil && !errors.Is(tracked.err, ErrInputLimitExceeded)
		return nil, loadErr
	}
	return l.graph, nil
}

// LoadFile loads the file at path, inferring the format from its extension
// and falling back to content detection.
func LoadFile(ctx context.Context, path string, opts ...Option) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, IO: true, Err: err}
	}
	defer f.Close()

	format, err := FormatFromPath(path)
	if err != nil {
		format = FormatAuto
	}
	opts = append([]Option{OptSource(path)}, opts...)
	return Load(ctx, f, format, opts...)
}

type loader struct {
	ctx   context.Context
	graph *Graph
	opts  Options
	added int
}

func (l *loader) add(t Triple) error {
	if l.added%ctxCheckInterval == 0 {
		if err := l.ctx.Err(); err != nil {
			return err
		}
	}
	l.added++
	if l.opts.StrictIRIValidation {
		for _, term := range []Term{t.S, t.P, t.O} {
			if iri, ok := term.(IRI); ok {
				if err := ValidateIRI(iri.Value); err != nil {
					return err
				}
			}
		}
	}
	if !l.graph.Add(t) {
		return nil
	}
	if l.opts.MaxTriples > 0 && int64(l.graph.Len()) > l.opts.MaxTriples {
		return fmt.Errorf("%w: limit %d", ErrTripleLimitExceeded, l.opts.MaxTriples)
	}
	return nil
}

func (l *loader) iri(value string) IRI {
	if l.opts.BaseIRI != "" {
		value = resolveIRI(l.opts.BaseIRI, value)
	}
	return IRI{Value: value}
}

func (l *loader) decodeTriples(r io.Reader, format knakk.Format) error {
	dec := knakk.NewTripleDecoder(r, format)
	for {
		tr, err := dec.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		subj, err := l.fromKnakk(tr.Subj)
		if err != nil {
			return err
		}
		pred, err := l.fromKnakk(tr.Pred)
		if err != nil {
			return err
		}
		obj, err := l.fromKnakk(tr.Obj)
		if err != nil {
			return err
		}
		predIRI, ok := pred.(IRI)
		if !ok {
			return fmt.Errorf("predicate %s is not an IRI", RenderTerm(pred))
		}
		if err := l.add(Triple{S: subj, P: predIRI, O: obj}); err != nil {
			return err
		}
	}
}

func (l *loader) fromKnakk(term knakk.Term) (Term, error) {
	switch v := term.(type) {
	case knakk.IRI:
		return l.iri(v.String()), nil
	case knakk.Blank:
		return BlankNode{ID: strings.TrimPrefix(v.String(), "_:")}, nil
	case knakk.Literal:
		return literalOf(v.String(), v.DataType.String(), v.Lang()), nil
	default:
		return nil, fmt.Errorf("unexpected term %T", term)
	}
}

func (l *loader) decodeJSONLD(r io.Reader) error {
	doc, err := ld.DocumentFromReader(r)
	if err != nil {
		return err
	}
	proc := ld.NewJsonLdProcessor()
	ldOpts := ld.NewJsonLdOptions(l.opts.BaseIRI)
	result, err := proc.ToRDF(doc, ldOpts)
	if err != nil {
		return err
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return fmt.Errorf("jsonld: unexpected ToRDF result %T", result)
	}

	// Named graphs are merged into the shapes graph after the default graph.
	names := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		if name != "@default" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	names = append([]string{"@default"}, names...)

	for _, name := range names {
		for _, quad := range dataset.Graphs[name] {
			subj, err := l.fromJSONGold(quad.Subject)
			if err != nil {
				return err
			}
			pred, err := l.fromJSONGold(quad.Predicate)
			if err != nil {
				return err
			}
			obj, err := l.fromJSONGold(quad.Object)
			if err != nil {
				return err
			}
			predIRI, ok := pred.(IRI)
			if !ok {
				return fmt.Errorf("jsonld: predicate %s is not an IRI", RenderTerm(pred))
			}
			if err := l.add(Triple{S: subj, P: predIRI, O: obj}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *loader) fromJSONGold(node ld.Node) (Term, error) {
	switch v := node.(type) {
	case ld.IRI:
		return l.iri(v.Value), nil
	case ld.BlankNode:
		return BlankNode{ID: strings.TrimPrefix(v.Attribute, "_:")}, nil
	case ld.Literal:
		return literalOf(v.Value, v.Datatype, v.Language), nil
	default:
		return nil, fmt.Errorf("jsonld: unexpected node %T", node)
	}
}

// literalOf builds a Literal, defaulting the datatype the way RDF 1.1 does.
func literalOf(lexical, datatype, lang string) Literal {
	if lang != "" {
		return Literal{Lexical: lexical, Datatype: RDFLangString, Lang: lang}
	}
	if datatype == "" {
		return Literal{Lexical: lexical, Datatype: XSDString}
	}
	return Literal{Lexical: lexical, Datatype: IRI{Value: datatype}}
}

// trackingReader remembers the first read failure so Load can tell I/O
// errors from syntax errors, and enforces the input byte limit.
type trackingReader struct {
	r     io.Reader
	limit int64
	read  int64
	err   error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	if t.err != nil {
		return 0, t.err
	}
	if t.limit > 0 && int64(len(p)) > t.limit-t.read+1 {
		p = p[:t.limit-t.read+1]
	}
	n, err := t.r.Read(p)
	t.read += int64(n)
	if t.limit > 0 && t.read > t.limit {
		t.err = fmt.Errorf("%w: limit %d bytes", ErrInputLimitExceeded, t.limit)
		return n, t.err
	}
	if err != nil && err != io.EOF {
		t.err = err
	}
	return n, err
}
