package rdf

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeUnsupportedFormat indicates an unsupported format.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeTripleLimitExceeded indicates that the maximum number of triples was exceeded.
	ErrCodeTripleLimitExceeded ErrorCode = "TRIPLE_LIMIT_EXCEEDED"
	// ErrCodeInputLimitExceeded indicates that the input was larger than allowed.
	ErrCodeInputLimitExceeded ErrorCode = "INPUT_LIMIT_EXCEEDED"
	// ErrCodeAmbiguousValue indicates a functional probe found more than one object.
	ErrCodeAmbiguousValue ErrorCode = "AMBIGUOUS_VALUE"
	// ErrCodeParseError indicates a general parse error.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeIOError indicates an I/O error.
	ErrCodeIOError ErrorCode = "IO_ERROR"
	// ErrCodeContextCanceled indicates the context was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeInvalidIRI indicates an invalid IRI was encountered.
	ErrCodeInvalidIRI ErrorCode = "INVALID_IRI"
)

var (
	// ErrUnsupportedFormat indicates an unsupported format.
	ErrUnsupportedFormat = errors.New("unsupported RDF format")
	// ErrTripleLimitExceeded indicates that the maximum number of triples was exceeded.
	ErrTripleLimitExceeded = errors.New("rdf: maximum number of triples exceeded")
	// ErrInputLimitExceeded indicates that the input exceeded the configured byte limit.
	ErrInputLimitExceeded = errors.New("rdf: maximum input size exceeded")
	// ErrAmbiguousValue indicates that a subject/predicate pair has more than one object.
	ErrAmbiguousValue = errors.New("rdf: more than one value")
	// ErrInvalidIRI indicates that an IRI failed validation.
	ErrInvalidIRI = errors.New("rdf: invalid IRI")
)

// Code returns the error code for an error, or ErrCodeParseError if unknown.
// Returns empty string for nil errors.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return ErrCodeUnsupportedFormat
	case errors.Is(err, ErrTripleLimitExceeded):
		return ErrCodeTripleLimitExceeded
	case errors.Is(err, ErrInputLimitExceeded):
		return ErrCodeInputLimitExceeded
	case errors.Is(err, ErrAmbiguousValue):
		return ErrCodeAmbiguousValue
	case errors.Is(err, ErrInvalidIRI):
		return ErrCodeInvalidIRI
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeContextCanceled
	}

	var loadErr *LoadError
	if errors.As(err, &loadErr) && loadErr.IO {
		return ErrCodeIOError
	}
	return ErrCodeParseError
}

// AmbiguousValueError reports a functional probe that found several objects.
type AmbiguousValueError struct {
	Subject   Term
	Predicate IRI
	Values    []Term
}

func (e *AmbiguousValueError) Error() string {
	rendered := make([]string, 0, len(e.Values))
	for _, v := range e.Values {
		rendered = append(rendered, RenderTerm(v))
	}
	return fmt.Sprintf("%d values for %s %s: %s",
		len(e.Values), RenderTerm(e.Subject), RenderTerm(e.Predicate), strings.Join(rendered, ", "))
}

func (e *AmbiguousValueError) Unwrap() error { return ErrAmbiguousValue }

// LoadError provides context for a failure while loading a graph.
type LoadError struct {
	Format  Format // Format being decoded
	Source  string // File path or other description of the input, if known
	Triples int    // Triples accepted before the failure
	IO      bool   // The failure came from reading the input rather than decoding it
	Err     error  // Underlying error
}

func (e *LoadError) Error() string {
	var msg strings.Builder
	msg.WriteString(string(e.Format))
	if e.Source != "" {
		msg.WriteString(" ")
		msg.WriteString(e.Source)
	}
	if e.Triples > 0 {
		fmt.Fprintf(&msg, " (after %d triples)", e.Triples)
	}
	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())
	return msg.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

// wrapLoadError adds format/source context to a decode error.
func wrapLoadError(format Format, source string, triples int, err error) error {
	if err == nil {
		return nil
	}
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return err
	}
	return &LoadError{Format: format, Source: source, Triples: triples, Err: err}
}
