package shacl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geoknoesis/shacl-go/rdf"
)

// ErrorCode classifies structural errors and conflicts.
type ErrorCode string

const (
	// ErrCodeMultipleValues indicates a functional predicate with several values.
	ErrCodeMultipleValues ErrorCode = "MULTIPLE_VALUES"
	// ErrCodeMalformedList indicates a broken rdf:first/rdf:rest chain.
	ErrCodeMalformedList ErrorCode = "MALFORMED_LIST"
	// ErrCodeInvalidPath indicates a path node matching no path form.
	ErrCodeInvalidPath ErrorCode = "INVALID_PATH"
	// ErrCodeMalformedMessage indicates an sh:message that is not a string.
	ErrCodeMalformedMessage ErrorCode = "MALFORMED_MESSAGE"
	// ErrCodeBoundConflict indicates a lower bound above its upper bound.
	ErrCodeBoundConflict ErrorCode = "BOUND_CONFLICT"
	// ErrCodeWrongTermKind indicates a value of the wrong term kind.
	ErrCodeWrongTermKind ErrorCode = "WRONG_TERM_KIND"
	// ErrCodeWrongDatatype indicates a literal of the wrong datatype.
	ErrCodeWrongDatatype ErrorCode = "WRONG_DATATYPE"
	// ErrCodeInvalidLiteral indicates a lexical form invalid for its datatype.
	ErrCodeInvalidLiteral ErrorCode = "INVALID_LITERAL"
	// ErrCodeInvalidNodeKind indicates an sh:nodeKind outside the six node kinds.
	ErrCodeInvalidNodeKind ErrorCode = "INVALID_NODE_KIND"
	// ErrCodeInvalidPattern indicates an uncompilable sh:pattern or unknown sh:flags.
	ErrCodeInvalidPattern ErrorCode = "INVALID_PATTERN"
	// ErrCodeContextCanceled indicates the parse was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
)

var (
	// ErrMultipleValues matches MULTIPLE_VALUES shape errors.
	ErrMultipleValues = errors.New("shacl: multiple values for functional predicate")
	// ErrMalformedList matches MALFORMED_LIST shape errors.
	ErrMalformedList = errors.New("shacl: malformed RDF list")
	// ErrInvalidPath matches INVALID_PATH shape errors.
	ErrInvalidPath = errors.New("shacl: invalid property path")
	// ErrMalformedMessage matches MALFORMED_MESSAGE shape errors.
	ErrMalformedMessage = errors.New("shacl: malformed message")
	// ErrBoundConflict matches BOUND_CONFLICT shape errors.
	ErrBoundConflict = errors.New("shacl: lower bound exceeds upper bound")
)

var sentinels = map[ErrorCode]error{
	ErrCodeMultipleValues:   ErrMultipleValues,
	ErrCodeMalformedList:    ErrMalformedList,
	ErrCodeInvalidPath:      ErrInvalidPath,
	ErrCodeMalformedMessage: ErrMalformedMessage,
	ErrCodeBoundConflict:    ErrBoundConflict,
}

// ShapeError is a structural error that aborts the build of a shape.
type ShapeError struct {
	Code      ErrorCode
	Shape     rdf.Term // Shape being built
	Predicate rdf.IRI  // Offending predicate, if any
	Err       error    // Underlying detail
}

func (e *ShapeError) Error() string {
	var msg strings.Builder
	msg.WriteString("shacl: shape ")
	msg.WriteString(rdf.RenderTerm(e.Shape))
	if e.Predicate.Value != "" {
		msg.WriteString(" ")
		msg.WriteString(Prefixed(e.Predicate))
	}
	msg.WriteString(": ")
	msg.WriteString(string(e.Code))
	if e.Err != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Err.Error())
	}
	return msg.String()
}

func (e *ShapeError) Unwrap() error { return e.Err }

// Is matches the sentinel error for the error's code.
func (e *ShapeError) Is(target error) bool {
	sentinel, ok := sentinels[e.Code]
	return ok && sentinel == target
}

func newShapeError(code ErrorCode, shape rdf.Term, predicate rdf.IRI, format string, args ...any) *ShapeError {
	return &ShapeError{Code: code, Shape: shape, Predicate: predicate, Err: fmt.Errorf(format, args...)}
}

// Code returns the error code of a shacl error, CONTEXT_CANCELED for
// cancellation and "" for nil or foreign errors.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var shapeErr *ShapeError
	if errors.As(err, &shapeErr) {
		return shapeErr.Code
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrCodeContextCanceled
	}
	return ""
}

// Conflict is a non-fatal well-formedness problem. The shape is still
// built and registered.
type Conflict struct {
	Code      ErrorCode
	Shape     rdf.Term
	Predicate rdf.IRI
	Value     rdf.Term // Offending value, if any
	Min       rdf.Term // Lower bound of a BOUND_CONFLICT
	Max       rdf.Term // Upper bound of a BOUND_CONFLICT
	Message   string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s %s %s: %s", c.Code, rdf.RenderTerm(c.Shape), Prefixed(c.Predicate), c.Message)
}
