package rdf

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateIRI performs basic RFC 3987 checks on an absolute or relative IRI:
// a parseable structure, a scheme starting with a letter, and no raw
// control characters or angle brackets.
func ValidateIRI(iri string) error {
	if iri == "" {
		return fmt.Errorf("%w: empty IRI", ErrInvalidIRI)
	}

	parsed, err := url.Parse(iri)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidIRI, err)
	}

	if parsed.Scheme == "" {
		if strings.HasPrefix(iri, "//") {
			return fmt.Errorf("%w: relative IRI without scheme: %s", ErrInvalidIRI, iri)
		}
	} else {
		first := parsed.Scheme[0]
		if !((first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')) {
			return fmt.Errorf("%w: scheme must start with a letter: %s", ErrInvalidIRI, iri)
		}
	}

	for i, r := range iri {
		if r < 0x20 {
			return fmt.Errorf("%w: control character at position %d: %q", ErrInvalidIRI, i, iri)
		}
		if r == '<' || r == '>' || r == '"' || r == ' ' {
			return fmt.Errorf("%w: character %q at position %d must be percent-encoded: %s", ErrInvalidIRI, r, i, iri)
		}
	}
	return nil
}

// isAbsoluteIRI reports whether value carries a scheme.
func isAbsoluteIRI(value string) bool {
	u, err := url.Parse(value)
	return err == nil && u.Scheme != ""
}

// resolveIRI resolves a relative IRI against base according to RFC 3986.
// Absolute IRIs and unparseable inputs are returned unchanged.
func resolveIRI(base, relative string) string {
	if base == "" || isAbsoluteIRI(relative) {
		return relative
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return relative
	}
	relURL, err := url.Parse(relative)
	if err != nil {
		return relative
	}
	return baseURL.ResolveReference(relURL).String()
}
