package rdf

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format identifies RDF serialization formats.
type Format string

const (
	// FormatAuto asks Load to detect the format from the input.
	FormatAuto     Format = ""
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
	FormatRDFXML   Format = "rdfxml"
	FormatJSONLD   Format = "jsonld"
)

// ParseFormat normalizes a format string.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "turtle", "ttl":
		return FormatTurtle, true
	case "ntriples", "nt":
		return FormatNTriples, true
	case "rdfxml", "rdf", "xml":
		return FormatRDFXML, true
	case "jsonld", "json-ld", "json":
		return FormatJSONLD, true
	case "auto", "":
		return FormatAuto, true
	default:
		return "", false
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl", ".shacl":
		return FormatTurtle, nil
	case ".nt":
		return FormatNTriples, nil
	case ".rdf", ".xml", ".owl":
		return FormatRDFXML, nil
	case ".jsonld", ".json":
		return FormatJSONLD, nil
	default:
		return FormatAuto, fmt.Errorf("%w: no format for path %s", ErrUnsupportedFormat, path)
	}
}

// FormatFromContentType infers the format from a media type.
func FormatFromContentType(contentType string) (Format, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch mediaType {
	case "text/turtle", "application/x-turtle":
		return FormatTurtle, nil
	case "application/n-triples":
		return FormatNTriples, nil
	case "application/rdf+xml", "application/xml", "text/xml":
		return FormatRDFXML, nil
	case "application/ld+json":
		return FormatJSONLD, nil
	default:
		return FormatAuto, fmt.Errorf("%w: content type %s", ErrUnsupportedFormat, contentType)
	}
}

// detectSampleSize is how much of the input DetectFormat inspects.
const detectSampleSize = 512

// DetectFormat inspects the start of r and guesses its format. The returned
// reader replays the inspected bytes followed by the rest of r.
func DetectFormat(r io.Reader) (Format, io.Reader, bool) {
	buf := make([]byte, detectSampleSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return FormatAuto, r, false
	}
	sample := buf[:n]
	replay := io.MultiReader(bytes.NewReader(sample), r)
	format, ok := detectFromSample(string(sample))
	return format, replay, ok
}

func detectFromSample(sample string) (Format, bool) {
	sample = strings.TrimSpace(sample)
	if sample == "" {
		return FormatAuto, false
	}

	if strings.HasPrefix(sample, "{") || strings.HasPrefix(sample, "[") {
		return FormatJSONLD, true
	}

	if strings.HasPrefix(sample, "<?xml") || strings.HasPrefix(sample, "<rdf:") || strings.HasPrefix(sample, "<rdf ") {
		return FormatRDFXML, true
	}

	upper := strings.ToUpper(sample)
	if strings.HasPrefix(upper, "@PREFIX") || strings.HasPrefix(upper, "PREFIX") ||
		strings.HasPrefix(upper, "@BASE") || strings.HasPrefix(upper, "BASE") {
		return FormatTurtle, true
	}

	// N-Triples lines start with an IRI or blank node and never use prefixed
	// names, property lists or collections.
	if (strings.HasPrefix(sample, "<") || strings.HasPrefix(sample, "_:")) &&
		!strings.ContainsAny(sample, "[(;") {
		return FormatNTriples, true
	}
	if strings.HasPrefix(sample, "<") || strings.HasPrefix(sample, "_:") {
		return FormatTurtle, true
	}

	for _, field := range strings.Fields(sample) {
		if strings.Contains(field, ":") && !strings.HasPrefix(field, "_:") && !strings.HasPrefix(field, "<") {
			return FormatTurtle, true
		}
	}
	return FormatAuto, false
}
