package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RenderTerm renders a term in N-Triples syntax. Nil renders as "".
func RenderTerm(term Term) string {
	switch value := term.(type) {
	case IRI:
		return "<" + value.Value + ">"
	case BlankNode:
		return value.String()
	case Literal:
		lexical := `"` + escapeLiteral(value.Lexical) + `"`
		if value.Lang != "" {
			return lexical + "@" + value.Lang
		}
		if value.Datatype.Value != "" && value.Datatype != XSDString {
			return lexical + "^^<" + value.Datatype.Value + ">"
		}
		return lexical
	default:
		return ""
	}
}

// escapeLiteral applies the N-Triples ECHAR escapes.
func escapeLiteral(s string) string {
	if !strings.ContainsAny(s, "\"\\\n\r\t") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WriteNTriples writes the graph's triples in insertion order as N-Triples.
func WriteNTriples(w io.Writer, g *Graph) error {
	writer := bufio.NewWriter(w)
	for _, t := range g.Triples() {
		if t.S == nil || t.P.Value == "" || t.O == nil {
			return fmt.Errorf("ntriples: missing statement fields")
		}
		if _, err := writer.WriteString(t.String() + " .\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}
