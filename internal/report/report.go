// Package report renders the outcome of parsing a shapes graph as text,
// JSON or YAML.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/geoknoesis/shacl-go/rdf"
	"github.com/geoknoesis/shacl-go/shacl"
)

// Report is the serialisable summary of one parse run.
type Report struct {
	RunID     string     `json:"run_id" yaml:"run_id"`
	Source    string     `json:"source" yaml:"source"`
	Triples   int        `json:"triples" yaml:"triples"`
	Status    string     `json:"status" yaml:"status"`
	Error     string     `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorCode string     `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	Roots     []string   `json:"roots" yaml:"roots"`
	Shapes    []Shape    `json:"shapes" yaml:"shapes"`
	Conflicts []Conflict `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Failures  []Failure  `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Shape summarises one built shape.
type Shape struct {
	ID         string            `json:"id" yaml:"id"`
	Kind       string            `json:"kind" yaml:"kind"`
	Path       string            `json:"path,omitempty" yaml:"path,omitempty"`
	Targets    []string          `json:"targets,omitempty" yaml:"targets,omitempty"`
	Properties []string          `json:"properties,omitempty" yaml:"properties,omitempty"`
	Severity   string            `json:"severity,omitempty" yaml:"severity,omitempty"`
	Messages   map[string]string `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// Conflict is a well-formedness problem found on a shape.
type Conflict struct {
	Code      string `json:"code" yaml:"code"`
	Shape     string `json:"shape" yaml:"shape"`
	Predicate string `json:"predicate" yaml:"predicate"`
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
	Message   string `json:"message" yaml:"message"`
}

// Failure is a root skipped because of a structural error.
type Failure struct {
	Root  string `json:"root" yaml:"root"`
	Code  string `json:"code" yaml:"code"`
	Error string `json:"error" yaml:"error"`
}

// Report statuses.
const (
	StatusOK        = "ok"
	StatusConflicts = "conflicts"
	StatusFailed    = "failed"
)

// New summarises a successful parse of source.
func New(runID, source string, g *rdf.Graph, res *shacl.Result) *Report {
	r := &Report{
		RunID:   runID,
		Source:  source,
		Triples: g.Len(),
		Roots:   make([]string, 0, len(res.Roots)),
		Shapes:  make([]Shape, 0, res.Len()),
	}
	for _, root := range res.Roots {
		r.Roots = append(r.Roots, rdf.RenderTerm(root))
	}
	for _, s := range res.Shapes() {
		r.Shapes = append(r.Shapes, summarise(s))
	}
	for _, c := range res.Conflicts() {
		r.Conflicts = append(r.Conflicts, Conflict{
			Code:      string(c.Code),
			Shape:     rdf.RenderTerm(c.Shape),
			Predicate: shacl.Prefixed(c.Predicate),
			Value:     rdf.RenderTerm(c.Value),
			Message:   c.Message,
		})
	}
	for _, f := range res.Failures {
		r.Failures = append(r.Failures, Failure{
			Root:  rdf.RenderTerm(f.Root),
			Code:  string(shacl.Code(f.Err)),
			Error: f.Err.Error(),
		})
	}
	switch {
	case len(r.Failures) > 0:
		r.Status = StatusFailed
	case len(r.Conflicts) > 0:
		r.Status = StatusConflicts
	default:
		r.Status = StatusOK
	}
	return r
}

// Failed reports a parse or load that returned an error.
func Failed(runID, source string, err error) *Report {
	r := &Report{
		RunID:  runID,
		Source: source,
		Status: StatusFailed,
		Error:  err.Error(),
	}
	var loadErr *rdf.LoadError
	switch {
	case shacl.Code(err) != "":
		r.ErrorCode = string(shacl.Code(err))
	case errors.As(err, &loadErr):
		r.ErrorCode = string(rdf.Code(err))
	}
	return r
}

func summarise(s shacl.Shape) Shape {
	out := Shape{ID: rdf.RenderTerm(s.Identity()), Kind: s.Kind().String()}
	var common *shacl.Common
	switch v := s.(type) {
	case *shacl.NodeShape:
		common = &v.Common
	case *shacl.PropertyShape:
		common = &v.Common
		out.Path = v.Path.String()
	case *shacl.GenericShape:
		common = &v.Common
	}
	if common == nil {
		return out
	}
	for _, group := range [][]rdf.Term{common.TargetClass, common.TargetNode, common.TargetSubjectsOf, common.TargetObjectsOf} {
		for _, t := range group {
			out.Targets = append(out.Targets, rdf.RenderTerm(t))
		}
	}
	for _, p := range common.Properties {
		out.Properties = append(out.Properties, rdf.RenderTerm(p))
	}
	if common.Severity != nil {
		out.Severity = shacl.Prefixed(common.Severity)
	}
	out.Messages = common.Message
	return out
}

// HasProblems reports whether the run found conflicts or failed.
func (r *Report) HasProblems() bool {
	return r.Status != StatusOK
}

// Write renders r to w in format: "text", "json" or "yaml".
func Write(w io.Writer, format string, r *Report) error {
	switch strings.ToLower(format) {
	case "json":
		return WriteJSON(w, r)
	case "yaml":
		return WriteYAML(w, r)
	case "text", "":
		return WriteText(w, r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML writes r as YAML.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

var (
	heading = color.New(color.FgBlue, color.Bold).SprintFunc()
	okText  = color.New(color.FgGreen).SprintFunc()
	warn    = color.New(color.FgYellow).SprintFunc()
	bad     = color.New(color.FgRed).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
)

// WriteText writes a human readable summary. Colour follows
// color.NoColor.
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder
	if r.Error != "" {
		fmt.Fprintf(&b, "%s %s: %s\n", bad("Error!"), r.Source, r.Error)
		_, err := io.WriteString(w, b.String())
		return err
	}

	counts := map[string]int{}
	for _, s := range r.Shapes {
		counts[s.Kind]++
	}
	fmt.Fprintf(&b, "%s %s: %d triples, %d roots, %d shapes (%d node, %d property, %d generic)\n",
		heading("Parsed"), r.Source, r.Triples, len(r.Roots), len(r.Shapes),
		counts["node"], counts["property"], counts["generic"])

	for _, s := range r.Shapes {
		fmt.Fprintf(&b, "  %-8s %s", s.Kind, s.ID)
		if s.Path != "" {
			fmt.Fprintf(&b, " %s %s", faint("path"), s.Path)
		}
		b.WriteString("\n")
	}

	if len(r.Conflicts) > 0 {
		fmt.Fprintf(&b, "%s (%d)\n", warn("Conflicts"), len(r.Conflicts))
		for _, c := range r.Conflicts {
			fmt.Fprintf(&b, "  %s %s %s: %s\n", warn(c.Code), c.Shape, c.Predicate, c.Message)
		}
	}
	if len(r.Failures) > 0 {
		fmt.Fprintf(&b, "%s (%d)\n", bad("Failures"), len(r.Failures))
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "  %s %s: %s\n", bad(f.Code), f.Root, f.Error)
		}
	}
	if !r.HasProblems() {
		fmt.Fprintf(&b, "%s no conflicts found.\n", okText("Valid!"))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
