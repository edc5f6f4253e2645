package shacl

// Classify converts a checked record into its shape variant. It never
// fails: a record with a path is a property shape, a record with no
// constraint parameters is a node shape, and anything else is generic.
func Classify(rec *Record) Shape {
	switch {
	case rec.Path != nil:
		return &PropertyShape{
			Common:            rec.Common,
			Closed:            rec.Closed,
			IgnoredProperties: rec.IgnoredProperties,
			Path:              rec.Path,
			PathTerm:          rec.PathTerm,
			Constraints:       rec.Constraints,
		}
	case rec.Constraints.IsZero():
		return &NodeShape{
			Common:            rec.Common,
			Closed:            rec.Closed,
			IgnoredProperties: rec.IgnoredProperties,
		}
	default:
		return &GenericShape{Record: rec}
	}
}
