package rdf

// Namespace IRIs.
const (
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
)

// RDF vocabulary terms used for collections and typing.
var (
	RDFType       = IRI{Value: RDFNamespace + "type"}
	RDFFirst      = IRI{Value: RDFNamespace + "first"}
	RDFRest       = IRI{Value: RDFNamespace + "rest"}
	RDFNil        = IRI{Value: RDFNamespace + "nil"}
	RDFLangString = IRI{Value: RDFNamespace + "langString"}
)

// XML Schema datatypes.
var (
	XSDString   = IRI{Value: XSDNamespace + "string"}
	XSDBoolean  = IRI{Value: XSDNamespace + "boolean"}
	XSDInteger  = IRI{Value: XSDNamespace + "integer"}
	XSDDecimal  = IRI{Value: XSDNamespace + "decimal"}
	XSDDouble   = IRI{Value: XSDNamespace + "double"}
	XSDFloat    = IRI{Value: XSDNamespace + "float"}
	XSDDate     = IRI{Value: XSDNamespace + "date"}
	XSDDateTime = IRI{Value: XSDNamespace + "dateTime"}
	XSDTime     = IRI{Value: XSDNamespace + "time"}
)
